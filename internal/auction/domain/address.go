package domain

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// AddressSize is the byte length of identities and derived record addresses.
const AddressSize = 32

// Namespaces used to derive record addresses.
const (
	AuctionStateNamespace = "auction-state"
	BidNamespace          = "bid"
)

// programID separates addresses derived by this engine from any other
// derivation scheme that shares the ledger.
var programID = []byte("auction-escrow/v1")

// Address identifies an account on the ledger. Identities are ed25519 public
// keys, record addresses are derived with DeriveAddress.
type Address [AddressSize]byte

// ZeroAddress is never a valid identity or record address.
var ZeroAddress Address

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// Bytes returns a copy of the address bytes.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressSize)
	copy(b, a[:])
	return b
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress decodes a hex encoded address.
func ParseAddress(s string) (Address, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return ZeroAddress, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return AddressFromBytes(raw)
}

// AddressFromBytes copies raw into an Address, rejecting wrong lengths.
func AddressFromBytes(raw []byte) (Address, error) {
	var a Address
	if len(raw) != AddressSize {
		return a, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidAddress, AddressSize, len(raw))
	}
	copy(a[:], raw)
	return a, nil
}

// DeriveAddress deterministically computes a record address from a namespace
// and seeds. Every component is length-prefixed so distinct seed splits never
// collide.
func DeriveAddress(namespace string, seeds ...[]byte) Address {
	h := sha3.New256()
	writeChunk := func(b []byte) {
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(b)))
		h.Write(n[:])
		h.Write(b)
	}
	writeChunk(programID)
	writeChunk([]byte(namespace))
	for _, s := range seeds {
		writeChunk(s)
	}
	var out Address
	copy(out[:], h.Sum(nil))
	return out
}

// AuctionStateAddress is where the auction created by initializer lives.
func AuctionStateAddress(initializer Address) Address {
	return DeriveAddress(AuctionStateNamespace, initializer[:])
}

// BidRecordAddress is the escrow record of bidder in auction.
func BidRecordAddress(bidder, auction Address) Address {
	return DeriveAddress(BidNamespace, bidder[:], auction[:])
}
