package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveAddress(t *testing.T) {
	auction := AuctionStateAddress(alice)
	require.Equal(t, auction, AuctionStateAddress(alice), "derivation is deterministic")
	require.NotEqual(t, auction, AuctionStateAddress(bob))

	require.NotEqual(t, BidRecordAddress(alice, auction), BidRecordAddress(bob, auction))
	require.NotEqual(t, BidRecordAddress(alice, auction), BidRecordAddress(auction, alice))

	// namespaces never collide for the same seeds
	require.NotEqual(t, DeriveAddress(AuctionStateNamespace, alice[:]), DeriveAddress(BidNamespace, alice[:]))
	// seed boundaries are part of the derivation
	require.NotEqual(t, DeriveAddress("ns", []byte("ab"), []byte("c")), DeriveAddress("ns", []byte("a"), []byte("bc")))
}

func TestParseAddress(t *testing.T) {
	parsed, err := ParseAddress(alice.String())
	require.NoError(t, err)
	require.Equal(t, alice, parsed)

	_, err = ParseAddress("zz")
	require.ErrorIs(t, err, ErrInvalidAddress)
	_, err = ParseAddress("abcd")
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestAddress_JSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		A Address `json:"a"`
	}{A: bob})
	require.NoError(t, err)
	require.JSONEq(t, fmt.Sprintf(`{"a":%q}`, bob.String()), string(raw))

	var out struct {
		A Address `json:"a"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Equal(t, bob, out.A)
}

func TestSigners(t *testing.T) {
	ctx := context.Background()
	require.False(t, HasSigner(ctx, alice))

	ctx = WithSigners(ctx, alice)
	ctx = WithSigners(ctx, bob)
	require.True(t, HasSigner(ctx, alice))
	require.True(t, HasSigner(ctx, bob))
	require.False(t, HasSigner(ctx, initializer))
}

func TestCategoryAndCode(t *testing.T) {
	err := fmt.Errorf("place bid: %w", ErrBidTooLow)
	require.Equal(t, CategoryOrdering, CategoryOf(err))
	require.Equal(t, "BidTooLow", CodeOf(err))

	require.Equal(t, CategoryInternal, CategoryOf(fmt.Errorf("boom")))
	require.Equal(t, "Internal", CodeOf(fmt.Errorf("boom")))
}
