package domain

// Reserve is the minimum balance an escrow address must keep on the ledger.
// It is never part of a bid amount.
const Reserve uint64 = 20_000_000

// BidRecord is the escrow record of one bidder in one auction.
type BidRecord struct {
	Address Address
	Bidder  Address
	Auction Address
	// Amount is the bid the escrow currently backs.
	Amount uint64
	// Retired is set once the escrow has been drained by settlement or refund.
	Retired bool
}

// NewBidRecord creates the empty record for bidder in auction.
func NewBidRecord(bidder, auction Address) *BidRecord {
	return &BidRecord{
		Address: BidRecordAddress(bidder, auction),
		Bidder:  bidder,
		Auction: auction,
	}
}

// RequiredEscrow is the balance the escrow address must hold to back amount.
func RequiredEscrow(amount uint64) (uint64, error) {
	return CheckedAdd(amount, Reserve)
}

// EscrowShortfall is how much must be moved into an escrow holding balance so
// that it backs amount. Zero when already covered.
func EscrowShortfall(amount, balance uint64) (uint64, error) {
	required, err := RequiredEscrow(amount)
	if err != nil {
		return 0, err
	}
	if balance >= required {
		return 0, nil
	}
	return CheckedSub(required, balance)
}

// CheckEscrow verifies that balance backs amount.
func CheckEscrow(amount, balance uint64) error {
	required, err := RequiredEscrow(amount)
	if err != nil {
		return err
	}
	if balance < required {
		return ErrEscrowInvariant
	}
	return nil
}

// Fund points the record at amount in auction.
func (r *BidRecord) Fund(auction Address, amount uint64) error {
	if r.Retired {
		return ErrBidRecordRetired
	}
	r.Auction = auction
	r.Amount = amount
	return nil
}

// Retire marks the escrow as drained. The record can never be funded again.
func (r *BidRecord) Retire() {
	r.Retired = true
}

func (r *BidRecord) Clone() *BidRecord {
	c := *r
	return &c
}
