package rest

// InitializeAuctionRequest is signed by the initializer.
type InitializeAuctionRequest struct {
	Beneficiary  string `json:"beneficiary" validate:"required,hexadecimal,len=64"`
	BiddingStart int64  `json:"bidding_start" validate:"required"`
	BiddingEnd   int64  `json:"bidding_end" validate:"required"`
}

// PlaceBidRequest is signed by the bidder.
type PlaceBidRequest struct {
	Amount uint64 `json:"amount"`
}

// SettleAuctionRequest may be submitted by anyone.
type SettleAuctionRequest struct {
	BidRecord   string `json:"bid_record" validate:"required,hexadecimal,len=64"`
	Beneficiary string `json:"beneficiary" validate:"required,hexadecimal,len=64"`
}

// RefundBidRequest is signed by the losing bidder. BidRecord defaults to the
// record derived from the signer and the auction.
type RefundBidRequest struct {
	BidRecord string `json:"bid_record,omitempty" validate:"omitempty,hexadecimal,len=64"`
}

type AirdropRequest struct {
	Amount uint64 `json:"amount" validate:"required"`
}

type BalanceResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

type AddressResponse struct {
	Address string `json:"address"`
}
