package application

import "github.com/cristianortiz/auctionEscrow/internal/auction/domain"

// AuctionStateDTO exposes an auction together with its phase at AsOf.
type AuctionStateDTO struct {
	Address          domain.Address  `json:"address"`
	Initializer      domain.Address  `json:"initializer"`
	Beneficiary      domain.Address  `json:"beneficiary"`
	BiddingStart     int64           `json:"bidding_start"`
	BiddingEnd       int64           `json:"bidding_end"`
	HighestBidder    *domain.Address `json:"highest_bidder,omitempty"`
	HighestBidAmount *uint64         `json:"highest_bid_amount,omitempty"`
	Settled          bool            `json:"settled"`
	Phase            domain.Phase    `json:"phase"`
	AsOf             int64           `json:"as_of"`
}

func newAuctionStateDTO(s *domain.AuctionState, now int64) AuctionStateDTO {
	dto := AuctionStateDTO{
		Address:      s.Address,
		Initializer:  s.Initializer,
		Beneficiary:  s.Beneficiary,
		BiddingStart: s.BiddingStart,
		BiddingEnd:   s.BiddingEnd,
		Settled:      s.Settled,
		Phase:        domain.PhaseAt(s, now),
		AsOf:         now,
	}
	if s.Highest != nil {
		bidder, amount := s.Highest.Bidder, s.Highest.Amount
		dto.HighestBidder = &bidder
		dto.HighestBidAmount = &amount
	}
	return dto
}

// BidRecordDTO exposes a bid record and the balance held at its escrow address.
type BidRecordDTO struct {
	Address       domain.Address `json:"address"`
	Bidder        domain.Address `json:"bidder"`
	Auction       domain.Address `json:"auction"`
	Amount        uint64         `json:"amount"`
	Retired       bool           `json:"retired"`
	EscrowBalance uint64         `json:"escrow_balance"`
}

func newBidRecordDTO(r *domain.BidRecord, escrow uint64) BidRecordDTO {
	return BidRecordDTO{
		Address:       r.Address,
		Bidder:        r.Bidder,
		Auction:       r.Auction,
		Amount:        r.Amount,
		Retired:       r.Retired,
		EscrowBalance: escrow,
	}
}
