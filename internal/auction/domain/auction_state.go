package domain

import (
	"github.com/cristianortiz/auctionEscrow/internal/shared/logger"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// HighestBid is the current leading bid. Bidder and amount are only ever
// present together.
type HighestBid struct {
	Bidder Address
	Amount uint64
}

// AuctionState is the authoritative record of a single auction.
type AuctionState struct {
	Address      Address
	Initializer  Address
	Beneficiary  Address
	BiddingStart int64
	BiddingEnd   int64
	Highest      *HighestBid // nil until the first accepted bid
	Settled      bool
}

// NewAuctionState validates the bidding window against now and returns a
// fresh auction with no bids.
func NewAuctionState(initializer, beneficiary Address, biddingStart, biddingEnd, now int64) (*AuctionState, error) {
	if biddingStart < now {
		log.Warn("Auction rejected: start time invalid",
			zap.Int64("biddingStart", biddingStart),
			zap.Int64("now", now),
		)
		return nil, ErrStartTimeTooEarly
	}
	if biddingEnd <= biddingStart {
		log.Warn("Auction rejected: end time invalid",
			zap.Int64("biddingStart", biddingStart),
			zap.Int64("biddingEnd", biddingEnd),
		)
		return nil, ErrEndingTimeTooEarly
	}
	return &AuctionState{
		Address:      AuctionStateAddress(initializer),
		Initializer:  initializer,
		Beneficiary:  beneficiary,
		BiddingStart: biddingStart,
		BiddingEnd:   biddingEnd,
	}, nil
}

// HasBids reports whether any bid has been accepted.
func (s *AuctionState) HasBids() bool {
	return s.Highest != nil
}

// ValidateBid checks the time gate and the strictly-increasing rule for a bid
// of amount at now. It does not mutate the auction.
func (s *AuctionState) ValidateBid(amount uint64, now int64) error {
	if err := checkBidWindow(s, now); err != nil {
		log.Warn("Bid rejected: outside bidding window",
			zap.Stringer("auction", s.Address),
			zap.Int64("now", now),
			zap.Int64("biddingStart", s.BiddingStart),
			zap.Int64("biddingEnd", s.BiddingEnd),
		)
		return err
	}
	if s.Highest != nil && amount <= s.Highest.Amount {
		log.Warn("Bid rejected: amount too low",
			zap.Stringer("auction", s.Address),
			zap.Uint64("bidAmount", amount),
			zap.Uint64("highestBid", s.Highest.Amount),
		)
		return ErrBidTooLow
	}
	return nil
}

// RecordHighestBid makes bidder the leader. Callers must have passed
// ValidateBid inside the same atomic unit.
func (s *AuctionState) RecordHighestBid(bidder Address, amount uint64) {
	s.Highest = &HighestBid{Bidder: bidder, Amount: amount}
}

// ValidateSettlement checks every precondition for paying out the winning
// bid held by record to beneficiary, and returns that bid.
func (s *AuctionState) ValidateSettlement(record *BidRecord, beneficiary Address, now int64) (HighestBid, error) {
	if err := checkSettleWindow(s, now); err != nil {
		return HighestBid{}, err
	}
	if s.Settled {
		return HighestBid{}, ErrAuctionAlreadyEnded
	}
	if record.Auction != s.Address {
		return HighestBid{}, ErrAccountMismatch
	}
	if beneficiary != s.Beneficiary {
		return HighestBid{}, ErrInvalidBeneficiary
	}
	if s.Highest == nil {
		return HighestBid{}, ErrNoBids
	}
	if record.Bidder != s.Highest.Bidder {
		return HighestBid{}, ErrAccountMismatch
	}
	return *s.Highest, nil
}

// MarkSettled closes the auction for good.
func (s *AuctionState) MarkSettled() {
	s.Settled = true
}

// ValidateRefund checks that record belongs to a losing bidder of a settled
// auction. A record matching the winner by identity or by amount is rejected.
func (s *AuctionState) ValidateRefund(record *BidRecord) error {
	if !s.Settled {
		return ErrInvalidRefund
	}
	if record.Auction != s.Address {
		return ErrAccountMismatch
	}
	if s.Highest == nil {
		return ErrNoBids
	}
	if record.Bidder == s.Highest.Bidder || record.Amount == s.Highest.Amount {
		log.Warn("Refund rejected: record matches the winning bid",
			zap.Stringer("auction", s.Address),
			zap.Stringer("bidder", record.Bidder),
			zap.Uint64("amount", record.Amount),
		)
		return ErrHighestBidderCannotRefund
	}
	return nil
}

// Clone returns a deep copy.
func (s *AuctionState) Clone() *AuctionState {
	c := *s
	if s.Highest != nil {
		h := *s.Highest
		c.Highest = &h
	}
	return &c
}
