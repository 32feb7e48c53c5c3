package application

import (
	"context"
	"fmt"

	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"go.uber.org/zap"
)

// RefundBidDTO is submitted by a losing bidder. A zero BidRecord means the
// record derived from Bidder and Auction.
type RefundBidDTO struct {
	Auction   domain.Address
	BidRecord domain.Address
	Bidder    domain.Address
}

type RefundBidResult struct {
	BidRecord BidRecordDTO `json:"bid_record"`
	Refunded  uint64       `json:"refunded"`
}

// RefundBidUseCase returns a losing bidder's whole escrow after settlement.
type RefundBidUseCase struct {
	store    domain.Store
	notifier AuctionNotifier
}

func NewRefundBidUseCase(store domain.Store, notifier AuctionNotifier) *RefundBidUseCase {
	return &RefundBidUseCase{store: store, notifier: notifier}
}

func (uc *RefundBidUseCase) Execute(ctx context.Context, cmd RefundBidDTO) (*RefundBidResult, error) {
	recordAddr := cmd.BidRecord
	if recordAddr.IsZero() {
		recordAddr = domain.BidRecordAddress(cmd.Bidder, cmd.Auction)
	}
	fields := []zap.Field{
		zap.Stringer("auction", cmd.Auction),
		zap.Stringer("bidRecord", recordAddr),
		zap.Stringer("bidder", cmd.Bidder),
	}
	log.Info("Executing RefundBidUseCase", fields...)

	var (
		out     RefundBidResult
		auction AuctionStateDTO
	)
	err := runAtomic(ctx, uc.store, "RefundBidUseCase", fields, func(ctx context.Context, s domain.Session) error {
		ledger := s.Ledger()
		if err := ledger.RequireSignature(ctx, cmd.Bidder); err != nil {
			return err
		}
		now, err := ledger.Now(ctx)
		if err != nil {
			return err
		}

		state, err := s.Auctions().GetForUpdate(ctx, cmd.Auction)
		if err != nil {
			return err
		}
		record, err := s.Bids().GetForUpdate(ctx, recordAddr)
		if err != nil {
			return err
		}
		if record.Bidder != cmd.Bidder {
			return domain.ErrUnauthorized
		}
		if err := state.ValidateRefund(record); err != nil {
			return err
		}

		record.Retire()
		if err := s.Bids().Save(ctx, record); err != nil {
			return err
		}
		escrow, err := ledger.BalanceOf(ctx, record.Address)
		if err != nil {
			return err
		}
		if err := ledger.Transfer(ctx, record.Address, record.Bidder, escrow); err != nil {
			return err
		}

		out = RefundBidResult{BidRecord: newBidRecordDTO(record, 0), Refunded: escrow}
		auction = newAuctionStateDTO(state, now)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("refund bid use case: refund failed for auction %s: %w", cmd.Auction, err)
	}

	publish(ctx, uc.notifier, EventBidRefunded, auction)
	return &out, nil
}
