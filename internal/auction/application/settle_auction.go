package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"go.uber.org/zap"
)

// SettleAuctionDTO names the auction, the winning bid record and the
// beneficiary account. Anyone may submit it.
type SettleAuctionDTO struct {
	Auction     domain.Address
	BidRecord   domain.Address
	Beneficiary domain.Address
}

type SettleAuctionResult struct {
	Auction AuctionStateDTO `json:"auction"`
	// Paid went to the beneficiary, Returned (reserve and any excess) to the winner.
	Paid     uint64 `json:"paid"`
	Returned uint64 `json:"returned"`
}

// SettleAuctionUseCase pays the winning bid out exactly once and retires the winner's escrow.
type SettleAuctionUseCase struct {
	store    domain.Store
	notifier AuctionNotifier
}

func NewSettleAuctionUseCase(store domain.Store, notifier AuctionNotifier) *SettleAuctionUseCase {
	return &SettleAuctionUseCase{store: store, notifier: notifier}
}

func (uc *SettleAuctionUseCase) Execute(ctx context.Context, cmd SettleAuctionDTO) (*SettleAuctionResult, error) {
	fields := []zap.Field{
		zap.Stringer("auction", cmd.Auction),
		zap.Stringer("bidRecord", cmd.BidRecord),
		zap.Stringer("beneficiary", cmd.Beneficiary),
	}
	log.Info("Executing SettleAuctionUseCase", fields...)

	var out SettleAuctionResult
	err := runAtomic(ctx, uc.store, "SettleAuctionUseCase", fields, func(ctx context.Context, s domain.Session) error {
		ledger := s.Ledger()
		now, err := ledger.Now(ctx)
		if err != nil {
			return err
		}

		state, err := s.Auctions().GetForUpdate(ctx, cmd.Auction)
		if err != nil {
			return err
		}
		if err := checkSettleTime(state, now); err != nil {
			return err
		}
		record, err := s.Bids().GetForUpdate(ctx, cmd.BidRecord)
		if errors.Is(err, domain.ErrBidRecordNotFound) && !state.HasBids() {
			return domain.ErrNoBids
		}
		if err != nil {
			return err
		}
		winning, err := state.ValidateSettlement(record, cmd.Beneficiary, now)
		if err != nil {
			return err
		}

		state.MarkSettled()
		record.Retire()
		if err := s.Auctions().Save(ctx, state); err != nil {
			return err
		}
		if err := s.Bids().Save(ctx, record); err != nil {
			return err
		}

		if err := ledger.Transfer(ctx, record.Address, state.Beneficiary, winning.Amount); err != nil {
			return err
		}
		remaining, err := ledger.BalanceOf(ctx, record.Address)
		if err != nil {
			return err
		}
		if err := ledger.Transfer(ctx, record.Address, record.Bidder, remaining); err != nil {
			return err
		}

		log.Info("Auction settled",
			zap.Stringer("auction", state.Address),
			zap.Stringer("winner", winning.Bidder),
			zap.Uint64("paid", winning.Amount),
			zap.Uint64("returned", remaining),
		)
		out = SettleAuctionResult{
			Auction:  newAuctionStateDTO(state, now),
			Paid:     winning.Amount,
			Returned: remaining,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("settle auction use case: settlement failed for auction %s: %w", cmd.Auction, err)
	}

	publish(ctx, uc.notifier, EventAuctionSettled, out.Auction)
	return &out, nil
}

// checkSettleTime rejects early settlement before the bid record is even loaded.
func checkSettleTime(state *domain.AuctionState, now int64) error {
	if !domain.CanSettle(state, now) {
		return domain.ErrAuctionNotOver
	}
	return nil
}
