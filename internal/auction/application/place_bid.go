package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"go.uber.org/zap"
)

// PlaceBidDTO is DTO input for PlaceBid useCase. Bidder must have signed the call.
type PlaceBidDTO struct {
	Auction domain.Address
	Bidder  domain.Address
	Amount  uint64
}

// PlaceBidResult reports the committed bid and what was moved into escrow.
type PlaceBidResult struct {
	Auction   AuctionStateDTO `json:"auction"`
	BidRecord BidRecordDTO    `json:"bid_record"`
	ToppedUp  uint64          `json:"topped_up"`
}

// PlaceBidUseCase escrows a bid and makes it the highest one, all in a single unit of work.
type PlaceBidUseCase struct {
	store    domain.Store
	notifier AuctionNotifier
}

// NewPlaceBidUseCase creates a new instace of PlaceBidUseCase struct, it receives dependency through injection
func NewPlaceBidUseCase(store domain.Store, notifier AuctionNotifier) *PlaceBidUseCase {
	return &PlaceBidUseCase{store: store, notifier: notifier}
}

func (uc *PlaceBidUseCase) Execute(ctx context.Context, cmd PlaceBidDTO) (*PlaceBidResult, error) {
	fields := []zap.Field{
		zap.Stringer("auction", cmd.Auction),
		zap.Stringer("bidder", cmd.Bidder),
		zap.Uint64("amount", cmd.Amount),
	}
	log.Info("Executing PlaceBidUseCase", fields...)

	var out PlaceBidResult
	err := runAtomic(ctx, uc.store, "PlaceBidUseCase", fields, func(ctx context.Context, s domain.Session) error {
		ledger := s.Ledger()
		if err := ledger.RequireSignature(ctx, cmd.Bidder); err != nil {
			return err
		}
		now, err := ledger.Now(ctx)
		if err != nil {
			return err
		}

		// 1. the comparison and the write below share this unit, so the
		// highest bid cannot move underneath us
		state, err := s.Auctions().GetForUpdate(ctx, cmd.Auction)
		if err != nil {
			return err
		}
		if err := state.ValidateBid(cmd.Amount, now); err != nil {
			return err
		}

		// 2. resolve or create the bidder's escrow record
		recordAddr := domain.BidRecordAddress(cmd.Bidder, state.Address)
		record, err := s.Bids().GetForUpdate(ctx, recordAddr)
		switch {
		case errors.Is(err, domain.ErrBidRecordNotFound):
			record = domain.NewBidRecord(cmd.Bidder, state.Address)
		case err != nil:
			return err
		}
		if record.Bidder != cmd.Bidder {
			return domain.ErrAccountMismatch
		}

		// 3. record mutations first, funds movement after
		if err := record.Fund(state.Address, cmd.Amount); err != nil {
			return err
		}
		state.RecordHighestBid(cmd.Bidder, cmd.Amount)
		if err := s.Auctions().Save(ctx, state); err != nil {
			return err
		}
		if err := s.Bids().Save(ctx, record); err != nil {
			return err
		}

		// 4. top up escrow by the shortfall only
		balance, err := ledger.BalanceOf(ctx, record.Address)
		if err != nil {
			return err
		}
		shortfall, err := domain.EscrowShortfall(cmd.Amount, balance)
		if err != nil {
			return err
		}
		if shortfall > 0 {
			if err := ledger.Transfer(ctx, cmd.Bidder, record.Address, shortfall); err != nil {
				return err
			}
		}

		// 5. the escrow must back the bid after the transfer
		balance, err = ledger.BalanceOf(ctx, record.Address)
		if err != nil {
			return err
		}
		if err := domain.CheckEscrow(cmd.Amount, balance); err != nil {
			log.Error("PlaceBidUseCase: escrow invariant violated",
				zap.Stringer("bidRecord", record.Address),
				zap.Uint64("escrowBalance", balance),
				zap.Uint64("amount", cmd.Amount),
			)
			return err
		}

		out = PlaceBidResult{
			Auction:   newAuctionStateDTO(state, now),
			BidRecord: newBidRecordDTO(record, balance),
			ToppedUp:  shortfall,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("place bid use case: bid failed for auction %s: %w", cmd.Auction, err)
	}

	publish(ctx, uc.notifier, EventBidPlaced, out.Auction)
	return &out, nil
}
