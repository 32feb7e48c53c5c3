package application

import (
	"context"
	"fmt"

	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"go.uber.org/zap"
)

// InitializeAuctionDTO is the input of InitializeAuction. Initializer must
// have signed the call.
type InitializeAuctionDTO struct {
	Initializer  domain.Address
	Beneficiary  domain.Address
	BiddingStart int64
	BiddingEnd   int64
}

// InitializeAuctionUseCase creates an auction at the address derived from its initializer.
type InitializeAuctionUseCase struct {
	store    domain.Store
	notifier AuctionNotifier
}

func NewInitializeAuctionUseCase(store domain.Store, notifier AuctionNotifier) *InitializeAuctionUseCase {
	return &InitializeAuctionUseCase{store: store, notifier: notifier}
}

func (uc *InitializeAuctionUseCase) Execute(ctx context.Context, cmd InitializeAuctionDTO) (*AuctionStateDTO, error) {
	fields := []zap.Field{
		zap.Stringer("initializer", cmd.Initializer),
		zap.Stringer("beneficiary", cmd.Beneficiary),
		zap.Int64("biddingStart", cmd.BiddingStart),
		zap.Int64("biddingEnd", cmd.BiddingEnd),
	}
	log.Info("Executing InitializeAuctionUseCase", fields...)

	if cmd.Beneficiary.IsZero() {
		return nil, fmt.Errorf("initialize auction: %w", domain.ErrInvalidBeneficiary)
	}

	var out AuctionStateDTO
	err := runAtomic(ctx, uc.store, "InitializeAuctionUseCase", fields, func(ctx context.Context, s domain.Session) error {
		ledger := s.Ledger()
		if err := ledger.RequireSignature(ctx, cmd.Initializer); err != nil {
			return err
		}
		now, err := ledger.Now(ctx)
		if err != nil {
			return err
		}

		state, err := domain.NewAuctionState(cmd.Initializer, cmd.Beneficiary, cmd.BiddingStart, cmd.BiddingEnd, now)
		if err != nil {
			return err
		}
		if err := s.Auctions().Create(ctx, state); err != nil {
			return err
		}
		out = newAuctionStateDTO(state, now)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("initialize auction: %w", err)
	}

	publish(ctx, uc.notifier, EventAuctionInitialized, out)
	return &out, nil
}
