package application

import (
	"context"
	"fmt"

	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
)

// GetAuctionStateUseCase retrieves the current state of an auction and its phase at ledger time.
type GetAuctionStateUseCase struct {
	store domain.Store
}

func NewGetAuctionStateUseCase(store domain.Store) *GetAuctionStateUseCase {
	return &GetAuctionStateUseCase{store: store}
}

func (uc *GetAuctionStateUseCase) Execute(ctx context.Context, auction domain.Address) (*AuctionStateDTO, error) {
	var out AuctionStateDTO
	err := uc.store.Atomic(ctx, func(ctx context.Context, s domain.Session) error {
		now, err := s.Ledger().Now(ctx)
		if err != nil {
			return err
		}
		state, err := s.Auctions().GetForUpdate(ctx, auction)
		if err != nil {
			return err
		}
		out = newAuctionStateDTO(state, now)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get auction state %s: %w", auction, err)
	}
	return &out, nil
}

// GetBidRecordUseCase retrieves a bid record with its escrow balance.
type GetBidRecordUseCase struct {
	store domain.Store
}

func NewGetBidRecordUseCase(store domain.Store) *GetBidRecordUseCase {
	return &GetBidRecordUseCase{store: store}
}

func (uc *GetBidRecordUseCase) Execute(ctx context.Context, record domain.Address) (*BidRecordDTO, error) {
	var out BidRecordDTO
	err := uc.store.Atomic(ctx, func(ctx context.Context, s domain.Session) error {
		rec, err := s.Bids().GetForUpdate(ctx, record)
		if err != nil {
			return err
		}
		escrow, err := s.Ledger().BalanceOf(ctx, rec.Address)
		if err != nil {
			return err
		}
		out = newBidRecordDTO(rec, escrow)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get bid record %s: %w", record, err)
	}
	return &out, nil
}

// GetBalanceUseCase reads a ledger balance.
type GetBalanceUseCase struct {
	store domain.Store
}

func NewGetBalanceUseCase(store domain.Store) *GetBalanceUseCase {
	return &GetBalanceUseCase{store: store}
}

func (uc *GetBalanceUseCase) Execute(ctx context.Context, addr domain.Address) (uint64, error) {
	var balance uint64
	err := uc.store.Atomic(ctx, func(ctx context.Context, s domain.Session) error {
		var err error
		balance, err = s.Ledger().BalanceOf(ctx, addr)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("get balance %s: %w", addr, err)
	}
	return balance, nil
}
