package postgres

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"github.com/jackc/pgx/v5"
)

// AuctionStateRepository implements domain.AuctionStateRepository inside a unit of work.
type AuctionStateRepository session

var auctionColumns = []string{
	"address", "initializer", "beneficiary", "bidding_start", "bidding_end",
	"highest_bidder", "highest_bid_amount", "settled",
}

// GetForUpdate loads an auction and locks its row until the unit ends.
func (r *AuctionStateRepository) GetForUpdate(ctx context.Context, addr domain.Address) (*domain.AuctionState, error) {
	t := (*session)(r)
	row, err := t.queryRow(ctx, t.psql.Select(auctionColumns...).
		From("auction_states").
		Where(squirrel.Expr("address = ?", addr[:])).
		Suffix("FOR UPDATE"))
	if err != nil {
		return nil, err
	}

	var (
		address, initializer, beneficiary, highestBidder []byte
		highestAmount                                    *int64
		state                                            domain.AuctionState
	)
	err = row.Scan(
		&address,
		&initializer,
		&beneficiary,
		&state.BiddingStart,
		&state.BiddingEnd,
		&highestBidder, // NULL until the first bid
		&highestAmount, // NULL until the first bid
		&state.Settled,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAuctionNotFound
		}
		return nil, err
	}

	if state.Address, err = domain.AddressFromBytes(address); err != nil {
		return nil, err
	}
	if state.Initializer, err = domain.AddressFromBytes(initializer); err != nil {
		return nil, err
	}
	if state.Beneficiary, err = domain.AddressFromBytes(beneficiary); err != nil {
		return nil, err
	}
	if highestBidder != nil && highestAmount != nil {
		bidder, err := domain.AddressFromBytes(highestBidder)
		if err != nil {
			return nil, err
		}
		amount, err := fromDB(*highestAmount)
		if err != nil {
			return nil, err
		}
		state.Highest = &domain.HighestBid{Bidder: bidder, Amount: amount}
	}
	return &state, nil
}

// Create inserts a new auction and never overwrites an existing one.
func (r *AuctionStateRepository) Create(ctx context.Context, state *domain.AuctionState) error {
	t := (*session)(r)
	bidder, amount, err := highestColumns(state)
	if err != nil {
		return err
	}
	inserted, err := t.exec(ctx, t.psql.Insert("auction_states").
		Columns(auctionColumns...).
		Values(
			state.Address[:],
			state.Initializer[:],
			state.Beneficiary[:],
			state.BiddingStart,
			state.BiddingEnd,
			bidder,
			amount,
			state.Settled,
		).
		Suffix("ON CONFLICT (address) DO NOTHING"))
	if err != nil {
		return err
	}
	if inserted == 0 {
		return domain.ErrAuctionAlreadyExists
	}
	return nil
}

// Save writes the mutable fields of an auction. Window and parties never change.
func (r *AuctionStateRepository) Save(ctx context.Context, state *domain.AuctionState) error {
	t := (*session)(r)
	bidder, amount, err := highestColumns(state)
	if err != nil {
		return err
	}
	updated, err := t.exec(ctx, t.psql.Update("auction_states").
		SetMap(map[string]interface{}{
			"highest_bidder":     bidder,
			"highest_bid_amount": amount,
			"settled":            state.Settled,
			"updated_at":         squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Expr("address = ?", state.Address[:])))
	if err != nil {
		return err
	}
	if updated == 0 {
		return domain.ErrAuctionNotFound
	}
	return nil
}

func highestColumns(state *domain.AuctionState) ([]byte, *int64, error) {
	if state.Highest == nil {
		return nil, nil, nil
	}
	amount, err := toDB(state.Highest.Amount)
	if err != nil {
		return nil, nil, err
	}
	return state.Highest.Bidder.Bytes(), &amount, nil
}
