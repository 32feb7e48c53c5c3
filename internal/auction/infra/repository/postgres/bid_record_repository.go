package postgres

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"github.com/jackc/pgx/v5"
)

// BidRecordRepository implements domain.BidRecordRepository inside a unit of work.
type BidRecordRepository session

func (r *BidRecordRepository) GetForUpdate(ctx context.Context, addr domain.Address) (*domain.BidRecord, error) {
	t := (*session)(r)
	row, err := t.queryRow(ctx, t.psql.Select("address", "bidder", "auction", "amount", "retired").
		From("bid_records").
		Where(squirrel.Expr("address = ?", addr[:])).
		Suffix("FOR UPDATE"))
	if err != nil {
		return nil, err
	}

	var (
		address, bidder, auction []byte
		amount                   int64
		record                   domain.BidRecord
	)
	if err := row.Scan(&address, &bidder, &auction, &amount, &record.Retired); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBidRecordNotFound
		}
		return nil, err
	}
	if record.Address, err = domain.AddressFromBytes(address); err != nil {
		return nil, err
	}
	if record.Bidder, err = domain.AddressFromBytes(bidder); err != nil {
		return nil, err
	}
	if record.Auction, err = domain.AddressFromBytes(auction); err != nil {
		return nil, err
	}
	if record.Amount, err = fromDB(amount); err != nil {
		return nil, err
	}
	return &record, nil
}

// Save upserts a record. The bidder column is only written on first insert.
func (r *BidRecordRepository) Save(ctx context.Context, record *domain.BidRecord) error {
	t := (*session)(r)
	amount, err := toDB(record.Amount)
	if err != nil {
		return err
	}
	_, err = t.exec(ctx, t.psql.Insert("bid_records").
		Columns("address", "bidder", "auction", "amount", "retired").
		Values(record.Address[:], record.Bidder[:], record.Auction[:], amount, record.Retired).
		Suffix(`ON CONFLICT (address) DO UPDATE SET
            auction = EXCLUDED.auction,
            amount = EXCLUDED.amount,
            retired = EXCLUDED.retired,
            updated_at = NOW()`))
	return err
}
