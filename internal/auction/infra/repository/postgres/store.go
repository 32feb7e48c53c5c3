package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/Masterminds/squirrel"
	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"github.com/cristianortiz/auctionEscrow/internal/shared/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// Store implements domain.Store over postgres. Every unit of work is one
// database transaction; records touched by it are locked with FOR UPDATE.
type Store struct {
	pool *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool: pool,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, sess domain.Session) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		log.Error("Store: Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("postgres store: failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("Store: Recovered from panic during transaction", zap.Any("panic", r))
			_ = tx.Rollback(ctx)
			panic(r)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			log.Error("Store: Failed to commit transaction", zap.Error(commitErr))
			err = fmt.Errorf("postgres store: failed to commit transaction: %w", commitErr)
		}
	}()

	sess := &session{tx: tx, psql: s.psql}
	return fn(ctx, sess)
}

// Airdrop credits new funds to addr.
func (s *Store) Airdrop(ctx context.Context, addr domain.Address, amount uint64) error {
	return s.Atomic(ctx, func(ctx context.Context, sess domain.Session) error {
		return sess.(*session).credit(ctx, addr, amount)
	})
}

type session struct {
	tx   pgx.Tx
	psql squirrel.StatementBuilderType
	now  *int64
}

func (t *session) Ledger() domain.Ledger                   { return (*ledger)(t) }
func (t *session) Auctions() domain.AuctionStateRepository { return (*AuctionStateRepository)(t) }
func (t *session) Bids() domain.BidRecordRepository        { return (*BidRecordRepository)(t) }

func (t *session) exec(ctx context.Context, b squirrel.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	tag, err := t.tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (t *session) queryRow(ctx context.Context, b squirrel.Sqlizer) (pgx.Row, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return t.tx.QueryRow(ctx, query, args...), nil
}

// toDB narrows an amount to the BIGINT columns.
func toDB(amount uint64) (int64, error) {
	if amount > math.MaxInt64 {
		return 0, domain.ErrArithmeticOverflow
	}
	return int64(amount), nil
}

func fromDB(v int64) (uint64, error) {
	if v < 0 {
		return 0, domain.ErrArithmeticOverflow
	}
	return uint64(v), nil
}
