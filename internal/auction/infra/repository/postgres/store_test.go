package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"github.com/cristianortiz/auctionEscrow/internal/shared/db"
	"github.com/cristianortiz/auctionEscrow/internal/shared/db/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const migrationsSource = "file://../../../../shared/db/migrations/sql"

// newTestStore connects to AUCTION_TEST_DATABASE_URL, skipping the test when it is unset.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("AUCTION_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("AUCTION_TEST_DATABASE_URL not set")
	}
	require.NoError(t, migrations.RunMigrations(migrationsSource, dsn))
	pool, err := db.GetPostgresDBPool(context.Background(), dsn)
	require.NoError(t, err)
	return NewStore(pool)
}

func randomAddress() domain.Address {
	var a domain.Address
	u1, u2 := uuid.New(), uuid.New()
	copy(a[:16], u1[:])
	copy(a[16:], u2[:])
	return a
}

func balanceOf(t *testing.T, s *Store, addr domain.Address) uint64 {
	t.Helper()
	var bal uint64
	require.NoError(t, s.Atomic(context.Background(), func(ctx context.Context, sess domain.Session) error {
		var err error
		bal, err = sess.Ledger().BalanceOf(ctx, addr)
		return err
	}))
	return bal
}

func TestStore_TransferAndRollback(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	from, to := randomAddress(), randomAddress()
	require.NoError(t, s.Airdrop(ctx, from, 100))

	require.NoError(t, s.Atomic(ctx, func(ctx context.Context, sess domain.Session) error {
		return sess.Ledger().Transfer(ctx, from, to, 40)
	}))
	require.Equal(t, uint64(60), balanceOf(t, s, from))
	require.Equal(t, uint64(40), balanceOf(t, s, to))

	err := s.Atomic(ctx, func(ctx context.Context, sess domain.Session) error {
		if err := sess.Ledger().Transfer(ctx, from, to, 10); err != nil {
			return err
		}
		return sess.Ledger().Transfer(ctx, from, to, 1_000)
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	require.Equal(t, uint64(60), balanceOf(t, s, from), "partial transfer must be rolled back")
	require.Equal(t, uint64(40), balanceOf(t, s, to))
}

func TestStore_AuctionStateRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	initializer := randomAddress()
	bidder := randomAddress()

	var now int64
	require.NoError(t, s.Atomic(ctx, func(ctx context.Context, sess domain.Session) error {
		var err error
		if now, err = sess.Ledger().Now(ctx); err != nil {
			return err
		}
		state, err := domain.NewAuctionState(initializer, randomAddress(), now, now+60, now)
		if err != nil {
			return err
		}
		return sess.Auctions().Create(ctx, state)
	}))

	addr := domain.AuctionStateAddress(initializer)
	err := s.Atomic(ctx, func(ctx context.Context, sess domain.Session) error {
		dup, err := domain.NewAuctionState(initializer, randomAddress(), now, now+10, now)
		if err != nil {
			return err
		}
		return sess.Auctions().Create(ctx, dup)
	})
	require.ErrorIs(t, err, domain.ErrAuctionAlreadyExists)

	require.NoError(t, s.Atomic(ctx, func(ctx context.Context, sess domain.Session) error {
		state, err := sess.Auctions().GetForUpdate(ctx, addr)
		if err != nil {
			return err
		}
		if state.HasBids() {
			return errors.New("fresh auction reports bids")
		}
		state.RecordHighestBid(bidder, 75)
		if err := sess.Auctions().Save(ctx, state); err != nil {
			return err
		}
		rec := domain.NewBidRecord(bidder, addr)
		rec.Amount = 75
		return sess.Bids().Save(ctx, rec)
	}))

	require.NoError(t, s.Atomic(ctx, func(ctx context.Context, sess domain.Session) error {
		state, err := sess.Auctions().GetForUpdate(ctx, addr)
		require.NoError(t, err)
		require.Equal(t, &domain.HighestBid{Bidder: bidder, Amount: 75}, state.Highest)
		require.Equal(t, now+60, state.BiddingEnd)
		require.False(t, state.Settled)

		rec, err := sess.Bids().GetForUpdate(ctx, domain.BidRecordAddress(bidder, addr))
		require.NoError(t, err)
		require.Equal(t, uint64(75), rec.Amount)
		require.Equal(t, addr, rec.Auction)
		return nil
	}))

	err = s.Atomic(ctx, func(ctx context.Context, sess domain.Session) error {
		_, err := sess.Bids().GetForUpdate(ctx, randomAddress())
		return err
	})
	require.ErrorIs(t, err, domain.ErrBidRecordNotFound)
}
