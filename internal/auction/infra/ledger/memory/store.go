// Package memory keeps ledger balances and auction records in process memory.
// Units of work run one at a time against staged copies and are applied only
// when they succeed.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
)

// Clock returns the current Unix time in seconds.
type Clock func() int64

// SystemClock reads the wall clock.
func SystemClock() int64 {
	return time.Now().Unix()
}

// Store implements domain.Store and domain.Faucet.
type Store struct {
	mu       sync.Mutex
	clock    Clock
	lastNow  int64
	balances map[domain.Address]uint64
	auctions map[domain.Address]*domain.AuctionState
	bids     map[domain.Address]*domain.BidRecord
}

func NewStore(clock Clock) *Store {
	if clock == nil {
		clock = SystemClock
	}
	return &Store{
		clock:    clock,
		balances: make(map[domain.Address]uint64),
		auctions: make(map[domain.Address]*domain.AuctionState),
		bids:     make(map[domain.Address]*domain.BidRecord),
	}
}

// Atomic runs fn against a staged view and commits it only if fn succeeds.
func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, sess domain.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &session{
		store:    s,
		balances: make(map[domain.Address]uint64),
		auctions: make(map[domain.Address]*domain.AuctionState),
		bids:     make(map[domain.Address]*domain.BidRecord),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// Airdrop credits amount to addr outside of any auction.
func (s *Store) Airdrop(ctx context.Context, addr domain.Address, amount uint64) error {
	return s.Atomic(ctx, func(ctx context.Context, sess domain.Session) error {
		return sess.(*session).credit(addr, amount)
	})
}

// Balance is a read-only snapshot of addr, for tests and diagnostics.
func (s *Store) Balance(addr domain.Address) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[addr]
}

// now keeps the oracle non-decreasing even if the clock steps back.
// Called with mu held.
func (s *Store) now() int64 {
	if t := s.clock(); t > s.lastNow {
		s.lastNow = t
	}
	return s.lastNow
}

type session struct {
	store    *Store
	balances map[domain.Address]uint64
	auctions map[domain.Address]*domain.AuctionState
	bids     map[domain.Address]*domain.BidRecord
}

func (t *session) Ledger() domain.Ledger                   { return (*ledger)(t) }
func (t *session) Auctions() domain.AuctionStateRepository { return (*auctionRepo)(t) }
func (t *session) Bids() domain.BidRecordRepository        { return (*bidRepo)(t) }

func (t *session) balance(addr domain.Address) uint64 {
	if b, ok := t.balances[addr]; ok {
		return b
	}
	return t.store.balances[addr]
}

func (t *session) credit(addr domain.Address, amount uint64) error {
	next, err := domain.CheckedAdd(t.balance(addr), amount)
	if err != nil {
		return err
	}
	t.balances[addr] = next
	return nil
}

func (t *session) commit() {
	for addr, b := range t.balances {
		t.store.balances[addr] = b
	}
	for addr, a := range t.auctions {
		t.store.auctions[addr] = a
	}
	for addr, r := range t.bids {
		t.store.bids[addr] = r
	}
}

type ledger session

func (l *ledger) Transfer(_ context.Context, from, to domain.Address, amount uint64) error {
	t := (*session)(l)
	src := t.balance(from)
	if src < amount {
		return domain.ErrInsufficientFunds
	}
	if from == to {
		return nil
	}
	dst, err := domain.CheckedAdd(t.balance(to), amount)
	if err != nil {
		return err
	}
	t.balances[from] = src - amount
	t.balances[to] = dst
	return nil
}

func (l *ledger) BalanceOf(_ context.Context, addr domain.Address) (uint64, error) {
	return (*session)(l).balance(addr), nil
}

func (l *ledger) RequireSignature(ctx context.Context, identity domain.Address) error {
	if !domain.HasSigner(ctx, identity) {
		return domain.ErrMissingSignature
	}
	return nil
}

func (l *ledger) Now(context.Context) (int64, error) {
	return l.store.now(), nil
}

type auctionRepo session

func (r *auctionRepo) lookup(addr domain.Address) (*domain.AuctionState, bool) {
	if a, ok := r.auctions[addr]; ok {
		return a, true
	}
	a, ok := r.store.auctions[addr]
	return a, ok
}

func (r *auctionRepo) GetForUpdate(_ context.Context, addr domain.Address) (*domain.AuctionState, error) {
	a, ok := r.lookup(addr)
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}
	return a.Clone(), nil
}

func (r *auctionRepo) Create(_ context.Context, state *domain.AuctionState) error {
	if _, ok := r.lookup(state.Address); ok {
		return domain.ErrAuctionAlreadyExists
	}
	r.auctions[state.Address] = state.Clone()
	return nil
}

func (r *auctionRepo) Save(_ context.Context, state *domain.AuctionState) error {
	if _, ok := r.lookup(state.Address); !ok {
		return domain.ErrAuctionNotFound
	}
	r.auctions[state.Address] = state.Clone()
	return nil
}

type bidRepo session

func (r *bidRepo) GetForUpdate(_ context.Context, addr domain.Address) (*domain.BidRecord, error) {
	if rec, ok := r.bids[addr]; ok {
		return rec.Clone(), nil
	}
	rec, ok := r.store.bids[addr]
	if !ok {
		return nil, domain.ErrBidRecordNotFound
	}
	return rec.Clone(), nil
}

func (r *bidRepo) Save(_ context.Context, record *domain.BidRecord) error {
	r.bids[record.Address] = record.Clone()
	return nil
}
