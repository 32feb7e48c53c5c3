package domain

import "context"

// Ledger is the account substrate the engine runs on. Implementations are
// scoped to a single atomic unit (see Store).
type Ledger interface {
	// Transfer moves amount from one address to another, failing with
	// ErrInsufficientFunds without side effects.
	Transfer(ctx context.Context, from, to Address, amount uint64) error
	BalanceOf(ctx context.Context, addr Address) (uint64, error)
	// RequireSignature fails with ErrMissingSignature unless identity
	// authorized the current call.
	RequireSignature(ctx context.Context, identity Address) error
	// Now is the ledger time oracle in Unix seconds.
	Now(ctx context.Context) (int64, error)
}

type AuctionStateRepository interface {
	// GetForUpdate loads the auction and holds it for the rest of the unit.
	GetForUpdate(ctx context.Context, addr Address) (*AuctionState, error)
	// Create fails with ErrAuctionAlreadyExists instead of overwriting.
	Create(ctx context.Context, state *AuctionState) error
	Save(ctx context.Context, state *AuctionState) error
}

type BidRecordRepository interface {
	GetForUpdate(ctx context.Context, addr Address) (*BidRecord, error)
	Save(ctx context.Context, record *BidRecord) error
}

// Session is the view of the ledger and the record stores inside one atomic
// unit of work.
type Session interface {
	Ledger() Ledger
	Auctions() AuctionStateRepository
	Bids() BidRecordRepository
}

// Store runs units of work. Every read, transfer and record write performed
// through the session passed to fn commits together when fn returns nil, and
// none of it is applied when fn returns an error. Conflicting units on the
// same records are serialized.
type Store interface {
	Atomic(ctx context.Context, fn func(ctx context.Context, s Session) error) error
}

// Faucet credits new funds to an account. Only development backends and the
// faucet endpoint use it.
type Faucet interface {
	Airdrop(ctx context.Context, addr Address, amount uint64) error
}
