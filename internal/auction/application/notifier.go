package application

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock_notifier_test.go -package=application . AuctionNotifier

// EventKind names the operation that produced an AuctionEvent.
type EventKind string

const (
	EventAuctionInitialized EventKind = "auction_initialized"
	EventBidPlaced          EventKind = "bid_placed"
	EventAuctionSettled     EventKind = "auction_settled"
	EventBidRefunded        EventKind = "bid_refunded"
)

// AuctionEvent is published after an operation on an auction has committed.
type AuctionEvent struct {
	ID      uuid.UUID       `json:"id"`
	Kind    EventKind       `json:"kind"`
	Auction AuctionStateDTO `json:"auction"`
}

// AuctionNotifier receives committed auction changes, e.g. to push them to
// websocket subscribers. Implementations must not block.
type AuctionNotifier interface {
	AuctionUpdated(ctx context.Context, event AuctionEvent)
}

func publish(ctx context.Context, n AuctionNotifier, kind EventKind, auction AuctionStateDTO) {
	if n == nil {
		return
	}
	n.AuctionUpdated(ctx, AuctionEvent{ID: uuid.New(), Kind: kind, Auction: auction})
}
