package application

import (
	"context"
	"testing"

	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"github.com/cristianortiz/auctionEscrow/internal/auction/infra/ledger/memory"
	"github.com/stretchr/testify/require"
)

const startingFunds uint64 = 1_000_000_000

type harness struct {
	t           *testing.T
	clock       *memory.ManualClock
	store       *memory.Store
	svc         AuctionService
	initializer domain.Address
	beneficiary domain.Address
	alice       domain.Address
	bob         domain.Address
}

func newHarness(t *testing.T, notifier AuctionNotifier) *harness {
	t.Helper()
	clock := memory.NewManualClock(50)
	store := memory.NewStore(clock.Now)
	h := &harness{
		t:           t,
		clock:       clock,
		store:       store,
		svc:         NewAuctionService(store, notifier),
		initializer: domain.Address{0xA1},
		beneficiary: domain.Address{0xB1},
		alice:       domain.Address{0xC1},
		bob:         domain.Address{0xC2},
	}
	ctx := context.Background()
	require.NoError(t, store.Airdrop(ctx, h.alice, startingFunds))
	require.NoError(t, store.Airdrop(ctx, h.bob, startingFunds))
	return h
}

func (h *harness) as(id domain.Address) context.Context {
	return domain.WithSigners(context.Background(), id)
}

// initialize creates the auction [100, 200] and returns its address.
func (h *harness) initialize() domain.Address {
	h.t.Helper()
	state, err := h.svc.InitializeAuction(h.as(h.initializer), InitializeAuctionDTO{
		Initializer:  h.initializer,
		Beneficiary:  h.beneficiary,
		BiddingStart: 100,
		BiddingEnd:   200,
	})
	require.NoError(h.t, err)
	return state.Address
}

func (h *harness) bidAt(now int64, auction, bidder domain.Address, amount uint64) (*PlaceBidResult, error) {
	h.clock.Set(now)
	return h.svc.PlaceBid(h.as(bidder), PlaceBidDTO{Auction: auction, Bidder: bidder, Amount: amount})
}

func (h *harness) settleAt(now int64, auction, winner domain.Address) (*SettleAuctionResult, error) {
	h.clock.Set(now)
	return h.svc.SettleAuction(context.Background(), SettleAuctionDTO{
		Auction:     auction,
		BidRecord:   domain.BidRecordAddress(winner, auction),
		Beneficiary: h.beneficiary,
	})
}

func (h *harness) refund(auction, bidder domain.Address) (*RefundBidResult, error) {
	return h.svc.RefundBid(h.as(bidder), RefundBidDTO{Auction: auction, Bidder: bidder})
}

func (h *harness) state(auction domain.Address) *AuctionStateDTO {
	h.t.Helper()
	s, err := h.svc.GetAuctionState(context.Background(), auction)
	require.NoError(h.t, err)
	return s
}

func (h *harness) balance(addr domain.Address) uint64 {
	return h.store.Balance(addr)
}
