package application

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestPlaceBid_TimeGate(t *testing.T) {
	tests := []struct {
		name          string
		now           int64
		expectedError error
	}{
		{name: "before_start", now: 99, expectedError: domain.ErrBidTooEarly},
		{name: "at_start", now: 100},
		{name: "at_end", now: 200},
		{name: "after_end", now: 201, expectedError: domain.ErrBidTooLate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, nil)
			auction := h.initialize()

			_, err := h.bidAt(tc.now, auction, h.alice, 10)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				require.Nil(t, h.state(auction).HighestBidder)
				require.Equal(t, startingFunds, h.balance(h.alice))
				return
			}
			require.NoError(t, err)
			require.Equal(t, h.alice, *h.state(auction).HighestBidder)
		})
	}
}

func TestPlaceBid_EscrowsAmountPlusReserve(t *testing.T) {
	h := newHarness(t, nil)
	auction := h.initialize()

	res, err := h.bidAt(150, auction, h.alice, 50)
	require.NoError(t, err)
	require.Equal(t, 50+domain.Reserve, res.ToppedUp)
	require.Equal(t, 50+domain.Reserve, res.BidRecord.EscrowBalance)
	require.Equal(t, uint64(50), res.BidRecord.Amount)
	require.Equal(t, auction, res.BidRecord.Auction)

	record := domain.BidRecordAddress(h.alice, auction)
	require.Equal(t, record, res.BidRecord.Address)
	require.Equal(t, 50+domain.Reserve, h.balance(record))
	require.Equal(t, startingFunds-50-domain.Reserve, h.balance(h.alice))
}

func TestPlaceBid_TopUpFundsOnlyTheDelta(t *testing.T) {
	h := newHarness(t, nil)
	auction := h.initialize()

	_, err := h.bidAt(150, auction, h.alice, 50)
	require.NoError(t, err)
	_, err = h.bidAt(155, auction, h.bob, 60)
	require.NoError(t, err)

	res, err := h.bidAt(160, auction, h.alice, 80)
	require.NoError(t, err)
	require.Equal(t, uint64(30), res.ToppedUp)
	require.Equal(t, 80+domain.Reserve, h.balance(domain.BidRecordAddress(h.alice, auction)))
	require.Equal(t, startingFunds-80-domain.Reserve, h.balance(h.alice))

	state := h.state(auction)
	require.Equal(t, h.alice, *state.HighestBidder)
	require.Equal(t, uint64(80), *state.HighestBidAmount)
}

func TestPlaceBid_TooLowChangesNothing(t *testing.T) {
	h := newHarness(t, nil)
	auction := h.initialize()

	_, err := h.bidAt(150, auction, h.alice, 50)
	require.NoError(t, err)

	for _, amount := range []uint64{0, 49, 50} {
		_, err = h.bidAt(160, auction, h.bob, amount)
		require.ErrorIs(t, err, domain.ErrBidTooLow, "amount %d", amount)
	}

	state := h.state(auction)
	require.Equal(t, h.alice, *state.HighestBidder)
	require.Equal(t, uint64(50), *state.HighestBidAmount)
	require.Equal(t, startingFunds, h.balance(h.bob))
	_, err = h.svc.GetBidRecord(context.Background(), domain.BidRecordAddress(h.bob, auction))
	require.ErrorIs(t, err, domain.ErrBidRecordNotFound)
}

func TestPlaceBid_InsufficientFundsRollsBack(t *testing.T) {
	h := newHarness(t, nil)
	auction := h.initialize()
	poor := domain.Address{0xDD}
	require.NoError(t, h.store.Airdrop(context.Background(), poor, domain.Reserve))

	_, err := h.bidAt(150, auction, poor, 1)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	require.Nil(t, h.state(auction).HighestBidder)
	require.Equal(t, domain.Reserve, h.balance(poor))
	_, err = h.svc.GetBidRecord(context.Background(), domain.BidRecordAddress(poor, auction))
	require.ErrorIs(t, err, domain.ErrBidRecordNotFound)
}

func TestPlaceBid_OverflowIsFatal(t *testing.T) {
	h := newHarness(t, nil)
	auction := h.initialize()

	_, err := h.bidAt(150, auction, h.alice, ^uint64(0))
	require.ErrorIs(t, err, domain.ErrArithmeticOverflow)
	require.Nil(t, h.state(auction).HighestBidder)
	require.Equal(t, startingFunds, h.balance(h.alice))
}

func TestPlaceBid_RequiresBidderSignature(t *testing.T) {
	h := newHarness(t, nil)
	auction := h.initialize()
	h.clock.Set(150)

	_, err := h.svc.PlaceBid(h.as(h.bob), PlaceBidDTO{Auction: auction, Bidder: h.alice, Amount: 10})
	require.ErrorIs(t, err, domain.ErrMissingSignature)
}

func TestPlaceBid_UnknownAuction(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.bidAt(150, domain.Address{0xEE}, h.alice, 10)
	require.ErrorIs(t, err, domain.ErrAuctionNotFound)
}

func TestPlaceBid_AcceptedAmountsStrictlyIncrease(t *testing.T) {
	h := newHarness(t, nil)
	auction := h.initialize()

	bids := []struct {
		bidder   domain.Address
		amount   uint64
		accepted bool
	}{
		{h.alice, 10, true},
		{h.bob, 10, false},
		{h.bob, 11, true},
		{h.alice, 5, false},
		{h.alice, 30, true},
		{h.bob, 30, false},
		{h.bob, 31, true},
	}

	var last uint64
	for i, b := range bids {
		_, err := h.bidAt(150+int64(i), auction, b.bidder, b.amount)
		state := h.state(auction)
		if !b.accepted {
			require.ErrorIs(t, err, domain.ErrBidTooLow)
			require.Equal(t, last, *state.HighestBidAmount)
			continue
		}
		require.NoError(t, err)
		require.Greater(t, *state.HighestBidAmount, last)
		last = *state.HighestBidAmount
	}
}

// Concurrent bidders race on one auction. Every accepted bid must be fully
// escrowed, every rejected bidder untouched, and the maximum must win.
func TestPlaceBid_ConcurrentBidders(t *testing.T) {
	h := newHarness(t, nil)
	auction := h.initialize()
	h.clock.Set(150)

	const n = 20
	bidders := make([]domain.Address, n)
	for i := range bidders {
		bidders[i] = domain.Address{0xF0, byte(i)}
		require.NoError(t, h.store.Airdrop(context.Background(), bidders[i], startingFunds))
	}

	var wg sync.WaitGroup
	for i := range bidders {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bidder := bidders[i]
			_, _ = h.svc.PlaceBid(h.as(bidder), PlaceBidDTO{Auction: auction, Bidder: bidder, Amount: uint64(i + 1)})
		}(i)
	}
	wg.Wait()

	state := h.state(auction)
	require.Equal(t, bidders[n-1], *state.HighestBidder)
	require.Equal(t, uint64(n), *state.HighestBidAmount)

	for i, bidder := range bidders {
		rec, err := h.svc.GetBidRecord(context.Background(), domain.BidRecordAddress(bidder, auction))
		if err != nil {
			require.ErrorIs(t, err, domain.ErrBidRecordNotFound)
			require.Equal(t, startingFunds, h.balance(bidder), fmt.Sprintf("bidder %d", i))
			continue
		}
		require.Equal(t, uint64(i+1)+domain.Reserve, rec.EscrowBalance)
		require.Equal(t, startingFunds-rec.EscrowBalance, h.balance(bidder))
	}
}

func TestPlaceBid_NotifiesOnlyCommittedBids(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	notifier := NewMockAuctionNotifier(ctrl)

	notifier.EXPECT().AuctionUpdated(gomock.Any(), gomock.Any()).Do(func(_ context.Context, ev AuctionEvent) {
		require.Equal(t, EventAuctionInitialized, ev.Kind)
	})
	h := newHarness(t, notifier)
	auction := h.initialize()

	notifier.EXPECT().AuctionUpdated(gomock.Any(), gomock.Any()).Do(func(_ context.Context, ev AuctionEvent) {
		require.Equal(t, EventBidPlaced, ev.Kind)
		require.Equal(t, auction, ev.Auction.Address)
		require.Equal(t, uint64(50), *ev.Auction.HighestBidAmount)
		require.Equal(t, domain.PhaseOpen, ev.Auction.Phase)
	}).Times(1)

	_, err := h.bidAt(150, auction, h.alice, 50)
	require.NoError(t, err)
	_, err = h.bidAt(151, auction, h.bob, 40)
	require.ErrorIs(t, err, domain.ErrBidTooLow)
}
