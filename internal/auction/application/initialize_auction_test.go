package application

import (
	"context"
	"testing"

	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"github.com/stretchr/testify/require"
)

func TestInitializeAuction(t *testing.T) {
	tests := []struct {
		name          string
		ctx           func(h *harness) context.Context
		start, end    int64
		beneficiary   func(h *harness) domain.Address
		expectedError error
	}{
		{
			name:  "valid",
			start: 100, end: 200,
		},
		{
			name:  "start_now",
			start: 50, end: 51,
		},
		{
			name:  "start_too_early",
			start: 49, end: 200,
			expectedError: domain.ErrStartTimeTooEarly,
		},
		{
			name:  "end_too_early",
			start: 100, end: 100,
			expectedError: domain.ErrEndingTimeTooEarly,
		},
		{
			name:          "unsigned",
			ctx:           func(*harness) context.Context { return context.Background() },
			start:         100,
			end:           200,
			expectedError: domain.ErrMissingSignature,
		},
		{
			name:          "signed_by_someone_else",
			ctx:           func(h *harness) context.Context { return h.as(h.alice) },
			start:         100,
			end:           200,
			expectedError: domain.ErrMissingSignature,
		},
		{
			name:          "zero_beneficiary",
			beneficiary:   func(*harness) domain.Address { return domain.ZeroAddress },
			start:         100,
			end:           200,
			expectedError: domain.ErrInvalidBeneficiary,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, nil)
			ctx := h.as(h.initializer)
			if tc.ctx != nil {
				ctx = tc.ctx(h)
			}
			beneficiary := h.beneficiary
			if tc.beneficiary != nil {
				beneficiary = tc.beneficiary(h)
			}

			state, err := h.svc.InitializeAuction(ctx, InitializeAuctionDTO{
				Initializer:  h.initializer,
				Beneficiary:  beneficiary,
				BiddingStart: tc.start,
				BiddingEnd:   tc.end,
			})
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				_, getErr := h.svc.GetAuctionState(context.Background(), domain.AuctionStateAddress(h.initializer))
				require.ErrorIs(t, getErr, domain.ErrAuctionNotFound)
				return
			}

			require.NoError(t, err)
			require.Equal(t, domain.AuctionStateAddress(h.initializer), state.Address)
			require.Equal(t, h.initializer, state.Initializer)
			require.Equal(t, h.beneficiary, state.Beneficiary)
			require.Nil(t, state.HighestBidder)
			require.Nil(t, state.HighestBidAmount)
			require.False(t, state.Settled)
		})
	}
}

func TestInitializeAuction_SecondCallDoesNotOverwrite(t *testing.T) {
	h := newHarness(t, nil)
	auction := h.initialize()
	_, err := h.bidAt(150, auction, h.alice, 10)
	require.NoError(t, err)

	h.clock.Set(150)
	_, err = h.svc.InitializeAuction(h.as(h.initializer), InitializeAuctionDTO{
		Initializer:  h.initializer,
		Beneficiary:  h.alice,
		BiddingStart: 300,
		BiddingEnd:   400,
	})
	require.ErrorIs(t, err, domain.ErrAuctionAlreadyExists)

	state := h.state(auction)
	require.Equal(t, h.beneficiary, state.Beneficiary)
	require.Equal(t, int64(100), state.BiddingStart)
	require.Equal(t, uint64(10), *state.HighestBidAmount)
}
