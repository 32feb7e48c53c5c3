package domain

// Phase is the lifecycle position of an auction at a given instant.
type Phase string

const (
	// PhaseCreated: initialized, bidding window not open yet.
	PhaseCreated Phase = "created"
	PhaseOpen    Phase = "open"
	// PhaseEnded: window closed, winning bid not settled yet.
	PhaseEnded   Phase = "ended"
	PhaseSettled Phase = "settled"
)

// CanBid reports whether now lies inside the inclusive bidding window.
func CanBid(state *AuctionState, now int64) bool {
	return state.BiddingStart <= now && now <= state.BiddingEnd
}

// CanSettle reports whether the bidding window has strictly elapsed.
func CanSettle(state *AuctionState, now int64) bool {
	return now > state.BiddingEnd
}

// PhaseAt derives the phase from the window, the settled flag and now.
func PhaseAt(state *AuctionState, now int64) Phase {
	switch {
	case state.Settled:
		return PhaseSettled
	case now < state.BiddingStart:
		return PhaseCreated
	case CanBid(state, now):
		return PhaseOpen
	default:
		return PhaseEnded
	}
}

// checkBidWindow maps a closed window to the matching failure.
func checkBidWindow(state *AuctionState, now int64) error {
	if now < state.BiddingStart {
		return ErrBidTooEarly
	}
	if now > state.BiddingEnd {
		return ErrBidTooLate
	}
	return nil
}

func checkSettleWindow(state *AuctionState, now int64) error {
	if !CanSettle(state, now) {
		return ErrAuctionNotOver
	}
	return nil
}
