package domain

import "errors"

var (
	ErrStartTimeTooEarly         = errors.New("start time must be greater than or equal to the current time")
	ErrEndingTimeTooEarly        = errors.New("end time must be greater than the start time")
	ErrBidTooEarly               = errors.New("bids can only be submitted after the auction has begun")
	ErrBidTooLate                = errors.New("bids can only be submitted before the auction ends")
	ErrBidTooLow                 = errors.New("bid must be greater than the current highest bid")
	ErrAuctionNotOver            = errors.New("cannot end auction before auction end time elapses")
	ErrAuctionAlreadyEnded       = errors.New("auction has already ended and funds have been transferred")
	ErrAccountMismatch           = errors.New("bid record does not correspond to the auction")
	ErrInvalidBeneficiary        = errors.New("beneficiary does not match the auction beneficiary")
	ErrNoBids                    = errors.New("auction had no bids")
	ErrInvalidRefund             = errors.New("cannot refund bid prior to settlement of the winning bid")
	ErrHighestBidderCannotRefund = errors.New("the highest bid in the auction cannot be refunded")
	ErrInsufficientFunds         = errors.New("insufficient funds")

	ErrAuctionNotFound      = errors.New("auction not found")
	ErrAuctionAlreadyExists = errors.New("auction already exists for this initializer")
	ErrBidRecordNotFound    = errors.New("bid record not found")
	ErrBidRecordRetired     = errors.New("bid record escrow has already been drained")
	ErrInvalidAddress       = errors.New("invalid address")
	ErrMissingSignature     = errors.New("required signature is missing")
	ErrUnauthorized         = errors.New("caller is not allowed to perform this operation")
	ErrArithmeticOverflow   = errors.New("arithmetic overflow")
	ErrEscrowInvariant      = errors.New("escrow balance does not cover the bid")
)

// Category groups failures by how a caller can react to them.
type Category string

const (
	CategoryTemporal      Category = "temporal"
	CategoryOrdering      Category = "ordering"
	CategoryTerminalState Category = "terminal_state"
	CategoryIntegrity     Category = "integrity"
	CategoryResource      Category = "resource"
	CategoryAuth          Category = "auth"
	CategoryNotFound      Category = "not_found"
	CategoryConflict      Category = "conflict"
	CategoryInternal      Category = "internal"
)

type failure struct {
	code     string
	category Category
}

var failures = map[error]failure{
	ErrStartTimeTooEarly:         {"StartTimeTooEarly", CategoryTemporal},
	ErrEndingTimeTooEarly:        {"EndingTimeTooEarly", CategoryTemporal},
	ErrBidTooEarly:               {"BidTooEarly", CategoryTemporal},
	ErrBidTooLate:                {"BidTooLate", CategoryTemporal},
	ErrAuctionNotOver:            {"AuctionNotOver", CategoryTemporal},
	ErrBidTooLow:                 {"BidTooLow", CategoryOrdering},
	ErrAuctionAlreadyEnded:       {"AuctionAlreadyEnded", CategoryTerminalState},
	ErrInvalidRefund:             {"InvalidRefund", CategoryTerminalState},
	ErrHighestBidderCannotRefund: {"HighestBidderCannotRefund", CategoryTerminalState},
	ErrBidRecordRetired:          {"BidRecordRetired", CategoryTerminalState},
	ErrAccountMismatch:           {"AccountMismatch", CategoryIntegrity},
	ErrInvalidBeneficiary:        {"InvalidBeneficiary", CategoryIntegrity},
	ErrNoBids:                    {"NoBids", CategoryIntegrity},
	ErrInvalidAddress:            {"InvalidAddress", CategoryIntegrity},
	ErrInsufficientFunds:         {"InsufficientFunds", CategoryResource},
	ErrMissingSignature:          {"MissingSignature", CategoryAuth},
	ErrUnauthorized:              {"Unauthorized", CategoryAuth},
	ErrAuctionNotFound:           {"AuctionNotFound", CategoryNotFound},
	ErrBidRecordNotFound:         {"BidRecordNotFound", CategoryNotFound},
	ErrAuctionAlreadyExists:      {"AuctionAlreadyExists", CategoryConflict},
	ErrArithmeticOverflow:        {"ArithmeticOverflow", CategoryInternal},
	ErrEscrowInvariant:           {"EscrowInvariant", CategoryInternal},
}

func lookup(err error) (failure, bool) {
	for sentinel, f := range failures {
		if errors.Is(err, sentinel) {
			return f, true
		}
	}
	return failure{}, false
}

// CategoryOf returns the category of the known failure wrapped in err,
// CategoryInternal for anything else.
func CategoryOf(err error) Category {
	if f, ok := lookup(err); ok {
		return f.category
	}
	return CategoryInternal
}

// CodeOf returns the stable failure code of err, "Internal" when unknown.
func CodeOf(err error) string {
	if f, ok := lookup(err); ok {
		return f.code
	}
	return "Internal"
}
