package rest

import (
	"github.com/cristianortiz/auctionEscrow/internal/auction/application"
	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"github.com/cristianortiz/auctionEscrow/internal/shared/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// AuctionHandler exposes the auction service over REST.
type AuctionHandler struct {
	service  application.AuctionService
	faucet   domain.Faucet
	validate *validator.Validate
}

// NewAuctionHandler builds the handler. A nil faucet disables airdrops.
func NewAuctionHandler(service application.AuctionService, faucet domain.Faucet) *AuctionHandler {
	return &AuctionHandler{
		service:  service,
		faucet:   faucet,
		validate: validator.New(),
	}
}

// Register mounts every route on router.
func (h *AuctionHandler) Register(router fiber.Router) {
	router.Use(verifySigner)

	router.Get("/addresses/auction", h.auctionAddress)
	router.Get("/addresses/bid", h.bidAddress)

	router.Post("/auctions", h.initializeAuction)
	router.Get("/auctions/:address", h.getAuction)
	router.Post("/auctions/:address/bids", h.placeBid)
	router.Post("/auctions/:address/settle", h.settleAuction)
	router.Post("/auctions/:address/refund", h.refundBid)

	router.Get("/bids/:address", h.getBidRecord)

	router.Get("/accounts/:address/balance", h.getBalance)
	if h.faucet != nil {
		router.Post("/accounts/:address/airdrop", h.airdrop)
	}
}

func (h *AuctionHandler) bind(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return err
	}
	return h.validate.Struct(out)
}

func pathAddress(c *fiber.Ctx) (domain.Address, error) {
	return domain.ParseAddress(c.Params("address"))
}

func (h *AuctionHandler) initializeAuction(c *fiber.Ctx) error {
	var req InitializeAuctionRequest
	if err := h.bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	initializer, ok := callerOf(c)
	if !ok {
		return writeError(c, domain.ErrMissingSignature)
	}
	beneficiary, err := domain.ParseAddress(req.Beneficiary)
	if err != nil {
		return writeError(c, err)
	}

	state, err := h.service.InitializeAuction(c.UserContext(), application.InitializeAuctionDTO{
		Initializer:  initializer,
		Beneficiary:  beneficiary,
		BiddingStart: req.BiddingStart,
		BiddingEnd:   req.BiddingEnd,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(state)
}

func (h *AuctionHandler) getAuction(c *fiber.Ctx) error {
	addr, err := pathAddress(c)
	if err != nil {
		return writeError(c, err)
	}
	state, err := h.service.GetAuctionState(c.UserContext(), addr)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(state)
}

func (h *AuctionHandler) placeBid(c *fiber.Ctx) error {
	auction, err := pathAddress(c)
	if err != nil {
		return writeError(c, err)
	}
	var req PlaceBidRequest
	if err := h.bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	bidder, ok := callerOf(c)
	if !ok {
		return writeError(c, domain.ErrMissingSignature)
	}

	res, err := h.service.PlaceBid(c.UserContext(), application.PlaceBidDTO{
		Auction: auction,
		Bidder:  bidder,
		Amount:  req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

func (h *AuctionHandler) settleAuction(c *fiber.Ctx) error {
	auction, err := pathAddress(c)
	if err != nil {
		return writeError(c, err)
	}
	var req SettleAuctionRequest
	if err := h.bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	record, err := domain.ParseAddress(req.BidRecord)
	if err != nil {
		return writeError(c, err)
	}
	beneficiary, err := domain.ParseAddress(req.Beneficiary)
	if err != nil {
		return writeError(c, err)
	}

	res, err := h.service.SettleAuction(c.UserContext(), application.SettleAuctionDTO{
		Auction:     auction,
		BidRecord:   record,
		Beneficiary: beneficiary,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

func (h *AuctionHandler) refundBid(c *fiber.Ctx) error {
	auction, err := pathAddress(c)
	if err != nil {
		return writeError(c, err)
	}
	var req RefundBidRequest
	if len(c.Body()) > 0 {
		if err := h.bind(c, &req); err != nil {
			return badRequest(c, err.Error())
		}
	}
	bidder, ok := callerOf(c)
	if !ok {
		return writeError(c, domain.ErrMissingSignature)
	}
	cmd := application.RefundBidDTO{Auction: auction, Bidder: bidder}
	if req.BidRecord != "" {
		if cmd.BidRecord, err = domain.ParseAddress(req.BidRecord); err != nil {
			return writeError(c, err)
		}
	}

	res, err := h.service.RefundBid(c.UserContext(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

func (h *AuctionHandler) getBidRecord(c *fiber.Ctx) error {
	addr, err := pathAddress(c)
	if err != nil {
		return writeError(c, err)
	}
	rec, err := h.service.GetBidRecord(c.UserContext(), addr)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rec)
}

func (h *AuctionHandler) getBalance(c *fiber.Ctx) error {
	addr, err := pathAddress(c)
	if err != nil {
		return writeError(c, err)
	}
	balance, err := h.service.GetBalance(c.UserContext(), addr)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(BalanceResponse{Address: addr.String(), Balance: balance})
}

func (h *AuctionHandler) airdrop(c *fiber.Ctx) error {
	addr, err := pathAddress(c)
	if err != nil {
		return writeError(c, err)
	}
	var req AirdropRequest
	if err := h.bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.faucet.Airdrop(c.UserContext(), addr, req.Amount); err != nil {
		return writeError(c, err)
	}
	log.Info("Airdrop credited", zap.Stringer("address", addr), zap.Uint64("amount", req.Amount))

	balance, err := h.service.GetBalance(c.UserContext(), addr)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(BalanceResponse{Address: addr.String(), Balance: balance})
}

func (h *AuctionHandler) auctionAddress(c *fiber.Ctx) error {
	initializer, err := domain.ParseAddress(c.Query("initializer"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(AddressResponse{Address: domain.AuctionStateAddress(initializer).String()})
}

func (h *AuctionHandler) bidAddress(c *fiber.Ctx) error {
	bidder, err := domain.ParseAddress(c.Query("bidder"))
	if err != nil {
		return writeError(c, err)
	}
	auction, err := domain.ParseAddress(c.Query("auction"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(AddressResponse{Address: domain.BidRecordAddress(bidder, auction).String()})
}
