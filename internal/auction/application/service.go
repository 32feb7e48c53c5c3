package application

import (
	"context"

	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
)

// AuctionService defines application interface layer of auction module
// exposes uses cases to external layer, aka infra
type AuctionService interface {
	InitializeAuction(ctx context.Context, cmd InitializeAuctionDTO) (*AuctionStateDTO, error)
	PlaceBid(ctx context.Context, cmd PlaceBidDTO) (*PlaceBidResult, error)
	SettleAuction(ctx context.Context, cmd SettleAuctionDTO) (*SettleAuctionResult, error)
	RefundBid(ctx context.Context, cmd RefundBidDTO) (*RefundBidResult, error)
	GetAuctionState(ctx context.Context, auction domain.Address) (*AuctionStateDTO, error)
	GetBidRecord(ctx context.Context, record domain.Address) (*BidRecordDTO, error)
	GetBalance(ctx context.Context, addr domain.Address) (uint64, error)
}

// concret implementation of AuctionService (struct)
type auctionService struct {
	initializeUC *InitializeAuctionUseCase
	placeBidUC   *PlaceBidUseCase
	settleUC     *SettleAuctionUseCase
	refundUC     *RefundBidUseCase
	getStateUC   *GetAuctionStateUseCase
	getRecordUC  *GetBidRecordUseCase
	getBalanceUC *GetBalanceUseCase
}

// NewAuctionService wires every use case over the same store and notifier.
func NewAuctionService(store domain.Store, notifier AuctionNotifier) AuctionService {
	return &auctionService{
		initializeUC: NewInitializeAuctionUseCase(store, notifier),
		placeBidUC:   NewPlaceBidUseCase(store, notifier),
		settleUC:     NewSettleAuctionUseCase(store, notifier),
		refundUC:     NewRefundBidUseCase(store, notifier),
		getStateUC:   NewGetAuctionStateUseCase(store),
		getRecordUC:  NewGetBidRecordUseCase(store),
		getBalanceUC: NewGetBalanceUseCase(store),
	}
}

func (as *auctionService) InitializeAuction(ctx context.Context, cmd InitializeAuctionDTO) (*AuctionStateDTO, error) {
	return as.initializeUC.Execute(ctx, cmd)
}

// PlaceBid implements AuctionService.
func (as *auctionService) PlaceBid(ctx context.Context, cmd PlaceBidDTO) (*PlaceBidResult, error) {
	return as.placeBidUC.Execute(ctx, cmd)
}

func (as *auctionService) SettleAuction(ctx context.Context, cmd SettleAuctionDTO) (*SettleAuctionResult, error) {
	return as.settleUC.Execute(ctx, cmd)
}

func (as *auctionService) RefundBid(ctx context.Context, cmd RefundBidDTO) (*RefundBidResult, error) {
	return as.refundUC.Execute(ctx, cmd)
}

// GetAuctionState to implementss AuctionService
func (as *auctionService) GetAuctionState(ctx context.Context, auction domain.Address) (*AuctionStateDTO, error) {
	return as.getStateUC.Execute(ctx, auction)
}

func (as *auctionService) GetBidRecord(ctx context.Context, record domain.Address) (*BidRecordDTO, error) {
	return as.getRecordUC.Execute(ctx, record)
}

func (as *auctionService) GetBalance(ctx context.Context, addr domain.Address) (uint64, error) {
	return as.getBalanceUC.Execute(ctx, addr)
}
