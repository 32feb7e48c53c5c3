package websocket

import (
	"context"
	"encoding/json"

	"github.com/cristianortiz/auctionEscrow/internal/auction/application"
	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"github.com/cristianortiz/auctionEscrow/internal/shared/logger"
	"github.com/cristianortiz/auctionEscrow/internal/shared/websocket"
	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// AuctionWSHandler pushes committed auction changes to subscribers and answers
// their state requests.
type AuctionWSHandler struct {
	auctionService application.AuctionService
	hub            *websocket.Hub
}

func NewAuctionWSHandler(auctionService application.AuctionService, hub *websocket.Hub) *AuctionWSHandler {
	return &AuctionWSHandler{
		auctionService: auctionService,
		hub:            hub,
	}
}

// SetService sets the service used to answer state requests. The handler is
// also the service's notifier, so it is built first.
func (h *AuctionWSHandler) SetService(auctionService application.AuctionService) {
	h.auctionService = auctionService
}

// AuctionUpdated implements application.AuctionNotifier.
func (h *AuctionWSHandler) AuctionUpdated(_ context.Context, event application.AuctionEvent) {
	data, err := json.Marshal(ServerAuctionEventMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerAuctionEvent},
		Payload:     event,
	})
	if err != nil {
		log.Error("failed to marshal auction event", zap.Error(err))
		return
	}
	h.hub.Broadcast(event.Auction.Address.String(), data)
}

// Register mounts the upgrade route on app. ctx bounds the client pumps.
func (h *AuctionWSHandler) Register(ctx context.Context, app *fiber.App) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/auctions/:address", func(c *fiber.Ctx) error {
		if _, err := domain.ParseAddress(c.Params("address")); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Next()
	}, fiberws.New(func(conn *fiberws.Conn) {
		client := websocket.NewClient(h.hub, conn, conn.Params("address"), uuid.NewString())
		h.hub.RegisterClient(client)
		go client.WritePump(ctx)
		client.ReadPump(ctx)
	}))
}

// ListenForMessages dispatches inbound client messages until ctx is cancelled.
func (h *AuctionWSHandler) ListenForMessages(ctx context.Context) {
	log.Info("AuctionWSHandler started listening for inbound messages from hub")
	for {
		select {
		case <-ctx.Done():
			log.Info("AuctionWSHandler stopped listening for inbound messages from hub")
			return
		case msg := <-h.hub.InboundMessages:
			go h.processMessage(ctx, msg.Client, msg.Data)
		}
	}
}

func (h *AuctionWSHandler) processMessage(ctx context.Context, client *websocket.Client, data []byte) {
	var baseMsg BaseMessage
	if err := json.Unmarshal(data, &baseMsg); err != nil {
		h.sendErrorToClient(client, "invalid message format")
		return
	}
	switch baseMsg.Type {
	case MessageTypeClientGetState:
		h.handleGetState(ctx, client)
	default:
		h.sendErrorToClient(client, "unknown message type")
	}
}

func (h *AuctionWSHandler) handleGetState(ctx context.Context, client *websocket.Client) {
	addr, err := domain.ParseAddress(client.Topic)
	if err != nil {
		h.sendErrorToClient(client, err.Error())
		return
	}
	state, err := h.auctionService.GetAuctionState(ctx, addr)
	if err != nil {
		h.sendErrorToClient(client, err.Error())
		return
	}
	data, err := json.Marshal(ServerAuctionStateMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerAuctionState},
		Payload:     *state,
	})
	if err != nil {
		h.sendErrorToClient(client, "failed to serialize auction state")
		return
	}
	h.send(client, data)
}

// sendErrorToClient serializes and sends an error msg to a specific client
func (h *AuctionWSHandler) sendErrorToClient(client *websocket.Client, errorMessage string) {
	errMsg := ServerErrorMessage{BaseMessage: BaseMessage{Type: MessageTypeServerError}}
	errMsg.Payload.Error = errorMessage
	data, err := json.Marshal(errMsg)
	if err != nil {
		log.Error("failed to marshal ServerErrorMessage", zap.Error(err))
		return
	}
	h.send(client, data)
}

func (h *AuctionWSHandler) send(client *websocket.Client, data []byte) {
	defer func() {
		// Send may have been closed by the hub in the meantime
		if r := recover(); r != nil {
			log.Debug("client gone before reply", zap.String("clientID", client.ID))
		}
	}()
	select {
	case client.Send <- data:
	default:
		log.Warn("client send channel full, could not send msg", zap.String("clientID", client.ID))
	}
}
