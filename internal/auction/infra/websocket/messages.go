package websocket

import "github.com/cristianortiz/auctionEscrow/internal/auction/application"

// MessageType defines ws type message
type MessageType string

const (
	MessageTypeClientGetState     MessageType = "client_get_state"     // client asks for the current auction state
	MessageTypeServerAuctionEvent MessageType = "server_auction_event" // server pushes a committed change
	MessageTypeServerAuctionState MessageType = "server_auction_state" // server answers client_get_state
	MessageTypeServerError        MessageType = "server_error"
)

// BaseMessage is base struct for all the WS messages, includes a Type field for identify the message type
type BaseMessage struct {
	Type MessageType `json:"type"`
}

type ServerAuctionEventMessage struct {
	BaseMessage
	Payload application.AuctionEvent `json:"payload"`
}

type ServerAuctionStateMessage struct {
	BaseMessage
	Payload application.AuctionStateDTO `json:"payload"`
}

type ServerErrorMessage struct {
	BaseMessage
	Payload struct {
		Error string `json:"error"`
	} `json:"payload"`
}
