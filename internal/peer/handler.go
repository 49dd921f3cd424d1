package peer

import (
	"log/slog"

	"github.com/BioHazard786/warpline/internal/signaling"
)

// Handler routes incoming signaling messages to appropriate channels.
type Handler struct {
	client     *Client
	Created    chan string
	Joined     chan string
	PeerJoined chan struct{}
	PeerLeft   chan struct{}
	RoomClosed chan struct{}
	Signal     chan *Message
	Error      chan string
	done       chan struct{}
}

// NewHandler creates a new message handler.
func NewHandler(client *Client) *Handler {
	return &Handler{
		client:     client,
		Created:    make(chan string, 1),
		Joined:     make(chan string, 1),
		PeerJoined: make(chan struct{}, 1),
		PeerLeft:   make(chan struct{}, 1),
		RoomClosed: make(chan struct{}, 1),
		Signal:     make(chan *Message, 32),
		Error:      make(chan string, 1),
		done:       make(chan struct{}),
	}
}

// Start routes messages until the connection ends, then closes Done.
func (h *Handler) Start() {
	defer close(h.done)

	for msg := range h.client.Incoming() {
		switch msg.Type {
		case signaling.TypeCreated:
			notify(h.Created, msg.Code)

		case signaling.TypeJoined:
			notify(h.Joined, msg.Code)

		case signaling.TypePeerJoined:
			notify(h.PeerJoined, struct{}{})

		case signaling.TypeHangUp:
			notify(h.PeerLeft, struct{}{})

		case signaling.TypeRoomClosed:
			notify(h.RoomClosed, struct{}{})

		case signaling.TypeOffer, signaling.TypeAnswer, signaling.TypeICECandidate:
			h.Signal <- msg

		case signaling.TypeError:
			notify(h.Error, describeReason(msg.Reason))

		default:
			slog.Debug("ignoring signaling message", "type", msg.Type)
		}
	}
}

// Done is closed once the server connection is gone.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}

// notify delivers a one-shot notification, dropping repeats nobody read.
func notify[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}
