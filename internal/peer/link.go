package peer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	pion "github.com/pion/webrtc/v4"

	"github.com/BioHazard786/warpline/internal/config"
	"github.com/BioHazard786/warpline/internal/signaling"
)

const (
	ChannelLabel = "warpline"
	OpenTimeout  = 30 * time.Second
)

// Link is one side of the peer connection negotiated over signaling.
type Link struct {
	pc     *pion.PeerConnection
	client *Client

	mu        sync.Mutex
	remoteSet bool
	pending   []pion.ICECandidateInit

	opened chan *pion.DataChannel
	failed chan struct{}
}

// NewPeerConnection builds a pion connection from the client's ICE settings.
func NewPeerConnection(cfg *config.Client) (*pion.PeerConnection, error) {
	var iceServers []pion.ICEServer
	if stunServers := cfg.GetSTUNServers(); stunServers != nil {
		iceServers = append(iceServers, pion.ICEServer{URLs: stunServers})
	}
	if turnServers := cfg.GetTURNServers(); turnServers != nil {
		username, password := cfg.GetTURNCredentials()
		iceServers = append(iceServers, pion.ICEServer{
			URLs:       turnServers,
			Username:   username,
			Credential: password,
		})
	}

	pc, err := pion.NewPeerConnection(pion.Configuration{ICEServers: iceServers})
	if err != nil {
		return nil, NewError("create peer connection", err)
	}
	return pc, nil
}

// NewLink wraps pc and trickles its local candidates through client.
func NewLink(pc *pion.PeerConnection, client *Client) *Link {
	l := &Link{
		pc:     pc,
		client: client,
		opened: make(chan *pion.DataChannel, 1),
		failed: make(chan struct{}, 1),
	}

	pc.OnICECandidate(func(c *pion.ICECandidate) {
		if c == nil {
			return
		}
		client.SendMessage(iceCandidate(c.ToJSON()))
	})

	pc.OnConnectionStateChange(func(state pion.PeerConnectionState) {
		slog.Debug("peer connection state", "state", state.String())
		if state == pion.PeerConnectionStateFailed || state == pion.PeerConnectionStateClosed {
			notify(l.failed, struct{}{})
		}
	})

	// The callee learns about the channel from the caller's offer.
	pc.OnDataChannel(func(dc *pion.DataChannel) {
		l.watch(dc)
	})

	return l
}

func (l *Link) watch(dc *pion.DataChannel) {
	dc.OnOpen(func() {
		notify(l.opened, dc)
	})
}

// Offer opens the data channel and sends the caller's offer.
func (l *Link) Offer() error {
	ordered := true
	dc, err := l.pc.CreateDataChannel(ChannelLabel, &pion.DataChannelInit{Ordered: &ordered})
	if err != nil {
		return NewError("create data channel", err)
	}
	l.watch(dc)

	desc, err := l.pc.CreateOffer(nil)
	if err != nil {
		return NewError("create offer", err)
	}
	if err := l.pc.SetLocalDescription(desc); err != nil {
		return NewError("set local description", err)
	}

	l.client.SendMessage(offer(l.pc.LocalDescription().SDP))
	return nil
}

// HandleSignal applies a relayed offer, answer or ICE candidate.
func (l *Link) HandleSignal(msg *Message) error {
	switch msg.Type {
	case signaling.TypeOffer:
		if err := l.setRemote(pion.SessionDescription{Type: pion.SDPTypeOffer, SDP: msg.SDP}); err != nil {
			return err
		}
		desc, err := l.pc.CreateAnswer(nil)
		if err != nil {
			return NewError("create answer", err)
		}
		if err := l.pc.SetLocalDescription(desc); err != nil {
			return NewError("set local description", err)
		}
		l.client.SendMessage(answer(l.pc.LocalDescription().SDP))

	case signaling.TypeAnswer:
		return l.setRemote(pion.SessionDescription{Type: pion.SDPTypeAnswer, SDP: msg.SDP})

	case signaling.TypeICECandidate:
		if msg.Candidate == nil {
			return nil
		}
		l.mu.Lock()
		if !l.remoteSet {
			l.pending = append(l.pending, *msg.Candidate)
			l.mu.Unlock()
			return nil
		}
		l.mu.Unlock()
		if err := l.pc.AddICECandidate(*msg.Candidate); err != nil {
			return NewError("add ICE candidate", err)
		}
	}
	return nil
}

// setRemote applies desc and then any candidates that arrived before it.
func (l *Link) setRemote(desc pion.SessionDescription) error {
	if err := l.pc.SetRemoteDescription(desc); err != nil {
		return NewError("set remote description", err)
	}

	l.mu.Lock()
	l.remoteSet = true
	pending := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, c := range pending {
		if err := l.pc.AddICECandidate(c); err != nil {
			slog.Debug("dropping queued candidate", "err", err)
		}
	}
	return nil
}

// Pending reports how many remote candidates are waiting for a description.
func (l *Link) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Negotiate feeds relayed signals into the link until the data channel
// opens or the session ends.
func (l *Link) Negotiate(ctx context.Context, h *Handler) (*pion.DataChannel, error) {
	ctx, cancel := context.WithTimeout(ctx, OpenTimeout)
	defer cancel()

	for {
		select {
		case dc := <-l.opened:
			return dc, nil

		case msg := <-h.Signal:
			if err := l.HandleSignal(msg); err != nil {
				return nil, err
			}

		case <-l.failed:
			return nil, NewError("negotiate", ErrConnectionFailed)

		case <-h.PeerLeft:
			return nil, NewError("negotiate", ErrPeerLeft)

		case <-h.RoomClosed:
			return nil, NewError("negotiate", ErrRoomClosed)

		case reason := <-h.Error:
			return nil, WrapError("negotiate", ErrSignaling, reason)

		case <-h.Done():
			return nil, NewError("negotiate", ErrDisconnected)

		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, WrapError("negotiate", ErrTimeout, "data channel did not open")
			}
			return nil, NewError("negotiate", ctx.Err())
		}
	}
}

// Failed fires when the peer connection fails or closes.
func (l *Link) Failed() <-chan struct{} {
	return l.failed
}

func (l *Link) Close() error {
	return l.pc.Close()
}
