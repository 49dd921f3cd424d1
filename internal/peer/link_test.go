package peer

import (
	"testing"
	"time"

	pion "github.com/pion/webrtc/v4"

	"github.com/BioHazard786/warpline/internal/config"
	"github.com/BioHazard786/warpline/internal/signaling"
)

func candidate(line, mid string) *pion.ICECandidateInit {
	var index uint16
	return &pion.ICECandidateInit{Candidate: line, SDPMid: &mid, SDPMLineIndex: &index}
}

// newLink builds a link without STUN so nothing leaves the machine.
func newLink(t *testing.T, client *Client) *Link {
	t.Helper()
	pc, err := NewPeerConnection(&config.Client{})
	if err != nil {
		t.Fatalf("peer connection: %v", err)
	}
	link := NewLink(pc, client)
	t.Cleanup(func() { link.Close() })
	return link
}

func TestNewPeerConnectionWithTURN(t *testing.T) {
	pc, err := NewPeerConnection(&config.Client{
		STUNServer: "stun:stun.example.com:3478",
		TURNServer: "turn:turn.example.com",
		TURNUser:   "user",
		TURNPass:   "pass",
	})
	if err != nil {
		t.Fatalf("peer connection: %v", err)
	}
	defer pc.Close()

	servers := pc.GetConfiguration().ICEServers
	if len(servers) != 2 {
		t.Fatalf("expected STUN and TURN entries, got %d", len(servers))
	}
	if servers[1].Username != "user" || len(servers[1].URLs) != 2 {
		t.Errorf("unexpected TURN entry %+v", servers[1])
	}
}

func TestCandidatesQueueUntilRemoteDescription(t *testing.T) {
	link := newLink(t, NewClient("ws://unused"))

	early := &Message{Type: signaling.TypeICECandidate, Candidate: candidate("candidate:1 1 udp 2130706431 192.0.2.7 50000 typ host", "0")}
	if err := link.HandleSignal(early); err != nil {
		t.Fatalf("queue candidate: %v", err)
	}
	if got := link.Pending(); got != 1 {
		t.Fatalf("expected 1 queued candidate, got %d", got)
	}

	empty := &Message{Type: signaling.TypeICECandidate}
	if err := link.HandleSignal(empty); err != nil {
		t.Fatalf("empty candidate: %v", err)
	}
	if got := link.Pending(); got != 1 {
		t.Errorf("empty candidate should be ignored, queue is %d", got)
	}
}

func TestOfferAnswerThroughServer(t *testing.T) {
	url := startServer(t, time.Minute)
	caller, ch, callee, eh := pair(t, url, "sdp")

	callerLink := newLink(t, caller)
	calleeLink := newLink(t, callee)

	if err := callerLink.Offer(); err != nil {
		t.Fatalf("offer: %v", err)
	}

	// The callee answers the first offer; candidates may arrive around it.
	for {
		msg := receive(t, eh.Signal, "offer")
		if err := calleeLink.HandleSignal(msg); err != nil {
			t.Fatalf("callee signal %s: %v", msg.Type, err)
		}
		if msg.Type == signaling.TypeOffer {
			break
		}
	}

	for {
		msg := receive(t, ch.Signal, "answer")
		if err := callerLink.HandleSignal(msg); err != nil {
			t.Fatalf("caller signal %s: %v", msg.Type, err)
		}
		if msg.Type == signaling.TypeAnswer {
			break
		}
	}

	if callerLink.pc.RemoteDescription() == nil {
		t.Fatal("caller has no remote description")
	}
	if calleeLink.pc.RemoteDescription() == nil {
		t.Fatal("callee has no remote description")
	}
	if callerLink.Pending() != 0 || calleeLink.Pending() != 0 {
		t.Error("queued candidates should be flushed once descriptions are set")
	}
}
