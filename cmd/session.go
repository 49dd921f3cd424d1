package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pion "github.com/pion/webrtc/v4"
	"github.com/spf13/cobra"

	"github.com/BioHazard786/warpline/internal/chat"
	"github.com/BioHazard786/warpline/internal/config"
	"github.com/BioHazard786/warpline/internal/peer"
	"github.com/BioHazard786/warpline/internal/ui"
)

const connectTimeout = 10 * time.Second

var (
	flagServer   string
	flagSTUN     string
	flagTURN     string
	flagTURNUser string
	flagTURNPass string
)

// addClientFlags registers the flags shared by the peer commands.
func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagServer, "server", "S", "", "Signaling server websocket URL")
	cmd.Flags().StringVarP(&flagSTUN, "stun", "s", "", "Custom STUN server")
	cmd.Flags().StringVarP(&flagTURN, "turn", "t", "", "Custom TURN server")
	cmd.Flags().StringVarP(&flagTURNUser, "turn-user", "u", "", "TURN username")
	cmd.Flags().StringVarP(&flagTURNPass, "turn-pass", "p", "", "TURN password")
}

func loadClientConfig() (*config.Client, error) {
	cfg, err := config.LoadClient(config.ClientOptions{
		ServerURL:  flagServer,
		STUNServer: flagSTUN,
		TURNServer: flagTURN,
		TURNUser:   flagTURNUser,
		TURNPass:   flagTURNPass,
	})
	if err != nil {
		return nil, peer.NewError("load config", err)
	}
	return cfg, nil
}

// ConnectionContext is one peer's connection to the signaling server.
type ConnectionContext struct {
	Client  *peer.Client
	Handler *peer.Handler
	Config  *config.Client
}

func NewConnectionContext(ctx context.Context, cfg *config.Client) (*ConnectionContext, error) {
	stopSpinner := ui.RunConnectionSpinner("Connecting to server...")
	defer stopSpinner()

	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client := peer.NewClient(cfg.ServerURL)
	if err := client.Connect(dialCtx); err != nil {
		return nil, peer.NewError("connect to server", err)
	}

	handler := peer.NewHandler(client)
	go handler.Start()

	return &ConnectionContext{
		Client:  client,
		Handler: handler,
		Config:  cfg,
	}, nil
}

// Close hangs up and disconnects. The server ignores the hang-up when we
// were never in a room.
func (c *ConnectionContext) Close() {
	c.Client.SendMessage(peer.HangUp())
	c.Client.Close()
}

// waitFor blocks on ch while watching for the ways a room can fall apart.
func waitFor[T any](ctx context.Context, c *ConnectionContext, op string, ch <-chan T) (T, error) {
	var zero T
	select {
	case v := <-ch:
		return v, nil
	case reason := <-c.Handler.Error:
		return zero, peer.WrapError(op, peer.ErrSignaling, reason)
	case <-c.Handler.RoomClosed:
		return zero, peer.WrapError(op, peer.ErrRoomClosed, "nobody joined in time")
	case <-c.Handler.PeerLeft:
		return zero, peer.NewError(op, peer.ErrPeerLeft)
	case <-c.Handler.Done():
		return zero, peer.NewError(op, peer.ErrDisconnected)
	case <-ctx.Done():
		return zero, peer.NewError(op, ctx.Err())
	}
}

// runChat negotiates the data channel and hands the terminal to the chat view.
func runChat(ctx context.Context, c *ConnectionContext, code string, caller bool) error {
	pc, err := peer.NewPeerConnection(c.Config)
	if err != nil {
		return err
	}
	link := peer.NewLink(pc, c.Client)
	defer link.Close()

	stopSpinner := ui.RunConnectionSpinner("Establishing WebRTC connection...")
	if caller {
		if err := link.Offer(); err != nil {
			stopSpinner()
			return err
		}
	}
	dc, err := link.Negotiate(ctx, c.Handler)
	stopSpinner()
	if err != nil {
		return err
	}

	session := chat.NewSession(dc)
	dc.OnMessage(func(msg pion.DataChannelMessage) {
		session.Receive(msg.Data)
	})
	dc.OnClose(session.End)

	stop := make(chan struct{})
	defer close(stop)
	go trickle(link, c.Handler, stop)

	gone := make(chan struct{})
	go func() {
		select {
		case <-c.Handler.PeerLeft:
		case <-c.Handler.RoomClosed:
		case <-c.Handler.Done():
		case <-link.Failed():
		case <-ctx.Done():
		case <-stop:
			return
		}
		close(gone)
	}()

	ui.PrintSuccess("Connected! Say hi.")
	peerLeft, err := ui.RunChat(code, session, gone)
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	if peerLeft {
		ui.PrintWarning("The other person left.")
		return nil
	}

	if err := session.Leave(); err != nil {
		slog.Debug("could not say goodbye", "err", err)
	}
	ui.PrintInfo("You left the room.")
	return nil
}

// trickle keeps applying late ICE candidates after the channel opens.
func trickle(link *peer.Link, h *peer.Handler, stop <-chan struct{}) {
	for {
		select {
		case msg := <-h.Signal:
			if err := link.HandleSignal(msg); err != nil {
				return
			}
		case <-stop:
			return
		}
	}
}
