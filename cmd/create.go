package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BioHazard786/warpline/internal/codegen"
	"github.com/BioHazard786/warpline/internal/peer"
	"github.com/BioHazard786/warpline/internal/ui"
)

var createCmd = &cobra.Command{
	Use:     "create [code]",
	Aliases: []string{"c"},
	Short:   "Create a room and wait for someone to join",
	Long: `Create a room on the signaling server and wait for a peer.

Without a code a random one is generated. Share it with the other person,
who runs "warpline join <code>".

Examples:
  warpline create
  warpline create my-secret-room
  warpline create --server wss://signal.example.com/ws`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := codegen.New()
		if len(args) == 1 {
			code = args[0]
		}

		cfg, err := loadClientConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		conn, err := NewConnectionContext(ctx, cfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		conn.Client.SendMessage(peer.Create(code))
		code, err = waitFor(ctx, conn, "create room", conn.Handler.Created)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(ui.RoomInfo{Code: code, Server: cfg.ServerURL}.View())
		fmt.Println()

		stopSpinner := ui.RunWaitingSpinner("Waiting for someone to join...")
		_, err = waitFor(ctx, conn, "wait for peer", conn.Handler.PeerJoined)
		stopSpinner()
		if err != nil {
			return err
		}
		ui.PrintSuccess("Peer joined.")

		return runChat(ctx, conn, code, true)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	addClientFlags(createCmd)
}
