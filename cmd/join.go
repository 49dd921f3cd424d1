package cmd

import (
	"github.com/spf13/cobra"

	"github.com/BioHazard786/warpline/internal/peer"
	"github.com/BioHazard786/warpline/internal/ui"
)

var joinCmd = &cobra.Command{
	Use:     "join <code>",
	Aliases: []string{"j"},
	Short:   "Join a room created by someone else",
	Long: `Join an existing room and start chatting with its creator.

Examples:
  warpline join amber-otter-harbor-42
  warpline join my-secret-room --server wss://signal.example.com/ws`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		conn.Client.SendMessage(peer.Join(args[0]))
		code, err := waitFor(ctx, conn, "join room", conn.Handler.Joined)
		if err != nil {
			return err
		}
		ui.PrintSuccess("Joined room " + code + ".")

		return runChat(ctx, conn, code, false)
	},
}

func init() {
	rootCmd.AddCommand(joinCmd)
	addClientFlags(joinCmd)
}
