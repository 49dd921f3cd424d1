package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BioHazard786/warpline/internal/logging"
	"github.com/BioHazard786/warpline/internal/ui"
	"github.com/BioHazard786/warpline/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "warpline",
	Short: "Room-based WebRTC signaling server and peer-to-peer chat",
	Long: `Warpline pairs two people through a short room code and then gets out of the way.

Run "warpline serve" to host the signaling server. One person runs
"warpline create" and shares the code, the other runs "warpline join <code>",
and the two chat over a direct WebRTC data channel.`,
	Version: version.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Peer commands draw a terminal UI, so stay quiet unless asked.
		logging.Init(slog.LevelError)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
