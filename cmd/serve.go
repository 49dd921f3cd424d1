package cmd

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/BioHazard786/warpline/internal/config"
	"github.com/BioHazard786/warpline/internal/logging"
	"github.com/BioHazard786/warpline/internal/server"
)

var (
	flagPort           int
	flagIdleTimeout    time.Duration
	flagMaxMessageSize int64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the signaling server",
	Long: `Run the WebSocket signaling server.

Configuration is read from flags, then environment, then defaults:
  --port              PORT               (8080)
  --idle-timeout      ROOM_IDLE_TIMEOUT  (5m)
  --max-message-size  MAX_MESSAGE_SIZE   (65536)

Examples:
  warpline serve
  warpline serve --port 9000 --idle-timeout 2m`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(slog.LevelInfo)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadServer(config.ServerOptions{
			Port:           flagPort,
			IdleTimeout:    flagIdleTimeout,
			MaxMessageSize: flagMaxMessageSize,
		})
		if err != nil {
			return err
		}

		if err := server.New(cfg).Run(cmd.Context()); err != nil {
			return err
		}
		slog.Info("signaling server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&flagPort, "port", "p", 0, "Port to listen on")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "How long an unpaired room lives, e.g. 5m")
	serveCmd.Flags().Int64Var(&flagMaxMessageSize, "max-message-size", 0, "Largest accepted signaling frame in bytes")
}
