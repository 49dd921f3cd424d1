package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/BioHazard786/warpline/internal/peer"
	"github.com/BioHazard786/warpline/internal/server"
	"github.com/BioHazard786/warpline/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a signaling server's health and room counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadClientConfig()
		if err != nil {
			return err
		}

		url := cfg.HealthURL()
		req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, url, nil)
		if err != nil {
			return peer.NewError("status", err)
		}

		client := &http.Client{Timeout: 5 * time.Second}
		resp, err := client.Do(req)
		if err != nil {
			return peer.NewError("status", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return peer.WrapError("status", peer.ErrSignaling, fmt.Sprintf("HTTP %d", resp.StatusCode))
		}

		var health server.HealthResponse
		if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
			return peer.NewError("decode health", err)
		}

		ui.RenderStatus(ui.ServerStatus{
			URL:         url,
			Status:      health.Status,
			ActiveRooms: health.ActiveRooms,
			OpenRooms:   health.OpenRooms,
			PairedRooms: health.PairedRooms,
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	addClientFlags(statusCmd)
}
