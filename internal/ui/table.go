package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RoomInfo is shown to the caller once the server accepts the room.
type RoomInfo struct {
	Code    string
	Server  string
	Timeout string
}

func (r RoomInfo) View() string {
	content := fmt.Sprintf("%s Room Created!\n\n%s Code:    %s\n%s Server:  %s",
		IconSuccess,
		IconCopy, BoldStyle.Foreground(Primary).Render(r.Code),
		IconWeb, MutedStyle.Render(r.Server),
	)
	if r.Timeout != "" {
		content += fmt.Sprintf("\n%s Expires: %s unless someone joins", IconWaiting, MutedStyle.Render(r.Timeout))
	}
	content += "\n\n" + MutedStyle.Render("Join with: ") +
		lipgloss.NewStyle().Foreground(Secondary).Render("warpline join "+r.Code)

	return RoomBoxStyle.Render(content)
}

// ServerStatus mirrors the server's health report.
type ServerStatus struct {
	URL         string
	Status      string
	ActiveRooms int
	OpenRooms   int
	PairedRooms int
}

// StatusView renders the health report as a table.
func StatusView(s ServerStatus) string {
	t := table.NewWriter()
	t.SetTitle("📊 Signaling Server")
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Server", s.URL},
		{"Status", s.Status},
		{"Active Rooms", s.ActiveRooms},
		{"Waiting For Peer", s.OpenRooms},
		{"Paired", s.PairedRooms},
	})
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	return t.Render()
}

func RenderStatus(s ServerStatus) {
	fmt.Println(StatusView(s))
}
