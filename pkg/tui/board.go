package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jaydubbbbb/train-departures-backend/pkg/board"
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	platformStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	minutesStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)

// RenderBoard prints the departure board for both directions to stdout.
func RenderBoard(result board.Board, stationName string) {
	fmt.Println(accentStyle.Render(fmt.Sprintf("\n--- 🚆 %s ---", stationName)))

	renderDirection("Perth-bound", result.Citybound)
	renderDirection("South-bound", result.Outbound)
	fmt.Println()
}

func renderDirection(title string, deps []board.Departure) {
	fmt.Printf("\n%s\n", headerStyle.Render(title))

	if len(deps) == 0 {
		fmt.Println(errorStyle.Render("  No upcoming departures."))
		return
	}

	for _, d := range deps {
		countdown := "Now"
		if d.Minutes > 0 {
			countdown = fmt.Sprintf("%d min", d.Minutes)
		}

		platform := ""
		if d.Platform != "" {
			platform = platformStyle.Render(fmt.Sprintf(" [Plat %s]", d.Platform))
		}

		fmt.Printf("  • %s %s%s (%s, %s)\n",
			minutesStyle.Render(countdown),
			d.Destination,
			platform,
			d.Pattern,
			d.Stops,
		)
	}
}
