// Package render formats beacons and command replies as Discord message text.
package render

import (
	"fmt"
	"strings"

	"wp-matchmaking/internal/domain"
)

const lantern = "🏮"

// GamesList renders beacons as a fixed-width table in a code block, or a
// nobody-waiting message when there are none. Row order follows input order.
func GamesList(beacons []domain.Beacon, title string) string {
	if len(beacons) == 0 {
		return emptyListMessage(title)
	}

	var table strings.Builder
	table.WriteString("`")
	table.WriteString(heading(title))
	for _, beacon := range beacons {
		table.WriteString(entry(beacon))
	}
	table.WriteString("`")
	return table.String()
}

// GameTitle returns the list heading for a single game, empty for all games
func GameTitle(game *domain.Game) string {
	if game == nil {
		return ""
	}
	return "All " + strings.ToUpper(game.Name)
}

func heading(title string) string {
	if title == "" {
		title = "All Available"
	}
	return fmt.Sprintf("WP Matchmaking\n%s Beacons\n\n", title)
}

func entry(beacon domain.Beacon) string {
	game := pad(strings.ToUpper(beacon.GameName), 6)
	username := pad(take(beacon.Username, 16), 17)
	remaining := pad(timeFromMinutes(beacon.MinutesRemaining()), 7)
	platform := pad(strings.ToUpper(beacon.Platform), 5)
	return fmt.Sprintf("%s %s %s  %s %s\n", lantern, game, username, remaining, platform)
}

// take keeps the first n characters, no ellipsis
func take(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func pad(s string, width int) string {
	if delta := width - len([]rune(s)); delta > 0 {
		return s + strings.Repeat(" ", delta)
	}
	return s
}

func timeFromMinutes(mins int) string {
	hours := mins / 60
	minutes := mins % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func emptyListMessage(title string) string {
	if title == "" {
		title = "any games"
	}
	return fmt.Sprintf("No one is waiting for %s, yet!\n"+
		"Don't forget to add yourself to the waiting list. Check out"+
		" **!helpme games**", title)
}
