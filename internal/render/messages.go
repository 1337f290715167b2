package render

import (
	"errors"
	"fmt"
	"strings"

	"wp-matchmaking/internal/domain"
)

// EmbedTitle heads every confirmation embed the bot sends
const EmbedTitle = "🏮 Looking for games service"

// EmbedColor is the accent colour of confirmation embeds
const EmbedColor = 0x00ffb9

// Added confirms to the author that their beacon is on the waiting list
func Added(authorMention string, beacon domain.Beacon) string {
	return fmt.Sprintf("%s, added you to the %s %s waiting list!",
		authorMention,
		strings.ToUpper(beacon.GameName),
		strings.ToUpper(beacon.Platform))
}

// Mentions builds the game's flavor text followed by a mention of every other
// player waiting for it. The author is never mentioned.
func Mentions(game domain.Game, authorID string, current []domain.Beacon) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**", game.Message)
	for _, beacon := range current {
		if beacon.UserID == authorID {
			continue
		}
		fmt.Fprintf(&b, "\n<@%s>", beacon.UserID)
	}
	return b.String()
}

// Stopped confirms the author's beacons are gone
func Stopped(authorMention string) string {
	return fmt.Sprintf("%s stopped waiting: ** gl;hf! ** 🎉", authorMention)
}

// NotWaiting tells the author a stop had nothing to do
func NotWaiting(authorMention string) string {
	return fmt.Sprintf("%s, I don't think you were on the waiting list! 🤔", authorMention)
}

// StoreFailure is sent when the backing store cannot serve a command
func StoreFailure() string {
	return "Something went wrong, please try again later!"
}

// UserError turns an input validation error into a reply about the raw token
// that failed. Anything that is not an input error reads as a store failure.
func UserError(err error, raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case errors.Is(err, domain.ErrUnknownGame):
		return fmt.Sprintf("Can't find %s, sorry!", lower)
	case errors.Is(err, domain.ErrUnknownPlatform):
		return fmt.Sprintf("Can't find %s platform, sorry!", lower)
	case errors.Is(err, domain.ErrInvalidNumber):
		return fmt.Sprintf("%s is not a number!", lower)
	default:
		return StoreFailure()
	}
}
