package domain

import (
	"fmt"
	"strings"
)

// Game is an immutable catalog entry for a supported fighting game
type Game struct {
	Name            string   // Canonical short name, e.g. "st"
	Title           string   // Full title, e.g. "Super Turbo"
	Aliases         []string // Alternative names players type
	Platforms       []string // Platforms the game is played on
	DefaultPlatform string   // Platform assumed when none is given
	Message         string   // Flavor text shown when a beacon is added
}

// Platform is a validated, lower-cased platform name
type Platform struct {
	Value string
}

// Catalog holds the static tables of known games and aliases. A Catalog is
// immutable once built; callers needing different data inject their own.
type Catalog struct {
	games     map[string]Game
	aliases   map[string]string // alias -> canonical game name
	platforms []string          // union of every game's platform set
}

// NewCatalog builds a Catalog from a game table and an alias table
func NewCatalog(games map[string]Game, aliases map[string]string) *Catalog {
	seen := make(map[string]bool)
	var platforms []string
	for _, game := range games {
		for _, platform := range game.Platforms {
			if !seen[platform] {
				seen[platform] = true
				platforms = append(platforms, platform)
			}
		}
	}
	return &Catalog{games: games, aliases: aliases, platforms: platforms}
}

// Platforms returns the union of every catalog game's platform set
func (c *Catalog) Platforms() []string {
	return c.platforms
}

// ResolveGame resolves raw user input to a Game through the alias table.
// Input is case-insensitive. Unknown input is an error, never a default.
func (c *Catalog) ResolveGame(raw string) (Game, error) {
	lower := strings.ToLower(raw)
	name, ok := c.aliases[lower]
	if !ok {
		return Game{}, fmt.Errorf("%q: %w", lower, ErrUnknownGame)
	}
	game, ok := c.games[name]
	if !ok {
		return Game{}, fmt.Errorf("alias %q maps to missing game %q: %w", lower, name, ErrUnknownGame)
	}
	return game, nil
}

// ResolvePlatform validates raw input against the catalog's platform union
func (c *Catalog) ResolvePlatform(raw string) (Platform, error) {
	return ResolvePlatform(raw, c.platforms)
}

// ResolvePlatform validates raw input against an explicit platform list
func ResolvePlatform(raw string, platforms []string) (Platform, error) {
	lower := strings.ToLower(raw)
	for _, platform := range platforms {
		if platform == lower {
			return Platform{Value: lower}, nil
		}
	}
	return Platform{}, fmt.Errorf("%q: %w", lower, ErrUnknownPlatform)
}

// PlatformOrDefault returns the game's default platform when platform is nil
// or not one the game is on. This is a silent correction: an invalid platform
// never blocks beacon creation for a valid game.
func PlatformOrDefault(platform *Platform, game Game) string {
	if platform == nil {
		return game.DefaultPlatform
	}
	for _, candidate := range game.Platforms {
		if candidate == platform.Value {
			return platform.Value
		}
	}
	return game.DefaultPlatform
}
