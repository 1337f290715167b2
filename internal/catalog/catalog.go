// Package catalog loads the static tables of known games and aliases into an
// immutable domain.Catalog. The default catalog is embedded in the binary and
// loaded once; tests build their own through Load.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"wp-matchmaking/internal/domain"
)

//go:embed games.json
var gamesJSON []byte

//go:embed aliases.json
var aliasesJSON []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *domain.Catalog
	defaultErr     error
)

// Default returns the process-wide catalog, loaded once from the embedded
// tables. It is never mutated after loading.
func Default() (*domain.Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(gamesJSON, aliasesJSON)
	})
	return defaultCatalog, defaultErr
}

type gamesFile struct {
	Games map[string]gameEntry `json:"games"`
}

type gameEntry struct {
	Title           string   `json:"title"`
	Aliases         []string `json:"aliases"`
	Platforms       []string `json:"platforms"`
	DefaultPlatform string   `json:"defaultPlatform"`
	Message         string   `json:"message"`
}

type aliasesFile struct {
	Aliases map[string]aliasEntry `json:"aliases"`
}

type aliasEntry struct {
	Game string `json:"game"`
}

// Load parses a games table and an aliases table into a domain.Catalog
func Load(gamesData, aliasesData []byte) (*domain.Catalog, error) {
	var gf gamesFile
	if err := json.Unmarshal(gamesData, &gf); err != nil {
		return nil, fmt.Errorf("failed to parse games table: %w", err)
	}
	var af aliasesFile
	if err := json.Unmarshal(aliasesData, &af); err != nil {
		return nil, fmt.Errorf("failed to parse aliases table: %w", err)
	}

	games := make(map[string]domain.Game, len(gf.Games))
	for name, entry := range gf.Games {
		games[name] = domain.Game{
			Name:            name,
			Title:           entry.Title,
			Aliases:         entry.Aliases,
			Platforms:       entry.Platforms,
			DefaultPlatform: entry.DefaultPlatform,
			Message:         entry.Message,
		}
	}

	aliases := make(map[string]string, len(af.Aliases))
	for alias, entry := range af.Aliases {
		if _, ok := games[entry.Game]; !ok {
			return nil, fmt.Errorf("alias %q maps to unknown game %q", alias, entry.Game)
		}
		aliases[alias] = entry.Game
	}

	return domain.NewCatalog(games, aliases), nil
}
