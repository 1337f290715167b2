// Package bot connects the matchmaking service to Discord. Commands are
// plain prefixed messages, dispatched from the gateway message stream.
package bot

import (
	"fmt"
	"regexp"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"wp-matchmaking/internal/domain"
)

// Bot represents the Discord bot instance
type Bot struct {
	session     *discordgo.Session
	matchmaking domain.Matchmaking
	catalog     *domain.Catalog
	prefix      string
	logger      zerolog.Logger

	// allowedChars rejects messages with characters no command needs
	allowedChars *regexp.Regexp
}

// New creates a new Bot instance
func New(token, prefix string, matchmaking domain.Matchmaking, catalog *domain.Catalog, logger zerolog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		session:      session,
		matchmaking:  matchmaking,
		catalog:      catalog,
		prefix:       prefix,
		logger:       logger,
		allowedChars: regexp.MustCompile(`^[\w !.]+$`),
	}

	session.AddHandler(b.handleMessage)
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.logger.Info().Int("guilds", len(r.Guilds)).Msg("bot is ready")
	})

	return b, nil
}

// Start opens the Discord connection
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	b.logger.Info().Str("user", b.session.State.User.Username).Msg("connected to Discord")
	return nil
}

// Stop gracefully shuts down the bot
func (b *Bot) Stop() error {
	if b.session != nil {
		return b.session.Close()
	}
	return nil
}
