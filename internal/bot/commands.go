package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wp-matchmaking/internal/domain"
	"wp-matchmaking/internal/render"
)

// gamesArgs is the parsed form of a games command invocation
type gamesArgs struct {
	game     *domain.Game
	wait     *domain.WaitTime
	platform *domain.Platform
}

// argError carries the raw token that failed to parse for the error reply
type argError struct {
	raw string
	err error
}

func (e *argError) Error() string { return e.err.Error() }
func (e *argError) Unwrap() error { return e.err }

// handleMessage dispatches prefixed commands from the gateway message stream.
// Bot authors, direct messages and messages with unexpected characters are
// silently ignored.
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if m.GuildID == "" {
		return
	}
	if !b.allowedChars.MatchString(m.Content) {
		return
	}
	if !strings.HasPrefix(m.Content, b.prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, b.prefix))
	if len(fields) == 0 {
		return
	}
	command, args := fields[0], fields[1:]

	log := b.logger.With().
		Str("request_id", uuid.NewString()).
		Str("command", command).
		Str("user_id", m.Author.ID).
		Logger()

	ctx := context.Background()
	switch command {
	case "games", "g":
		b.handleGames(ctx, s, m, args, log)
	case "list", "l":
		b.handleList(ctx, s, m, args, log)
	case "stop", "s":
		b.handleStop(ctx, s, m, log)
	}
}

// handleGames adds a beacon when both a game and a wait time are given,
// otherwise it behaves as a list request.
func (b *Bot) handleGames(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string, log zerolog.Logger) {
	parsed, err := parseGamesArgs(b.catalog, args)
	if err != nil {
		b.replyArgError(s, m, err, log)
		return
	}

	if parsed.game == nil || parsed.wait == nil {
		log.Info().Msg("games request without a wait time, listing instead")
		b.sendList(ctx, s, m, parsed.game, log)
		return
	}

	beacon := domain.NewBeacon(m.Author.ID, displayName(m), *parsed.game, *parsed.wait, parsed.platform, time.Time{})
	waiting, err := b.matchmaking.Add(ctx, beacon)
	if err != nil {
		log.Error().Err(err).Msg("add failed")
		b.send(s, m.ChannelID, render.StoreFailure(), log)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       render.EmbedTitle,
		Color:       render.EmbedColor,
		Description: render.Added(m.Author.Mention(), beacon),
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.Error().Err(err).Msg("failed to send embed")
	}
	b.send(s, m.ChannelID, render.Mentions(*parsed.game, beacon.UserID, waiting), log)
}

// handleList shows active beacons, optionally filtered to one game
func (b *Bot) handleList(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string, log zerolog.Logger) {
	var game *domain.Game
	if len(args) > 0 {
		resolved, err := b.catalog.ResolveGame(args[0])
		if err != nil {
			b.replyArgError(s, m, &argError{raw: args[0], err: err}, log)
			return
		}
		game = &resolved
	}
	b.sendList(ctx, s, m, game, log)
}

// handleStop ends every beacon of the message author
func (b *Bot) handleStop(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, log zerolog.Logger) {
	sample := domain.Beacon{UserID: m.Author.ID}
	wasWaiting, err := b.matchmaking.Stop(ctx, sample)
	if err != nil {
		log.Error().Err(err).Msg("stop failed")
		b.send(s, m.ChannelID, render.StoreFailure(), log)
		return
	}

	if wasWaiting {
		b.send(s, m.ChannelID, render.Stopped(m.Author.Mention()), log)
	} else {
		b.send(s, m.ChannelID, render.NotWaiting(m.Author.Mention()), log)
	}
}

func (b *Bot) sendList(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, game *domain.Game, log zerolog.Logger) {
	var beacons []domain.Beacon
	var err error
	if game == nil {
		beacons, err = b.matchmaking.List(ctx)
	} else {
		sample := domain.NewBeacon(m.Author.ID, displayName(m), *game,
			domain.WaitTimeFromHours(domain.MinWaitHours), nil, time.Time{})
		beacons, err = b.matchmaking.ListForGame(ctx, sample)
	}
	if err != nil {
		log.Error().Err(err).Msg("list failed")
		b.send(s, m.ChannelID, render.StoreFailure(), log)
		return
	}

	b.send(s, m.ChannelID, render.GamesList(beacons, render.GameTitle(game)), log)
}

func (b *Bot) replyArgError(s *discordgo.Session, m *discordgo.MessageCreate, err error, log zerolog.Logger) {
	var argErr *argError
	if errors.As(err, &argErr) {
		log.Info().Err(argErr.err).Str("token", argErr.raw).Msg("rejected command input")
		b.send(s, m.ChannelID, render.UserError(argErr.err, argErr.raw), log)
		return
	}
	log.Error().Err(err).Msg("unexpected parse failure")
	b.send(s, m.ChannelID, render.StoreFailure(), log)
}

func (b *Bot) send(s *discordgo.Session, channelID, content string, log zerolog.Logger) {
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		log.Error().Err(err).Msg("failed to send message")
	}
}

// parseGamesArgs resolves the positional games arguments. The second token
// may be either a wait time or a platform; a token that is neither reads as
// a bad platform, matching how players actually mistype it.
func parseGamesArgs(catalog *domain.Catalog, args []string) (gamesArgs, error) {
	var parsed gamesArgs

	if len(args) == 0 {
		return parsed, nil
	}

	game, err := catalog.ResolveGame(args[0])
	if err != nil {
		return parsed, &argError{raw: args[0], err: err}
	}
	parsed.game = &game

	if len(args) > 1 {
		wait, err := domain.ParseWaitTime(args[1])
		if err == nil {
			parsed.wait = &wait
		} else {
			platform, perr := catalog.ResolvePlatform(args[1])
			if perr != nil {
				return parsed, &argError{raw: args[1], err: perr}
			}
			parsed.platform = &platform
		}
	}

	if len(args) > 2 && parsed.platform == nil {
		platform, err := catalog.ResolvePlatform(args[2])
		if err != nil {
			return parsed, &argError{raw: args[2], err: err}
		}
		parsed.platform = &platform
	}

	return parsed, nil
}

// displayName prefers the guild nickname over the account username
func displayName(m *discordgo.MessageCreate) string {
	if m.Member != nil && m.Member.Nick != "" {
		return m.Member.Nick
	}
	return m.Author.Username
}
