package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/mexicano/internal/notifier"
	"github.com/KirkDiggler/mexicano/internal/services/messaging"
	"github.com/KirkDiggler/mexicano/internal/services/roster"
	"github.com/KirkDiggler/mexicano/internal/services/tournament"
	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot instance
type Bot struct {
	session           *discordgo.Session
	commands          map[string]CommandHandler
	commandIDs        map[string]string // Maps command name to command ID
	mexicano          *MexicanoCommand
	tournamentService tournament.Service
	subscriber        notifier.Subscriber
	subscription      *notifier.Subscription
	cancel            context.CancelFunc
	logger            *slog.Logger
	config            *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	TournamentService tournament.Service
	RosterService     roster.Service
	MessagingService  messaging.Service

	// Subscriber delivers tournament changes that re-render round messages
	Subscriber notifier.Subscriber

	// Logger, slog.Default() when nil
	Logger *slog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.TournamentService == nil {
		return nil, errors.New("tournament service cannot be nil")
	}

	if cfg.RosterService == nil {
		return nil, errors.New("roster service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	if cfg.Subscriber == nil {
		return nil, errors.New("subscriber cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "discord")

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:           session,
		commands:          make(map[string]CommandHandler),
		commandIDs:        make(map[string]string),
		mexicano:          NewMexicanoCommand(cfg.TournamentService, cfg.RosterService, cfg.MessagingService, logger),
		tournamentService: cfg.TournamentService,
		subscriber:        cfg.Subscriber,
		logger:            logger,
		config:            cfg,
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the Discord connection, registers commands and follows
// tournament events until Stop is called
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(b.mexicano); err != nil {
		return fmt.Errorf("failed to register mexicano command: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	sub, err := b.subscriber.Subscribe(ctx, &notifier.SubscribeInput{})
	if err != nil {
		cancel()
		return fmt.Errorf("failed to subscribe to tournament events: %w", err)
	}
	b.subscription = sub
	b.cancel = cancel

	go b.followEvents(ctx, sub)

	b.logger.Info("bot is now running")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	if b.cancel != nil {
		b.cancel()
	}
	if b.subscription != nil {
		if err := b.subscription.Close(); err != nil {
			b.logger.Warn("failed to close subscription", "error", err)
		}
	}

	appID := b.appID()
	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command", "command", cmdName, "command_id", cmdID, "error", err)
		} else {
			b.logger.Info("deleted command", "command", cmdName, "command_id", cmdID)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// An empty guild ID registers the command globally
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command",
		"command", cmd.GetName(),
		"command_id", createdCmd.ID,
		"guild_id", b.config.GuildID,
	)

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error("failed to handle command", "command", name, "error", err)
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.mexicano.HandleComponent(s, i); err != nil {
			b.logger.Error("failed to handle component interaction",
				"custom_id", i.MessageComponentData().CustomID,
				"error", err,
			)
		}
	}
}

// followEvents re-renders round messages until the subscription ends
func (b *Bot) followEvents(ctx context.Context, sub *notifier.Subscription) {
	for event := range sub.Events {
		if err := b.updateTournamentMessage(ctx, event); err != nil {
			b.logger.Warn("failed to update tournament message",
				"tournament_id", event.TournamentID,
				"event", event.Type,
				"error", err,
			)
		}
	}
}

// updateTournamentMessage posts or edits the message showing a tournament
func (b *Bot) updateTournamentMessage(ctx context.Context, event *notifier.Event) error {
	if event.Type == notifier.EventFinishTournament {
		return b.closeTournamentMessage(ctx, event)
	}

	current, err := b.tournamentService.GetRound(ctx, &tournament.GetRoundInput{
		TournamentID: event.TournamentID,
	})
	if err != nil {
		return fmt.Errorf("failed to get round: %w", err)
	}

	t := current.Tournament
	embeds := []*discordgo.MessageEmbed{renderRoundEmbed(current.Round)}
	components := renderRoundComponents(current.Round)

	if t.MessageID == "" {
		msg, err := b.session.ChannelMessageSendComplex(t.ChannelID, &discordgo.MessageSend{
			Embeds:     embeds,
			Components: components,
		})
		if err != nil {
			return fmt.Errorf("failed to send round message: %w", err)
		}

		return b.tournamentService.SetMessageID(ctx, &tournament.SetMessageIDInput{
			TournamentID: t.ID,
			MessageID:    msg.ID,
		})
	}

	_, err = b.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    t.ChannelID,
		ID:         t.MessageID,
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		return fmt.Errorf("failed to edit round message: %w", err)
	}

	return nil
}

// closeTournamentMessage replaces the round message with the final standings
func (b *Bot) closeTournamentMessage(ctx context.Context, event *notifier.Event) error {
	t := event.Payload
	if t == nil || t.MessageID == "" {
		return nil
	}

	board, err := b.tournamentService.GetLeaderboard(ctx, &tournament.GetLeaderboardInput{
		TournamentID: t.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to get leaderboard: %w", err)
	}

	embeds := []*discordgo.MessageEmbed{
		renderLeaderboardEmbed(fmt.Sprintf("Final standings after %d round(s)", t.CurrentRound-1), board.Entries),
	}
	components := []discordgo.MessageComponent{}

	_, err = b.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    t.ChannelID,
		ID:         t.MessageID,
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		return fmt.Errorf("failed to edit final message: %w", err)
	}

	return nil
}
