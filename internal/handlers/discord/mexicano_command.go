package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/mexicano/internal/mexicano"
	"github.com/KirkDiggler/mexicano/internal/models"
	"github.com/KirkDiggler/mexicano/internal/services/messaging"
	"github.com/KirkDiggler/mexicano/internal/services/roster"
	"github.com/KirkDiggler/mexicano/internal/services/tournament"
	"github.com/bwmarrin/discordgo"
)

// historyRounds is how many completed rounds /mexicano history shows
const historyRounds = 5

// MexicanoCommand handles the /mexicano command
type MexicanoCommand struct {
	BaseCommand
	tournamentService tournament.Service
	rosterService     roster.Service
	messagingService  messaging.Service
	logger            *slog.Logger
}

// NewMexicanoCommand creates a new mexicano command handler
func NewMexicanoCommand(tournamentService tournament.Service, rosterService roster.Service, messagingService messaging.Service, logger *slog.Logger) *MexicanoCommand {
	minPoints := float64(0)
	minMatch := float64(1)

	return &MexicanoCommand{
		BaseCommand: BaseCommand{
			Name:        "mexicano",
			Description: "Mexicano padel tournament commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "join",
					Description: "Add a player to the roster",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Player name, your nickname when empty",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leave",
					Description: "Remove a player from the roster",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "id",
							Description: "Player number from /mexicano roster",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "roster",
					Description: "Show the players waiting for a tournament",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "clear",
					Description: "Empty the roster",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start a tournament with the roster",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "score",
					Description: "Submit the score of a match",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "match",
							Description: "Match number",
							Required:    true,
							MinValue:    &minMatch,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "points",
							Description: "Points of the team, out of 32",
							Required:    true,
							MinValue:    &minPoints,
							MaxValue:    mexicano.MatchPoints,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "team",
							Description: "Which team the points are for, the left one when empty",
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "left", Value: string(mexicano.SideA)},
								{Name: "right", Value: string(mexicano.SideB)},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "undo",
					Description: "Clear the score of a match",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "match",
							Description: "Match number",
							Required:    true,
							MinValue:    &minMatch,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "next",
					Description: "Finish the round and draw the next pairings",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "round",
					Description: "Show the current round",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leaderboard",
					Description: "Show the standings",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history",
					Description: "Show the latest completed rounds",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "finish",
					Description: "Close the tournament and show the final standings",
				},
			},
		},
		tournamentService: tournamentService,
		rosterService:     rosterService,
		messagingService:  messagingService,
		logger:            logger,
	}
}

// Handle processes a Discord interaction for the mexicano command
func (c *MexicanoCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx := context.Background()
	sub := data.Options[0]
	options := optionMap(sub.Options)

	var err error
	switch sub.Name {
	case "join":
		err = c.handleJoin(ctx, s, i, options)
	case "leave":
		err = c.handleLeave(ctx, s, i, options)
	case "roster":
		err = c.handleRoster(ctx, s, i)
	case "clear":
		err = c.handleClear(ctx, s, i)
	case "start":
		err = c.handleStart(ctx, s, i)
	case "score":
		err = c.handleScore(ctx, s, i, options)
	case "undo":
		err = c.handleUndo(ctx, s, i, options)
	case "next":
		err = c.handleNext(ctx, s, i)
	case "round":
		err = c.handleRound(ctx, s, i)
	case "leaderboard":
		err = c.handleLeaderboard(ctx, s, i, false)
	case "history":
		err = c.handleHistory(ctx, s, i)
	case "finish":
		err = c.handleFinish(ctx, s, i)
	default:
		err = errors.New("unknown subcommand")
	}

	return err
}

// HandleComponent processes the buttons under the round message
func (c *MexicanoCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	switch customID := i.MessageComponentData().CustomID; customID {
	case ButtonNextRound:
		return c.handleNext(ctx, s, i)
	case ButtonLeaderboard:
		return c.handleLeaderboard(ctx, s, i, true)
	default:
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}
}

func (c *MexicanoCommand) handleJoin(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	name := memberName(i)
	if opt, ok := options["name"]; ok {
		name = strings.TrimSpace(opt.StringValue())
	}

	added, err := c.rosterService.AddPlayer(ctx, &roster.AddPlayerInput{
		ChannelID: i.ChannelID,
		Name:      name,
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	listed, err := c.rosterService.ListPlayers(ctx, &roster.ListPlayersInput{
		ChannelID: i.ChannelID,
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	input := &messaging.GetJoinMessageInput{
		PlayerName:  added.Player.Name,
		PlayerCount: len(listed.Players),
	}
	if added.Renamed {
		input.RequestedName = name
	}

	msg, err := c.messagingService.GetJoinMessage(ctx, input)
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	return RespondWithMessage(s, i, msg.Message)
}

func (c *MexicanoCommand) handleLeave(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	id := int(options["id"].IntValue())

	listed, err := c.rosterService.ListPlayers(ctx, &roster.ListPlayersInput{
		ChannelID: i.ChannelID,
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	if _, err := c.rosterService.RemovePlayer(ctx, &roster.RemovePlayerInput{
		ChannelID: i.ChannelID,
		PlayerID:  id,
	}); err != nil {
		return c.respondError(ctx, s, i, err)
	}

	name := fmt.Sprintf("Player %d", id)
	for _, p := range listed.Players {
		if p.ID == id {
			name = p.Name
			break
		}
	}

	return RespondWithMessage(s, i, fmt.Sprintf("%s has left the roster.", name))
}

func (c *MexicanoCommand) handleRoster(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	listed, err := c.rosterService.ListPlayers(ctx, &roster.ListPlayersInput{
		ChannelID: i.ChannelID,
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	return RespondWithEmbed(s, i, renderRosterEmbed(listed.Players))
}

func (c *MexicanoCommand) handleClear(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if _, err := c.rosterService.ClearRoster(ctx, &roster.ClearRosterInput{
		ChannelID: i.ChannelID,
	}); err != nil {
		return c.respondError(ctx, s, i, err)
	}

	return RespondWithMessage(s, i, "The roster is empty. Use `/mexicano join` to add players.")
}

func (c *MexicanoCommand) handleStart(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	created, err := c.tournamentService.CreateTournament(ctx, &tournament.CreateTournamentInput{
		ChannelID: i.ChannelID,
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	return c.respondRoundStart(ctx, s, i, created.Round)
}

func (c *MexicanoCommand) handleScore(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	t, err := c.channelTournament(ctx, i.ChannelID)
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	side := mexicano.SideA
	if opt, ok := options["team"]; ok {
		side = mexicano.Side(opt.StringValue())
	}

	submitted, err := c.tournamentService.SubmitScore(ctx, &tournament.SubmitScoreInput{
		TournamentID: t.ID,
		MatchNumber:  int(options["match"].IntValue()),
		Side:         side,
		Points:       int(options["points"].IntValue()),
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	match := submitted.Match
	msg, err := c.messagingService.GetScoreMessage(ctx, &messaging.GetScoreMessageInput{
		MatchNumber:   match.Number,
		TeamA:         teamNames(match.TeamA),
		TeamB:         teamNames(match.TeamB),
		ScoreA:        match.ScoreA,
		ScoreB:        match.ScoreB,
		RoundComplete: submitted.ReadyToAdvance,
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	return RespondWithMessage(s, i, msg.Message)
}

func (c *MexicanoCommand) handleUndo(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	t, err := c.channelTournament(ctx, i.ChannelID)
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	reset, err := c.tournamentService.ResetScore(ctx, &tournament.ResetScoreInput{
		TournamentID: t.ID,
		MatchNumber:  int(options["match"].IntValue()),
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	return RespondWithMessage(s, i, fmt.Sprintf("Score cleared for match %d: %s vs %s.",
		reset.Match.Number, teamName(reset.Match.TeamA), teamName(reset.Match.TeamB)))
}

func (c *MexicanoCommand) handleNext(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	t, err := c.channelTournament(ctx, i.ChannelID)
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	advanced, err := c.tournamentService.AdvanceRound(ctx, &tournament.AdvanceRoundInput{
		TournamentID: t.ID,
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	if !advanced.Advanced {
		pending := make([]string, 0, len(advanced.Pending))
		for _, n := range advanced.Pending {
			pending = append(pending, fmt.Sprintf("#%d", n))
		}
		return c.respondErrorType(ctx, s, i, messaging.ErrorTypeRoundNotFinished,
			"Waiting on "+strings.Join(pending, ", "))
	}

	return c.respondRoundStart(ctx, s, i, advanced.Round)
}

func (c *MexicanoCommand) handleRound(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	t, err := c.channelTournament(ctx, i.ChannelID)
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	round, err := c.tournamentService.GetRound(ctx, &tournament.GetRoundInput{
		TournamentID: t.ID,
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	return RespondWithEphemeralEmbed(s, i, renderRoundEmbed(round.Round))
}

func (c *MexicanoCommand) handleLeaderboard(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	t, err := c.channelTournament(ctx, i.ChannelID)
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	board, err := c.tournamentService.GetLeaderboard(ctx, &tournament.GetLeaderboardInput{
		TournamentID: t.ID,
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	embed := renderLeaderboardEmbed(fmt.Sprintf("Leaderboard after %d round(s)", t.CurrentRound-1), board.Entries)
	if len(board.Entries) > 0 && !ephemeral {
		leader := board.Entries[0]
		msg, err := c.messagingService.GetLeaderboardMessage(ctx, &messaging.GetLeaderboardMessageInput{
			PlayerName:   leader.Player.Name,
			Position:     leader.Position,
			TotalPlayers: len(board.Entries),
			Points:       leader.Player.Points,
		})
		if err == nil {
			embed.Description = msg.Message + "\n" + embed.Description
		}
	}

	if ephemeral {
		return RespondWithEphemeralEmbed(s, i, embed)
	}
	return RespondWithEmbed(s, i, embed)
}

func (c *MexicanoCommand) handleHistory(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	t, err := c.channelTournament(ctx, i.ChannelID)
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	history, err := c.tournamentService.GetHistory(ctx, &tournament.GetHistoryInput{
		TournamentID: t.ID,
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	return RespondWithEphemeralEmbed(s, i, renderHistoryEmbed(history.Snapshots, historyRounds))
}

func (c *MexicanoCommand) handleFinish(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	t, err := c.channelTournament(ctx, i.ChannelID)
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	finished, err := c.tournamentService.FinishTournament(ctx, &tournament.FinishTournamentInput{
		TournamentID: t.ID,
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	input := &messaging.GetFinishMessageInput{
		Rounds:  finished.Tournament.CurrentRound - 1,
		Players: len(finished.Leaderboard),
	}
	if len(finished.Leaderboard) > 0 {
		input.WinnerName = finished.Leaderboard[0].Player.Name
	}

	msg, err := c.messagingService.GetFinishMessage(ctx, input)
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	return RespondWithEmbed(s, i, renderFinishedEmbed(msg.Title, msg.Message, finished.Leaderboard))
}

func (c *MexicanoCommand) respondRoundStart(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, round *tournament.Round) error {
	msg, err := c.messagingService.GetRoundStartMessage(ctx, &messaging.GetRoundStartMessageInput{
		RoundNumber:  round.Number,
		MatchCount:   len(round.Matches),
		SitoverNames: playerNames(round.Sitovers),
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	return RespondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       msg.Title,
		Description: msg.Message,
		Color:       colorGreen,
	})
}

func (c *MexicanoCommand) channelTournament(ctx context.Context, channelID string) (*models.Tournament, error) {
	out, err := c.tournamentService.GetTournamentByChannel(ctx, &tournament.GetTournamentByChannelInput{
		ChannelID: channelID,
	})
	if err != nil {
		return nil, err
	}
	return out.Tournament, nil
}

func (c *MexicanoCommand) respondError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	kind := errorType(err)
	if kind == messaging.ErrorTypeUnknown {
		c.logger.Error("mexicano command failed",
			"channel_id", i.ChannelID,
			"error", err,
		)
	}
	return c.respondErrorType(ctx, s, i, kind, "")
}

func (c *MexicanoCommand) respondErrorType(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, kind messaging.ErrorType, detail string) error {
	msg, err := c.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorType: kind,
		Detail:    detail,
	})
	if err != nil {
		return RespondWithError(s, i, "Error", "Something went wrong.")
	}
	return RespondWithError(s, i, msg.Title, msg.Message)
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}
