package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/mexicano/internal/mexicano"
	"github.com/KirkDiggler/mexicano/internal/models"
	"github.com/KirkDiggler/mexicano/internal/services/messaging"
	"github.com/KirkDiggler/mexicano/internal/services/roster"
	"github.com/KirkDiggler/mexicano/internal/services/tournament"
	"github.com/bwmarrin/discordgo"
)

// Button IDs
const (
	ButtonNextRound   = "mexicano_next_round"
	ButtonLeaderboard = "mexicano_leaderboard"
)

// renderRoundEmbed renders the court assignments and scores of the current round
func renderRoundEmbed(round *tournament.Round) *discordgo.MessageEmbed {
	var fields []*discordgo.MessageEmbedField

	for _, match := range round.Matches {
		score := "No score yet"
		if match.Scored {
			score = fmt.Sprintf("**%d - %d**", match.ScoreA, match.ScoreB)
		}

		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("#%d %s", match.Number, match.Court),
			Value:  fmt.Sprintf("%s\nvs\n%s\n%s", teamName(match.TeamA), teamName(match.TeamB), score),
			Inline: true,
		})
	}

	if len(round.Sitovers) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Sitting Out",
			Value:  strings.Join(playerNames(round.Sitovers), ", "),
			Inline: false,
		})
	}

	description := "Submit scores with `/mexicano score`."
	if round.ReadyToAdvance {
		description = "All scores are in. Press **Next Round** when everyone is ready."
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Round %d", round.Number),
		Description: description,
		Color:       colorBlue,
		Fields:      fields,
	}
}

// renderRoundComponents renders the buttons under the round message
func renderRoundComponents(round *tournament.Round) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Next Round",
					Style:    discordgo.SuccessButton,
					CustomID: ButtonNextRound,
					Disabled: !round.ReadyToAdvance,
					Emoji: &discordgo.ComponentEmoji{
						Name: "🎾",
					},
				},
				discordgo.Button{
					Label:    "Leaderboard",
					Style:    discordgo.SecondaryButton,
					CustomID: ButtonLeaderboard,
					Emoji: &discordgo.ComponentEmoji{
						Name: "🏆",
					},
				},
			},
		},
	}
}

// renderLeaderboardEmbed renders the standings as a numbered table
func renderLeaderboardEmbed(title string, entries []*tournament.LeaderboardEntry) *discordgo.MessageEmbed {
	if len(entries) == 0 {
		return &discordgo.MessageEmbed{
			Title:       title,
			Description: "No players yet.",
			Color:       colorGold,
		}
	}

	var sb strings.Builder
	sb.WriteString("```\n")
	sb.WriteString(fmt.Sprintf("%-3s %-18s %4s %3s %3s %3s %3s\n", "#", "Player", "Pts", "W", "L", "D", "Out"))
	for _, entry := range entries {
		p := entry.Player
		sb.WriteString(fmt.Sprintf("%-3d %-18s %4d %3d %3d %3d %3d\n",
			entry.Position, truncate(p.Name, 18), p.Points, p.Wins, p.Losses, p.Draws, p.TimesSatOut))
	}
	sb.WriteString("```")

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: sb.String(),
		Color:       colorGold,
	}
}

// renderRosterEmbed renders the player pool of a channel
func renderRosterEmbed(players []*models.Player) *discordgo.MessageEmbed {
	if len(players) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "Roster",
			Description: "Nobody has joined yet. Use `/mexicano join`.",
			Color:       colorGreen,
		}
	}

	lines := make([]string, 0, len(players))
	for _, p := range players {
		lines = append(lines, fmt.Sprintf("`%d` %s", p.ID, p.Name))
	}

	return &discordgo.MessageEmbed{
		Title:       "Roster",
		Description: strings.Join(lines, "\n"),
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Players",
				Value:  fmt.Sprintf("%d", len(players)),
				Inline: true,
			},
			{
				Name:   "Courts",
				Value:  fmt.Sprintf("%d", len(players)/4),
				Inline: true,
			},
		},
	}
}

// renderFinishedEmbed renders the closing message of a tournament
func renderFinishedEmbed(title, message string, entries []*tournament.LeaderboardEntry) *discordgo.MessageEmbed {
	embed := renderLeaderboardEmbed(title, entries)
	embed.Description = message + "\n" + embed.Description
	return embed
}

// errorType maps service errors to the categories players see
func errorType(err error) messaging.ErrorType {
	switch {
	case errors.Is(err, tournament.ErrTournamentNotFound):
		return messaging.ErrorTypeNoTournament
	case errors.Is(err, tournament.ErrTournamentAlreadyExists):
		return messaging.ErrorTypeTournamentExists
	case errors.Is(err, tournament.ErrTournamentFinished):
		return messaging.ErrorTypeTournamentOver
	case errors.Is(err, tournament.ErrNotEnoughPlayers):
		return messaging.ErrorTypeNotEnoughPlayers
	case errors.Is(err, mexicano.ErrInvalidScore):
		return messaging.ErrorTypeInvalidScore
	case errors.Is(err, mexicano.ErrMatchNotFound):
		return messaging.ErrorTypeMatchNotFound
	case errors.Is(err, mexicano.ErrPrematureAdvance):
		return messaging.ErrorTypeRoundNotFinished
	case errors.Is(err, roster.ErrPlayerNotFound):
		return messaging.ErrorTypePlayerNotFound
	case errors.Is(err, roster.ErrEmptyName):
		return messaging.ErrorTypeInvalidPlayerName
	default:
		return messaging.ErrorTypeUnknown
	}
}

func teamName(team [2]*models.Player) string {
	return team[0].Name + " & " + team[1].Name
}

func teamNames(team [2]*models.Player) [2]string {
	return [2]string{team[0].Name, team[1].Name}
}

func playerNames(players []*models.Player) []string {
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}
	return names
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// renderHistoryEmbed renders the last limit completed rounds, newest first
func renderHistoryEmbed(snapshots []*models.RoundSnapshot, limit int) *discordgo.MessageEmbed {
	if len(snapshots) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "History",
			Description: "No rounds have been completed yet.",
			Color:       colorBlue,
		}
	}

	var fields []*discordgo.MessageEmbedField
	for n := len(snapshots) - 1; n >= 0 && len(fields) < limit; n-- {
		snapshot := snapshots[n]

		var lines []string
		for _, group := range snapshot.Matches {
			if len(group) != mexicano.PlayersPerMatch {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s & %s **%d - %d** %s & %s",
				group[0].Name, group[2].Name, group[0].RoundPoints,
				group[1].RoundPoints, group[1].Name, group[3].Name))
		}
		if len(snapshot.Sitovers) > 0 {
			lines = append(lines, "Sat out: "+strings.Join(playerNames(snapshot.Sitovers), ", "))
		}
		if len(lines) == 0 {
			lines = append(lines, "No matches")
		}

		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Round %d", snapshot.Round),
			Value: strings.Join(lines, "\n"),
		})
	}

	return &discordgo.MessageEmbed{
		Title:  "History",
		Color:  colorBlue,
		Fields: fields,
	}
}
