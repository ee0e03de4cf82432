package discord

import (
	"errors"
	"fmt"
	"testing"

	"github.com/KirkDiggler/mexicano/internal/mexicano"
	"github.com/KirkDiggler/mexicano/internal/models"
	"github.com/KirkDiggler/mexicano/internal/services/messaging"
	"github.com/KirkDiggler/mexicano/internal/services/roster"
	"github.com/KirkDiggler/mexicano/internal/services/tournament"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func player(id int, name string) *models.Player {
	return &models.Player{ID: id, Name: name}
}

func testRound(ready bool) *tournament.Round {
	return &tournament.Round{
		Number: 2,
		Matches: []*tournament.Match{
			{
				Number: 1,
				Court:  "Court 1",
				TeamA:  [2]*models.Player{player(1, "Ana"), player(3, "Carla")},
				TeamB:  [2]*models.Player{player(2, "Bruno"), player(4, "Dani")},
				ScoreA: 20,
				ScoreB: 12,
				Scored: true,
			},
			{
				Number: 2,
				Court:  "Court 2",
				TeamA:  [2]*models.Player{player(5, "Eva"), player(7, "Gus")},
				TeamB:  [2]*models.Player{player(6, "Fede"), player(8, "Hugo")},
				Scored: ready,
			},
		},
		Sitovers:       []*models.Player{player(9, "Ines")},
		ReadyToAdvance: ready,
	}
}

func TestRenderRoundEmbed(t *testing.T) {
	embed := renderRoundEmbed(testRound(false))

	assert.Equal(t, "Round 2", embed.Title)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "#1 Court 1", embed.Fields[0].Name)
	assert.Contains(t, embed.Fields[0].Value, "Ana & Carla")
	assert.Contains(t, embed.Fields[0].Value, "Bruno & Dani")
	assert.Contains(t, embed.Fields[0].Value, "**20 - 12**")
	assert.Contains(t, embed.Fields[1].Value, "No score yet")
	assert.Equal(t, "Sitting Out", embed.Fields[2].Name)
	assert.Equal(t, "Ines", embed.Fields[2].Value)
	assert.Contains(t, embed.Description, "/mexicano score")
}

func TestRenderRoundComponents_NextRoundEnabledWhenReady(t *testing.T) {
	tests := []struct {
		name         string
		ready        bool
		wantDisabled bool
	}{
		{name: "pending scores", ready: false, wantDisabled: true},
		{name: "all scored", ready: true, wantDisabled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components := renderRoundComponents(testRound(tt.ready))
			require.Len(t, components, 1)

			row, ok := components[0].(discordgo.ActionsRow)
			require.True(t, ok)
			require.Len(t, row.Components, 2)

			next, ok := row.Components[0].(discordgo.Button)
			require.True(t, ok)
			assert.Equal(t, ButtonNextRound, next.CustomID)
			assert.Equal(t, tt.wantDisabled, next.Disabled)
		})
	}
}

func TestRenderLeaderboardEmbed(t *testing.T) {
	entries := []*tournament.LeaderboardEntry{
		{Position: 1, Player: &models.Player{ID: 1, Name: "Ana", Points: 52, Wins: 2}},
		{Position: 1, Player: &models.Player{ID: 2, Name: "Bruno", Points: 52, Wins: 2}},
		{Position: 3, Player: &models.Player{ID: 3, Name: "A very long player name indeed", Points: 12, Losses: 2, TimesSatOut: 1}},
	}

	embed := renderLeaderboardEmbed("Leaderboard", entries)

	assert.Equal(t, "Leaderboard", embed.Title)
	assert.Contains(t, embed.Description, fmt.Sprintf("%-3d %-18s %4d", 1, "Ana", 52))
	assert.Contains(t, embed.Description, fmt.Sprintf("%-3d %-18s %4d", 1, "Bruno", 52))
	assert.Contains(t, embed.Description, "A very long playe…")
}

func TestRenderLeaderboardEmbed_Empty(t *testing.T) {
	embed := renderLeaderboardEmbed("Leaderboard", nil)
	assert.Equal(t, "No players yet.", embed.Description)
}

func TestRenderRosterEmbed(t *testing.T) {
	embed := renderRosterEmbed([]*models.Player{
		player(1, "Ana"), player(2, "Bruno"), player(3, "Carla"),
		player(4, "Dani"), player(5, "Eva"),
	})

	assert.Contains(t, embed.Description, "`1` Ana")
	assert.Contains(t, embed.Description, "`5` Eva")
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "5", embed.Fields[0].Value)
	assert.Equal(t, "1", embed.Fields[1].Value)
}

func TestRenderHistoryEmbed(t *testing.T) {
	played := func(p *models.Player, points int) *models.Player {
		p.RoundPoints = points
		return p
	}

	snapshots := []*models.RoundSnapshot{
		{Round: 1, Matches: [][]*models.Player{{
			played(player(1, "Ana"), 20), played(player(2, "Bruno"), 12),
			played(player(3, "Carla"), 20), played(player(4, "Dani"), 12),
		}}},
		{Round: 2, Sitovers: []*models.Player{player(5, "Eva")}},
		{Round: 3},
	}

	embed := renderHistoryEmbed(snapshots, 2)

	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "Round 3", embed.Fields[0].Name)
	assert.Equal(t, "No matches", embed.Fields[0].Value)
	assert.Equal(t, "Sat out: Eva", embed.Fields[1].Value)

	all := renderHistoryEmbed(snapshots, 5)
	require.Len(t, all.Fields, 3)
	assert.Equal(t, "Ana & Carla **20 - 12** Bruno & Dani", all.Fields[2].Value)
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want messaging.ErrorType
	}{
		{tournament.ErrTournamentNotFound, messaging.ErrorTypeNoTournament},
		{tournament.ErrTournamentAlreadyExists, messaging.ErrorTypeTournamentExists},
		{tournament.ErrNotEnoughPlayers, messaging.ErrorTypeNotEnoughPlayers},
		{fmt.Errorf("failed to apply score: %w", mexicano.ErrInvalidScore), messaging.ErrorTypeInvalidScore},
		{fmt.Errorf("failed to apply score: %w", mexicano.ErrMatchNotFound), messaging.ErrorTypeMatchNotFound},
		{roster.ErrPlayerNotFound, messaging.ErrorTypePlayerNotFound},
		{roster.ErrEmptyName, messaging.ErrorTypeInvalidPlayerName},
		{errors.New("redis down"), messaging.ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, errorType(tt.err))
		})
	}
}
