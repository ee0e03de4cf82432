package tournament

import "github.com/KirkDiggler/mexicano/internal/models"

type SaveTournamentInput struct {
	Tournament *models.Tournament
}

type GetTournamentInput struct {
	TournamentID string
}

type GetTournamentByChannelInput struct {
	ChannelID string
}

type DeleteTournamentInput struct {
	TournamentID string
}

type ListTournamentsInput struct {
	Status models.TournamentStatus
}

type ListTournamentsOutput struct {
	Tournaments []*models.Tournament
}
