package messaging

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/mexicano/internal/random"
)

// service implements the Service interface
type service struct {
	random random.Source
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Random == nil {
		return nil, ErrNilRandom
	}

	return &service{
		random: cfg.Random,
	}, nil
}

func (s *service) pick(messages []string) string {
	return messages[s.random.Intn(len(messages))]
}

// GetJoinMessage returns a message for when a player joins the roster
func (s *service) GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*GetJoinMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	messages := []string{
		fmt.Sprintf("%s grabs a racket. That makes %d.", input.PlayerName, input.PlayerCount),
		fmt.Sprintf("Welcome to the courts, %s! %d players and counting.", input.PlayerName, input.PlayerCount),
		fmt.Sprintf("%s is in. Somebody check the glass walls are still standing. (%d players)", input.PlayerName, input.PlayerCount),
		fmt.Sprintf("A new challenger: %s! Roster is at %d.", input.PlayerName, input.PlayerCount),
	}

	message := s.pick(messages)
	if input.RequestedName != "" && input.RequestedName != input.PlayerName {
		message += fmt.Sprintf("\n%q was taken, so you'll be playing as %q.", input.RequestedName, input.PlayerName)
	}

	return &GetJoinMessageOutput{
		Message: message,
	}, nil
}

// GetRoundStartMessage returns the announcement for a new round
func (s *service) GetRoundStartMessage(ctx context.Context, input *GetRoundStartMessageInput) (*GetRoundStartMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var messages []string
	switch {
	case input.MatchCount == 0:
		messages = []string{
			"Not enough players for a court this round. Everyone gets a breather and 16 points.",
			"No matches this round. Enjoy the free 16 points!",
		}
	case input.RoundNumber == 1:
		messages = []string{
			"Rackets up! The first pairings are drawn at random.",
			"Let's play! Round one is pure luck of the draw.",
			"First serve coming up. Good luck everyone!",
		}
	default:
		messages = []string{
			"New pairings are in. Top of the table, meet the top of the table.",
			"The leaderboard has spoken. Find your court!",
			"Fresh partners, same bandeja. Go!",
			"Standings shuffled, courts assigned. Let's go!",
		}
	}

	message := s.pick(messages)
	switch len(input.SitoverNames) {
	case 0:
	case 1:
		message += fmt.Sprintf("\n%s sits this one out.", input.SitoverNames[0])
	default:
		message += fmt.Sprintf("\nSitting out: %s.", strings.Join(input.SitoverNames, ", "))
	}

	return &GetRoundStartMessageOutput{
		Title:   fmt.Sprintf("Round %d", input.RoundNumber),
		Message: message,
	}, nil
}

// GetScoreMessage comments on a submitted score
func (s *service) GetScoreMessage(ctx context.Context, input *GetScoreMessageInput) (*GetScoreMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	teamA := input.TeamA[0] + " & " + input.TeamA[1]
	teamB := input.TeamB[0] + " & " + input.TeamB[1]

	winners, losers := teamA, teamB
	high, low := input.ScoreA, input.ScoreB
	if input.ScoreB > input.ScoreA {
		winners, losers = teamB, teamA
		high, low = input.ScoreB, input.ScoreA
	}

	var messages []string
	switch {
	case high == low:
		messages = []string{
			fmt.Sprintf("%d-%d! %s and %s couldn't be split.", high, low, teamA, teamB),
			fmt.Sprintf("A dead heat on match %d: %d apiece.", input.MatchNumber, high),
		}
	case low == 0:
		messages = []string{
			fmt.Sprintf("%s shut out %s %d-%d. Ouch.", winners, losers, high, low),
			fmt.Sprintf("A clean sheet for %s, %d-%d!", winners, high, low),
		}
	case high-low <= 4:
		messages = []string{
			fmt.Sprintf("%s edge it %d-%d over %s.", winners, high, low, losers),
			fmt.Sprintf("Tight one! %s take match %d %d-%d.", winners, input.MatchNumber, high, low),
		}
	default:
		messages = []string{
			fmt.Sprintf("%s beat %s %d-%d.", winners, losers, high, low),
			fmt.Sprintf("Match %d goes to %s, %d-%d.", input.MatchNumber, winners, high, low),
		}
	}

	message := s.pick(messages)
	if input.RoundComplete {
		message += "\nAll scores are in. Ready for the next round!"
	}

	return &GetScoreMessageOutput{
		Message: message,
	}, nil
}

// GetLeaderboardMessage comments on a player's position
func (s *service) GetLeaderboardMessage(ctx context.Context, input *GetLeaderboardMessageInput) (*GetLeaderboardMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var messages []string
	switch {
	case input.Position == 1:
		messages = []string{
			fmt.Sprintf("%s leads with %d points. Everyone is coming for you.", input.PlayerName, input.Points),
			fmt.Sprintf("Top of the table: %s on %d points.", input.PlayerName, input.Points),
		}
	case input.Position == input.TotalPlayers:
		messages = []string{
			fmt.Sprintf("%s props up the table on %d points. Only way is up!", input.PlayerName, input.Points),
			fmt.Sprintf("Last place for %s, but the rackets are still warm.", input.PlayerName),
		}
	default:
		messages = []string{
			fmt.Sprintf("%s sits in %d of %d with %d points.", input.PlayerName, input.Position, input.TotalPlayers, input.Points),
			fmt.Sprintf("%s is at number %d on %d points.", input.PlayerName, input.Position, input.Points),
		}
	}

	return &GetLeaderboardMessageOutput{
		Message: s.pick(messages),
	}, nil
}

// GetFinishMessage returns the closing announcement
func (s *service) GetFinishMessage(ctx context.Context, input *GetFinishMessageInput) (*GetFinishMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.WinnerName == "" {
		return &GetFinishMessageOutput{
			Title:   "Tournament Over",
			Message: "The tournament is closed.",
		}, nil
	}

	messages := []string{
		fmt.Sprintf("%s wins after %d rounds. Drinks are on them!", input.WinnerName, input.Rounds),
		fmt.Sprintf("And the champion of %d players is... %s!", input.Players, input.WinnerName),
		fmt.Sprintf("%d rounds played and %s comes out on top.", input.Rounds, input.WinnerName),
	}

	return &GetFinishMessageOutput{
		Title:   "Tournament Over",
		Message: s.pick(messages),
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var title string
	var messages []string
	switch input.ErrorType {
	case ErrorTypeNoTournament:
		title = "No Tournament"
		messages = []string{
			"There's no tournament running in this channel. Use /mexicano start.",
			"Nothing to play yet. Add players and /mexicano start a tournament.",
		}
	case ErrorTypeTournamentExists:
		title = "Already Playing"
		messages = []string{
			"A tournament is already running here. Finish it before starting another.",
		}
	case ErrorTypeTournamentOver:
		title = "Tournament Over"
		messages = []string{
			"That tournament is finished. Start a new one!",
		}
	case ErrorTypeNotEnoughPlayers:
		title = "Not Enough Players"
		messages = []string{
			"You need more players before the first serve. Use /mexicano join.",
			"Padel needs four. Recruit some friends with /mexicano join.",
		}
	case ErrorTypeInvalidScore:
		title = "Invalid Score"
		messages = []string{
			"Scores are out of 32. Enter the points of the first team, between 0 and 32.",
		}
	case ErrorTypeMatchNotFound:
		title = "Unknown Match"
		messages = []string{
			"There's no match with that number this round. Check /mexicano round.",
		}
	case ErrorTypeRoundNotFinished:
		title = "Round Not Finished"
		messages = []string{
			"Some matches still have no score.",
			"Hold on, not every court has reported a score yet.",
		}
	case ErrorTypePlayerNotFound:
		title = "Unknown Player"
		messages = []string{
			"No player with that number on the roster. Check /mexicano roster.",
		}
	case ErrorTypeInvalidPlayerName:
		title = "Invalid Name"
		messages = []string{
			"Players need a name.",
		}
	default:
		title = "Something Went Wrong"
		messages = []string{
			"Something went wrong. Try again in a moment.",
			"The ball hit the frame. Please try again.",
		}
	}

	message := s.pick(messages)
	if input.Detail != "" {
		message += "\n" + input.Detail
	}

	return &GetErrorMessageOutput{
		Title:   title,
		Message: message,
	}, nil
}
