package league

import (
	"fmt"
	"time"

	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
	"github.com/riskibarqy/prediction-pool/internal/domain/leaderboard"
)

// League is a prediction pool members compete in.
type League struct {
	ID        string
	Name      string
	Season    string
	CreatedAt time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}

// Settings are the per-league knobs for scoring and ranking.
type Settings struct {
	LeagueID    string
	Scoring     evaluator.Rules
	Leaderboard leaderboard.Options
	UpdatedAt   time.Time
}

func DefaultSettings(leagueID string) Settings {
	return Settings{
		LeagueID:    leagueID,
		Scoring:     evaluator.DefaultRules(),
		Leaderboard: leaderboard.DefaultOptions(),
	}
}

func (s Settings) Validate() error {
	if s.LeagueID == "" {
		return fmt.Errorf("league id is required")
	}
	if err := s.Scoring.Validate(); err != nil {
		return err
	}
	if !s.Leaderboard.Valid() {
		return fmt.Errorf("%w: tie break=%q ranking=%q", evaluator.ErrInvalidRules, s.Leaderboard.TieBreak, s.Leaderboard.RankingMode)
	}
	return nil
}
