package postgres

import "time"

type leagueTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	Season    string     `db:"season"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type evaluatorTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	LeagueID  string     `db:"league_public_id"`
	Kind      string     `db:"kind"`
	Category  string     `db:"category"`
	Points    int        `db:"points"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type evaluatorInsertModel struct {
	PublicID  string    `db:"public_id"`
	LeagueID  string    `db:"league_public_id"`
	Kind      string    `db:"kind"`
	Category  string    `db:"category"`
	Points    int       `db:"points"`
	UpdatedAt time.Time `db:"updated_at"`
}

type settingsTableModel struct {
	LeagueID                     string    `db:"league_public_id"`
	ScoreDifferencePercent       int       `db:"score_difference_percent"`
	ScoreDifferenceIncludesExact bool      `db:"score_difference_includes_exact"`
	PlayoffAdvance               string    `db:"playoff_advance"`
	TieBreak                     string    `db:"tie_break"`
	RankingMode                  string    `db:"ranking_mode"`
	UpdatedAt                    time.Time `db:"updated_at"`
}
