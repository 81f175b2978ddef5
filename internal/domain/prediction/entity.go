package prediction

import (
	"strings"
	"time"
)

// Kind is the variant of a predictable entity.
type Kind string

const (
	KindMatch      Kind = "match"
	KindSeries     Kind = "series"
	KindSpecialBet Kind = "special_bet"
	KindQuestion   Kind = "question"
)

func (k Kind) Valid() bool {
	switch k {
	case KindMatch, KindSeries, KindSpecialBet, KindQuestion:
		return true
	default:
		return false
	}
}

// Subject narrows a special bet to the kind of answer it asks for.
type Subject string

const (
	SubjectPlayer Subject = "player"
	SubjectTeam   Subject = "team"
	SubjectValue  Subject = "value"
)

func (s Subject) Valid() bool {
	switch s {
	case SubjectPlayer, SubjectTeam, SubjectValue:
		return true
	default:
		return false
	}
}

// SubjectOf returns the special-bet subject a pick or result carries. Other shapes return "".
func SubjectOf(v any) Subject {
	switch v.(type) {
	case PlayerPick, PlayerResult:
		return SubjectPlayer
	case TeamPick, TeamResult:
		return SubjectTeam
	case ValuePick, ValueResult:
		return SubjectValue
	default:
		return ""
	}
}

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLocked    Status = "locked"
	StatusPlayed    Status = "played"
	StatusEvaluated Status = "evaluated"
)

func NormalizeStatus(raw string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusLocked:
		return StatusLocked
	case StatusPlayed:
		return StatusPlayed
	case StatusEvaluated:
		return StatusEvaluated
	default:
		return StatusScheduled
	}
}

// Entity is a resolvable real-world event a bet can target.
type Entity struct {
	ID         string
	Kind       Kind
	Subject    Subject
	Name       string
	HomeTeamID string
	AwayTeamID string
	IsPlayoff  bool
	LockAt     time.Time
	Status     Status
	Outcome    Outcome
	ResolvedAt *time.Time
	UpdatedAt  time.Time
}

// Accepts reports whether a pick or result has the shape this entity resolves to.
func (e Entity) Accepts(kind Kind, subject Subject) bool {
	if kind != e.Kind {
		return false
	}
	if e.Kind != KindSpecialBet {
		return true
	}
	declared := e.ResolvedSubject()
	return declared == "" || subject == declared
}

// ResolvedSubject is the declared subject of a special bet, falling back to the recorded outcome.
func (e Entity) ResolvedSubject() Subject {
	if e.Subject != "" {
		return e.Subject
	}
	return SubjectOf(e.Outcome)
}

// AcceptsBets reports whether a bet may still be created at now.
func (e Entity) AcceptsBets(now time.Time) bool {
	if e.Status != StatusScheduled {
		return false
	}
	return now.Before(e.LockAt)
}

// Resolved reports whether the entity carries a final outcome eligible for evaluation.
func (e Entity) Resolved() bool {
	if e.Outcome == nil {
		return false
	}
	return e.Status == StatusPlayed || e.Status == StatusEvaluated
}
