package prediction

import (
	"errors"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
)

// Payload tags stored next to the JSON body of a prediction or outcome.
const (
	TagMatch  = "match"
	TagSeries = "series"
	TagPlayer = "player"
	TagTeam   = "team"
	TagValue  = "value"
	TagAnswer = "answer"
)

var ErrMalformedPayload = errors.New("malformed payload")

type matchPickPayload struct {
	Home            int    `json:"home"`
	Away            int    `json:"away"`
	ScorerID        string `json:"scorer_id,omitempty"`
	NoScorer        bool   `json:"no_scorer,omitempty"`
	AdvancingTeamID string `json:"advancing_team_id,omitempty"`
}

type seriesPayload struct {
	HomeWins int `json:"home_wins"`
	AwayWins int `json:"away_wins"`
}

type playerPayload struct {
	PlayerID string `json:"player_id"`
}

type teamPayload struct {
	TeamID string `json:"team_id"`
}

type valuePayload struct {
	Value decimal.Decimal `json:"value"`
}

type answerPayload struct {
	Answer bool `json:"answer"`
}

type matchResultPayload struct {
	Home            int        `json:"home"`
	Away            int        `json:"away"`
	ScorerIDs       []string   `json:"scorer_ids,omitempty"`
	AdvancingTeamID string     `json:"advancing_team_id,omitempty"`
	Resolution      Resolution `json:"resolution,omitempty"`
}

func EncodePrediction(p Prediction) (string, []byte, error) {
	var (
		tag     string
		payload any
	)
	switch v := p.(type) {
	case MatchPick:
		tag, payload = TagMatch, matchPickPayload(v)
	case SeriesPick:
		tag, payload = TagSeries, seriesPayload(v)
	case PlayerPick:
		tag, payload = TagPlayer, playerPayload(v)
	case TeamPick:
		tag, payload = TagTeam, teamPayload(v)
	case ValuePick:
		tag, payload = TagValue, valuePayload(v)
	case AnswerPick:
		tag, payload = TagAnswer, answerPayload(v)
	default:
		return "", nil, fmt.Errorf("%w: unsupported prediction type %T", ErrMalformedPayload, p)
	}

	raw, err := sonic.Marshal(payload)
	if err != nil {
		return "", nil, fmt.Errorf("marshal prediction: %w", err)
	}
	return tag, raw, nil
}

func DecodePrediction(tag string, raw []byte) (Prediction, error) {
	var out Prediction
	switch tag {
	case TagMatch:
		var v matchPickPayload
		if err := unmarshalPayload(raw, &v); err != nil {
			return nil, err
		}
		out = MatchPick(v)
	case TagSeries:
		var v seriesPayload
		if err := unmarshalPayload(raw, &v); err != nil {
			return nil, err
		}
		out = SeriesPick(v)
	case TagPlayer:
		var v playerPayload
		if err := unmarshalPayload(raw, &v); err != nil {
			return nil, err
		}
		out = PlayerPick(v)
	case TagTeam:
		var v teamPayload
		if err := unmarshalPayload(raw, &v); err != nil {
			return nil, err
		}
		out = TeamPick(v)
	case TagValue:
		var v valuePayload
		if err := unmarshalPayload(raw, &v); err != nil {
			return nil, err
		}
		out = ValuePick(v)
	case TagAnswer:
		var v answerPayload
		if err := unmarshalPayload(raw, &v); err != nil {
			return nil, err
		}
		out = AnswerPick(v)
	default:
		return nil, fmt.Errorf("%w: unknown prediction tag %q", ErrMalformedPayload, tag)
	}
	return out, nil
}

func EncodeOutcome(o Outcome) (string, []byte, error) {
	var (
		tag     string
		payload any
	)
	switch v := o.(type) {
	case MatchResult:
		tag, payload = TagMatch, matchResultPayload(v)
	case SeriesResult:
		tag, payload = TagSeries, seriesPayload(v)
	case PlayerResult:
		tag, payload = TagPlayer, playerPayload(v)
	case TeamResult:
		tag, payload = TagTeam, teamPayload(v)
	case ValueResult:
		tag, payload = TagValue, valuePayload(v)
	case AnswerResult:
		tag, payload = TagAnswer, answerPayload(v)
	default:
		return "", nil, fmt.Errorf("%w: unsupported outcome type %T", ErrMalformedPayload, o)
	}

	raw, err := sonic.Marshal(payload)
	if err != nil {
		return "", nil, fmt.Errorf("marshal outcome: %w", err)
	}
	return tag, raw, nil
}

func DecodeOutcome(tag string, raw []byte) (Outcome, error) {
	var out Outcome
	switch tag {
	case TagMatch:
		var v matchResultPayload
		if err := unmarshalPayload(raw, &v); err != nil {
			return nil, err
		}
		out = MatchResult(v)
	case TagSeries:
		var v seriesPayload
		if err := unmarshalPayload(raw, &v); err != nil {
			return nil, err
		}
		out = SeriesResult(v)
	case TagPlayer:
		var v playerPayload
		if err := unmarshalPayload(raw, &v); err != nil {
			return nil, err
		}
		out = PlayerResult(v)
	case TagTeam:
		var v teamPayload
		if err := unmarshalPayload(raw, &v); err != nil {
			return nil, err
		}
		out = TeamResult(v)
	case TagValue:
		var v valuePayload
		if err := unmarshalPayload(raw, &v); err != nil {
			return nil, err
		}
		out = ValueResult(v)
	case TagAnswer:
		var v answerPayload
		if err := unmarshalPayload(raw, &v); err != nil {
			return nil, err
		}
		out = AnswerResult(v)
	default:
		return nil, fmt.Errorf("%w: unknown outcome tag %q", ErrMalformedPayload, tag)
	}
	return out, nil
}

func unmarshalPayload(raw []byte, dst any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: empty body", ErrMalformedPayload)
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}
