package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/prediction-pool/internal/domain/points"
	"github.com/riskibarqy/prediction-pool/internal/platform/logging"
	"github.com/riskibarqy/prediction-pool/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var ErrTransient = crerr.New("score webhook transient failure")

const maxErrorBodyBytes = 4096

type Config struct {
	URL            string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Notifier posts freshly written points records to an HTTP endpoint.
type Notifier struct {
	client  *http.Client
	url     string
	token   string
	logger  *logging.Logger
	breaker *resilience.CircuitBreaker
}

func NewNotifier(cfg Config, logger *logging.Logger) (*Notifier, error) {
	target, err := validateHTTPURL(cfg.URL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid NOTIFY_WEBHOOK_URL")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	breakerCfg := cfg.CircuitBreaker
	if breakerCfg.OnStateChange == nil {
		breakerCfg.OnStateChange = func(from, to resilience.CircuitState) {
			logger.Warn("score webhook circuit state changed", "from", string(from), "to", string(to))
		}
	}

	return &Notifier{
		client:  &http.Client{Timeout: timeout},
		url:     target,
		token:   strings.TrimSpace(cfg.Token),
		logger:  logger,
		breaker: resilience.NewCircuitBreakerFromConfig(breakerCfg),
	}, nil
}

type scoredPayload struct {
	EntityID string          `json:"entity_id"`
	Users    []string        `json:"users"`
	Records  []recordPayload `json:"records"`
}

type recordPayload struct {
	BetID       string    `json:"bet_id"`
	EvaluatorID string    `json:"evaluator_id"`
	LeagueID    string    `json:"league_id"`
	UserID      string    `json:"user_id"`
	Category    string    `json:"category"`
	Points      int       `json:"points"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

func (n *Notifier) NotifyScored(ctx context.Context, entityID string, records []points.Record) error {
	body, err := sonic.Marshal(buildPayload(entityID, records))
	if err != nil {
		return crerr.Wrap(err, "marshal score webhook payload")
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("webhook.url", n.url),
			attribute.String("webhook.entity_id", entityID),
			attribute.Int("webhook.records", len(records)),
		)
	}

	err = n.breaker.Execute(ctx, func(ctx context.Context) error {
		return n.post(ctx, entityID, body)
	})
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			n.logger.WarnContext(ctx, "score webhook circuit breaker rejected request", "entity_id", entityID)
		}
		return err
	}

	n.logger.InfoContext(ctx, "score webhook delivered", "entity_id", entityID, "records", len(records))
	return nil
}

func (n *Notifier) post(ctx context.Context, entityID string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return crerr.Wrap(err, "create score webhook request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "scored:"+entityID)
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post score webhook entity=%s: %v", ErrTransient, entityID, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 == 2 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.ReadFrom(io.LimitReader(resp.Body, maxErrorBodyBytes))

	if isRetryableStatus(resp.StatusCode) {
		return fmt.Errorf("%w: score webhook status=%d entity=%s body=%s", ErrTransient, resp.StatusCode, entityID, strings.TrimSpace(buf.String()))
	}
	return fmt.Errorf("score webhook status=%d entity=%s body=%s", resp.StatusCode, entityID, strings.TrimSpace(buf.String()))
}

func buildPayload(entityID string, records []points.Record) scoredPayload {
	users := make(map[string]struct{}, len(records))
	out := scoredPayload{
		EntityID: entityID,
		Records:  make([]recordPayload, 0, len(records)),
	}
	for _, item := range records {
		users[item.UserID] = struct{}{}
		out.Records = append(out.Records, recordPayload{
			BetID:       item.BetID,
			EvaluatorID: item.EvaluatorID,
			LeagueID:    item.LeagueID,
			UserID:      item.UserID,
			Category:    string(item.Category),
			Points:      item.Points,
			EvaluatedAt: item.EvaluatedAt.UTC(),
		})
	}
	out.Users = make([]string, 0, len(users))
	for userID := range users {
		out.Users = append(out.Users, userID)
	}
	sort.Strings(out.Users)
	return out
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusRequestTimeout || status >= 500
}

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return candidate, nil
}
