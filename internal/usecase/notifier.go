package usecase

import (
	"context"

	"github.com/riskibarqy/prediction-pool/internal/domain/points"
	"github.com/riskibarqy/prediction-pool/internal/platform/logging"
)

// ScoreNotifier is told about freshly written points records. Delivery is owned by the caller.
type ScoreNotifier interface {
	NotifyScored(ctx context.Context, entityID string, records []points.Record) error
}

type LoggingNotifier struct {
	logger *logging.Logger
}

func NewLoggingNotifier(logger *logging.Logger) *LoggingNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &LoggingNotifier{logger: logger}
}

func (n *LoggingNotifier) NotifyScored(ctx context.Context, entityID string, records []points.Record) error {
	users := make(map[string]struct{}, len(records))
	for _, item := range records {
		users[item.UserID] = struct{}{}
	}
	n.logger.InfoContext(ctx, "points scored",
		"entity_id", entityID,
		"records", len(records),
		"users", len(users),
	)
	return nil
}
