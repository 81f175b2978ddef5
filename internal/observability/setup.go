package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/prediction-pool/internal/config"
	"github.com/riskibarqy/prediction-pool/internal/platform/logging"
)

func noopShutdown(context.Context) error { return nil }

// Start brings up tracing and profiling. The returned shutdown stops them in reverse order.
func Start(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	steps := []struct {
		name string
		init func(config.Config, *logging.Logger) (func(context.Context) error, error)
	}{
		{name: "uptrace", init: InitUptrace},
		{name: "pyroscope", init: InitPyroscope},
		{name: "pprof", init: StartPprofServer},
	}

	var stops []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(stops) - 1; i >= 0; i-- {
			errs = append(errs, stops[i](ctx))
		}
		return errors.Join(errs...)
	}

	for _, step := range steps {
		stop, err := step.init(cfg, logger)
		if err != nil {
			_ = shutdown(context.Background())
			return nil, fmt.Errorf("start %s: %w", step.name, err)
		}
		stops = append(stops, stop)
	}
	return shutdown, nil
}
