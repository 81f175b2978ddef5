package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/riskibarqy/prediction-pool/internal/platform/logging"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// Migration is the subset of settings used by the migration command.
type Migration struct {
	DBURL         string
	MigrationsDir string
	LogLevel      logging.Level
}

// DatabaseURL returns DB_URL adjusted for pooled connections.
func (c Config) DatabaseURL() string {
	return NormalizeDBURL(c.DBURL, c.DBDisablePreparedBinary)
}

// NormalizeDBURL opts out of binary results for pooled (pgbouncer style) connections
// unless the url already sets the parameter. Key/value DSNs are returned unchanged.
func NormalizeDBURL(raw string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get(preparedBinaryParam) != "" {
		return raw
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func LoadMigration() (Migration, error) {
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return Migration{}, fmt.Errorf("DB_URL is required")
	}
	disable, err := getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", "true")
	if err != nil {
		return Migration{}, err
	}
	level, ok := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if !ok {
		return Migration{}, fmt.Errorf("invalid APP_LOG_LEVEL %q", os.Getenv("APP_LOG_LEVEL"))
	}

	dir, err := resolveMigrationsDir(
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./db/migrations",
		"/app/db/migrations",
	)
	if err != nil {
		return Migration{}, err
	}

	return Migration{
		DBURL:         NormalizeDBURL(dbURL, disable),
		MigrationsDir: dir,
		LogLevel:      level,
	}, nil
}

func resolveMigrationsDir(candidates ...string) (string, error) {
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found in %s", strings.Join(candidates, ", "))
}
