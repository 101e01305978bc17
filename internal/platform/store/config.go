package store

import (
	"time"

	"reviewlens/internal/platform/config"
)

// Config aggregates backend configuration
type Config struct {
	AppName string
	Version string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures Postgres
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32
	LogSQL   bool
	Slow     time.Duration

	ConnectRetries int
	PingTimeout    time.Duration
}

// CHConfig configures ClickHouse
type CHConfig struct {
	Enabled     bool
	URL         string
	DialTimeout time.Duration
}

// ConfigFrom reads PGSQL_* and CLICKHOUSE_* under root
func ConfigFrom(root config.Conf, appName string) Config {
	pg := root.Prefix("PGSQL_")
	ch := root.Prefix("CLICKHOUSE_")

	out := Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:        pg.MayBool("ENABLED", false),
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 8)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			Slow:           pg.MayDuration("SLOW", 200*time.Millisecond),
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 8),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			Enabled:     ch.MayBool("ENABLED", false),
			DialTimeout: ch.MayDuration("DIAL_TIMEOUT", 5*time.Second),
		},
	}
	if out.PG.Enabled {
		out.PG.URL = pg.MustString("URL")
	}
	if out.CH.Enabled {
		out.CH.URL = ch.MustString("URL")
	}
	return out
}
