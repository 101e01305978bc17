package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"reviewlens/internal/platform/config"
	kit "reviewlens/internal/platform/testkit"

	"github.com/rs/zerolog"
)

type fakeCH struct {
	Clickhouse
	pingErr error
	closed  bool
}

func (f *fakeCH) Ping(context.Context) error { return f.pingErr }
func (f *fakeCH) Close() error               { f.closed = true; return nil }

func TestOpenNothingEnabled(t *testing.T) {
	t.Parallel()
	s, err := Open(context.Background(), Config{}, WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatal(err)
	}
	if s.PG != nil || s.CH != nil {
		t.Fatalf("unexpected backends %+v", s)
	}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("Guard = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close = %v", err)
	}
}

type fakePG struct {
	TxRunner
}

func TestOpenWithBackends(t *testing.T) {
	t.Parallel()
	pg, ch := fakePG{}, &fakeCH{}
	// enabled but unreachable: the injected backends must win over dialling
	cfg := Config{
		PG: PGConfig{Enabled: true, URL: "postgres://u:p@127.0.0.1:1/x?connect_timeout=1"},
		CH: CHConfig{Enabled: true, URL: "clickhouse://127.0.0.1:1"},
	}
	s, err := Open(context.Background(), cfg, WithLogger(zerolog.Nop()), WithPG(pg), WithClickhouse(ch))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.PG != TxRunner(pg) || s.CH != Clickhouse(ch) {
		t.Fatalf("backends not used: %+v", s)
	}

	for name, opt := range map[string]Option{"pg": WithPG(nil), "clickhouse": WithClickhouse(nil)} {
		if _, err := Open(context.Background(), Config{}, opt); err == nil {
			t.Fatalf("%s: nil backend accepted", name)
		}
	}
}

func TestGuardJoinsErrors(t *testing.T) {
	t.Parallel()
	ch := &fakeCH{pingErr: errors.New("code: 516")}
	s := &Store{CH: ch}
	err := s.Guard(context.Background())
	if err == nil || !strings.Contains(err.Error(), "clickhouse: code: 516") {
		t.Fatalf("Guard = %v", err)
	}
	_ = s.Close()
	if !ch.closed {
		t.Fatal("clickhouse not closed")
	}

	var nilStore *Store
	if nilStore.Guard(context.Background()) == nil {
		t.Fatal("nil store should fail guard")
	}
}

func TestOpenOptionError(t *testing.T) {
	t.Parallel()
	bad := func(*Store) error { return errors.New("nope") }
	if _, err := Open(context.Background(), Config{}, bad); err == nil {
		t.Fatal("option error should abort Open")
	}
}

func TestOpenPGGivesUpAfterRetries(t *testing.T) {
	var slept []time.Duration
	kit.Swap(t, &sleep, func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	})
	_, err := Open(context.Background(), Config{PG: PGConfig{
		Enabled:        true,
		URL:            "postgres://u:p@127.0.0.1:1/reviewlens?connect_timeout=1",
		ConnectRetries: 3,
		PingTimeout:    time.Second,
	}}, WithLogger(zerolog.Nop()))
	if err == nil {
		t.Fatal("expected ping failure")
	}
	kit.MustContain(t, err.Error(), "after 3 attempts")
	if len(slept) != 2 || slept[0] != backoffStart || slept[1] != 2*backoffStart {
		t.Fatalf("backoff = %v", slept)
	}
}

func TestConfigFrom(t *testing.T) {
	t.Setenv("RLTEST_PGSQL_ENABLED", "true")
	t.Setenv("RLTEST_PGSQL_URL", "postgres://localhost/reviewlens")
	t.Setenv("RLTEST_PGSQL_MAX_CONNS", "4")
	t.Setenv("RLTEST_CLICKHOUSE_ENABLED", "false")

	cfg := ConfigFrom(config.New().Prefix("RLTEST_"), "reviewlens-web")
	if !cfg.PG.Enabled || cfg.PG.URL != "postgres://localhost/reviewlens" || cfg.PG.MaxConns != 4 {
		t.Fatalf("pg = %+v", cfg.PG)
	}
	if cfg.CH.Enabled || cfg.CH.URL != "" || cfg.AppName != "reviewlens-web" {
		t.Fatalf("cfg = %+v", cfg)
	}
}
