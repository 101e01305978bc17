package logger

import (
	"bytes"
	"context"
	"testing"

	kit "reviewlens/internal/platform/testkit"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		" INFO ":  zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"chatty":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNew_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "reviewlens-web",
		Component:    "test",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "ci"},
	})
	l.Info().Str("game", "hades").Msg("hello")

	out := buf.String()
	for _, want := range []string{`"service":"reviewlens-web"`, `"component":"test"`, `"build":"ci"`, `"game":"hades"`, `"message":"hello"`} {
		kit.MustContain(t, out, want)
	}
}

func TestInitOnce_ChildrenCarryContext(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Format: "json", Service: "svc", Writer: &buf})

	ctx := WithRequest(context.Background(), "req-1", "user-9")
	l := C(ctx).Output(&buf)
	l.Info().Msg("ctx-msg")

	n := Named("backend").Output(&buf)
	n.Info().Msg("named-msg")

	out := buf.String()
	kit.MustContain(t, out, `"request_id":"req-1"`)
	kit.MustContain(t, out, `"user_id":"user-9"`)
	kit.MustContain(t, out, `"component":"backend"`)
}

func TestC_FallsBackToChiRequestID(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.WithValue(context.Background(), chimw.RequestIDKey, "chi-42")
	l := C(ctx).Output(&buf)
	l.Info().Msg("x")
	kit.MustContain(t, buf.String(), "chi-42")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "svc-b")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "svc-b" {
		t.Fatalf("FromEnv = %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv caller/sample = %+v", opt)
	}
}
