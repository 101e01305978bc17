package backend

import (
	"time"

	"reviewlens/internal/platform/config"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultUA          = "reviewlens-web"
	defaultMaxBody     = 8 << 20
	defaultFailures    = 5
	defaultOpenTimeout = 30 * time.Second
	defaultHalfOpenMax = 1
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// MaxBody caps how much of a response is read
	MaxBody int64

	Breaker BreakerOptions
}

// BreakerOptions tunes the circuit breaker in front of the backend
type BreakerOptions struct {
	// Failures is the consecutive failure count that opens the breaker
	Failures uint32
	// OpenFor is how long the breaker stays open before probing
	OpenFor time.Duration
	// HalfOpenMax is the probe budget while half open
	HalfOpenMax uint32
	// Interval clears the closed state counters, 0 never clears
	Interval time.Duration
}

// FromConfig reads REVIEWLENS_BACKEND_* style keys from cfg, which should already carry the prefix
func FromConfig(cfg config.Conf) Options {
	return Options{
		BaseURL:   cfg.MustURL("URL").String(),
		UserAgent: cfg.MayString("USER_AGENT", defaultUA),
		Timeout:   cfg.MayDuration("TIMEOUT", defaultTimeout),
		MaxBody:   int64(cfg.MayInt("MAX_BODY_BYTES", defaultMaxBody)),
		Breaker: BreakerOptions{
			Failures:    uint32(cfg.MayInt("BREAKER_FAILURES", defaultFailures)),
			OpenFor:     cfg.MayDuration("BREAKER_OPEN_FOR", defaultOpenTimeout),
			HalfOpenMax: uint32(cfg.MayInt("BREAKER_HALF_OPEN_MAX", defaultHalfOpenMax)),
			Interval:    cfg.MayDuration("BREAKER_INTERVAL", time.Minute),
		},
	}
}

func (o Options) withDefaults() Options {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxBody <= 0 {
		o.MaxBody = defaultMaxBody
	}
	if o.Breaker.Failures == 0 {
		o.Breaker.Failures = defaultFailures
	}
	if o.Breaker.OpenFor <= 0 {
		o.Breaker.OpenFor = defaultOpenTimeout
	}
	if o.Breaker.HalfOpenMax == 0 {
		o.Breaker.HalfOpenMax = defaultHalfOpenMax
	}
	return o
}
