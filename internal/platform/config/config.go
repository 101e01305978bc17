// Package config reads application settings from environment variables
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"reviewlens/internal/platform/logger"
)

// Conf is a namespaced view over the environment, e.g. Prefix("REVIEWLENS_WEB_")
type Conf struct{ prefix string }

// New returns the root view with no prefix
func New() Conf { return Conf{} }

// Prefix returns a child view; prefixes compose left to right
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the fully qualified variable name for k
func (c Conf) Key(k string) string { return c.prefix + k }

// lookup returns the trimmed value and whether it is non empty
func (c Conf) lookup(k string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.Key(k)))
	return v, v != ""
}

func (c Conf) fail(k, value, msg string) {
	evt := logger.Get().Panic().Str("key", c.Key(k))
	if value != "" {
		evt = evt.Str("value", value)
	}
	evt.Msg(msg)
}

// MustString returns the value or panics when it is unset
func (c Conf) MustString(k string) string {
	v, ok := c.lookup(k)
	if !ok {
		c.fail(k, "", "missing required env")
	}
	return v
}

// MustInt returns the value as an int or panics
func (c Conf) MustInt(k string) int {
	s := c.MustString(k)
	n, err := strconv.Atoi(s)
	if err != nil {
		c.fail(k, s, "invalid int value")
	}
	return n
}

// MustBool returns the value as a bool or panics
func (c Conf) MustBool(k string) bool {
	s := c.MustString(k)
	b, err := strconv.ParseBool(s)
	if err != nil {
		c.fail(k, s, "invalid bool value")
	}
	return b
}

// MustDuration returns the value as a time.Duration (250ms, 2s, 1h) or panics
func (c Conf) MustDuration(k string) time.Duration {
	s := c.MustString(k)
	d, err := time.ParseDuration(s)
	if err != nil {
		c.fail(k, s, "invalid duration")
	}
	return d
}

// MustURL returns the value as an absolute URL or panics
func (c Conf) MustURL(k string) *url.URL {
	s := c.MustString(k)
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		c.fail(k, s, "invalid absolute URL")
	}
	return u
}

// MustPort returns a listen address like ":4000" for a 1..65535 port
func (c Conf) MustPort(k string) string {
	s := c.MustString(k)
	if p, err := strconv.Atoi(s); err != nil || p < 1 || p > 65535 {
		c.fail(k, s, "invalid TCP port; expected 1..65535")
	}
	return ":" + s
}

// Require panics on the first unset key
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		if _, ok := c.lookup(k); !ok {
			c.fail(k, "", "missing required env")
		}
	}
}

// mayParse returns def when unset, and def plus a warning when parse fails
func mayParse[T any](c Conf, k string, def T, parse func(string) (T, error)) T {
	s, ok := c.lookup(k)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(k)).Str("value", s).Interface("default", def).Msg("invalid value; using default")
		return def
	}
	return v
}

// MayString returns the value or def
func (c Conf) MayString(k, def string) string {
	if v, ok := c.lookup(k); ok {
		return v
	}
	return def
}

// MayInt returns the value or def
func (c Conf) MayInt(k string, def int) int { return mayParse(c, k, def, strconv.Atoi) }

// MayFloat64 returns the value or def
func (c Conf) MayFloat64(k string, def float64) float64 {
	return mayParse(c, k, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool returns the value or def
func (c Conf) MayBool(k string, def bool) bool { return mayParse(c, k, def, strconv.ParseBool) }

// MayDuration returns the value or def
func (c Conf) MayDuration(k string, def time.Duration) time.Duration {
	return mayParse(c, k, def, time.ParseDuration)
}

// MayURL returns the value as an absolute URL or def
func (c Conf) MayURL(k string, def *url.URL) *url.URL {
	return mayParse(c, k, def, func(s string) (*url.URL, error) {
		u, err := url.Parse(s)
		if err != nil {
			return nil, err
		}
		if !u.IsAbs() {
			return nil, &url.Error{Op: "parse", URL: s, Err: errNotAbsolute}
		}
		return u, nil
	})
}

// MayCSV splits a comma separated value, dropping blanks; def when nothing remains
func (c Conf) MayCSV(k string, def []string) []string {
	s, ok := c.lookup(k)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayMap reads "k=v,k2=v2" pairs. Malformed pairs are logged and skipped
func (c Conf) MayMap(k string, def map[string]string) map[string]string {
	pairs := c.MayCSV(k, nil)
	if pairs == nil {
		return def
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, val, ok := strings.Cut(p, "=")
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		if !ok || key == "" {
			logger.Get().Warn().Str("key", c.Key(k)).Str("pair", p).Msg("skipping malformed pair")
			continue
		}
		out[key] = val
	}
	return out
}

// MayEnum returns the value when it is one of allowed (case insensitive), def when unset, panics otherwise
func (c Conf) MayEnum(k, def string, allowed ...string) string {
	v := c.MayString(k, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	logger.Get().Panic().Str("key", c.Key(k)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}

type configError string

func (e configError) Error() string { return string(e) }

const errNotAbsolute = configError("url is not absolute")
