// Package raw reads environment variables during bootstrap
// It must not import the logger, which is configured from it
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed environment view
type Conf struct{ prefix string }

// New returns the root view
func New() Conf { return Conf{} }

// Prefix returns a child view, e.g. Prefix("LOG_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) value(k string) string { return strings.TrimSpace(os.Getenv(c.prefix + k)) }

// Get returns the value or def when unset
func (c Conf) Get(k, def string) string {
	if v := c.value(k); v != "" {
		return v
	}
	return def
}

// GetBool treats 1, true, yes and on as true; unset returns def
func (c Conf) GetBool(k string, def bool) bool {
	switch strings.ToLower(c.value(k)) {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// GetInt returns a non negative int or def
func (c Conf) GetInt(k string, def int) int {
	n, err := strconv.Atoi(c.value(k))
	if err != nil || n < 0 {
		return def
	}
	return n
}
