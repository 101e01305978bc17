package store

import (
	"errors"

	"reviewlens/internal/platform/logger"
)

// Option adjusts a Store before Open dials anything
type Option func(*Store) error

// WithLogger routes pg tracing and retry logs to log
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithPG uses an already open runner; cfg.PG is not dialled
func WithPG(db TxRunner) Option {
	return func(s *Store) error {
		if db == nil {
			return errors.New("store: WithPG given nil")
		}
		s.PG = db
		return nil
	}
}

// WithClickhouse uses an already open connection; cfg.CH is not dialled
func WithClickhouse(ch Clickhouse) Option {
	return func(s *Store) error {
		if ch == nil {
			return errors.New("store: WithClickhouse given nil")
		}
		s.CH = ch
		return nil
	}
}
