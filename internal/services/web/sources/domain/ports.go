// Package domain holds the sources catalog contracts
package domain

import (
	"context"

	"reviewlens/internal/core/chart"
)

// Lister fetches the full source table
type Lister interface {
	Sources(ctx context.Context) ([]chart.Source, error)
}

// Catalog is the read side other modules use for id to name lookups
type Catalog interface {
	// All returns the sources ordered by id
	All() []chart.Source
	Name(id int) (string, bool)
	ByName(name string) (chart.Source, bool)
	Version() uint64
}
