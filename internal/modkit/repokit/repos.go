// Package repokit holds the shared types and helpers repository implementations use
package repokit

import (
	"context"

	"reviewlens/internal/platform/store"
)

// Queryer is the read and write surface SQL repos bind to
type Queryer = store.RowQuerier

// TxRunner executes fn inside a transaction
type TxRunner = store.TxRunner

type (
	// Rows is a result set
	Rows = store.Rows

	// Row is a single row result
	Row = store.Row

	// CommandTag is the outcome of a write
	CommandTag = store.CommandTag
)

// WithTx runs fn inside a transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
