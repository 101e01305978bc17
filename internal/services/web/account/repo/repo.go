// Package repo stores per user chart colour overrides in Postgres
package repo

import (
	"context"

	"reviewlens/internal/modkit/repokit"
	"reviewlens/internal/platform/store"
)

// Repo is the persistence surface for colour overrides
type Repo interface {
	List(ctx context.Context, userID string) ([]Row, error)
	Put(ctx context.Context, userID, key, color string) error
	Remove(ctx context.Context, userID, key string) error
	// CountExcept counts the user's overrides other than key
	CountExcept(ctx context.Context, userID, key string) (int64, error)
}

// Row is one stored override
type Row struct {
	Key   string
	Color string
}

type (
	// PG binds the repo to a Queryer or a transaction
	PG struct{}
	// queries implements Repo
	queries struct{ q repokit.Queryer }
)

// NewPG returns the Postgres binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) List(ctx context.Context, userID string) ([]Row, error) {
	const sql = `
select series_key, color
from user_chart_prefs
where user_id = $1
order by series_key asc
`
	return store.Many(ctx, r.q, scanRow, sql, userID)
}

func scanRow(row store.Row) (Row, error) {
	var rr Row
	err := row.Scan(&rr.Key, &rr.Color)
	return rr, err
}

func (r *queries) Put(ctx context.Context, userID, key, color string) error {
	const sql = `
insert into user_chart_prefs (user_id, series_key, color)
values ($1, $2, $3)
on conflict (user_id, series_key) do update
set color = excluded.color, updated_at = now()
`
	_, err := store.Exec(ctx, r.q, sql, userID, key, color)
	return err
}

func (r *queries) Remove(ctx context.Context, userID, key string) error {
	const sql = `delete from user_chart_prefs where user_id = $1 and series_key = $2`
	_, err := store.Exec(ctx, r.q, sql, userID, key)
	return err
}

func (r *queries) CountExcept(ctx context.Context, userID, key string) (int64, error) {
	const sql = `select count(*) from user_chart_prefs where user_id = $1 and series_key <> $2`
	return store.Scalar[int64](ctx, r.q, sql, userID, key)
}
