// Package service contains account workflows
package service

import (
	"context"
	"strings"
	"time"

	"reviewlens/internal/adapters/backend"
	"reviewlens/internal/modkit/repokit"
	perr "reviewlens/internal/platform/errors"
	pnet "reviewlens/internal/platform/net"
	"reviewlens/internal/services/web/account/domain"
	"reviewlens/internal/services/web/account/repo"

	"github.com/google/uuid"
)

// MaxColors caps stored overrides per user
const MaxColors = 64

// statement budget for every prefs transaction
const stmtTimeout = 3 * time.Second

// Service defines the account service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service; db and binder are nil when Postgres is not configured
type Svc struct {
	api    domain.Backend
	db     repokit.TxRunner
	binder repokit.Binder[repo.Repo]
}

var _ Service = (*Svc)(nil)

// New constructs the account service
func New(api domain.Backend, db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if api == nil {
		panic("account.Service requires a non nil Backend")
	}
	s := &Svc{api: api}
	if db != nil {
		if binder == nil {
			panic("account.Service requires a Repo binder with a TxRunner")
		}
		s.db = repokit.WithBeginHooks(db, repokit.StatementTimeout(stmtTimeout))
		s.binder = binder
	}
	return s
}

// ColorsEnabled reports whether colour overrides can be stored
func (s *Svc) ColorsEnabled() bool { return s.db != nil }

// UpdateEmail changes the signed in user's email on the backend
func (s *Svc) UpdateEmail(ctx context.Context, userID, email string) (*pnet.Principal, error) {
	email = strings.TrimSpace(email)
	u, err := s.api.UpdateUser(ctx, userID, backend.UserUpdate{Email: &email})
	if err != nil {
		if backend.DetailOf(err) == backend.DetailEmailTaken {
			return nil, perr.WithField(perr.Conflictf("that email is already in use"), "email")
		}
		return nil, err
	}
	return u, nil
}

// Colors lists the user's overrides
func (s *Svc) Colors(ctx context.Context, userID string) ([]domain.ColorPref, error) {
	if s.db == nil {
		return nil, nil
	}
	if err := validUserID(userID); err != nil {
		return nil, err
	}
	rows, err := repokit.MustBind(s.binder, s.db).List(ctx, userID)
	if err != nil {
		return nil, perr.FromPostgres(err, "list chart colours")
	}
	out := make([]domain.ColorPref, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ColorPref{Key: r.Key, Color: r.Color})
	}
	return out, nil
}

// Overrides returns the user's overrides keyed for chart.GenerateColorMap
func (s *Svc) Overrides(ctx context.Context, userID string) (map[string]string, error) {
	prefs, err := s.Colors(ctx, userID)
	if err != nil || len(prefs) == 0 {
		return nil, err
	}
	out := make(map[string]string, len(prefs))
	for _, p := range prefs {
		out[p.Key] = p.Color
	}
	return out, nil
}

// SetColor stores or clears one override
func (s *Svc) SetColor(ctx context.Context, userID string, in domain.ColorForm) error {
	if s.db == nil {
		return perr.Unavailablef("colour preferences are not enabled")
	}
	if err := validUserID(userID); err != nil {
		return err
	}
	key := strings.TrimSpace(in.Key)
	color := strings.ToLower(in.Color)

	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		if color == "" {
			return r.Remove(ctx, userID, key)
		}
		n, err := r.CountExcept(ctx, userID, key)
		if err != nil {
			return err
		}
		if n >= MaxColors {
			return perr.WithField(perr.Validationf("at most %d colours can be saved", MaxColors), "key")
		}
		return r.Put(ctx, userID, key, color)
	})
	if err != nil {
		if _, ok := perr.As(err); ok {
			return err
		}
		return perr.FromPostgres(err, "save chart colour")
	}
	return nil
}

func validUserID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return perr.WithField(perr.InvalidArgf("invalid user id"), "id")
	}
	return nil
}
