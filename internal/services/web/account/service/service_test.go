package service

import (
	"context"
	"errors"
	"testing"

	"reviewlens/internal/adapters/backend"
	"reviewlens/internal/modkit/repokit"
	perr "reviewlens/internal/platform/errors"
	pnet "reviewlens/internal/platform/net"
	kit "reviewlens/internal/platform/testkit"
	"reviewlens/internal/services/web/account/domain"
	"reviewlens/internal/services/web/account/repo"
)

const uid = "3f1c2a9e-7b7d-4c1e-9a43-5a1f0b2c9d10"

type fakeAPI struct {
	err  error
	last backend.UserUpdate
}

func (f *fakeAPI) CurrentUser(context.Context) (*pnet.Principal, error) { return nil, nil }
func (f *fakeAPI) UpdateUser(_ context.Context, id string, u backend.UserUpdate) (*pnet.Principal, error) {
	f.last = u
	if f.err != nil {
		return nil, f.err
	}
	return &pnet.Principal{ID: id, Email: *u.Email}, nil
}

// memRepo keeps prefs per user in memory
type memRepo struct {
	rows map[string]map[string]string
	err  error
}

func (m *memRepo) List(_ context.Context, userID string) ([]repo.Row, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []repo.Row
	for k, c := range m.rows[userID] {
		out = append(out, repo.Row{Key: k, Color: c})
	}
	return out, nil
}
func (m *memRepo) Put(_ context.Context, userID, key, color string) error {
	if m.rows[userID] == nil {
		m.rows[userID] = map[string]string{}
	}
	m.rows[userID][key] = color
	return nil
}
func (m *memRepo) Remove(_ context.Context, userID, key string) error {
	delete(m.rows[userID], key)
	return nil
}
func (m *memRepo) CountExcept(_ context.Context, userID, key string) (int64, error) {
	var n int64
	for k := range m.rows[userID] {
		if k != key {
			n++
		}
	}
	return n, nil
}

// txRecorder hands itself to fn and records statements from begin hooks
type txRecorder struct{ execs []string }

func (t *txRecorder) Exec(_ context.Context, sql string, _ ...any) (repokit.CommandTag, error) {
	t.execs = append(t.execs, sql)
	return nil, nil
}
func (t *txRecorder) Query(context.Context, string, ...any) (repokit.Rows, error) { return nil, nil }
func (t *txRecorder) QueryRow(context.Context, string, ...any) repokit.Row        { return nil }
func (t *txRecorder) Tx(_ context.Context, fn func(repokit.Queryer) error) error {
	return fn(t)
}

func newSvc(api *fakeAPI, mem *memRepo) (*Svc, *txRecorder) {
	tx := &txRecorder{}
	return New(api, tx, repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return mem })), tx
}

func TestSetColor_PutAndClear(t *testing.T) {
	t.Parallel()
	mem := &memRepo{rows: map[string]map[string]string{}}
	s, tx := newSvc(&fakeAPI{}, mem)
	ctx := context.Background()

	if err := s.SetColor(ctx, uid, domain.ColorForm{Key: "Steam_positive", Color: "#AABBCC"}); err != nil {
		t.Fatalf("SetColor: %v", err)
	}
	got, err := s.Overrides(ctx, uid)
	if err != nil || got["Steam_positive"] != "#aabbcc" {
		t.Fatalf("Overrides = %v, %v", got, err)
	}
	if len(tx.execs) == 0 || tx.execs[0] != "SET LOCAL statement_timeout = 3000" {
		t.Fatalf("tx statements = %v", tx.execs)
	}

	if err := s.SetColor(ctx, uid, domain.ColorForm{Key: "Steam_positive"}); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got, _ := s.Overrides(ctx, uid); len(got) != 0 {
		t.Fatalf("after clear = %v", got)
	}
}

func TestSetColor_Limit(t *testing.T) {
	t.Parallel()
	mem := &memRepo{rows: map[string]map[string]string{uid: {}}}
	for i := 0; i < MaxColors; i++ {
		mem.rows[uid][string(rune('a'+i%26))+string(rune('a'+i/26))] = "#000000"
	}
	s, _ := newSvc(&fakeAPI{}, mem)
	err := s.SetColor(context.Background(), uid, domain.ColorForm{Key: "new", Color: "#111111"})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v", err)
	}
	if err := s.SetColor(context.Background(), uid, domain.ColorForm{Key: "aa", Color: "#111111"}); err != nil {
		t.Fatalf("updating an existing key at the limit: %v", err)
	}
}

func TestSetColor_RejectsBadUserAndDisabled(t *testing.T) {
	t.Parallel()
	s, _ := newSvc(&fakeAPI{}, &memRepo{rows: map[string]map[string]string{}})
	if err := s.SetColor(context.Background(), "nope", domain.ColorForm{Key: "all"}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v", err)
	}

	off := New(&fakeAPI{}, nil, nil)
	if off.ColorsEnabled() {
		t.Fatal("colours enabled without a db")
	}
	if err := off.SetColor(context.Background(), uid, domain.ColorForm{Key: "all"}); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v", err)
	}
	if got, err := off.Overrides(context.Background(), uid); got != nil || err != nil {
		t.Fatalf("Overrides = %v, %v", got, err)
	}
}

func TestColors_RepoErrorIsCoded(t *testing.T) {
	t.Parallel()
	s, _ := newSvc(&fakeAPI{}, &memRepo{err: errors.New("conn reset")})
	if _, err := s.Colors(context.Background(), uid); !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("err = %v", err)
	}
}

func TestUpdateEmail(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{}
	s := New(api, nil, nil)
	u, err := s.UpdateEmail(context.Background(), uid, "  new@b.io ")
	if err != nil || u.Email != "new@b.io" || *api.last.Email != "new@b.io" {
		t.Fatalf("UpdateEmail = %+v, %v", u, err)
	}

	api.err = perr.Wrap(&backend.StatusError{Status: 400, Detail: backend.DetailEmailTaken}, perr.ErrorCodeValidation, "taken")
	_, err = s.UpdateEmail(context.Background(), uid, "x@b.io")
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("err = %v", err)
	}
	if e, _ := perr.As(err); e.Field() != "email" {
		t.Fatalf("field = %q", e.Field())
	}
}

func TestNew_Guards(t *testing.T) {
	t.Parallel()
	kit.MustPanic(t, func() { New(nil, nil, nil) })
	kit.MustPanic(t, func() { New(&fakeAPI{}, &txRecorder{}, nil) })
}
