package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	perr "reviewlens/internal/platform/errors"
	pnet "reviewlens/internal/platform/net"
	phttp "reviewlens/internal/platform/net/http"
	kit "reviewlens/internal/platform/testkit"
	"reviewlens/internal/services/web/account/domain"
	"reviewlens/internal/ui"

	"github.com/go-chi/chi/v5"
)

type fakeSvc struct {
	enabled  bool
	colors   []domain.ColorPref
	setErr   error
	setCalls []domain.ColorForm
	emailErr error
}

func (f *fakeSvc) Overrides(context.Context, string) (map[string]string, error) { return nil, nil }
func (f *fakeSvc) UpdateEmail(_ context.Context, id, email string) (*pnet.Principal, error) {
	if f.emailErr != nil {
		return nil, f.emailErr
	}
	return &pnet.Principal{ID: id, Email: email}, nil
}
func (f *fakeSvc) Colors(context.Context, string) ([]domain.ColorPref, error) { return f.colors, nil }
func (f *fakeSvc) SetColor(_ context.Context, _ string, in domain.ColorForm) error {
	f.setCalls = append(f.setCalls, in)
	return f.setErr
}
func (f *fakeSvc) ColorsEnabled() bool { return f.enabled }

func serve(t *testing.T, svc *fakeSvc, req *http.Request, signedIn bool) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), svc, ui.MustNew(), func() []string { return []string{"all", "all_positive"} })
	if signedIn {
		ctx := pnet.WithToken(req.Context(), "tok")
		ctx = pnet.WithUser(ctx, &pnet.Principal{ID: "3f1c2a9e-7b7d-4c1e-9a43-5a1f0b2c9d10", Email: "me@b.io"})
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, v url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(v.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestShow_RedirectsAnonymous(t *testing.T) {
	t.Parallel()
	rec := serve(t, &fakeSvc{}, httptest.NewRequest(http.MethodGet, "/users/me", nil), false)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/signin" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestShow_RendersUserAndColors(t *testing.T) {
	t.Parallel()
	svc := &fakeSvc{enabled: true, colors: []domain.ColorPref{{Key: "all_positive", Color: "#123456"}}}
	rec := serve(t, svc, httptest.NewRequest(http.MethodGet, "/users/me", nil), true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	kit.MustContain(t, body, "me@b.io")
	kit.MustContain(t, body, "#123456")
	kit.MustContain(t, body, "All Positive")
}

func TestUpdateProfile_ValidationRerenders(t *testing.T) {
	t.Parallel()
	rec := serve(t, &fakeSvc{}, postForm("/users/me", url.Values{"email": {"not-an-email"}}), true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), "not-an-email")
	kit.MustContain(t, rec.Body.String(), `class="error"`)
}

func TestUpdateProfile_BackendConflict(t *testing.T) {
	t.Parallel()
	svc := &fakeSvc{emailErr: perr.WithField(perr.Conflictf("that email is already in use"), "email")}
	rec := serve(t, svc, postForm("/users/me", url.Values{"email": {"taken@b.io"}}), true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), "already in use")
}

func TestUpdateProfile_Success(t *testing.T) {
	t.Parallel()
	rec := serve(t, &fakeSvc{}, postForm("/users/me", url.Values{"email": {"new@b.io"}}), true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), "Your email was updated.")
}

func TestSetColor(t *testing.T) {
	t.Parallel()
	svc := &fakeSvc{enabled: true}
	rec := serve(t, svc, postForm("/users/me/colors", url.Values{"key": {"all"}, "color": {"#ff0000"}}), true)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/users/me?saved=1" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if len(svc.setCalls) != 1 || svc.setCalls[0].Color != "#ff0000" {
		t.Fatalf("calls = %+v", svc.setCalls)
	}

	rec = serve(t, svc, postForm("/users/me/colors", url.Values{"key": {"all"}, "color": {"red"}}), true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad colour status = %d", rec.Code)
	}
	if len(svc.setCalls) != 1 {
		t.Fatal("invalid colour reached the service")
	}
}
