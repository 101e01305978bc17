package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	perr "reviewlens/internal/platform/errors"
	pnet "reviewlens/internal/platform/net"
	phttp "reviewlens/internal/platform/net/http"
	"reviewlens/internal/platform/net/middleware"
	kit "reviewlens/internal/platform/testkit"
	"reviewlens/internal/services/web/auth/domain"
	"reviewlens/internal/ui"

	"github.com/go-chi/chi/v5"
)

type fakeSvc struct {
	token     string
	signInErr error
	signUpErr error
	signUps   int
}

func (f *fakeSvc) SignIn(context.Context, domain.SignIn) (string, error) { return f.token, f.signInErr }
func (f *fakeSvc) SignUp(context.Context, domain.SignUp) error {
	f.signUps++
	return f.signUpErr
}

func newMux(svc *fakeSvc, o Options) *chi.Mux {
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), svc, ui.MustNew(), o)
	return mux
}

func post(path string, v url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(v.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func do(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestSignin_SetsCookieAndRedirects(t *testing.T) {
	t.Parallel()
	mux := newMux(&fakeSvc{token: "tok"}, Options{Secure: true})
	rec := do(mux, post("/signin", url.Values{"username": {"a@b.io"}, "password": {"pw"}}))
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %v", cookies)
	}
	c := cookies[0]
	if c.Name != middleware.CookieName || c.Value != "Bearer tok" || !c.HttpOnly || !c.Secure || c.MaxAge != int((24*time.Hour)/time.Second) {
		t.Fatalf("cookie = %+v", c)
	}
}

func TestSignin_BadCredentialsRerenders(t *testing.T) {
	t.Parallel()
	mux := newMux(&fakeSvc{signInErr: perr.Validationf("Invalid email or password")}, Options{})
	rec := do(mux, post("/signin", url.Values{"username": {"a@b.io"}, "password": {"pw"}}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	kit.MustContain(t, body, "Invalid email or password")
	kit.MustContain(t, body, `value="a@b.io"`)
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("cookie set on failure")
	}
}

func TestSignin_ValidationAndUpstream(t *testing.T) {
	t.Parallel()
	rec := do(newMux(&fakeSvc{}, Options{}), post("/signin", url.Values{"username": {"nope"}}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), `class="error"`)

	rec = do(newMux(&fakeSvc{signInErr: perr.Unavailablef("down")}, Options{}), post("/signin", url.Values{"username": {"a@b.io"}, "password": {"pw"}}))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSigninPage_RedirectsSignedIn(t *testing.T) {
	t.Parallel()
	mux := newMux(&fakeSvc{}, Options{})
	for _, path := range []string{"/signin", "/signup"} {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		r = r.WithContext(pnet.WithUser(r.Context(), &pnet.Principal{ID: "u"}))
		if rec := do(mux, r); rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
			t.Fatalf("%s: got %d", path, rec.Code)
		}
		if rec := do(mux, httptest.NewRequest(http.MethodGet, path, nil)); rec.Code != http.StatusOK {
			t.Fatalf("%s anonymous: got %d", path, rec.Code)
		}
	}
}

func TestSignup(t *testing.T) {
	t.Parallel()
	svc := &fakeSvc{}
	mux := newMux(svc, Options{})
	ok := url.Values{"email": {"a@b.io"}, "password": {"hunter22"}, "passwordConfirm": {"hunter22"}}
	rec := do(mux, post("/signup", ok))
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/signin" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	mismatch := url.Values{"email": {"a@b.io"}, "password": {"hunter22"}, "passwordConfirm": {"hunter23"}}
	rec = do(mux, post("/signup", mismatch))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if n := strings.Count(rec.Body.String(), "Passwords do not match"); n != 2 {
		t.Fatalf("mismatch shown %d times", n)
	}
	if svc.signUps != 1 {
		t.Fatalf("signUps = %d", svc.signUps)
	}

	svc.signUpErr = perr.WithField(perr.Conflictf("An account with this email already exists"), "email")
	rec = do(mux, post("/signup", ok))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), "An account with this email already exists")
}

func TestSignout(t *testing.T) {
	t.Parallel()
	mux := newMux(&fakeSvc{}, Options{})
	for _, m := range []string{http.MethodGet, http.MethodPost} {
		rec := do(mux, httptest.NewRequest(m, "/signout", nil))
		if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/signin" {
			t.Fatalf("%s: got %d", m, rec.Code)
		}
		c := rec.Result().Cookies()
		if len(c) != 1 || c[0].MaxAge >= 0 {
			t.Fatalf("%s: cookies = %v", m, c)
		}
	}
}

func TestSignin_RateLimited(t *testing.T) {
	t.Parallel()
	mux := newMux(&fakeSvc{signInErr: perr.Validationf("Invalid email or password")}, Options{
		Limit: middleware.RateLimitOptions{Requests: 1, Window: time.Minute},
	})
	form := url.Values{"username": {"a@b.io"}, "password": {"pw"}}
	if rec := do(mux, post("/signin", form)); rec.Code != http.StatusBadRequest {
		t.Fatalf("first: %d", rec.Code)
	}
	rec := do(mux, post("/signin", form))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second: %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), "Too many attempts")
}
