package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "reviewlens/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func serve(t *testing.T, mux http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestMountUnder(t *testing.T) {
	t.Parallel()

	hits := 0
	count := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			next.ServeHTTP(w, r)
		})
	}
	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	MountUnder(r, "/games", []func(http.Handler) http.Handler{count}, func(sub Router) { sub.Get("/", ok) })
	MountUnder(r, "", nil, func(sub Router) { sub.Get("/signin", ok) })

	if rec := serve(t, mux, http.MethodGet, "/games/"); rec.Code != http.StatusOK {
		t.Fatalf("/games/ = %d", rec.Code)
	}
	if rec := serve(t, mux, http.MethodGet, "/signin"); rec.Code != http.StatusOK {
		t.Fatalf("/signin = %d", rec.Code)
	}
	if hits != 1 {
		t.Fatalf("module middleware ran %d times, want 1", hits)
	}
}

func TestMountAPIV1(t *testing.T) {
	t.Parallel()

	if got := APIPrefix("/v2/"); got != "/api/v2" {
		t.Fatalf("APIPrefix = %q", got)
	}

	mux := chi.NewRouter()
	MountAPIV1(phttp.AdaptChi(mux), nil, func(api Router) {
		Get(api, "/ping", func(*http.Request) (any, error) { return "pong", nil })
	})
	rec := serve(t, mux, http.MethodGet, "/api/v1/ping")
	if rec.Code != http.StatusOK {
		t.Fatalf("/api/v1/ping = %d", rec.Code)
	}
}

func TestIntParam(t *testing.T) {
	t.Parallel()
	mux := chi.NewRouter()
	var got int
	var gotErr error
	mux.Get("/games/{id}", func(w http.ResponseWriter, r *http.Request) {
		got, gotErr = IntParam(r, "id")
	})
	for target, want := range map[string]int{"/games/42": 42, "/games/abc": 0, "/games/-3": 0} {
		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
		if got != want || (want == 0) != (gotErr != nil) {
			t.Fatalf("%s: got %d, %v", target, got, gotErr)
		}
	}
}
