package http_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewlens/internal/platform/config"
	phttp "reviewlens/internal/platform/net/http"
)

func config0() config.Conf { return config.New().Prefix("RLTEST_NONE_") }

type fakeRenderer struct{ fail bool }

func (f fakeRenderer) Render(w io.Writer, name string, data any) error {
	if f.fail {
		_, _ = io.WriteString(w, "partial")
		return errors.New("template exploded")
	}
	_, err := fmt.Fprintf(w, "<h1>%s:%v</h1>", name, data)
	return err
}

func TestRender(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	phttp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), fakeRenderer{}, http.StatusTeapot, "home", 3)
	if rec.Code != http.StatusTeapot || rec.Body.String() != "<h1>home:3</h1>" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q", ct)
	}
}

func TestRenderFailureDoesNotLeakPartialOutput(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	phttp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), fakeRenderer{fail: true}, http.StatusOK, "home", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); got == "partial" {
		t.Fatalf("partial output written")
	}
}

func TestRedirect(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	phttp.Redirect(rec, httptest.NewRequest(http.MethodPost, "/signin", nil), "/")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestMountProfiler(t *testing.T) {
	t.Parallel()
	r := phttp.NewServer(config0()).Router()
	phttp.MountProfiler(r, "/debug", true)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("pprof index = %d", rec.Code)
	}

	off := phttp.NewServer(config0()).Router()
	phttp.MountProfiler(off, "/debug", false)
	rec = httptest.NewRecorder()
	off.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled profiler = %d", rec.Code)
	}
}
