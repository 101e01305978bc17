package ui

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"reviewlens/internal/core/chart"
	perr "reviewlens/internal/platform/errors"
	pnet "reviewlens/internal/platform/net"
	"reviewlens/internal/platform/net/http/bind"
	kit "reviewlens/internal/platform/testkit"
)

func TestNew_ParsesEveryPage(t *testing.T) {
	t.Parallel()
	p := MustNew()
	want := []string{"account", "error", "game", "games", "home", "reviews", "signin", "signup"}
	if got := p.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("pages = %v", got)
	}
}

func TestNew_BadTemplate(t *testing.T) {
	t.Parallel()
	src := fstest.MapFS{
		"templates/layout.html": {Data: []byte(`{{define "layout"}}{{template "content" .}}{{end}}`)},
		"templates/broken.html": {Data: []byte(`{{define "content"}}{{if}}{{end}}`)},
	}
	if _, err := newFrom(src); err == nil {
		t.Fatal("want parse error")
	}
}

func TestRender_UnknownPage(t *testing.T) {
	t.Parallel()
	if err := MustNew().Render(&bytes.Buffer{}, "nope", nil); err == nil {
		t.Fatal("want error")
	}
}

func TestRender_SigninShowsErrorsAndEscapes(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodGet, "/signin", nil)
	f := NewForm()
	f.Values["username"] = `"><script>x</script>`
	f.Errors["password"] = "password is required"
	f.Message = "Invalid email or password"

	var buf bytes.Buffer
	if err := MustNew().Render(&buf, "signin", NewView(r, "Sign in", f)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	kit.MustContain(t, out, "password is required")
	kit.MustContain(t, out, "Invalid email or password")
	kit.MustNotContain(t, out, "<script>x</script>")
	kit.MustContain(t, out, `href="/signin"`)
}

func TestNewView_SignedIn(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	ctx := pnet.WithToken(r.Context(), "tok")
	ctx = pnet.WithUser(ctx, &pnet.Principal{ID: "u1", Email: "a@b.io"})
	v := NewView(r.WithContext(ctx), "Account", nil)
	if !v.SignedIn || v.User == nil || v.Path != "/users/me" {
		t.Fatalf("view = %+v", v)
	}
}

func TestRenderError_StatusAndMessage(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{perr.NotFoundf("game 9 not found"), http.StatusNotFound, "game 9 not found"},
		{perr.Upstreamf("boom"), http.StatusBadGateway, "not answering"},
		{errors.New("secret detail"), http.StatusInternalServerError, "went wrong"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RenderError(rec, httptest.NewRequest(http.MethodGet, "/games/9", nil), MustNew(), tc.err)
		if rec.Code != tc.status {
			t.Fatalf("%v: status = %d", tc.err, rec.Code)
		}
		kit.MustContain(t, rec.Body.String(), tc.msg)
		kit.MustNotContain(t, rec.Body.String(), "secret detail")
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"performance_bugs": "Performance Bugs",
		"audio_visuals":    "Audio Visuals",
		"steam_positive":   "Steam Positive",
		"overall":          "Overall",
	}
	for in, want := range cases {
		if got := Label(in); got != want {
			t.Fatalf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPageURL(t *testing.T) {
	t.Parallel()
	q := url.Values{"name": {"hades"}, "page": {"3"}}
	if got := PageURL("/games", q, 4); got != "/games?name=hades&page=4" {
		t.Fatalf("got %q", got)
	}
	if got := PageURL("/games", q, 1); got != "/games?name=hades" {
		t.Fatalf("got %q", got)
	}
	if q.Get("page") != "3" {
		t.Fatal("input values mutated")
	}
	if got := PageURL("/games", nil, 1); got != "/games" {
		t.Fatalf("got %q", got)
	}
}

func TestLinePlot(t *testing.T) {
	t.Parallel()
	d0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []chart.BucketedRow{
		{Date: d0, Counts: map[string]int64{"all_positive": 0, "Steam_negative": 1}},
		{Date: d0.AddDate(0, 0, 1), Counts: map[string]int64{"all_positive": 10}},
		{Date: d0.AddDate(0, 0, 2), Counts: map[string]int64{"all_positive": 5}},
	}
	colors := map[string]string{"all": "#007bff", "Steam_negative": "bogus"}
	p, err := LinePlot(rows, []string{"all_positive", "Steam_negative"}, colors, 400, 200)
	if err != nil {
		t.Fatalf("LinePlot: %v", err)
	}
	if p.Max != 10 || len(p.Lines) != 2 {
		t.Fatalf("plot = %+v", p)
	}
	if l := p.Lines[0]; l.Color != "#007bff" || l.Total != 15 || l.Label != Label("all_positive") {
		t.Fatalf("line = %+v", l)
	}
	svg := string(p.SVG)
	kit.MustContain(t, svg, "<svg")
	kit.MustContain(t, svg, "rgba(0,123,255,1.0)")
	// unparseable colours draw grey
	kit.MustContain(t, svg, "rgba(136,136,136,1.0)")
	kit.MustContain(t, svg, "Jan 2")
}

func TestLinePlot_Degenerate(t *testing.T) {
	t.Parallel()
	d0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cases := map[string][]chart.BucketedRow{
		"single row": {{Date: d0, Counts: map[string]int64{"all_positive": 4}}},
		"all zero": {
			{Date: d0, Counts: map[string]int64{}},
			{Date: d0.AddDate(1, 0, 0), Counts: map[string]int64{}},
		},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p, err := LinePlot(rows, []string{"all_positive"}, nil, 300, 120)
			if err != nil || p.SVG == "" {
				t.Fatalf("plot = %+v, %v", p, err)
			}
		})
	}

	empty, err := LinePlot(nil, []string{"all_positive"}, nil, 200, 100)
	if err != nil || len(empty.Lines) != 0 || empty.SVG != "" {
		t.Fatalf("empty plot = %+v, %v", empty, err)
	}
}

func TestForm_Fail(t *testing.T) {
	t.Parallel()
	type signup struct {
		Email    string `form:"email" validate:"required,email"`
		Password string `form:"password" validate:"min=8"`
	}
	verr := bind.Validate(signup{Email: "x", Password: "short"})

	cases := []struct {
		name  string
		err   error
		field string
		msg   string
	}{
		{"validator", verr, "password", ""},
		{"coded field", perr.WithField(perr.Conflictf("that email is already in use"), "email"), "email", ""},
		{"coded", perr.Validationf("Invalid email or password"), "", "Invalid email or password"},
		{"foreign", errors.New("dial tcp"), "", "Something went wrong"},
	}
	for _, tc := range cases {
		f := NewForm()
		f.Fail(tc.err)
		if !f.HasErrors() {
			t.Fatalf("%s: no errors recorded", tc.name)
		}
		if tc.field != "" && f.Error(tc.field) == "" {
			t.Fatalf("%s: missing %s error in %v", tc.name, tc.field, f.Errors)
		}
		if tc.msg != "" && !strings.Contains(f.Message, tc.msg) {
			t.Fatalf("%s: message = %q", tc.name, f.Message)
		}
	}
}
