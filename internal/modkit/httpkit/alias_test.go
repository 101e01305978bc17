package httpkit

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "reviewlens/internal/platform/errors"
	kit "reviewlens/internal/platform/testkit"
)

func run(h Handler, r *http.Request) (int, string) {
	rec := httptest.NewRecorder()
	h(rec, r)
	b, _ := io.ReadAll(rec.Result().Body)
	return rec.Code, string(b)
}

func TestCall(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		fn       func(*http.Request) (any, error)
		wantCode int
		wantBody string
	}{
		{
			name:     "plain value is wrapped",
			fn:       func(*http.Request) (any, error) { return map[string]int{"total": 3}, nil },
			wantCode: http.StatusOK,
			wantBody: `"total":3`,
		},
		{
			name:     "response passes through",
			fn:       func(*http.Request) (any, error) { return List([]int{1}, 10, 2, 1), nil },
			wantCode: http.StatusOK,
			wantBody: `"page_size":1`,
		},
		{
			name:     "typed error maps status",
			fn:       func(*http.Request) (any, error) { return nil, perr.NotFoundf("game %d not found", 7) },
			wantCode: http.StatusNotFound,
			wantBody: "game 7 not found",
		},
		{
			name:     "foreign error is 500",
			fn:       func(*http.Request) (any, error) { return nil, errors.New("boom") },
			wantCode: http.StatusInternalServerError,
			wantBody: "boom",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			code, body := run(Call(tc.fn), httptest.NewRequest(http.MethodGet, "/x", nil))
			if code != tc.wantCode {
				t.Fatalf("code = %d, want %d (%s)", code, tc.wantCode, body)
			}
			kit.MustContain(t, body, tc.wantBody)
		})
	}
}

func TestNoContent(t *testing.T) {
	t.Parallel()
	code, body := run(Call(func(*http.Request) (any, error) { return NoContent(), nil }),
		httptest.NewRequest(http.MethodDelete, "/x", nil))
	if code != http.StatusNoContent || body != "" {
		t.Fatalf("got %d %q", code, body)
	}
}
