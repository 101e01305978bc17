// Package backend is the HTTP client for the sentiment analysis API
//
// Every call reads the bearer token from the request context, so one Client
// serves all users. Calls go through a circuit breaker; transport failures and
// 5xx replies count against it, 4xx replies do not.
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "reviewlens/internal/platform/errors"
	"reviewlens/internal/platform/logger"
	"reviewlens/internal/platform/metrics"
	pnet "reviewlens/internal/platform/net"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// BreakerName labels the breaker in logs and metrics
const BreakerName = "sentiment-backend"

// Client talks to the sentiment backend
type Client struct {
	base *url.URL
	http *http.Client
	opts Options
	cb   *gobreaker.CircuitBreaker[*reply]
	log  logger.Logger
	now  func() time.Time
}

// reply is a fully read response
type reply struct {
	status int
	body   []byte
}

// serverFault marks replies that count as breaker failures
type serverFault struct {
	status int
	body   []byte
}

func (e *serverFault) Error() string { return fmt.Sprintf("backend status %d", e.status) }

// New builds a Client; hc may be nil
func New(o Options, hc *http.Client) (*Client, error) {
	o = o.withDefaults()
	base, err := url.Parse(strings.TrimRight(o.BaseURL, "/") + "/")
	if err != nil || !base.IsAbs() {
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "backend: invalid base url %q", o.BaseURL)
	}
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}

	c := &Client{
		base: base,
		http: hc,
		opts: o,
		log:  *logger.Named("backend"),
		now:  time.Now,
	}
	metrics.SetBreakerState(BreakerName, int(gobreaker.StateClosed))
	c.cb = gobreaker.NewCircuitBreaker[*reply](gobreaker.Settings{
		Name:        BreakerName,
		MaxRequests: o.Breaker.HalfOpenMax,
		Interval:    o.Breaker.Interval,
		Timeout:     o.Breaker.OpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= o.Breaker.Failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("breaker state change")
			metrics.SetBreakerState(name, int(to))
		},
	})
	return c, nil
}

// BreakerState reports the breaker state
func (c *Client) BreakerState() gobreaker.State { return c.cb.State() }

// call describes one request
type call struct {
	endpoint    string // metrics label
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	authed      bool
}

func jsonCall(endpoint, method, path string, in any) (call, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return call{}, perr.Wrap(err, perr.ErrorCodeJSON, "encode backend request")
	}
	return call{endpoint: endpoint, method: method, path: path, body: b, contentType: "application/json"}, nil
}

func formCall(endpoint, path string, form url.Values) call {
	return call{
		endpoint:    endpoint,
		method:      http.MethodPost,
		path:        path,
		body:        []byte(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}
}

func getCall(endpoint, path string, q url.Values) call {
	return call{endpoint: endpoint, method: http.MethodGet, path: path, query: q}
}

func (c *Client) resolve(path string, q url.Values) string {
	u := c.base.ResolveReference(&url.URL{Path: strings.TrimLeft(path, "/")})
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// do runs cl and decodes a 2xx body into out when out is non nil
func (c *Client) do(ctx context.Context, cl call, out any) error {
	token := pnet.Token(ctx)
	if cl.authed && token == "" {
		return perr.Unauthorizedf("not signed in")
	}

	start := c.now()
	rep, err := c.cb.Execute(func() (*reply, error) {
		return c.roundTrip(ctx, cl, token)
	})
	elapsed := c.now().Sub(start)

	l := c.log.With().Str("endpoint", cl.endpoint).Str("request_id", logger.RequestIDFrom(ctx)).Logger()
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.ObserveBackend(cl.endpoint, metrics.OutcomeRejected, elapsed)
		l.Warn().Err(err).Msg("backend call rejected by breaker")
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "sentiment backend unavailable")
	case err != nil:
		metrics.ObserveBackend(cl.endpoint, metrics.OutcomeError, elapsed)
		var sf *serverFault
		if errors.As(err, &sf) {
			l.Error().Int("status", sf.status).Dur("elapsed", elapsed).Msg("backend server error")
			return statusError(sf.status, sf.body)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return perr.Wrap(ctxErr, perr.ErrorCodeUnavailable, "backend call cancelled")
		}
		l.Error().Err(err).Dur("elapsed", elapsed).Msg("backend transport error")
		return perr.Wrap(err, perr.ErrorCodeUpstream, "sentiment backend unreachable")
	}

	if rep.status >= 300 {
		metrics.ObserveBackend(cl.endpoint, metrics.OutcomeError, elapsed)
		l.Debug().Int("status", rep.status).Dur("elapsed", elapsed).Msg("backend client error")
		return statusError(rep.status, rep.body)
	}

	metrics.ObserveBackend(cl.endpoint, metrics.OutcomeOK, elapsed)
	l.Debug().Int("status", rep.status).Dur("elapsed", elapsed).Msg("backend call")
	if out == nil || len(rep.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(rep.body, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "decode %s reply", cl.endpoint)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, cl call, token string) (*reply, error) {
	var body io.Reader
	if cl.body != nil {
		body = bytes.NewReader(cl.body)
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, c.resolve(cl.path, cl.query), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	reqID := logger.RequestIDFrom(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBody))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 500 {
		return nil, &serverFault{status: resp.StatusCode, body: b}
	}
	return &reply{status: resp.StatusCode, body: b}, nil
}

// Ping reports whether the backend answers; any non 5xx reply counts
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, getCall("ping", "/sources/", url.Values{"limit": {"1"}}), nil)
}
