// Package http serves the sign in, sign up and sign out pages
package http

import (
	stdhttp "net/http"
	"time"

	"reviewlens/internal/modkit/httpkit"
	perr "reviewlens/internal/platform/errors"
	pnet "reviewlens/internal/platform/net"
	"reviewlens/internal/platform/net/http/bind"
	"reviewlens/internal/platform/net/middleware"
	"reviewlens/internal/services/web/auth/domain"
	"reviewlens/internal/ui"
)

// Options configures the auth pages
type Options struct {
	// Secure marks the session cookie Secure
	Secure bool
	// SessionMaxAge bounds the cookie lifetime; the token exp caps it further
	SessionMaxAge time.Duration
	// Limit applies to the POST handlers
	Limit middleware.RateLimitOptions
}

// Register mounts the auth pages
func Register(r httpkit.Router, s domain.ServicePort, pages httpkit.Renderer, o Options) {
	if o.SessionMaxAge <= 0 {
		o.SessionMaxAge = 24 * time.Hour
	}
	if o.Limit.OnLimit == nil {
		o.Limit.OnLimit = func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			ui.RenderError(w, r, pages, perr.New(perr.ErrorCodeTooManyRequests, "Too many attempts, wait a minute and try again."))
		}
	}
	h := &handlers{svc: s, pages: pages, opts: o}
	limited := r.With(middleware.RateLimit(o.Limit))

	httpkit.Page(r, "/signin", h.signinPage)
	httpkit.Form(limited, "/signin", h.signin)
	httpkit.Page(r, "/signup", h.signupPage)
	httpkit.Form(limited, "/signup", h.signup)
	httpkit.Page(r, "/signout", h.signout)
	httpkit.Form(r, "/signout", h.signout)
}

type handlers struct {
	svc   domain.ServicePort
	pages httpkit.Renderer
	opts  Options
}

func (h *handlers) render(w stdhttp.ResponseWriter, r *stdhttp.Request, status int, page, title string, f ui.Form) {
	httpkit.Render(w, r, h.pages, status, page, ui.NewView(r, title, f))
}

func signedIn(r *stdhttp.Request) bool { return pnet.User(r.Context()) != nil }

func (h *handlers) signinPage(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if signedIn(r) {
		httpkit.Redirect(w, r, "/")
		return
	}
	h.render(w, r, stdhttp.StatusOK, "signin", "Sign in", ui.NewForm())
}

func (h *handlers) signin(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := bind.ParseForm[domain.SignIn](r)
	form := ui.NewForm()
	form.Values["username"] = r.PostForm.Get("username")
	if err == nil {
		var token string
		if token, err = h.svc.SignIn(r.Context(), in); err == nil {
			stdhttp.SetCookie(w, middleware.SessionCookie(token, h.opts.SessionMaxAge, h.opts.Secure))
			httpkit.Redirect(w, r, "/")
			return
		}
	}
	form.Fail(err)
	h.render(w, r, failStatus(err), "signin", "Sign in", form)
}

func (h *handlers) signupPage(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if signedIn(r) {
		httpkit.Redirect(w, r, "/")
		return
	}
	h.render(w, r, stdhttp.StatusOK, "signup", "Sign up", ui.NewForm())
}

func (h *handlers) signup(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := bind.ParseForm[domain.SignUp](r)
	form := ui.NewForm()
	form.Values["email"] = r.PostForm.Get("email")
	if err == nil {
		if err = h.svc.SignUp(r.Context(), in); err == nil {
			httpkit.Redirect(w, r, "/signin")
			return
		}
	}
	form.Fail(err)
	if _, mismatch := bind.Fields(err)["passwordConfirm"]; mismatch && form.Errors["password"] == "" {
		form.Errors["password"] = "Passwords do not match"
		form.Errors["passwordConfirm"] = "Passwords do not match"
	}
	h.render(w, r, failStatus(err), "signup", "Sign up", form)
}

func (h *handlers) signout(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	stdhttp.SetCookie(w, middleware.ClearSessionCookie(h.opts.Secure))
	httpkit.Redirect(w, r, "/signin")
}

// failStatus keeps form errors at 400 and lets server side failures keep their status
func failStatus(err error) int {
	if s := perr.HTTPStatus(err); s >= stdhttp.StatusInternalServerError {
		return s
	}
	return stdhttp.StatusBadRequest
}
