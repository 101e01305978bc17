// Package http serves the account pages
package http

import (
	stdhttp "net/http"

	"reviewlens/internal/modkit/httpkit"
	"reviewlens/internal/platform/logger"
	pnet "reviewlens/internal/platform/net"
	"reviewlens/internal/platform/net/http/bind"
	"reviewlens/internal/services/web/account/domain"
	"reviewlens/internal/ui"
)

// KeySource lists the series a colour can be set for
type KeySource func() []string

// Register mounts the account pages
func Register(r httpkit.Router, s domain.ServicePort, pages httpkit.Renderer, keys KeySource) {
	h := &handlers{svc: s, pages: pages, keys: keys}
	httpkit.Page(r, "/users/me", h.show)
	httpkit.Form(r, "/users/me", h.updateProfile)
	httpkit.Form(r, "/users/me/colors", h.setColor)
}

type handlers struct {
	svc   domain.ServicePort
	pages httpkit.Renderer
	keys  KeySource
}

// user returns the resolved principal or redirects to sign in
func (h *handlers) user(w stdhttp.ResponseWriter, r *stdhttp.Request) (*pnet.Principal, bool) {
	u := pnet.User(r.Context())
	if pnet.Token(r.Context()) == "" || u == nil {
		httpkit.Redirect(w, r, "/signin")
		return nil, false
	}
	return u, true
}

func (h *handlers) page(r *stdhttp.Request, u *pnet.Principal, profile, colors ui.Form) domain.Account {
	if _, ok := profile.Values["email"]; !ok {
		profile.Values["email"] = u.Email
	}
	acc := domain.Account{
		User:          u,
		Profile:       profile,
		ColorsEnabled: h.svc.ColorsEnabled(),
		ColorForm:     colors,
	}
	if acc.ColorsEnabled {
		prefs, err := h.svc.Colors(r.Context(), u.ID)
		if err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("load chart colours")
			acc.ColorForm.Message = "Saved colours could not be loaded."
		}
		acc.Colors = prefs
		if h.keys != nil {
			acc.Keys = h.keys()
		}
	}
	return acc
}

func (h *handlers) render(w stdhttp.ResponseWriter, r *stdhttp.Request, status int, acc domain.Account) {
	httpkit.Render(w, r, h.pages, status, "account", ui.NewView(r, "Account", acc))
}

func (h *handlers) show(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	u, ok := h.user(w, r)
	if !ok {
		return
	}
	profile := ui.NewForm()
	if r.URL.Query().Get("saved") == "1" {
		profile.Success = "Saved."
	}
	h.render(w, r, stdhttp.StatusOK, h.page(r, u, profile, ui.NewForm()))
}

func (h *handlers) updateProfile(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	u, ok := h.user(w, r)
	if !ok {
		return
	}
	in, err := bind.ParseForm[domain.ProfileForm](r)
	form := ui.NewForm()
	form.Values["email"] = r.PostForm.Get("email")
	if err == nil {
		var updated *pnet.Principal
		if updated, err = h.svc.UpdateEmail(r.Context(), u.ID, in.Email); err == nil {
			form.Success = "Your email was updated."
			form.Values["email"] = updated.Email
			h.render(w, r, stdhttp.StatusOK, h.page(r, updated, form, ui.NewForm()))
			return
		}
	}
	form.Fail(err)
	h.render(w, r, stdhttp.StatusBadRequest, h.page(r, u, form, ui.NewForm()))
}

func (h *handlers) setColor(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	u, ok := h.user(w, r)
	if !ok {
		return
	}
	in, err := bind.ParseForm[domain.ColorForm](r)
	if err == nil {
		if err = h.svc.SetColor(r.Context(), u.ID, in); err == nil {
			httpkit.Redirect(w, r, "/users/me?saved=1")
			return
		}
	}
	colors := ui.NewForm()
	colors.Fail(err)
	h.render(w, r, stdhttp.StatusBadRequest, h.page(r, u, ui.NewForm(), colors))
}
