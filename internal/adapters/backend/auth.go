package backend

import (
	"context"
	"net/http"
	"net/url"

	perr "reviewlens/internal/platform/errors"
	pnet "reviewlens/internal/platform/net"

	"github.com/google/uuid"
)

type tokenReply struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token
// bad credentials come back as a Validation error carrying DetailBadCredentials
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{"username": {email}, "password": {password}}
	var out tokenReply
	if err := c.do(ctx, formCall("auth.login", "/auth/jwt/login", form), &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", perr.Upstreamf("login reply carried no token")
	}
	return out.AccessToken, nil
}

// Register creates an account; an existing email yields DetailUserExists
func (c *Client) Register(ctx context.Context, email, password string) (*pnet.Principal, error) {
	cl, err := jsonCall("auth.register", http.MethodPost, "/auth/register", credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	var out pnet.Principal
	if err := c.do(ctx, cl, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser resolves the token on ctx to its user
func (c *Client) CurrentUser(ctx context.Context) (*pnet.Principal, error) {
	cl := getCall("users.me", "/users/me", nil)
	cl.authed = true
	var out pnet.Principal
	if err := c.do(ctx, cl, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser patches the user with id
func (c *Client) UpdateUser(ctx context.Context, id string, u UserUpdate) (*pnet.Principal, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, perr.WithField(perr.InvalidArgf("invalid user id"), "id")
	}
	cl, err := jsonCall("users.update", http.MethodPatch, "/users/"+id, u)
	if err != nil {
		return nil, err
	}
	cl.authed = true
	var out pnet.Principal
	if err := c.do(ctx, cl, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
