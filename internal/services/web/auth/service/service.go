// Package service exchanges credentials with the sentiment backend
package service

import (
	"context"
	"net/http"
	"strings"

	"reviewlens/internal/adapters/backend"
	perr "reviewlens/internal/platform/errors"
	"reviewlens/internal/platform/logger"
	"reviewlens/internal/services/web/auth/domain"
)

// Messages shown on the forms
const (
	MsgBadCredentials = "Invalid email or password"
	MsgNotVerified    = "This account has not been verified yet"
	MsgUserExists     = "An account with this email already exists"
	MsgBadPassword    = "This password is not accepted, choose another"
)

// Service defines the auth service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service
type Svc struct {
	api domain.Backend
}

var _ Service = (*Svc)(nil)

// New constructs the auth service
func New(api domain.Backend) *Svc {
	if api == nil {
		panic("auth.Service requires a non nil Backend")
	}
	return &Svc{api: api}
}

// SignIn returns the access token for valid credentials
func (s *Svc) SignIn(ctx context.Context, in domain.SignIn) (string, error) {
	token, err := s.api.Login(ctx, strings.TrimSpace(in.Username), in.Password)
	if err == nil {
		return token, nil
	}
	switch backend.DetailOf(err) {
	case backend.DetailBadCredentials:
		return "", perr.Validationf(MsgBadCredentials)
	case backend.DetailUserNotVerified:
		return "", perr.Forbiddenf(MsgNotVerified)
	}
	if backend.StatusOf(err) == http.StatusBadRequest {
		return "", perr.Validationf(MsgBadCredentials)
	}
	logger.C(ctx).Warn().Err(err).Msg("sign in failed")
	return "", err
}

// SignUp registers a new account
func (s *Svc) SignUp(ctx context.Context, in domain.SignUp) error {
	_, err := s.api.Register(ctx, strings.TrimSpace(in.Email), in.Password)
	if err == nil {
		return nil
	}
	switch backend.DetailOf(err) {
	case backend.DetailUserExists:
		return perr.WithField(perr.Conflictf(MsgUserExists), "email")
	case backend.DetailInvalidPassword:
		return perr.WithField(perr.Validationf(MsgBadPassword), "password")
	}
	return err
}
