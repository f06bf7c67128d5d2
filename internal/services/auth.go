package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/factorg/internal/auth"
	"github.com/dmitrijs2005/factorg/internal/common"
	"github.com/dmitrijs2005/factorg/internal/logging"
)

const (
	msgBadLogin           = "Correo o contraseña incorrectos."
	msgAlreadyRegistered  = "Este correo ya está registrado. Intenta iniciar sesión."
	msgPasswordPolicy     = "La contraseña no cumple la política de seguridad. Revisa los requisitos."
	msgSignUpFailed       = "No se pudo crear la cuenta."
	msgConfirmationNeeded = "Cuenta creada. Revisa tu correo para confirmar la cuenta antes de iniciar sesión."
	msgAccountCreated     = "Cuenta creada. Ya puedes iniciar sesión."
)

// AuthService signs users in and out through the session provider.
//
// SignIn and Register return *UserError values whose text can be shown on
// the login and registration forms as-is.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*auth.Session, error)
	Register(ctx context.Context, r Registration) (string, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken, newRefreshToken string, err error)
	SignOut(ctx context.Context, accessToken string)
}

type authService struct {
	provider auth.Provider
	logger   logging.Logger
}

func NewAuthService(p auth.Provider, logger logging.Logger) AuthService {
	return &authService{provider: p, logger: logger}
}

func (a *authService) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, &UserError{Msg: msgBadLogin, Err: common.ErrInvalidCredential}
	}

	s, err := a.provider.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredential) {
			return nil, &UserError{Msg: msgBadLogin, Err: err}
		}
		return nil, err
	}
	if s.Email == "" {
		s.Email = email
	}
	return s, nil
}

// Register validates r and creates the account. The returned text tells the
// user whether the email must be confirmed first.
func (a *authService) Register(ctx context.Context, r Registration) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	res, err := a.provider.SignUp(ctx, strings.TrimSpace(r.Email), r.Password, strings.TrimSpace(r.Name))
	if err != nil {
		return "", &UserError{Msg: signUpMessage(err), Err: err}
	}

	a.logger.Info(ctx, "account created", "email", logging.MaskEmail(r.Email))
	if res.ConfirmationPending {
		return msgConfirmationNeeded, nil
	}
	return msgAccountCreated, nil
}

func signUpMessage(err error) string {
	var pe *auth.ProviderError
	if !errors.As(err, &pe) {
		return msgSignUpFailed
	}
	lower := strings.ToLower(pe.Message)
	switch {
	case strings.Contains(lower, "already registered"), strings.Contains(lower, "already exists"):
		return msgAlreadyRegistered
	case strings.Contains(lower, "password"):
		return msgPasswordPolicy
	case pe.Message != "":
		return pe.Message
	}
	return msgSignUpFailed
}

// Refresh has the shape of client.RefreshFunc.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	s, err := a.provider.Refresh(ctx, refreshToken)
	if err != nil {
		return "", "", err
	}
	rt := s.RefreshToken
	if rt == "" {
		rt = refreshToken
	}
	return s.AccessToken, rt, nil
}

// SignOut revokes the token at the provider. Failures are only logged: the
// local session is dropped either way.
func (a *authService) SignOut(ctx context.Context, accessToken string) {
	if accessToken == "" {
		return
	}
	if err := a.provider.SignOut(ctx, accessToken); err != nil {
		a.logger.Warn(ctx, "provider sign out failed", "token", logging.MaskToken(accessToken), "error", err)
	}
}
