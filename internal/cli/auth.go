package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/common"
	"github.com/dmitrijs2005/factorg/internal/guard"
	"github.com/dmitrijs2005/factorg/internal/logging"
	"github.com/dmitrijs2005/factorg/internal/services"
)

// getSimpleText and getPassword are indirections swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login asks for email and password, signs in and remembers the session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Correo", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	session, err := a.auth.SignIn(ctx, email, string(password))
	if err != nil {
		return errors.New(services.Message(err, "No se pudo iniciar sesión."))
	}

	a.startSession(ctx, session.AccessToken, session.RefreshToken, email)
	if err := a.loadProfile(ctx); err != nil {
		a.dropSession(ctx)
		return err
	}
	fmt.Fprintf(a.out, "Sesión iniciada como %s (%s).\n", a.user.Email, guard.Role(a.user))
	return nil
}

// Logout ends the session with the provider and forgets it locally.
func (a *App) Logout(ctx context.Context) error {
	if a.creds != nil {
		at, _ := a.creds.Tokens()
		a.auth.SignOut(ctx, at)
	}
	a.dropSession(ctx)
	fmt.Fprintln(a.out, "Sesión cerrada.")
	return nil
}

// Whoami prints the signed-in account and what it may do.
func (a *App) Whoami(ctx context.Context) error {
	if err := a.loadProfile(ctx); err != nil {
		return err
	}
	u := a.user

	business := "-"
	if u.BusinessName != nil && *u.BusinessName != "" {
		business = *u.BusinessName
	}
	var features []string
	for _, item := range guard.NavItems(u) {
		features = append(features, item.Label)
	}

	fmt.Fprintf(a.out, "Correo:   %s\n", u.Email)
	fmt.Fprintf(a.out, "Rol:      %s\n", guard.Role(u))
	fmt.Fprintf(a.out, "Negocio:  %s\n", business)
	fmt.Fprintf(a.out, "Acceso:   %s\n", strings.Join(features, ", "))
	return nil
}

// resume restores the stored session by trading its refresh token for a new
// access token.
func (a *App) resume(ctx context.Context) error {
	email, rt, err := a.sessions.Load(ctx)
	if err != nil {
		a.dropSession(ctx)
		return err
	}
	if rt == "" {
		return nil
	}

	a.startSession(ctx, "", rt, email)
	if err := a.creds.Refresh(ctx, ""); err != nil {
		if rejectedToken(err) {
			a.dropSession(ctx)
		} else {
			// keep the stored token for the next start
			a.creds, a.user = nil, nil
		}
		return fmt.Errorf("resume session: %w", err)
	}
	if err := a.loadProfile(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Sesión recuperada: %s (%s).\n", a.user.Email, guard.Role(a.user))
	return nil
}

// startSession installs credentials that persist every renewed refresh token.
func (a *App) startSession(ctx context.Context, accessToken, refreshToken, email string) {
	creds := client.NewSessionCredentials(accessToken, refreshToken, email, a.auth.Refresh)
	creds.OnRefresh = func(_, rt string) {
		if err := a.sessions.Save(context.WithoutCancel(ctx), email, rt); err != nil {
			a.logger.Warn(ctx, "session not saved", "error", err)
		}
	}
	a.creds = creds

	if err := a.sessions.Save(ctx, email, refreshToken); err != nil {
		a.logger.Warn(ctx, "session not saved", "email", logging.MaskEmail(email), "error", err)
	}
}

// rejectedToken tells a refresh token the provider refused apart from
// failures to reach it.
func rejectedToken(err error) bool {
	return errors.Is(err, common.ErrInvalidToken) ||
		errors.Is(err, common.ErrRefreshTokenMissing) ||
		errors.Is(err, client.ErrUnauthorized)
}

func (a *App) loadProfile(ctx context.Context) error {
	me, err := a.client.Me(a.withCreds(ctx))
	if err != nil {
		return a.failure(ctx, err, "No se pudo obtener el perfil.")
	}
	a.user = me
	return nil
}

func (a *App) dropSession(ctx context.Context) {
	a.creds = nil
	a.user = nil
	if err := a.sessions.Clear(ctx); err != nil {
		a.logger.Warn(ctx, "session not cleared", "error", err)
	}
}

// allowed checks f against the loaded profile.
func (a *App) allowed(f guard.Feature) error {
	if guard.Allowed(a.user, f) {
		return nil
	}
	return fmt.Errorf("tu cuenta no tiene permiso para este comando (%s)", f)
}
