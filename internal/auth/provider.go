// Package auth talks to the GoTrue-compatible session provider and inspects
// the access tokens it issues.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/factorg/internal/common"
	"github.com/dmitrijs2005/factorg/internal/logging"
)

// Session is the token pair the provider hands out after sign-in or refresh.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"-"`
	UserID       string    `json:"-"`
	Email        string    `json:"-"`
}

// SignUpResult tells whether the account can sign in right away or must
// confirm the email first.
type SignUpResult struct {
	UserID              string
	ConfirmationPending bool
}

// Provider is the subset of the session provider the panel uses.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password, fullName string) (*SignUpResult, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
	UpdatePassword(ctx context.Context, accessToken, password string) error
}

// ProviderError carries the provider's status and message.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("session provider: %d %s", e.Status, e.Message)
}

// GoTrueProvider implements Provider over the GoTrue REST API.
type GoTrueProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logging.Logger
}

func NewGoTrueProvider(baseURL, apiKey string, httpClient *http.Client, logger logging.Logger) *GoTrueProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &GoTrueProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger.With("component", "auth"),
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (r *tokenResponse) session() *Session {
	s := &Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		UserID:       r.User.ID,
		Email:        r.User.Email,
	}
	switch {
	case r.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(r.ExpiresAt, 0)
	case r.ExpiresIn > 0:
		s.ExpiresAt = time.Now().Add(time.Duration(r.ExpiresIn) * time.Second)
	}
	return s
}

func (p *GoTrueProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var resp tokenResponse
	err := p.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "",
		map[string]string{"email": email, "password": password}, &resp)
	if err != nil {
		var pe *ProviderError
		if errors.As(err, &pe) && (pe.Status == http.StatusBadRequest || pe.Status == http.StatusUnauthorized) {
			return nil, common.ErrInvalidCredential
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}

	p.logger.Info(ctx, "signed in", "email", logging.MaskEmail(email))
	return resp.session(), nil
}

func (p *GoTrueProvider) SignUp(ctx context.Context, email, password, fullName string) (*SignUpResult, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"full_name": fullName},
	}

	// With email confirmation enabled the provider answers with the bare user,
	// otherwise with a full token response.
	var resp struct {
		ID          string `json:"id"`
		AccessToken string `json:"access_token"`
		User        *struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := p.do(ctx, http.MethodPost, "/auth/v1/signup", "", body, &resp); err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	res := &SignUpResult{UserID: resp.ID, ConfirmationPending: resp.AccessToken == ""}
	if resp.User != nil && resp.User.ID != "" {
		res.UserID = resp.User.ID
	}

	p.logger.Info(ctx, "signed up", "email", logging.MaskEmail(email), "pending_confirmation", res.ConfirmationPending)
	return res, nil
}

func (p *GoTrueProvider) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, common.ErrRefreshTokenMissing
	}

	var resp tokenResponse
	err := p.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", "",
		map[string]string{"refresh_token": refreshToken}, &resp)
	if err != nil {
		var pe *ProviderError
		if errors.As(err, &pe) && pe.Status < http.StatusInternalServerError {
			return nil, fmt.Errorf("refresh: %w", common.ErrInvalidToken)
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	p.logger.Debug(ctx, "session refreshed", "user_id", resp.User.ID)
	return resp.session(), nil
}

func (p *GoTrueProvider) SignOut(ctx context.Context, accessToken string) error {
	if err := p.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

func (p *GoTrueProvider) UpdatePassword(ctx context.Context, accessToken, password string) error {
	if err := p.do(ctx, http.MethodPut, "/auth/v1/user", accessToken, map[string]string{"password": password}, nil); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (p *GoTrueProvider) do(ctx context.Context, method, path, accessToken string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set(common.APIKeyHeader, p.apiKey)
	}
	if accessToken != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+accessToken)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeProviderError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeProviderError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var e struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
	}
	_ = json.Unmarshal(raw, &e)

	msg := e.ErrorDescription
	for _, alt := range []string{e.Msg, e.Message, e.Error} {
		if msg == "" {
			msg = alt
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &ProviderError{Status: resp.StatusCode, Message: msg}
}

// compile-time check
var _ Provider = (*GoTrueProvider)(nil)
