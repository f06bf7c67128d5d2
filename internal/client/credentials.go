package client

import (
	"context"
	"sync"
)

// Credentials supplies the bearer token and email for outbound calls and
// can renew them once the backend rejects the token. Refresh is told which
// access token was rejected.
type Credentials interface {
	Current() (accessToken, email string)
	Refresh(ctx context.Context, rejected string) error
}

type credentialsKey struct{}

// WithCredentials returns a context whose backend calls use c.
func WithCredentials(ctx context.Context, c Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, c)
}

func credentialsFrom(ctx context.Context) Credentials {
	c, _ := ctx.Value(credentialsKey{}).(Credentials)
	return c
}

// RefreshFunc obtains a fresh access token from a refresh token.
type RefreshFunc func(ctx context.Context, refreshToken string) (accessToken, newRefreshToken string, err error)

// SessionCredentials keeps a token pair in memory and renews it through
// refresh. OnRefresh, when set, is told about every renewed pair.
type SessionCredentials struct {
	mu           sync.Mutex
	accessToken  string
	refreshToken string
	email        string
	refresh      RefreshFunc
	OnRefresh    func(accessToken, refreshToken string)
}

func NewSessionCredentials(accessToken, refreshToken, email string, refresh RefreshFunc) *SessionCredentials {
	return &SessionCredentials{
		accessToken:  accessToken,
		refreshToken: refreshToken,
		email:        email,
		refresh:      refresh,
	}
}

func (s *SessionCredentials) Current() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.email
}

// Refresh renews the pair. When the current access token is no longer the
// rejected one, another caller already renewed it and nothing is done.
func (s *SessionCredentials) Refresh(ctx context.Context, rejected string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != rejected {
		return nil
	}
	if s.refresh == nil || s.refreshToken == "" {
		return ErrUnauthorized
	}

	at, rt, err := s.refresh(ctx, s.refreshToken)
	if err != nil {
		return err
	}

	s.accessToken, s.refreshToken = at, rt
	if s.OnRefresh != nil {
		s.OnRefresh(at, rt)
	}
	return nil
}

// Tokens returns the current pair.
func (s *SessionCredentials) Tokens() (accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

// Email returns the email of the credentials carried by ctx, or "".
func Email(ctx context.Context) string {
	c := credentialsFrom(ctx)
	if c == nil {
		return ""
	}
	_, email := c.Current()
	return email
}
