package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/factorg/internal/common"
	"github.com/dmitrijs2005/factorg/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, h http.HandlerFunc) *GoTrueProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewGoTrueProvider(srv.URL+"/", "anon-key", srv.Client(), logging.Discard())
}

func TestSignIn_Success(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@factorg.cl", body["email"])
		assert.Equal(t, "Secreta#1", body["password"])

		_, _ = w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_at":1900000000,"user":{"id":"u-1","email":"ana@factorg.cl"}}`))
	})

	s, err := p.SignIn(context.Background(), "ana@factorg.cl", "Secreta#1")
	require.NoError(t, err)
	assert.Equal(t, "at", s.AccessToken)
	assert.Equal(t, "rt", s.RefreshToken)
	assert.Equal(t, "u-1", s.UserID)
	assert.Equal(t, "ana@factorg.cl", s.Email)
	assert.Equal(t, int64(1900000000), s.ExpiresAt.Unix())
}

func TestSignIn_BadCredentials(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	})

	_, err := p.SignIn(context.Background(), "ana@factorg.cl", "nope")
	assert.ErrorIs(t, err, common.ErrInvalidCredential)
}

func TestSignIn_ProviderDown(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := p.SignIn(context.Background(), "ana@factorg.cl", "x")
	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusBadGateway, pe.Status)
	assert.Equal(t, "Bad Gateway", pe.Message)
}

func TestSignUp(t *testing.T) {
	t.Run("confirmation pending", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/signup", r.URL.Path)
			var body struct {
				Data map[string]string `json:"data"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Débora Leal", body.Data["full_name"])
			_, _ = w.Write([]byte(`{"id":"u-9","email":"d@x.cl"}`))
		})

		res, err := p.SignUp(context.Background(), "d@x.cl", "Secreta#1", "Débora Leal")
		require.NoError(t, err)
		assert.Equal(t, "u-9", res.UserID)
		assert.True(t, res.ConfirmationPending)
	})

	t.Run("immediate session", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"access_token":"at","user":{"id":"u-10"}}`))
		})

		res, err := p.SignUp(context.Background(), "d@x.cl", "Secreta#1", "D")
		require.NoError(t, err)
		assert.Equal(t, "u-10", res.UserID)
		assert.False(t, res.ConfirmationPending)
	})

	t.Run("already registered", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"code":422,"msg":"User already registered"}`))
		})

		_, err := p.SignUp(context.Background(), "d@x.cl", "Secreta#1", "D")
		var pe *ProviderError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "User already registered", pe.Message)
	})
}

func TestRefresh(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["refresh_token"] != "rt-ok" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"at2","refresh_token":"rt2","expires_in":3600,"user":{"id":"u-1","email":"a@x.cl"}}`))
	})

	s, err := p.Refresh(context.Background(), "rt-ok")
	require.NoError(t, err)
	assert.Equal(t, "at2", s.AccessToken)
	assert.False(t, s.ExpiresAt.IsZero())

	_, err = p.Refresh(context.Background(), "rt-bad")
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = p.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrRefreshTokenMissing)
}

func TestSignOutAndUpdatePassword_SendBearer(t *testing.T) {
	var calls []string
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at", r.Header.Get("Authorization"))
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, p.SignOut(context.Background(), "at"))
	require.NoError(t, p.UpdatePassword(context.Background(), "at", "nueva1"))

	assert.Equal(t, []string{"POST /auth/v1/logout", "PUT /auth/v1/user"}, calls)
}
