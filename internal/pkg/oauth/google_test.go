package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestNewGoogleService_DisabledWithoutClientID(t *testing.T) {
	assert.Nil(t, NewGoogleService("", "secret", "http://localhost/callback", nil, nil))
}

func TestIsAllowed(t *testing.T) {
	svc := NewGoogleService("client", "secret", "http://localhost/callback", nil, []string{" HR@Example.com ", ""})

	assert.True(t, svc.IsAllowed("hr@example.com"))
	assert.True(t, svc.IsAllowed("HR@EXAMPLE.COM"))
	assert.False(t, svc.IsAllowed("someone@example.com"))
	assert.False(t, svc.IsAllowed(""))
}

func TestRedirectURLCarriesState(t *testing.T) {
	svc := NewGoogleService("client", "secret", "http://localhost/callback", nil, nil)

	state, err := svc.GenerateState()
	require.NoError(t, err)
	assert.NotEmpty(t, state)

	other, err := svc.GenerateState()
	require.NoError(t, err)
	assert.NotEqual(t, state, other)

	u, err := url.Parse(svc.RedirectURL(state))
	require.NoError(t, err)
	assert.Equal(t, state, u.Query().Get("state"))
	assert.Equal(t, "client", u.Query().Get("client_id"))
}

func TestVerifyUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"42","email":"hr@example.com","verified_email":true}`))
	}))
	defer server.Close()

	svc := NewGoogleService("client", "secret", "http://localhost/callback", nil, nil).(*GoogleServiceImpl)
	svc.userInfoURL = server.URL

	info, err := svc.VerifyUser(context.Background(), &oauth2.Token{AccessToken: "access", TokenType: "Bearer"})
	require.NoError(t, err)
	assert.Equal(t, "hr@example.com", info.Email)
	assert.True(t, info.VerifiedEmail)
}

func TestVerifyUser_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := NewGoogleService("client", "secret", "http://localhost/callback", nil, nil).(*GoogleServiceImpl)
	svc.userInfoURL = server.URL

	_, err := svc.VerifyUser(context.Background(), &oauth2.Token{AccessToken: "access"})
	assert.Error(t, err)
}
