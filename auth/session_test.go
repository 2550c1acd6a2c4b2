package auth

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SyconApi/models"
	"SyconApi/request"
)

// loginHandler answers /auth/login like the cloud does: empty body, tokens
// in the response headers.
func loginHandler(token, renewToken string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["username"] == "" || creds["password"] == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if token != "" {
			w.Header().Set("Authorization", "Bearer "+token)
		}
		if renewToken != "" {
			w.Header().Set("Renew", renewToken)
		}
	}
}

func newSession(t *testing.T, handler http.Handler) *Session {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewSession(request.NewExecutor(server.URL), "alice", "s3cret")
}

func TestAuthenticateStoresTokens(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/auth/login", loginHandler("jwt-abc", "renew-xyz"))
	session := newSession(t, mux)

	require.NoError(t, session.Authenticate())
	assert.True(t, session.IsAuthenticated())

	token, ok := session.BearerToken()
	require.True(t, ok)
	assert.Equal(t, "jwt-abc", token)
}

func TestAuthenticateNeverLogsCredentials(t *testing.T) {
	var logged bytes.Buffer
	log.SetOutput(&logged)
	defer log.SetOutput(os.Stderr)

	mux := http.NewServeMux()
	mux.Handle("/auth/login", loginHandler("jwt-abc", "renew-xyz"))
	session := newSession(t, mux)

	require.NoError(t, session.Authenticate())
	assert.NotContains(t, logged.String(), "alice")
	assert.NotContains(t, logged.String(), "s3cret")
}

func TestAuthenticateFailsOnMissingHeaders(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		renewToken string
	}{
		{"no authorization header", "", "renew-xyz"},
		{"no renew header", "jwt-abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.Handle("/auth/login", loginHandler(tt.token, tt.renewToken))
			session := newSession(t, mux)

			err := session.Authenticate()
			require.Error(t, err)
			assert.True(t, models.IsCode(err, models.ErrorCodeBadResponse))
			assert.False(t, session.IsAuthenticated())
		})
	}
}

func TestAuthenticateSurfacesRejection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	session := newSession(t, mux)

	err := session.Authenticate()
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.ErrorCodeBadResponse))
	assert.False(t, session.IsAuthenticated())
}

func TestCheckReportsTokenValidity(t *testing.T) {
	checkStatus := http.StatusOK
	mux := http.NewServeMux()
	mux.Handle("/auth/login", loginHandler("jwt-abc", "renew-xyz"))
	mux.HandleFunc("/auth/check", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))
		w.WriteHeader(checkStatus)
	})
	session := newSession(t, mux)
	require.NoError(t, session.Authenticate())

	valid, err := session.Check()
	require.NoError(t, err)
	assert.True(t, valid)

	checkStatus = http.StatusForbidden
	valid, err = session.Check()
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestCheckSurfacesAmbiguousStatus(t *testing.T) {
	// A 5xx on /auth/check is a backend problem, not an invalid token, and
	// must not be coerced to false.
	mux := http.NewServeMux()
	mux.Handle("/auth/login", loginHandler("jwt-abc", "renew-xyz"))
	mux.HandleFunc("/auth/check", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	session := newSession(t, mux)
	require.NoError(t, session.Authenticate())

	_, err := session.Check()
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.ErrorCodeServerError))
}

func TestCheckWithoutTokenFailsFast(t *testing.T) {
	session := newSession(t, http.NewServeMux())

	_, err := session.Check()
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.ErrorCodeNotAuthenticated))
}

func TestRenewWithoutAuthenticateFailsFast(t *testing.T) {
	session := newSession(t, http.NewServeMux())

	err := session.Renew()
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.ErrorCodeNotAuthenticated))
}

func TestRenewReplacesBearerToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/auth/login", loginHandler("jwt-old", "renew-xyz"))
	mux.HandleFunc("/auth/renew", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "renew-xyz", r.Header.Get("Renew"))
		w.Header().Set("Authorization", "Bearer jwt-new")
	})
	session := newSession(t, mux)
	require.NoError(t, session.Authenticate())

	require.NoError(t, session.Renew())
	token, _ := session.BearerToken()
	assert.Equal(t, "jwt-new", token)

	// The renewal token is not rotated: renewing again still works.
	require.NoError(t, session.Renew())
}

func TestRenewFailsOnMissingHeader(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/auth/login", loginHandler("jwt-old", "renew-xyz"))
	mux.HandleFunc("/auth/renew", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	session := newSession(t, mux)
	require.NoError(t, session.Authenticate())

	err := session.Renew()
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.ErrorCodeBadResponse))

	// The old bearer stays in place after a failed renewal.
	token, _ := session.BearerToken()
	assert.Equal(t, "jwt-old", token)
}

func TestTokenExpiresAt(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": expiry.Unix(),
		"sub": "alice",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle("/auth/login", loginHandler(signed, "renew-xyz"))
	session := newSession(t, mux)
	require.NoError(t, session.Authenticate())

	got, err := session.TokenExpiresAt()
	require.NoError(t, err)
	assert.True(t, got.Equal(expiry), "want %s, got %s", expiry, got)
}

func TestTokenExpiresAtWithoutToken(t *testing.T) {
	session := newSession(t, http.NewServeMux())

	_, err := session.TokenExpiresAt()
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.ErrorCodeNotAuthenticated))
}
