package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"SyconApi/models"
	"SyconApi/request"
)

// API routes of the auth endpoints.
const (
	routeLogin = "/auth/login"
	routeRenew = "/auth/renew"
	routeCheck = "/auth/check"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session holds the bearer and renewal tokens for one authenticated user.
// Lifecycle: construct, Authenticate, use, optionally Renew, discard. There
// is no background renewal; callers invoke Renew before the bearer expires
// (TokenExpiresAt tells them when that is).
type Session struct {
	exec       *request.Executor
	username   string
	password   string
	token      string
	renewToken string
}

// NewSession creates an unauthenticated session for the given credentials.
// The credentials are kept for Authenticate and are never logged.
func NewSession(exec *request.Executor, username, password string) *Session {
	return &Session{
		exec:     exec,
		username: username,
		password: password,
	}
}

// Username returns the account name the session was built for.
func (s *Session) Username() string {
	return s.username
}

// IsAuthenticated reports whether a bearer token is currently stored.
func (s *Session) IsAuthenticated() bool {
	return s.token != ""
}

// BearerToken returns the stored bearer token, if any.
func (s *Session) BearerToken() (string, bool) {
	return s.token, s.token != ""
}

// Authenticate logs in with username/password. On success the server returns
// no body; the bearer token arrives in the Authorization response header and
// the renewal token in the Renew header. A success status with either header
// missing is a protocol violation, not a retryable condition.
func (s *Session) Authenticate() error {
	resp, err := s.exec.Post(routeLogin, credentials{Username: s.username, Password: s.password}, nil)
	if err != nil {
		s.token = ""
		s.renewToken = ""
		return err
	}

	token := strings.TrimPrefix(resp.Header().Get("Authorization"), "Bearer ")
	renewToken := resp.Header().Get("Renew")
	if token == "" || renewToken == "" {
		s.token = ""
		s.renewToken = ""
		return models.APIError{
			Code:       models.ErrorCodeBadResponse,
			Message:    "Authorization or Renew token not in received response",
			Endpoint:   routeLogin,
			StatusCode: resp.StatusCode(),
		}
	}

	s.token = token
	s.renewToken = renewToken
	log.Println("Authentication succeeded, bearer and renewal tokens stored")
	return nil
}

// Check probes the validity of the stored bearer token without changing any
// session state. 200 means valid, 403 means invalid. Any other status is
// surfaced as an error: a backend outage must not be mistaken for an
// expired token.
func (s *Session) Check() (bool, error) {
	if s.token == "" {
		return false, models.NewAPIError(models.ErrorCodeNotAuthenticated,
			"no bearer token, call Authenticate first", 0)
	}

	_, err := s.exec.Get(routeCheck, nil, request.BearerHeader(s.token))
	if err != nil {
		var apiErr models.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Renew exchanges the stored renewal token for a fresh bearer token. The
// renewal token itself is not rotated. Fails fast when the session was never
// authenticated.
func (s *Session) Renew() error {
	if s.renewToken == "" {
		return models.NewAPIError(models.ErrorCodeNotAuthenticated,
			"no renewal token, call Authenticate first", 0)
	}

	resp, err := s.exec.Get(routeRenew, nil, map[string]string{"Renew": s.renewToken})
	if err != nil {
		return err
	}

	token := strings.TrimPrefix(resp.Header().Get("Authorization"), "Bearer ")
	if token == "" {
		return models.APIError{
			Code:       models.ErrorCodeBadResponse,
			Message:    "Authorization token not in received response",
			Endpoint:   routeRenew,
			StatusCode: resp.StatusCode(),
		}
	}

	s.token = token
	log.Println("Bearer token has been renewed")
	return nil
}

// TokenExpiresAt decodes the bearer JWT without verifying its signature and
// returns the expiry claim, so callers can schedule an explicit Renew.
func (s *Session) TokenExpiresAt() (time.Time, error) {
	if s.token == "" {
		return time.Time{}, models.NewAPIError(models.ErrorCodeNotAuthenticated,
			"no bearer token, call Authenticate first", 0)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.token, claims); err != nil {
		return time.Time{}, models.APIError{
			Code:    models.ErrorCodeBadResponse,
			Message: "bearer token is not a decodable JWT: " + err.Error(),
		}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, models.APIError{
			Code:    models.ErrorCodeBadResponse,
			Message: "bearer token carries no expiry claim",
		}
	}
	return exp.Time, nil
}
