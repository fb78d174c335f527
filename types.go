package session

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// CredentialTransport selects how the bearer credential travels to the
// backend: as an Authorization header or as a same-site cookie.
type CredentialTransport string

const (
	TransportHeader CredentialTransport = "header"
	TransportCookie CredentialTransport = "cookie"
)

// Config holds client options
type Config interface {
	GetBaseURL() string
	GetCredentialTransport() CredentialTransport
	GetCookieName() string
	GetAuthScheme() string
	GetRequestTimeout() time.Duration
}

// CredentialStore persists the bearer credential across application
// restarts. A missing credential is a normal absent result, never an
// error.
type CredentialStore interface {
	Save(token string, ttl time.Duration) error
	Load() (string, bool)
	Clear() error
}

// Client issues session calls against the backend
type Client interface {
	Verify(ctx context.Context, token string) (*AccountPayload, error)
	Login(ctx context.Context, payload SignInRequest) (*AccountPayload, error)
	Register(ctx context.Context, payload SignUpRequest) (*AccountPayload, error)
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context, payload DeleteAccountRequest) error
}

// SimpleConfig satisfies Config for direct use
type SimpleConfig struct {
	BaseURL             string
	CredentialTransport CredentialTransport
	CookieName          string
	AuthScheme          string
	RequestTimeout      time.Duration
}

func (c SimpleConfig) GetBaseURL() string {
	return c.BaseURL
}

func (c SimpleConfig) GetCredentialTransport() CredentialTransport {
	if c.CredentialTransport == "" {
		return TransportHeader
	}
	return c.CredentialTransport
}

func (c SimpleConfig) GetCookieName() string {
	if c.CookieName == "" {
		return "token"
	}
	return c.CookieName
}

func (c SimpleConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return "Bearer"
	}
	return c.AuthScheme
}

func (c SimpleConfig) GetRequestTimeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return 15 * time.Second
	}
	return c.RequestTimeout
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SESSION "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] SESSION "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SESSION "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SESSION "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
