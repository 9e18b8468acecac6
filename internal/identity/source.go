// Package identity resolves externally-asserted logins to ERP user records,
// managing the per-user generated ERP credential along the way.
package identity

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingIdentity is reported when no login was asserted for the request.
var ErrMissingIdentity = errors.New("identity: no authenticated user asserted")

// UnknownUserError is reported when the asserted login matches no ERP user.
type UnknownUserError struct {
	// Login is the asserted external login.
	Login string
}

func (e *UnknownUserError) Error() string {
	return fmt.Sprintf("identity: no ERP user with login %q", e.Login)
}

// Source yields the externally-asserted login for an incoming request.
// The variant is selected once at startup, never per request.
type Source interface {
	// ExternalID returns the asserted login, or ErrMissingIdentity.
	ExternalID(r *http.Request) (string, error)
}

// TrustedHeaderSource reads the login set by the trusted upstream proxy.
type TrustedHeaderSource struct {
	// Header is the header name carrying the login (e.g. "Remote-User").
	Header string
}

// ExternalID returns the header value, or ErrMissingIdentity when absent.
func (s *TrustedHeaderSource) ExternalID(r *http.Request) (string, error) {
	login := r.Header.Get(s.Header)
	if login == "" {
		return "", ErrMissingIdentity
	}
	return login, nil
}

// FixedSource substitutes a constant login for every request. Debug-mode
// only; must not be selected in production configuration.
type FixedSource struct {
	// Login is the substituted login.
	Login string
}

// ExternalID returns the fixed login regardless of the request.
func (s *FixedSource) ExternalID(*http.Request) (string, error) {
	return s.Login, nil
}
