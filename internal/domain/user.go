package domain

import (
	"context"
	"strings"
)

// User is the identity provider's view of a signed-in account. The auth view
// only observes whether one is present.
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// Credentials is the transient email/password pair read from the auth form.
type Credentials struct {
	Email    string `form:"email" json:"email" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// Trimmed returns a copy with surrounding whitespace removed from both fields.
func (c Credentials) Trimmed() Credentials {
	return Credentials{
		Email:    strings.TrimSpace(c.Email),
		Password: strings.TrimSpace(c.Password),
	}
}

// AuthStateFunc receives the current user, or nil when nobody is signed in.
type AuthStateFunc func(user *User)

// IdentityProvider defines the contract for the external authentication service.
// Every call is scoped to a browser session so that one server process can host
// many independent pages.
type IdentityProvider interface {
	SignIn(ctx context.Context, sessionID string, creds Credentials) (*User, error)
	CreateAccount(ctx context.Context, sessionID string, creds Credentials) (*User, error)
	SignOut(ctx context.Context, sessionID string) error
	CurrentUser(sessionID string) *User

	// OnAuthStateChanged registers a persistent observer for a session. The
	// observer fires once with the current state and again on every transition.
	// The returned function removes the observer.
	OnAuthStateChanged(sessionID string, fn AuthStateFunc) (unsubscribe func())
}
