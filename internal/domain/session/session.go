// Package session holds the currently authenticated user and the credential
// verification capability the storefront authenticates against.
package session

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var (
	// ErrUnauthenticated is returned when a mutation requires a logged-in user.
	ErrUnauthenticated = errors.New("not logged in")
	// ErrInvalidCredentials is returned when the verifier rejects the
	// supplied credentials.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is the authenticated customer record.
type User struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Address string
}

// CredentialVerifier checks login credentials and produces the user record.
// The storefront ships with a stub implementation; a surrounding system can
// plug in a real authentication backend without touching the core.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*User, error)
	Register(ctx context.Context, name, email, password string) (*User, error)
}

// StubVerifier accepts any non-empty email/password pair and fabricates a
// user record. It preserves the mock authentication flow of the storefront.
type StubVerifier struct{}

var _ CredentialVerifier = StubVerifier{}

// Verify fabricates a user for any non-empty credential pair.
func (StubVerifier) Verify(_ context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	return &User{
		ID:    uuid.New().String(),
		Name:  "John Doe",
		Email: email,
	}, nil
}

// Register fabricates a user with the given name for any non-empty
// credential pair.
func (StubVerifier) Register(_ context.Context, name, email, password string) (*User, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	return &User{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
	}, nil
}

// ProfileUpdate carries the fields of a partial profile edit. Nil fields are
// left untouched.
type ProfileUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// Session tracks the current user, if any.
// Not safe for concurrent use; state is single-owner.
type Session struct {
	user *User
}

// New returns a logged-out session.
func New() *Session {
	return &Session{}
}

// Login replaces the current user record.
func (s *Session) Login(user User) {
	s.user = &user
}

// Logout clears the current user record. Logging out twice is a no-op.
func (s *Session) Logout() {
	s.user = nil
}

// Authenticated reports whether a user is logged in.
func (s *Session) Authenticated() bool {
	return s.user != nil
}

// Current returns a copy of the logged-in user.
func (s *Session) Current() (*User, error) {
	if s.user == nil {
		return nil, ErrUnauthenticated
	}
	user := *s.user
	return &user, nil
}

// UpdateProfile merges the given fields into the current user. It returns
// ErrUnauthenticated when no user is logged in.
func (s *Session) UpdateProfile(update ProfileUpdate) error {
	if s.user == nil {
		return ErrUnauthenticated
	}
	if update.Name != nil {
		s.user.Name = *update.Name
	}
	if update.Email != nil {
		s.user.Email = *update.Email
	}
	if update.Phone != nil {
		s.user.Phone = *update.Phone
	}
	if update.Address != nil {
		s.user.Address = *update.Address
	}
	return nil
}
