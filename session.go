package sdk

import (
	"context"
	"errors"
	"sync"

	"github.com/myanmarcares/myanmarcares/sdk/go/auth"
)

// Session ties the auth endpoints to a TokenStore: logging in stores the JWT,
// logging out clears it. Every client built on the same store sees the change
// for requests built afterwards.
type Session struct {
	client *Client
	tokens *auth.TokenStore

	mu   sync.RWMutex
	user *User
}

// NewSession returns a session for client. The client must have been built
// with tokens as its Config.Tokens.
func NewSession(client *Client, tokens *auth.TokenStore) (*Session, error) {
	if client == nil || tokens == nil {
		return nil, ConfigError{Reason: "session needs a client and a token store"}
	}
	if src, ok := client.tokens.(*auth.TokenStore); !ok || src != tokens {
		return nil, ConfigError{Reason: "client was not built with this token store"}
	}
	return &Session{client: client, tokens: tokens}, nil
}

// Login authenticates and stores the returned JWT.
func (s *Session) Login(ctx context.Context, identifier, password string) (User, error) {
	resp, err := s.client.Auth.Login(ctx, identifier, password)
	if err != nil {
		return User{}, err
	}
	return s.adopt(resp)
}

// Register creates an account and signs it in.
func (s *Session) Register(ctx context.Context, req RegisterRequest) (User, error) {
	resp, err := s.client.Auth.Register(ctx, req)
	if err != nil {
		return User{}, err
	}
	return s.adopt(resp)
}

// Restore resumes a session from a stored token. If the profile cannot be
// fetched the token is cleared and the error returned.
func (s *Session) Restore(ctx context.Context, token string) (User, error) {
	s.tokens.Set(token)
	user, err := s.client.Users.Me(ctx)
	if err != nil {
		s.Logout()
		return User{}, err
	}
	s.setUser(&user)
	return user, nil
}

// Logout clears the token and the cached user. Requests already built keep
// the token they captured.
func (s *Session) Logout() {
	s.tokens.Clear()
	s.setUser(nil)
}

// User returns the signed-in user, if any.
func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	return s.tokens.HasToken()
}

// Claims decodes the held JWT without verifying it.
func (s *Session) Claims() (auth.Claims, error) {
	return auth.ParseClaims(s.tokens.Token())
}

func (s *Session) adopt(resp AuthResponse) (User, error) {
	if resp.JWT == "" {
		return User{}, ParseError{Status: 200, Err: errors.New("auth response missing jwt")}
	}
	s.tokens.Set(resp.JWT)
	user := resp.User
	s.setUser(&user)
	return user, nil
}

func (s *Session) setUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}
