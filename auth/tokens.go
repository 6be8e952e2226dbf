package auth

import "sync"

// TokenSource supplies the bearer token for a request. The SDK calls Token
// once per request, while building it, and sends whatever it got.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that never changes, such as a server-side API token.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() string { return stripBearer(string(t)) }

// TokenStore is a mutable TokenSource shared by every client built from the
// same configuration. It is safe for concurrent use.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewTokenStore returns a store holding initial, which may be empty.
func NewTokenStore(initial string) *TokenStore {
	return &TokenStore{token: stripBearer(initial)}
}

// Token implements TokenSource.
func (s *TokenStore) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set replaces the token. A leading "Bearer " is dropped.
func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = stripBearer(token)
}

// Clear removes the token. Requests already built keep the token they captured.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// HasToken reports whether a token is set.
func (s *TokenStore) HasToken() bool {
	return s.Token() != ""
}
