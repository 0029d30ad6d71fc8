// Package session implements server-side sessions: an opaque, unguessable
// token travels in a cookie and resolves to a key/value record in a Redis
// store with a sliding inactivity expiry.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"reflect"
)

// UserIDKey is the reserved key under which the authenticated user's id is
// stored.
const UserIDKey = "user_id"

// tokenBytes of entropy per token, before base64.
const tokenBytes = 32

// NewToken mints a cryptographically random session token.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Context is the per-request view of a session that handlers read and write.
// Mutations stay in memory until the middleware persists them; whether a
// persist is needed is decided by diffing the current values against the
// snapshot taken at creation, never by implicit framework state.
type Context struct {
	token     string
	values    map[string]any
	initial   map[string]any
	destroyed bool
}

// New builds a request session context. token is empty for anonymous
// requests; values is the stored state (nil for a fresh session).
func New(token string, values map[string]any) *Context {
	if values == nil {
		values = make(map[string]any)
	}
	return &Context{
		token:   token,
		values:  values,
		initial: copyValues(values),
	}
}

// Token returns the resolved session token, or "" when the session has not
// been persisted yet.
func (s *Context) Token() string { return s.token }

func (s *Context) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// GetString returns the value under key if it is a string, else "".
func (s *Context) GetString(key string) string {
	if v, ok := s.values[key].(string); ok {
		return v
	}
	return ""
}

func (s *Context) Set(key string, v any) {
	s.values[key] = v
}

func (s *Context) Delete(key string) {
	delete(s.values, key)
}

// Clear removes every key but keeps the session alive.
func (s *Context) Clear() {
	s.values = make(map[string]any)
}

// Destroy clears all state and marks the stored record for deletion. It is
// idempotent; destroying an anonymous session is not an error.
func (s *Context) Destroy() {
	s.values = make(map[string]any)
	s.destroyed = true
}

func (s *Context) Destroyed() bool { return s.destroyed }

// Dirty reports whether the values changed during the request. Destroyed
// sessions are handled separately and are never dirty.
func (s *Context) Dirty() bool {
	if s.destroyed {
		return false
	}
	return !reflect.DeepEqual(s.values, s.initial)
}

// Values returns a copy of the current state for persistence. The copy keeps
// a concurrent later reader from observing mid-request mutation.
func (s *Context) Values() map[string]any {
	return copyValues(s.values)
}

// SetUserID marks the session authenticated as the given user.
func (s *Context) SetUserID(id string) {
	s.Set(UserIDKey, id)
}

// UserID returns the authenticated user's id, or "" for anonymous sessions.
func (s *Context) UserID() string {
	return s.GetString(UserIDKey)
}

func copyValues(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
