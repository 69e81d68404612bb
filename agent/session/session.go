// Package session owns the per-conversation authentication state machine
// and the store that isolates one conversation from another.
package session

import (
	"sync"

	contractx "github.com/bankbot/bankbot/agent/contract"
)

type AuthState string

const (
	StateUnauthenticated   AuthState = "unauthenticated"
	StateCredentialPending AuthState = "credential_pending"
	StateAuthenticated     AuthState = "authenticated"
)

// Session is one conversation: its authentication state and its own history.
// The mutex serializes all message handling for this session; unrelated
// sessions never contend on it.
type Session struct {
	mu sync.Mutex

	id        string
	state     AuthState
	candidate string // identity awaiting its credential
	identity  string // authenticated identity
	history   []contractx.Turn
}

func newSession(id string) *Session {
	return &Session{id: id, state: StateUnauthenticated}
}

// reset returns the session to its initial state. Used by logout and the
// exit command; the next message starts over unauthenticated.
func (s *Session) reset() {
	s.state = StateUnauthenticated
	s.candidate = ""
	s.identity = ""
	s.history = nil
}

// historySnapshot copies the history so the resolver can never mutate the
// session's own slice.
func (s *Session) historySnapshot() []contractx.Turn {
	if len(s.history) == 0 {
		return nil
	}
	return append([]contractx.Turn(nil), s.history...)
}

// appendExchange records one completed user/assistant exchange. Failed
// exchanges are never recorded.
func (s *Session) appendExchange(userText, assistantText string) {
	s.history = append(s.history,
		contractx.Turn{Speaker: contractx.SpeakerUser, Text: userText},
		contractx.Turn{Speaker: contractx.SpeakerAssistant, Text: assistantText},
	)
}

// Store maps session identifiers to sessions. Its mutex guards only the map;
// per-session work happens under the session's own lock, so concurrent
// requests for different sessions proceed independently.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// GetOrCreate resolves the session for id, creating a fresh unauthenticated
// one when none exists.
func (s *Store) GetOrCreate(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = newSession(id)
		s.sessions[id] = sess
	}
	return sess
}

// Clear drops the session for id. A later message under the same id starts
// a fresh unauthenticated session.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
