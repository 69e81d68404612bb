package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/bankbot/bankbot/agent/contract"
	ledgerx "github.com/bankbot/bankbot/agent/ledger"
)

// Status tags a reply for the transport layer.
type Status string

const (
	StatusInfo           Status = "info"
	StatusAuthentication Status = "authentication"
	StatusSuccess        Status = "success"
	StatusError          Status = "error"
	StatusLogout         Status = "logout"
)

// Reply is the engine's answer to one inbound message.
type Reply struct {
	Text   string `json:"text"`
	Status Status `json:"status"`
}

var (
	ErrInvalidSession = errors.New("session id is empty")
	ErrInvalidMessage = errors.New("message is empty")
)

// identityPattern scans for an 11-digit national ID anywhere in the text,
// so "my ID is 12345678901" authenticates as well as the bare number.
var identityPattern = regexp.MustCompile(`\d{11}`)

const (
	msgAskIdentity    = "To get started, please provide your national ID (numbers only):"
	msgIdentityFound  = "Identity recognized. Please enter your password:"
	msgIdentityLost   = "We could not find that ID in our records. Please check it and try again."
	msgWrongPassword  = "Incorrect password.\nPlease provide your national ID again to retry."
	msgSessionClosed  = "Session closed successfully.\n"
	msgResolverSorry  = "Sorry, I had a problem processing your request.\nPlease try again later."
	welcomeFormat     = "Welcome, %s! 🎉\n\nHow can I help you today?"
	defaultResTimeout = 30 * time.Second
)

type Config struct {
	// ResolverTimeout bounds one intent-resolver call. Zero means the
	// default of 30s.
	ResolverTimeout time.Duration
}

// Engine drives the per-session state machine:
// unauthenticated -> credential-pending -> authenticated. Ledger reads are
// unreachable before authentication, except the identity-existence check
// that gates the pending transition.
type Engine struct {
	sessions *Store
	ledger   *ledgerx.Store
	resolver contractx.IntentResolver
	verifier contractx.CredentialVerifier
	timeout  time.Duration
}

func New(
	sessions *Store,
	ledger *ledgerx.Store,
	resolver contractx.IntentResolver,
	verifier contractx.CredentialVerifier,
	cfg Config,
) (*Engine, error) {
	if sessions == nil {
		return nil, errors.New("session store is required")
	}
	if ledger == nil {
		return nil, errors.New("ledger store is required")
	}
	if resolver == nil {
		return nil, errors.New("intent resolver is required")
	}
	if verifier == nil {
		return nil, errors.New("credential verifier is required")
	}

	timeout := cfg.ResolverTimeout
	if timeout <= 0 {
		timeout = defaultResTimeout
	}

	return &Engine{
		sessions: sessions,
		ledger:   ledger,
		resolver: resolver,
		verifier: verifier,
		timeout:  timeout,
	}, nil
}

// HandleMessage advances the session's state machine with one inbound text
// and returns the reply the transport should deliver.
func (e *Engine) HandleMessage(ctx context.Context, sessionID, text string) (Reply, error) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return Reply{}, ErrInvalidSession
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Reply{}, ErrInvalidMessage
	}

	sess := e.sessions.GetOrCreate(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	// Exit short-circuits from any state.
	if isExit(trimmed) {
		sess.reset()
		return Reply{Text: msgSessionClosed, Status: StatusLogout}, nil
	}

	switch sess.state {
	case StateUnauthenticated:
		return e.handleUnauthenticated(sess, trimmed), nil
	case StateCredentialPending:
		return e.handleCredentialPending(sess, trimmed), nil
	case StateAuthenticated:
		return e.handleAuthenticated(ctx, sess, trimmed), nil
	default:
		// Store inconsistency fails this request, never the process.
		return Reply{}, fmt.Errorf("session %s in unknown state %q", id, sess.state)
	}
}

// Logout clears the session unconditionally.
func (e *Engine) Logout(sessionID string) {
	e.sessions.Clear(strings.TrimSpace(sessionID))
}

func (e *Engine) handleUnauthenticated(sess *Session, text string) Reply {
	candidate := identityPattern.FindString(text)
	if candidate == "" {
		return Reply{Text: msgAskIdentity, Status: StatusInfo}
	}
	if !e.ledger.HasUser(candidate) {
		return Reply{Text: msgIdentityLost, Status: StatusError}
	}

	sess.state = StateCredentialPending
	sess.candidate = candidate
	return Reply{Text: msgIdentityFound, Status: StatusAuthentication}
}

func (e *Engine) handleCredentialPending(sess *Session, supplied string) Reply {
	user, err := e.ledger.LookupUser(sess.candidate)
	if err != nil || !e.verifier.Verify(user.Secret, supplied) {
		sess.reset()
		return Reply{Text: msgWrongPassword, Status: StatusError}
	}

	identity := sess.candidate
	sess.state = StateAuthenticated
	sess.identity = identity
	sess.candidate = ""
	sess.history = nil
	return Reply{
		Text:   fmt.Sprintf(welcomeFormat, user.Name),
		Status: StatusSuccess,
	}
}

func (e *Engine) handleAuthenticated(ctx context.Context, sess *Session, text string) Reply {
	rctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.resolver.Resolve(rctx, contractx.ResolverRequest{
		Identity: sess.identity,
		Text:     text,
		History:  sess.historySnapshot(),
	})
	if err != nil {
		// Apology, session and history exactly as they were.
		err = fmt.Errorf("%w: %v", contractx.ErrResolverFailure, err)
		log.Error().Err(err).Str("session_id", sess.id).Msg("intent resolver failed")
		return Reply{Text: msgResolverSorry, Status: StatusInfo}
	}

	sess.appendExchange(text, resp.Reply)
	return Reply{Text: resp.Reply, Status: StatusInfo}
}

func isExit(text string) bool {
	switch strings.ToLower(text) {
	case "exit", "sair":
		return true
	}
	return false
}
