// Package ledger holds the read-only in-memory banking data: users, their
// accounts, and account statements. The store is populated once at startup
// and never mutated, so it is safe to share across sessions without locking.
package ledger

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// TransactionKind tags a statement entry as money in or money out.
type TransactionKind string

const (
	KindCredit TransactionKind = "credit"
	KindDebit  TransactionKind = "debit"
)

// Transaction is one immutable statement entry. Entries keep their load
// order, which is assumed chronological.
type Transaction struct {
	Date        string
	Description string
	Amount      decimal.Decimal
	Kind        TransactionKind
}

// Account belongs to exactly one user. Balance is authoritative and loaded
// independently of the statement; the two are never reconciled.
type Account struct {
	Kind      string
	Number    string
	Balance   decimal.Decimal
	Statement []Transaction
}

// UserRecord is one registered customer keyed by national-ID.
type UserRecord struct {
	Identity string
	Name     string
	Secret   string
	Accounts map[string]*Account
}

// Store maps identities to user records. Immutable after Load; callers must
// treat returned records as read-only.
type Store struct {
	users map[string]*UserRecord
}

// NewStore builds a store from already-assembled records. Load is the
// production path; this one serves tests and alternate loaders.
func NewStore(records ...*UserRecord) *Store {
	users := make(map[string]*UserRecord, len(records))
	for _, r := range records {
		if r == nil || r.Identity == "" {
			continue
		}
		users[r.Identity] = r
	}
	return &Store{users: users}
}

// LookupUser returns the record for identity, or ErrNotFound.
func (s *Store) LookupUser(identity string) (*UserRecord, error) {
	u, ok := s.users[strings.TrimSpace(identity)]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

// LookupAccount returns one of the user's accounts by kind ("checking",
// "savings"), or ErrNotFound when either the user or the kind is unknown.
func (s *Store) LookupAccount(identity, kind string) (*Account, error) {
	u, err := s.LookupUser(identity)
	if err != nil {
		return nil, err
	}
	acc, ok := u.Accounts[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		return nil, ErrNotFound
	}
	return acc, nil
}

// HasUser reports whether identity exists without exposing the record. The
// session engine uses this during authentication, before any personal data
// may be read.
func (s *Store) HasUser(identity string) bool {
	_, ok := s.users[strings.TrimSpace(identity)]
	return ok
}

// Size returns the number of loaded users.
func (s *Store) Size() int {
	return len(s.users)
}
