package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJoinsUsersAccountsAndTransactions(t *testing.T) {
	t.Parallel()

	store, err := Load("testdata")
	require.NoError(t, err)
	require.Equal(t, 2, store.Size())

	user, err := store.LookupUser("12345678901")
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", user.Name)
	assert.Equal(t, "abc123", user.Secret)
	assert.Len(t, user.Accounts, 2)

	checking, err := store.LookupAccount("12345678901", "checking")
	require.NoError(t, err)
	assert.Equal(t, "12345-6", checking.Number)
	assert.Len(t, checking.Statement, 12)
	assert.Equal(t, "tx-01", checking.Statement[0].Description)
	assert.Equal(t, "tx-12", checking.Statement[11].Description)
}

func TestLoadTolerantJoinDropsOrphans(t *testing.T) {
	t.Parallel()

	store, err := Load("testdata")
	require.NoError(t, err)

	// Account row for unknown identity 55555555555 is dropped entirely.
	assert.False(t, store.HasUser("55555555555"))

	// Orphan transactions (unknown account number, unknown identity) are
	// dropped; the valid row survives.
	checking, err := store.LookupAccount("98765432100", "checking")
	require.NoError(t, err)
	require.Len(t, checking.Statement, 1)
	assert.Equal(t, "Salary", checking.Statement[0].Description)
}

func TestBalanceIsIndependentOfStatement(t *testing.T) {
	t.Parallel()

	store, err := Load("testdata")
	require.NoError(t, err)

	// The loaded balance is authoritative: it is never recomputed from the
	// statement, even though the two do not add up.
	checking, err := store.LookupAccount("12345678901", "checking")
	require.NoError(t, err)
	assert.True(t, checking.Balance.Equal(decimal.RequireFromString("2543.75")))

	sum := decimal.Zero
	for _, tx := range checking.Statement {
		sum = sum.Add(tx.Amount)
	}
	assert.False(t, sum.Equal(checking.Balance))
}

func TestLookupNotFound(t *testing.T) {
	t.Parallel()

	store, err := Load("testdata")
	require.NoError(t, err)

	_, err = store.LookupUser("00000000000")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.LookupAccount("00000000000", "checking")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.LookupAccount("98765432100", "savings")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMissingFileFails(t *testing.T) {
	t.Parallel()

	_, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestNewStoreSkipsEmptyRecords(t *testing.T) {
	t.Parallel()

	store := NewStore(
		&UserRecord{Identity: "12345678901", Name: "Ana"},
		nil,
		&UserRecord{},
	)
	assert.Equal(t, 1, store.Size())
	assert.True(t, store.HasUser("12345678901"))
}
