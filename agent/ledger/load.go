package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	usersFile        = "users.csv"
	accountsFile     = "accounts.csv"
	transactionsFile = "transactions.csv"
)

// Load builds the store from the three CSV sources under dir, joined by
// identity and account number. The join is tolerant: accounts for unknown
// identities and transactions for unknown identity/account pairs are
// dropped. Malformed files or amounts fail the load; the process cannot
// serve without data.
func Load(dir string) (*Store, error) {
	users, err := readRows(filepath.Join(dir, usersFile))
	if err != nil {
		return nil, err
	}

	store := &Store{users: make(map[string]*UserRecord, len(users))}
	for _, row := range users {
		identity := row["identity"]
		if identity == "" {
			continue
		}
		store.users[identity] = &UserRecord{
			Identity: identity,
			Name:     row["name"],
			Secret:   row["password"],
			Accounts: make(map[string]*Account, 2),
		}
	}

	accounts, err := readRows(filepath.Join(dir, accountsFile))
	if err != nil {
		return nil, err
	}
	droppedAccounts := 0
	for _, row := range accounts {
		u, ok := store.users[row["identity"]]
		if !ok {
			droppedAccounts++
			continue
		}
		balance, err := decimal.NewFromString(row["balance"])
		if err != nil {
			return nil, fmt.Errorf("ledger: bad balance for account %s: %w", row["account_number"], err)
		}
		kind := strings.ToLower(row["account_type"])
		u.Accounts[kind] = &Account{
			Kind:    kind,
			Number:  row["account_number"],
			Balance: balance,
		}
	}

	transactions, err := readRows(filepath.Join(dir, transactionsFile))
	if err != nil {
		return nil, err
	}
	droppedTransactions := 0
	for _, row := range transactions {
		acc := findAccount(store, row["identity"], row["account_number"])
		if acc == nil {
			droppedTransactions++
			continue
		}
		amount, err := decimal.NewFromString(row["value"])
		if err != nil {
			return nil, fmt.Errorf("ledger: bad amount in transaction %q: %w", row["description"], err)
		}
		acc.Statement = append(acc.Statement, Transaction{
			Date:        row["date"],
			Description: row["description"],
			Amount:      amount,
			Kind:        TransactionKind(strings.ToLower(row["type"])),
		})
	}

	log.Info().
		Int("users", len(store.users)).
		Int("dropped_accounts", droppedAccounts).
		Int("dropped_transactions", droppedTransactions).
		Msg("ledger loaded")

	return store, nil
}

func findAccount(store *Store, identity, number string) *Account {
	u, ok := store.users[identity]
	if !ok {
		return nil
	}
	for _, acc := range u.Accounts {
		if acc.Number == number {
			return acc
		}
	}
	return nil
}

// readRows reads a CSV file into header-keyed maps. The first row is the
// header; short rows are rejected by the csv reader itself.
func readRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ledger: parse %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ledger: %s has no header row", filepath.Base(path))
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			row[strings.TrimSpace(col)] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}
