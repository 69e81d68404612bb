package tool

import (
	"errors"
	"fmt"
	"strings"

	ledgerx "github.com/bankbot/bankbot/agent/ledger"
)

const statementLimit = 5

const transferGuidance = "🔄 To make a transfer you need to provide:\n" +
	"1. The type (Pix, wire or scheduled)\n" +
	"2. The amount\n" +
	"3. The beneficiary's details\n\n" +
	"For security reasons, transfers must be made in the bank's official app."

const paymentGuidance = "💳 To pay a bill you can:\n" +
	"1. Scan the bill's barcode\n" +
	"2. Type the code manually\n\n" +
	"For security reasons, payments must be made in the bank's official app."

func (g *Gateway) balance(identity, kind string) string {
	acc, err := g.ledger.LookupAccount(identity, kind)
	if err != nil {
		return notFoundText(g.ledger, identity, kind, err)
	}
	return fmt.Sprintf("💰 %s account balance (account %s): $ %s",
		capitalize(kind), acc.Number, acc.Balance.StringFixed(2))
}

func (g *Gateway) statement(identity, kind string) string {
	acc, err := g.ledger.LookupAccount(identity, kind)
	if err != nil {
		return notFoundText(g.ledger, identity, kind, err)
	}

	if len(acc.Statement) == 0 {
		return fmt.Sprintf("There are no recent transactions for the %s account (account %s). Current balance: $ %s",
			capitalize(kind), acc.Number, acc.Balance.StringFixed(2))
	}

	recent := acc.Statement
	if len(recent) > statementLimit {
		recent = recent[len(recent)-statementLimit:]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 Statement for the %s account (account %s):\n\n", capitalize(kind), acc.Number)
	for _, tx := range recent {
		sign := "-"
		if tx.Kind == ledgerx.KindCredit {
			sign = "+"
		}
		fmt.Fprintf(&sb, "%s | %s: %s$ %s\n", tx.Date, tx.Description, sign, tx.Amount.Abs().StringFixed(2))
	}
	fmt.Fprintf(&sb, "\n💰 Current balance: $ %s", acc.Balance.StringFixed(2))
	return sb.String()
}

func (g *Gateway) faq(query string) string {
	if answer, ok := g.kb.FAQLookup(query); ok {
		return answer
	}
	return "Sorry, I could not find an answer to that in our FAQ. I can help with: " +
		strings.Join(g.kb.Topics(), ", ") + "."
}

// notFoundText distinguishes an unknown user from an unknown account kind.
// Both are conversational outcomes, not faults.
func notFoundText(store *ledgerx.Store, identity, kind string, err error) string {
	if errors.Is(err, ledgerx.ErrNotFound) && store.HasUser(identity) {
		return fmt.Sprintf("You have no %s account registered.", kind)
	}
	return "User not found."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
