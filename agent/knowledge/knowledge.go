// Package knowledge holds the static FAQ and product catalog. Both are
// process-lifetime data with no mutation after construction.
package knowledge

import (
	"fmt"
	"strings"
)

// FAQEntry pairs a lookup keyword with its canned answer.
type FAQEntry struct {
	Keyword string
	Answer  string
}

// Product is one catalog entry.
type Product struct {
	Name    string
	Details []string
	Footer  string
}

// Base is the knowledge base. FAQ entries live in a slice, not a map:
// lookup is first-match-wins and the match order must be the declaration
// order, every time.
type Base struct {
	faq      []FAQEntry
	products map[string]Product
}

// NewBase returns the built-in knowledge base.
func NewBase() *Base {
	return &Base{
		faq: []FAQEntry{
			{"hours", "Our branches are open Monday through Friday, 10am to 4pm. Digital service is available 24/7."},
			{"card", "We offer several credit cards: Basic (no annual fee), Gold (mid-tier benefits) and Platinum (premium benefits). To apply, open the Products menu in the app."},
			{"loan", "We have personal loan lines with rates starting at 1.5% per month. Amount and terms depend on your credit review. Shall I transfer you to a specialist?"},
			{"investment", "We offer CDs, treasury bonds, investment funds and private pension plans. Each option has its own yield and liquidity profile."},
			{"pix", "Pix is an instant payment method available 24/7. You can transfer using a national ID, e-mail, phone number or random key."},
			{"security", "Never share your password, token or card details. The bank never asks for them by phone, e-mail or SMS. If you suspect fraud, block your card immediately in the app."},
			{"fees", "See the full fee schedule on our website. Digital accounts are exempt from several fees. Want me to e-mail you the link?"},
		},
		products: map[string]Product{
			"card": {
				Name:    "Credit Cards",
				Details: []string{"Basic (no annual fee)", "Gold ($20/month)", "Platinum ($50/month)"},
				Footer:  "Benefits: rewards program, insurance, partner discounts",
			},
			"loan": {
				Name:    "Personal Loan",
				Details: []string{"Rate: from 1.5% per month", "Term: up to 60 months"},
				Footer:  "Would you like to run a loan simulation?",
			},
			"investment": {
				Name:    "Investments",
				Details: []string{"CDs", "Treasury bonds", "Investment funds", "Private pension"},
				Footer:  "Would you like to talk to a specialist?",
			},
		},
	}
}

// FAQLookup scans the query for FAQ keywords (case-insensitive substring
// containment) and returns the first declared entry that matches.
func (b *Base) FAQLookup(text string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, entry := range b.faq {
		if strings.Contains(lowered, entry.Keyword) {
			return entry.Answer, true
		}
	}
	return "", false
}

// Topics lists the FAQ keywords in declaration order, for the fallback
// prompt shown when nothing matches.
func (b *Base) Topics() []string {
	topics := make([]string, len(b.faq))
	for i, entry := range b.faq {
		topics[i] = entry.Keyword
	}
	return topics
}

// ProductInfo formats the catalog entry for a category, or a generic
// overview when the category is unrecognized.
func (b *Base) ProductInfo(category string) string {
	p, ok := b.products[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		return "We offer several products: Credit Cards, Loans and Investments. Which one would you like to know more about?"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:\n\n", p.Name)
	for _, d := range p.Details {
		fmt.Fprintf(&sb, "• %s\n", d)
	}
	sb.WriteString("\n" + p.Footer)
	return sb.String()
}
