package categorizer

import (
	"strings"

	"momo-dashboard/internal/models"
)

// Categorizer classifies mobile-money SMS bodies against an ordered rule list.
// It holds no mutable state and is safe for concurrent use.
type Categorizer struct {
	rules []Rule
}

// New creates a Categorizer using the built-in rules.
func New() *Categorizer {
	return &Categorizer{rules: defaultRules}
}

// NewWithRules creates a Categorizer over a custom rule list, evaluated in order.
func NewWithRules(rules []Rule) *Categorizer {
	return &Categorizer{rules: rules}
}

// Classify assigns a category to a message body and extracts whatever fields
// the matching rule can find. It never fails: bodies that match no trigger
// come back as Uncategorized with every optional field empty.
func (c *Categorizer) Classify(body, date string) models.Transaction {
	tx := models.Transaction{
		Date:     date,
		Category: models.CatUncategorized,
		Body:     body,
	}

	rule, ok := c.Match(body)
	if !ok {
		return tx
	}

	if category := rule.Category(strings.ToLower(body)); category != "" {
		tx.Category = category
	}
	if rule.Extract != nil {
		rule.Extract(&tx, body)
	}
	return tx
}

// Match returns the first rule whose trigger occurs in body, ignoring case.
func (c *Categorizer) Match(body string) (Rule, bool) {
	return match(c.rules, strings.ToLower(body))
}

// Category returns only the label Classify would assign.
func (c *Categorizer) Category(body string) string {
	if rule, ok := c.Match(body); ok {
		if category := rule.Category(strings.ToLower(body)); category != "" {
			return category
		}
	}
	return models.CatUncategorized
}

var std = New()

// Match finds the built-in rule for body.
func Match(body string) (Rule, bool) {
	return std.Match(body)
}

// Classify runs the built-in rules over one message.
func Classify(body, date string) models.Transaction {
	return std.Classify(body, date)
}
