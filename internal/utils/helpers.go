package utils

import (
	"strconv"
	"strings"
)

// ParseAmount converts a digit run such as "12,500" into an integer.
// Grouping separators are removed first. ok is false for empty, negative
// or out-of-range input.
func ParseAmount(raw string) (int64, bool) {
	clean := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if clean == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// AmountPtr is ParseAmount returning nil when the value is absent.
func AmountPtr(raw string) *int64 {
	n, ok := ParseAmount(raw)
	if !ok {
		return nil
	}
	return &n
}

// CleanCounterparty trims whitespace and collapses internal runs of spaces.
func CleanCounterparty(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// Contains checks if text contains any of the given keywords
func Contains(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
