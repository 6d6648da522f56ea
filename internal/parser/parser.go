package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"momo-dashboard/internal/categorizer"
	"momo-dashboard/internal/models"
)

// Options filters messages while reading a backup.
type Options struct {
	// Sender keeps only messages whose address matches exactly. Empty keeps all.
	Sender string
}

// Parser handles SMS backup parsing
type Parser struct {
	categorizer *categorizer.Categorizer
}

// New creates a new Parser instance
func New() *Parser {
	return &Parser{
		categorizer: categorizer.New(),
	}
}

// NewWithCategorizer creates a Parser that classifies with c.
func NewWithCategorizer(c *categorizer.Categorizer) *Parser {
	return &Parser{categorizer: c}
}

// ReadFile reads the <sms> elements of an XML backup file.
func ReadFile(filePath string, opts Options) ([]models.SMS, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	defer f.Close()

	return ReadMessages(f, opts)
}

// ReadMessages decodes an XML backup from r. Document order is preserved.
func ReadMessages(r io.Reader, opts Options) ([]models.SMS, error) {
	var backup models.SMSBackup
	if err := xml.NewDecoder(r).Decode(&backup); err != nil {
		return nil, fmt.Errorf("error parsing XML: %w", err)
	}

	if opts.Sender == "" {
		return backup.SMS, nil
	}

	var kept []models.SMS
	for _, sms := range backup.SMS {
		if sms.Address == opts.Sender {
			kept = append(kept, sms)
		}
	}
	return kept, nil
}

// Import classifies every message, keeping input order. The result has
// exactly one record per message.
func (p *Parser) Import(messages []models.SMS) []models.Transaction {
	transactions := make([]models.Transaction, 0, len(messages))
	for _, sms := range messages {
		transactions = append(transactions, p.categorizer.Classify(sms.Body, sms.ReadableDate))
	}
	return transactions
}

// ParseFile reads a backup file and classifies its messages.
func (p *Parser) ParseFile(filePath string, opts Options) ([]models.Transaction, error) {
	messages, err := ReadFile(filePath, opts)
	if err != nil {
		return nil, err
	}
	return p.Import(messages), nil
}

// Import classifies messages with the built-in rules.
func Import(messages []models.SMS) []models.Transaction {
	return New().Import(messages)
}
