package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"momo-dashboard/internal/models"
)

// Header is the column order of exported CSV files.
var Header = []string{"id", "date", "transaction_type", "amount", "recipient", "fee", "body"}

// Writer handles CSV file writing
type Writer struct {
	outputDir string
}

// New creates a new Writer instance
func New(outputDir string) *Writer {
	return &Writer{
		outputDir: outputDir,
	}
}

// Write writes one CSV file per category and returns the paths created,
// sorted by name. Labels that map to the same file name, such as
// "Incoming Money" and "Incoming Money ", share that file. Records keep
// their order and their stored label within a file.
func (w *Writer) Write(transactions []models.Transaction) ([]string, error) {
	grouped := make(map[string][]models.Transaction)
	for _, tx := range transactions {
		name := FileName(tx.Category)
		grouped[name] = append(grouped[name], tx)
	}

	var files []string
	for name, txns := range grouped {
		filename := filepath.Join(w.outputDir, name)
		if err := writeCSVFile(filename, txns); err != nil {
			return nil, err
		}
		files = append(files, filename)
	}
	sort.Strings(files)
	return files, nil
}

// FileName maps a category label to a file name, e.g.
// "Withdrawals from Agents" -> "Withdrawals_from_Agents.csv".
func FileName(category string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r == ' ' || r == '_':
			return '_'
		}
		return -1
	}, strings.TrimSpace(category))
	if name == "" {
		name = "Uncategorized"
	}
	return name + ".csv"
}

// writeCSVFile writes a single CSV file
func writeCSVFile(filename string, transactions []models.Transaction) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", filename, err)
	}
	defer file.Close()

	// Write BOM for UTF-8
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("error writing BOM to %s: %w", filename, err)
	}

	writer := csv.NewWriter(file)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("error writing header to %s: %w", filename, err)
	}

	for _, tx := range transactions {
		record := []string{
			strconv.FormatInt(tx.ID, 10),
			tx.Date,
			tx.Category,
			formatOptional(tx.Amount),
			tx.Counterparty,
			formatOptional(tx.Fee),
			tx.Body,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing transaction to %s: %w", filename, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("error flushing writer for %s: %w", filename, err)
	}

	return nil
}

// formatOptional renders nil as an empty cell so a zero fee stays visible.
func formatOptional(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
