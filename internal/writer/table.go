package writer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"momo-dashboard/internal/models"
)

// WriteTable prints transactions as an aligned table. Bodies are left out;
// use the JSON or CSV output to see them.
func WriteTable(out io.Writer, transactions []models.Transaction) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tAMOUNT\tRECIPIENT\tFEE\t")
	for _, tx := range transactions {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			tx.ID, tx.Date, tx.Category, formatOptional(tx.Amount), tx.Counterparty, formatOptional(tx.Fee))
	}

	return tw.Flush()
}
