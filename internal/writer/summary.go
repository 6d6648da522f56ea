package writer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"momo-dashboard/internal/models"
)

// Average returns total/count rounded to two places, or zero for an empty row.
func Average(s models.Summary) decimal.Decimal {
	if s.Count == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(s.Total).Div(decimal.NewFromInt(s.Count)).Round(2)
}

// WriteSummary prints aggregate rows as an aligned table with a totals line.
func WriteSummary(out io.Writer, rows []models.Summary) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "CATEGORY\tCOUNT\tTOTAL (RWF)\tAVERAGE\t")

	var count, total int64
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t\n", r.Category, r.Count, r.Total, Average(r).StringFixed(2))
		count += r.Count
		total += r.Total
	}

	all := models.Summary{Category: "All", Count: count, Total: total}
	fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t\n", all.Category, all.Count, all.Total, Average(all).StringFixed(2))

	return tw.Flush()
}
