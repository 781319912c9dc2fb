package internal

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// formatTaka renders a currency value for display.
func formatTaka(v float64) string {
	return fmt.Sprintf("%.2f ৳", v)
}

// PrintParseSummary writes the one-line result of a parse run.
func PrintParseSummary(w io.Writer, s ParseSummary) {
	fmt.Fprintf(w, "Parsed %d lines in %s: %d transactions",
		s.TotalLines, s.ProcessingTime.Round(1e6), s.Transactions)
	if s.DuplicatesSkipped > 0 {
		fmt.Fprintf(w, ", %d duplicates skipped", s.DuplicatesSkipped)
	}
	if s.FailedLines > 0 {
		fmt.Fprintf(w, ", %s", text.FgRed.Sprintf("%d failed", s.FailedLines))
	}
	if s.ReviewLines > 0 {
		fmt.Fprintf(w, ", %s", text.FgYellow.Sprintf("%d need review", s.ReviewLines))
	}
	fmt.Fprintln(w)
}

// PrintMonthBill writes one billing cycle as a table with a footer total.
func PrintMonthBill(w io.Writer, bill MonthBill) {
	fmt.Fprintf(w, "\n%s %d  (%s — %s)\n",
		bill.Label, bill.Year,
		bill.Period.StartDate.Format("2006-01-02"),
		bill.Period.EndDate.Format("2006-01-02"))

	if len(bill.Items) == 0 {
		fmt.Fprintln(w, "  no purchases in this cycle")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Item", "Qty", "Unit", "Total"})
	for _, item := range bill.Items {
		t.AppendRow(table.Row{
			item.Item,
			item.Quantity,
			formatTaka(item.UnitPrice),
			formatTaka(item.TotalPrice),
		})
	}
	t.AppendSeparator()
	t.AppendFooter(table.Row{"", "", text.Bold.Sprint("Total"), text.Bold.Sprint(formatTaka(bill.Total))})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

// PrintNeedsReview lists messages the parser could not price.
func PrintNeedsReview(w io.Writer, diags []Diagnostic) {
	if len(diags) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", text.FgYellow.Sprintf("%d message(s) need review:", len(diags)))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Line", "Date", "Message", "Reason"})
	for _, d := range diags {
		t.AppendRow(table.Row{d.Line, d.Date.Format("2006-01-02 15:04"), truncate(d.Text, 40), d.Reason})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Render()
}

// PrintParseErrors lists lines that could not be interpreted at all.
func PrintParseErrors(w io.Writer, errs []ParseError) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", text.FgRed.Sprintf("%d line(s) failed to parse:", len(errs)))
	for _, e := range errs {
		fmt.Fprintf(w, "  line %d: %s (%q)\n", e.Line, e.Message, truncate(e.OriginalText, 60))
	}
}

// JSONOutput is the root object for --output json.
type JSONOutput struct {
	Transactions []JSONTransaction `json:"transactions"`
	Bills        []JSONMonthBill   `json:"bills"`
	Summary      JSONSummary       `json:"summary"`
}

type JSONTransaction struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Sender string  `json:"sender"`
	Item   string  `json:"item"`
	Amount float64 `json:"amount"`
}

type JSONMonthBill struct {
	Label string     `json:"label"`
	Year  int        `json:"year"`
	Start string     `json:"start"`
	End   string     `json:"end"`
	Items []BillItem `json:"items"`
	Total float64    `json:"total"`
}

type JSONSummary struct {
	TotalLines        int     `json:"total_lines"`
	Transactions      int     `json:"transactions"`
	FailedLines       int     `json:"failed_lines"`
	ReviewLines       int     `json:"review_lines"`
	DuplicatesSkipped int     `json:"duplicates_skipped"`
	GrandTotal        float64 `json:"grand_total"`
}

// PrintJSON writes transactions and bills as indented JSON.
func PrintJSON(w io.Writer, txs []Transaction, bills []MonthBill, summary ParseSummary) error {
	out := JSONOutput{}
	for _, tx := range txs {
		out.Transactions = append(out.Transactions, JSONTransaction{
			ID:     tx.ID,
			Date:   tx.Date.Format("2006-01-02 15:04"),
			Sender: tx.Sender,
			Item:   tx.Item,
			Amount: tx.Amount,
		})
	}
	grand := 0.0
	for _, b := range bills {
		out.Bills = append(out.Bills, JSONMonthBill{
			Label: b.Label,
			Year:  b.Year,
			Start: b.Period.StartDate.Format("2006-01-02"),
			End:   b.Period.EndDate.Format("2006-01-02"),
			Items: b.Items,
			Total: b.Total,
		})
		grand += b.Total
	}
	out.Summary = JSONSummary{
		TotalLines:        summary.TotalLines,
		Transactions:      summary.Transactions,
		FailedLines:       summary.FailedLines,
		ReviewLines:       summary.ReviewLines,
		DuplicatesSkipped: summary.DuplicatesSkipped,
		GrandTotal:        round2(grand),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-2]) + ".."
}
