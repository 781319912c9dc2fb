package internal

import "time"

// Transaction is a single purchase event extracted from a chat message.
type Transaction struct {
	ID              string
	Date            time.Time
	Sender          string
	Item            string
	Amount          float64
	OriginalMessage string
	CategoryID      string // assigned by an external categorizer, never set here
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ParseError records a line that could not be converted. Parsing never
// aborts on these; they are accumulated and returned with the result.
type ParseError struct {
	Line         int
	Message      string
	OriginalText string
}

// Diagnostic is a message that parsed cleanly but yielded no usable
// item/amount pair. It is surfaced to the operator for manual review.
type Diagnostic struct {
	Line   int
	Sender string
	Date   time.Time
	Text   string
	Reason string
}

// ParseSummary holds aggregate counters for one parse run.
// TotalLines = MatchedLines + FailedLines + ReviewLines + SkippedLines.
type ParseSummary struct {
	TotalLines        int
	MatchedLines      int
	FailedLines       int
	ReviewLines       int
	SkippedLines      int
	Transactions      int
	DuplicatesSkipped int
	ProcessingTime    time.Duration
}

// ParseResult is the full output of a parse run.
type ParseResult struct {
	Transactions []Transaction
	Errors       []ParseError
	NeedsReview  []Diagnostic
	Summary      ParseSummary
}

type PeriodType string

const (
	PeriodMonth  PeriodType = "month"
	PeriodCustom PeriodType = "custom"
)

// BillingPeriod is one 15th-to-14th cycle (possibly clipped at the ends
// of the requested range). StartDate <= EndDate always holds.
type BillingPeriod struct {
	StartDate time.Time
	EndDate   time.Time
	Type      PeriodType
}

// Contains reports whether t falls inside the period, end inclusive.
func (p BillingPeriod) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return !day.Before(p.StartDate) && !day.After(p.EndDate)
}

// BillItem aggregates every purchase of one item within a period.
// UnitPrice is the average price paid, rounded to 2 decimals.
type BillItem struct {
	Item       string  `json:"item"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// DayBill is the aggregation of one calendar day.
type DayBill struct {
	Date  time.Time
	Items []BillItem
	Total float64
}

// MonthBill is the aggregation of one billing cycle. Label carries the
// display month: a cycle running 15th-of-M to 14th-of-(M+1) is labeled M+1.
type MonthBill struct {
	Period BillingPeriod
	Label  string
	Year   int
	Items  []BillItem
	Total  float64
}

// BillingSummary is the full report for one period.
type BillingSummary struct {
	Period     BillingPeriod
	Month      MonthBill
	Days       []DayBill
	GrandTotal float64
}

// MonthOption describes one selectable billing cycle derived from a
// transaction set's date range.
type MonthOption struct {
	Label     string
	Year      int
	StartDate time.Time
	EndDate   time.Time
}

// DateRange is the min/max dates of a transaction set.
type DateRange struct {
	Start time.Time
	End   time.Time
}
