package internal

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Billing cycles run from the 15th of one calendar month to the 14th of
// the next. cycleDay is the boundary day; maxPeriodIterations is a
// defensive cap so a malformed range faults instead of hanging.
const (
	cycleDay            = 15
	maxPeriodIterations = 1000
)

// GeneratePeriods partitions [start, end] into non-overlapping billing
// cycles. The first period starts on the 15th at or before start; the
// last period's end is clipped down to end.
func GeneratePeriods(start, end time.Time) ([]BillingPeriod, error) {
	start = dateOnly(start)
	end = dateOnly(end)
	if start.After(end) {
		return nil, fmt.Errorf("invalid period range: start %s after end %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	year, month := start.Year(), start.Month()
	if start.Day() < cycleDay {
		// previous month's cycle, with explicit January rollover
		if month == time.January {
			year--
			month = time.December
		} else {
			month--
		}
	}
	cur := time.Date(year, month, cycleDay, 0, 0, 0, 0, start.Location())

	var periods []BillingPeriod
	for i := 0; ; i++ {
		if i >= maxPeriodIterations {
			return nil, fmt.Errorf("billing period generation exceeded %d iterations for range %s..%s",
				maxPeriodIterations, start.Format("2006-01-02"), end.Format("2006-01-02"))
		}

		periodEnd := nextCycleStart(cur).AddDate(0, 0, -1) // the 14th
		if periodEnd.After(end) {
			periodEnd = end
		}
		periods = append(periods, BillingPeriod{StartDate: cur, EndDate: periodEnd, Type: PeriodMonth})

		cur = nextCycleStart(cur)
		if cur.After(end) {
			break
		}
	}
	return periods, nil
}

// nextCycleStart is the 15th of the month after t's month, with explicit
// year rollover.
func nextCycleStart(t time.Time) time.Time {
	year, month := t.Year(), t.Month()
	if month == time.December {
		year++
		month = time.January
	} else {
		month++
	}
	return time.Date(year, month, cycleDay, 0, 0, 0, 0, t.Location())
}

// PeriodLabel returns the display month and year for a cycle. A period
// running 15th-of-M to 14th-of-(M+1) is shown as month M+1; this holds
// even for a clipped trailing period.
func PeriodLabel(p BillingPeriod) (string, int) {
	next := nextCycleStart(p.StartDate)
	return next.Month().String(), next.Year()
}

// PeriodKey returns the cycle's display month as "YYYY-MM", following
// the same start-month+1 rule as PeriodLabel.
func PeriodKey(p BillingPeriod) string {
	return nextCycleStart(p.StartDate).Format("2006-01")
}

// CombineItems aggregates transactions by lowercased/trimmed item name.
// UnitPrice is the running average, rounded to 2 decimals; the result is
// sorted by TotalPrice descending.
func CombineItems(txs []Transaction) []BillItem {
	index := make(map[string]int)
	var items []BillItem
	for _, tx := range txs {
		key := strings.ToLower(strings.TrimSpace(tx.Item))
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(items)
			index[key] = i
			items = append(items, BillItem{Item: key})
		}
		items[i].Quantity++
		items[i].TotalPrice = round2(items[i].TotalPrice + tx.Amount)
		items[i].UnitPrice = round2(items[i].TotalPrice / float64(items[i].Quantity))
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].TotalPrice != items[j].TotalPrice {
			return items[i].TotalPrice > items[j].TotalPrice
		}
		return items[i].Item < items[j].Item
	})
	return items
}

// GenerateBillingSummary builds per-day and whole-period aggregates for
// the transactions falling inside the period.
func GenerateBillingSummary(txs []Transaction, period BillingPeriod) BillingSummary {
	var inPeriod []Transaction
	for _, tx := range txs {
		if period.Contains(tx.Date) {
			inPeriod = append(inPeriod, tx)
		}
	}

	byDay := make(map[time.Time][]Transaction)
	for _, tx := range inPeriod {
		byDay[dateOnly(tx.Date)] = append(byDay[dateOnly(tx.Date)], tx)
	}
	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var dayBills []DayBill
	for _, d := range days {
		items := CombineItems(byDay[d])
		dayBills = append(dayBills, DayBill{Date: d, Items: items, Total: sumItems(items)})
	}

	label, year := PeriodLabel(period)
	monthItems := CombineItems(inPeriod)
	month := MonthBill{
		Period: period,
		Label:  label,
		Year:   year,
		Items:  monthItems,
		Total:  sumItems(monthItems),
	}

	return BillingSummary{
		Period:     period,
		Month:      month,
		Days:       dayBills,
		GrandTotal: month.Total,
	}
}

// AvailableMonths segments the min-max date range of the transactions
// into selectable billing cycles.
func AvailableMonths(txs []Transaction) ([]MonthOption, error) {
	if len(txs) == 0 {
		return nil, nil
	}
	r := RangeOf(txs)
	periods, err := GeneratePeriods(r.Start, r.End)
	if err != nil {
		return nil, err
	}
	options := make([]MonthOption, 0, len(periods))
	for _, p := range periods {
		label, year := PeriodLabel(p)
		options = append(options, MonthOption{
			Label:     label,
			Year:      year,
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
		})
	}
	return options, nil
}

// RangeOf returns the min and max transaction dates.
func RangeOf(txs []Transaction) DateRange {
	if len(txs) == 0 {
		return DateRange{}
	}
	r := DateRange{Start: txs[0].Date, End: txs[0].Date}
	for _, tx := range txs[1:] {
		if tx.Date.Before(r.Start) {
			r.Start = tx.Date
		}
		if tx.Date.After(r.End) {
			r.End = tx.Date
		}
	}
	return r
}

func sumItems(items []BillItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.TotalPrice
	}
	return round2(total)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
