package internal

import (
	"testing"
	"time"
)

func TestGeneratePeriods(t *testing.T) {
	periods, err := GeneratePeriods(date("2024-01-01"), date("2024-03-31"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []BillingPeriod{
		{StartDate: date("2023-12-15"), EndDate: date("2024-01-14"), Type: PeriodMonth},
		{StartDate: date("2024-01-15"), EndDate: date("2024-02-14"), Type: PeriodMonth},
		{StartDate: date("2024-02-15"), EndDate: date("2024-03-14"), Type: PeriodMonth},
		{StartDate: date("2024-03-15"), EndDate: date("2024-03-31"), Type: PeriodMonth},
	}

	if len(periods) != len(expected) {
		t.Fatalf("expected %d periods, got %d: %v", len(expected), len(periods), periods)
	}
	for i := range expected {
		if !periods[i].StartDate.Equal(expected[i].StartDate) || !periods[i].EndDate.Equal(expected[i].EndDate) {
			t.Errorf("period %d: expected %s..%s, got %s..%s", i,
				expected[i].StartDate.Format("2006-01-02"), expected[i].EndDate.Format("2006-01-02"),
				periods[i].StartDate.Format("2006-01-02"), periods[i].EndDate.Format("2006-01-02"))
		}
	}
}

func TestGeneratePeriodsStartOnOrAfterCycleDay(t *testing.T) {
	periods, err := GeneratePeriods(date("2024-01-20"), date("2024-02-10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(periods) != 1 {
		t.Fatalf("expected 1 period, got %d", len(periods))
	}
	if !periods[0].StartDate.Equal(date("2024-01-15")) || !periods[0].EndDate.Equal(date("2024-02-10")) {
		t.Errorf("expected 2024-01-15..2024-02-10, got %s..%s",
			periods[0].StartDate.Format("2006-01-02"), periods[0].EndDate.Format("2006-01-02"))
	}
}

func TestGeneratePeriodsCoverage(t *testing.T) {
	// No gaps, no overlaps: each period starts the day after the previous
	// one ends, and the last period ends exactly at the range end.
	start, end := date("2023-11-02"), date("2024-06-20")
	periods, err := GeneratePeriods(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(periods); i++ {
		wantStart := periods[i-1].EndDate.AddDate(0, 0, 1)
		if !periods[i].StartDate.Equal(wantStart) {
			t.Errorf("gap/overlap between period %d and %d: %s then %s", i-1, i,
				periods[i-1].EndDate.Format("2006-01-02"), periods[i].StartDate.Format("2006-01-02"))
		}
	}
	last := periods[len(periods)-1]
	if !last.EndDate.Equal(end) {
		t.Errorf("expected final period to end at %s, got %s",
			end.Format("2006-01-02"), last.EndDate.Format("2006-01-02"))
	}
	if periods[0].StartDate.After(start) {
		t.Errorf("expected first period to start at or before %s, got %s",
			start.Format("2006-01-02"), periods[0].StartDate.Format("2006-01-02"))
	}
}

func TestGeneratePeriodsDecemberRollover(t *testing.T) {
	periods, err := GeneratePeriods(date("2023-12-20"), date("2024-01-20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(periods) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(periods))
	}
	if !periods[0].EndDate.Equal(date("2024-01-14")) {
		t.Errorf("expected first period to roll into January, got %s",
			periods[0].EndDate.Format("2006-01-02"))
	}
	if !periods[1].StartDate.Equal(date("2024-01-15")) {
		t.Errorf("expected second period to start 2024-01-15, got %s",
			periods[1].StartDate.Format("2006-01-02"))
	}
}

func TestGeneratePeriodsInvalidRange(t *testing.T) {
	if _, err := GeneratePeriods(date("2024-03-01"), date("2024-01-01")); err == nil {
		t.Error("expected an error for start after end")
	}
}

func TestPeriodLabel(t *testing.T) {
	tests := []struct {
		name      string
		period    BillingPeriod
		wantLabel string
		wantYear  int
	}{
		{
			name:      "mid-year cycle",
			period:    BillingPeriod{StartDate: date("2024-01-15"), EndDate: date("2024-02-14")},
			wantLabel: "February",
			wantYear:  2024,
		},
		{
			name:      "december cycle labels january",
			period:    BillingPeriod{StartDate: date("2023-12-15"), EndDate: date("2024-01-14")},
			wantLabel: "January",
			wantYear:  2024,
		},
		{
			name: "clipped trailing period keeps its cycle label",
			// runs 15th to the 31st but is still the April cycle
			period:    BillingPeriod{StartDate: date("2024-03-15"), EndDate: date("2024-03-31")},
			wantLabel: "April",
			wantYear:  2024,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, year := PeriodLabel(tt.period)
			if label != tt.wantLabel || year != tt.wantYear {
				t.Errorf("expected %s %d, got %s %d", tt.wantLabel, tt.wantYear, label, year)
			}
		})
	}
}

func TestCombineItems(t *testing.T) {
	txs := []Transaction{
		tx("milk", 100, "2024-01-03"),
		tx("milk", 100, "2024-01-05"),
		tx("milk", 100, "2024-01-08"),
		tx("bread", 50, "2024-01-04"),
	}

	items := CombineItems(txs)

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	milk := items[0]
	if milk.Item != "milk" || milk.Quantity != 3 || milk.TotalPrice != 300 || milk.UnitPrice != 100 {
		t.Errorf("expected milk 3x100=300, got %+v", milk)
	}
	bread := items[1]
	if bread.Item != "bread" || bread.Quantity != 1 || bread.TotalPrice != 50 || bread.UnitPrice != 50 {
		t.Errorf("expected bread 1x50=50, got %+v", bread)
	}
}

func TestCombineItemsAveragesAndRounds(t *testing.T) {
	txs := []Transaction{
		tx("egg", 45, "2024-01-03"),
		tx("egg", 50, "2024-01-05"),
		tx("egg", 48, "2024-01-08"),
	}

	items := CombineItems(txs)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].TotalPrice != 143 {
		t.Errorf("expected total 143, got %v", items[0].TotalPrice)
	}
	if items[0].UnitPrice != 47.67 {
		t.Errorf("expected unit price 47.67, got %v", items[0].UnitPrice)
	}
}

func TestCombineItemsNormalizesNames(t *testing.T) {
	txs := []Transaction{
		tx("Milk", 100, "2024-01-03"),
		tx(" milk ", 95, "2024-01-05"),
	}

	items := CombineItems(txs)
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Errorf("expected case/space-insensitive aggregation, got %+v", items)
	}
}

func TestGenerateBillingSummary(t *testing.T) {
	period := BillingPeriod{StartDate: date("2024-01-15"), EndDate: date("2024-02-14"), Type: PeriodMonth}
	txs := []Transaction{
		tx("milk", 100, "2024-01-20"),
		tx("milk", 100, "2024-01-20"),
		tx("egg", 45, "2024-02-01"),
		tx("egg", 45, "2024-03-01"), // outside the period
	}

	summary := GenerateBillingSummary(txs, period)

	if summary.GrandTotal != 245 {
		t.Errorf("expected grand total 245, got %v", summary.GrandTotal)
	}
	if len(summary.Days) != 2 {
		t.Fatalf("expected 2 day bills, got %d", len(summary.Days))
	}
	if !summary.Days[0].Date.Equal(date("2024-01-20")) || summary.Days[0].Total != 200 {
		t.Errorf("expected first day 2024-01-20 total 200, got %+v", summary.Days[0])
	}
	if summary.Month.Label != "February" || summary.Month.Year != 2024 {
		t.Errorf("expected label February 2024, got %s %d", summary.Month.Label, summary.Month.Year)
	}
	if len(summary.Month.Items) != 2 || summary.Month.Items[0].Item != "milk" {
		t.Errorf("expected milk first in month items, got %+v", summary.Month.Items)
	}
}

func TestAvailableMonths(t *testing.T) {
	txs := []Transaction{
		tx("milk", 100, "2024-01-03"),
		tx("egg", 45, "2024-02-20"),
	}

	months, err := AvailableMonths(txs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2024-01-03..2024-02-20 spans the January, February and March cycles
	if len(months) != 3 {
		t.Fatalf("expected 3 months, got %d: %+v", len(months), months)
	}
	if months[0].Label != "January" || months[0].Year != 2024 {
		t.Errorf("expected January 2024 first, got %s %d", months[0].Label, months[0].Year)
	}
	if months[2].Label != "March" || months[2].Year != 2024 {
		t.Errorf("expected March 2024 last, got %s %d", months[2].Label, months[2].Year)
	}
	if !months[2].EndDate.Equal(date("2024-02-20")) {
		t.Errorf("expected last cycle clipped to 2024-02-20, got %s",
			months[2].EndDate.Format("2006-01-02"))
	}
}

func TestAvailableMonthsEmpty(t *testing.T) {
	months, err := AvailableMonths(nil)
	if err != nil || months != nil {
		t.Errorf("expected nil/nil for no transactions, got %v, %v", months, err)
	}
}

func TestPeriodContains(t *testing.T) {
	p := BillingPeriod{StartDate: date("2024-01-15"), EndDate: date("2024-02-14")}

	tests := []struct {
		at       time.Time
		expected bool
	}{
		{datetime("2024-01-15 00:00"), true},
		{datetime("2024-02-14 23:59"), true}, // end date is inclusive
		{datetime("2024-01-14 23:59"), false},
		{datetime("2024-02-15 00:00"), false},
	}
	for _, tt := range tests {
		if got := p.Contains(tt.at); got != tt.expected {
			t.Errorf("Contains(%v) = %v, want %v", tt.at, got, tt.expected)
		}
	}
}
