package internal

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestPrintJSON(t *testing.T) {
	txs := []Transaction{
		{ID: "a1", Date: datetime("2024-01-20 10:00"), Sender: "monir", Item: "milk", Amount: 100},
	}
	bills := []MonthBill{{
		Period: BillingPeriod{StartDate: date("2024-01-15"), EndDate: date("2024-02-14")},
		Label:  "February",
		Year:   2024,
		Items:  []BillItem{{Item: "milk", Quantity: 1, UnitPrice: 100, TotalPrice: 100}},
		Total:  100,
	}}
	summary := ParseSummary{TotalLines: 1, MatchedLines: 1, Transactions: 1}

	var buf bytes.Buffer
	if err := PrintJSON(&buf, txs, bills, summary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(out.Transactions) != 1 || out.Transactions[0].Item != "milk" {
		t.Errorf("unexpected transactions %+v", out.Transactions)
	}
	if out.Transactions[0].Date != "2024-01-20 10:00" {
		t.Errorf("unexpected date format %q", out.Transactions[0].Date)
	}
	if len(out.Bills) != 1 || out.Bills[0].Label != "February" || out.Bills[0].Total != 100 {
		t.Errorf("unexpected bills %+v", out.Bills)
	}
	if out.Summary.GrandTotal != 100 {
		t.Errorf("expected grand total 100, got %v", out.Summary.GrandTotal)
	}
}

func TestPrintMonthBillEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintMonthBill(&buf, MonthBill{
		Period: BillingPeriod{StartDate: date("2024-01-15"), EndDate: date("2024-02-14")},
		Label:  "February",
		Year:   2024,
	})
	if !strings.Contains(buf.String(), "no purchases") {
		t.Errorf("expected an empty-cycle notice, got %q", buf.String())
	}
}

func TestPrintParseSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintParseSummary(&buf, ParseSummary{TotalLines: 4, MatchedLines: 4, Transactions: 4})
	got := buf.String()
	if !strings.Contains(got, "4 lines") || !strings.Contains(got, "4 transactions") {
		t.Errorf("unexpected summary line %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly ten..", 13, "exactly ten.."},
		{"this is far too long", 10, "this is .."},
		{"ডিম এবং দুধ কিনেছি আজকে", 10, "ডিম এবং .."},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
		}
	}
}
