package internal

import (
	"sort"
	"time"
)

// Default duplicate windows. The 1-day window exists so that re-uploading
// overlapping chat export files does not create duplicate ledger entries.
const (
	strictDupWindow = 5 * time.Minute
	looseDupWindow  = 24 * time.Hour
	noTextDupWindow = 30 * time.Minute
)

// Deduplicate drops transactions that are almost certainly re-parses of
// the same real-world purchase. Two transactions with equal sender, item
// and amount are duplicates when their timestamps are under 5 minutes
// apart, or under 1 day apart with near-identical original text (edit
// distance below 10% of the longer text), or under 30 minutes apart when
// no text comparison is possible. Returns the kept set and the drop count.
func Deduplicate(txs []Transaction) ([]Transaction, int) {
	if len(txs) < 2 {
		return txs, 0
	}

	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var kept []Transaction
	dropped := 0
	for _, tx := range sorted {
		dup := false
		for i := len(kept) - 1; i >= 0; i-- {
			prev := kept[i]
			gap := tx.Date.Sub(prev.Date)
			if gap >= looseDupWindow {
				break // kept is date-ordered; nothing earlier can match
			}
			if prev.Sender != tx.Sender || prev.Item != tx.Item || prev.Amount != tx.Amount {
				continue
			}
			if isDuplicate(prev, tx, gap) {
				dup = true
				break
			}
		}
		if dup {
			dropped++
			continue
		}
		kept = append(kept, tx)
	}
	return kept, dropped
}

func isDuplicate(a, b Transaction, gap time.Duration) bool {
	if gap < 0 {
		gap = -gap
	}
	if gap < strictDupWindow {
		return true
	}
	if gap >= looseDupWindow {
		return false
	}
	if a.OriginalMessage == "" || b.OriginalMessage == "" {
		return gap < noTextDupWindow
	}
	longer := len(a.OriginalMessage)
	if len(b.OriginalMessage) > longer {
		longer = len(b.OriginalMessage)
	}
	dist := levenshtein(a.OriginalMessage, b.OriginalMessage)
	return float64(dist) < 0.1*float64(longer)
}

// levenshtein computes edit distance over runes with a two-row table.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
