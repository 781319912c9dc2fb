package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Parse runs the full pipeline over a raw chat export: segment lines,
// extract item/amount pairs, synthesize transactions, group near-duplicate
// item names, and drop re-parsed duplicates. It never fails on malformed
// input; problems are returned as ParseError and Diagnostic values.
func Parse(rawText string, cfg *Config) ParseResult {
	start := time.Now()
	if cfg == nil {
		cfg = NewDefaultConfig()
	}

	vocab := NewVocabulary(cfg.Aliases)
	extractor := NewExtractor(vocab, cfg.RejectWords, cfg.MaxItemAmount)
	lines := SegmentLines(rawText, cfg.TargetSender)

	var result ParseResult
	now := time.Now()

	for _, line := range lines {
		switch line.Kind {
		case LineBlank, LineDateMarker, LineOtherSender:
			result.Summary.SkippedLines++

		case LineOrphan:
			result.Summary.FailedLines++
			result.Errors = append(result.Errors, ParseError{
				Line:         line.Number,
				Message:      "line matches no message header or date pattern",
				OriginalText: line.Text,
			})

		case LineMessage:
			candidates := reconcile(extractor.Extract(line.Text))
			if len(candidates) == 0 {
				result.Summary.ReviewLines++
				result.NeedsReview = append(result.NeedsReview, Diagnostic{
					Line:   line.Number,
					Sender: line.Sender,
					Date:   line.Date,
					Text:   line.Text,
					Reason: "no amount could be associated with this message",
				})
				continue
			}

			produced := 0
			for _, c := range candidates {
				item := vocab.MapToCanonical(c.Item)
				if item == "" || c.Amount <= 0 {
					continue // invalid record; the rest of the parse goes on
				}
				result.Transactions = append(result.Transactions, Transaction{
					ID:              uuid.NewString(),
					Date:            line.Date,
					Sender:          line.Sender,
					Item:            item,
					Amount:          c.Amount,
					OriginalMessage: line.Text,
					CreatedAt:       now,
					UpdatedAt:       now,
				})
				produced++
			}
			if produced > 0 {
				result.Summary.MatchedLines++
			} else {
				result.Summary.ReviewLines++
				result.NeedsReview = append(result.NeedsReview, Diagnostic{
					Line:   line.Number,
					Sender: line.Sender,
					Date:   line.Date,
					Text:   line.Text,
					Reason: "extracted pairs failed validation",
				})
			}
		}
		result.Summary.TotalLines++
	}

	grouped := GroupSimilar(result.Transactions, cfg.SimilarityThreshold)
	deduped, dropped := Deduplicate(grouped)

	result.Transactions = deduped
	result.Summary.Transactions = len(deduped)
	result.Summary.DuplicatesSkipped = dropped
	result.Summary.ProcessingTime = time.Since(start)
	return result
}

// reconcile resolves duplicate pairs across strategies. A structured
// total supersedes any per-item pairs from the same message; otherwise
// identical (item, amount) pairs found by multiple strategies collapse
// to one.
func reconcile(candidates []Candidate) []Candidate {
	var totals []Candidate
	for _, c := range candidates {
		if c.Kind == KindStructuredTotal {
			totals = append(totals, c)
		}
	}
	if len(totals) > 0 {
		return totals
	}

	seen := make(map[string]bool, len(candidates))
	var out []Candidate
	for _, c := range candidates {
		key := fmt.Sprintf("%s|%.2f", c.Item, c.Amount)
		if seen[key] {
			continue
		}
		// A spaced pair is subsumed by a multiword pair ending in the
		// same word with the same amount ("egg 90" vs "quail egg 90").
		if c.Kind == KindSpaced && subsumedByMultiword(c, candidates) {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

func subsumedByMultiword(c Candidate, candidates []Candidate) bool {
	for _, other := range candidates {
		if other.Kind != KindMultiword || other.Amount != c.Amount {
			continue
		}
		if strings.HasSuffix(other.Item, " "+c.Item) {
			return true
		}
	}
	return false
}
