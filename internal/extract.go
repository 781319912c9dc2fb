package internal

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// CandidateKind tags which strategy produced an item/amount pair, so
// downstream merging can dispatch on provenance.
type CandidateKind string

const (
	KindSpaced          CandidateKind = "spaced"
	KindConcatenated    CandidateKind = "concatenated"
	KindStructuredTotal CandidateKind = "structuredTotal"
	KindMultiword       CandidateKind = "multiword"
)

// Candidate is one extracted item/amount pair before vocabulary mapping.
type Candidate struct {
	Kind   CandidateKind
	Item   string
	Amount float64
}

// MaxItemAmount is the default upper bound for a single item price.
// Larger numbers in chat text are phone numbers, totals, or noise.
const MaxItemAmount = 1000

// rejectWords are tokens that are never item names: system vocabulary,
// month names, sender names, transaction-log words, URL fragments.
var rejectWords = map[string]bool{
	"am": true, "pm": true, "the": true, "and": true, "for": true,
	"total": true, "tk": true, "taka": true, "cash": true, "bill": true,
	"balance": true, "fee": true, "charge": true, "sent": true,
	"received": true, "payment": true, "trxid": true, "ref": true, "mot": true,
	"http": true, "https": true, "www": true, "com": true,
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
	"jan": true, "feb": true, "mar": true, "apr": true, "jun": true,
	"jul": true, "aug": true, "sep": true, "oct": true, "nov": true,
	"dec": true,
	"monir": true,
	"মোট": true, "বিকাশ": true, "নগদ": true, "ক্রয়": true, "বাজার": true,
	"জানুয়ারি": true, "ফেব্রুয়ারি": true, "মার্চ": true, "এপ্রিল": true,
	"মে": true, "জুন": true, "জুলাই": true, "আগস্ট": true,
	"সেপ্টেম্বর": true, "অক্টোবর": true, "নভেম্বর": true, "ডিসেম্বর": true,
}

var (
	// "tel173" in a single token
	concatenatedPattern = regexp.MustCompile(
		`^([A-Za-z\x{0980}-\x{09FF}]+)(\d+(?:\.\d+)?)$`)

	// number token, integer or decimal
	numberPattern = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

	// "মোট 350" / "total 350": an authoritative purchased-amount keyword
	structuredTotalPattern = regexp.MustCompile(
		`(?i)(?:মোট|total|mot)\D{0,12}?(\d+(?:\.\d+)?)`)
)

// maxMultiwordLen bounds a multi-word item name (letters and spaces).
const maxMultiwordLen = 20

// Extractor turns a normalized message body into candidate pairs.
type Extractor struct {
	vocab     *Vocabulary
	reject    map[string]bool
	maxAmount float64
}

// NewExtractor builds an extractor. extraReject entries are added to the
// built-in rejection list; maxAmount <= 0 falls back to MaxItemAmount.
func NewExtractor(vocab *Vocabulary, extraReject []string, maxAmount float64) *Extractor {
	reject := make(map[string]bool, len(rejectWords)+len(extraReject))
	for w := range rejectWords {
		reject[w] = true
	}
	for _, w := range extraReject {
		reject[strings.ToLower(strings.TrimSpace(w))] = true
	}
	if maxAmount <= 0 {
		maxAmount = MaxItemAmount
	}
	return &Extractor{vocab: vocab, reject: reject, maxAmount: maxAmount}
}

// Extract applies every strategy in order and accumulates all valid
// candidates. Duplicates across strategies are expected; the synthesizer
// reconciles them.
func (e *Extractor) Extract(body string) []Candidate {
	text := Normalize(body)
	if text == "" {
		return nil
	}

	var out []Candidate
	out = append(out, e.extractStructuredTotal(text)...)
	out = append(out, e.extractSpaced(text)...)
	out = append(out, e.extractConcatenated(text)...)
	out = append(out, e.extractMultiword(text)...)
	return out
}

// extractStructuredTotal handles "total purchased amount" blocks. When the
// text names exactly one item alongside a total keyword and carries no
// per-item numbers, the whole total belongs to that item. Totals are
// exempt from the per-item amount cap.
func (e *Extractor) extractStructuredTotal(text string) []Candidate {
	m := structuredTotalPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	total, err := strconv.ParseFloat(m[1], 64)
	if err != nil || total <= 0 {
		return nil
	}

	// Per-item numbers adjacent to item tokens win over the block total.
	if len(e.extractSpaced(text)) > 0 || len(e.extractConcatenated(text)) > 0 {
		return nil
	}

	// Collect the described items: letter tokens that pass the filters.
	var items []string
	for _, tok := range cleanTokens(text) {
		if !isLetterToken(tok) {
			continue
		}
		if e.reject[strings.ToLower(tok)] {
			continue
		}
		items = append(items, tok)
	}
	if len(items) != 1 {
		return nil
	}

	return []Candidate{{Kind: KindStructuredTotal, Item: items[0], Amount: total}}
}

// extractSpaced pairs a letter token immediately followed by a number
// token, e.g. "milk 100".
func (e *Extractor) extractSpaced(text string) []Candidate {
	tokens := cleanTokens(text)
	var out []Candidate
	for i := 0; i+1 < len(tokens); i++ {
		if !isLetterToken(tokens[i]) || !numberPattern.MatchString(tokens[i+1]) {
			continue
		}
		if c, ok := e.makeCandidate(KindSpaced, tokens[i], tokens[i+1]); ok {
			out = append(out, c)
		}
	}
	return out
}

func (e *Extractor) extractConcatenated(text string) []Candidate {
	var out []Candidate
	for _, tok := range cleanTokens(text) {
		m := concatenatedPattern.FindStringSubmatch(tok)
		if m == nil {
			continue
		}
		// A token like "koyel60" may itself be a vocabulary alias for a
		// corrected item name; if so it is not an item+amount pair.
		if e.vocab != nil && e.vocab.Has(tok) {
			continue
		}
		if c, ok := e.makeCandidate(KindConcatenated, m[1], m[2]); ok {
			out = append(out, c)
		}
	}
	return out
}

// extractMultiword pairs a run of two or more letter tokens (joined name
// at most maxMultiwordLen characters) with the number that follows,
// e.g. "quail egg 90". Single-word pairs belong to the spaced strategy.
func (e *Extractor) extractMultiword(text string) []Candidate {
	tokens := cleanTokens(text)
	var out []Candidate
	for j := 2; j < len(tokens); j++ {
		if !numberPattern.MatchString(tokens[j]) {
			continue
		}
		// collect the longest run of letter tokens ending just before j
		start := j
		for start > 0 && isLetterToken(tokens[start-1]) {
			if len(strings.Join(tokens[start-1:j], " ")) > maxMultiwordLen {
				break
			}
			start--
		}
		if j-start < 2 {
			continue
		}
		item := strings.Join(tokens[start:j], " ")
		if c, ok := e.makeCandidate(KindMultiword, item, tokens[j]); ok {
			out = append(out, c)
		}
	}
	return out
}

// cleanTokens splits on whitespace and trims stray punctuation.
func cleanTokens(text string) []string {
	fields := strings.Fields(text)
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,:;()[]-")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// makeCandidate applies the validity filters shared by every strategy.
func (e *Extractor) makeCandidate(kind CandidateKind, item, amountStr string) (Candidate, bool) {
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 || amount > e.maxAmount {
		return Candidate{}, false
	}

	item = strings.TrimSpace(item)
	if !hasLetter(item) {
		return Candidate{}, false
	}
	for _, word := range strings.Fields(strings.ToLower(item)) {
		if e.reject[word] {
			return Candidate{}, false
		}
	}

	return Candidate{Kind: kind, Item: item, Amount: amount}, true
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// isLetterToken accepts combining marks alongside letters; Bengali vowel
// signs are category Mn, not L.
func isLetterToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsMark(r) {
			return false
		}
	}
	return true
}
