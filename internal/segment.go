package internal

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// LineKind classifies each input line during segmentation.
type LineKind int

const (
	// LineMessage carries the target sender's context and goes to extraction.
	LineMessage LineKind = iota
	// LineOtherSender carries another sender's context and is dropped.
	LineOtherSender
	// LineDateMarker is a bare date line; it updates the carried date only.
	LineDateMarker
	// LineBlank is empty or whitespace.
	LineBlank
	// LineOrphan matched no pattern and had no carried context.
	LineOrphan
)

// SegmentedLine is one input line with its carried sender/date context.
type SegmentedLine struct {
	Number int
	Kind   LineKind
	Sender string
	Date   time.Time
	Text   string
}

var (
	// 03/01/2024, 9:35 pm - Monir: milk 100
	headerPattern = regexp.MustCompile(
		`^(\d{1,2})/(\d{1,2})/(\d{4}),\s*(\d{1,2}):(\d{2})\s*(?i:(am|pm))?\s*-\s*([^:]+):\s*(.*)$`)

	// 5 জানুয়ারি 2024  /  5 January 2024 (after digit normalization)
	bareDatePattern = regexp.MustCompile(
		`^(\d{1,2})\s+([\p{L}\x{0980}-\x{09FF}]+)\s*,?\s*(\d{4})$`)
)

var monthNames = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
	"জানুয়ারি": time.January, "ফেব্রুয়ারি": time.February, "মার্চ": time.March,
	"এপ্রিল": time.April, "মে": time.May, "জুন": time.June,
	"জুলাই": time.July, "আগস্ট": time.August, "সেপ্টেম্বর": time.September,
	"অক্টোবর": time.October, "নভেম্বর": time.November, "ডিসেম্বর": time.December,
}

// messageContext is the sender/date state carried across lines. It is
// passed by value through the fold; lines never mutate shared state.
type messageContext struct {
	sender string
	date   time.Time
	valid  bool
}

// SegmentLines walks the raw chat export and attaches carried sender/date
// context to every line. Lines from senders other than target are marked
// LineOtherSender and never reach extraction.
func SegmentLines(rawText, target string) []SegmentedLine {
	if rawText == "" {
		return nil
	}
	target = strings.ToLower(strings.TrimSpace(target))
	lines := strings.Split(strings.ReplaceAll(rawText, "\r\n", "\n"), "\n")

	var out []SegmentedLine
	var ctx messageContext

	for i, raw := range lines {
		number := i + 1
		line := strings.TrimSpace(raw)

		if line == "" {
			out = append(out, SegmentedLine{Number: number, Kind: LineBlank, Text: raw})
			continue
		}

		if m := headerPattern.FindStringSubmatch(line); m != nil {
			date, ok := parseHeaderDate(m)
			if ok {
				ctx = messageContext{
					sender: strings.ToLower(strings.TrimSpace(m[7])),
					date:   date,
					valid:  true,
				}
				out = append(out, classify(number, ctx, m[8], target))
				continue
			}
			// header shape but impossible date: fall through to orphan handling
		}

		if d, ok := parseBareDate(Normalize(line)); ok {
			if ctx.valid {
				ctx.date = d
			} else {
				ctx = messageContext{date: d}
			}
			out = append(out, SegmentedLine{Number: number, Kind: LineDateMarker, Date: d, Text: raw})
			continue
		}

		if ctx.valid {
			// continuation of the current message
			out = append(out, classify(number, ctx, line, target))
			continue
		}

		out = append(out, SegmentedLine{Number: number, Kind: LineOrphan, Text: raw})
	}

	return out
}

func classify(number int, ctx messageContext, body, target string) SegmentedLine {
	kind := LineOtherSender
	if ctx.sender == target {
		kind = LineMessage
	}
	return SegmentedLine{
		Number: number,
		Kind:   kind,
		Sender: ctx.sender,
		Date:   ctx.date,
		Text:   body,
	}
}

// parseHeaderDate builds the timestamp from header submatches. Times are
// local wall-clock; pm adds 12 hours unless the hour is already 12, and
// 12 am becomes hour 0.
func parseHeaderDate(m []string) (time.Time, bool) {
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])

	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 {
		return time.Time{}, false
	}

	switch strings.ToLower(m[6]) {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local), true
}

// parseBareDate matches a "day month-name year" marker line.
func parseBareDate(line string) (time.Time, bool) {
	m := bareDatePattern.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, false
	}
	month, ok := monthNames[strings.ToLower(m[2])]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local), true
}
