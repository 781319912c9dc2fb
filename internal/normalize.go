package internal

import "strings"

// bengaliDigits maps Bengali numerals to Western digits, one rune each.
var bengaliDigits = map[rune]rune{
	'০': '0',
	'১': '1',
	'২': '2',
	'৩': '3',
	'৪': '4',
	'৫': '5',
	'৬': '6',
	'৭': '7',
	'৮': '8',
	'৯': '9',
}

// bengaliNumberWords translates a small set of spelled-out Bengali numbers.
// Best effort only; anything not listed passes through untouched. Ordered
// so longer phrases are replaced before their substrings.
var bengaliNumberWords = []struct {
	word   string
	digits string
}{
	{"এক হাজার", "1000"},
	{"পাঁচশ", "500"},
	{"দুইশ", "200"},
	{"একশ", "100"},
	{"নব্বই", "90"},
	{"আশি", "80"},
	{"সত্তর", "70"},
	{"ষাট", "60"},
	{"পঞ্চাশ", "50"},
	{"চল্লিশ", "40"},
	{"ত্রিশ", "30"},
	{"বিশ", "20"},
	{"দশ", "10"},
}

// boilerplate substrings stripped before extraction: the exported chat
// carries payment-app phrases and label words that are never item names.
var boilerplatePhrases = []string{
	"বিবরণ:",
	"বিবরণ",
	"আপনার একাউন্টে",
	"সফল হয়েছে",
	"টাকা",
	"taka",
	"tk.",
	"<Media omitted>",
	"This message was deleted",
}

// Normalize converts Bengali numerals and number-words to Western digits,
// strips boilerplate, and collapses whitespace. Pure and idempotent.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if d, ok := bengaliDigits[r]; ok {
			b.WriteRune(d)
		} else {
			b.WriteRune(r)
		}
	}
	s := b.String()

	for _, nw := range bengaliNumberWords {
		s = strings.ReplaceAll(s, nw.word, nw.digits)
	}
	for _, phrase := range boilerplatePhrases {
		s = strings.ReplaceAll(s, phrase, " ")
	}

	return strings.Join(strings.Fields(s), " ")
}
