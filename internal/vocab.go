package internal

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultAliases maps transliterations, common misspellings and Bengali
// terms to canonical English item names. Merged with user-supplied aliases
// from the config file (user entries win).
var DefaultAliases = map[string]string{
	// vegetables
	"alo":     "potato",
	"aloo":    "potato",
	"alu":     "potato",
	"আলু":     "potato",
	"peyaj":   "onion",
	"piyaj":   "onion",
	"পেঁয়াজ":  "onion",
	"roshun":  "garlic",
	"রসুন":    "garlic",
	"ada":     "ginger",
	"আদা":     "ginger",
	"begun":   "eggplant",
	"বেগুন":   "eggplant",
	"shak":    "greens",
	"শাক":     "greens",
	"tomato":  "tomato",
	"টমেটো":   "tomato",
	"shosha":  "cucumber",
	"শসা":     "cucumber",

	// staples
	"chal":  "rice",
	"chaul": "rice",
	"চাল":   "rice",
	"atta":  "flour",
	"আটা":   "flour",
	"dal":   "lentils",
	"ডাল":   "lentils",
	"chini": "sugar",
	"চিনি":  "sugar",
	"lobon": "salt",
	"লবণ":   "salt",
	"tel":   "oil",
	"তেল":   "oil",

	// protein & dairy
	"dim":      "egg",
	"ডিম":      "egg",
	"koyel":    "quail egg",
	"koyel60":  "quail egg",
	"dudh":     "milk",
	"দুধ":      "milk",
	"milk":     "milk",
	"mach":     "fish",
	"maach":    "fish",
	"মাছ":      "fish",
	"murgi":    "chicken",
	"মুরগি":    "chicken",
	"gorur":    "beef",
	"goru":     "beef",

	// spices & misc
	"morich":  "chili",
	"মরিচ":    "chili",
	"holud":   "turmeric",
	"হলুদ":    "turmeric",
	"jira":    "cumin",
	"জিরা":    "cumin",
	"chapati": "chapati",
	"ruti":    "flatbread",
	"রুটি":    "flatbread",
	"biscuit": "biscuit",
	"cha":     "tea",
	"চা":      "tea",
	"saban":   "soap",
	"সাবান":   "soap",
}

// Vocabulary resolves raw item tokens to canonical names.
type Vocabulary struct {
	aliases map[string]string
	keys    []string // sorted, so fuzzy lookup is deterministic
}

// NewVocabulary builds a vocabulary from the default alias table plus any
// extra aliases; extra entries override defaults on key collision.
func NewVocabulary(extra map[string]string) *Vocabulary {
	aliases := make(map[string]string, len(DefaultAliases)+len(extra))
	for k, v := range DefaultAliases {
		aliases[strings.ToLower(k)] = v
	}
	for k, v := range extra {
		aliases[strings.ToLower(strings.TrimSpace(k))] = v
	}
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &Vocabulary{aliases: aliases, keys: keys}
}

// Has reports whether the token (case-insensitive) is a known alias key.
// Used by the extractor to recognize corrected names like "koyel60" that
// would otherwise be misread as item+amount.
func (v *Vocabulary) Has(token string) bool {
	_, ok := v.aliases[strings.ToLower(strings.TrimSpace(token))]
	return ok
}

// MapToCanonical resolves a raw item token. Lookup order: exact match,
// exact match with trailing digits stripped, then a substring containment
// match against keys within 2 characters of the candidate's length.
// Unknown tokens are returned lowercased/trimmed, never dropped.
func (v *Vocabulary) MapToCanonical(raw string) string {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return token
	}

	if name, ok := v.aliases[token]; ok {
		return name
	}

	stripped := strings.TrimRightFunc(token, unicode.IsDigit)
	if stripped != token {
		if name, ok := v.aliases[stripped]; ok {
			return name
		}
	}

	// Typo tolerance: containment either way, with lengths within 2 runes.
	tokenLen := len([]rune(token))
	for _, key := range v.keys {
		keyLen := len([]rune(key))
		diff := keyLen - tokenLen
		if diff < -2 || diff > 2 {
			continue
		}
		if strings.Contains(token, key) || strings.Contains(key, token) {
			return v.aliases[key]
		}
	}

	return token
}
