package internal

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultSimilarityThreshold is the character-set Jaccard bar for merging
// two key-groups. Values much below 0.5 merge unrelated staple names
// ("potato" and "chapati" share 3 of 7 characters), so the shipped
// default is conservative and the bar is configurable.
const DefaultSimilarityThreshold = 0.5

// groupKey normalizes an item name for grouping: lowercase, letters only
// (digits, punctuation and spaces removed). Combining marks stay; Bengali
// vowel signs are category Mn, not L.
func groupKey(item string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(item) {
		if unicode.IsLetter(r) || unicode.IsMark(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// charJaccard is |intersection| / |union| over the rune sets of two keys.
func charJaccard(a, b string) float64 {
	setA := make(map[rune]bool)
	for _, r := range a {
		setA[r] = true
	}
	setB := make(map[rune]bool)
	for _, r := range b {
		setB[r] = true
	}
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}
	inter := 0
	for r := range setA {
		if setB[r] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

// GroupSimilar merges transactions whose item names are superficial
// variants of the same item and rewrites each group to a single display
// name. Returns a new slice; input order is preserved.
func GroupSimilar(txs []Transaction, threshold float64) []Transaction {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	if len(txs) == 0 {
		return nil
	}

	// Primary grouping: exact normalized-key match.
	keyOf := make(map[int]string, len(txs))
	keySet := make(map[string]bool)
	for i, tx := range txs {
		key := groupKey(tx.Item)
		if key == "" {
			key = strings.ToLower(tx.Item)
		}
		keyOf[i] = key
		keySet[key] = true
	}

	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Secondary merge: union keys whose character sets are similar enough.
	// O(n^2) over distinct keys; fine at chat-history scale.
	parent := make(map[string]string, len(keys))
	for _, k := range keys {
		parent[k] = k
	}
	var find func(string) string
	find = func(k string) string {
		if parent[k] != k {
			parent[k] = find(parent[k])
		}
		return parent[k]
	}
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if charJaccard(keys[i], keys[j]) > threshold {
				parent[find(keys[j])] = find(keys[i])
			}
		}
	}

	// Elect a display name per merged group: most frequent original
	// string; ties go to the shortest name not starting with a digit.
	freq := make(map[string]map[string]int) // root -> item -> count
	for i, tx := range txs {
		root := find(keyOf[i])
		if freq[root] == nil {
			freq[root] = make(map[string]int)
		}
		freq[root][tx.Item]++
	}

	display := make(map[string]string, len(freq))
	for root, counts := range freq {
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			a, b := names[i], names[j]
			if counts[a] != counts[b] {
				return counts[a] > counts[b]
			}
			if da, db := startsWithDigit(a), startsWithDigit(b); da != db {
				return !da
			}
			if len(a) != len(b) {
				return len(a) < len(b)
			}
			return a < b
		})
		display[root] = names[0]
	}

	out := make([]Transaction, len(txs))
	copy(out, txs)
	for i := range out {
		out[i].Item = display[find(keyOf[i])]
	}
	return out
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}
