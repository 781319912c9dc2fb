package internal

import "testing"

func TestMapToCanonical(t *testing.T) {
	vocab := NewVocabulary(nil)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"exact match", "alo", "potato"},
		{"exact match uppercase", "ALO", "potato"},
		{"bengali term", "ডিম", "egg"},
		{"trailing digits stripped", "tel173", "oil"},
		{"alias with digits in key", "koyel60", "quail egg"},
		{"typo within two chars", "chinii", "sugar"},
		{"unknown passes through", "horlicks", "horlicks"},
		{"unknown is lowercased", "Horlicks", "horlicks"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := vocab.MapToCanonical(tt.input)
			if got != tt.expected {
				t.Errorf("MapToCanonical(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMapToCanonicalNeverFails(t *testing.T) {
	vocab := NewVocabulary(nil)
	// worst case is a passthrough, never an empty result for non-empty input
	for _, input := range []string{"x", "12abc", "অজানা", "véry-odd"} {
		if got := vocab.MapToCanonical(input); got == "" {
			t.Errorf("MapToCanonical(%q) returned empty", input)
		}
	}
}

func TestVocabularyExtraAliases(t *testing.T) {
	vocab := NewVocabulary(map[string]string{
		"alo":  "sweet potato", // overrides the built-in
		"keya": "soap",
	})

	if got := vocab.MapToCanonical("alo"); got != "sweet potato" {
		t.Errorf("user alias should override built-in, got %q", got)
	}
	if got := vocab.MapToCanonical("keya"); got != "soap" {
		t.Errorf("user alias not applied, got %q", got)
	}
}

func TestVocabularyHas(t *testing.T) {
	vocab := NewVocabulary(nil)
	if !vocab.Has("koyel60") {
		t.Error("expected koyel60 to be a known alias key")
	}
	if vocab.Has("tel173") {
		t.Error("tel173 is not an alias key; only its stripped form is")
	}
}
