package extractor

import (
	"strings"
	"unicode/utf8"
)

// normalize lower-cases and trims. Missing or malformed (invalid UTF-8)
// text is just "".
func normalize(s string) string {
	if !utf8.ValidString(s) {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if p != "" && strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// Classify returns the first category, in declared order, with a phrase that
// occurs in text. No match gives tax.Fallback.
func Classify(text string, tax Taxonomy) string {
	t := normalize(text)
	if t == "" {
		return tax.Fallback
	}
	for _, c := range tax.Categories {
		if containsAny(t, c.Phrases) {
			return c.Label
		}
	}
	return tax.Fallback
}

// ProductArea and IssueType are independent lookups over the same text, so
// the two labels can disagree (a billing product with a bug issue type).
func ProductArea(text string) string {
	return Classify(text, productTaxonomy)
}

func IssueType(text string) string {
	return Classify(text, issueTypeTaxonomy)
}
