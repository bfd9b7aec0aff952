package utils

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents decomposes, drops combining marks and recomposes, so "Cópacábana"
// becomes "Copacabana".
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeText lowercases s and strips its diacritics. Every comparison
// between search criteria and listing text goes through this function.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	result, _, err := transform.String(foldAccents, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return result
}

// DigitsOnly removes every character of s that is not an ASCII digit.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// ParseDigits strips non-digits from s and parses what is left.
// It returns nil when s carries no digit at all.
//
// Grouping and decimal separators are discarded too, so "R$ 1.200,50"
// parses as 120050.
func ParseDigits(s string) *float64 {
	digits := DigitsOnly(s)
	if digits == "" {
		return nil
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return nil
	}
	return &v
}

// HasLetter reports whether s contains at least one Unicode letter.
func HasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
