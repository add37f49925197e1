package service

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minFuzzyRunes is the shortest search term that tolerates a typo.
const minFuzzyRunes = 4

// foldCity lowercases s and strips diacritics, so "Plzeň" and "plzen" compare equal.
func foldCity(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// cityMatches reports whether a folded city matches a folded search term:
// by prefix, or for longer terms by a prefix at most one edit away.
func cityMatches(city, term string) bool {
	if term == "" {
		return true
	}
	if strings.HasPrefix(city, term) {
		return true
	}
	termRunes := []rune(term)
	if len(termRunes) < minFuzzyRunes {
		return false
	}
	cityRunes := []rune(city)
	if len(cityRunes) > len(termRunes) {
		cityRunes = cityRunes[:len(termRunes)]
	}
	return levenshtein.ComputeDistance(string(cityRunes), term) <= 1
}
