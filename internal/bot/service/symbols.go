package service

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxSymbolLength = 5

var symbolDelimiters = strings.NewReplacer(
	"\r", " ",
	"\n", " ",
	"\t", " ",
	",", " ",
	".", " ",
	";", " ",
)

// ExtractSymbols turns a free-form chat topic into uppercase tokens.
// Order is kept and duplicates are not removed.
func ExtractSymbols(raw string) []string {
	var symbols []string
	for _, token := range strings.Split(symbolDelimiters.Replace(raw), " ") {
		if token == "" {
			continue
		}
		symbols = append(symbols, strings.ToUpper(token))
	}
	return symbols
}

// ValidSymbol reports whether s looks like a ticker: 1 to 5 letters.
func ValidSymbol(s string) bool {
	n := utf8.RuneCountInString(s)
	if n == 0 || n > maxSymbolLength {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
