package person

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// generationalSuffixes are dropped when they appear as trailing whole tokens.
var generationalSuffixes = map[string]struct{}{
	"jr":  {},
	"sr":  {},
	"ii":  {},
	"iii": {},
	"iv":  {},
}

// Normalize lowercases a name, strips punctuation, collapses whitespace, and
// removes trailing generational suffixes ("Jr", "III", ...).
func Normalize(name string) string {
	lowered := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	tokens := strings.Fields(b.String())
	for len(tokens) > 0 {
		if _, ok := generationalSuffixes[tokens[len(tokens)-1]]; !ok {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

// Split breaks a normalized name into first, last, and middle tokens. One
// token is treated as a first name only; with three or more, everything
// between the first and final token is middle.
func Split(normalized string) (first, last string, middles []string) {
	tokens := strings.Fields(normalized)
	switch len(tokens) {
	case 0:
		return "", "", nil
	case 1:
		return tokens[0], "", nil
	case 2:
		return tokens[0], tokens[1], nil
	default:
		return tokens[0], tokens[len(tokens)-1], tokens[1 : len(tokens)-1]
	}
}

var titleCaser = cases.Title(language.Und)

// DisplayName renders a stored name for human-facing output with title
// casing. Already-cased input is left close to what was entered.
func DisplayName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	if trimmed == strings.ToLower(trimmed) || trimmed == strings.ToUpper(trimmed) {
		return titleCaser.String(strings.ToLower(trimmed))
	}
	return trimmed
}
