package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// leetMap undoes the cheap character substitutions used to slip words past
// keyword filters. Applied after case folding and diacritic stripping.
var leetMap = map[rune]rune{
	'0': 'o',
	'1': 'i',
	'3': 'e',
	'4': 'a',
	'5': 's',
	'7': 't',
	'8': 'b',
	'9': 'g',
	'@': 'a',
	'$': 's',
	'!': 'i',
	'€': 'e',
	'+': 't',
}

// punctLeet holds map entries that double as ordinary sentence punctuation.
// These only read as a letter when embedded inside a word ("h!jo"); a
// trailing "matar!" must keep its exclamation mark.
var punctLeet = map[rune]struct{}{
	'!': {},
}

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Fold canonicalizes raw user text without touching leetspeak: lower-case,
// diacritics stripped, whitespace collapsed to single spaces. Identifier
// shapes such as emails and URLs survive verbatim.
func Fold(text string) string {
	return collapse(fold(text))
}

// Normalize is Fold plus leetspeak undo, giving the pattern corpus one
// representation per word.
//
// A leet substitution only applies when the character touches a letter
// ("h0la" -> "hola"); standalone digit runs such as phone numbers must reach
// the personal-data patterns intact. Punctuation-shaped substitutions need a
// letter on both sides.
func Normalize(text string) string {
	rs := []rune(fold(text))
	for i, r := range rs {
		sub, ok := leetMap[r]
		if !ok {
			continue
		}
		prevIsLetter := i > 0 && unicode.IsLetter(rs[i-1])
		nextIsLetter := i+1 < len(rs) && unicode.IsLetter(rs[i+1])
		if _, punct := punctLeet[r]; punct {
			if prevIsLetter && nextIsLetter {
				rs[i] = sub
			}
			continue
		}
		if prevIsLetter || nextIsLetter {
			rs[i] = sub
		}
	}
	return collapse(string(rs))
}

func fold(text string) string {
	lowered := strings.ToLower(text)
	stripped, _, err := transform.String(diacriticStripper, lowered)
	if err != nil {
		return lowered
	}
	return stripped
}

func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
