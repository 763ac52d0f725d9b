// Package arabic canonicalizes Arabic free text so that user answers
// compare reliably against accepted answers regardless of diacritics,
// letter variants, or stray whitespace.
package arabic

import "strings"

// letterFolds maps interchangeable Arabic letter variants to a single
// canonical form.
var letterFolds = map[rune]rune{
	'أ': 'ا',
	'إ': 'ا',
	'آ': 'ا',
	'ة': 'ه',
	'ى': 'ي',
	'ؤ': 'و',
	'ئ': 'ي',
}

// Normalize canonicalizes free text for answer comparison:
//  1. Trim surrounding whitespace and lower-case (a no-op for Arabic,
//     harmless for Latin and digit answers).
//  2. Strip the tashkil combining marks (U+064B-U+065F and U+0670).
//  3. Unify letter variants (hamza forms, taa marbuta, alif maqsura).
//  4. Collapse internal whitespace runs to single spaces.
//
// Normalize never fails and always returns a string, possibly empty.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isDiacritic(r) {
			continue
		}
		if folded, ok := letterFolds[r]; ok {
			r = folded
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// FirstLetter returns the first rune of the normalized form of s,
// or an empty string when nothing remains after normalization.
func FirstLetter(s string) string {
	for _, r := range Normalize(s) {
		return string(r)
	}
	return ""
}

// LetterCount reports the number of runes in the normalized form of s.
func LetterCount(s string) int {
	return len([]rune(Normalize(s)))
}

func isDiacritic(r rune) bool {
	return (r >= 0x064B && r <= 0x065F) || r == 0x0670
}
