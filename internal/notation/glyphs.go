package notation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	subscriptDigits   = [10]rune{'₀', '₁', '₂', '₃', '₄', '₅', '₆', '₇', '₈', '₉'}
	superscriptDigits = [10]rune{'⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹'}
)

const (
	superPlus  = "⁺"
	superMinus = "⁻"
	subN       = "ₙ"
)

// Subscript maps the ASCII digits of s to subscript glyphs. Every other
// character is copied unchanged.
func Subscript(s string) string {
	return mapDigits(s, &subscriptDigits)
}

// Superscript maps the ASCII digits of s to superscript glyphs. Every other
// character is copied unchanged.
func Superscript(s string) string {
	return mapDigits(s, &superscriptDigits)
}

func mapDigits(s string, glyphs *[10]rune) string {
	if !strings.ContainsAny(s, "0123456789") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(glyphs[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// superSign returns the superscript glyph for an ASCII "+" or "-".
func superSign(sign string) string {
	if sign == "+" {
		return superPlus
	}
	return superMinus
}

func runeBefore(s string, i int) rune {
	if i <= 0 {
		return 0
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return r
}

func runeAfter(s string, i int) rune {
	if i >= len(s) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return r
}

// isWordRune reports letters and decimal digits of any script. Sub- and
// superscript digits are not decimal digits, so they count as boundaries.
func isWordRune(r rune) bool {
	return r != 0 && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
