package notation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// stage is one rewrite of the pipeline. Stages run in declaration order and
// each one sees the output of the previous stage.
type stage struct {
	name  string
	apply func(string) string
}

// Precompiled patterns, one per stage that needs one.
var (
	deltaRegex      = regexp.MustCompile(`(?i)\bdelta\b`)
	complexIonRegex = regexp.MustCompile(`\[([^\[\]]*[A-Z][^\[\]]*)\](?:\((\d*)([+-])\)|(\d*)([+-]))`)
	oxidationRegex  = regexp.MustCompile(`([A-Z][a-z]?)\(([+-])(\d+)\)`)
	polymerRegex    = regexp.MustCompile(`\(([A-Za-z0-9=\-]*[A-Z][A-Za-z0-9=\-]*)\)n`)
	isotopeRegex    = regexp.MustCompile(`(\d{1,3})([A-Z][a-z]?)(\d{1,3})`)
	orbitalRegex    = regexp.MustCompile(`([1-7])([spdf])(\d{1,2})`)
	concSignRegex   = regexp.MustCompile(`\[(?:([A-Za-z][A-Za-z0-9]*)\(([+-])\)|([A-Za-z0-9]*[A-Za-z])([+-]))\]`)
	concChargeRegex = regexp.MustCompile(`\[([A-Za-z][A-Za-z0-9]*?)(?:\((\d+)([+-])\)|(\d)([+-]))\]`)
	electronRegex   = regexp.MustCompile(`(\d*)e`)
	coefGroupRegex  = regexp.MustCompile(`\(([^()]+)\)([A-Z][A-Za-z0-9]*)`)
	groupRegex      = regexp.MustCompile(`\(([A-Z][A-Za-z0-9]*)\)(\d*)`)
	chargeRegex     = regexp.MustCompile(`([A-Z][A-Za-z0-9]*)\((\d*)([+-])\)`)
	formulaRegex    = regexp.MustCompile(`(-?)(\d*)([A-Z][A-Za-z0-9]*)(\([a-z]{1,5}\))?`)

	arrowReplacer = strings.NewReplacer("<=>", "⇌", "<=", "⇌", "->", "→")
)

// pipeline is ordered from the most specific notation to the most general.
// Later stages must not see ASCII markers that earlier stages already
// rewrote, which is why the catch-all formula stage runs last.
var pipeline = []stage{
	{"arrows", arrowReplacer.Replace},
	{"triple_bond", func(s string) string { return strings.ReplaceAll(s, "=-", "≡") }},
	{"delta", func(s string) string { return deltaRegex.ReplaceAllString(s, "Δ") }},
	{"complex_ion", rewriteComplexIons},
	{"oxidation_state", rewriteOxidationStates},
	{"polymer", rewritePolymers},
	{"isotope", rewriteIsotopes},
	{"electron_configuration", rewriteOrbitals},
	{"concentration_sign", rewriteConcentrationSigns},
	{"concentration_charge", rewriteConcentrationCharges},
	{"free_electron", rewriteFreeElectrons},
	{"coefficient_group", rewriteCoefficientGroups},
	{"group", rewriteGroups},
	{"simple_charge", rewriteSimpleCharges},
	{"formula", rewriteFormulas},
}

// Beautify converts ASCII chemistry notation into Unicode scientific notation:
// arrows, bond symbols, charges, oxidation states, isotopes, electron
// configurations and subscripted formulas. It never fails; fragments that
// match no stage are returned unchanged.
func Beautify(s string) string {
	if s == "" {
		return s
	}
	for _, st := range pipeline {
		s = st.apply(s)
	}
	return s
}

// StageNames lists the pipeline stages in execution order.
func StageNames() []string {
	names := make([]string, len(pipeline))
	for i, st := range pipeline {
		names[i] = st.name
	}
	return names
}

// replaceMatches rewrites the non-overlapping matches of re in s. fn gets the
// whole input and the submatch index pairs, and returns the replacement or
// false to keep the match as it is.
func replaceMatches(re *regexp.Regexp, s string, fn func(s string, m []int) (string, bool)) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 16)
	last := 0
	for _, m := range matches {
		repl, ok := fn(s, m)
		if !ok {
			continue
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(repl)
		last = m[1]
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// group returns submatch i, or "" when it did not participate.
func group(s string, m []int, i int) string {
	if m[2*i] < 0 {
		return ""
	}
	return s[m[2*i]:m[2*i+1]]
}

// standalone reports whether the match is not glued to letters or digits.
func standalone(s string, m []int) bool {
	return !isWordRune(runeBefore(s, m[0])) && !isWordRune(runeAfter(s, m[1]))
}

// rewriteComplexIons handles [Cu(NH3)4]2+ and [Fe(CN)6](3-).
func rewriteComplexIons(s string) string {
	return replaceMatches(complexIonRegex, s, func(s string, m []int) (string, bool) {
		formula := group(s, m, 1)
		charge, sign := group(s, m, 2), group(s, m, 3)
		if m[6] < 0 {
			// Bare form: "[A]-[B]" or "[X]+y" are not charges.
			next := runeAfter(s, m[1])
			if next == '[' || isWordRune(next) {
				return "", false
			}
			charge, sign = group(s, m, 4), group(s, m, 5)
		}
		return "[" + Subscript(formula) + "]" + Superscript(charge) + superSign(sign), true
	})
}

// rewriteOxidationStates handles Fe(+3) and Mn(+7).
func rewriteOxidationStates(s string) string {
	return replaceMatches(oxidationRegex, s, func(s string, m []int) (string, bool) {
		return group(s, m, 1) + superSign(group(s, m, 2)) + Superscript(group(s, m, 3)), true
	})
}

// rewritePolymers handles (C6H10O5)n and (CH2-CH2)n.
func rewritePolymers(s string) string {
	return replaceMatches(polymerRegex, s, func(s string, m []int) (string, bool) {
		if isWordRune(runeAfter(s, m[1])) {
			return "", false
		}
		return "(" + Subscript(group(s, m, 1)) + ")" + subN, true
	})
}

// rewriteIsotopes handles 27Al13 and 235U92. The trailing number has to be
// the element's atomic number, which keeps coefficients like 2H2 or 3O2 out.
func rewriteIsotopes(s string) string {
	return replaceMatches(isotopeRegex, s, func(s string, m []int) (string, bool) {
		if !standalone(s, m) {
			return "", false
		}
		massText, symbol, atomicText := group(s, m, 1), group(s, m, 2), group(s, m, 3)
		z, ok := AtomicNumber(symbol)
		if !ok {
			return "", false
		}
		mass, _ := strconv.Atoi(massText)
		atomic, _ := strconv.Atoi(atomicText)
		if atomic != z || mass < z {
			return "", false
		}
		return Superscript(massText) + symbol + Subscript(atomicText), true
	})
}

// rewriteOrbitals handles electron configurations such as 1s2 2s2 2p6.
func rewriteOrbitals(s string) string {
	return replaceMatches(orbitalRegex, s, func(s string, m []int) (string, bool) {
		if !standalone(s, m) {
			return "", false
		}
		return group(s, m, 1) + group(s, m, 2) + Superscript(group(s, m, 3)), true
	})
}

// rewriteConcentrationSigns handles [H(+)], [NH4(+)] and the bare [H+], [OH-].
func rewriteConcentrationSigns(s string) string {
	return replaceMatches(concSignRegex, s, func(s string, m []int) (string, bool) {
		species, sign := group(s, m, 1), group(s, m, 2)
		if m[2] < 0 {
			species, sign = group(s, m, 3), group(s, m, 4)
		}
		return "[" + Subscript(species) + superSign(sign) + "]", true
	})
}

// rewriteConcentrationCharges handles [Ca(2+)] and [SO4(2-)], and the bare
// [Ca2+] and [SO42-]. In the bare form the last digit before the sign is
// taken as the charge magnitude.
func rewriteConcentrationCharges(s string) string {
	return replaceMatches(concChargeRegex, s, func(s string, m []int) (string, bool) {
		charge, sign := group(s, m, 2), group(s, m, 3)
		if m[4] < 0 {
			charge, sign = group(s, m, 4), group(s, m, 5)
		}
		return "[" + Subscript(group(s, m, 1)) + Superscript(charge) + superSign(sign) + "]", true
	})
}

// rewriteFreeElectrons turns a standalone e or 2e into e⁻ or 2e⁻.
func rewriteFreeElectrons(s string) string {
	return replaceMatches(electronRegex, s, func(s string, m []int) (string, bool) {
		if isWordRune(runeBefore(s, m[0])) {
			return "", false
		}
		next := runeAfter(s, m[1])
		if isWordRune(next) || next == '-' || next == '⁻' {
			return "", false
		}
		return group(s, m, 1) + "e" + superMinus, true
	})
}

// rewriteCoefficientGroups handles (1/2)O2 and (n+1)H2O: only the formula
// after the parenthesis is subscripted.
func rewriteCoefficientGroups(s string) string {
	return replaceMatches(coefGroupRegex, s, func(s string, m []int) (string, bool) {
		formula := group(s, m, 2)
		subscripted := Subscript(formula)
		if subscripted == formula {
			return "", false
		}
		return "(" + group(s, m, 1) + ")" + subscripted, true
	})
}

// rewriteGroups handles (OH)2 and (SO4)3. Lowercase state markers such as
// (aq) or (đặc) never match because the interior must start uppercase.
func rewriteGroups(s string) string {
	return replaceMatches(groupRegex, s, func(s string, m []int) (string, bool) {
		inner, mult := group(s, m, 1), group(s, m, 2)
		out := "(" + Subscript(inner) + ")" + Subscript(mult)
		if out == s[m[0]:m[1]] {
			return "", false
		}
		return out, true
	})
}

// rewriteSimpleCharges handles Ca(2+) and Cl(-) outside of brackets.
func rewriteSimpleCharges(s string) string {
	return replaceMatches(chargeRegex, s, func(s string, m []int) (string, bool) {
		// A coefficient may precede the element (2Cl(-)), a letter may not.
		if insideBrackets(s, m[0]) || unicode.IsLetter(runeBefore(s, m[0])) {
			return "", false
		}
		return group(s, m, 1) + Superscript(group(s, m, 2)) + superSign(group(s, m, 3)), true
	})
}

// rewriteFormulas is the catch-all: digits inside an uppercase-led formula
// token become subscripts. The sign, coefficient and phase marker are kept.
func rewriteFormulas(s string) string {
	return replaceMatches(formulaRegex, s, func(s string, m []int) (string, bool) {
		start := m[4]
		if start < 0 {
			start = m[6]
		}
		if isWordRune(runeBefore(s, start)) {
			return "", false
		}
		coef, formula := group(s, m, 2), group(s, m, 3)
		if coef == "" && len(formula) == 1 {
			return "", false
		}
		subscripted := Subscript(formula)
		if subscripted == formula {
			return "", false
		}
		return group(s, m, 1) + coef + subscripted + group(s, m, 4), true
	})
}

// insideBrackets reports whether position i sits inside an unclosed "[".
func insideBrackets(s string, i int) bool {
	return strings.Count(s[:i], "[") > strings.Count(s[:i], "]")
}
