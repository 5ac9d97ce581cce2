package lang

import "regexp"

// rule matches one tag convention and yields one code. A rule with a non-nil
// unless guard only fires when the guard does not match; this replaces the
// negative lookahead used for Europe tags, which RE2 does not support.
type rule struct {
	code    Code
	pattern *regexp.Regexp
	unless  *regexp.Regexp
}

// Word boundaries in Go's regexp are ASCII-only, so accented and non-Latin
// tokens get their own unanchored rules instead of \b-delimited alternations.
var rules = []rule{
	{code: EN, pattern: regexp.MustCompile(`(?i)\b(USA|U)\b`)},
	{code: EN, pattern: regexp.MustCompile(`(?i)\b(En|Eng|English)\b`)},
	{code: EN, pattern: regexp.MustCompile(`(?i)\bWorld\b`)},

	{code: JP, pattern: regexp.MustCompile(`(?i)\b(JPN|Japan|J)\b`)},
	{code: JP, pattern: regexp.MustCompile(`日本語|日文`)},

	{code: FR, pattern: regexp.MustCompile(`(?i)\b(Fr|FRA|French|Francais)\b`)},
	{code: FR, pattern: regexp.MustCompile(`(?i)français`)},

	{code: DE, pattern: regexp.MustCompile(`(?i)\b(De|Ger|German|Deutsch)\b`)},

	{code: ES, pattern: regexp.MustCompile(`(?i)\b(ES|Spa|Spanish|Espanol|Castellano)\b`)},
	{code: ES, pattern: regexp.MustCompile(`(?i)español`)},

	{code: IT, pattern: regexp.MustCompile(`(?i)\b(ITA|It|Italian|Italiano)\b`)},

	{code: PT, pattern: regexp.MustCompile(`(?i)\b(PT|Portugues|Brazil|BR)\b`)},
	{code: PT, pattern: regexp.MustCompile(`(?i)portugu[eê]s`)},

	{code: RU, pattern: regexp.MustCompile(`(?i)\b(RU|Rus|Russian)\b`)},
	{code: RU, pattern: regexp.MustCompile(`(?i)русский`)},

	{code: KO, pattern: regexp.MustCompile(`(?i)\b(KOR|Korea|Korean)\b`)},
	{code: KO, pattern: regexp.MustCompile(`한국어|한글`)},

	{code: ZH, pattern: regexp.MustCompile(`(?i)\b(CHN|China|Chinese)\b`)},
	{code: ZH, pattern: regexp.MustCompile(`中文|汉化`)},

	{code: Multi, pattern: regexp.MustCompile(`(?i)\b(Multi\s?[0-9]+|M[0-9]+)\b`)},

	// Europe tags only count as "eu" when no English marker is present;
	// "(Europe) (En,Fr,De)" and "(USA, Europe)" are English dumps,
	// "(Europe)" alone is not.
	{
		code:    EU,
		pattern: regexp.MustCompile(`(?i)\b(EUR|Europe|EU)\b`),
		unless:  regexp.MustCompile(`(?i)\b(En|Eng|English|USA)\b`),
	},
}

// Classify maps a filename (without extension) to the set of language codes
// its tags indicate. Every matching rule contributes, so multi-language dumps
// yield multi-code sets. A name with no recognized tag classifies as
// {unknown}. Deterministic and total.
func Classify(name string) Set {
	detected := make(Set)
	for _, r := range rules {
		if !r.pattern.MatchString(name) {
			continue
		}
		if r.unless != nil && r.unless.MatchString(name) {
			continue
		}
		detected[r.code] = struct{}{}
	}
	if len(detected) == 0 {
		detected[Unknown] = struct{}{}
	}
	return detected
}
