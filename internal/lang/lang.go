// Package lang detects language/region tags in ROM filenames.
package lang

import (
	"fmt"
	"sort"
	"strings"
)

// Code is a normalized language code detected from a filename tag.
type Code string

const (
	EN      Code = "en"
	JP      Code = "jp"
	FR      Code = "fr"
	DE      Code = "de"
	ES      Code = "es"
	IT      Code = "it"
	PT      Code = "pt"
	RU      Code = "ru"
	KO      Code = "ko"
	ZH      Code = "zh"
	Multi   Code = "multi"
	EU      Code = "eu"
	Unknown Code = "unknown"
)

// All lists every recognized code, including the synthetic Unknown.
var All = []Code{EN, JP, FR, DE, ES, IT, PT, RU, KO, ZH, Multi, EU, Unknown}

// Parse validates a user-supplied code (case-insensitive).
func Parse(s string) (Code, error) {
	c := Code(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range All {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown language code %q (valid: %s)", s, codeList())
}

func codeList() string {
	parts := make([]string, len(All))
	for i, c := range All {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

// Set is a set of detected language codes.
type Set map[Code]struct{}

// NewSet builds a Set from the given codes.
func NewSet(codes ...Code) Set {
	s := make(Set, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether c is in the set.
func (s Set) Has(c Code) bool {
	_, ok := s[c]
	return ok
}

// Intersects reports whether the two sets share at least one code.
func (s Set) Intersects(other Set) bool {
	for c := range s {
		if other.Has(c) {
			return true
		}
	}
	return false
}

// Codes returns the set's members in sorted order.
func (s Set) Codes() []Code {
	codes := make([]Code, 0, len(s))
	for c := range s {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// String renders the set like "[en jp]" for reports and logs.
func (s Set) String() string {
	parts := make([]string, 0, len(s))
	for _, c := range s.Codes() {
		parts = append(parts, string(c))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
