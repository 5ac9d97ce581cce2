package report

import (
	"sort"
	"strings"

	"github.com/mydehq/romuless/internal/lang"
)

// Census aggregates language counts per top-level folder and globally. A
// file increments every code it matches, so per-code totals can exceed the
// file count.
type Census struct {
	folders map[string]map[lang.Code]int
	totals  map[lang.Code]int
	files   int
}

func NewCensus() *Census {
	return &Census{
		folders: make(map[string]map[lang.Code]int),
		totals:  make(map[lang.Code]int),
	}
}

// Add records one classified file under its top-level folder ("" for files
// sitting directly in the collection root).
func (c *Census) Add(topDir string, langs lang.Set) {
	bucket := c.folders[topDir]
	if bucket == nil {
		bucket = make(map[lang.Code]int)
		c.folders[topDir] = bucket
	}
	for code := range langs {
		bucket[code]++
		c.totals[code]++
	}
	c.files++
}

// Files returns the number of files added.
func (c *Census) Files() int {
	return c.files
}

// Render appends the census to the report: per-folder sections followed by
// global totals, each ordered most common first.
func (c *Census) Render(r *Report) {
	r.Line("=== LANGUAGE SUMMARY ===")

	if len(c.folders) == 0 {
		r.Line("No ROMs found to analyze.")
		r.Blank()
	} else {
		for _, folder := range sortedKeys(c.folders) {
			label := folder
			if label == "" {
				label = "(root)"
			}
			r.Linef("Folder: %s", label)
			for _, e := range byCount(c.folders[folder]) {
				r.Linef("  %s: %d", upper(e.code), e.count)
			}
			r.Blank()
		}
	}

	r.Line("TOTALS:")
	if len(c.totals) == 0 {
		r.Line("  (none)")
	} else {
		for _, e := range byCount(c.totals) {
			r.Linef("  %s: %d", upper(e.code), e.count)
		}
	}
	r.Linef("Total files scanned: %d", c.files)
	r.Blank()
}

type entry struct {
	code  lang.Code
	count int
}

// byCount orders codes by descending count, ties broken alphabetically.
func byCount(m map[lang.Code]int) []entry {
	entries := make([]entry, 0, len(m))
	for code, n := range m {
		entries = append(entries, entry{code, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].code < entries[j].code
	})
	return entries
}

func sortedKeys(m map[string]map[lang.Code]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func upper(c lang.Code) string {
	return strings.ToUpper(string(c))
}
