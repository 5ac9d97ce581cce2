// Package plan decides what happens to a classified file. It is pure: all
// filesystem work lives in the mover.
package plan

import "github.com/mydehq/romuless/internal/lang"

// Action is the planned outcome for a single file.
type Action int

const (
	// Keep leaves a file where it is (sort mode).
	Keep Action = iota
	// Move sends a file into the quarantine directory (sort mode).
	Move
	// Restore brings a file back out of quarantine (remerge mode).
	Restore
	// Leave keeps a file inside quarantine (remerge mode).
	Leave
)

func (a Action) String() string {
	switch a {
	case Keep:
		return "KEEP"
	case Move:
		return "MOVE"
	case Restore:
		return "REMERGE"
	case Leave:
		return "SKIP"
	default:
		return "UNKNOWN"
	}
}

// Planner applies keep-set policy. Classification is always computed from
// the filename alone, so the same lang.Set feeds both modes.
type Planner struct {
	// Keep is the set of codes that stay in place (sort) or come back
	// (remerge).
	Keep lang.Set
	// RestoreAll makes remerge restore every file regardless of Keep.
	// It has no effect on sort.
	RestoreAll bool
}

// Sort returns Keep or Move for a file in the collection. Files with no
// recognized tag are kept: shoving unknowns into quarantine would be guessing.
func (p Planner) Sort(langs lang.Set) Action {
	if langs.Has(lang.Unknown) {
		return Keep
	}
	if langs.Intersects(p.Keep) {
		return Keep
	}
	return Move
}

// Remerge returns Restore or Leave for a file found under quarantine.
// Untagged files ride along with English restores.
func (p Planner) Remerge(langs lang.Set) Action {
	if p.RestoreAll {
		return Restore
	}
	if langs.Has(lang.Unknown) {
		if p.Keep.Has(lang.EN) {
			return Restore
		}
		return Leave
	}
	if langs.Intersects(p.Keep) {
		return Restore
	}
	return Leave
}
