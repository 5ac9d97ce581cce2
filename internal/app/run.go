// Package app orchestrates a full run: scan, classify, plan, act, report.
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mydehq/romuless/internal/lang"
	"github.com/mydehq/romuless/internal/mover"
	"github.com/mydehq/romuless/internal/plan"
	"github.com/mydehq/romuless/internal/report"
	"github.com/mydehq/romuless/internal/scan"
)

// Mode selects what a run does.
type Mode int

const (
	// ModeSort quarantines files whose languages miss the keep-set.
	ModeSort Mode = iota
	// ModeRemerge restores files out of quarantine.
	ModeRemerge
	// ModeCensus reports language counts and mutates nothing.
	ModeCensus
)

func (m Mode) String() string {
	switch m {
	case ModeSort:
		return "SORT"
	case ModeRemerge:
		return "REMERGE"
	case ModeCensus:
		return "LANGS"
	default:
		return "UNKNOWN"
	}
}

// Options is everything a run needs. The CLI fills it from flags and config.
type Options struct {
	Root          string    // collection root, absolute
	QuarantineDir string    // directory name under Root
	Keep          lang.Set  // keep-set (sort) / restore-set (remerge)
	RestoreAll    bool      // remerge: restore every language
	Commit        bool      // false = dry run
	Cleanup       bool      // remerge: prune empty quarantine dirs afterwards
	Mode          Mode
	Scanner       *scan.Scanner
	Logger        *log.Logger
}

// Run executes one invocation and returns the assembled report. Per-file
// failures are logged and reported but never abort the run; only setup
// problems (unreadable root) surface as an error.
func Run(opts Options) (*report.Report, error) {
	start := time.Now()
	r := report.New()
	writeHeader(opts, r)

	var err error
	switch opts.Mode {
	case ModeCensus:
		err = runCensus(opts, r)
	case ModeRemerge:
		err = runRemerge(opts, r)
		if err == nil && opts.Cleanup {
			runCleanup(opts, r)
		}
	default:
		err = runSort(opts, r)
	}
	if err != nil {
		return nil, err
	}

	r.Line("---- RUNTIME ----")
	r.Linef("Time elapsed: %.2f seconds", time.Since(start).Seconds())
	r.Line("====================================")
	return r, nil
}

func writeHeader(opts Options, r *report.Report) {
	r.Line("=== ROMuLess Report ===")
	r.Linef("Run at: %s", time.Now().Format("2006-01-02 15:04:05"))
	r.Linef("Root dir: %s", opts.Root)
	r.Linef("Quarantine dir: %s", filepath.Join(opts.Root, opts.QuarantineDir))
	r.Linef("Mode: %s", opts.Mode)

	switch {
	case opts.Mode == ModeCensus:
		r.Line("Keep languages: (n/a for --langs)")
		r.Line("Action: REPORT ONLY (LANGS STATS)")
	default:
		if opts.Mode == ModeRemerge && opts.RestoreAll {
			r.Line("Keep languages: ALL (remerge mode)")
		} else {
			r.Linef("Keep languages: %s", opts.Keep)
		}
		action := "DRY RUN"
		if opts.Commit {
			action = "MOVE FILES"
		}
		r.Linef("Action: %s (%s)", opts.Mode, action)
		if opts.Mode == ModeRemerge {
			r.Linef("Cleanup requested: %s", yesNo(opts.Cleanup))
		}
	}
	r.Blank()
}

func runSort(opts Options, r *report.Report) error {
	files, err := opts.Scanner.Walk(opts.Root, opts.QuarantineDir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", opts.Root, err)
	}

	p := plan.Planner{Keep: opts.Keep}
	m := mover.Mover{Commit: opts.Commit}

	var keepEntries, moveEntries, errEntries []string
	for _, f := range files {
		langs := lang.Classify(f.Name)
		switch p.Sort(langs) {
		case plan.Keep:
			keepEntries = append(keepEntries,
				fmt.Sprintf("[KEEP] %s  (detected=%s)", f.RelPath, langs))
		case plan.Move:
			logical := filepath.Join(opts.QuarantineDir, f.RelPath)
			if _, err := m.Move(f.AbsPath, filepath.Join(opts.Root, logical)); err != nil {
				opts.Logger.Error("move failed", "path", f.RelPath, "err", err)
				errEntries = append(errEntries, fmt.Sprintf("[ERROR] %s  (%v)", f.RelPath, err))
				continue
			}
			moveEntries = append(moveEntries,
				fmt.Sprintf("[MOVE] %s  ->  %s  (detected=%s)", f.RelPath, logical, langs))
		}
	}

	r.Line("---- KEPT FILES ----")
	r.Append(keepEntries)
	r.Blank()
	r.Line("---- MOVED (or WOULD MOVE) FILES ----")
	r.Append(moveEntries)
	r.Blank()
	if len(errEntries) > 0 {
		r.Line("---- ERRORS ----")
		r.Append(errEntries)
		r.Blank()
	}
	r.Line("---- SORT SUMMARY ----")
	r.Linef("Total kept: %d", len(keepEntries))
	r.Linef("Total moved (or would move): %d", len(moveEntries))
	if len(errEntries) > 0 {
		r.Linef("Total failed: %d", len(errEntries))
	}
	return nil
}

func runRemerge(opts Options, r *report.Report) error {
	qroot := filepath.Join(opts.Root, opts.QuarantineDir)
	if _, err := os.Stat(qroot); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.Linef("[INFO] No %q folder found, nothing to remerge.", opts.QuarantineDir)
			r.Line("---- REMERGE SUMMARY ----")
			r.Line("Total moved back: 0")
			r.Line("Total skipped: 0")
			return nil
		}
		return fmt.Errorf("stat %s: %w", qroot, err)
	}

	files, err := opts.Scanner.Walk(qroot)
	if err != nil {
		return fmt.Errorf("scan %s: %w", qroot, err)
	}

	p := plan.Planner{Keep: opts.Keep, RestoreAll: opts.RestoreAll}
	m := mover.Mover{Commit: opts.Commit}

	var restoreEntries, skipEntries, errEntries []string
	for _, f := range files {
		langs := lang.Classify(f.Name)
		inQuarantine := filepath.Join(opts.QuarantineDir, f.RelPath)
		switch p.Remerge(langs) {
		case plan.Restore:
			if _, err := m.Move(f.AbsPath, filepath.Join(opts.Root, f.RelPath)); err != nil {
				opts.Logger.Error("restore failed", "path", inQuarantine, "err", err)
				errEntries = append(errEntries, fmt.Sprintf("[ERROR] %s  (%v)", inQuarantine, err))
				continue
			}
			restoreEntries = append(restoreEntries,
				fmt.Sprintf("[REMERGE] %s -> %s  (detected=%s)", inQuarantine, f.RelPath, langs))
		case plan.Leave:
			skipEntries = append(skipEntries,
				fmt.Sprintf("[SKIP] %s  (detected=%s)", inQuarantine, langs))
		}
	}

	r.Line("---- REMERGE MOVED (or WOULD MOVE) ----")
	r.Append(restoreEntries)
	r.Blank()
	r.Line("---- REMERGE SKIPPED ----")
	r.Append(skipEntries)
	r.Blank()
	if len(errEntries) > 0 {
		r.Line("---- ERRORS ----")
		r.Append(errEntries)
		r.Blank()
	}
	r.Line("---- REMERGE SUMMARY ----")
	r.Linef("Total moved back (or would move): %d", len(restoreEntries))
	r.Linef("Total skipped: %d", len(skipEntries))
	if len(errEntries) > 0 {
		r.Linef("Total failed: %d", len(errEntries))
	}
	return nil
}

func runCleanup(opts Options, r *report.Report) {
	qroot := filepath.Join(opts.Root, opts.QuarantineDir)
	r.Blank()

	if _, err := os.Stat(qroot); errors.Is(err, fs.ErrNotExist) {
		r.Linef("[INFO] No %q folder found to clean.", opts.QuarantineDir)
		return
	}

	if !opts.Commit {
		empty, err := mover.EmptyDirs(qroot)
		if err != nil {
			opts.Logger.Error("cleanup scan failed", "path", qroot, "err", err)
			return
		}
		r.Line("---- CLEANUP (DRY RUN) ----")
		if len(empty) == 0 {
			r.Line("No empty directories to remove.")
			return
		}
		r.Linef("Would remove %d empty directories:", len(empty))
		for _, d := range empty {
			r.Linef("  %s", d)
		}
		return
	}

	removed, err := mover.CleanupEmptyDirs(qroot)
	if err != nil {
		opts.Logger.Error("cleanup failed", "path", qroot, "err", err)
		return
	}
	r.Line("---- CLEANUP ----")
	if len(removed) == 0 {
		r.Line("No empty directories were removed; none were empty.")
		return
	}
	r.Linef("Removed %d empty directories:", len(removed))
	for _, d := range removed {
		r.Linef("  %s", d)
	}
}

func runCensus(opts Options, r *report.Report) error {
	files, err := opts.Scanner.Walk(opts.Root, opts.QuarantineDir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", opts.Root, err)
	}

	census := report.NewCensus()
	for _, f := range files {
		census.Add(f.TopDir, lang.Classify(f.Name))
	}
	census.Render(r)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
