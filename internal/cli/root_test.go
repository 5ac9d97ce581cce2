package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/mydehq/romuless/internal/app"
	"github.com/mydehq/romuless/internal/lang"
)

// resetFlags restores the package-level flag state between command
// executions; cobra keeps values and Changed markers across Execute calls.
func resetFlags(t *testing.T) {
	t.Helper()
	flagKeep = nil
	flagMove = false
	flagRemerge = false
	flagCleanup = false
	flagLangs = false
	flagLog = ""
	flagConfig = ""
	flagVerbose = false
	RootCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
}

func seedRoms(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(path, []byte("rom"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
}

func fileAt(t *testing.T, root, rel string) bool {
	t.Helper()
	_, err := os.Lstat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil
}

func TestResolveMode(t *testing.T) {
	if resolveMode(false, false) != app.ModeSort {
		t.Error("default should be sort")
	}
	if resolveMode(false, true) != app.ModeRemerge {
		t.Error("--remerge should select remerge")
	}
	// --langs overrides --remerge.
	if resolveMode(true, true) != app.ModeCensus {
		t.Error("--langs should win")
	}
}

func TestParseKeep(t *testing.T) {
	keep, err := parseKeep([]string{"en", "IT", " jp "})
	if err != nil {
		t.Fatalf("parseKeep: %v", err)
	}
	for _, c := range []lang.Code{lang.EN, lang.IT, lang.JP} {
		if !keep.Has(c) {
			t.Errorf("missing %s in %s", c, keep)
		}
	}

	if _, err := parseKeep([]string{"en", "klingon"}); err == nil {
		t.Error("unrecognized code should be fatal")
	}

	keep, err = parseKeep([]string{"", "  "})
	if err != nil {
		t.Fatalf("blank entries should be ignored: %v", err)
	}
	if len(keep) != 0 {
		t.Errorf("keep = %s; want empty", keep)
	}
}

func TestStyleLineCoversReportShapes(t *testing.T) {
	lines := []string{
		"=== ROMuLess Report ===",
		"---- SORT SUMMARY ----",
		"[KEEP] NES/Game.nes  (detected=[en])",
		"[MOVE] NES/Game.nes  ->  Moved ROMS/NES/Game.nes  (detected=[jp])",
		"[REMERGE] Moved ROMS/NES/Game.nes -> NES/Game.nes  (detected=[jp])",
		"[SKIP] Moved ROMS/NES/Game.nes  (detected=[fr])",
		"[ERROR] NES/Game.nes  (permission denied)",
		"Folder: NES",
		"TOTALS:",
		"Total kept: 3",
		"",
	}
	for _, l := range lines {
		styled := styleLine(l)
		// Styling must never drop the content.
		if !strings.Contains(styled, l) && !strings.Contains(stripANSI(styled), l) {
			t.Errorf("styleLine(%q) lost content: %q", l, styled)
		}
	}
}

// stripANSI removes escape sequences for content checks.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TestExecuteEndToEnd drives the real cobra command. Every subtest resets
// the shared package-level flag state before executing.
func TestExecuteEndToEnd(t *testing.T) {
	t.Run("census writes a log", func(t *testing.T) {
		resetFlags(t)
		root := t.TempDir()
		seedRoms(t, root, "NES/Game (USA).nes")

		RootCmd.SetArgs([]string{root, "--langs"})
		if err := RootCmd.Execute(); err != nil {
			t.Fatalf("Execute: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(root, "rom_sort_log.txt"))
		if err != nil {
			t.Fatalf("log not written: %v", err)
		}
		if !strings.Contains(string(data), "EN: 1") {
			t.Errorf("log missing census counts:\n%s", data)
		}
		// Census never mutates.
		if _, err := os.Stat(filepath.Join(root, "Moved ROMS")); err == nil {
			t.Error("census created the quarantine directory")
		}
	})

	t.Run("invalid keep code fails before scanning", func(t *testing.T) {
		resetFlags(t)
		root := t.TempDir()
		RootCmd.SetArgs([]string{root, "--keep", "klingon"})
		if err := RootCmd.Execute(); err == nil {
			t.Fatal("expected error for bad language code")
		}
		if _, err := os.Stat(filepath.Join(root, "rom_sort_log.txt")); err == nil {
			t.Error("no log should be written on fatal argument errors")
		}
	})

	// The remerge keep-set sentinel: leaving --keep off restores only the
	// configured default, an explicitly empty --keep= restores everything,
	// and a populated --keep restores exactly the listed codes.
	quarantined := []string{
		"Moved ROMS/NES/Super Game (En).nes",
		"Moved ROMS/NES/Gioco (Italy) (It).nes",
	}

	t.Run("remerge with absent keep restores only the default", func(t *testing.T) {
		resetFlags(t)
		root := t.TempDir()
		seedRoms(t, root, quarantined...)

		RootCmd.SetArgs([]string{root, "--remerge", "--move"})
		if err := RootCmd.Execute(); err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if !fileAt(t, root, "NES/Super Game (En).nes") {
			t.Error("english file not restored under default keep-set")
		}
		if fileAt(t, root, "NES/Gioco (Italy) (It).nes") {
			t.Error("italian file restored although --keep was never given")
		}
		if !fileAt(t, root, "Moved ROMS/NES/Gioco (Italy) (It).nes") {
			t.Error("italian file should have stayed quarantined")
		}
	})

	t.Run("remerge with explicit empty keep restores everything", func(t *testing.T) {
		resetFlags(t)
		root := t.TempDir()
		seedRoms(t, root, quarantined...)

		RootCmd.SetArgs([]string{root, "--remerge", "--move", "--keep="})
		if err := RootCmd.Execute(); err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if !fileAt(t, root, "NES/Super Game (En).nes") ||
			!fileAt(t, root, "NES/Gioco (Italy) (It).nes") {
			t.Error("--keep= should restore every language")
		}
	})

	t.Run("remerge with populated keep restores the listed codes", func(t *testing.T) {
		resetFlags(t)
		root := t.TempDir()
		seedRoms(t, root, quarantined...)

		RootCmd.SetArgs([]string{root, "--remerge", "--move", "--keep", "it"})
		if err := RootCmd.Execute(); err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if !fileAt(t, root, "NES/Gioco (Italy) (It).nes") {
			t.Error("italian file not restored under --keep it")
		}
		if !fileAt(t, root, "Moved ROMS/NES/Super Game (En).nes") {
			t.Error("english file should have stayed quarantined")
		}
	})
}
