package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte("rom"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestWalkFiltersAndExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "NES/Super Game (USA).nes")
	writeFile(t, root, "NES/readme.txt")
	writeFile(t, root, "SNES/Deep/Another Game (Japan).sfc")
	writeFile(t, root, "Loose Game (Europe).gb")
	writeFile(t, root, "Moved ROMS/NES/Quarantined (Japan).nes")

	s := New([]string{".nes", ".sfc", "gb"})
	files, err := s.Walk(root, "Moved ROMS")
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	got := make([]string, len(files))
	for i, f := range files {
		got[i] = filepath.ToSlash(f.RelPath)
	}
	want := []string{
		"Loose Game (Europe).gb",
		"NES/Super Game (USA).nes",
		"SNES/Deep/Another Game (Japan).sfc",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestWalkFileFields(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "NES/Sub/Super Game (USA).NES")
	writeFile(t, root, "Root Game (Japan).gb")

	files, err := New([]string{".nes", ".gb"}).Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}

	nes := files[0]
	if filepath.ToSlash(nes.RelPath) != "NES/Sub/Super Game (USA).NES" {
		// sorted order: "NES/..." < "Root ..."
		t.Fatalf("unexpected order: %v", files)
	}
	if nes.TopDir != "NES" {
		t.Errorf("TopDir = %q; want NES", nes.TopDir)
	}
	if nes.Name != "Super Game (USA)" {
		t.Errorf("Name = %q", nes.Name)
	}
	if nes.Ext != ".nes" {
		t.Errorf("Ext = %q; want lowercased .nes", nes.Ext)
	}

	loose := files[1]
	if loose.TopDir != "" {
		t.Errorf("root-level TopDir = %q; want empty", loose.TopDir)
	}
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := New([]string{".nes"}).Walk(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestWalkNoSideEffects(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "GB/Game (U).gb")

	// Two walks see the same thing; walking creates nothing.
	for i := 0; i < 2; i++ {
		files, err := New([]string{".gb"}).Walk(root)
		if err != nil {
			t.Fatalf("Walk %d: %v", i, err)
		}
		if len(files) != 1 {
			t.Fatalf("Walk %d: got %d files", i, len(files))
		}
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("walk created entries: %v", entries)
	}
}
