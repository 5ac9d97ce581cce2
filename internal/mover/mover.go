// Package mover performs collision-safe file relocation and quarantine
// directory cleanup.
package mover

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
)

// Mover executes planned moves. With Commit false every call is a dry run:
// the would-be destination is computed and returned but nothing on disk
// changes and no directories are created.
type Mover struct {
	Commit bool
}

// Move relocates src to dst, creating parent directories as needed. When a
// file already exists at dst the destination gets a " (n)" suffix before the
// extension, incrementing n until the name is free; an existing file is
// never overwritten. Returns the path the file ended up at (or would end up
// at, ignoring collisions, in dry-run mode).
func (m Mover) Move(src, dst string) (string, error) {
	if !m.Commit {
		return dst, nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
	}
	final := uniqueDestination(dst)
	if err := rename(src, final); err != nil {
		return "", fmt.Errorf("move %s: %w", src, err)
	}
	return final, nil
}

// uniqueDestination finds the first non-colliding variant of dst:
// "Game.nes", "Game (1).nes", "Game (2).nes", ...
func uniqueDestination(dst string) string {
	if _, err := os.Lstat(dst); err != nil {
		return dst
	}
	ext := filepath.Ext(dst)
	stem := strings.TrimSuffix(dst, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if _, err := os.Lstat(candidate); err != nil {
			return candidate
		}
	}
}

// rename moves a file, falling back to copy+delete across filesystem
// boundaries (quarantine on another mount).
func rename(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	// O_EXCL: the collision probe already picked a free name; racing
	// anything that appeared since must not clobber it.
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

// EmptyDirs lists directories under root that are empty right now, deepest
// first, excluding root itself. A missing root yields nothing. This is the
// dry-run view of CleanupEmptyDirs.
func EmptyDirs(root string) ([]string, error) {
	dirs, err := dirsUnder(root)
	if err != nil {
		return nil, err
	}
	var empty []string
	for _, d := range dirs {
		entries, err := os.ReadDir(d)
		if err != nil {
			continue
		}
		if len(entries) == 0 {
			empty = append(empty, d)
		}
	}
	return empty, nil
}

// CleanupEmptyDirs removes empty directories under root, deepest first so
// that parents emptied by the removal of their children go too. Root itself
// is never removed; nothing outside root is touched. Returns the removed
// paths. A missing root is "nothing to do".
func CleanupEmptyDirs(root string) ([]string, error) {
	dirs, err := dirsUnder(root)
	if err != nil {
		return nil, err
	}
	var removed []string
	for _, d := range dirs {
		entries, err := os.ReadDir(d)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(d); err == nil {
			removed = append(removed, d)
		}
	}
	return removed, nil
}

// dirsUnder collects every directory below root, sorted deepest first.
func dirsUnder(root string) ([]string, error) {
	root = filepath.Clean(root)
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(dirs, func(i, j int) bool {
		di := strings.Count(dirs[i], string(filepath.Separator))
		dj := strings.Count(dirs[j], string(filepath.Separator))
		if di != dj {
			return di > dj
		}
		return dirs[i] < dirs[j]
	})
	return dirs, nil
}
