// Package scan enumerates candidate ROM files under a collection root.
package scan

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// File is a single candidate ROM found during a walk.
type File struct {
	AbsPath string // absolute path on disk
	RelPath string // path relative to the walked root
	TopDir  string // first element of RelPath; "" for files directly in the root
	Name    string // base name without extension (classifier input)
	Ext     string // lowercased extension, with dot
}

// Scanner filters a directory tree down to files with whitelisted extensions.
// The whitelist comes from configuration; there is no package-level default.
type Scanner struct {
	exts map[string]struct{}
}

// New builds a Scanner for the given extensions. Entries are normalized to
// lowercase and get a leading dot if missing, so "NES" and ".nes" both work.
func New(extensions []string) *Scanner {
	exts := make(map[string]struct{}, len(extensions))
	for _, e := range extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[e] = struct{}{}
	}
	return &Scanner{exts: exts}
}

// Walk returns every whitelisted file under root, skipping the excluded
// directories entirely. Relative exclude paths are taken relative to root.
// Unreadable subtrees are skipped rather than aborting the walk; only a
// failure to read root itself is an error. Results are sorted by relative
// path so runs are deterministic.
func (s *Scanner) Walk(root string, exclude ...string) ([]File, error) {
	root = filepath.Clean(root)
	excluded := excludedPaths(root, exclude)

	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d == nil {
				return walkErr // root itself is unreadable
			}
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if isExcluded(path, excluded) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if _, ok := s.exts[ext]; !ok {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		files = append(files, File{
			AbsPath: path,
			RelPath: rel,
			TopDir:  topDir(rel),
			Name:    strings.TrimSuffix(name, filepath.Ext(name)),
			Ext:     ext,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

func topDir(rel string) string {
	rel = filepath.ToSlash(rel)
	if i := strings.Index(rel, "/"); i >= 0 {
		return rel[:i]
	}
	return ""
}

func excludedPaths(root string, exclude []string) []string {
	out := make([]string, 0, len(exclude))
	for _, x := range exclude {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		if !filepath.IsAbs(x) {
			x = filepath.Join(root, x)
		}
		out = append(out, filepath.Clean(x))
	}
	return out
}

func isExcluded(path string, excluded []string) bool {
	path = filepath.Clean(path)
	for _, base := range excluded {
		if path == base || strings.HasPrefix(path, base+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
