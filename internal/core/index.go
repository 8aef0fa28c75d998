package core

import (
	"path/filepath"
	"sort"
)

// BasenameConflict is a base filename shared by two or more input documents.
type BasenameConflict struct {
	Name  string
	Paths []string // input order
}

// FilenameIndex maps a base filename to every known path ending in it.
// It is read-only once built.
type FilenameIndex struct {
	paths map[string][]string
	names []string // first-seen order
}

// NewFilenameIndex indexes files by base filename, preserving input order
// within each entry.
func NewFilenameIndex(files []string) *FilenameIndex {
	ix := &FilenameIndex{paths: make(map[string][]string)}
	for _, f := range files {
		name := filepath.Base(f)
		if _, ok := ix.paths[name]; !ok {
			ix.names = append(ix.names, name)
		}
		ix.paths[name] = append(ix.paths[name], f)
	}
	return ix
}

// Lookup returns the paths whose base filename is name, or nil.
func (ix *FilenameIndex) Lookup(name string) []string {
	return ix.paths[name]
}

// Conflicts returns every base filename with more than one path, sorted by name.
func (ix *FilenameIndex) Conflicts() []BasenameConflict {
	var out []BasenameConflict
	for _, name := range ix.names {
		paths := ix.paths[name]
		if len(paths) < 2 {
			continue
		}
		cp := make([]string, len(paths))
		copy(cp, paths)
		out = append(out, BasenameConflict{Name: name, Paths: cp})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Sorted returns a copy of the index with every entry sorted lexicographically,
// which makes ranking independent of input order.
func (ix *FilenameIndex) Sorted() *FilenameIndex {
	out := &FilenameIndex{
		paths: make(map[string][]string, len(ix.paths)),
		names: append([]string(nil), ix.names...),
	}
	for name, paths := range ix.paths {
		cp := make([]string, len(paths))
		copy(cp, paths)
		sort.Strings(cp)
		out.paths[name] = cp
	}
	return out
}
