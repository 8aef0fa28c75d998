package core

import (
	"os"
	"path/filepath"
	"strings"
)

// UnresolvedLink reports a missing reference target for which no file with
// the same base filename is known.
type UnresolvedLink struct {
	File   string
	Line   int
	Target string
}

// refChecker resolves the references of a single document and accumulates
// that document's counts.
type refChecker struct {
	file         string
	index        *FilenameIndex
	keepFragment bool // re-attach "#fragment" to repaired targets
	counts       Counts
	unresolved   []UnresolvedLink
}

func newRefChecker(file string, index *FilenameIndex, keepFragment bool) *refChecker {
	return &refChecker{file: file, index: index, keepFragment: keepFragment}
}

// check decides the fate of one target. It returns the replacement text and
// true when the target is broken and a single best candidate was found.
func (c *refChecker) check(line int, target string) (string, bool) {
	c.counts.References++
	if isWebURL(target) || strings.HasPrefix(target, "#") {
		return "", false
	}
	path, fragment := extractSubpath(target)
	c.counts.Paths++

	// Not filepath.Join: "gone/../b.md" must fail when gone/ does not exist.
	resolved := filepath.Dir(c.file) + string(filepath.Separator) + path
	if pathExists(resolved) {
		return "", false
	}
	c.counts.Missing++

	candidates := c.index.Lookup(fileName(resolved))
	if len(candidates) == 0 {
		c.unresolved = append(c.unresolved, UnresolvedLink{File: c.file, Line: line, Target: target})
		return "", false
	}
	c.counts.Matches++
	if len(candidates) > 1 {
		c.counts.Ambiguous++
	}

	best, tied, ok := rankCandidates(c.file, candidates)
	if !ok {
		return "", false
	}
	if tied {
		c.counts.Ties++
	}
	repl := formatReplacement(best)
	if c.keepFragment {
		repl += fragment
	}
	return repl, true
}

// formatReplacement prefixes paths that do not climb with "./"; renderers
// treat bare relative filenames inconsistently.
func formatReplacement(rel string) string {
	if strings.HasPrefix(rel, "../") {
		return rel
	}
	return "./" + rel
}

// extractSubpath splits "target#fragment" into (target, "#fragment").
// Returns (input, "") if no fragment.
func extractSubpath(input string) (string, string) {
	if idx := strings.Index(input, "#"); idx != -1 {
		return input[:idx], input[idx:]
	}
	return input, ""
}

func isWebURL(target string) bool {
	return strings.HasPrefix(target, "http:") || strings.HasPrefix(target, "https:")
}

// fileName returns the final component of path, or "" when path ends in a
// directory marker.
func fileName(path string) string {
	base := filepath.Base(path)
	switch base {
	case ".", "..", string(filepath.Separator):
		return ""
	}
	return base
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
