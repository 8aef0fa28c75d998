package core

import (
	"path/filepath"
	"strings"
)

// relativeScore scores a slash-separated relative path: one point per
// component plus two per leading "..", so climbing the tree costs three
// times as much as descending.
func relativeScore(rel string) int {
	parts := strings.Split(rel, "/")
	up := 0
	for _, p := range parts {
		if p != ".." {
			break
		}
		up++
	}
	return len(parts) + 2*up
}

// rankCandidates picks the candidate closest to the directory of docPath.
// The first candidate reaching the lowest score wins; tied reports whether
// another candidate matched that score. Candidates that cannot be made
// relative to the document directory are skipped.
func rankCandidates(docPath string, candidates []string) (best string, tied bool, ok bool) {
	dir := filepath.Dir(docPath)
	bestScore := -1
	ties := 0
	for _, c := range candidates {
		rel, err := filepath.Rel(dir, c)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		score := relativeScore(rel)
		switch {
		case bestScore < 0 || score < bestScore:
			bestScore = score
			best = rel
			ties = 0
		case score == bestScore:
			ties++
		}
	}
	if bestScore < 0 {
		return "", false, false
	}
	return best, ties > 0, true
}
