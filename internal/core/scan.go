package core

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// [label]: target
	linkrefPattern = regexp.MustCompile(`^\[(.*?)\]: (.*)`)
	// [label](target)
	inlinePattern = regexp.MustCompile(`\[([^\[\]]*)\]\((.*?)\)`)
)

// refOccur is one reference target found in a document.
// start/end are absolute byte offsets of the target text only.
type refOccur struct {
	line   int // 1-based
	start  int
	end    int
	nested bool // inside a definition's target; counted but never rewritten
}

// lineIndex holds the byte offset at which each line of a document starts.
type lineIndex []int

func newLineIndex(content string) lineIndex {
	idx := lineIndex{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			idx = append(idx, i+1)
		}
	}
	// A trailing newline does not open another line.
	if len(idx) > 1 && idx[len(idx)-1] == len(content) {
		idx = idx[:len(idx)-1]
	}
	return idx
}

// text returns line n (0-based) without its line terminator.
func (li lineIndex) text(content string, n int) string {
	end := len(content)
	if n+1 < len(li) {
		end = li[n+1] - 1
	}
	line := strings.TrimSuffix(content[li[n]:end], "\n")
	return strings.TrimSuffix(line, "\r")
}

// scanRefs extracts link targets from content: linkref definitions first,
// then inline links whose target is not a defined label. The result is
// sorted by start offset; only occurrences marked nested overlap another.
func scanRefs(content string) []refOccur {
	if content == "" {
		return nil
	}
	lines := newLineIndex(content)

	var out []refOccur
	defined := make(map[string]bool)
	defSpan := make(map[int]refOccur) // line index → definition target

	for n := range lines {
		line := lines.text(content, n)
		m := linkrefPattern.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		occ := refOccur{line: n + 1, start: lines[n] + m[4], end: lines[n] + m[5]}
		out = append(out, occ)
		defSpan[n] = occ
		defined[line[m[2]:m[3]]] = true
	}

	for n := range lines {
		line := lines.text(content, n)
		for _, m := range inlinePattern.FindAllStringSubmatchIndex(line, -1) {
			target := line[m[4]:m[5]]
			if defined[target] {
				continue
			}
			occ := refOccur{line: n + 1, start: lines[n] + m[4], end: lines[n] + m[5]}
			if def, ok := defSpan[n]; ok && occ.start < def.end && occ.end > def.start {
				occ.nested = true
			}
			out = append(out, occ)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].start < out[j].start })
	return out
}
