package core

import (
	"testing"
)

func targets(content string, occs []refOccur) []string {
	out := make([]string, len(occs))
	for i, o := range occs {
		out[i] = content[o.start:o.end]
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestScanInlineLinks(t *testing.T) {
	content := "# T\n\nSee [a](x.md) and [b](y.md#h).\n"
	occs := scanRefs(content)
	if got := targets(content, occs); !equalStrings(got, []string{"x.md", "y.md#h"}) {
		t.Fatalf("targets = %q", got)
	}
	for _, o := range occs {
		if o.line != 3 {
			t.Errorf("line = %d, want 3", o.line)
		}
	}
}

func TestScanLinkrefDefinition(t *testing.T) {
	content := "Intro\n[guide]: docs/guide.md\n"
	occs := scanRefs(content)
	if len(occs) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occs))
	}
	o := occs[0]
	if got := content[o.start:o.end]; got != "docs/guide.md" {
		t.Errorf("target = %q, want docs/guide.md", got)
	}
	if o.line != 2 {
		t.Errorf("line = %d, want 2", o.line)
	}
}

func TestScanSkipsInlineMatchingDefinedLabel(t *testing.T) {
	content := "Use [guide](guide) here.\n\n[guide]: docs/guide.md\n"
	occs := scanRefs(content)
	if got := targets(content, occs); !equalStrings(got, []string{"docs/guide.md"}) {
		t.Errorf("targets = %q, want only the definition", got)
	}
}

func TestScanLabelMatchIsCaseSensitive(t *testing.T) {
	content := "[Guide]: docs/guide.md\nSee [x](guide).\n"
	occs := scanRefs(content)
	if got := targets(content, occs); !equalStrings(got, []string{"docs/guide.md", "guide"}) {
		t.Errorf("targets = %q", got)
	}
}

func TestScanOffsetsWithDuplicateSubstrings(t *testing.T) {
	content := "x [a](a.md) [a](a.md) [a](a.md)\n"
	occs := scanRefs(content)
	if len(occs) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(occs))
	}
	wantStarts := []int{6, 16, 26}
	for i, o := range occs {
		if o.start != wantStarts[i] || o.end != wantStarts[i]+4 {
			t.Errorf("occ[%d] = [%d,%d), want [%d,%d)", i, o.start, o.end, wantStarts[i], wantStarts[i]+4)
		}
	}
}

func TestScanSortedAcrossPasses(t *testing.T) {
	content := "[l](first.md)\n[def]: second.md\n[m](third.md)\n"
	occs := scanRefs(content)
	if got := targets(content, occs); !equalStrings(got, []string{"first.md", "second.md", "third.md"}) {
		t.Errorf("targets = %q, want document order", got)
	}
	for i := 1; i < len(occs); i++ {
		if occs[i].start < occs[i-1].end {
			t.Errorf("occurrences overlap or are unsorted: %+v", occs)
		}
	}
}

func TestScanNestedInlineInDefinition(t *testing.T) {
	content := "[d]: see [x](y.md)\n"
	occs := scanRefs(content)
	if got := targets(content, occs); !equalStrings(got, []string{"see [x](y.md)", "y.md"}) {
		t.Fatalf("targets = %q", got)
	}
	if occs[0].nested || !occs[1].nested {
		t.Errorf("nested = %v, %v, want false, true", occs[0].nested, occs[1].nested)
	}
}

func TestScanCRLF(t *testing.T) {
	content := "[a](x.md)\r\n[d]: y.md\r\n"
	occs := scanRefs(content)
	if got := targets(content, occs); !equalStrings(got, []string{"x.md", "y.md"}) {
		t.Errorf("targets = %q", got)
	}
	if occs[1].line != 2 {
		t.Errorf("line = %d, want 2", occs[1].line)
	}
}

func TestScanNoReferences(t *testing.T) {
	for _, content := range []string{"", "\n", "plain text\nno links [here]\n", "[a] (b)\n"} {
		if occs := scanRefs(content); len(occs) != 0 {
			t.Errorf("scanRefs(%q) = %+v, want none", content, occs)
		}
	}
}

func TestScanNoTrailingNewline(t *testing.T) {
	content := "a\n[b](c.md)"
	occs := scanRefs(content)
	if got := targets(content, occs); !equalStrings(got, []string{"c.md"}) {
		t.Errorf("targets = %q", got)
	}
	if occs[0].line != 2 {
		t.Errorf("line = %d, want 2", occs[0].line)
	}
}

func TestLineIndex(t *testing.T) {
	content := "ab\n\ncd\n"
	li := newLineIndex(content)
	if len(li) != 3 {
		t.Fatalf("lines = %v, want 3 entries", li)
	}
	want := []string{"ab", "", "cd"}
	for n := range li {
		if got := li.text(content, n); got != want[n] {
			t.Errorf("line %d = %q, want %q", n, got, want[n])
		}
	}
}
