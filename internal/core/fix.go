package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// FixOptions controls a repair run.
type FixOptions struct {
	DryRun         bool      // report planned rewrites without writing
	Jobs           int       // documents processed concurrently; <= 1 is sequential, < 0 uses GOMAXPROCS
	SortCandidates bool      // rank same-named candidates in lexicographic order
	KeepFragment   bool      // keep "#fragment" on repaired targets
	Log            io.Writer // duplicate-filename notices and unresolved warnings; nil discards
}

// RewrittenLink reports one replaced reference target.
type RewrittenLink struct {
	File      string
	Line      int
	OldTarget string
	NewTarget string
}

// FixResult reports the outcome of a repair run.
type FixResult struct {
	Documents  int
	Counts     Counts
	Conflicts  []BasenameConflict
	Rewritten  []RewrittenLink
	Unresolved []UnresolvedLink
	Written    []string // documents rewritten, or that would be in a dry run
}

// docResult is the outcome of processing one document.
type docResult struct {
	counts     Counts
	rewritten  []RewrittenLink
	unresolved []UnresolvedLink
	written    bool
}

// Fix scans files for broken relative references and rewrites each one that
// has a unique best same-named candidate among files. Documents are handled
// independently; the first read or write error aborts the run.
func Fix(files []string, opts FixOptions) (*FixResult, error) {
	index := NewFilenameIndex(files)
	result := &FixResult{
		Documents: len(files),
		Conflicts: index.Conflicts(),
	}
	printConflicts(opts.Log, result.Conflicts)
	if opts.SortCandidates {
		index = index.Sorted()
	}

	merge := func(file string, dr docResult) {
		result.Counts.Add(dr.counts)
		result.Rewritten = append(result.Rewritten, dr.rewritten...)
		result.Unresolved = append(result.Unresolved, dr.unresolved...)
		if dr.written {
			result.Written = append(result.Written, file)
		}
	}

	jobs := opts.Jobs
	if jobs < 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs <= 1 || len(files) < 2 {
		for _, file := range files {
			dr, err := processDocument(file, index, opts)
			if err != nil {
				return nil, err
			}
			printUnresolved(opts.Log, dr.unresolved)
			merge(file, dr)
		}
		return result, nil
	}

	// Each goroutine owns results[i]; merging happens in input order afterwards.
	results := make([]docResult, len(files))
	g, gctx := errgroup.WithContext(context.Background())
	g.SetLimit(min(jobs, len(files)))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dr, err := processDocument(file, index, opts)
			if err != nil {
				return err
			}
			results[i] = dr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, file := range files {
		printUnresolved(opts.Log, results[i].unresolved)
		merge(file, results[i])
	}
	return result, nil
}

// processDocument reads file, repairs what it can and writes the result back
// unless opts.DryRun is set or nothing changed.
func processDocument(file string, index *FilenameIndex, opts FixOptions) (docResult, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return docResult{}, fmt.Errorf("read %s: %w", file, err)
	}
	if !utf8.Valid(data) {
		return docResult{}, fmt.Errorf("read %s: not valid UTF-8 text", file)
	}
	content := string(data)

	checker := newRefChecker(file, index, opts.KeepFragment)
	var reps []replacement
	var rewritten []RewrittenLink
	for _, occ := range scanRefs(content) {
		old := content[occ.start:occ.end]
		repl, ok := checker.check(occ.line, old)
		if !ok || occ.nested {
			continue
		}
		reps = append(reps, replacement{start: occ.start, end: occ.end, text: repl})
		rewritten = append(rewritten, RewrittenLink{File: file, Line: occ.line, OldTarget: old, NewTarget: repl})
	}

	dr := docResult{
		counts:     checker.counts,
		rewritten:  rewritten,
		unresolved: checker.unresolved,
		written:    len(reps) > 0,
	}
	if len(reps) == 0 || opts.DryRun {
		return dr, nil
	}
	if err := writeFileAtomic(file, []byte(applyReplacements(content, reps))); err != nil {
		return docResult{}, fmt.Errorf("write %s: %w", file, err)
	}
	return dr, nil
}
