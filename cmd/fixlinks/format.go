package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ryotapoi/fixlinks/internal/core"
)

// parseFields splits a comma-separated field string into a slice.
// Returns nil for empty input.
func parseFields(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// validateFormat checks that format is "json" or "text".
func validateFormat(format string) error {
	if format != "json" && format != "text" {
		return fmt.Errorf("invalid format: %q (must be json or text)", format)
	}
	return nil
}

// --- Fix output ---

type fixJSONRewrite struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	OldTarget string `json:"old"`
	NewTarget string `json:"new"`
}

type fixJSONUnresolved struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Target string `json:"target"`
}

type fixJSONConflict struct {
	Name  string   `json:"name"`
	Paths []string `json:"paths"`
}

type fixJSONOutput struct {
	Documents  int                 `json:"documents"`
	Stats      map[string]int      `json:"stats"`
	Rewritten  []fixJSONRewrite    `json:"rewritten"`
	Unresolved []fixJSONUnresolved `json:"unresolved"`
	Conflicts  []fixJSONConflict   `json:"duplicates"`
	Written    []string            `json:"written"`
}

func printFixJSON(w io.Writer, r *core.FixResult, fields []string) error {
	out := fixJSONOutput{
		Documents:  r.Documents,
		Stats:      make(map[string]int),
		Rewritten:  []fixJSONRewrite{},
		Unresolved: []fixJSONUnresolved{},
		Conflicts:  []fixJSONConflict{},
		Written:    []string{},
	}
	for _, f := range r.Counts.Select(fields) {
		out.Stats[f.Name] = f.Value
	}
	for _, rw := range r.Rewritten {
		out.Rewritten = append(out.Rewritten, fixJSONRewrite(rw))
	}
	for _, u := range r.Unresolved {
		out.Unresolved = append(out.Unresolved, fixJSONUnresolved(u))
	}
	for _, c := range r.Conflicts {
		out.Conflicts = append(out.Conflicts, fixJSONConflict(c))
	}
	out.Written = append(out.Written, r.Written...)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printFixText(w io.Writer, r *core.FixResult, fields []string, dryRun bool) {
	verb := "rewrote"
	if dryRun {
		verb = "would rewrite"
	}
	for _, rw := range r.Rewritten {
		fmt.Fprintf(w, "%s %s:%d: %s -> %s\n", verb, rw.File, rw.Line, rw.OldTarget, rw.NewTarget)
	}
	fmt.Fprintf(w, "documents: %d\n", r.Documents)
	for _, f := range r.Counts.Select(fields) {
		fmt.Fprintf(w, "%s: %d\n", f.Name, f.Value)
	}
}

// --- History output ---

type historyJSONRun struct {
	ID         int64          `json:"id"`
	StartedAt  string         `json:"started_at"`
	Mode       string         `json:"mode"`
	Documents  int            `json:"documents"`
	Stats      map[string]int `json:"stats"`
	Rewrites   int            `json:"rewrites"`
	Unresolved int            `json:"unresolved"`
}

func printHistoryJSON(w io.Writer, runs []core.RunRecord) error {
	out := make([]historyJSONRun, 0, len(runs))
	for _, r := range runs {
		stats := make(map[string]int)
		for _, f := range r.Counts.Select(nil) {
			stats[f.Name] = f.Value
		}
		out = append(out, historyJSONRun{
			ID:         r.ID,
			StartedAt:  r.StartedAt.UTC().Format(time.RFC3339),
			Mode:       r.Mode,
			Documents:  r.Documents,
			Stats:      stats,
			Rewrites:   r.Rewrites,
			Unresolved: r.Unresolved,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printHistoryText(w io.Writer, runs []core.RunRecord) {
	for _, r := range runs {
		fmt.Fprintf(w, "- id: %d\n", r.ID)
		fmt.Fprintf(w, "  started_at: %s\n", r.StartedAt.UTC().Format(time.RFC3339))
		fmt.Fprintf(w, "  mode: %s\n", r.Mode)
		fmt.Fprintf(w, "  documents: %d\n", r.Documents)
		for _, f := range r.Counts.Select(nil) {
			fmt.Fprintf(w, "  %s: %d\n", f.Name, f.Value)
		}
		fmt.Fprintf(w, "  rewrites: %d\n", r.Rewrites)
		fmt.Fprintf(w, "  unresolved: %d\n", r.Unresolved)
	}
}

func printRewritesJSON(w io.Writer, rws []core.RewrittenLink) error {
	out := make([]fixJSONRewrite, 0, len(rws))
	for _, rw := range rws {
		out = append(out, fixJSONRewrite(rw))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printRewritesText(w io.Writer, rws []core.RewrittenLink) {
	for _, rw := range rws {
		fmt.Fprintf(w, "%s:%d: %s -> %s\n", rw.File, rw.Line, rw.OldTarget, rw.NewTarget)
	}
}
