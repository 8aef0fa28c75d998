package core

import "fmt"

// Counts accumulates reference statistics over a run.
type Counts struct {
	References int // every target seen
	Paths      int // targets that are neither web URLs nor pure fragments
	Missing    int // paths that do not exist on disk
	Matches    int // missing paths with at least one same-named file
	Ambiguous  int // matches with more than one same-named file
	Ties       int // rankings where the best score was shared
}

// Add merges o into c.
func (c *Counts) Add(o Counts) {
	c.References += o.References
	c.Paths += o.Paths
	c.Missing += o.Missing
	c.Matches += o.Matches
	c.Ambiguous += o.Ambiguous
	c.Ties += o.Ties
}

// StatsFields lists the report field names in output order.
var StatsFields = []string{"references", "paths", "missing", "matches", "ambiguous", "ties"}

var validStatsFields = map[string]bool{
	"references": true,
	"paths":      true,
	"missing":    true,
	"matches":    true,
	"ambiguous":  true,
	"ties":       true,
}

// ValidateStatsFields rejects unknown report field names.
func ValidateStatsFields(fields []string) error {
	for _, f := range fields {
		if !validStatsFields[f] {
			return fmt.Errorf("unknown stats field: %s", f)
		}
	}
	return nil
}

// Field returns the counter named by one of StatsFields.
func (c Counts) Field(name string) int {
	switch name {
	case "references":
		return c.References
	case "paths":
		return c.Paths
	case "missing":
		return c.Missing
	case "matches":
		return c.Matches
	case "ambiguous":
		return c.Ambiguous
	case "ties":
		return c.Ties
	}
	return 0
}

// isFieldActive returns true if the field is requested (or if fields is empty, meaning all).
func isFieldActive(field string, fields []string) bool {
	if len(fields) == 0 {
		return true
	}
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

// Select returns the requested counters keyed by field name, in StatsFields order.
func (c Counts) Select(fields []string) []StatField {
	var out []StatField
	for _, name := range StatsFields {
		if isFieldActive(name, fields) {
			out = append(out, StatField{Name: name, Value: c.Field(name)})
		}
	}
	return out
}

// StatField is one named counter of a report.
type StatField struct {
	Name  string
	Value int
}
