package core

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	noteColor = color.New(color.FgCyan)
	warnColor = color.New(color.FgYellow, color.Bold)
)

func printConflicts(w io.Writer, conflicts []BasenameConflict) {
	if w == nil {
		return
	}
	for _, c := range conflicts {
		fmt.Fprintf(w, "%s Duplicate filename: %s\n", noteColor.Sprint("Note:"), c.Name)
		for _, p := range c.Paths {
			fmt.Fprintf(w, "- %s\n", p)
		}
	}
}

func printUnresolved(w io.Writer, links []UnresolvedLink) {
	if w == nil {
		return
	}
	for _, u := range links {
		fmt.Fprintf(w, "%s Unable to resolve at %s:%d: %s\n", warnColor.Sprint("Warning:"), u.File, u.Line, u.Target)
	}
}
