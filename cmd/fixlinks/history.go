package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ryotapoi/fixlinks/internal/core"
)

func runHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	config := fs.String("config", "", "config file (default "+core.DefaultConfigName+" if present)")
	journal := fs.String("journal", "", "SQLite journal to read")
	limit := fs.Int("limit", 10, "number of runs to show (0 = all)")
	run := fs.Int64("run", 0, "show the rewrites of this run ID")
	format := fs.String("format", "text", "output format (json or text)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := validateFormat(*format); err != nil {
		return err
	}

	path := *journal
	if path == "" {
		cfg, err := core.LoadConfig(*config)
		if err != nil {
			return err
		}
		path = cfg.Journal
	}
	if path == "" {
		return fmt.Errorf("--journal is required (or set journal in %s)", core.DefaultConfigName)
	}

	j, err := core.OpenJournalReadOnly(path)
	if err != nil {
		return err
	}
	defer j.Close()

	if *run != 0 {
		rws, err := j.RunRewrites(*run)
		if err != nil {
			return err
		}
		if *format == "json" {
			return printRewritesJSON(os.Stdout, rws)
		}
		printRewritesText(os.Stdout, rws)
		return nil
	}

	runs, err := j.Runs(*limit)
	if err != nil {
		return err
	}
	if *format == "json" {
		return printHistoryJSON(os.Stdout, runs)
	}
	printHistoryText(os.Stdout, runs)
	return nil
}
