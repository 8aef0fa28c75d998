package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/ryotapoi/fixlinks/internal/core"
)

// fixFlags are shared by repair and check.
type fixFlags struct {
	config         *string
	exclude        multiString
	jobs           *int
	sortCandidates *bool
	keepFragment   *bool
	journal        *string
	format         *string
	fields         *string
	noColor        *bool
}

func newFixFlagSet(name string) (*flag.FlagSet, *fixFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	ff := &fixFlags{}
	ff.config = fs.String("config", "", "config file (default "+core.DefaultConfigName+" if present)")
	fs.Var(&ff.exclude, "exclude", "glob pattern of documents to skip (repeatable)")
	ff.jobs = fs.Int("jobs", 0, "documents processed in parallel (0 = config value, -1 = all CPUs)")
	ff.sortCandidates = fs.Bool("sort-candidates", false, "rank same-named files in lexicographic order")
	ff.keepFragment = fs.Bool("keep-fragment", false, "keep #fragment on repaired targets")
	ff.journal = fs.String("journal", "", "record the run in this SQLite journal")
	ff.format = fs.String("format", "text", "output format (json or text)")
	ff.fields = fs.String("fields", "", "comma-separated stats fields to output")
	ff.noColor = fs.Bool("no-color", false, "disable colored notices")
	return fs, ff
}

// fixRun is a fully resolved repair/check invocation.
type fixRun struct {
	mode    string
	files   []string
	opts    core.FixOptions
	journal string
	format  string
	fields  []string
}

func parseFixArgs(name string, args []string) (*fixRun, error) {
	fs, ff := newFixFlagSet(name)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := validateFormat(*ff.format); err != nil {
		return nil, err
	}
	fieldList := parseFields(*ff.fields)
	if err := core.ValidateStatsFields(fieldList); err != nil {
		return nil, err
	}
	if fs.NArg() == 0 {
		return nil, fmt.Errorf("no input paths given")
	}

	cfg, err := core.LoadConfig(*ff.config)
	if err != nil {
		return nil, err
	}
	excludes := append(append([]string{}, cfg.Exclude...), ff.exclude...)
	files, err := core.CollectDocuments(fs.Args(), core.CollectOptions{Exclude: excludes})
	if err != nil {
		return nil, err
	}

	jobs := cfg.Jobs
	if *ff.jobs != 0 {
		jobs = *ff.jobs
	}
	journal := cfg.Journal
	if *ff.journal != "" {
		journal = *ff.journal
	}
	if *ff.noColor {
		color.NoColor = true
	}

	return &fixRun{
		mode:  name,
		files: files,
		opts: core.FixOptions{
			DryRun:         name == "check",
			Jobs:           jobs,
			SortCandidates: cfg.SortCandidates || *ff.sortCandidates,
			KeepFragment:   cfg.KeepFragment || *ff.keepFragment,
			Log:            os.Stderr,
		},
		journal: journal,
		format:  *ff.format,
		fields:  fieldList,
	}, nil
}

// execute runs the pipeline, journals it if configured and prints the report.
func (r *fixRun) execute(stdout io.Writer) (*core.FixResult, error) {
	started := time.Now()
	result, err := core.Fix(r.files, r.opts)
	if err != nil {
		return nil, err
	}

	if r.journal != "" {
		j, err := core.OpenJournal(r.journal)
		if err != nil {
			return nil, err
		}
		_, recErr := j.Record(r.mode, started, result)
		closeErr := j.Close()
		if recErr != nil {
			return nil, fmt.Errorf("journal %s: %w", r.journal, recErr)
		}
		if closeErr != nil {
			return nil, closeErr
		}
	}

	switch r.format {
	case "json":
		if err := printFixJSON(stdout, result, r.fields); err != nil {
			return nil, err
		}
	default:
		printFixText(stdout, result, r.fields, r.opts.DryRun)
	}
	return result, nil
}

func runRepair(args []string) error {
	run, err := parseFixArgs("repair", args)
	if err != nil {
		return err
	}
	_, err = run.execute(os.Stdout)
	return err
}

func runCheck(args []string) error {
	run, err := parseFixArgs("check", args)
	if err != nil {
		return err
	}
	result, err := run.execute(os.Stdout)
	if err != nil {
		return err
	}
	if result.Counts.Missing > 0 {
		return fmt.Errorf("%d broken references", result.Counts.Missing)
	}
	return nil
}
