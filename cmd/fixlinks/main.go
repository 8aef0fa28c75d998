package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "repair":
		err = runRepair(os.Args[2:])
	case "check":
		err = runCheck(os.Args[2:])
	case "history":
		err = runHistory(os.Args[2:])
	case "--version":
		printVersion(os.Stdout)
		return
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion(w io.Writer) {
	v := version
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	fmt.Fprintf(w, "fixlinks version %s\n", v)
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: fixlinks <command> [options] [paths...]

Commands:
  repair     Rewrite broken relative links to the closest file with the same name
  check      Report broken links without writing (exit 1 if any)
  history    List runs recorded in the journal

Paths may be files, directories (searched for *.md) or glob patterns
such as 'docs/**/*.md'.

Run 'fixlinks <command> --help' for command-specific help.
Use 'fixlinks --version' for version information.
`)
}
