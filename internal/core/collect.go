package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// CollectOptions controls how command-line paths become documents.
type CollectOptions struct {
	Exclude []string // doublestar patterns matched against slash paths and base names
}

// skipDirs are never descended into when walking a directory argument.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
}

// CollectDocuments expands args into an ordered, duplicate-free document list.
// Regular files are taken as given, directories are walked for .md files and
// arguments containing glob metacharacters are expanded with doublestar.
func CollectDocuments(args []string, opts CollectOptions) ([]string, error) {
	if err := validateGlobPatterns(opts.Exclude); err != nil {
		return nil, err
	}

	var files []string
	seen := make(map[string]bool)
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			files = append(files, f)
		}
	}

	for _, arg := range args {
		if hasGlobMeta(arg) {
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match %s", arg)
			}
			sort.Strings(matches)
			for _, m := range matches {
				add(m)
			}
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		found, err := collectMarkdownFiles(arg)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	return filterExcludes(files, opts.Exclude), nil
}

// collectMarkdownFiles walks root for .md files, honoring root/.gitignore.
func collectMarkdownFiles(root string) ([]string, error) {
	ignore := loadIgnoreFile(root)
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if d.IsDir() && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		if ignore != nil {
			rel, relErr := filepath.Rel(root, path)
			if relErr == nil {
				if m := ignore.Relative(filepath.ToSlash(rel), d.IsDir()); m != nil && m.Ignore() {
					if d.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}
			}
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// loadIgnoreFile parses root/.gitignore, or returns nil if there is none.
func loadIgnoreFile(root string) gitignore.GitIgnore {
	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	defer f.Close()
	return gitignore.New(f, root, nil)
}

func hasGlobMeta(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}

// validateGlobPatterns checks every pattern is valid doublestar syntax.
func validateGlobPatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern: %s", p)
		}
	}
	return nil
}

// filterExcludes removes files whose slash path or base name matches a pattern.
func filterExcludes(files []string, patterns []string) []string {
	if len(patterns) == 0 {
		return files
	}
	result := make([]string, 0, len(files))
	for _, f := range files {
		slash := filepath.ToSlash(f)
		base := filepath.Base(f)
		excluded := false
		for _, p := range patterns {
			if ok, _ := doublestar.Match(p, slash); ok {
				excluded = true
				break
			}
			if ok, _ := doublestar.Match(p, base); ok {
				excluded = true
				break
			}
		}
		if !excluded {
			result = append(result, f)
		}
	}
	return result
}
