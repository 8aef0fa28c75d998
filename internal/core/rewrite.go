package core

import (
	"os"
	"path/filepath"
	"strings"
)

// replacement substitutes content[start:end] with text.
type replacement struct {
	start int
	end   int
	text  string
}

// applyReplacements copies content, substituting each replacement in order.
// reps must be sorted by start; a replacement starting before the end of the
// previous one is ignored. Bytes outside the replaced ranges are preserved.
func applyReplacements(content string, reps []replacement) string {
	if len(reps) == 0 {
		return content
	}
	var b strings.Builder
	b.Grow(len(content))
	written := 0
	for _, r := range reps {
		if r.start < written || r.end > len(content) || r.start > r.end {
			continue
		}
		b.WriteString(content[written:r.start])
		b.WriteString(r.text)
		written = r.end
	}
	b.WriteString(content[written:])
	return b.String()
}

// writeFileAtomic replaces path with data, keeping its permission bits.
// The data is written to a temporary file in the same directory and renamed
// over path, so a failed write leaves the original intact. A symlinked path is
// resolved first so the link itself survives.
func writeFileAtomic(path string, data []byte) error {
	path, err := filepath.EvalSymlinks(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	perm := info.Mode().Perm()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	// os.CreateTemp uses 0o600; restore the original bits.
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
