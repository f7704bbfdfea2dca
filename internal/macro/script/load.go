package script

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultPath is the macro file used when none is given.
const DefaultPath = "m/test.pym"

// ReadLines reads a macro file and splits it into lines.
// A trailing newline does not produce an empty final line, and CRLF
// endings and a UTF-8 byte order mark are tolerated.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	return SplitLines(data), nil
}

// SplitLines splits script text into lines.
func SplitLines(data []byte) []string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Load reads and builds the macro file at path.
func Load(path string) (*Program, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	return Build(path, lines)
}

// Rewrite replaces the macro file at path with the canonical lines of the
// program it builds. A file that fails to build is left alone. The file is
// only written if its text changes, and the write is atomic (temporary file
// and rename). It reports whether the file changed.
func Rewrite(path string) (bool, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return false, err
	}

	prog, err := Build(path, lines)
	if err != nil {
		return false, err
	}
	canon := prog.Lines()

	if slices.Equal(lines, canon) {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat macro file: %w", err)
	}

	data := []byte(strings.Join(canon, "\n") + "\n")

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return false, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return false, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("rename temp file: %w", err)
	}

	return true, nil
}
