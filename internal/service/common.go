package service

import (
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// AllFiles matches every name with an extension.
const AllFiles = "*.*"

// EscapeGlob neutralizes the pattern characters of path so that
// filepath.Glob matches it literally. The volume name is left as is.
func EscapeGlob(path string) string {
	volume := filepath.VolumeName(path)
	rest := path[len(volume):]

	escaped := new(strings.Builder)
	escaped.WriteString(volume)

	for _, r := range rest {
		switch {
		case r == '*' || r == '?' || r == '[':
			escaped.WriteRune('[')
			escaped.WriteRune(r)
			escaped.WriteRune(']')
		case r == '\\' && runtime.GOOS != "windows":
			// filepath.Match には \ がエスケープ文字になる
			escaped.WriteString(`\\`)
		default:
			escaped.WriteRune(r)
		}
	}

	return escaped.String()
}

// ListEntries returns the entries of dir matched by AllFiles, sorted by path.
// Directories whose names match are included but not descended into. Names
// starting with a dot are skipped as a shell would.
func ListEntries(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(EscapeGlob(dir), AllFiles))
	if err != nil {
		return nil, err
	}

	entries := make([]string, 0, len(matches))
	for _, match := range matches {
		if strings.HasPrefix(filepath.Base(match), ".") {
			continue
		}
		entries = append(entries, match)
	}

	sort.Strings(entries)

	return entries, nil
}
