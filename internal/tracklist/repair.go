package tracklist

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// RepairEncoding undoes UTF-8 text that was decoded as ISO-8859-1 by the tag
// reader ("JÃ¼rgen" becomes "Jürgen"). ok is false when the value cannot be
// such mojibake, in which case value is returned unchanged.
func RepairEncoding(value string) (repaired string, ok bool) {
	raw, err := charmap.ISO8859_1.NewEncoder().String(value)
	if err != nil {
		return value, false
	}

	if !utf8.ValidString(raw) {
		return value, false
	}

	return raw, true
}
