// Package tracklist turns the raw tags of one audio file into a line for the
// MusicBrainz track parser.
package tracklist

import (
	"fmt"
	"strings"
	"time"

	"github.com/solidcopy/readtags/internal/model"
)

const (
	MissingTag    = "(…)"
	MissingLength = "…"
	Separator     = " / "
)

// Fields are the display values of one tracklist line. Every field is always
// set, missing data is replaced by a placeholder.
type Fields struct {
	TrackNumber string
	Artist      string
	Title       string
	Length      string
}

// Normalize builds the display fields of a track and lists the tags that were
// missing, in the order TRACKNUMBER, ARTIST, TITLE, LENGTH.
func Normalize(track *model.Track) (Fields, []string) {
	fields := Fields{}
	missing := []string{}

	if values, ok := track.Values(model.TagTrackNumber); ok {
		fields.TrackNumber = trackNumber(values[0])
	} else {
		fields.TrackNumber = MissingTag
		missing = append(missing, model.TagTrackNumber)
	}

	if values, ok := track.Values(model.TagArtist); ok {
		fields.Artist = joinValues(values)
	} else {
		fields.Artist = MissingTag
		missing = append(missing, model.TagArtist)
	}

	if values, ok := track.Values(model.TagTitle); ok {
		fields.Title = joinValues(values)
	} else {
		fields.Title = MissingTag
		missing = append(missing, model.TagTitle)
	}

	if track.HasLength {
		fields.Length = FormatLength(track.Length)
	} else {
		fields.Length = MissingLength
		missing = append(missing, model.TagLength)
	}

	return fields, missing
}

// trackNumber drops the total from values like "3/12".
func trackNumber(value string) string {
	number, _, _ := strings.Cut(value, "/")
	return number
}

func joinValues(values []string) string {
	repaired := make([]string, 0, len(values))
	for _, value := range values {
		value, _ = RepairEncoding(value)
		repaired = append(repaired, value)
	}
	return strings.Join(repaired, Separator)
}

// FormatLength renders whole seconds as MM:SS. Minutes are not wrapped into
// hours, an hour long track is "60:00".
func FormatLength(length time.Duration) string {
	seconds := int64(length / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
