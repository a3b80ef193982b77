package tracklist

import "fmt"

// FormatLine renders the line format expected by the track parser. The title
// comes before the artist.
func FormatLine(fields Fields) string {
	return fmt.Sprintf("%s. %s – %s (%s)", fields.TrackNumber, fields.Title, fields.Artist, fields.Length)
}
