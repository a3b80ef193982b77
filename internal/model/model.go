package model

import (
	"errors"
	"time"
)

const (
	TagTrackNumber = "TRACKNUMBER"
	TagArtist      = "ARTIST"
	TagTitle       = "TITLE"
	TagLength      = "LENGTH"
)

// RequiredTags are the text tags every reader is asked for, in report order.
var RequiredTags = []string{TagTrackNumber, TagArtist, TagTitle}

// ErrUnreadableFile is wrapped by every reader error for files that cannot be parsed.
var ErrUnreadableFile = errors.New("unreadable audio file")

type Track struct {
	FilePath string
	// タグ名ごとの値 (出現順)
	Tags map[string][]string
	// 再生時間 (HasLength が false なら不明)
	Length    time.Duration
	HasLength bool
}

func NewTrack(filePath string) *Track {
	return &Track{FilePath: filePath, Tags: map[string][]string{}}
}

// Values returns the raw values of a tag and whether any are present.
func (t *Track) Values(name string) ([]string, bool) {
	values := t.Tags[name]
	return values, len(values) > 0
}

// Add appends non-empty values to a tag.
func (t *Track) Add(name string, values ...string) {
	for _, value := range values {
		if value == "" {
			continue
		}
		t.Tags[name] = append(t.Tags[name], value)
	}
}

func (t *Track) SetLength(length time.Duration) {
	t.Length = length
	t.HasLength = true
}
