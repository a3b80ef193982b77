// Package generic reads tags and properties through TagLib. It is the
// fallback for extensions without a dedicated handler, such as Ogg Vorbis,
// Opus, WAV and AIFF.
package generic

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/solidcopy/readtags/internal/model"
	"go.senan.xyz/taglib"
)

type GenericHandler struct{}

// ReadTrack keeps every value of a repeated field in file order. The length
// stays unknown when TagLib cannot compute it.
func (h *GenericHandler) ReadTrack(filePath string) (*model.Track, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrUnreadableFile, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: is a directory", model.ErrUnreadableFile)
	}

	tags, err := taglib.ReadTags(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrUnreadableFile, err)
	}

	track := model.NewTrack(filePath)
	track.Add(model.TagTrackNumber, tags[taglib.TrackNumber]...)
	track.Add(model.TagArtist, tags[taglib.Artist]...)
	track.Add(model.TagTitle, tags[taglib.Title]...)

	if length, err := readLength(filePath); err == nil {
		track.SetLength(length)
	}

	return track, nil
}

var errNoLength = errors.New("audio properties carry no length")

// TagLib reports 0 when a container has no usable length.
func readLength(filePath string) (time.Duration, error) {
	properties, err := taglib.ReadProperties(filePath)
	if err != nil {
		return 0, err
	}
	if properties.Length <= 0 {
		return 0, errNoLength
	}
	return properties.Length, nil
}
