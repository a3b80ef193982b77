package handler

import (
	"path/filepath"
	"strings"

	"github.com/solidcopy/readtags/internal/handler/flac"
	"github.com/solidcopy/readtags/internal/handler/generic"
	"github.com/solidcopy/readtags/internal/handler/id3v2"
	"github.com/solidcopy/readtags/internal/handler/m4a"
	"github.com/solidcopy/readtags/internal/model"
)

type FileHandler interface {
	ReadTrack(filePath string) (*model.Track, error)
}

func NewHandler(filePath string) FileHandler {
	extension := strings.ToLower(filepath.Ext(filePath))
	switch extension {
	case ".mp3", ".dsf":
		return &id3v2.Id3v2Handler{}
	case ".flac":
		return &flac.FlacHandler{}
	case ".m4a", ".m4b", ".mp4":
		return &m4a.M4aHandler{}
	default:
		return &generic.GenericHandler{}
	}
}

// Dispatcher picks a handler by file extension for every call.
type Dispatcher struct{}

func (Dispatcher) ReadTrack(filePath string) (*model.Track, error) {
	return NewHandler(filePath).ReadTrack(filePath)
}
