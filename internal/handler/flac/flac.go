package flac

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
	"github.com/solidcopy/readtags/internal/model"
)

type FlacHandler struct {
}

type Blocks = []*flac.MetaDataBlock

func (h *FlacHandler) ReadTrack(filePath string) (*model.Track, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrUnreadableFile, err)
	}
	defer file.Close()

	// フレームは読まずメタデータブロックだけ解析する
	flacFile, err := flac.ParseMetadata(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrUnreadableFile, err)
	}

	comments := getVorbisComments(flacFile.Meta)

	track := model.NewTrack(filePath)
	for _, tagName := range model.RequiredTags {
		track.Add(tagName, getValues(comments, tagName)...)
	}

	if length, ok := getLength(flacFile); ok {
		track.SetLength(length)
	}

	return track, nil
}

func getVorbisComments(blocks Blocks) map[string][]string {
	for _, block := range blocks {
		if block.Type != flac.VorbisComment {
			continue
		}

		comment, err := flacvorbis.ParseFromMetaDataBlock(*block)
		if err != nil {
			continue
		}

		vorbisComments := make(map[string][]string, len(comment.Comments))

		for _, comment := range comment.Comments {
			split := strings.SplitN(comment, "=", 2)
			if len(split) == 2 {
				name := strings.ToUpper(split[0])
				vorbisComments[name] = append(vorbisComments[name], split[1])
			}
		}

		return vorbisComments
	}

	return map[string][]string{}
}

func getValues(comments map[string][]string, commentName string) []string {
	values, ok := comments[commentName]
	if !ok {
		return []string{}
	}
	return values
}

// getLength derives the duration from the STREAMINFO block. A zero sample
// count means the encoder did not know the total and the length is unknown.
func getLength(flacFile *flac.File) (time.Duration, bool) {
	streamInfo, err := flacFile.GetStreamInfo()
	if err != nil || streamInfo.SampleRate <= 0 || streamInfo.SampleCount <= 0 {
		return 0, false
	}

	seconds := float64(streamInfo.SampleCount) / float64(streamInfo.SampleRate)
	return time.Duration(seconds * float64(time.Second)), true
}
