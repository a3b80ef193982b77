package m4a

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/abema/go-mp4"
	"github.com/solidcopy/readtags/internal/model"
	"golang.org/x/exp/slices"
)

type M4aHandler struct{}

func (h *M4aHandler) ReadTrack(filePath string) (*model.Track, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrUnreadableFile, err)
	}
	defer file.Close()

	track := model.NewTrack(filePath)

	parents := []string{"moov", "udta", "meta", "ilst"}
	target := []string{"(c)nam", "(c)ART", "trkn"}

	var itemName string
	foundMoov := false

	_, err = mp4.ReadBoxStructure(file, func(h *mp4.ReadHandle) (interface{}, error) {

		if h.BoxInfo.Type == mp4.BoxTypeMvhd() {
			box, _, err := h.ReadPayload()
			if err != nil {
				return nil, err
			}
			if mvhd, ok := box.(*mp4.Mvhd); ok {
				if length, ok := getLength(mvhd); ok {
					track.SetLength(length)
				}
			}
			return nil, nil
		}

		if h.BoxInfo.IsSupportedType() {

			typeName := h.BoxInfo.Type.String()
			if typeName == "moov" {
				foundMoov = true
			}

			if slices.Contains(parents, typeName) || slices.Contains(target, typeName) {
				itemName = typeName
				return h.Expand()
			}

			if typeName == "data" {

				buff := new(bytes.Buffer)
				if _, err := h.ReadData(buff); err != nil {
					return nil, err
				}

				// 最初の8バイトはデータ本体ではなさそうなので削除
				if buff.Len() < 8 {
					return nil, nil
				}
				data := buff.Bytes()[8:]

				switch itemName {
				case "(c)nam":
					track.Add(model.TagTitle, string(data))
				case "(c)ART":
					track.Add(model.TagArtist, string(data))
				case "trkn":
					if len(data) >= 4 {
						trackNumber := int(binary.BigEndian.Uint16(data[2:4]))
						if trackNumber > 0 {
							track.Add(model.TagTrackNumber, strconv.Itoa(trackNumber))
						}
					}
				}
			}
		}
		return nil, nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrUnreadableFile, err)
	}

	if !foundMoov {
		return nil, fmt.Errorf("%w: no moov box found", model.ErrUnreadableFile)
	}

	return track, nil
}

func getLength(mvhd *mp4.Mvhd) (time.Duration, bool) {
	if mvhd.Timescale == 0 {
		return 0, false
	}

	var units uint64
	if mvhd.GetVersion() == 0 {
		units = uint64(mvhd.DurationV0)
	} else {
		units = mvhd.DurationV1
	}

	seconds := float64(units) / float64(mvhd.Timescale)
	return time.Duration(seconds * float64(time.Second)), true
}
