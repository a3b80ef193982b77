package id3v2

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bogem/id3v2/v2"
	"github.com/hajimehoshi/go-mp3"
	"github.com/solidcopy/readtags/internal/model"
)

type Id3v2Handler struct {
}

func (h *Id3v2Handler) ReadTrack(filePath string) (*model.Track, error) {

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrUnreadableFile, err)
	}
	defer file.Close()

	track := model.NewTrack(filePath)
	isDsf := strings.EqualFold(filepath.Ext(filePath), ".dsf")

	if isDsf {
		length, err := readDsfLength(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrUnreadableFile, err)
		}
		track.SetLength(length)

		pointer, err := seekToMetadataChunk(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrUnreadableFile, err)
		}

		if pointer == 0 {
			return track, nil
		}
	}

	tags, err := id3v2.ParseReader(file, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrUnreadableFile, err)
	}

	track.Add(model.TagTrackNumber, getTextValues(tags, "TRCK")...)
	track.Add(model.TagArtist, getTextValues(tags, tags.CommonID("Artist"))...)
	track.Add(model.TagTitle, getTextValues(tags, tags.CommonID("Title"))...)

	if isDsf {
		return track, nil
	}

	if length, ok := parseTlen(tags.GetTextFrame("TLEN").Text); ok {
		track.SetLength(length)
		return track, nil
	}

	length, err := readMpegLength(file)
	if err != nil {
		// タグもMPEGフレームも無ければMP3ではない
		if !tags.HasFrames() {
			return nil, fmt.Errorf("%w: no ID3v2 tag or MPEG frames found", model.ErrUnreadableFile)
		}
		return track, nil
	}
	track.SetLength(length)

	return track, nil
}

// getTextValues collects every value of a text frame. v2.4 separates
// multiple values with NUL, and a frame may also occur more than once.
func getTextValues(tags *id3v2.Tag, id string) []string {
	values := []string{}
	for _, frame := range tags.GetFrames(id) {
		textFrame, ok := frame.(id3v2.TextFrame)
		if !ok {
			continue
		}
		values = append(values, strings.Split(textFrame.Text, "\x00")...)
	}
	return values
}

// TLEN holds the length in milliseconds.
func parseTlen(s string) (time.Duration, bool) {
	s = strings.TrimRight(strings.TrimSpace(s), "\x00")
	if s == "" {
		return 0, false
	}

	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ms <= 0 {
		return 0, false
	}

	return time.Duration(ms) * time.Millisecond, true
}

// readMpegLength scans the MPEG frames after the tag to measure the length.
func readMpegLength(file *os.File) (time.Duration, error) {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	decoder, err := mp3.NewDecoder(file)
	if err != nil {
		return 0, err
	}

	// デコード後のPCMは1サンプルあたり4バイト (16bit ステレオ)
	const sampleSize = 4
	samples := decoder.Length() / sampleSize
	if samples <= 0 || decoder.SampleRate() <= 0 {
		return 0, errors.New("MPEG stream has no samples")
	}

	seconds := float64(samples) / float64(decoder.SampleRate())
	return time.Duration(seconds * float64(time.Second)), nil
}

// readDsfLength reads the sampling frequency and sample count from the
// "fmt " chunk that directly follows the 28 byte "DSD " chunk.
func readDsfLength(file *os.File) (time.Duration, error) {
	buff := make([]byte, 44)
	if _, err := file.ReadAt(buff, 28); err != nil {
		return 0, fmt.Errorf("DSF fmt chunk could not be read: %w", err)
	}

	if string(buff[0:4]) != "fmt " {
		return 0, errors.New("DSF fmt chunk not found")
	}

	samplingFrequency := binary.LittleEndian.Uint32(buff[28:32])
	sampleCount := binary.LittleEndian.Uint64(buff[36:44])
	if samplingFrequency == 0 {
		return 0, errors.New("DSF sampling frequency is zero")
	}

	seconds := float64(sampleCount) / float64(samplingFrequency)
	return time.Duration(seconds * float64(time.Second)), nil
}

// DSFはID3v2がファイルの先頭ではなく末尾にある。
// メタデータチャンクの開始位置を取得して、
// その位置までファイルの読み込み位置を進める。
func seekToMetadataChunk(file *os.File) (int64, error) {

	// "DSD "の4バイト、チャンクサイズの8バイト、合計ファイルサイズの8バイトの
	// 計20バイトをスキップする
	ret, err := file.Seek(20, io.SeekStart)
	if err != nil {
		return 0, err
	}
	if ret < 20 {
		return 0, errors.New("DSF header is malformed")
	}

	// メタデータチャンクの先頭ポインタを取得する
	buff := make([]byte, 4)
	_, err = io.ReadFull(file, buff)
	if err != nil {
		return 0, errors.New("DSF header could not be read")
	}
	pointer := int64(binary.LittleEndian.Uint32(buff))

	if pointer != 0 {
		if _, err := file.Seek(pointer, io.SeekStart); err != nil {
			return 0, err
		}
	}

	return pointer, nil
}
