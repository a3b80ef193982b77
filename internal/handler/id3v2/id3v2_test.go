package id3v2

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bogem/id3v2/v2"
	"github.com/solidcopy/readtags/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagBytes(t *testing.T, setup func(tag *id3v2.Tag)) []byte {
	t.Helper()

	tag := id3v2.NewEmptyTag()
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	setup(tag)

	buf := new(bytes.Buffer)
	_, err := tag.WriteTo(buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadTrack_Mp3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "03.mp3")
	data := tagBytes(t, func(tag *id3v2.Tag) {
		tag.SetArtist("Jane Doe\x00John Roe")
		tag.SetTitle("Song")
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, "3/12")
		tag.AddTextFrame("TLEN", id3v2.EncodingUTF8, "185250")
	})
	require.NoError(t, os.WriteFile(path, data, 0o600))

	track, err := (&Id3v2Handler{}).ReadTrack(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"3/12"}, track.Tags[model.TagTrackNumber])
	assert.Equal(t, []string{"Jane Doe", "John Roe"}, track.Tags[model.TagArtist])
	assert.Equal(t, []string{"Song"}, track.Tags[model.TagTitle])
	assert.True(t, track.HasLength)
	assert.Equal(t, 185250*time.Millisecond, track.Length)
}

func TestReadTrack_Latin1Frame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01.mp3")
	data := tagBytes(t, func(tag *id3v2.Tag) {
		// UTF-8のバイト列をISO-8859-1として書き込んだ壊れたタグ
		tag.AddTextFrame(tag.CommonID("Artist"), id3v2.EncodingISO, "JÃ¼rgen")
		tag.AddTextFrame("TRCK", id3v2.EncodingISO, "1")
	})
	require.NoError(t, os.WriteFile(path, data, 0o600))

	track, err := (&Id3v2Handler{}).ReadTrack(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"JÃ¼rgen"}, track.Tags[model.TagArtist])
	_, ok := track.Values(model.TagTitle)
	assert.False(t, ok)
}

// silentFrames returns MPEG-1 Layer III frames (128 kbps, 44.1 kHz, stereo)
// whose side information is all zero.
func silentFrames(count int) []byte {
	const frameSize = 144 * 128000 / 44100

	frame := make([]byte, frameSize)
	copy(frame, []byte{0xff, 0xfb, 0x90, 0x00})

	return bytes.Repeat(frame, count)
}

func TestReadTrack_Mp3WithoutTlen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "04.mp3")
	data := tagBytes(t, func(tag *id3v2.Tag) {
		tag.SetArtist("Jane Doe")
		tag.SetTitle("Song")
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, "4")
	})
	data = append(data, silentFrames(400)...)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	track, err := (&Id3v2Handler{}).ReadTrack(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"4"}, track.Tags[model.TagTrackNumber])
	assert.Equal(t, []string{"Jane Doe"}, track.Tags[model.TagArtist])
	assert.True(t, track.HasLength)
	// 400フレーム × 1152サンプル / 44100Hz
	assert.InDelta(t, 400*1152/44100.0, track.Length.Seconds(), 0.001)
}

func TestReadTrack_Mp3WithoutTag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "05.mp3")
	require.NoError(t, os.WriteFile(path, silentFrames(100), 0o600))

	track, err := (&Id3v2Handler{}).ReadTrack(path)
	require.NoError(t, err)

	assert.Empty(t, track.Tags)
	assert.True(t, track.HasLength)
	assert.InDelta(t, 100*1152/44100.0, track.Length.Seconds(), 0.001)
}

func TestReadTrack_NotMp3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.mp3")
	require.NoError(t, os.WriteFile(path, []byte("plain text, no frames"), 0o600))

	_, err := (&Id3v2Handler{}).ReadTrack(path)
	assert.ErrorIs(t, err, model.ErrUnreadableFile)
}

// dsfBytes builds a DSF file with an empty data chunk and the tag at the end.
func dsfBytes(samplingFrequency uint32, sampleCount uint64, tag []byte) []byte {
	const headerSize = 28 + 52 + 12

	buf := new(bytes.Buffer)
	le := binary.LittleEndian

	metadataPointer := uint64(0)
	if len(tag) > 0 {
		metadataPointer = headerSize
	}

	buf.WriteString("DSD ")
	binary.Write(buf, le, uint64(28))
	binary.Write(buf, le, uint64(headerSize+len(tag)))
	binary.Write(buf, le, metadataPointer)

	buf.WriteString("fmt ")
	binary.Write(buf, le, uint64(52))
	binary.Write(buf, le, uint32(1))         // format version
	binary.Write(buf, le, uint32(0))         // format id
	binary.Write(buf, le, uint32(2))         // channel type
	binary.Write(buf, le, uint32(2))         // channel num
	binary.Write(buf, le, samplingFrequency) // sampling frequency
	binary.Write(buf, le, uint32(1))         // bits per sample
	binary.Write(buf, le, sampleCount)       // sample count
	binary.Write(buf, le, uint32(4096))      // block size per channel
	binary.Write(buf, le, uint32(0))         // reserved

	buf.WriteString("data")
	binary.Write(buf, le, uint64(12))

	buf.Write(tag)
	return buf.Bytes()
}

func TestReadTrack_Dsf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01.dsf")
	tag := tagBytes(t, func(tag *id3v2.Tag) {
		tag.SetArtist("Jane Doe")
		tag.SetTitle("Song")
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, "1")
	})
	require.NoError(t, os.WriteFile(path, dsfBytes(2822400, 2822400*65, tag), 0o600))

	track, err := (&Id3v2Handler{}).ReadTrack(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Jane Doe"}, track.Tags[model.TagArtist])
	assert.Equal(t, []string{"Song"}, track.Tags[model.TagTitle])
	assert.True(t, track.HasLength)
	assert.Equal(t, 65*time.Second, track.Length)
}

func TestReadTrack_DsfWithoutTag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "02.dsf")
	require.NoError(t, os.WriteFile(path, dsfBytes(2822400, 2822400*10, nil), 0o600))

	track, err := (&Id3v2Handler{}).ReadTrack(path)
	require.NoError(t, err)

	assert.Empty(t, track.Tags)
	assert.Equal(t, 10*time.Second, track.Length)
}

func TestParseTlen(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Duration
		wantOK bool
	}{
		{in: "185000", want: 185 * time.Second, wantOK: true},
		{in: " 1500\x00", want: 1500 * time.Millisecond, wantOK: true},
		{in: "", wantOK: false},
		{in: "abc", wantOK: false},
		{in: "0", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseTlen(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
