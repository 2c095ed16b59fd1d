package metadata

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaki95/tracksplit/internal/domain"
)

// writeID3v23 writes a file holding only an ID3v2.3 tag with the given text
// frames, which is what ffmpeg puts in front of the copied audio.
func writeID3v23(t *testing.T, frames [][2]string) string {
	t.Helper()

	var body bytes.Buffer
	for _, frame := range frames {
		content := append([]byte{0x00}, []byte(frame[1])...)
		body.WriteString(frame[0])
		require.NoError(t, binary.Write(&body, binary.BigEndian, uint32(len(content))))
		body.Write([]byte{0x00, 0x00})
		body.Write(content)
	}

	size := body.Len()
	header := []byte{
		'I', 'D', '3', 0x03, 0x00, 0x00,
		byte(size>>21) & 0x7f, byte(size>>14) & 0x7f, byte(size>>7) & 0x7f, byte(size) & 0x7f,
	}

	path := filepath.Join(t.TempDir(), "track.mp3")
	require.NoError(t, os.WriteFile(path, append(header, body.Bytes()...), 0644))
	return path
}

func TestInspect(t *testing.T) {
	path := writeID3v23(t, [][2]string{{"TIT2", "Lucky I Got What I Want"}, {"TRCK", "2"}})

	info, err := NewInspector().Inspect(path)

	require.NoError(t, err)
	assert.Equal(t, "Lucky I Got What I Want", info.Title)
	assert.Equal(t, 2, info.TrackNumber)
}

func TestInspectMissingFile(t *testing.T) {
	_, err := NewInspector().Inspect(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVerify(t *testing.T) {
	path := writeID3v23(t, [][2]string{{"TIT2", "Drops"}, {"TRCK", "3"}})
	inspector := NewInspector()

	tests := []struct {
		name    string
		track   *domain.Track
		wantErr bool
	}{
		{name: "matching", track: &domain.Track{Title: "Drops", TrackNumber: 3, StartTime: "42:09"}},
		{name: "wrong title", track: &domain.Track{Title: "Intro", TrackNumber: 3, StartTime: "42:09"}, wantErr: true},
		{name: "wrong number", track: &domain.Track{Title: "Drops", TrackNumber: 1, StartTime: "42:09"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := inspector.Verify(path, tt.track)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTagMismatch)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
