package probe

import (
	"context"
	"testing"
	"time"

	"github.com/kasuboski/mediaindex/pkg/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ffprobeOutput = `{
    "streams": [
        {
            "index": 0,
            "codec_name": "h264",
            "codec_type": "video",
            "width": 1920,
            "height": 1080,
            "disposition": {"default": 1, "attached_pic": 0}
        },
        {
            "index": 1,
            "codec_name": "mjpeg",
            "codec_type": "video",
            "width": 600,
            "height": 900,
            "disposition": {"attached_pic": 1}
        },
        {
            "index": 2,
            "codec_name": "aac",
            "codec_type": "audio",
            "channels": 6,
            "tags": {"language": "eng"}
        },
        {
            "index": 3,
            "codec_name": "ac3",
            "codec_type": "audio",
            "channels": 2,
            "tags": {"language": "und"}
        },
        {
            "index": 4,
            "codec_name": "subrip",
            "codec_type": "subtitle",
            "tags": {"language": "deu"},
            "disposition": {"forced": 1}
        }
    ],
    "format": {
        "filename": "movie.mkv",
        "duration": "7080.500000"
    }
}`

func TestParse(t *testing.T) {
	got, err := Parse([]byte(ffprobeOutput))
	require.NoError(t, err)

	assert.Equal(t, 7080*time.Second+500*time.Millisecond, got.Duration)
	assert.Equal(t, &media.VideoTrack{Codec: "h264", Width: 1920, Height: 1080}, got.Video)
	assert.Equal(t, []media.AudioTrack{
		{Codec: "aac", Channels: 6, Language: "eng"},
		{Codec: "ac3", Channels: 2, Language: media.UnknownLanguage},
	}, got.Audio)
	assert.Equal(t, []media.SubtitleTrack{
		{Codec: "subrip", Language: "deu", Forced: true},
	}, got.Subtitles)
	assert.Equal(t, 118, *got.RuntimeMinutes())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "ffprobe: command not found"},
		{"no streams", `{"format": {"duration": "1.0"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidOutput)
		})
	}
}

func TestFFProbe_MissingBinary(t *testing.T) {
	p := NewFFProbe("/nonexistent/ffprobe")
	_, err := p.Probe(context.Background(), "movie.mkv")
	assert.Error(t, err)
}
