package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/kasuboski/mediaindex/pkg/logger"
	"github.com/kasuboski/mediaindex/pkg/media"
	"github.com/tidwall/gjson"
)

var (
	_ Prober = (*FFProbe)(nil)

	ErrInvalidOutput = errors.New("invalid ffprobe output")
)

// FFProbe runs the ffprobe binary and reads its json output
type FFProbe struct {
	binary string
}

// NewFFProbe returns a prober for the given ffprobe binary, "ffprobe" is looked up on PATH when empty
func NewFFProbe(binary string) *FFProbe {
	if binary == "" {
		binary = "ffprobe"
	}
	return &FFProbe{binary: binary}
}

// Probe runs ffprobe against path
func (f *FFProbe) Probe(ctx context.Context, path string) (*media.VideoInfo, error) {
	log := logger.FromCtx(ctx, "path", path)

	cmd := exec.CommandContext(ctx, f.binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w: %s", path, err, stderr.String())
	}
	log.Debugw("probed video", "elapsed", time.Since(start))

	return Parse(stdout.Bytes())
}

// Parse reads the output of ffprobe -show_format -show_streams
func Parse(data []byte) (*media.VideoInfo, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidOutput
	}

	doc := gjson.ParseBytes(data)
	streams := doc.Get("streams")
	if !streams.IsArray() {
		return nil, fmt.Errorf("%w: missing streams", ErrInvalidOutput)
	}

	info := &media.VideoInfo{
		Duration: seconds(doc.Get("format.duration")),
	}

	streams.ForEach(func(_, stream gjson.Result) bool {
		codec := stream.Get("codec_name").String()
		lang := stream.Get("tags.language").String()

		switch stream.Get("codec_type").String() {
		case "video":
			// cover art is exposed as a video stream
			if stream.Get("disposition.attached_pic").Int() == 1 || info.Video != nil {
				return true
			}
			info.Video = &media.VideoTrack{
				Codec:  codec,
				Width:  int(stream.Get("width").Int()),
				Height: int(stream.Get("height").Int()),
			}
			if info.Duration == 0 {
				info.Duration = seconds(stream.Get("duration"))
			}
		case "audio":
			info.Audio = append(info.Audio, media.AudioTrack{
				Codec:    codec,
				Channels: int(stream.Get("channels").Int()),
				Language: media.NormalizeLanguage(lang),
			})
		case "subtitle":
			info.Subtitles = append(info.Subtitles, media.SubtitleTrack{
				Codec:    codec,
				Language: media.NormalizeLanguage(lang),
				Forced:   stream.Get("disposition.forced").Int() == 1,
			})
		}
		return true
	})

	return info, nil
}

func seconds(r gjson.Result) time.Duration {
	if !r.Exists() {
		return 0
	}
	return time.Duration(r.Float() * float64(time.Second))
}
