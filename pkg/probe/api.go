package probe

import (
	"context"

	"github.com/kasuboski/mediaindex/pkg/media"
)

// Prober extracts track information from a video file
type Prober interface {
	Probe(ctx context.Context, path string) (*media.VideoInfo, error)
}
