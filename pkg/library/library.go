package library

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/kasuboski/mediaindex/pkg/logger"
	"github.com/kasuboski/mediaindex/pkg/media"
	"github.com/kasuboski/mediaindex/pkg/probe"
)

// Library builds movies and shows from their directories and merges them with what was stored
// by a previous scan
type Library struct {
	prober probe.Prober
	now    func() time.Time
}

type Option func(*Library)

// WithClock replaces the clock used to stamp renamed items
func WithClock(now func() time.Time) Option {
	return func(l *Library) {
		l.now = now
	}
}

// New creates a library. A nil prober skips video probing.
func New(prober probe.Prober, opts ...Option) *Library {
	l := &Library{
		prober: prober,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Source locates an item directory inside a collection
type Source struct {
	// FS is rooted at the collection directory
	FS fs.FS
	// Root is the collection directory on disk, used to hand absolute paths to the prober
	Root         string
	CollectionID int64
	// Dir is the item directory, its path relative to the collection root
	Dir media.FileIdentity
}

func (s Source) absolute(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(s.Dir.Path), filepath.FromSlash(rel))
}

type ScanOptions struct {
	// OnlyNfo re-parses metadata without touching images or probing videos
	OnlyNfo bool
}

type MovieResult struct {
	Movie     *media.Movie
	Deletions media.Deletions
	// Accepted is false when the directory is not a valid movie
	Accepted bool
}

type ShowResult struct {
	Show      *media.TVShow
	Deletions media.Deletions
	// Accepted is false when the directory is not a valid show
	Accepted bool
}

func (l *Library) probe(ctx context.Context, src Source, video media.FileIdentity) *media.VideoInfo {
	if l.prober == nil {
		return nil
	}

	log := logger.FromCtx(ctx)
	info, err := l.prober.Probe(ctx, src.absolute(video.Path))
	if err != nil {
		log.Warnw("failed to probe video", "video", video.Path, "error", err)
		return nil
	}

	return info
}
