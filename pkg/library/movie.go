package library

import (
	"context"

	"github.com/kasuboski/mediaindex/pkg/logger"
	"github.com/kasuboski/mediaindex/pkg/media"
)

// ScanMovie builds the movie in src.Dir and merges it with prev, the movie stored by the last scan
func (l *Library) ScanMovie(ctx context.Context, src Source, prev *media.Movie, opts ScanOptions) (MovieResult, error) {
	ctx = logger.With(ctx, "item", src.Dir.Path)
	log := logger.FromCtx(ctx)

	listing, err := Walk(ctx, src.FS, src.Dir.Path, false)
	if err != nil {
		return MovieResult{}, err
	}

	var prevItem *media.MediaItem
	if prev != nil {
		prevItem = &prev.MediaItem
	} else {
		opts.OnlyNfo = false
	}

	movie := &media.Movie{MediaItem: beginItem(src, media.KindMovie, prevItem)}

	files := listing.Files()
	classes := make([]Class, len(files))
	for i, f := range files {
		classes[i] = Classify(f.Rel, false)
	}

	// pass 1: the first video is the movie
	index := sidecarIndex{}
	for i, c := range classes {
		if c.Kind != Video {
			continue
		}
		video := files[i].Identity
		movie.Video = &video
		index[c.Base] = 0
		break
	}

	// pass 2: sidecars
	var nfoFile *media.FileIdentity
	if movie.Video != nil {
		nfoFile = find(listing, media.TrimExt(movie.Video.Path)+".nfo")
	}
	if nfoFile == nil {
		nfoFile = find(listing, "movie.nfo")
	}

	var thumbs *Thumbnails
	if !opts.OnlyNfo {
		var prevThumbs []media.Thumbnail
		if prev != nil {
			prevThumbs = prev.Thumbnails
		}
		thumbs = NewThumbnails(prevThumbs)
	}

	for i, c := range classes {
		file := files[i].Identity

		switch c.Kind {
		case Nfo:
			if nfoFile == nil {
				nfoFile = &file
			}
		case Subtitle:
			if _, qualifier, ok := index.resolve(c.Base); ok {
				movie.Subtitles = append(movie.Subtitles, subtitle(file, qualifier))
			}
		case Image:
			if thumbs == nil {
				continue
			}
			if aspect, qualified, ok := movieImage(c, index); ok {
				thumbs.Add(file, aspect, nil, qualified)
			} else {
				log.Debugw("ignoring image", "file", file.Path)
			}
		}
	}
	sortSubtitles(movie.Subtitles)

	var prevNfoFile *media.FileIdentity
	var prevNfo *media.Nfo
	if prev != nil {
		prevNfoFile, prevNfo = prev.NfoFile, prev.Nfo
	}
	movie.NfoFile, movie.Nfo = loadNfo(ctx, src, nfoFile, prevNfoFile, prevNfo, opts.OnlyNfo)

	var deletions media.Deletions
	if thumbs != nil {
		thumbs.Finalize()
		movie.Thumbnails = thumbs.Live()
		deletions.Thumbnails = thumbs.Deleted()
	} else {
		movie.Thumbnails = prev.Thumbnails
	}

	if movie.Video != nil {
		switch {
		case prev != nil && prev.Video != nil && prev.Video.Equal(*movie.Video):
			movie.VideoInfo = prev.VideoInfo
		case opts.OnlyNfo:
			movie.VideoInfo = prev.VideoInfo
		default:
			movie.VideoInfo = l.probe(ctx, src, *movie.Video)
		}
	}

	if movie.Nfo != nil && movie.Nfo.Runtime != nil {
		movie.Runtime = movie.Nfo.Runtime
	} else {
		movie.Runtime = movie.VideoInfo.RuntimeMinutes()
	}

	l.finishItem(&movie.MediaItem, prevItem, listing)

	accepted := (movie.Nfo != nil && len(movie.Thumbnails) > 0) || movie.Video != nil
	if !accepted {
		log.Debugw("directory is not a movie")
	}

	return MovieResult{Movie: movie, Deletions: deletions, Accepted: accepted}, nil
}

// movieImage resolves the aspect of an image in a movie directory: bare keywords like poster.jpg,
// qualified names like <movie>-fanart.jpg, and <movie>.jpg or any .tbn as the poster.
func movieImage(c Class, index sidecarIndex) (media.Aspect, bool, bool) {
	if c.Aspect != "" {
		return c.Aspect, false, true
	}

	if _, qualifier, ok := index.resolve(c.Base); ok {
		aspect, qualified := sidecarAspect(qualifier)
		return aspect, qualified, aspect != ""
	}

	if prefix, qualifier := splitQualifier(c.Base); prefix != "" && qualifier != "" {
		if aspect := AspectKeyword(qualifier); aspect != "" {
			return aspect, true, true
		}
	}

	if c.Ext == "tbn" {
		return media.AspectPoster, false, true
	}

	return "", false, false
}
