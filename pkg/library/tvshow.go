package library

import (
	"context"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/kasuboski/mediaindex/pkg/logger"
	"github.com/kasuboski/mediaindex/pkg/media"
)

type episodeScan struct {
	episode   media.Episode
	prevVideo *media.FileIdentity
	nfo       *media.FileIdentity
	thumbs    *Thumbnails
}

// ScanShow builds the show in src.Dir and merges it with prev, the show stored by the last scan.
// Previous episodes start the scan deleted and are revived when their video is found again.
func (l *Library) ScanShow(ctx context.Context, src Source, prev *media.TVShow, opts ScanOptions) (ShowResult, error) {
	ctx = logger.With(ctx, "item", src.Dir.Path)
	log := logger.FromCtx(ctx)

	listing, err := Walk(ctx, src.FS, src.Dir.Path, true)
	if err != nil {
		return ShowResult{}, err
	}

	var prevItem *media.MediaItem
	if prev != nil {
		prevItem = &prev.MediaItem
	} else {
		opts.OnlyNfo = false
	}

	show := &media.TVShow{MediaItem: beginItem(src, media.KindTVShow, prevItem)}

	var prevOrder []string
	prevByBase := map[string]media.Episode{}
	wasDeleted := map[string]bool{}
	if prev != nil {
		for _, ep := range prev.Episodes() {
			e := *ep
			wasDeleted[e.Base()] = e.Deleted
			e.State = transition(e.State, media.LifecycleDeleted)
			e.Deleted = true
			prevByBase[e.Base()] = e
			prevOrder = append(prevOrder, e.Base())
		}
	}

	files := listing.Files()
	classes := make([]Class, len(files))
	for i, f := range files {
		classes[i] = Classify(f.Rel, false)
	}

	// pass 1: episode videos
	var episodes []*episodeScan
	index := sidecarIndex{}
	taken := map[[2]int]string{}
	for i, c := range classes {
		if c.Kind != Video {
			continue
		}

		num, ok := ParseEpisode(path.Base(c.Base), c.SeasonHint)
		if !ok {
			log.Debugw("not an episode", "file", files[i].Rel)
			continue
		}

		key := [2]int{num.Season, num.Episode}
		if first, ok := taken[key]; ok {
			log.Infow("duplicate episode, keeping first file", "file", files[i].Rel, "kept", first)
			continue
		}
		taken[key] = files[i].Rel

		scan := &episodeScan{}
		if ep, ok := prevByBase[c.Base]; ok {
			delete(prevByBase, c.Base)
			ep.State = transition(ep.State, media.LifecycleUnchanged)
			ep.Deleted = false
			video := ep.Video
			scan.prevVideo = &video
			scan.episode = ep
		} else {
			scan.episode = media.Episode{State: media.LifecycleNew}
		}

		ep := &scan.episode
		ep.TVShowID = show.ID
		ep.CollectionID = src.CollectionID
		ep.Directory = episodeDir(listing, src.Dir, path.Dir(files[i].Rel))
		ep.Video = files[i].Identity
		ep.SeasonNumber = num.Season
		ep.EpisodeNumber = num.Episode
		ep.Double = num.Double
		ep.Subtitles = nil

		if !opts.OnlyNfo {
			scan.thumbs = NewThumbnails(ep.Thumbnails)
		}

		index[c.Base] = len(episodes)
		episodes = append(episodes, scan)
	}

	// pass 2: show level files and episode sidecars
	var showNfo *media.FileIdentity
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
		top := !strings.Contains(file.Path, "/")

		switch c.Kind {
		case Nfo:
			if top && strings.EqualFold(c.Base, "tvshow") {
				showNfo = &file
				continue
			}
			if pos, ok := index[c.Base]; ok {
				episodes[pos].nfo = &file
			}
		case Subtitle:
			if pos, qualifier, ok := index.resolve(c.Base); ok {
				ep := &episodes[pos].episode
				ep.Subtitles = append(ep.Subtitles, subtitle(file, qualifier))
			}
		case SeasonImage:
			if thumbs != nil {
				season := c.Season
				thumbs.Add(file, c.Aspect, &season, c.Qualified)
			}
		case Image:
			if thumbs == nil {
				continue
			}

			if pos, qualifier, ok := index.resolve(c.Base); ok {
				if aspect, qualified := sidecarAspect(qualifier); aspect != "" {
					episodes[pos].thumbs.Add(file, aspect, nil, qualified)
				}
				continue
			}

			if c.Aspect != "" {
				switch {
				case top:
					thumbs.Add(file, c.Aspect, nil, false)
				case c.SeasonHint != nil:
					season := strconv.Itoa(*c.SeasonHint)
					thumbs.Add(file, c.Aspect, &season, false)
				}
				continue
			}

			if top {
				if prefix, qualifier := splitQualifier(c.Base); prefix != "" && AspectKeyword(qualifier) != "" {
					thumbs.Add(file, AspectKeyword(qualifier), nil, true)
					continue
				}
				if c.Ext == "tbn" {
					thumbs.Add(file, media.AspectPoster, nil, false)
					continue
				}
			}

			log.Debugw("ignoring image", "file", file.Path)
		}
	}

	var prevNfoFile *media.FileIdentity
	var prevNfo *media.Nfo
	if prev != nil {
		prevNfoFile, prevNfo = prev.NfoFile, prev.Nfo
	}
	show.NfoFile, show.Nfo = loadNfo(ctx, src, showNfo, prevNfoFile, prevNfo, opts.OnlyNfo)

	var deletions media.Deletions
	if thumbs != nil {
		thumbs.Finalize()
		show.Thumbnails = thumbs.Live()
		deletions.Thumbnails = thumbs.Deleted()
	} else {
		show.Thumbnails = prev.Thumbnails
	}

	for _, scan := range episodes {
		l.finishEpisode(ctx, src, scan, opts)
		if scan.thumbs != nil {
			deletions.Thumbnails = append(deletions.Thumbnails, scan.thumbs.Deleted()...)
		}
	}

	show.Seasons = assembleSeasons(episodes)

	for _, base := range prevOrder {
		ep, ok := prevByBase[base]
		if !ok || wasDeleted[base] {
			continue
		}
		deletions.Episodes = append(deletions.Episodes, ep)
		deletions.Thumbnails = append(deletions.Thumbnails, ep.Thumbnails...)
	}

	l.finishItem(&show.MediaItem, prevItem, listing)

	accepted := (show.Nfo != nil && len(show.Thumbnails) > 0) || show.EpisodeCount() > 0
	if !accepted {
		log.Debugw("directory is not a show")
	}

	return ShowResult{Show: show, Deletions: deletions, Accepted: accepted}, nil
}

func (l *Library) finishEpisode(ctx context.Context, src Source, scan *episodeScan, opts ScanOptions) {
	ep := &scan.episode

	ep.NfoFile, ep.Nfo = loadNfo(ctx, src, scan.nfo, ep.NfoFile, ep.Nfo, opts.OnlyNfo)
	ep.Aired, ep.Runtime, ep.DisplaySeason, ep.DisplayEpisode = "", nil, nil, nil
	if ep.Nfo != nil {
		ep.Aired = ep.Nfo.Aired
		ep.Runtime = ep.Nfo.Runtime
		ep.DisplaySeason = ep.Nfo.DisplaySeason
		ep.DisplayEpisode = ep.Nfo.DisplayEpisode
	}

	switch {
	case scan.prevVideo != nil && scan.prevVideo.Equal(ep.Video):
	case opts.OnlyNfo:
	default:
		ep.VideoInfo = l.probe(ctx, src, ep.Video)
	}

	if ep.Runtime == nil {
		ep.Runtime = ep.VideoInfo.RuntimeMinutes()
	}

	if scan.thumbs != nil {
		scan.thumbs.Finalize()
		ep.Thumbnails = scan.thumbs.Live()
	}

	sortSubtitles(ep.Subtitles)
}

// assembleSeasons groups the retained episodes. Seasons without episodes are dropped.
func assembleSeasons(episodes []*episodeScan) []media.Season {
	bySeason := map[int]*media.Season{}
	for _, scan := range episodes {
		ep := scan.episode
		if ep.Video.Path == "" || ep.Deleted {
			continue
		}

		season, ok := bySeason[ep.SeasonNumber]
		if !ok {
			season = &media.Season{Number: ep.SeasonNumber}
			bySeason[ep.SeasonNumber] = season
		}
		season.Episodes = append(season.Episodes, ep)
	}

	seasons := make([]media.Season, 0, len(bySeason))
	for _, season := range bySeason {
		sort.Slice(season.Episodes, func(i, j int) bool {
			return season.Episodes[i].EpisodeNumber < season.Episodes[j].EpisodeNumber
		})
		seasons = append(seasons, *season)
	}
	sort.Slice(seasons, func(i, j int) bool {
		return seasons[i].Number < seasons[j].Number
	})

	if len(seasons) == 0 {
		return nil
	}
	return seasons
}

// episodeDir is the identity of the directory holding an episode, the show directory itself for
// episodes at the top level
func episodeDir(listing Listing, showDir media.FileIdentity, dir string) media.FileIdentity {
	if dir == "." {
		return showDir
	}
	if e, ok := listing.Find(dir); ok {
		return e.Identity
	}
	return media.FileIdentity{Path: dir}
}
