package library

import (
	"context"
	"path"
	"sort"

	"github.com/kasuboski/mediaindex/pkg/logger"
	"github.com/kasuboski/mediaindex/pkg/media"
	"github.com/kasuboski/mediaindex/pkg/nfo"
)

// beginItem carries the stable fields of the previous item into a fresh scan
func beginItem(src Source, kind media.Kind, prev *media.MediaItem) media.MediaItem {
	item := media.MediaItem{
		CollectionID: src.CollectionID,
		Kind:         kind,
		Directory:    src.Dir,
	}

	if prev != nil {
		item.ID = prev.ID
		item.DateAdded = prev.DateAdded
	}

	return item
}

// finishItem sets the display title and the timestamps once all files are known
func (l *Library) finishItem(item *media.MediaItem, prev *media.MediaItem, listing Listing) {
	title, year := TitleFromDir(path.Base(item.Directory.Path))
	if item.Nfo != nil && item.Nfo.Title != "" {
		title = item.Nfo.Title
	}
	if item.Nfo != nil && item.Nfo.Year != nil {
		year = item.Nfo.Year
	}
	item.Title, item.Year = title, year

	lastModified := listing.Newest
	if prev != nil {
		switch {
		case prev.Directory.Path != item.Directory.Path:
			lastModified = l.now()
		case prev.LastModified.After(lastModified):
			lastModified = prev.LastModified
		}
	}
	item.LastModified = lastModified

	if item.DateAdded.IsZero() {
		item.DateAdded = listing.Oldest
	}
}

// loadNfo returns the nfo identity and metadata to store. An unchanged identity copies the previous
// metadata without parsing. A parse failure keeps the previous identity and metadata, so the
// file is parsed again on the next scan.
func loadNfo(ctx context.Context, src Source, file *media.FileIdentity, prevFile *media.FileIdentity, prev *media.Nfo, force bool) (*media.FileIdentity, *media.Nfo) {
	if file == nil {
		return nil, nil
	}

	if !force && prevFile != nil && prev != nil && prevFile.Equal(*file) {
		return prevFile, prev
	}

	log := logger.FromCtx(ctx, "nfo", file.Path)

	f, err := src.FS.Open(path.Join(src.Dir.Path, file.Path))
	if err != nil {
		log.Warnw("failed to open nfo", "error", err)
		return prevFile, prev
	}
	defer f.Close()

	doc, err := nfo.Parse(f)
	if err != nil {
		log.Errorw("failed to parse nfo, keeping previous metadata", "error", err)
		return prevFile, prev
	}

	id := *file
	return &id, doc
}

// sidecarIndex maps a video base to the position of its owner. Built once all videos are known
// and only read afterwards.
type sidecarIndex map[string]int

// resolve finds the owner of a sidecar base, either <base> or <base>[.-]<qualifier>. Separators
// are tried from the right so the longest known base wins.
func (ix sidecarIndex) resolve(base string) (int, string, bool) {
	if pos, ok := ix[base]; ok {
		return pos, "", true
	}

	dirLen := len(path.Dir(base)) + 1
	if path.Dir(base) == "." {
		dirLen = 0
	}

	for i := len(base) - 1; i > dirLen; i-- {
		if base[i] != '.' && base[i] != '-' {
			continue
		}
		if pos, ok := ix[base[:i]]; ok {
			return pos, base[i+1:], true
		}
	}

	return 0, "", false
}

// sidecarAspect resolves a sidecar image qualifier. <base>.jpg and <base>.tbn are posters.
func sidecarAspect(qualifier string) (media.Aspect, bool) {
	if qualifier == "" {
		return media.AspectPoster, false
	}
	return AspectKeyword(qualifier), true
}

func subtitle(file media.FileIdentity, qualifier string) media.Subtitle {
	return media.Subtitle{File: file, Lang: media.NormalizeLanguage(qualifier)}
}

func sortSubtitles(subs []media.Subtitle) {
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].Lang != subs[j].Lang {
			return subs[i].Lang < subs[j].Lang
		}
		return subs[i].File.Path < subs[j].File.Path
	})
}

func find(listing Listing, rel string) *media.FileIdentity {
	e, ok := listing.Find(rel)
	if !ok || e.IsDir {
		return nil
	}
	id := e.Identity
	return &id
}
