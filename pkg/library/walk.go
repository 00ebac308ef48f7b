package library

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"time"

	"github.com/kasuboski/mediaindex/pkg/logger"
	"github.com/kasuboski/mediaindex/pkg/media"
)

// Entry is one file or subdirectory below an item directory
type Entry struct {
	// Rel is slash separated and relative to the item directory
	Rel      string
	IsDir    bool
	Identity media.FileIdentity
}

// Listing is the sorted content of an item directory
type Listing struct {
	Entries []Entry
	Oldest  time.Time
	Newest  time.Time
}

// Walk reads the item directory dir of fsys. When deep is set one level of season subdirectories
// (S01, Season 1, Specials) is read as well, other subdirectories are skipped. Hidden entries are skipped and unreadable subdirectories or files contribute nothing.
// Only a failure to read dir itself is an error.
func Walk(ctx context.Context, fsys fs.FS, dir string, deep bool) (Listing, error) {
	log := logger.FromCtx(ctx)

	var listing Listing
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return listing, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	for _, d := range entries {
		if isHidden(d.Name()) {
			continue
		}

		info, err := d.Info()
		if err != nil {
			log.Debugw("skipping unreadable entry", "path", path.Join(dir, d.Name()), "error", err)
			continue
		}

		entry := Entry{
			Rel:      d.Name(),
			IsDir:    d.IsDir(),
			Identity: media.IdentityFromInfo(d.Name(), info),
		}

		if !d.IsDir() {
			listing.add(entry)
			continue
		}

		if !deep {
			continue
		}
		if _, ok := SeasonDir(d.Name()); !ok {
			log.Debugw("skipping non-season directory", "path", path.Join(dir, d.Name()))
			continue
		}

		listing.Entries = append(listing.Entries, entry)

		children, err := fs.ReadDir(fsys, path.Join(dir, d.Name()))
		if err != nil {
			log.Debugw("treating unreadable directory as empty", "path", path.Join(dir, d.Name()), "error", err)
			continue
		}

		for _, c := range children {
			if isHidden(c.Name()) || c.IsDir() {
				continue
			}

			info, err := c.Info()
			if err != nil {
				log.Debugw("skipping unreadable entry", "path", path.Join(dir, d.Name(), c.Name()), "error", err)
				continue
			}

			rel := path.Join(d.Name(), c.Name())
			listing.add(Entry{Rel: rel, Identity: media.IdentityFromInfo(rel, info)})
		}
	}

	if listing.Oldest.IsZero() {
		if info, err := fs.Stat(fsys, dir); err == nil {
			listing.Oldest = info.ModTime()
			listing.Newest = info.ModTime()
		}
	}

	sort.Slice(listing.Entries, func(i, j int) bool {
		return listing.Entries[i].Rel < listing.Entries[j].Rel
	})

	return listing, nil
}

func (l *Listing) add(e Entry) {
	l.Entries = append(l.Entries, e)

	mtime := e.Identity.ModTime
	if l.Oldest.IsZero() || mtime.Before(l.Oldest) {
		l.Oldest = mtime
	}
	if mtime.After(l.Newest) {
		l.Newest = mtime
	}
}

// Files returns the file entries
func (l Listing) Files() []Entry {
	var out []Entry
	for _, e := range l.Entries {
		if !e.IsDir {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the entry at rel
func (l Listing) Find(rel string) (Entry, bool) {
	i := sort.Search(len(l.Entries), func(i int) bool { return l.Entries[i].Rel >= rel })
	if i < len(l.Entries) && l.Entries[i].Rel == rel {
		return l.Entries[i], true
	}
	return Entry{}, false
}

// ListItemDirs returns the identities of the item directories at the root of a collection
func ListItemDirs(fsys fs.FS) ([]media.FileIdentity, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}

	var dirs []media.FileIdentity
	for _, d := range entries {
		if !d.IsDir() || isHidden(d.Name()) {
			continue
		}

		info, err := d.Info()
		if err != nil {
			continue
		}

		dirs = append(dirs, media.IdentityFromInfo(d.Name(), info))
	}

	return dirs, nil
}
