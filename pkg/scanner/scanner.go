package scanner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kasuboski/mediaindex/pkg/cache"
	mio "github.com/kasuboski/mediaindex/pkg/io"
	"github.com/kasuboski/mediaindex/pkg/library"
	"github.com/kasuboski/mediaindex/pkg/logger"
	"github.com/kasuboski/mediaindex/pkg/media"
	"github.com/kasuboski/mediaindex/pkg/storage"
	"golang.org/x/sync/errgroup"
)

// Outcome is what a single item scan did to the store
type Outcome string

const (
	OutcomeCreated  Outcome = "created"
	OutcomeUpdated  Outcome = "updated"
	OutcomeRejected Outcome = "rejected"
	OutcomeDeleted  Outcome = "deleted"
)

// Result reports one item scan
type Result struct {
	ID      int64
	Outcome Outcome
}

// Summary totals a collection scan
type Summary struct {
	ScanID     string        `json:"scanId"`
	Collection string        `json:"collection"`
	Scanned    int           `json:"scanned"`
	Created    int           `json:"created"`
	Updated    int           `json:"updated"`
	Rejected   int           `json:"rejected"`
	Deleted    int           `json:"deleted"`
	Failed     int           `json:"failed"`
	Duration   time.Duration `json:"duration"`
}

func (s *Summary) add(r Result) {
	s.Scanned++
	switch r.Outcome {
	case OutcomeCreated:
		s.Created++
	case OutcomeUpdated:
		s.Updated++
	case OutcomeRejected:
		s.Rejected++
	case OutcomeDeleted:
		s.Deleted++
	}
}

type itemKey struct {
	collection int64
	path       string
}

// Scanner keeps the store in sync with the collections on disk. Items of a collection are scanned
// concurrently but a single item directory is never scanned twice at the same time.
type Scanner struct {
	library     *library.Library
	storage     storage.Storage
	fileIO      mio.FileIO
	concurrency int

	locks *cache.Cache[itemKey, *sync.Mutex]
	ids   *cache.Cache[itemKey, int64]
}

// New creates a scanner running at most concurrency item scans per collection
func New(lib *library.Library, store storage.Storage, fileIO mio.FileIO, concurrency int) *Scanner {
	if concurrency < 1 {
		concurrency = 1
	}

	return &Scanner{
		library:     lib,
		storage:     store,
		fileIO:      fileIO,
		concurrency: concurrency,
		locks:       cache.New[itemKey, *sync.Mutex](),
		ids:         cache.New[itemKey, int64](),
	}
}

// ScanCollection scans every item directory of coll and flags stored items whose directory is gone.
// Item failures are logged and counted, only a failure to read the collection itself is returned.
func (s *Scanner) ScanCollection(ctx context.Context, coll media.Collection, opts library.ScanOptions) (Summary, error) {
	start := time.Now()
	summary := Summary{ScanID: uuid.NewString(), Collection: coll.Name}

	ctx = logger.With(ctx, "collection", coll.Name, "scan_id", summary.ScanID)
	log := logger.FromCtx(ctx)

	dirs, err := library.ListItemDirs(s.fileIO.DirFS(coll.Directory))
	if err != nil {
		return summary, fmt.Errorf("failed to list collection %s: %w", coll.Name, err)
	}
	log.Infow("scanning collection", "items", len(dirs), "type", coll.Type)

	var mu sync.Mutex
	touched := map[int64]bool{}
	present := map[string]bool{}

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for _, dir := range dirs {
		dir := dir
		present[dir.Path] = true

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := s.ScanItem(ctx, coll, dir, opts)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Errorw("failed to scan item", "item", dir.Path, "error", err)
				summary.Failed++
				return nil
			}
			summary.add(res)
			if res.ID != 0 {
				touched[res.ID] = true
			}
			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return summary, err
	}

	items, err := s.storage.ListItems(ctx, coll.ID)
	if err != nil {
		return summary, fmt.Errorf("failed to list stored items: %w", err)
	}

	for _, item := range items {
		if item.Deleted || touched[item.ID] || present[item.Path] {
			continue
		}

		err := s.storage.MarkItemDeleted(ctx, item.ID)
		if err != nil {
			log.Errorw("failed to flag missing item", "item", item.Path, "error", err)
			summary.Failed++
			continue
		}
		s.ids.Delete(itemKey{coll.ID, item.Path})
		log.Infow("item directory is gone", "item", item.Path, "id", item.ID)
		summary.Deleted++
	}

	summary.Duration = time.Since(start)
	log.Infow("collection scanned",
		"scanned", summary.Scanned,
		"created", summary.Created,
		"updated", summary.Updated,
		"rejected", summary.Rejected,
		"deleted", summary.Deleted,
		"failed", summary.Failed,
		"duration", summary.Duration)

	return summary, nil
}

// ScanPath scans the item directory named name at the top of coll
func (s *Scanner) ScanPath(ctx context.Context, coll media.Collection, name string, opts library.ScanOptions) (Result, error) {
	dir, err := s.fileIO.Identity(coll.Directory, name)
	if err != nil {
		return Result{}, err
	}

	return s.ScanItem(ctx, coll, dir, opts)
}

// ScanItem scans one item directory, merges it with the stored item and writes the result back.
// Rejected directories that were stored before are flagged deleted.
func (s *Scanner) ScanItem(ctx context.Context, coll media.Collection, dir media.FileIdentity, opts library.ScanOptions) (Result, error) {
	key := itemKey{coll.ID, dir.Path}
	lock := s.locks.GetOrSet(key, func() *sync.Mutex { return &sync.Mutex{} })
	lock.Lock()
	defer lock.Unlock()

	ctx = logger.With(ctx, "item", dir.Path)

	src := library.Source{
		FS:           s.fileIO.DirFS(coll.Directory),
		Root:         coll.Directory,
		CollectionID: coll.ID,
		Dir:          dir,
	}

	var res Result
	var err error
	switch coll.Type {
	case media.CollectionMovies:
		res, err = s.scanMovie(ctx, src, opts)
	case media.CollectionShows:
		res, err = s.scanShow(ctx, src, opts)
	default:
		return Result{}, fmt.Errorf("unknown collection type %q", coll.Type)
	}
	if err != nil {
		return res, err
	}

	if res.ID != 0 && res.Outcome != OutcomeDeleted {
		s.ids.Set(key, res.ID)
	}
	logger.FromCtx(ctx).Debugw("item scanned", "id", res.ID, "outcome", res.Outcome)

	return res, nil
}

func (s *Scanner) scanMovie(ctx context.Context, src library.Source, opts library.ScanOptions) (Result, error) {
	prev, err := previous(ctx, s, src, media.KindMovie, s.storage.GetMovie, s.storage.GetMovieByID)
	if err != nil {
		return Result{}, err
	}

	scan, err := s.library.ScanMovie(ctx, src, prev, opts)
	if err != nil {
		return Result{}, err
	}

	if !scan.Accepted {
		var prevItem *media.MediaItem
		if prev != nil {
			prevItem = &prev.MediaItem
		}
		return s.reject(ctx, prevItem)
	}

	movie := scan.Movie
	if movie.ID == 0 {
		id, err := s.storage.CreateMovie(ctx, movie)
		if err != nil {
			return Result{}, err
		}
		movie.ID = id
		if assignMoviePaths(movie) {
			err = s.storage.UpdateMovie(ctx, movie, media.Deletions{})
			if err != nil {
				return Result{}, err
			}
		}
		return Result{ID: id, Outcome: OutcomeCreated}, nil
	}

	assignMoviePaths(movie)
	err = s.storage.UpdateMovie(ctx, movie, scan.Deletions)
	if err != nil {
		return Result{}, err
	}

	return Result{ID: movie.ID, Outcome: OutcomeUpdated}, nil
}

func (s *Scanner) scanShow(ctx context.Context, src library.Source, opts library.ScanOptions) (Result, error) {
	prev, err := previous(ctx, s, src, media.KindTVShow, s.storage.GetShow, s.storage.GetShowByID)
	if err != nil {
		return Result{}, err
	}

	scan, err := s.library.ScanShow(ctx, src, prev, opts)
	if err != nil {
		return Result{}, err
	}

	if !scan.Accepted {
		var prevItem *media.MediaItem
		if prev != nil {
			prevItem = &prev.MediaItem
		}
		return s.reject(ctx, prevItem)
	}

	show := scan.Show
	outcome := OutcomeUpdated
	if show.ID == 0 {
		show.ID, err = s.storage.CreateShow(ctx, show)
		outcome = OutcomeCreated
	} else {
		assignShowPaths(show)
		err = s.storage.UpdateShow(ctx, show, scan.Deletions)
	}
	if err != nil {
		return Result{}, err
	}

	// new episodes only get their ids from the store
	if assignShowPaths(show) {
		err = s.storage.UpdateShow(ctx, show, media.Deletions{})
		if err != nil {
			return Result{}, err
		}
	}

	return Result{ID: show.ID, Outcome: outcome}, nil
}

// reject flags a previously stored item deleted once its directory no longer qualifies
func (s *Scanner) reject(ctx context.Context, prev *media.MediaItem) (Result, error) {
	if prev == nil {
		return Result{Outcome: OutcomeRejected}, nil
	}
	if prev.Deleted {
		return Result{ID: prev.ID, Outcome: OutcomeRejected}, nil
	}

	err := s.storage.MarkItemDeleted(ctx, prev.ID)
	if err != nil {
		return Result{}, err
	}
	logger.FromCtx(ctx).Infow("item no longer qualifies, flagged deleted", "id", prev.ID)

	return Result{ID: prev.ID, Outcome: OutcomeDeleted}, nil
}

// previous finds the stored version of the item in src: by path, then by the id remembered for
// the path, then by the inode of a stored item whose directory was renamed
func previous[T any](ctx context.Context, s *Scanner, src library.Source, kind media.Kind, getByPath func(context.Context, int64, string) (*T, error), getByID func(context.Context, int64) (*T, error)) (*T, error) {
	coll := src.CollectionID

	prev, err := getByPath(ctx, coll, src.Dir.Path)
	if err == nil {
		return prev, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	id, ok := s.ids.Get(itemKey{coll, src.Dir.Path})
	if !ok {
		id, ok, err = s.renamedFrom(ctx, src, kind)
		if err != nil {
			return nil, err
		}
	}
	if !ok {
		return nil, nil
	}

	prev, err = getByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return prev, err
}

// renamedFrom looks for a stored item with the same directory inode whose old path is gone
func (s *Scanner) renamedFrom(ctx context.Context, src library.Source, kind media.Kind) (int64, bool, error) {
	if src.Dir.Inode == 0 {
		return 0, false, nil
	}

	items, err := s.storage.ListItems(ctx, src.CollectionID)
	if err != nil {
		return 0, false, fmt.Errorf("failed to list stored items: %w", err)
	}

	for _, item := range items {
		if item.Kind != kind || item.Inode != src.Dir.Inode || item.Path == src.Dir.Path {
			continue
		}
		if s.fileIO.FileExists(filepath.Join(src.Root, filepath.FromSlash(item.Path))) {
			continue
		}

		logger.FromCtx(ctx).Infow("directory was renamed", "from", item.Path, "id", item.ID)
		s.ids.Delete(itemKey{src.CollectionID, item.Path})
		return item.ID, true, nil
	}

	return 0, false, nil
}

// assignMoviePaths sets the served thumbnail paths and reports whether any changed
func assignMoviePaths(movie *media.Movie) bool {
	return assignPaths(movie.Thumbnails, movie.CollectionID, movie.ID)
}

// assignShowPaths sets the served paths of show and episode thumbnails. Episode images are served
// under the episode id.
func assignShowPaths(show *media.TVShow) bool {
	changed := assignPaths(show.Thumbnails, show.CollectionID, show.ID)
	for _, ep := range show.Episodes() {
		if ep.ID == 0 {
			continue
		}
		if assignPaths(ep.Thumbnails, show.CollectionID, ep.ID) {
			changed = true
		}
	}
	return changed
}

func assignPaths(thumbs []media.Thumbnail, collectionID, ownerID int64) bool {
	if ownerID == 0 {
		return false
	}

	before := make([]string, len(thumbs))
	for i := range thumbs {
		before[i] = thumbs[i].Path
	}

	media.AssignPaths(thumbs, collectionID, ownerID)

	for i := range thumbs {
		if thumbs[i].Path != before[i] {
			return true
		}
	}
	return false
}
