package storage

import (
	"context"
	"errors"
	"time"

	"github.com/kasuboski/mediaindex/pkg/media"
)

var ErrNotFound = errors.New("not found in storage")

// Storage persists media items between scans. Items are found by collection and directory path,
// by id, or listed per collection for rename matching.
type Storage interface {
	RunMigrations(ctx context.Context) error
	MovieStorage
	ShowStorage
	ItemStorage
}

type MovieStorage interface {
	GetMovie(ctx context.Context, collectionID int64, path string) (*media.Movie, error)
	GetMovieByID(ctx context.Context, id int64) (*media.Movie, error)
	CreateMovie(ctx context.Context, movie *media.Movie) (int64, error)
	UpdateMovie(ctx context.Context, movie *media.Movie, deletions media.Deletions) error
}

// ShowStorage stores shows with their episodes. Create and Update assign ids to new episodes in
// place. Deleted episodes are kept flagged so a later scan can revive them with the same id.
type ShowStorage interface {
	GetShow(ctx context.Context, collectionID int64, path string) (*media.TVShow, error)
	GetShowByID(ctx context.Context, id int64) (*media.TVShow, error)
	CreateShow(ctx context.Context, show *media.TVShow) (int64, error)
	UpdateShow(ctx context.Context, show *media.TVShow, deletions media.Deletions) error
}

type ItemStorage interface {
	ListItems(ctx context.Context, collectionID int64) ([]Item, error)
	MarkItemDeleted(ctx context.Context, id int64) error
}

// Item is the summary row of a stored movie or show
type Item struct {
	ID           int64      `json:"id"`
	CollectionID int64      `json:"collectionId"`
	Kind         media.Kind `json:"kind"`
	Path         string     `json:"path"`
	Inode        uint64     `json:"inode"`
	Title        string     `json:"title"`
	Deleted      bool       `json:"deleted"`
	LastModified time.Time  `json:"lastModified"`
	DateAdded    time.Time  `json:"dateAdded"`
}
