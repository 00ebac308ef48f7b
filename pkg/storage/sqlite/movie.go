package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/mediaindex/pkg/logger"
	"github.com/kasuboski/mediaindex/pkg/media"
	"github.com/kasuboski/mediaindex/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/mediaindex/pkg/storage/sqlite/schema/gen/table"
)

// GetMovie gets the movie stored for a directory of a collection
func (s *SQLite) GetMovie(ctx context.Context, collectionID int64, path string) (*media.Movie, error) {
	row, err := s.getItem(ctx, media.KindMovie,
		table.MediaItem.CollectionID.EQ(sqlite.Int64(collectionID)).
			AND(table.MediaItem.Path.EQ(sqlite.String(path))))
	if err != nil {
		return nil, err
	}

	return movieFromRow(row)
}

// GetMovieByID gets a movie by id
func (s *SQLite) GetMovieByID(ctx context.Context, id int64) (*media.Movie, error) {
	row, err := s.getItem(ctx, media.KindMovie, table.MediaItem.ID.EQ(sqlite.Int64(id)))
	if err != nil {
		return nil, err
	}

	return movieFromRow(row)
}

// CreateMovie stores a new movie and sets its id
func (s *SQLite) CreateMovie(ctx context.Context, movie *media.Movie) (int64, error) {
	movie.Kind = media.KindMovie

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		document, err := encode(movie)
		if err != nil {
			return err
		}

		id, err := s.insertItem(ctx, tx, itemRow(&movie.MediaItem, document))
		if err != nil {
			return err
		}

		movie.ID = id
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create movie: %w", err)
	}

	return movie.ID, nil
}

// UpdateMovie overwrites a stored movie. Dropped thumbnails only live in the movie document so
// there is nothing else to remove.
func (s *SQLite) UpdateMovie(ctx context.Context, movie *media.Movie, deletions media.Deletions) error {
	movie.Kind = media.KindMovie

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		document, err := encode(movie)
		if err != nil {
			return err
		}

		return s.updateItem(ctx, tx, itemRow(&movie.MediaItem, document))
	})
	if err != nil {
		return fmt.Errorf("failed to update movie %d: %w", movie.ID, err)
	}

	if len(deletions.Thumbnails) > 0 {
		logger.FromCtx(ctx).Debugw("dropped thumbnails", "movie", movie.ID, "count", len(deletions.Thumbnails))
	}

	return nil
}

func movieFromRow(row model.MediaItem) (*media.Movie, error) {
	var movie media.Movie
	err := decode(row.Document, &movie)
	if err != nil {
		return nil, err
	}

	fromRow(&movie.MediaItem, row)
	return &movie, nil
}
