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

// GetShow gets the show stored for a directory of a collection. Deleted episodes are loaded too so
// a rescan can revive them.
func (s *SQLite) GetShow(ctx context.Context, collectionID int64, path string) (*media.TVShow, error) {
	row, err := s.getItem(ctx, media.KindTVShow,
		table.MediaItem.CollectionID.EQ(sqlite.Int64(collectionID)).
			AND(table.MediaItem.Path.EQ(sqlite.String(path))))
	if err != nil {
		return nil, err
	}

	return s.showFromRow(ctx, row)
}

// GetShowByID gets a show by id
func (s *SQLite) GetShowByID(ctx context.Context, id int64) (*media.TVShow, error) {
	row, err := s.getItem(ctx, media.KindTVShow, table.MediaItem.ID.EQ(sqlite.Int64(id)))
	if err != nil {
		return nil, err
	}

	return s.showFromRow(ctx, row)
}

// CreateShow stores a new show with its episodes, setting the show and episode ids
func (s *SQLite) CreateShow(ctx context.Context, show *media.TVShow) (int64, error) {
	show.Kind = media.KindTVShow

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		document, err := encodeShow(show)
		if err != nil {
			return err
		}

		id, err := s.insertItem(ctx, tx, itemRow(&show.MediaItem, document))
		if err != nil {
			return err
		}
		show.ID = id

		for _, ep := range show.Episodes() {
			ep.ID = 0
			err := s.saveEpisode(ctx, tx, id, ep)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create show: %w", err)
	}

	return show.ID, nil
}

// UpdateShow overwrites a stored show. Episodes without an id are inserted and dropped episodes
// are flagged deleted.
func (s *SQLite) UpdateShow(ctx context.Context, show *media.TVShow, deletions media.Deletions) error {
	show.Kind = media.KindTVShow

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		document, err := encodeShow(show)
		if err != nil {
			return err
		}

		err = s.updateItem(ctx, tx, itemRow(&show.MediaItem, document))
		if err != nil {
			return err
		}

		for _, ep := range show.Episodes() {
			err := s.saveEpisode(ctx, tx, show.ID, ep)
			if err != nil {
				return err
			}
		}

		for _, ep := range deletions.Episodes {
			if ep.ID == 0 {
				continue
			}
			ep.Deleted = true
			ep.State = media.LifecycleDeleted
			err := s.saveEpisode(ctx, tx, show.ID, &ep)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update show %d: %w", show.ID, err)
	}

	if !deletions.Empty() {
		logger.FromCtx(ctx).Debugw("dropped show children", "show", show.ID,
			"episodes", len(deletions.Episodes), "thumbnails", len(deletions.Thumbnails))
	}

	return nil
}

// saveEpisode inserts ep when it has no id yet and overwrites the stored row otherwise
func (s *SQLite) saveEpisode(ctx context.Context, tx *sql.Tx, showID int64, ep *media.Episode) error {
	ep.TVShowID = showID

	document, err := encode(ep)
	if err != nil {
		return err
	}

	row := model.Episode{
		ID:            ep.ID,
		MediaItemID:   showID,
		SeasonNumber:  int64(ep.SeasonNumber),
		EpisodeNumber: int64(ep.EpisodeNumber),
		VideoPath:     ep.Video.Path,
		Deleted:       ep.Deleted,
		Document:      document,
	}

	if ep.ID != 0 {
		stmt := table.Episode.
			UPDATE(table.Episode.MutableColumns).
			MODEL(row).
			WHERE(table.Episode.ID.EQ(sqlite.Int64(ep.ID)))

		_, err := s.handleStatement(ctx, tx, stmt, 1)
		if err != nil {
			return fmt.Errorf("failed to update episode %d: %w", ep.ID, err)
		}
		return nil
	}

	stmt := table.Episode.
		INSERT(table.Episode.MutableColumns).
		MODEL(row)

	result, err := s.handleStatement(ctx, tx, stmt, 1)
	if err != nil {
		return fmt.Errorf("failed to create episode: %w", err)
	}

	ep.ID, err = result.LastInsertId()
	return err
}

func (s *SQLite) showFromRow(ctx context.Context, row model.MediaItem) (*media.TVShow, error) {
	var show media.TVShow
	err := decode(row.Document, &show)
	if err != nil {
		return nil, err
	}
	fromRow(&show.MediaItem, row)

	stmt := table.Episode.
		SELECT(table.Episode.AllColumns).
		WHERE(table.Episode.MediaItemID.EQ(sqlite.Int64(row.ID))).
		ORDER_BY(table.Episode.SeasonNumber.ASC(), table.Episode.EpisodeNumber.ASC(), table.Episode.ID.ASC())

	var episodes []model.Episode
	err = stmt.QueryContext(ctx, s.db, &episodes)
	if err != nil {
		return nil, fmt.Errorf("failed to list episodes of show %d: %w", row.ID, err)
	}

	show.Seasons = nil
	for _, r := range episodes {
		var ep media.Episode
		err := decode(r.Document, &ep)
		if err != nil {
			return nil, err
		}

		ep.ID = r.ID
		ep.TVShowID = row.ID
		ep.Deleted = r.Deleted
		if ep.Deleted {
			ep.State = media.LifecycleDeleted
		}

		n := len(show.Seasons)
		if n == 0 || show.Seasons[n-1].Number != ep.SeasonNumber {
			show.Seasons = append(show.Seasons, media.Season{Number: ep.SeasonNumber})
			n++
		}
		show.Seasons[n-1].Episodes = append(show.Seasons[n-1].Episodes, ep)
	}

	return &show, nil
}

// encodeShow serializes the show without its seasons, episodes are stored as rows
func encodeShow(show *media.TVShow) (string, error) {
	doc := *show
	doc.Seasons = nil
	return encode(&doc)
}
