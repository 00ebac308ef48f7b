package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/mediaindex/pkg/logger"
	"github.com/kasuboski/mediaindex/pkg/media"
	"github.com/kasuboski/mediaindex/pkg/storage"
	"github.com/kasuboski/mediaindex/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/mediaindex/pkg/storage/sqlite/schema/gen/table"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type SQLite struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a new sqlite database given a path to the database file
func New(ctx context.Context, filePath string) (storage.Storage, error) {
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	// writes are serialized by mu, a single connection also keeps :memory: databases intact
	db.SetMaxOpenConns(1)

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &SQLite{
		db: db,
	}, nil
}

// ListItems lists every stored movie and show of a collection, deleted ones included
func (s *SQLite) ListItems(ctx context.Context, collectionID int64) ([]storage.Item, error) {
	stmt := table.MediaItem.
		SELECT(table.MediaItem.AllColumns.Except(table.MediaItem.Document)).
		WHERE(table.MediaItem.CollectionID.EQ(sqlite.Int64(collectionID))).
		ORDER_BY(table.MediaItem.Path.ASC())

	var rows []model.MediaItem
	err := stmt.QueryContext(ctx, s.db, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]storage.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, storage.Item{
			ID:           row.ID,
			CollectionID: row.CollectionID,
			Kind:         media.Kind(row.Kind),
			Path:         row.Path,
			Inode:        uint64(row.Inode),
			Title:        row.Title,
			Deleted:      row.Deleted,
			LastModified: row.LastModified,
			DateAdded:    row.DateAdded,
		})
	}

	return items, nil
}

// MarkItemDeleted flags a stored item as deleted, its row and episodes are kept
func (s *SQLite) MarkItemDeleted(ctx context.Context, id int64) error {
	stmt := table.MediaItem.
		UPDATE(table.MediaItem.Deleted).
		SET(sqlite.Bool(true)).
		WHERE(table.MediaItem.ID.EQ(sqlite.Int64(id)))

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := s.handleStatement(ctx, tx, stmt, 1)
		if err != nil {
			return fmt.Errorf("failed to mark item %d deleted: %w", id, err)
		}
		return nil
	})
}

// getItem loads the item row matching where for the given kind
func (s *SQLite) getItem(ctx context.Context, kind media.Kind, where sqlite.BoolExpression) (model.MediaItem, error) {
	stmt := table.MediaItem.
		SELECT(table.MediaItem.AllColumns).
		WHERE(table.MediaItem.Kind.EQ(sqlite.String(string(kind))).AND(where))

	var row model.MediaItem
	err := stmt.QueryContext(ctx, s.db, &row)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return row, storage.ErrNotFound
		}
		return row, fmt.Errorf("failed to get %s: %w", kind, err)
	}

	return row, nil
}

// insertItem stores a new item row and returns its id
func (s *SQLite) insertItem(ctx context.Context, tx *sql.Tx, row model.MediaItem) (int64, error) {
	stmt := table.MediaItem.
		INSERT(table.MediaItem.MutableColumns).
		MODEL(row)

	result, err := s.handleStatement(ctx, tx, stmt, 1)
	if err != nil {
		return 0, err
	}

	return result.LastInsertId()
}

// updateItem overwrites the item row with the same id
func (s *SQLite) updateItem(ctx context.Context, tx *sql.Tx, row model.MediaItem) error {
	stmt := table.MediaItem.
		UPDATE(table.MediaItem.MutableColumns).
		MODEL(row).
		WHERE(table.MediaItem.ID.EQ(sqlite.Int64(row.ID)))

	_, err := s.handleStatement(ctx, tx, stmt, 1)
	return err
}

func itemRow(item *media.MediaItem, document string) model.MediaItem {
	return model.MediaItem{
		ID:           item.ID,
		CollectionID: item.CollectionID,
		Kind:         string(item.Kind),
		Path:         item.Directory.Path,
		Inode:        int64(item.Directory.Inode),
		Title:        item.Title,
		Deleted:      item.Deleted,
		LastModified: item.LastModified,
		DateAdded:    item.DateAdded,
		Document:     document,
	}
}

// fromRow restores the columns that are authoritative over the stored document
func fromRow(item *media.MediaItem, row model.MediaItem) {
	item.ID = row.ID
	item.CollectionID = row.CollectionID
	item.Kind = media.Kind(row.Kind)
	item.Deleted = row.Deleted
}

func encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(data), nil
}

func decode(document string, v any) error {
	err := json.Unmarshal([]byte(document), v)
	if err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

// withTx runs fn in a transaction, rolling back when it fails
func (s *SQLite) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	log := logger.FromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Debug("failed to init transaction", zap.Error(err))
		return err
	}

	err = fn(tx)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s *SQLite) handleStatement(ctx context.Context, tx *sql.Tx, stmt sqlite.Statement, expectedRows int64) (sql.Result, error) {
	log := logger.FromCtx(ctx)

	result, err := stmt.ExecContext(ctx, tx)
	if err != nil {
		log.Debug("failed to execute statement", zap.String("query", stmt.DebugSql()), zap.Error(err))
		return result, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		log.Debug("failed to get number of rows affected")
		return result, err
	}

	if rows != expectedRows {
		log.Debug("unexpected number of rows affected", zap.Int64("rows", rows), zap.Int64("expected rows", expectedRows))
		return result, storage.ErrNotFound
	}

	return result, nil
}
