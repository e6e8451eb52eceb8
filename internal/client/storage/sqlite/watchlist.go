package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/filmoteka/watchsync/internal/client/storage"
	"github.com/filmoteka/watchsync/internal/crdt"
	"github.com/filmoteka/watchsync/internal/models"
)

// Compile-time check that Storage implements WatchlistStorage
var _ storage.WatchlistStorage = (*Storage)(nil)

const itemColumns = `id, user_id, movie_id, added_at, notes, priority,
	watched, watched_at, origin_replica, vector_clock, sync_version,
	is_deleted, updated_at`

// GetItem retrieves an item by id, including tombstones
func (s *Storage) GetItem(ctx context.Context, id string) (*models.WatchlistItem, error) {
	query := `SELECT ` + itemColumns + ` FROM watchlist WHERE id = ?`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrItemNotFound
		}
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
	}

	return item, nil
}

// GetItemByMovie returns the first non-deleted item for (userID, movieID)
func (s *Storage) GetItemByMovie(ctx context.Context, userID, movieID string) (*models.WatchlistItem, error) {
	query := `SELECT ` + itemColumns + ` FROM watchlist
		WHERE user_id = ? AND movie_id = ? AND is_deleted = 0 LIMIT 1`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, userID, movieID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrItemNotFound
		}
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
	}

	return item, nil
}

// GetItemByMovieIncludingDeleted returns the record for (userID, movieID)
// whether tombstoned or not
func (s *Storage) GetItemByMovieIncludingDeleted(ctx context.Context, userID, movieID string) (*models.WatchlistItem, error) {
	query := `SELECT ` + itemColumns + ` FROM watchlist
		WHERE user_id = ? AND movie_id = ? LIMIT 1`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, userID, movieID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrItemNotFound
		}
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
	}

	return item, nil
}

// SaveItem stores or replaces an item wholesale
func (s *Storage) SaveItem(ctx context.Context, item *models.WatchlistItem) error {
	if err := execPutItem(ctx, s.db, item); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
	}
	return nil
}

// SaveItemWithPending stores the item and enqueues an outbox entry in one
// transaction
func (s *Storage) SaveItemWithPending(ctx context.Context, item *models.WatchlistItem, op models.OperationType) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", storage.ErrStorageUnavailable, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := execPutItem(ctx, tx, item); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
	}

	snapshot, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal snapshot: %w", storage.ErrStorageUnavailable, err)
	}

	query := `INSERT INTO pending_sync (operation, item_snapshot, enqueued_at) VALUES (?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query, string(op), snapshot, time.Now().UnixNano()); err != nil {
		return fmt.Errorf("%w: failed to enqueue pending operation: %w", storage.ErrStorageUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", storage.ErrStorageUnavailable, err)
	}

	return nil
}

// ListItems returns all non-tombstoned items of the user
func (s *Storage) ListItems(ctx context.Context, userID string) ([]*models.WatchlistItem, error) {
	query := `SELECT ` + itemColumns + ` FROM watchlist WHERE user_id = ? AND is_deleted = 0`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var items []*models.WatchlistItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
	}

	return items, nil
}

// ListPending returns all outbox entries in enqueue order
func (s *Storage) ListPending(ctx context.Context) ([]*models.PendingOperation, error) {
	query := `SELECT outbox_id, operation, item_snapshot, enqueued_at
		FROM pending_sync ORDER BY outbox_id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var pending []*models.PendingOperation
	for rows.Next() {
		var (
			outboxID   int64
			operation  string
			snapshot   []byte
			enqueuedAt int64
		)
		if err := rows.Scan(&outboxID, &operation, &snapshot, &enqueuedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
		}

		item := &models.WatchlistItem{}
		if err := json.Unmarshal(snapshot, item); err != nil {
			return nil, fmt.Errorf("%w: failed to unmarshal snapshot: %w", storage.ErrStorageUnavailable, err)
		}

		pending = append(pending, &models.PendingOperation{
			ID:         strconv.FormatInt(outboxID, 10),
			Operation:  models.OperationType(operation),
			Item:       item,
			EnqueuedAt: time.Unix(0, enqueuedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
	}

	return pending, nil
}

// DeletePending removes an outbox entry
func (s *Storage) DeletePending(ctx context.Context, id string) error {
	outboxID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return storage.ErrPendingNotFound
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM pending_sync WHERE outbox_id = ?`, outboxID)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
	}
	if affected == 0 {
		return storage.ErrPendingNotFound
	}

	return nil
}

// execer покрывает *sql.DB и *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// execPutItem выполняет идемпотентный upsert записи по id
func execPutItem(ctx context.Context, db execer, item *models.WatchlistItem) error {
	clock, err := json.Marshal(item.VectorClock)
	if err != nil {
		return fmt.Errorf("failed to marshal vector clock: %w", err)
	}

	var watchedAt sql.NullInt64
	if item.WatchedAt != nil {
		watchedAt = sql.NullInt64{Int64: item.WatchedAt.UnixNano(), Valid: true}
	}

	query := `INSERT INTO watchlist (` + itemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			movie_id = excluded.movie_id,
			added_at = excluded.added_at,
			notes = excluded.notes,
			priority = excluded.priority,
			watched = excluded.watched,
			watched_at = excluded.watched_at,
			origin_replica = excluded.origin_replica,
			vector_clock = excluded.vector_clock,
			sync_version = excluded.sync_version,
			is_deleted = excluded.is_deleted,
			updated_at = excluded.updated_at`

	_, err = db.ExecContext(ctx, query,
		item.ID,
		item.UserID,
		item.MovieID,
		item.AddedAt.UnixNano(),
		item.Notes,
		item.Priority,
		boolToInt(item.Watched),
		watchedAt,
		item.OriginReplica,
		string(clock),
		item.SyncVersion,
		boolToInt(item.IsDeleted),
		item.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert item: %w", err)
	}

	return nil
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem читает одну строку таблицы watchlist в модель
func scanItem(row rowScanner) (*models.WatchlistItem, error) {
	var (
		item      models.WatchlistItem
		addedAt   int64
		updatedAt int64
		watchedAt sql.NullInt64
		watched   int
		isDeleted int
		clockJSON string
	)

	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.MovieID,
		&addedAt,
		&item.Notes,
		&item.Priority,
		&watched,
		&watchedAt,
		&item.OriginReplica,
		&clockJSON,
		&item.SyncVersion,
		&isDeleted,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.VectorClock = crdt.Clock{}
	if err := json.Unmarshal([]byte(clockJSON), &item.VectorClock); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vector clock: %w", err)
	}

	item.AddedAt = time.Unix(0, addedAt)
	item.UpdatedAt = time.Unix(0, updatedAt)
	item.Watched = watched != 0
	item.IsDeleted = isDeleted != 0
	if watchedAt.Valid {
		t := time.Unix(0, watchedAt.Int64)
		item.WatchedAt = &t
	}

	return &item, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
