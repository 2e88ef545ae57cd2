package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	"github.com/padraigk/florin/internal/models"
)

// CreateThread allocates a new thread for the owner, optionally seeded with
// one initial message, and persists it. Returns the stored thread.
func (db *Database) CreateThread(ctx context.Context, ownerID int64, title string, initial *models.Message) (*models.Thread, error) {
	if ownerID <= 0 {
		return nil, ErrNotAuthenticated
	}
	if title == "" {
		title = models.DefaultThreadTitle
	}

	now := time.Now().UTC()
	thread := &models.Thread{
		ID:        shortuuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		Messages:  []models.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if initial != nil {
		thread.Messages = append(thread.Messages, *initial)
	}

	raw, err := json.Marshal(thread.Messages)
	if err != nil {
		return nil, errors.Wrap(err, "marshal messages")
	}

	_, err = db.db.ExecContext(ctx, `
        INSERT INTO threads (id, owner_id, title, messages, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		thread.ID, thread.OwnerID, thread.Title, string(raw), thread.CreatedAt, thread.UpdatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "insert thread")
	}
	return thread, nil
}

// GetThread loads a single thread, scoped to its owner.
func (db *Database) GetThread(ctx context.Context, ownerID int64, threadID string) (*models.Thread, error) {
	if ownerID <= 0 {
		return nil, ErrNotAuthenticated
	}

	row := db.db.QueryRowContext(ctx, `
        SELECT id, owner_id, title, messages, created_at, updated_at
        FROM threads
        WHERE id = ? AND owner_id = ?`, threadID, ownerID)

	return scanThread(row)
}

// ListThreads returns all threads owned by the principal, most recently
// updated first.
func (db *Database) ListThreads(ctx context.Context, ownerID int64) ([]*models.Thread, error) {
	if ownerID <= 0 {
		return nil, ErrNotAuthenticated
	}

	rows, err := db.db.QueryContext(ctx, `
        SELECT id, owner_id, title, messages, created_at, updated_at
        FROM threads
        WHERE owner_id = ?
        ORDER BY updated_at DESC`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "query threads")
	}
	defer rows.Close()

	threads := make([]*models.Thread, 0)
	for rows.Next() {
		thread, err := scanThread(rows)
		if err != nil {
			return nil, err
		}
		threads = append(threads, thread)
	}
	return threads, rows.Err()
}

// ReplaceMessages overwrites the thread's full message list and refreshes
// updated_at. Callers always pass the complete desired list, not a delta.
func (db *Database) ReplaceMessages(ctx context.Context, threadID string, msgs []models.Message) error {
	if msgs == nil {
		msgs = []models.Message{}
	}
	raw, err := json.Marshal(msgs)
	if err != nil {
		return errors.Wrap(err, "marshal messages")
	}

	res, err := db.db.ExecContext(ctx, `
        UPDATE threads SET messages = ?, updated_at = ? WHERE id = ?`,
		string(raw), time.Now().UTC(), threadID)
	if err != nil {
		return errors.Wrap(err, "update messages")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// RenameThread updates the thread title only.
func (db *Database) RenameThread(ctx context.Context, threadID, title string) error {
	res, err := db.db.ExecContext(ctx, `
        UPDATE threads SET title = ?, updated_at = ? WHERE id = ?`,
		title, time.Now().UTC(), threadID)
	if err != nil {
		return errors.Wrap(err, "update title")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteThread removes a thread permanently. Deleting the owner's last
// remaining thread is a silent no-op: a user always keeps at least one
// conversation.
func (db *Database) DeleteThread(ctx context.Context, ownerID int64, threadID string) error {
	if ownerID <= 0 {
		return ErrNotAuthenticated
	}

	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM threads WHERE owner_id = ?`, ownerID).Scan(&count); err != nil {
		return errors.Wrap(err, "count threads")
	}
	if count <= 1 {
		return nil
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM threads WHERE id = ? AND owner_id = ?`, threadID, ownerID)
	if err != nil {
		return errors.Wrap(err, "delete thread")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanThread(row rowScanner) (*models.Thread, error) {
	var thread models.Thread
	var raw string
	err := row.Scan(&thread.ID, &thread.OwnerID, &thread.Title, &raw,
		&thread.CreatedAt, &thread.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "scan thread")
	}
	if err := json.Unmarshal([]byte(raw), &thread.Messages); err != nil {
		return nil, errors.Wrap(err, "unmarshal messages")
	}
	return &thread, nil
}
