// This file defines repository methods for note CRUD and lookup
// operations. A Note belongs to a single user; ownership enforcement on
// reads lives in the service layer so that "not found" and "not yours"
// can be reported separately.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/notes-api/internal/model"
)

// ErrNoteNotFound is returned when a note cannot be found in the DB.
var ErrNoteNotFound = errors.New("note not found")

// NoteRepo encapsulates all database queries related to notes.
type NoteRepo struct {
	db *sql.DB
}

// NewNoteRepo constructs a NoteRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

const noteColumns = "id, title, content, tags, user_id, created_at, updated_at"

func scanNote(row *sql.Row) (*model.Note, error) {
	var n model.Note
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.Tags, &n.UserID, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a new note into the database. The note's ID field is
// populated with a generated uuid. After the insert, a SELECT is executed
// to populate the CreatedAt and UpdatedAt fields so that callers receive
// a fully populated record.
func (r *NoteRepo) Create(ctx context.Context, n *model.Note) error {
	n.ID = uuid.NewString()
	if n.Tags == nil {
		n.Tags = model.TagList{}
	}
	const qInsert = "INSERT INTO notes (id, title, content, tags, user_id) VALUES (?, ?, ?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, qInsert, n.ID, n.Title, n.Content, n.Tags, n.UserID); err != nil {
		return err
	}
	const qSelect = "SELECT created_at, updated_at FROM notes WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, n.ID).Scan(&n.CreatedAt, &n.UpdatedAt)
}

// GetByID fetches a note by its ID regardless of owner. It returns
// ErrNoteNotFound if no row is found. The service layer compares the
// owner against the caller.
func (r *NoteRepo) GetByID(ctx context.Context, id string) (*model.Note, error) {
	const q = "SELECT " + noteColumns + " FROM notes WHERE id = ?"
	return scanNote(r.db.QueryRowContext(ctx, q, id))
}

// ListByOwner returns all notes for a specific owner ordered by last
// update, newest first. When tags is non-empty, only notes whose tag set
// intersects the filter are returned: JSON_OVERLAPS implements the
// any-tag-matches (OR) semantics against the JSON tags column.
func (r *NoteRepo) ListByOwner(ctx context.Context, ownerID string, tags []string) ([]*model.Note, error) {
	q := "SELECT " + noteColumns + " FROM notes WHERE user_id = ?"
	args := []any{ownerID}
	if len(tags) > 0 {
		filter, err := json.Marshal(tags)
		if err != nil {
			return nil, err
		}
		q += " AND JSON_OVERLAPS(tags, CAST(? AS JSON))"
		args = append(args, string(filter))
	}
	q += " ORDER BY updated_at DESC, id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Note
	for rows.Next() {
		n := new(model.Note)
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Tags, &n.UserID, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update persists the note's title, content and tags and refreshes
// updated_at. The updated_at column is set explicitly so the row is
// touched even when the other fields are unchanged. Timestamps are
// re-read afterwards so the caller sees the stored values.
func (r *NoteRepo) Update(ctx context.Context, n *model.Note) error {
	const q = `UPDATE notes
	           SET title = ?, content = ?, tags = ?, updated_at = CURRENT_TIMESTAMP(3)
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, n.Title, n.Content, n.Tags, n.ID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNoteNotFound
	}
	const qSelect = "SELECT created_at, updated_at FROM notes WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, n.ID).Scan(&n.CreatedAt, &n.UpdatedAt)
}

// Delete removes a note by id. ErrNoteNotFound is returned when no row
// was deleted.
func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNoteNotFound
	}
	return nil
}
