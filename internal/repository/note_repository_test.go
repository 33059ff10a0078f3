package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/notes-api/internal/model"
)

func newMock(t *testing.T) (*NoteRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewNoteRepo(db), mock
}

func TestNoteRepoCreate(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO notes (id, title, content, tags, user_id) VALUES (?, ?, ?, ?, ?)")).
		WithArgs(sqlmock.AnyArg(), "T", "C", `["work"]`, "owner-a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT created_at, updated_at FROM notes WHERE id = ?")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	n := &model.Note{Title: "T", Content: "C", Tags: model.TagList{"work"}, UserID: "owner-a"}
	require.NoError(t, repo.Create(context.Background(), n))
	require.NotEmpty(t, n.ID)
	require.Equal(t, now, n.CreatedAt)
	require.Equal(t, now, n.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepoCreateStoresEmptyTagsArray(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO notes (id, title, content, tags, user_id) VALUES (?, ?, ?, ?, ?)")).
		WithArgs(sqlmock.AnyArg(), "T", "C", "[]", "owner-a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT created_at, updated_at FROM notes WHERE id = ?")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	n := &model.Note{Title: "T", Content: "C", UserID: "owner-a"}
	require.NoError(t, repo.Create(context.Background(), n))
	require.NotNil(t, n.Tags)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepoGetByID(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)
	now := time.Now().UTC()

	cols := []string{"id", "title", "content", "tags", "user_id", "created_at", "updated_at"}
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, title, content, tags, user_id, created_at, updated_at FROM notes WHERE id = ?")).
		WithArgs("n1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("n1", "T", "C", `["a","b"]`, "owner-a", now, now))

	n, err := repo.GetByID(context.Background(), "n1")
	require.NoError(t, err)
	require.Equal(t, model.TagList{"a", "b"}, n.Tags)
	require.Equal(t, "owner-a", n.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepoGetByIDNotFound(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	cols := []string{"id", "title", "content", "tags", "user_id", "created_at", "updated_at"}
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, title, content, tags, user_id, created_at, updated_at FROM notes WHERE id = ?")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(cols))

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNoteNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepoListByOwnerWithTagFilter(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)
	now := time.Now().UTC()

	cols := []string{"id", "title", "content", "tags", "user_id", "created_at", "updated_at"}
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, title, content, tags, user_id, created_at, updated_at FROM notes "+
			"WHERE user_id = ? AND JSON_OVERLAPS(tags, CAST(? AS JSON)) ORDER BY updated_at DESC, id")).
		WithArgs("owner-a", `["work"]`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("n2", "B", "c", `["work"]`, "owner-a", now, now.Add(time.Second)).
			AddRow("n1", "A", "c", `["work","misc"]`, "owner-a", now, now))

	notes, err := repo.ListByOwner(context.Background(), "owner-a", []string{"work"})
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.Equal(t, "n2", notes[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepoListByOwnerNoFilter(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	cols := []string{"id", "title", "content", "tags", "user_id", "created_at", "updated_at"}
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, title, content, tags, user_id, created_at, updated_at FROM notes "+
			"WHERE user_id = ? ORDER BY updated_at DESC, id")).
		WithArgs("owner-a").
		WillReturnRows(sqlmock.NewRows(cols))

	notes, err := repo.ListByOwner(context.Background(), "owner-a", nil)
	require.NoError(t, err)
	require.Len(t, notes, 0)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepoUpdate(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)
	created := time.Now().UTC().Add(-time.Hour)
	updated := time.Now().UTC()

	mock.ExpectExec("UPDATE notes SET title = \\?, content = \\?, tags = \\?, updated_at = CURRENT_TIMESTAMP\\(3\\) WHERE id = \\?").
		WithArgs("T2", "C2", `["x"]`, "n1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT created_at, updated_at FROM notes WHERE id = ?")).
		WithArgs("n1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, updated))

	n := &model.Note{ID: "n1", Title: "T2", Content: "C2", Tags: model.TagList{"x"}}
	require.NoError(t, repo.Update(context.Background(), n))
	require.Equal(t, updated, n.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepoDeleteNotFound(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM notes WHERE id = ?")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrNoteNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
