package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/iliyamo/notes-api/internal/cache"
	"github.com/iliyamo/notes-api/internal/model"
	"github.com/iliyamo/notes-api/internal/queue"
	"github.com/iliyamo/notes-api/internal/repository"
)

// NoteStore is the slice of the note repository the notes service needs.
type NoteStore interface {
	Create(ctx context.Context, n *model.Note) error
	GetByID(ctx context.Context, id string) (*model.Note, error)
	ListByOwner(ctx context.Context, ownerID string, tags []string) ([]*model.Note, error)
	Update(ctx context.Context, n *model.Note) error
	Delete(ctx context.Context, id string) error
}

// Publisher emits a note activity event. Failures must be tolerated by
// the caller; the request that produced the event has already succeeded.
type Publisher func(ctx context.Context, event queue.NoteActivityEvent) error

// CreateNote carries the fields of a new note.
type CreateNote struct {
	Title   string
	Content string
	Tags    model.TagList
}

// UpdateNote is a partial patch: nil fields keep their current value.
type UpdateNote struct {
	Title   *string
	Content *string
	Tags    *model.TagList
}

// NotesService orchestrates the note store and the cache. It owns the
// cache key grammar and the invalidation policy: every cached list view
// for an owner lives under one key prefix, and any successful mutation
// wipes that whole prefix after the database write commits. The cache is
// purely an accelerator, so every cache failure is logged and swallowed.
type NotesService struct {
	notes   NoteStore
	store   cache.Store
	ttl     time.Duration
	prefix  string
	publish Publisher
}

// NewNotesService wires the service. publish may be nil when no broker is
// configured. prefix is the cache namespace, normally "notes"; ttl <= 0
// falls back to five minutes.
func NewNotesService(notes NoteStore, store cache.Store, prefix string, ttl time.Duration, publish Publisher) *NotesService {
	if ttl <= 0 {
		ttl = 300 * time.Second
	}
	if prefix == "" {
		prefix = "notes"
	}
	return &NotesService{notes: notes, store: store, ttl: ttl, prefix: prefix, publish: publish}
}

// ownerPrefix is the common prefix of every cached list view for a user.
func (s *NotesService) ownerPrefix(ownerID string) string {
	return s.prefix + ":user:" + ownerID + ":"
}

// listKey derives the cache key for a list query. The tag filter is
// sorted so that [b,a] and [a,b] hit the same entry.
func (s *NotesService) listKey(ownerID string, tags []string) string {
	if len(tags) == 0 {
		return s.ownerPrefix(ownerID) + "all"
	}
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)
	return s.ownerPrefix(ownerID) + "tags:" + strings.Join(sorted, ",")
}

// normalizeTags trims whitespace and drops empty entries so that "a, ,b"
// from the query string never pollutes keys or queries.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// List returns the owner's notes, newest update first, optionally
// restricted to notes carrying at least one of the filter tags. The cache
// is consulted first; on a miss the database result is cached for the
// configured TTL. A cached snapshot is returned verbatim and may trail a
// concurrent write until the next invalidation or expiry.
func (s *NotesService) List(ctx context.Context, ownerID string, tags []string) ([]*model.Note, error) {
	tags = normalizeTags(tags)
	key := s.listKey(ownerID, tags)

	if bs, err := s.store.Get(ctx, key); err == nil {
		var notes []*model.Note
		if err := json.Unmarshal(bs, &notes); err == nil {
			return notes, nil
		}
		log.Printf("cache: decode %s failed, falling back to db", key)
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("cache: get %s failed: %v", key, err)
	}

	notes, err := s.notes.ListByOwner(ctx, ownerID, tags)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []*model.Note{}
	}
	if bs, err := json.Marshal(notes); err == nil {
		if err := s.store.SetEx(ctx, key, bs, s.ttl); err != nil {
			log.Printf("cache: set %s failed: %v", key, err)
		}
	}
	return notes, nil
}

// Get returns a single note. repository.ErrNoteNotFound is passed through
// when the id is unknown; repository.ErrForbidden is returned when the
// note belongs to someone else.
func (s *NotesService) Get(ctx context.Context, id, ownerID string) (*model.Note, error) {
	n, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != ownerID {
		return nil, repository.ErrForbidden
	}
	return n, nil
}

// Create persists a new note for the owner and invalidates their cached
// list views. Tags default to an empty list.
func (s *NotesService) Create(ctx context.Context, data CreateNote, ownerID string) (*model.Note, error) {
	n := &model.Note{
		Title:   data.Title,
		Content: data.Content,
		Tags:    data.Tags,
		UserID:  ownerID,
	}
	if n.Tags == nil {
		n.Tags = model.TagList{}
	}
	if err := s.notes.Create(ctx, n); err != nil {
		return nil, err
	}
	s.invalidate(ctx, ownerID)
	s.emit(ctx, n, "created")
	return n, nil
}

// Update applies a partial patch to an owned note. Fields absent from the
// patch keep their prior values; updated_at is refreshed either way.
func (s *NotesService) Update(ctx context.Context, id string, patch UpdateNote, ownerID string) (*model.Note, error) {
	n, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	if patch.Tags != nil {
		n.Tags = *patch.Tags
		if n.Tags == nil {
			n.Tags = model.TagList{}
		}
	}
	if err := s.notes.Update(ctx, n); err != nil {
		return nil, err
	}
	s.invalidate(ctx, ownerID)
	s.emit(ctx, n, "updated")
	return n, nil
}

// Remove deletes an owned note and invalidates the owner's cached views.
func (s *NotesService) Remove(ctx context.Context, id, ownerID string) error {
	n, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.notes.Delete(ctx, n.ID); err != nil {
		return err
	}
	s.invalidate(ctx, ownerID)
	s.emit(ctx, n, "deleted")
	return nil
}

// invalidate wipes every cached list view for the owner. It runs strictly
// after the triggering write has committed. Errors are logged and
// swallowed: the store is the source of truth and a stale entry expires
// on its own within the TTL.
func (s *NotesService) invalidate(ctx context.Context, ownerID string) {
	if err := s.store.DeleteByPrefix(ctx, s.ownerPrefix(ownerID)); err != nil {
		log.Printf("cache: invalidate %s failed: %v", s.ownerPrefix(ownerID), err)
	}
}

// emit publishes a best-effort activity event.
func (s *NotesService) emit(ctx context.Context, n *model.Note, action string) {
	if s.publish == nil {
		return
	}
	_ = s.publish(ctx, queue.NoteActivityEvent{
		NoteID:     n.ID,
		UserID:     n.UserID,
		Action:     action,
		Title:      n.Title,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
