package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/notes-api/internal/model"
	"github.com/iliyamo/notes-api/internal/repository"
	"github.com/iliyamo/notes-api/internal/service"
)

// NotesHandler exposes the note CRUD endpoints. Every handler resolves
// the owner from the authenticated context, so a client can never reach
// another user's notes regardless of input.
type NotesHandler struct {
	Notes *service.NotesService
}

func NewNotesHandler(n *service.NotesService) *NotesHandler {
	return &NotesHandler{Notes: n}
}

// ----- DTOs -----

type createNoteReq struct {
	Title   string        `json:"title"`
	Content string        `json:"content"`
	Tags    model.TagList `json:"tags"`
}

type updateNoteReq struct {
	Title   *string        `json:"title"`
	Content *string        `json:"content"`
	Tags    *model.TagList `json:"tags"`
}

func ownerID(c echo.Context) string {
	uid, _ := c.Get("user_id").(string)
	return uid
}

func noteError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNoteNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you do not have access to this note"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "operation failed"})
	}
}

// List returns the owner's notes, optionally filtered by the `tags`
// query parameter (comma-separated, any-match).
func (h *NotesHandler) List(c echo.Context) error {
	var tags []string
	if raw := c.QueryParam("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	notes, err := h.Notes.List(ctx, ownerID(c), tags)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list notes failed"})
	}
	return c.JSON(http.StatusOK, notes)
}

// Get returns a single owned note.
func (h *NotesHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Notes.Get(ctx, c.Param("id"), ownerID(c))
	if err != nil {
		return noteError(c, err)
	}
	return c.JSON(http.StatusOK, n)
}

// Create persists a new note. Title and content are required; tags
// default to an empty list.
func (h *NotesHandler) Create(c echo.Context) error {
	var req createNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and content are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Notes.Create(ctx, service.CreateNote{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	}, ownerID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create note failed"})
	}
	return c.JSON(http.StatusCreated, n)
}

// Update applies a partial patch to an owned note; absent fields keep
// their prior values.
func (h *NotesHandler) Update(c echo.Context) error {
	var req updateNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title cannot be blank"})
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content cannot be blank"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Notes.Update(ctx, c.Param("id"), service.UpdateNote{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	}, ownerID(c))
	if err != nil {
		return noteError(c, err)
	}
	return c.JSON(http.StatusOK, n)
}

// Delete removes an owned note.
func (h *NotesHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Notes.Remove(ctx, c.Param("id"), ownerID(c)); err != nil {
		return noteError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Note deleted successfully"})
}
