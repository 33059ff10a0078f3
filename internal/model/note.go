package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TagList is a note's tag set, persisted as a JSON array in the `tags`
// column. Order is preserved as stored but carries no meaning.
type TagList []string

// Value serializes the tag list for storage. A nil list is stored as an
// empty JSON array so the column is never NULL.
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads the JSON array form back from the database.
func (t *TagList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = TagList{}
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]string)(t))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(t))
	default:
		return fmt.Errorf("tags: cannot scan %T", src)
	}
}

// Note represents a note record as stored in the `notes` table. Every
// note belongs to exactly one owner, fixed at creation.
//
// Fields:
//  ID        – uuid primary key of the note.
//  Title     – note title.
//  Content   – note body text.
//  Tags      – tag set, stored as a JSON array.
//  UserID    – uuid of the owning user (notes.user_id).
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last mutation.
type Note struct {
	ID        string    `json:"id"`        // notes.id
	Title     string    `json:"title"`     // notes.title
	Content   string    `json:"content"`   // notes.content
	Tags      TagList   `json:"tags"`      // notes.tags
	UserID    string    `json:"userId"`    // notes.user_id
	CreatedAt time.Time `json:"createdAt"` // notes.created_at
	UpdatedAt time.Time `json:"updatedAt"` // notes.updated_at
}
