// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records note activity.
package queue

// ActivityQueueName is the durable queue all note activity flows through.
const ActivityQueueName = "notes.activity"

// NoteActivityEvent is published after a note is created, updated or
// deleted. It contains enough information for downstream consumers to
// log or trigger analytics without querying the primary database.
type NoteActivityEvent struct {
	NoteID     string `json:"note_id"`
	UserID     string `json:"user_id"`
	Action     string `json:"action"` // created | updated | deleted
	Title      string `json:"title"`
	OccurredAt string `json:"occurred_at"`
}
