// Package core holds the note domain and the storage contract every backend implements.
package core

import "time"

// Note is the central entity of the domain.
// It represents one user-authored title/content pair with its timestamps.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Touched returns the recency key of the note: UpdatedAt, or CreatedAt when
// the note was never updated.
func (n Note) Touched() time.Time {
	if n.UpdatedAt.IsZero() {
		return n.CreatedAt
	}
	return n.UpdatedAt
}

// Draft is the input of a create operation.
type Draft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Apply merges the patch onto n and returns the result.
// Timestamps are the caller's responsibility.
func (p Patch) Apply(n Note) Note {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	return n
}

// Ack acknowledges a remove operation.
type Ack struct {
	ID string `json:"id"`
}

// EventType represents the type of change in the store.
type EventType string

const (
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event reports that the persisted collection changed outside the current process.
type Event struct {
	Type      EventType
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type)
}
