package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound signals that no record matches the given id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput signals a rejected field value or transition.
	ErrInvalidInput = errors.New("invalid input")
	// ErrVerificationFailed signals a token the verification service rejected.
	ErrVerificationFailed = errors.New("verification failed")
)

// Category classifies an event.
type Category string

const (
	CategoryConference Category = "conference"
	CategoryWorkshop   Category = "workshop"
	CategoryMeetup     Category = "meetup"
	CategoryWebinar    Category = "webinar"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryConference, CategoryWorkshop, CategoryMeetup, CategoryWebinar:
		return true
	}
	return false
}

// Priority ranks an event.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Event is a persisted event record. ID and timestamps are set by the
// storage layer; ID never changes once assigned.
type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Category        Category  `json:"category"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Duration        int       `json:"duration"`
	Location        string    `json:"location"`
	Online          bool      `json:"online"`
	MeetingURL      string    `json:"meetingUrl,omitempty"`
	MaxParticipants *int      `json:"maxParticipants,omitempty"`
	Priority        Priority  `json:"priority"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// EventPatch carries a partial update for an existing event. Nil fields
// are left untouched by the merge.
type EventPatch struct {
	Title           *string
	Description     *string
	Category        *Category
	Date            *string
	Time            *string
	Duration        *int
	Location        *string
	Online          *bool
	MeetingURL      *string
	MaxParticipants *int
	Priority        *Priority
}

// EventStats aggregates the stored collection for the list view.
type EventStats struct {
	Total      int              `json:"total"`
	ByCategory map[Category]int `json:"byCategory"`
	ByPriority map[Priority]int `json:"byPriority"`
	Online     int              `json:"online"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	// List returns every stored event, empty (not nil) when the store is
	// absent or unreadable.
	List(ctx context.Context) ([]*Event, error)
	// Create persists a new event built from the draft, generating its id
	// and timestamps, and returns the stored record.
	Create(ctx context.Context, draft Draft) (*Event, error)
	// Update merges the patch over the event with the given id and bumps
	// UpdatedAt. Returns ErrNotFound when no such event exists.
	Update(ctx context.Context, id string, patch EventPatch) (*Event, error)
	// Delete removes the event with the given id; deleting a missing id is
	// a no-op, not an error.
	Delete(ctx context.Context, id string) error
}

// EventService defines the application-facing event operations.
type EventService interface {
	CreateFromDraft(ctx context.Context, draft Draft) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	UpdateEvent(ctx context.Context, id string, patch EventPatch) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
	Stats(ctx context.Context) (*EventStats, error)
}
