package domain

import (
	"context"
	"time"
)

// Message is a note posted on an event wall by a registered user.
// swagger:model Message
type Message struct {
	ID     int64           `json:"id"`
	Text   string          `json:"text"`
	Author *RegisteredUser `json:"author"`
	SentAt time.Time       `json:"sent_at"`
}

// Event is a scheduled team activity. The event exclusively owns its
// invitation list; all invitation mutation goes through the ledger methods in
// invitation.go. Not safe for concurrent use; callers serialize access per
// event.
// swagger:model Event
type Event struct {
	ID          int64           `json:"id"`
	StartsAt    time.Time       `json:"starts_at"`
	Capacity    int             `json:"capacity"`
	Canceled    bool            `json:"canceled"`
	Place       string          `json:"place"`
	CreatedBy   *RegisteredUser `json:"created_by"`
	Messages    []*Message      `json:"messages"`
	invitations []*Invitation
}

// NewEvent returns an Event with the given fields. ID is set by the
// repository on create.
func NewEvent(startsAt time.Time, capacity int, place string, createdBy *RegisteredUser) *Event {
	return &Event{
		StartsAt:  startsAt,
		Capacity:  capacity,
		Place:     place,
		CreatedBy: createdBy,
	}
}

// PostMessage appends a message to the event wall.
func (e *Event) PostMessage(text string, author *RegisteredUser, now time.Time) *Message {
	m := &Message{Text: text, Author: author, SentAt: now}
	e.Messages = append(e.Messages, m)
	return m
}

// Cancel marks the event as canceled.
func (e *Event) Cancel() { e.Canceled = true }

// EventRepository is the event store. Save persists the full aggregate
// snapshot, including the invitation list and messages.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	Save(ctx context.Context, event *Event) error
}

// EventService defines lifecycle operations on events themselves. Invitation
// handling lives on InvitationService.
type EventService interface {
	CreateEvent(ctx context.Context, startsAt time.Time, capacity int, place string, creatorID int64) (*Event, error)
	GetEvent(ctx context.Context, eventID int64) (*Event, error)
	UpdateEvent(ctx context.Context, eventID, callerID int64, startsAt *time.Time, capacity *int, place *string) (*Event, error)
	CancelEvent(ctx context.Context, eventID, callerID int64) (*Event, error)
	PostMessage(ctx context.Context, eventID, authorID int64, text string) (*Message, error)
}
