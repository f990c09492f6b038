package domain

import (
	"context"
	"sort"
	"time"
)

// InvitationStatus is the state of an invitation. The set is open at the
// engine level: ChangeInvitationStatus accepts any value and only timestamps
// the transition. Input validation against the known statuses belongs to the
// presentation layer.
type InvitationStatus string

const (
	StatusPending  InvitationStatus = "PENDING"
	StatusAccepted InvitationStatus = "ACCEPTED"
	StatusDeclined InvitationStatus = "DECLINED"
)

// KnownStatus reports whether s is one of the statuses this application
// issues.
func KnownStatus(s InvitationStatus) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

// Invitation ties a recipient to an event. Created PENDING; every status
// change refreshes ChangedAt.
// swagger:model Invitation
type Invitation struct {
	ID        int64            `json:"id"`
	EventID   int64            `json:"event_id"`
	CreatedAt time.Time        `json:"created_at"`
	ChangedAt time.Time        `json:"changed_at"`
	Status    InvitationStatus `json:"status"`
	Recipient Recipient        `json:"recipient"`
}

// Invitations returns a copy of the event's invitation list in creation
// order.
func (e *Event) Invitations() []*Invitation {
	out := make([]*Invitation, len(e.invitations))
	copy(out, e.invitations)
	return out
}

// SetInvitations replaces the invitation list. Intended for repositories
// rebuilding an event from storage.
func (e *Event) SetInvitations(invs []*Invitation) {
	e.invitations = invs
}

// CreateInvitation adds a PENDING invitation for r. A recipient holds at most
// one invitation per event; a second attempt fails with ErrDuplicateRecipient
// until the existing invitation is deleted.
func (e *Event) CreateInvitation(r Recipient, now time.Time) (*Invitation, error) {
	for _, inv := range e.invitations {
		if SameRecipient(inv.Recipient, r) {
			return nil, ErrDuplicateRecipient
		}
	}
	inv := &Invitation{
		EventID:   e.ID,
		CreatedAt: now,
		ChangedAt: now,
		Status:    StatusPending,
		Recipient: r,
	}
	e.invitations = append(e.invitations, inv)
	return inv, nil
}

// CreateInvitations adds a PENDING invitation for every recipient, or none at
// all: duplicates against existing invitations and within the batch are
// detected before anything is appended.
func (e *Event) CreateInvitations(rs []Recipient, now time.Time) ([]*Invitation, error) {
	for i, r := range rs {
		for _, inv := range e.invitations {
			if SameRecipient(inv.Recipient, r) {
				return nil, ErrDuplicateRecipient
			}
		}
		for j := 0; j < i; j++ {
			if SameRecipient(rs[j], r) {
				return nil, ErrDuplicateRecipient
			}
		}
	}
	out := make([]*Invitation, 0, len(rs))
	for _, r := range rs {
		inv, err := e.CreateInvitation(r, now)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}

// FindInvitation returns the invitation held by r, or
// NotFoundError("invitation").
func (e *Event) FindInvitation(r Recipient) (*Invitation, error) {
	for _, inv := range e.invitations {
		if SameRecipient(inv.Recipient, r) {
			return inv, nil
		}
	}
	return nil, NewNotFound("invitation")
}

// FindGuestInvitation returns the invitation held by the guest with the given
// ID, or NotFoundError("invitation").
func (e *Event) FindGuestInvitation(guestID int64) (*Invitation, error) {
	for _, inv := range e.invitations {
		if g, ok := inv.Recipient.(*Guest); ok && g.ID == guestID {
			return inv, nil
		}
	}
	return nil, NewNotFound("invitation")
}

// ChangeInvitationStatus sets the status of r's invitation and refreshes
// ChangedAt. Transitions are not restricted; an accepted invitation may move
// back to PENDING.
func (e *Event) ChangeInvitationStatus(r Recipient, status InvitationStatus, now time.Time) (*Invitation, error) {
	inv, err := e.FindInvitation(r)
	if err != nil {
		return nil, err
	}
	inv.Status = status
	inv.ChangedAt = now
	return inv, nil
}

// DeleteInvitation removes r's invitation and reports whether one was
// removed. Absence is not an error; deletion is the only way a recipient can
// be re-invited.
func (e *Event) DeleteInvitation(r Recipient) bool {
	for i, inv := range e.invitations {
		if SameRecipient(inv.Recipient, r) {
			e.invitations = append(e.invitations[:i], e.invitations[i+1:]...)
			return true
		}
	}
	return false
}

// FilterAndSortByStatus returns the invitations with the given status ordered
// by ChangedAt ascending. The sort is stable; ties keep the original order.
func FilterAndSortByStatus(invs []*Invitation, status InvitationStatus) []*Invitation {
	out := make([]*Invitation, 0)
	for _, inv := range invs {
		if inv.Status == status {
			out = append(out, inv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ChangedAt.Before(out[j].ChangedAt)
	})
	return out
}

// LinkCodec encrypts and decrypts guest link tokens. Decode returns
// ErrInvalidToken for anything that was not produced by Encode with the same
// key, including tampered tokens.
type LinkCodec interface {
	Encode(guestID, eventID int64) (string, error)
	Decode(token string) (guestID, eventID int64, err error)
}

// InvitationService drives the invitation lifecycle for an event, including
// the anonymous guest flow.
type InvitationService interface {
	Invite(ctx context.Context, eventID, callerID int64, email string) (*Invitation, error)
	InviteAll(ctx context.Context, eventID, callerID int64, emails []string) ([]*Invitation, error)
	ChangeStatus(ctx context.Context, eventID int64, email string, status InvitationStatus) (*Invitation, error)
	Withdraw(ctx context.Context, eventID, callerID int64, email string) (bool, error)
	ListByStatus(ctx context.Context, eventID int64, status InvitationStatus, params PaginationParams) ([]*Invitation, int, error)
	CreateGuestInvitation(ctx context.Context, eventID int64, displayName, email string) (*Guest, *Invitation, error)
	ResolveGuestLink(ctx context.Context, token string) (*Invitation, error)
	ChangeGuestStatus(ctx context.Context, token string, status InvitationStatus) (*Invitation, error)
	GuestURL(token string) string
}
