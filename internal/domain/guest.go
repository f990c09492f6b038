package domain

import "context"

// Guest is an anonymous invitation recipient. A guest has no account; the
// encrypted link token is their only credential and therefore never leaves
// the server in serialized form. The organizer receives the minted URL once,
// in the create response.
// swagger:model Guest
type Guest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Link string `json:"-"`
}

// NewGuest returns a Guest with the given display name. ID and Link are set
// after the repository allocates an identity and the codec mints a token.
func NewGuest(name string) *Guest {
	return &Guest{Name: name}
}

// RecipientID implements Recipient.
func (g *Guest) RecipientID() int64 { return g.ID }

// DisplayName implements Recipient.
func (g *Guest) DisplayName() string { return g.Name }

// GuestRepository defines storage operations for guests.
type GuestRepository interface {
	Create(ctx context.Context, guest *Guest) error
	GetByID(ctx context.Context, id int64) (*Guest, error)
	UpdateLink(ctx context.Context, id int64, link string) error
}
