package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"sportteammanager/internal/domain"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// recipientColumns splits a recipient into the nullable user_id/guest_id pair
// used by the membership and invitation tables. Exactly one of the two is set.
func recipientColumns(r domain.Recipient) (userID, guestID sql.NullInt64) {
	switch x := r.(type) {
	case *domain.RegisteredUser:
		userID = sql.NullInt64{Int64: x.ID, Valid: true}
	case *domain.Guest:
		guestID = sql.NullInt64{Int64: x.ID, Valid: true}
	}
	return userID, guestID
}

// nullableRecipient rebuilds a recipient from a row that LEFT JOINed both
// users and guests. Rows with neither side populated yield nil.
type nullableRecipient struct {
	userID    sql.NullInt64
	userName  sql.NullString
	surname   sql.NullString
	email     sql.NullString
	role      sql.NullString
	hash      sql.NullString
	guestID   sql.NullInt64
	guestName sql.NullString
	guestLink sql.NullString
}

func (n *nullableRecipient) fields() []any {
	return []any{
		&n.userID, &n.userName, &n.surname, &n.email, &n.role, &n.hash,
		&n.guestID, &n.guestName, &n.guestLink,
	}
}

func (n *nullableRecipient) recipient() domain.Recipient {
	if n.userID.Valid {
		return &domain.RegisteredUser{
			ID:           n.userID.Int64,
			Name:         n.userName.String,
			Surname:      n.surname.String,
			Email:        n.email.String,
			Role:         domain.Role(n.role.String),
			PasswordHash: n.hash.String,
		}
	}
	if n.guestID.Valid {
		return &domain.Guest{
			ID:   n.guestID.Int64,
			Name: n.guestName.String,
			Link: n.guestLink.String,
		}
	}
	return nil
}
