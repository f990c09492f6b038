package postgres

import (
	"context"
	"database/sql"
	"errors"

	"sportteammanager/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (starts_at, capacity, canceled, place, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, e.StartsAt, e.Capacity, e.Canceled, e.Place, e.CreatedBy.ID).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `
		SELECT e.id, e.starts_at, e.capacity, e.canceled, e.place,
		       u.id, u.name, u.surname, u.email, u.role, u.password_hash
		FROM events e
		JOIN users u ON u.id = e.created_by
		WHERE e.id = $1
	`
	e := &domain.Event{CreatedBy: &domain.RegisteredUser{}}
	c := e.CreatedBy
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.StartsAt, &e.Capacity, &e.Canceled, &e.Place,
		&c.ID, &c.Name, &c.Surname, &c.Email, &c.Role, &c.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("event")
		}
		return nil, err
	}

	invitations, err := r.loadInvitations(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	e.SetInvitations(invitations)

	messages, err := r.loadMessages(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	e.Messages = messages
	return e, nil
}

// Save persists the full aggregate snapshot. Invitations and messages are
// replaced wholesale inside one transaction so the stored ledger always
// matches the in-memory one.
func (r *eventRepository) Save(ctx context.Context, e *domain.Event) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE events
		SET starts_at = $1, capacity = $2, canceled = $3, place = $4
		WHERE id = $5
	`
	result, err := tx.ExecContext(ctx, query, e.StartsAt, e.Capacity, e.Canceled, e.Place, e.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.NewNotFound("event")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM invitations WHERE event_id = $1`, e.ID); err != nil {
		return err
	}
	invQuery := `
		INSERT INTO invitations (event_id, user_id, guest_id, status, created_at, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	for _, inv := range e.Invitations() {
		userID, guestID := recipientColumns(inv.Recipient)
		if err := tx.QueryRowContext(ctx, invQuery, e.ID, userID, guestID, inv.Status, inv.CreatedAt, inv.ChangedAt).Scan(&inv.ID); err != nil {
			return err
		}
		inv.EventID = e.ID
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM event_messages WHERE event_id = $1`, e.ID); err != nil {
		return err
	}
	msgQuery := `
		INSERT INTO event_messages (event_id, author_id, text, sent_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for _, m := range e.Messages {
		if err := tx.QueryRowContext(ctx, msgQuery, e.ID, m.Author.ID, m.Text, m.SentAt).Scan(&m.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *eventRepository) loadInvitations(ctx context.Context, eventID int64) ([]*domain.Invitation, error) {
	query := `
		SELECT i.id, i.status, i.created_at, i.changed_at,
		       u.id, u.name, u.surname, u.email, u.role, u.password_hash,
		       g.id, g.name, g.link
		FROM invitations i
		LEFT JOIN users u ON u.id = i.user_id
		LEFT JOIN guests g ON g.id = i.guest_id
		WHERE i.event_id = $1
		ORDER BY i.created_at, i.id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invitations := make([]*domain.Invitation, 0)
	for rows.Next() {
		inv := &domain.Invitation{EventID: eventID}
		var n nullableRecipient
		dest := append([]any{&inv.ID, &inv.Status, &inv.CreatedAt, &inv.ChangedAt}, n.fields()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		inv.Recipient = n.recipient()
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

func (r *eventRepository) loadMessages(ctx context.Context, eventID int64) ([]*domain.Message, error) {
	query := `
		SELECT m.id, m.text, m.sent_at,
		       u.id, u.name, u.surname, u.email, u.role, u.password_hash
		FROM event_messages m
		JOIN users u ON u.id = m.author_id
		WHERE m.event_id = $1
		ORDER BY m.sent_at, m.id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		m := &domain.Message{Author: &domain.RegisteredUser{}}
		a := m.Author
		if err := rows.Scan(&m.ID, &m.Text, &m.SentAt, &a.ID, &a.Name, &a.Surname, &a.Email, &a.Role, &a.PasswordHash); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
