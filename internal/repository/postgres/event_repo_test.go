package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"sportteammanager/internal/domain"
)

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	startsAt := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT e.id, e.starts_at, e.capacity, e.canceled, e.place`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "starts_at", "capacity", "canceled", "place",
			"user_id", "name", "surname", "email", "role", "password_hash",
		}).AddRow(int64(1), startsAt, 20, false, "Sokolovna", int64(7), "Ivan", "Stastny", "is@gmail.com", "USER", "hash"))

	invColumns := []string{
		"id", "status", "created_at", "changed_at",
		"user_id", "user_name", "surname", "email", "role", "password_hash",
		"guest_id", "guest_name", "guest_link",
	}
	mock.ExpectQuery(`SELECT i.id, i.status, i.created_at, i.changed_at`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(invColumns).
			AddRow(int64(100), "PENDING", startsAt, startsAt, int64(8), "Pavel", "Smutny", "ps@gmail.com", "USER", "hash", nil, nil, nil).
			AddRow(int64(101), "ACCEPTED", startsAt, startsAt, nil, nil, nil, nil, nil, nil, int64(3), "Karel", "tok"))

	mock.ExpectQuery(`SELECT m.id, m.text, m.sent_at`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "text", "sent_at",
			"user_id", "name", "surname", "email", "role", "password_hash",
		}).AddRow(int64(5), "bring darts", startsAt, int64(7), "Ivan", "Stastny", "is@gmail.com", "USER", "hash"))

	repo := NewEventRepository(db)
	event, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Sokolovna", event.Place)
	require.Equal(t, int64(7), event.CreatedBy.ID)

	invs := event.Invitations()
	require.Len(t, invs, 2)
	user, ok := invs[0].Recipient.(*domain.RegisteredUser)
	require.True(t, ok)
	require.Equal(t, int64(8), user.ID)
	guest, ok := invs[1].Recipient.(*domain.Guest)
	require.True(t, ok)
	require.Equal(t, int64(3), guest.ID)
	require.Equal(t, domain.StatusAccepted, invs[1].Status)

	// The reconstructed ledger keeps behaving like the in-memory one.
	_, err = event.CreateInvitation(user, time.Now())
	require.ErrorIs(t, err, domain.ErrDuplicateRecipient)
	found, err := event.FindGuestInvitation(3)
	require.NoError(t, err)
	require.Equal(t, invs[1], found)

	require.Len(t, event.Messages, 1)
	require.Equal(t, "bring darts", event.Messages[0].Text)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_GetByID_not_found(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT e.id, e.starts_at, e.capacity, e.canceled, e.place`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewEventRepository(db)
	_, err = repo.GetByID(context.Background(), 9)
	require.True(t, domain.IsNotFound(err))
}

func TestEventRepository_Save(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	creator := &domain.RegisteredUser{ID: 7, Name: "Ivan", Surname: "Stastny", Email: "is@gmail.com", Role: domain.RoleUser}
	event := domain.NewEvent(now, 20, "Sokolovna", creator)
	event.ID = 1
	guest := &domain.Guest{ID: 3, Name: "Karel", Link: "tok"}
	_, err = event.CreateInvitation(guest, now)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE events`).
		WithArgs(now, 20, false, "Sokolovna", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM invitations WHERE event_id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO invitations`).
		WithArgs(int64(1), nil, int64(3), domain.StatusPending, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectExec(`DELETE FROM event_messages WHERE event_id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	repo := NewEventRepository(db)
	require.NoError(t, repo.Save(ctx, event))
	require.Equal(t, int64(100), event.Invitations()[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
