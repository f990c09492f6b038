package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"sportteammanager/internal/domain"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		check   func(t *testing.T, err error)
	}{
		{
			name: "success assigns id",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users \(name, surname, email, role, password_hash\)`).
					WithArgs("Ivan", "Stastny", "is@gmail.com", domain.RoleUser, "hash").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
			},
			check: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "duplicate email",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users \(name, surname, email, role, password_hash\)`).
					WithArgs("Ivan", "Stastny", "is@gmail.com", domain.RoleUser, "hash").
					WillReturnError(&pq.Error{Code: uniqueViolation})
			},
			check: func(t *testing.T, err error) {
				require.True(t, domain.IsAlreadyExists(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewUserRepository(db)
			u := domain.NewRegisteredUser("Ivan", "Stastny", "is@gmail.com", domain.RoleUser)
			u.PasswordHash = "hash"
			tt.check(t, repo.Create(ctx, u))
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	columns := []string{"id", "name", "surname", "email", "role", "password_hash"}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, surname, email, role, password_hash`).
			WithArgs("is@gmail.com").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(int64(7), "Ivan", "Stastny", "is@gmail.com", "USER", "hash"))

		repo := NewUserRepository(db)
		u, err := repo.GetByEmail(ctx, "is@gmail.com")
		require.NoError(t, err)
		require.Equal(t, int64(7), u.ID)
		require.Equal(t, domain.RoleUser, u.Role)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown email", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, surname, email, role, password_hash`).
			WithArgs("nobody@gmail.com").
			WillReturnRows(sqlmock.NewRows(columns))

		repo := NewUserRepository(db)
		_, err = repo.GetByEmail(ctx, "nobody@gmail.com")
		require.True(t, domain.IsNotFound(err))
	})
}
