package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"sportteammanager/internal/domain"
)

var memberColumns = []string{
	"subgroup_id",
	"user_id", "user_name", "surname", "email", "role", "password_hash",
	"guest_id", "guest_name", "guest_link",
}

func TestTeamRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT t.id, t.name, t.sport`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "sport",
			"owner_id", "owner_name", "surname", "email", "role", "password_hash",
		}).AddRow(int64(1), "B team", "sipky", int64(7), "Ivan", "Stastny", "is@gmail.com", "USER", "hash"))

	mock.ExpectQuery(`SELECT id, name\s+FROM subgroups`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(10), domain.SubgroupAllUsers).
			AddRow(int64(11), domain.SubgroupCoaches))

	mock.ExpectQuery(`SELECT m.subgroup_id`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(memberColumns).
			AddRow(int64(10), int64(7), "Ivan", "Stastny", "is@gmail.com", "USER", "hash", nil, nil, nil).
			AddRow(int64(10), nil, nil, nil, nil, nil, nil, int64(3), "Karel", "tok").
			AddRow(int64(11), int64(7), "Ivan", "Stastny", "is@gmail.com", "USER", "hash", nil, nil, nil))

	repo := NewTeamRepository(db)
	team, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "B team", team.Name)
	require.Equal(t, int64(7), team.Owner.ID)

	subgroups := team.Subgroups()
	require.Len(t, subgroups, 2)
	require.Equal(t, domain.SubgroupAllUsers, subgroups[0].Name)
	require.Equal(t, 2, subgroups[0].Size())
	require.Equal(t, 1, subgroups[1].Size())

	// The guest member came back as a guest, not a user.
	members := subgroups[0].Members()
	guest, ok := members[1].(*domain.Guest)
	require.True(t, ok)
	require.Equal(t, int64(3), guest.ID)
	require.Equal(t, "Karel", guest.Name)

	require.True(t, team.IsMember(team.Owner))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_Save_missing_team(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE teams SET name = \$1, sport = \$2, owner_id = \$3`).
		WithArgs("B team", "sipky", int64(7), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	owner := &domain.RegisteredUser{ID: 7, Name: "Ivan", Surname: "Stastny", Email: "is@gmail.com", Role: domain.RoleUser}
	team := domain.NewTeam("B team", "sipky", owner)
	team.ID = 99

	repo := NewTeamRepository(db)
	err = repo.Save(ctx, team)
	require.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_Delete(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM teams WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM teams WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewTeamRepository(db)
	require.NoError(t, repo.Delete(ctx, 1))
	require.True(t, domain.IsNotFound(repo.Delete(ctx, 1)))
	require.NoError(t, mock.ExpectationsWereMet())
}
