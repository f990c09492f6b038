package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportteammanager/internal/domain"
)

const testTimeout = 2 * time.Second

func newTeamFixture(t *testing.T) (domain.TeamService, *fakeTeamRepo, *fakeUserRepo) {
	t.Helper()
	teamRepo := newFakeTeamRepo()
	userRepo := newFakeUserRepo()
	svc := NewTeamService(teamRepo, userRepo, testTimeout)
	return svc, teamRepo, userRepo
}

func TestTeamService_CreateTeam(t *testing.T) {
	svc, teamRepo, userRepo := newTeamFixture(t)
	owner := userRepo.add("Ivan", "Stastny", "is@gmail.com")

	team, err := svc.CreateTeam(context.Background(), "B team", "sipky", owner.ID)
	require.NoError(t, err)
	assert.NotZero(t, team.ID)
	assert.Equal(t, "B team", team.Name)
	assert.Equal(t, owner, team.Owner)
	require.Len(t, team.Subgroups(), 2)

	stored, err := teamRepo.GetByID(context.Background(), team.ID)
	require.NoError(t, err)
	assert.Equal(t, team, stored)
}

func TestTeamService_CreateTeam_validation(t *testing.T) {
	svc, _, userRepo := newTeamFixture(t)
	owner := userRepo.add("Ivan", "Stastny", "is@gmail.com")

	tests := []struct {
		name  string
		team  string
		sport string
	}{
		{"empty name", "", "sipky"},
		{"blank name", "   ", "sipky"},
		{"empty sport", "B team", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTeam(context.Background(), tt.team, tt.sport, owner.ID)
			assert.True(t, domain.IsValidation(err), "got %v", err)
		})
	}

	_, err := svc.CreateTeam(context.Background(), "B team", "sipky", 999)
	assert.True(t, domain.IsNotFound(err))
}

func TestTeamService_owner_only_mutations(t *testing.T) {
	svc, _, userRepo := newTeamFixture(t)
	owner := userRepo.add("Ivan", "Stastny", "is@gmail.com")
	stranger := userRepo.add("Pavel", "Smutny", "ps@gmail.com")

	team, err := svc.CreateTeam(context.Background(), "B team", "sipky", owner.ID)
	require.NoError(t, err)

	_, err = svc.CreateSubgroup(context.Background(), team.ID, stranger.ID, "Players")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.DeleteTeam(context.Background(), team.ID, stranger.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTeamService_subgroup_lifecycle(t *testing.T) {
	svc, _, userRepo := newTeamFixture(t)
	owner := userRepo.add("Ivan", "Stastny", "is@gmail.com")
	ctx := context.Background()

	team, err := svc.CreateTeam(ctx, "B team", "sipky", owner.ID)
	require.NoError(t, err)

	team, err = svc.CreateSubgroup(ctx, team.ID, owner.ID, "Players")
	require.NoError(t, err)
	assert.True(t, team.HasSubgroup("Players"))

	_, err = svc.CreateSubgroup(ctx, team.ID, owner.ID, "Players")
	assert.True(t, domain.IsAlreadyExists(err))

	team, err = svc.RenameSubgroup(ctx, team.ID, owner.ID, "Players", "Veterans")
	require.NoError(t, err)
	assert.True(t, team.HasSubgroup("Veterans"))

	team, err = svc.DeleteSubgroup(ctx, team.ID, owner.ID, "Veterans")
	require.NoError(t, err)
	assert.False(t, team.HasSubgroup("Veterans"))

	_, err = svc.DeleteSubgroup(ctx, team.ID, owner.ID, domain.SubgroupAllUsers)
	assert.True(t, domain.IsValidation(err))
}

func TestTeamService_membership(t *testing.T) {
	svc, teamRepo, userRepo := newTeamFixture(t)
	owner := userRepo.add("Ivan", "Stastny", "is@gmail.com")
	u2 := userRepo.add("Pavel", "Smutny", "ps@gmail.com")
	ctx := context.Background()

	team, err := svc.CreateTeam(ctx, "B team", "sipky", owner.ID)
	require.NoError(t, err)

	team, err = svc.AddMember(ctx, team.ID, owner.ID, u2.Email)
	require.NoError(t, err)
	assert.True(t, team.IsMember(u2))

	_, err = svc.AddMember(ctx, team.ID, owner.ID, u2.Email)
	assert.True(t, domain.IsAlreadyExists(err))

	_, err = svc.AddMember(ctx, team.ID, owner.ID, "nobody@gmail.com")
	assert.True(t, domain.IsNotFound(err))

	team, err = svc.AddMemberToSubgroup(ctx, team.ID, owner.ID, domain.SubgroupCoaches, u2.Email)
	require.NoError(t, err)

	team, err = svc.RemoveMember(ctx, team.ID, owner.ID, u2.Email)
	require.NoError(t, err)
	for _, sg := range team.Subgroups() {
		assert.False(t, sg.Contains(u2))
	}

	saves := teamRepo.saves
	_, err = svc.RemoveMember(ctx, team.ID, owner.ID, u2.Email)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, saves, teamRepo.saves, "failed mutation must not persist a snapshot")
}

func TestTeamService_RemoveMember_protects_owner(t *testing.T) {
	svc, _, userRepo := newTeamFixture(t)
	owner := userRepo.add("Ivan", "Stastny", "is@gmail.com")
	ctx := context.Background()

	team, err := svc.CreateTeam(ctx, "B team", "sipky", owner.ID)
	require.NoError(t, err)

	_, err = svc.RemoveMember(ctx, team.ID, owner.ID, owner.Email)
	assert.True(t, domain.IsValidation(err))
}

func TestTeamService_ChangeOwner(t *testing.T) {
	svc, _, userRepo := newTeamFixture(t)
	u1 := userRepo.add("Ivan", "Stastny", "is@gmail.com")
	u2 := userRepo.add("Pavel", "Smutny", "ps@gmail.com")
	ctx := context.Background()

	team, err := svc.CreateTeam(ctx, "B team", "sipky", u1.ID)
	require.NoError(t, err)
	team, err = svc.AddMember(ctx, team.ID, u1.ID, u2.Email)
	require.NoError(t, err)
	_, err = svc.CreateSubgroup(ctx, team.ID, u1.ID, "Empty")
	require.NoError(t, err)

	team, err = svc.ChangeOwner(ctx, team.ID, u1.ID, u2.Email)
	require.NoError(t, err)
	assert.Equal(t, u2, team.Owner)

	coaches, err := team.Subgroup(domain.SubgroupCoaches)
	require.NoError(t, err)
	assert.True(t, coaches.Contains(u1))
	assert.True(t, coaches.Contains(u2))

	// A non-member cannot become owner.
	u3 := userRepo.add("Karel", "Novak", "kn@gmail.com")
	_, err = svc.ChangeOwner(ctx, team.ID, u2.ID, u3.Email)
	assert.True(t, domain.IsValidation(err))
}
