package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func user(id int64, name, surname, email string) *RegisteredUser {
	u := NewRegisteredUser(name, surname, email, RoleUser)
	u.ID = id
	return u
}

func TestSubgroup_AddRemoveContains(t *testing.T) {
	sg := NewSubgroup("Players", 1)
	u1 := user(1, "Ivan", "Stastny", "is@gmail.com")
	u2 := user(2, "Pavel", "Smutny", "ps@gmail.com")

	require.NoError(t, sg.AddMember(u1))
	assert.True(t, sg.Contains(u1))
	assert.False(t, sg.Contains(u2))

	err := sg.AddMember(u1)
	var ae *AlreadyExistsError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "member", ae.Entity)

	require.NoError(t, sg.AddMember(u2))
	require.NoError(t, sg.RemoveMember(u1))
	assert.False(t, sg.Contains(u1))

	err = sg.RemoveMember(u1)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "member", nf.Entity)
}

func TestSubgroup_Members_returns_copy(t *testing.T) {
	sg := NewSubgroup("Players", 1)
	u1 := user(1, "Ivan", "Stastny", "is@gmail.com")
	require.NoError(t, sg.AddMember(u1))

	members := sg.Members()
	members[0] = user(99, "X", "Y", "xy@gmail.com")
	assert.True(t, sg.Contains(u1), "mutating the returned slice must not touch the subgroup")
}

func TestNewTeam_seeds_reserved_subgroups(t *testing.T) {
	owner := user(1, "Ivan", "Stastny", "is@gmail.com")
	team := NewTeam("B team", "sipky", owner)

	sgs := team.Subgroups()
	require.Len(t, sgs, 2)
	assert.Equal(t, SubgroupAllUsers, sgs[0].Name)
	assert.Equal(t, SubgroupCoaches, sgs[1].Name)
	assert.True(t, sgs[0].Contains(owner))
	assert.True(t, sgs[1].Contains(owner))
	assert.Equal(t, owner, team.Owner)
}

func TestTeam_CreateSubgroup(t *testing.T) {
	team := NewTeam("B team", "sipky", user(1, "Ivan", "Stastny", "is@gmail.com"))

	sg, err := team.CreateSubgroup("Players")
	require.NoError(t, err)
	assert.Equal(t, "Players", sg.Name)
	require.Len(t, team.Subgroups(), 3)

	_, err = team.CreateSubgroup("Players")
	var ae *AlreadyExistsError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "subgroup", ae.Entity)

	// Comparison is case-sensitive; a different casing is a different name.
	_, err = team.CreateSubgroup("players")
	assert.NoError(t, err)
}

func TestTeam_RenameSubgroup(t *testing.T) {
	team := NewTeam("B team", "sipky", user(1, "Ivan", "Stastny", "is@gmail.com"))
	_, err := team.CreateSubgroup("Players")
	require.NoError(t, err)
	_, err = team.CreateSubgroup("Beginners")
	require.NoError(t, err)

	sg, err := team.RenameSubgroup("Players", "Veterans")
	require.NoError(t, err)
	assert.Equal(t, "Veterans", sg.Name)
	assert.False(t, team.HasSubgroup("Players"))

	_, err = team.RenameSubgroup("Nope", "Whatever")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "subgroup", nf.Entity)

	_, err = team.RenameSubgroup("Veterans", "Beginners")
	var ae *AlreadyExistsError
	require.ErrorAs(t, err, &ae)

	// Renaming to the same name is a no-op, not a conflict.
	_, err = team.RenameSubgroup("Veterans", "Veterans")
	assert.NoError(t, err)
}

func TestTeam_DeleteSubgroup(t *testing.T) {
	team := NewTeam("B team", "sipky", user(1, "Ivan", "Stastny", "is@gmail.com"))
	_, err := team.CreateSubgroup("Players")
	require.NoError(t, err)

	require.NoError(t, team.DeleteSubgroup("Players"))
	assert.False(t, team.HasSubgroup("Players"))

	err = team.DeleteSubgroup("Players")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	var ve *ValidationError
	err = team.DeleteSubgroup(SubgroupAllUsers)
	require.ErrorAs(t, err, &ve)
	err = team.DeleteSubgroup(SubgroupCoaches)
	require.ErrorAs(t, err, &ve)
}

func TestTeam_AddMember(t *testing.T) {
	owner := user(1, "Ivan", "Stastny", "is@gmail.com")
	team := NewTeam("B team", "sipky", owner)
	u2 := user(2, "Pavel", "Smutny", "ps@gmail.com")

	require.NoError(t, team.AddMember(u2))
	assert.True(t, team.IsMember(u2))

	err := team.AddMember(u2)
	var ae *AlreadyExistsError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "user", ae.Entity)

	// Adding to the team does not touch other subgroups.
	coaches, err := team.Subgroup(SubgroupCoaches)
	require.NoError(t, err)
	assert.False(t, coaches.Contains(u2))
}

func TestTeam_RemoveMember_cascades(t *testing.T) {
	owner := user(1, "Ivan", "Stastny", "is@gmail.com")
	team := NewTeam("B team", "sipky", owner)
	u2 := user(2, "Pavel", "Smutny", "ps@gmail.com")

	require.NoError(t, team.AddMember(u2))
	require.NoError(t, team.AddMemberToSubgroup(SubgroupCoaches, u2))
	_, err := team.CreateSubgroup("Players")
	require.NoError(t, err)
	require.NoError(t, team.AddMemberToSubgroup("Players", u2))

	require.NoError(t, team.RemoveMember(u2))
	for _, sg := range team.Subgroups() {
		assert.False(t, sg.Contains(u2), "subgroup %q should not contain the removed user", sg.Name)
	}

	err = team.RemoveMember(u2)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "user", nf.Entity)
}

func TestTeam_SubgroupMembership(t *testing.T) {
	owner := user(1, "Ivan", "Stastny", "is@gmail.com")
	team := NewTeam("B team", "sipky", owner)
	u2 := user(2, "Pavel", "Smutny", "ps@gmail.com")

	err := team.AddMemberToSubgroup("Nope", u2)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "subgroup", nf.Entity)

	require.NoError(t, team.AddMemberToSubgroup(SubgroupCoaches, u2))
	err = team.AddMemberToSubgroup(SubgroupCoaches, u2)
	var ae *AlreadyExistsError
	require.ErrorAs(t, err, &ae)

	require.NoError(t, team.RemoveMemberFromSubgroup(SubgroupCoaches, u2))
	err = team.RemoveMemberFromSubgroup(SubgroupCoaches, u2)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "member", nf.Entity)
}

func TestTeam_ChangeOwner(t *testing.T) {
	u1 := user(1, "Ivan", "Stastny", "is@gmail.com")
	u2 := user(2, "Pavel", "Smutny", "ps@gmail.com")

	team := NewTeam("B team", "sipky", u1)
	require.NoError(t, team.AddMember(u2))
	_, err := team.CreateSubgroup("Empty")
	require.NoError(t, err)

	require.NoError(t, team.ChangeOwner(u2))
	assert.Equal(t, u2, team.Owner)

	coaches, err := team.Subgroup(SubgroupCoaches)
	require.NoError(t, err)
	assert.True(t, coaches.Contains(u1))
	assert.True(t, coaches.Contains(u2), "new owner is silently promoted into Coaches")
	assert.Equal(t, 2, coaches.Size())

	all, err := team.Subgroup(SubgroupAllUsers)
	require.NoError(t, err)
	assert.True(t, all.Contains(u2))

	// Changing again to the same user must not duplicate the Coaches entry.
	require.NoError(t, team.ChangeOwner(u2))
	assert.Equal(t, 2, coaches.Size())
}

func TestTeam_ChangeOwner_requires_membership(t *testing.T) {
	u1 := user(1, "Ivan", "Stastny", "is@gmail.com")
	outsider := user(3, "Karel", "Novak", "kn@gmail.com")

	team := NewTeam("B team", "sipky", u1)
	err := team.ChangeOwner(outsider)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, u1, team.Owner, "owner must be unchanged after a rejected transfer")
}

func TestRegisteredUser_Equal_ignores_credential(t *testing.T) {
	a := user(1, "Ivan", "Stastny", "is@gmail.com")
	b := user(1, "Ivan", "Stastny", "is@gmail.com")
	a.PasswordHash = "aaa"
	b.PasswordHash = "bbb"
	assert.True(t, a.Equal(b))

	c := user(1, "Ivan", "Stastny", "other@gmail.com")
	assert.False(t, a.Equal(c))
}

func TestSameRecipient_never_confuses_user_and_guest(t *testing.T) {
	u := user(7, "Ivan", "Stastny", "is@gmail.com")
	g := NewGuest("Ivan")
	g.ID = 7
	assert.False(t, SameRecipient(u, g))
	assert.False(t, SameRecipient(g, u))
	assert.True(t, SameRecipient(g, g))
}

func TestTeam_MarshalJSON_includes_subgroups_and_members(t *testing.T) {
	owner := user(1, "Petr", "Stastny", "ps@gmail.com")
	team := NewTeam("B team", "sipky", owner)
	guest := NewGuest("Karel")
	guest.ID = 3
	guest.Link = "secret-token"
	require.NoError(t, team.AddMember(guest))

	data, err := json.Marshal(team)
	require.NoError(t, err)

	var decoded struct {
		Name      string `json:"name"`
		Subgroups []struct {
			Name    string            `json:"name"`
			Members []json.RawMessage `json:"members"`
		} `json:"subgroups"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Subgroups, 2)
	assert.Equal(t, SubgroupAllUsers, decoded.Subgroups[0].Name)
	assert.Equal(t, SubgroupCoaches, decoded.Subgroups[1].Name)
	require.Len(t, decoded.Subgroups[0].Members, 2, "owner and guest belong to All Users")
	assert.Contains(t, string(decoded.Subgroups[0].Members[0]), "ps@gmail.com")

	assert.NotContains(t, string(data), "secret-token", "guest link tokens stay out of responses")
}
