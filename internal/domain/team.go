package domain

import (
	"context"
	"encoding/json"
)

// Reserved subgroup names. Every team carries both; Team operations recognize
// them by exact, case-sensitive name comparison.
const (
	SubgroupAllUsers = "All Users"
	SubgroupCoaches  = "Coaches"
)

// Subgroup is a named set of members inside one team. The team reference is
// informational only; ownership of the member list stays with the subgroup.
// swagger:model Subgroup
type Subgroup struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	TeamID  int64  `json:"team_id"`
	members []Recipient
}

// NewSubgroup returns an empty subgroup belonging to the given team.
func NewSubgroup(name string, teamID int64) *Subgroup {
	return &Subgroup{Name: name, TeamID: teamID}
}

// AddMember appends a member. A member may appear at most once; adding a
// present member fails with AlreadyExistsError("member").
func (s *Subgroup) AddMember(r Recipient) error {
	if s.Contains(r) {
		return NewAlreadyExists("member")
	}
	s.members = append(s.members, r)
	return nil
}

// RemoveMember removes a member. Removing an absent member fails with
// NotFoundError("member"), never a silent no-op.
func (s *Subgroup) RemoveMember(r Recipient) error {
	for i, m := range s.members {
		if SameRecipient(m, r) {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return nil
		}
	}
	return NewNotFound("member")
}

// Contains reports whether r is a member of the subgroup.
func (s *Subgroup) Contains(r Recipient) bool {
	for _, m := range s.members {
		if SameRecipient(m, r) {
			return true
		}
	}
	return false
}

// Members returns a copy of the member list in insertion order. Mutations must
// go through AddMember/RemoveMember.
func (s *Subgroup) Members() []Recipient {
	out := make([]Recipient, len(s.members))
	copy(out, s.members)
	return out
}

// MarshalJSON renders the subgroup including its member list, which is
// unexported so mutation goes through AddMember/RemoveMember.
func (s *Subgroup) MarshalJSON() ([]byte, error) {
	members := s.members
	if members == nil {
		members = []Recipient{}
	}
	return json.Marshal(struct {
		ID      int64       `json:"id"`
		Name    string      `json:"name"`
		TeamID  int64       `json:"team_id"`
		Members []Recipient `json:"members"`
	}{s.ID, s.Name, s.TeamID, members})
}

// SetMembers replaces the member list. Intended for repositories rebuilding a
// subgroup from storage.
func (s *Subgroup) SetMembers(members []Recipient) {
	s.members = members
}

// Size returns the number of members.
func (s *Subgroup) Size() int { return len(s.members) }

// Team is the membership aggregate: a named team with an owner and an ordered
// list of subgroups. All mutation goes through Team methods so the reserved
// subgroup and owner invariants hold. Not safe for concurrent use; callers
// serialize access per team.
// swagger:model Team
type Team struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Sport     string          `json:"sport"`
	Owner     *RegisteredUser `json:"owner"`
	subgroups []*Subgroup
}

// NewTeam returns a team seeded with the two reserved subgroups, with the
// owner present in both.
func NewTeam(name, sport string, owner *RegisteredUser) *Team {
	t := &Team{Name: name, Sport: sport, Owner: owner}
	all := NewSubgroup(SubgroupAllUsers, t.ID)
	coaches := NewSubgroup(SubgroupCoaches, t.ID)
	_ = all.AddMember(owner)
	_ = coaches.AddMember(owner)
	t.subgroups = []*Subgroup{all, coaches}
	return t
}

// Subgroups returns a copy of the subgroup list in creation order.
func (t *Team) Subgroups() []*Subgroup {
	out := make([]*Subgroup, len(t.subgroups))
	copy(out, t.subgroups)
	return out
}

// MarshalJSON renders the aggregate with its subgroups and their members.
func (t *Team) MarshalJSON() ([]byte, error) {
	subgroups := t.subgroups
	if subgroups == nil {
		subgroups = []*Subgroup{}
	}
	return json.Marshal(struct {
		ID        int64           `json:"id"`
		Name      string          `json:"name"`
		Sport     string          `json:"sport"`
		Owner     *RegisteredUser `json:"owner"`
		Subgroups []*Subgroup     `json:"subgroups"`
	}{t.ID, t.Name, t.Sport, t.Owner, subgroups})
}

// SetSubgroups replaces the subgroup list. Intended for repositories
// rebuilding a team from storage.
func (t *Team) SetSubgroups(subgroups []*Subgroup) {
	t.subgroups = subgroups
}

// Subgroup returns the subgroup with the given name, or
// NotFoundError("subgroup").
func (t *Team) Subgroup(name string) (*Subgroup, error) {
	for _, sg := range t.subgroups {
		if sg.Name == name {
			return sg, nil
		}
	}
	return nil, NewNotFound("subgroup")
}

// HasSubgroup reports whether a subgroup with the given name exists.
func (t *Team) HasSubgroup(name string) bool {
	_, err := t.Subgroup(name)
	return err == nil
}

// CreateSubgroup adds an empty subgroup. Names are unique within the team,
// compared case-sensitively.
func (t *Team) CreateSubgroup(name string) (*Subgroup, error) {
	if t.HasSubgroup(name) {
		return nil, NewAlreadyExists("subgroup")
	}
	sg := NewSubgroup(name, t.ID)
	t.subgroups = append(t.subgroups, sg)
	return sg, nil
}

// RenameSubgroup renames oldName to newName. Renaming to a name held by a
// different subgroup fails; renaming a subgroup to its own name is a no-op.
func (t *Team) RenameSubgroup(oldName, newName string) (*Subgroup, error) {
	sg, err := t.Subgroup(oldName)
	if err != nil {
		return nil, err
	}
	if other, err := t.Subgroup(newName); err == nil && other != sg {
		return nil, NewAlreadyExists("subgroup")
	}
	sg.Name = newName
	return sg, nil
}

// DeleteSubgroup removes the subgroup with the given name. The reserved
// subgroups cannot be deleted; they anchor the owner-membership invariant.
func (t *Team) DeleteSubgroup(name string) error {
	if name == SubgroupAllUsers || name == SubgroupCoaches {
		return NewValidation("cannot delete reserved subgroup " + name)
	}
	for i, sg := range t.subgroups {
		if sg.Name == name {
			t.subgroups = append(t.subgroups[:i], t.subgroups[i+1:]...)
			return nil
		}
	}
	return NewNotFound("subgroup")
}

// AddMember adds a recipient to the team, i.e. to "All Users". Membership in
// other subgroups is managed separately.
func (t *Team) AddMember(r Recipient) error {
	all, err := t.Subgroup(SubgroupAllUsers)
	if err != nil {
		return err
	}
	if all.Contains(r) {
		return NewAlreadyExists("user")
	}
	return all.AddMember(r)
}

// RemoveMember removes a recipient from the team. The removal cascades: the
// recipient disappears from every subgroup, not just "All Users".
func (t *Team) RemoveMember(r Recipient) error {
	all, err := t.Subgroup(SubgroupAllUsers)
	if err != nil {
		return err
	}
	if !all.Contains(r) {
		return NewNotFound("user")
	}
	for _, sg := range t.subgroups {
		if sg.Contains(r) {
			if err := sg.RemoveMember(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// IsMember reports whether r is a team member (present in "All Users").
func (t *Team) IsMember(r Recipient) bool {
	all, err := t.Subgroup(SubgroupAllUsers)
	if err != nil {
		return false
	}
	return all.Contains(r)
}

// AddMemberToSubgroup adds r to the named subgroup.
func (t *Team) AddMemberToSubgroup(name string, r Recipient) error {
	sg, err := t.Subgroup(name)
	if err != nil {
		return err
	}
	return sg.AddMember(r)
}

// RemoveMemberFromSubgroup removes r from the named subgroup.
func (t *Team) RemoveMemberFromSubgroup(name string, r Recipient) error {
	sg, err := t.Subgroup(name)
	if err != nil {
		return err
	}
	return sg.RemoveMember(r)
}

// ChangeOwner transfers ownership to newOwner. The new owner must already be
// a team member; if absent from "Coaches" they are promoted there silently.
func (t *Team) ChangeOwner(newOwner *RegisteredUser) error {
	if !t.IsMember(newOwner) {
		return NewValidation("owner must be a team member")
	}
	coaches, err := t.Subgroup(SubgroupCoaches)
	if err != nil {
		return err
	}
	if !coaches.Contains(newOwner) {
		if err := coaches.AddMember(newOwner); err != nil {
			return err
		}
	}
	t.Owner = newOwner
	return nil
}

// Rename sets the team name. Non-empty validation is the caller's concern.
func (t *Team) Rename(name string) { t.Name = name }

// ChangeSport sets the team sport.
func (t *Team) ChangeSport(sport string) { t.Sport = sport }

// TeamRepository defines storage operations for teams. Save persists the full
// aggregate snapshot (team fields, subgroups, memberships).
type TeamRepository interface {
	Create(ctx context.Context, team *Team) error
	GetByID(ctx context.Context, id int64) (*Team, error)
	Save(ctx context.Context, team *Team) error
	Delete(ctx context.Context, id int64) error
}

// TeamService defines the business operations over teams.
type TeamService interface {
	CreateTeam(ctx context.Context, name, sport string, ownerID int64) (*Team, error)
	GetTeam(ctx context.Context, teamID int64) (*Team, error)
	DeleteTeam(ctx context.Context, teamID, callerID int64) error
	RenameTeam(ctx context.Context, teamID, callerID int64, name string) (*Team, error)
	ChangeSport(ctx context.Context, teamID, callerID int64, sport string) (*Team, error)
	ChangeOwner(ctx context.Context, teamID, callerID int64, newOwnerEmail string) (*Team, error)
	CreateSubgroup(ctx context.Context, teamID, callerID int64, name string) (*Team, error)
	RenameSubgroup(ctx context.Context, teamID, callerID int64, oldName, newName string) (*Team, error)
	DeleteSubgroup(ctx context.Context, teamID, callerID int64, name string) (*Team, error)
	AddMember(ctx context.Context, teamID, callerID int64, email string) (*Team, error)
	RemoveMember(ctx context.Context, teamID, callerID int64, email string) (*Team, error)
	AddMemberToSubgroup(ctx context.Context, teamID, callerID int64, subgroup, email string) (*Team, error)
	RemoveMemberFromSubgroup(ctx context.Context, teamID, callerID int64, subgroup, email string) (*Team, error)
}
