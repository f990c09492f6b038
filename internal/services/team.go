package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sportteammanager/internal/domain"
)

type teamService struct {
	teamRepo       domain.TeamRepository
	userRepo       domain.UserRepository
	contextTimeout time.Duration
}

// NewTeamService creates a TeamService with the given repositories.
func NewTeamService(teamRepo domain.TeamRepository, userRepo domain.UserRepository, timeout time.Duration) domain.TeamService {
	return &teamService{
		teamRepo:       teamRepo,
		userRepo:       userRepo,
		contextTimeout: timeout,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, name, sport string, ownerID int64) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	sport = strings.TrimSpace(sport)
	if name == "" {
		return nil, domain.NewValidation("team name is required")
	}
	if sport == "" {
		return nil, domain.NewValidation("sport is required")
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	team := domain.NewTeam(name, sport, owner)
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetTeam(ctx context.Context, teamID int64) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.teamRepo.GetByID(ctx, teamID)
}

func (s *teamService) DeleteTeam(ctx context.Context, teamID, callerID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team.Owner.ID != callerID {
		return domain.ErrForbidden
	}
	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

func (s *teamService) RenameTeam(ctx context.Context, teamID, callerID int64, name string) (*domain.Team, error) {
	return s.update(ctx, teamID, callerID, func(team *domain.Team) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return domain.NewValidation("team name is required")
		}
		team.Rename(name)
		return nil
	})
}

func (s *teamService) ChangeSport(ctx context.Context, teamID, callerID int64, sport string) (*domain.Team, error) {
	return s.update(ctx, teamID, callerID, func(team *domain.Team) error {
		sport = strings.TrimSpace(sport)
		if sport == "" {
			return domain.NewValidation("sport is required")
		}
		team.ChangeSport(sport)
		return nil
	})
}

func (s *teamService) ChangeOwner(ctx context.Context, teamID, callerID int64, newOwnerEmail string) (*domain.Team, error) {
	return s.update(ctx, teamID, callerID, func(team *domain.Team) error {
		newOwner, err := s.userRepo.GetByEmail(ctx, newOwnerEmail)
		if err != nil {
			return err
		}
		return team.ChangeOwner(newOwner)
	})
}

func (s *teamService) CreateSubgroup(ctx context.Context, teamID, callerID int64, name string) (*domain.Team, error) {
	return s.update(ctx, teamID, callerID, func(team *domain.Team) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return domain.NewValidation("subgroup name is required")
		}
		_, err := team.CreateSubgroup(name)
		return err
	})
}

func (s *teamService) RenameSubgroup(ctx context.Context, teamID, callerID int64, oldName, newName string) (*domain.Team, error) {
	return s.update(ctx, teamID, callerID, func(team *domain.Team) error {
		newName = strings.TrimSpace(newName)
		if newName == "" {
			return domain.NewValidation("subgroup name is required")
		}
		_, err := team.RenameSubgroup(oldName, newName)
		return err
	})
}

func (s *teamService) DeleteSubgroup(ctx context.Context, teamID, callerID int64, name string) (*domain.Team, error) {
	return s.update(ctx, teamID, callerID, func(team *domain.Team) error {
		return team.DeleteSubgroup(name)
	})
}

func (s *teamService) AddMember(ctx context.Context, teamID, callerID int64, email string) (*domain.Team, error) {
	return s.update(ctx, teamID, callerID, func(team *domain.Team) error {
		user, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		return team.AddMember(user)
	})
}

func (s *teamService) RemoveMember(ctx context.Context, teamID, callerID int64, email string) (*domain.Team, error) {
	return s.update(ctx, teamID, callerID, func(team *domain.Team) error {
		user, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if team.Owner.Equal(user) {
			return domain.NewValidation("owner cannot be removed from the team")
		}
		return team.RemoveMember(user)
	})
}

func (s *teamService) AddMemberToSubgroup(ctx context.Context, teamID, callerID int64, subgroup, email string) (*domain.Team, error) {
	return s.update(ctx, teamID, callerID, func(team *domain.Team) error {
		user, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		return team.AddMemberToSubgroup(subgroup, user)
	})
}

func (s *teamService) RemoveMemberFromSubgroup(ctx context.Context, teamID, callerID int64, subgroup, email string) (*domain.Team, error) {
	return s.update(ctx, teamID, callerID, func(team *domain.Team) error {
		user, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		return team.RemoveMemberFromSubgroup(subgroup, user)
	})
}

// update loads the team, checks the caller is the owner, applies mutate, and
// persists the snapshot. The load-mutate-save sequence is not serialized
// here; the repository's transaction plus constraints is the second line of
// defense against concurrent writers.
func (s *teamService) update(ctx context.Context, teamID, callerID int64, mutate func(*domain.Team) error) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.Owner.ID != callerID {
		return nil, domain.ErrForbidden
	}
	if err := mutate(team); err != nil {
		return nil, err
	}
	if err := s.teamRepo.Save(ctx, team); err != nil {
		return nil, fmt.Errorf("save team: %w", err)
	}
	return team, nil
}
