package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"sportteammanager/internal/domain"
)

type invitationService struct {
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	guestRepo      domain.GuestRepository
	codec          domain.LinkCodec
	emailService   domain.EmailService
	linkBaseURL    string
	contextTimeout time.Duration
}

// NewInvitationService creates an InvitationService. emailService may be nil;
// invitations are then created without notification emails. linkBaseURL is
// prepended to minted guest tokens to form the shareable URL.
func NewInvitationService(
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	guestRepo domain.GuestRepository,
	codec domain.LinkCodec,
	emailService domain.EmailService,
	linkBaseURL string,
	timeout time.Duration,
) domain.InvitationService {
	return &invitationService{
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		guestRepo:      guestRepo,
		codec:          codec,
		emailService:   emailService,
		linkBaseURL:    strings.TrimSuffix(linkBaseURL, "/"),
		contextTimeout: timeout,
	}
}

func (s *invitationService) Invite(ctx context.Context, eventID, callerID int64, email string) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy.ID != callerID {
		return nil, domain.ErrForbidden
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	inv, err := event.CreateInvitation(user, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}

	s.notifyUser(ctx, event, user)
	return inv, nil
}

func (s *invitationService) InviteAll(ctx context.Context, eventID, callerID int64, emails []string) ([]*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy.ID != callerID {
		return nil, domain.ErrForbidden
	}

	// Resolve every email before touching the ledger so an unknown address
	// cannot leave a half-created batch behind.
	users := make([]domain.Recipient, 0, len(emails))
	for _, email := range emails {
		user, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	invs, err := event.CreateInvitations(users, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}

	for _, r := range users {
		if user, ok := r.(*domain.RegisteredUser); ok {
			s.notifyUser(ctx, event, user)
		}
	}
	return invs, nil
}

func (s *invitationService) ChangeStatus(ctx context.Context, eventID int64, email string, status domain.InvitationStatus) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	inv, err := event.ChangeInvitationStatus(user, status, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	return inv, nil
}

func (s *invitationService) Withdraw(ctx context.Context, eventID, callerID int64, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return false, err
	}
	if event.CreatedBy.ID != callerID {
		return false, domain.ErrForbidden
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}

	removed := event.DeleteInvitation(user)
	if removed {
		if err := s.eventRepo.Save(ctx, event); err != nil {
			return false, fmt.Errorf("save event: %w", err)
		}
	}
	return removed, nil
}

func (s *invitationService) ListByStatus(ctx context.Context, eventID int64, status domain.InvitationStatus, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}

	sorted := domain.FilterAndSortByStatus(event.Invitations(), status)
	total := len(sorted)

	offset := params.Offset()
	if offset >= total {
		return []*domain.Invitation{}, total, nil
	}
	end := offset + params.PageSize
	if params.PageSize <= 0 || end > total {
		end = total
	}
	return sorted[offset:end], total, nil
}

func (s *invitationService) CreateGuestInvitation(ctx context.Context, eventID int64, displayName, email string) (*domain.Guest, *domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, nil, domain.NewValidation("guest name is required")
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	// The guest needs a persistent identity before a token can be minted for
	// it, so creation happens in two repository steps.
	guest := domain.NewGuest(displayName)
	if err := s.guestRepo.Create(ctx, guest); err != nil {
		return nil, nil, fmt.Errorf("create guest: %w", err)
	}
	token, err := s.codec.Encode(guest.ID, event.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("encode guest link: %w", err)
	}
	guest.Link = token
	if err := s.guestRepo.UpdateLink(ctx, guest.ID, token); err != nil {
		return nil, nil, fmt.Errorf("store guest link: %w", err)
	}

	inv, err := event.CreateInvitation(guest, time.Now())
	if err != nil {
		return nil, nil, err
	}
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, nil, fmt.Errorf("save event: %w", err)
	}

	if email != "" && s.emailService != nil {
		data := &domain.GuestLinkEmailData{
			Email:      email,
			GuestName:  guest.Name,
			EventPlace: event.Place,
			EventDate:  event.StartsAt.Format("2 Jan 2006 15:04"),
			Link:       s.GuestURL(token),
		}
		if err := s.emailService.SendGuestLink(ctx, data); err != nil {
			log.Printf("[INVITATION] guest link email to %s failed: %v", email, err)
		}
	}
	return guest, inv, nil
}

func (s *invitationService) ResolveGuestLink(ctx context.Context, token string) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, guest, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return event.FindGuestInvitation(guest.ID)
}

func (s *invitationService) ChangeGuestStatus(ctx context.Context, token string, status domain.InvitationStatus) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, guest, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	inv, err := event.ChangeInvitationStatus(guest, status, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	return inv, nil
}

// GuestURL renders the shareable URL for a minted token.
func (s *invitationService) GuestURL(token string) string {
	if s.linkBaseURL == "" {
		return token
	}
	return s.linkBaseURL + "/" + token
}

// resolve decodes a guest token and loads the event and guest it points at.
// The distinct error kinds are for logs and tests; the HTTP layer collapses
// them all into one generic response.
func (s *invitationService) resolve(ctx context.Context, token string) (*domain.Event, *domain.Guest, error) {
	guestID, eventID, err := s.codec.Decode(token)
	if err != nil {
		return nil, nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil, domain.NewNotFound("event")
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	guest, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil, domain.NewNotFound("guest")
		}
		return nil, nil, fmt.Errorf("get guest: %w", err)
	}
	return event, guest, nil
}

func (s *invitationService) notifyUser(ctx context.Context, event *domain.Event, user *domain.RegisteredUser) {
	if s.emailService == nil {
		return
	}
	data := &domain.InvitationEmailData{
		Email:       user.Email,
		Recipient:   user.DisplayName(),
		InviterName: event.CreatedBy.DisplayName(),
		EventPlace:  event.Place,
		EventDate:   event.StartsAt.Format("2 Jan 2006 15:04"),
	}
	// Notification failure must not fail the invitation itself.
	if err := s.emailService.SendInvitation(ctx, data); err != nil {
		log.Printf("[INVITATION] invitation email to %s failed: %v", user.Email, err)
	}
}
