package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sportteammanager/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(eventRepo domain.EventRepository, userRepo domain.UserRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, startsAt time.Time, capacity int, place string, creatorID int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	place = strings.TrimSpace(place)
	if place == "" {
		return nil, domain.NewValidation("place is required")
	}
	if capacity <= 0 {
		return nil, domain.NewValidation("capacity must be positive")
	}

	creator, err := s.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	event := domain.NewEvent(startsAt, capacity, place, creator)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.GetByID(ctx, eventID)
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, callerID int64, startsAt *time.Time, capacity *int, place *string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy.ID != callerID {
		return nil, domain.ErrForbidden
	}
	if startsAt != nil {
		event.StartsAt = *startsAt
	}
	if capacity != nil {
		if *capacity <= 0 {
			return nil, domain.NewValidation("capacity must be positive")
		}
		event.Capacity = *capacity
	}
	if place != nil {
		p := strings.TrimSpace(*place)
		if p == "" {
			return nil, domain.NewValidation("place is required")
		}
		event.Place = p
	}
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	return event, nil
}

func (s *eventService) CancelEvent(ctx context.Context, eventID, callerID int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy.ID != callerID {
		return nil, domain.ErrForbidden
	}
	event.Cancel()
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	return event, nil
}

func (s *eventService) PostMessage(ctx context.Context, eventID, authorID int64, text string) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidation("message text is required")
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	msg := event.PostMessage(text, author, time.Now())
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	return msg, nil
}
