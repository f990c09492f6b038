package services

import (
	"context"
	"sync"

	"sportteammanager/internal/domain"
)

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID   map[int64]*domain.RegisteredUser
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[int64]*domain.RegisteredUser), nextID: 1}
}

func (f *fakeUserRepo) add(name, surname, email string) *domain.RegisteredUser {
	u := domain.NewRegisteredUser(name, surname, email, domain.RoleUser)
	u.ID = f.nextID
	f.nextID++
	f.byID[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.RegisteredUser) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.NewAlreadyExists("user")
		}
	}
	u.ID = f.nextID
	f.nextID++
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.RegisteredUser, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.NewNotFound("user")
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.RegisteredUser, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.NewNotFound("user")
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.RegisteredUser) error {
	if _, ok := f.byID[u.ID]; !ok {
		return domain.NewNotFound("user")
	}
	f.byID[u.ID] = u
	return nil
}

// fakeTeamRepo is an in-memory TeamRepository for tests.
type fakeTeamRepo struct {
	byID    map[int64]*domain.Team
	nextID  int64
	saveErr error
	saves   int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{byID: make(map[int64]*domain.Team), nextID: 1}
}

func (f *fakeTeamRepo) Create(ctx context.Context, t *domain.Team) error {
	t.ID = f.nextID
	f.nextID++
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	if t, ok := f.byID[id]; ok {
		return t, nil
	}
	return nil, domain.NewNotFound("team")
}

func (f *fakeTeamRepo) Save(ctx context.Context, t *domain.Team) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTeamRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.NewNotFound("team")
	}
	delete(f.byID, id)
	return nil
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[int64]*domain.Event
	nextID int64
	saves  int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[int64]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	e.ID = f.nextID
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.NewNotFound("event")
}

func (f *fakeEventRepo) Save(ctx context.Context, e *domain.Event) error {
	f.saves++
	f.byID[e.ID] = e
	return nil
}

// fakeGuestRepo is an in-memory GuestRepository for tests.
type fakeGuestRepo struct {
	byID   map[int64]*domain.Guest
	nextID int64
}

func newFakeGuestRepo() *fakeGuestRepo {
	return &fakeGuestRepo{byID: make(map[int64]*domain.Guest), nextID: 1}
}

func (f *fakeGuestRepo) Create(ctx context.Context, g *domain.Guest) error {
	g.ID = f.nextID
	f.nextID++
	f.byID[g.ID] = g
	return nil
}

func (f *fakeGuestRepo) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	if g, ok := f.byID[id]; ok {
		return g, nil
	}
	return nil, domain.NewNotFound("guest")
}

func (f *fakeGuestRepo) UpdateLink(ctx context.Context, id int64, link string) error {
	g, ok := f.byID[id]
	if !ok {
		return domain.NewNotFound("guest")
	}
	g.Link = link
	return nil
}

// fakeEmailService records sent emails for assertions.
type fakeEmailService struct {
	mu          sync.Mutex
	invitations []*domain.InvitationEmailData
	guestLinks  []*domain.GuestLinkEmailData
}

func (f *fakeEmailService) SendInvitation(ctx context.Context, data *domain.InvitationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invitations = append(f.invitations, data)
	return nil
}

func (f *fakeEmailService) SendGuestLink(ctx context.Context, data *domain.GuestLinkEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.guestLinks = append(f.guestLinks, data)
	return nil
}
