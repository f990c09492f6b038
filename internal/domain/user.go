package domain

import "context"

// Role is the application role of a registered user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// RegisteredUser represents a user with an account.
// swagger:model RegisteredUser
type RegisteredUser struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	PasswordHash string `json:"-"`
}

// NewRegisteredUser returns a RegisteredUser with the given identity fields.
// ID is set by the repository on create.
func NewRegisteredUser(name, surname, email string, role Role) *RegisteredUser {
	return &RegisteredUser{
		Name:    name,
		Surname: surname,
		Email:   email,
		Role:    role,
	}
}

// Equal compares two users by identity fields. The credential hash is
// deliberately excluded.
func (u *RegisteredUser) Equal(o *RegisteredUser) bool {
	if u == nil || o == nil {
		return u == o
	}
	return u.ID == o.ID &&
		u.Name == o.Name &&
		u.Surname == o.Surname &&
		u.Email == o.Email &&
		u.Role == o.Role
}

// RecipientID implements Recipient.
func (u *RegisteredUser) RecipientID() int64 { return u.ID }

// DisplayName implements Recipient.
func (u *RegisteredUser) DisplayName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}

// Recipient is the capability shared by registered users and guests: anything
// with an identity and a display name that can hold an invitation or appear in
// a subgroup.
type Recipient interface {
	RecipientID() int64
	DisplayName() string
}

// SameRecipient reports whether a and b are the same recipient. Registered
// users are compared by identity fields, guests by ID. A registered user and
// a guest are never the same recipient, even with equal IDs.
func SameRecipient(a, b Recipient) bool {
	switch x := a.(type) {
	case *RegisteredUser:
		y, ok := b.(*RegisteredUser)
		return ok && x.Equal(y)
	case *Guest:
		y, ok := b.(*Guest)
		return ok && x.ID == y.ID
	default:
		return false
	}
}

// PasswordHasher handles password hashing and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (hash string, err error)
	Compare(hash, password string) error
}

// TokenIssuer issues bearer tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, email string, role Role) (string, error)
}

// TokenVerifier verifies a bearer token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID int64, err error)
}

// UserRepository is the user directory: lookup and storage of registered users.
type UserRepository interface {
	Create(ctx context.Context, user *RegisteredUser) error
	GetByEmail(ctx context.Context, email string) (*RegisteredUser, error)
	GetByID(ctx context.Context, id int64) (*RegisteredUser, error)
	Update(ctx context.Context, user *RegisteredUser) error
}

// UserService defines registration, login and profile lookups.
type UserService interface {
	Register(ctx context.Context, name, surname, email, password string) (*RegisteredUser, error)
	Login(ctx context.Context, email, password string) (token string, user *RegisteredUser, err error)
	GetByEmail(ctx context.Context, email string) (*RegisteredUser, error)
	GetByID(ctx context.Context, id int64) (*RegisteredUser, error)
}
