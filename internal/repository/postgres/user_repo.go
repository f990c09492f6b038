package postgres

import (
	"context"
	"database/sql"
	"errors"

	"sportteammanager/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.RegisteredUser) error {
	query := `
		INSERT INTO users (name, surname, email, role, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, u.Name, u.Surname, u.Email, u.Role, u.PasswordHash).Scan(&u.ID)
	if isUniqueViolation(err) {
		return domain.NewAlreadyExists("user")
	}
	return err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.RegisteredUser, error) {
	query := `
		SELECT id, name, surname, email, role, password_hash
		FROM users
		WHERE email = $1
	`
	u := &domain.RegisteredUser{}
	err := r.DB.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.Role, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("user")
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.RegisteredUser, error) {
	query := `
		SELECT id, name, surname, email, role, password_hash
		FROM users
		WHERE id = $1
	`
	u := &domain.RegisteredUser{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.Role, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("user")
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.RegisteredUser) error {
	query := `
		UPDATE users
		SET name = $1, surname = $2, email = $3, role = $4, password_hash = $5
		WHERE id = $6
	`
	result, err := r.DB.ExecContext(ctx, query, u.Name, u.Surname, u.Email, u.Role, u.PasswordHash, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewAlreadyExists("user")
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.NewNotFound("user")
	}
	return nil
}
