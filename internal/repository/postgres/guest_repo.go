package postgres

import (
	"context"
	"database/sql"
	"errors"

	"sportteammanager/internal/domain"
)

type guestRepository struct {
	DB *sql.DB
}

func NewGuestRepository(db *sql.DB) domain.GuestRepository {
	return &guestRepository{DB: db}
}

func (r *guestRepository) Create(ctx context.Context, g *domain.Guest) error {
	query := `
		INSERT INTO guests (name, link)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, g.Name, g.Link).Scan(&g.ID)
}

func (r *guestRepository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	query := `
		SELECT id, name, link
		FROM guests
		WHERE id = $1
	`
	g := &domain.Guest{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Name, &g.Link)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("guest")
		}
		return nil, err
	}
	return g, nil
}

func (r *guestRepository) UpdateLink(ctx context.Context, id int64, link string) error {
	query := `UPDATE guests SET link = $1 WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, link, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.NewNotFound("guest")
	}
	return nil
}
