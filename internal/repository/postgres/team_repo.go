package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sportteammanager/internal/domain"
)

type teamRepository struct {
	DB *sql.DB
}

func NewTeamRepository(db *sql.DB) domain.TeamRepository {
	return &teamRepository{DB: db}
}

func (r *teamRepository) Create(ctx context.Context, t *domain.Team) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO teams (name, sport, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, t.Name, t.Sport, t.Owner.ID).Scan(&t.ID); err != nil {
		return err
	}
	if err := r.insertSubgroups(ctx, tx, t); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *teamRepository) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	query := `
		SELECT t.id, t.name, t.sport,
		       u.id, u.name, u.surname, u.email, u.role, u.password_hash
		FROM teams t
		JOIN users u ON u.id = t.owner_id
		WHERE t.id = $1
	`
	t := &domain.Team{Owner: &domain.RegisteredUser{}}
	o := t.Owner
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Sport,
		&o.ID, &o.Name, &o.Surname, &o.Email, &o.Role, &o.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("team")
		}
		return nil, err
	}

	subgroups, err := r.loadSubgroups(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.SetSubgroups(subgroups)
	return t, nil
}

// Save persists the full aggregate snapshot. The subgroup rows are replaced
// wholesale inside one transaction; subgroup_members cascades on the delete.
func (r *teamRepository) Save(ctx context.Context, t *domain.Team) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE teams SET name = $1, sport = $2, owner_id = $3 WHERE id = $4`
	result, err := tx.ExecContext(ctx, query, t.Name, t.Sport, t.Owner.ID, t.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.NewNotFound("team")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM subgroups WHERE team_id = $1`, t.ID); err != nil {
		return err
	}
	if err := r.insertSubgroups(ctx, tx, t); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *teamRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.NewNotFound("team")
	}
	return nil
}

func (r *teamRepository) insertSubgroups(ctx context.Context, tx *sql.Tx, t *domain.Team) error {
	sgQuery := `
		INSERT INTO subgroups (team_id, name, position)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	memberQuery := `
		INSERT INTO subgroup_members (subgroup_id, user_id, guest_id, position)
		VALUES ($1, $2, $3, $4)
	`
	for i, sg := range t.Subgroups() {
		if err := tx.QueryRowContext(ctx, sgQuery, t.ID, sg.Name, i).Scan(&sg.ID); err != nil {
			return err
		}
		sg.TeamID = t.ID
		for j, m := range sg.Members() {
			userID, guestID := recipientColumns(m)
			if _, err := tx.ExecContext(ctx, memberQuery, sg.ID, userID, guestID, j); err != nil {
				return fmt.Errorf("insert subgroup member: %w", err)
			}
		}
	}
	return nil
}

func (r *teamRepository) loadSubgroups(ctx context.Context, teamID int64) ([]*domain.Subgroup, error) {
	query := `
		SELECT id, name
		FROM subgroups
		WHERE team_id = $1
		ORDER BY position
	`
	rows, err := r.DB.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subgroups := make([]*domain.Subgroup, 0)
	byID := make(map[int64]*domain.Subgroup)
	for rows.Next() {
		sg := &domain.Subgroup{TeamID: teamID}
		if err := rows.Scan(&sg.ID, &sg.Name); err != nil {
			return nil, err
		}
		subgroups = append(subgroups, sg)
		byID[sg.ID] = sg
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	memberQuery := `
		SELECT m.subgroup_id,
		       u.id, u.name, u.surname, u.email, u.role, u.password_hash,
		       g.id, g.name, g.link
		FROM subgroup_members m
		JOIN subgroups s ON s.id = m.subgroup_id
		LEFT JOIN users u ON u.id = m.user_id
		LEFT JOIN guests g ON g.id = m.guest_id
		WHERE s.team_id = $1
		ORDER BY m.subgroup_id, m.position
	`
	memberRows, err := r.DB.QueryContext(ctx, memberQuery, teamID)
	if err != nil {
		return nil, err
	}
	defer memberRows.Close()

	members := make(map[int64][]domain.Recipient)
	for memberRows.Next() {
		var subgroupID int64
		var n nullableRecipient
		dest := append([]any{&subgroupID}, n.fields()...)
		if err := memberRows.Scan(dest...); err != nil {
			return nil, err
		}
		if rec := n.recipient(); rec != nil {
			members[subgroupID] = append(members[subgroupID], rec)
		}
	}
	if err := memberRows.Err(); err != nil {
		return nil, err
	}

	for id, sg := range byID {
		sg.SetMembers(members[id])
	}
	return subgroups, nil
}
