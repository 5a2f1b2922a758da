package organizers

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aura-events/venues/internal/models"
	"github.com/aura-events/venues/pkg/database"
)

const organizerColumns = `id, email, password_hash, firstname, lastname, phone, created_at, updated_at`

// PostgresRepository handles organizer persistence.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an organizer repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func scanOrganizer(row pgx.Row) (*models.Organizer, error) {
	var o models.Organizer
	err := row.Scan(&o.ID, &o.Email, &o.Password, &o.Firstname, &o.Lastname, &o.Phone, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, database.Translate(err)
	}
	return &o, nil
}

// Create inserts o and fills in its generated fields.
func (r *PostgresRepository) Create(ctx context.Context, o *models.Organizer) error {
	const q = `INSERT INTO organizers (email, password_hash, firstname, lastname, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, o.Email, o.Password, o.Firstname, o.Lastname, o.Phone).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	return database.Translate(err)
}

// GetByID returns an organizer by ID.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Organizer, error) {
	return scanOrganizer(r.pool.QueryRow(ctx, `SELECT `+organizerColumns+` FROM organizers WHERE id = $1`, id))
}

// GetByEmail returns an organizer by email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Organizer, error) {
	return scanOrganizer(r.pool.QueryRow(ctx, `SELECT `+organizerColumns+` FROM organizers WHERE email = $1`, email))
}

// Update writes every mutable column of o.
func (r *PostgresRepository) Update(ctx context.Context, o *models.Organizer) error {
	const q = `UPDATE organizers
		SET email = $2, password_hash = $3, firstname = $4, lastname = $5, phone = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.pool.QueryRow(ctx, q, o.ID, o.Email, o.Password, o.Firstname, o.Lastname, o.Phone).Scan(&o.UpdatedAt)
	return database.Translate(err)
}

// ListPage returns organizers ordered by id.
func (r *PostgresRepository) ListPage(ctx context.Context, offset, limit int) ([]models.Organizer, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+organizerColumns+` FROM organizers ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Organizer
	for rows.Next() {
		o, err := scanOrganizer(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *o)
	}
	return list, rows.Err()
}

// CountAll returns the number of organizers.
func (r *PostgresRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM organizers`).Scan(&n)
	return n, err
}
