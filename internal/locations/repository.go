package locations

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aura-events/venues/internal/models"
	"github.com/aura-events/venues/pkg/database"
)

const locationColumns = `id, name, address, capacity, owner_id, created_at, updated_at`

// PostgresRepository handles location persistence.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a location repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func scanLocation(row pgx.Row) (*models.Location, error) {
	var l models.Location
	if err := row.Scan(&l.ID, &l.Name, &l.Address, &l.Capacity, &l.OwnerID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, database.Translate(err)
	}
	return &l, nil
}

// Create inserts l and fills in its generated fields.
func (r *PostgresRepository) Create(ctx context.Context, l *models.Location) error {
	const q = `INSERT INTO locations (name, address, capacity, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, l.Name, l.Address, l.Capacity, l.OwnerID).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	return database.Translate(err)
}

// GetByID returns a location by ID.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	return scanLocation(r.pool.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id))
}

// GetByAddress returns the location at address.
func (r *PostgresRepository) GetByAddress(ctx context.Context, address string) (*models.Location, error) {
	return scanLocation(r.pool.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE address = $1`, address))
}

// GetOwned returns the location only if it exists and belongs to ownerID.
func (r *PostgresRepository) GetOwned(ctx context.Context, id, ownerID int64) (*models.Location, error) {
	return scanLocation(r.pool.QueryRow(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = $1 AND owner_id = $2`, id, ownerID))
}

// Update writes the mutable columns of l.
func (r *PostgresRepository) Update(ctx context.Context, l *models.Location) error {
	const q = `UPDATE locations
		SET name = $2, address = $3, capacity = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.pool.QueryRow(ctx, q, l.ID, l.Name, l.Address, l.Capacity).Scan(&l.UpdatedAt)
	return database.Translate(err)
}

// Delete removes a location.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}

// ListPage returns locations ordered by id.
func (r *PostgresRepository) ListPage(ctx context.Context, offset, limit int) ([]models.Location, error) {
	return r.list(ctx, `SELECT `+locationColumns+` FROM locations ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
}

// CountAll returns the number of locations.
func (r *PostgresRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM locations`).Scan(&n)
	return n, err
}

// ListByOwner returns the owner's locations ordered by id.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]models.Location, error) {
	return r.list(ctx, `SELECT `+locationColumns+` FROM locations WHERE owner_id = $3 ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset, ownerID)
}

// CountByOwner returns the number of locations owned by ownerID.
func (r *PostgresRepository) CountByOwner(ctx context.Context, ownerID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM locations WHERE owner_id = $1`, ownerID).Scan(&n)
	return n, err
}

func (r *PostgresRepository) list(ctx context.Context, q string, args ...any) ([]models.Location, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *l)
	}
	return list, rows.Err()
}
