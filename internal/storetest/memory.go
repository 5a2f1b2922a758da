// Package storetest provides in-memory repositories with the same error contract
// as the PostgreSQL ones, for service and router tests.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aura-events/venues/internal/models"
	"github.com/aura-events/venues/pkg/database"
)

// Organizers is an in-memory organizer repository.
type Organizers struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Organizer
	// Err, when set, is returned by every call.
	Err error
}

// NewOrganizers returns an empty organizer repository.
func NewOrganizers() *Organizers {
	return &Organizers{rows: make(map[int64]models.Organizer)}
}

func (r *Organizers) Create(_ context.Context, o *models.Organizer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, row := range r.rows {
		if row.Email == o.Email {
			return database.ErrDuplicate
		}
	}
	r.nextID++
	now := time.Now().UTC()
	o.ID, o.CreatedAt, o.UpdatedAt = r.nextID, now, now
	r.rows[o.ID] = *o
	return nil
}

func (r *Organizers) GetByID(_ context.Context, id int64) (*models.Organizer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	row, ok := r.rows[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &row, nil
}

func (r *Organizers) GetByEmail(_ context.Context, email string) (*models.Organizer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, row := range r.rows {
		if row.Email == email {
			return &row, nil
		}
	}
	return nil, database.ErrNotFound
}

func (r *Organizers) Update(_ context.Context, o *models.Organizer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[o.ID]; !ok {
		return database.ErrNotFound
	}
	for id, row := range r.rows {
		if id != o.ID && row.Email == o.Email {
			return database.ErrDuplicate
		}
	}
	o.UpdatedAt = time.Now().UTC()
	r.rows[o.ID] = *o
	return nil
}

func (r *Organizers) ListPage(_ context.Context, offset, limit int) ([]models.Organizer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	all := make([]models.Organizer, 0, len(r.rows))
	for _, row := range r.rows {
		all = append(all, row)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return window(all, offset, limit), nil
}

func (r *Organizers) CountAll(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return len(r.rows), nil
}

// Locations is an in-memory location repository.
type Locations struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Location
	// Err, when set, is returned by every call.
	Err error
}

// NewLocations returns an empty location repository.
func NewLocations() *Locations {
	return &Locations{rows: make(map[int64]models.Location)}
}

func (r *Locations) Create(_ context.Context, l *models.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, row := range r.rows {
		if row.Address == l.Address {
			return database.ErrDuplicate
		}
	}
	r.nextID++
	now := time.Now().UTC()
	l.ID, l.CreatedAt, l.UpdatedAt = r.nextID, now, now
	r.rows[l.ID] = *l
	return nil
}

func (r *Locations) GetByID(_ context.Context, id int64) (*models.Location, error) {
	return r.find(func(l models.Location) bool { return l.ID == id })
}

func (r *Locations) GetByAddress(_ context.Context, address string) (*models.Location, error) {
	return r.find(func(l models.Location) bool { return l.Address == address })
}

func (r *Locations) GetOwned(_ context.Context, id, ownerID int64) (*models.Location, error) {
	return r.find(func(l models.Location) bool { return l.ID == id && l.OwnerID == ownerID })
}

func (r *Locations) Update(_ context.Context, l *models.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[l.ID]; !ok {
		return database.ErrNotFound
	}
	for id, row := range r.rows {
		if id != l.ID && row.Address == l.Address {
			return database.ErrDuplicate
		}
	}
	l.UpdatedAt = time.Now().UTC()
	r.rows[l.ID] = *l
	return nil
}

func (r *Locations) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *Locations) ListPage(_ context.Context, offset, limit int) ([]models.Location, error) {
	list, err := r.filter(func(models.Location) bool { return true })
	return window(list, offset, limit), err
}

func (r *Locations) CountAll(_ context.Context) (int, error) {
	list, err := r.filter(func(models.Location) bool { return true })
	return len(list), err
}

func (r *Locations) ListByOwner(_ context.Context, ownerID int64, offset, limit int) ([]models.Location, error) {
	list, err := r.filter(func(l models.Location) bool { return l.OwnerID == ownerID })
	return window(list, offset, limit), err
}

func (r *Locations) CountByOwner(_ context.Context, ownerID int64) (int, error) {
	list, err := r.filter(func(l models.Location) bool { return l.OwnerID == ownerID })
	return len(list), err
}

func (r *Locations) find(match func(models.Location) bool) (*models.Location, error) {
	list, err := r.filter(match)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, database.ErrNotFound
	}
	return &list[0], nil
}

func (r *Locations) filter(match func(models.Location) bool) ([]models.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []models.Location
	for _, row := range r.rows {
		if match(row) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func window[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
