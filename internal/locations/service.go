package locations

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aura-events/venues/internal/apperr"
	"github.com/aura-events/venues/internal/models"
	"github.com/aura-events/venues/internal/pagination"
	"github.com/aura-events/venues/pkg/database"
)

const (
	msgDuplicated    = "Duplicated location"
	msgNotFound      = "Location not found"
	msgOwnerNotFound = "Owner not found"
	msgInvalidToken  = "Invalid token"
)

// Repository is the location store used by Service.
type Repository interface {
	Create(ctx context.Context, l *models.Location) error
	GetByID(ctx context.Context, id int64) (*models.Location, error)
	GetByAddress(ctx context.Context, address string) (*models.Location, error)
	GetOwned(ctx context.Context, id, ownerID int64) (*models.Location, error)
	Update(ctx context.Context, l *models.Location) error
	Delete(ctx context.Context, id int64) error
	ListPage(ctx context.Context, offset, limit int) ([]models.Location, error)
	CountAll(ctx context.Context) (int, error)
	ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]models.Location, error)
	CountByOwner(ctx context.Context, ownerID int64) (int, error)
}

// Owners looks up organizers that may own locations.
type Owners interface {
	GetByID(ctx context.Context, id int64) (*models.Organizer, error)
}

// CreateParams holds the fields of a new location.
type CreateParams struct {
	Name     string
	Address  string
	Capacity int
}

// UpdateParams holds the fields to change; nil fields are left untouched.
type UpdateParams struct {
	Name     *string
	Address  *string
	Capacity *int
}

// Service implements location management scoped to the owning organizer.
type Service struct {
	repo   Repository
	owners Owners
	logger *zap.Logger
}

// NewService creates a location service.
func NewService(repo Repository, owners Owners, logger *zap.Logger) *Service {
	return &Service{repo: repo, owners: owners, logger: logger.With(zap.String("component", "locations"))}
}

// Create stores a new location owned by the principal.
func (s *Service) Create(ctx context.Context, principal models.Principal, p CreateParams) (*models.Location, error) {
	if !principal.IsOrganizer() {
		return nil, apperr.Unauthorized(msgInvalidToken)
	}
	if err := s.ensureAddressFree(ctx, p.Address, 0); err != nil {
		return nil, err
	}
	l := &models.Location{
		Name:     p.Name,
		Address:  p.Address,
		Capacity: p.Capacity,
		OwnerID:  principal.ID,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperr.BadRequest(msgDuplicated)
		}
		return nil, fmt.Errorf("create location: %w", err)
	}
	s.logger.Info("location created", zap.Int64("location_id", l.ID), zap.Int64("owner_id", l.OwnerID))
	return l, nil
}

// Update applies p to a location the principal owns.
func (s *Service) Update(ctx context.Context, principal models.Principal, id int64, p UpdateParams) (*models.Location, error) {
	l, err := s.owned(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if p.Address != nil && *p.Address != l.Address {
		if err := s.ensureAddressFree(ctx, *p.Address, l.ID); err != nil {
			return nil, err
		}
		l.Address = *p.Address
	}
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Capacity != nil {
		l.Capacity = *p.Capacity
	}
	if err := s.repo.Update(ctx, l); err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicate):
			return nil, apperr.BadRequest(msgDuplicated)
		case errors.Is(err, database.ErrNotFound):
			return nil, apperr.BadRequest(msgNotFound)
		}
		return nil, fmt.Errorf("update location: %w", err)
	}
	return l, nil
}

// Delete removes a location the principal owns.
func (s *Service) Delete(ctx context.Context, principal models.Principal, id int64) error {
	l, err := s.owned(ctx, principal, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, l.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperr.BadRequest(msgNotFound)
		}
		return fmt.Errorf("delete location: %w", err)
	}
	s.logger.Info("location deleted", zap.Int64("location_id", l.ID), zap.Int64("owner_id", l.OwnerID))
	return nil
}

// GetByID returns any location.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	l, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.BadRequest(msgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

// ListAll returns one page of all locations.
func (s *Service) ListAll(ctx context.Context, page pagination.Page) (pagination.Result[models.Location], error) {
	var res pagination.Result[models.Location]
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return res, fmt.Errorf("count locations: %w", err)
	}
	list, err := s.repo.ListPage(ctx, page.Offset(), page.Limit())
	if err != nil {
		return res, fmt.Errorf("list locations: %w", err)
	}
	return newResult(list, page.HasNext(total)), nil
}

// ListByOwner returns one page of an organizer's locations. An owner with none yields an empty page.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64, page pagination.Page) (pagination.Result[models.Location], error) {
	var res pagination.Result[models.Location]
	if _, err := s.owners.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return res, apperr.BadRequest(msgOwnerNotFound)
		}
		return res, fmt.Errorf("get owner: %w", err)
	}
	total, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return res, fmt.Errorf("count owner locations: %w", err)
	}
	list, err := s.repo.ListByOwner(ctx, ownerID, page.Offset(), page.Limit())
	if err != nil {
		return res, fmt.Errorf("list owner locations: %w", err)
	}
	return newResult(list, page.HasNext(total)), nil
}

// owned resolves a location by id and owner together, so a location owned by someone
// else reads exactly like a missing one.
func (s *Service) owned(ctx context.Context, principal models.Principal, id int64) (*models.Location, error) {
	if !principal.IsOrganizer() {
		return nil, apperr.Unauthorized(msgInvalidToken)
	}
	l, err := s.repo.GetOwned(ctx, id, principal.ID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.BadRequest(msgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get owned location: %w", err)
	}
	return l, nil
}

func (s *Service) ensureAddressFree(ctx context.Context, address string, selfID int64) error {
	existing, err := s.repo.GetByAddress(ctx, address)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("get location by address: %w", err)
	case existing.ID != selfID:
		return apperr.BadRequest(msgDuplicated)
	}
	return nil
}

func newResult(list []models.Location, hasNext bool) pagination.Result[models.Location] {
	if list == nil {
		list = []models.Location{}
	}
	return pagination.Result[models.Location]{Items: list, HasNext: hasNext}
}
