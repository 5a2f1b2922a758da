package organizers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aura-events/venues/internal/apperr"
	"github.com/aura-events/venues/internal/models"
	"github.com/aura-events/venues/internal/pagination"
	"github.com/aura-events/venues/pkg/database"
	"github.com/aura-events/venues/pkg/utils"
)

const (
	msgDuplicatedEmail = "Duplicated email"
	msgInvalidLogin    = "Invalid email or password."
	msgInvalidToken    = "Invalid token"
	msgNotFound        = "Organizer not found."
)

// Repository is the organizer store used by Service.
type Repository interface {
	Create(ctx context.Context, o *models.Organizer) error
	GetByID(ctx context.Context, id int64) (*models.Organizer, error)
	GetByEmail(ctx context.Context, email string) (*models.Organizer, error)
	Update(ctx context.Context, o *models.Organizer) error
	ListPage(ctx context.Context, offset, limit int) ([]models.Organizer, error)
	CountAll(ctx context.Context) (int, error)
}

// TokenIssuer issues tokens for a principal.
type TokenIssuer interface {
	Generate(principalID int64, principalType string) (string, error)
}

// RegisterParams holds the fields of a new organizer.
type RegisterParams struct {
	Email     string
	Password  string
	Firstname string
	Lastname  string
	Phone     string
}

// UpdateParams holds the fields to change; nil fields are left untouched.
// An empty Password keeps the current credential.
type UpdateParams struct {
	Email     *string
	Password  *string
	Firstname *string
	Lastname  *string
	Phone     *string
}

// Service implements organizer registration, login and self-service.
type Service struct {
	repo   Repository
	tokens TokenIssuer
	logger *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewService creates an organizer service.
func NewService(repo Repository, tokens TokenIssuer, logger *zap.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, logger: logger.With(zap.String("component", "organizers"))}
}

// Register creates an organizer with a hashed password.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*models.Organizer, error) {
	if err := s.ensureEmailFree(ctx, p.Email, 0); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(p.Password)
	if err != nil {
		return nil, err
	}
	o := &models.Organizer{
		Email:     p.Email,
		Password:  hash,
		Firstname: p.Firstname,
		Lastname:  p.Lastname,
		Phone:     p.Phone,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperr.BadRequest(msgDuplicatedEmail)
		}
		return nil, fmt.Errorf("create organizer: %w", err)
	}
	s.logger.Info("organizer registered", zap.Int64("organizer_id", o.ID))
	return o, nil
}

// Login checks the credentials and returns a fresh organizer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	o, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		// Spend the same bcrypt work as a real comparison.
		utils.CheckPassword(password, s.dummy())
		return "", apperr.Unauthorized(msgInvalidLogin)
	}
	if err != nil {
		return "", fmt.Errorf("get organizer by email: %w", err)
	}
	if !utils.CheckPassword(password, o.Password) {
		return "", apperr.Unauthorized(msgInvalidLogin)
	}
	token, err := s.tokens.Generate(o.ID, models.PrincipalOrganizer)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// Self returns the organizer the principal refers to.
func (s *Service) Self(ctx context.Context, principal models.Principal) (*models.Organizer, error) {
	if !principal.IsOrganizer() {
		return nil, apperr.Unauthorized(msgInvalidToken)
	}
	o, err := s.repo.GetByID(ctx, principal.ID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.Unauthorized(msgInvalidToken)
	}
	if err != nil {
		return nil, fmt.Errorf("get organizer: %w", err)
	}
	return o, nil
}

// UpdateSelf applies p to the principal's own record.
func (s *Service) UpdateSelf(ctx context.Context, principal models.Principal, p UpdateParams) (*models.Organizer, error) {
	o, err := s.Self(ctx, principal)
	if err != nil {
		return nil, err
	}
	if p.Email != nil && *p.Email != o.Email {
		if err := s.ensureEmailFree(ctx, *p.Email, o.ID); err != nil {
			return nil, err
		}
		o.Email = *p.Email
	}
	if p.Firstname != nil {
		o.Firstname = *p.Firstname
	}
	if p.Lastname != nil {
		o.Lastname = *p.Lastname
	}
	if p.Phone != nil {
		o.Phone = *p.Phone
	}
	if p.Password != nil && *p.Password != "" {
		hash, err := utils.HashPassword(*p.Password)
		if err != nil {
			return nil, err
		}
		o.Password = hash
	}
	if err := s.repo.Update(ctx, o); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperr.BadRequest(msgDuplicatedEmail)
		}
		return nil, fmt.Errorf("update organizer: %w", err)
	}
	return o, nil
}

// GetByID returns a public organizer record.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.Organizer, error) {
	o, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.BadRequest(msgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get organizer: %w", err)
	}
	return o, nil
}

// List returns one page of the organizer directory.
func (s *Service) List(ctx context.Context, page pagination.Page) (pagination.Result[models.OrganizerPublic], error) {
	var res pagination.Result[models.OrganizerPublic]
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return res, fmt.Errorf("count organizers: %w", err)
	}
	list, err := s.repo.ListPage(ctx, page.Offset(), page.Limit())
	if err != nil {
		return res, fmt.Errorf("list organizers: %w", err)
	}
	res.Items = make([]models.OrganizerPublic, 0, len(list))
	for i := range list {
		res.Items = append(res.Items, list[i].ToPublic())
	}
	res.HasNext = page.HasNext(total)
	return res, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("get organizer by email: %w", err)
	case existing.ID != selfID:
		return apperr.BadRequest(msgDuplicatedEmail)
	}
	return nil
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = utils.HashPassword("not-a-real-password")
	})
	return s.dummyHash
}
