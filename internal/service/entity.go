package service

import (
	"context"
	"errors"
	"fmt"

	"entity-tracker-backend/internal/database/models"
	apperrors "entity-tracker-backend/internal/errors"
	"entity-tracker-backend/internal/logger"
	"entity-tracker-backend/internal/repository"
	"entity-tracker-backend/internal/storage"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// EntityService handles business logic for entities
type EntityService struct {
	repo      repository.EntityRepositoryInterface
	blobs     storage.BlobStore
	validator *validator.Validate
}

// NewEntityService creates a new entity service
func NewEntityService(repo repository.EntityRepositoryInterface, blobs storage.BlobStore, validator *validator.Validate) *EntityService {
	return &EntityService{
		repo:      repo,
		blobs:     blobs,
		validator: validator,
	}
}

// CreateEntityRequest represents the request to create an entity
type CreateEntityRequest struct {
	Name                 string  `json:"name" validate:"required,notblank,max=100"`
	Description          *string `json:"description"`
	EIN                  *string `json:"ein" validate:"omitempty,max=50"`
	RegisteredAddress    *string `json:"registered_address" validate:"omitempty,max=500"`
	RegisteredPhone      *string `json:"registered_phone" validate:"omitempty,max=50"`
	StateOfIncorporation *string `json:"state_of_incorporation" validate:"omitempty,max=100"`
	Status               *string `json:"status" validate:"omitempty,max=50"`
	DateOfIncorporation  *string `json:"date_of_incorporation" example:"2020-01-31"`
}

// UpdateEntityRequest represents a partial update: omitted fields are kept,
// null clears an optional field.
type UpdateEntityRequest struct {
	Name                 Optional[string] `json:"name" swaggertype:"string"`
	Description          Optional[string] `json:"description" swaggertype:"string"`
	EIN                  Optional[string] `json:"ein" swaggertype:"string"`
	RegisteredAddress    Optional[string] `json:"registered_address" swaggertype:"string"`
	RegisteredPhone      Optional[string] `json:"registered_phone" swaggertype:"string"`
	StateOfIncorporation Optional[string] `json:"state_of_incorporation" swaggertype:"string"`
	Status               Optional[string] `json:"status" swaggertype:"string"`
	DateOfIncorporation  Optional[string] `json:"date_of_incorporation" swaggertype:"string"`
}

// Create creates a new entity
func (s *EntityService) Create(ctx context.Context, req *CreateEntityRequest) (*EntityResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	incorporated, err := optionalDate("date_of_incorporation", req.DateOfIncorporation)
	if err != nil {
		return nil, err
	}

	entity := &models.Entity{
		Name:                 req.Name,
		Description:          req.Description,
		EIN:                  req.EIN,
		RegisteredAddress:    req.RegisteredAddress,
		RegisteredPhone:      req.RegisteredPhone,
		StateOfIncorporation: req.StateOfIncorporation,
		Status:               stringOr(req.Status, models.DefaultEntityStatus),
		DateOfIncorporation:  incorporated,
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to create entity: %w", err)
	}

	logger.WithContext(ctx).WithField("entity_id", entity.ID).Info("Entity created")
	return toEntityResponse(entity), nil
}

// GetByID retrieves an entity with its accounts, tasks and documents
func (s *EntityService) GetByID(ctx context.Context, id uint) (*EntityDetailResponse, error) {
	entity, err := s.repo.GetWithChildren(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	return &EntityDetailResponse{
		EntityResponse: *toEntityResponse(entity),
		Accounts:       toAccountResponses(entity.Accounts),
		Tasks:          toTaskResponses(entity.Tasks),
		Documents:      toDocumentResponses(entity.Documents),
	}, nil
}

// GetAll retrieves all entities
func (s *EntityService) GetAll(ctx context.Context) ([]EntityResponse, error) {
	entities, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get entities: %w", err)
	}

	responses := make([]EntityResponse, len(entities))
	for i := range entities {
		responses[i] = *toEntityResponse(&entities[i])
	}
	return responses, nil
}

// Update applies a partial update to an entity
func (s *EntityService) Update(ctx context.Context, id uint, req *UpdateEntityRequest) (*EntityResponse, error) {
	p := newPatch()
	p.required("name", req.Name, 100)
	p.nullable("description", req.Description, 0)
	p.nullable("ein", req.EIN, 50)
	p.nullable("registered_address", req.RegisteredAddress, 500)
	p.nullable("registered_phone", req.RegisteredPhone, 50)
	p.nullable("state_of_incorporation", req.StateOfIncorporation, 100)
	p.defaulted("status", req.Status, 50)
	p.date("date_of_incorporation", req.DateOfIncorporation)
	updates, err := p.result()
	if err != nil {
		return nil, err
	}

	entity, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to update entity: %w", err)
	}

	return toEntityResponse(entity), nil
}

// Delete removes an entity with everything it owns, then drops the
// documents' blobs. Blob failures are logged, never returned.
func (s *EntityService) Delete(ctx context.Context, id uint) error {
	locators, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrEntityNotFound
		}
		return fmt.Errorf("failed to delete entity: %w", err)
	}

	log := logger.WithContext(ctx).WithField("entity_id", id)
	for _, locator := range locators {
		if err := s.blobs.Delete(ctx, locator); err != nil {
			log.WithError(err).WithField("locator", locator).Warn("Failed to remove document blob")
		}
	}
	log.WithField("documents", len(locators)).Info("Entity deleted")
	return nil
}
