package repository

import (
	"context"

	"entity-tracker-backend/internal/database/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// EntityRepositoryInterface defines the interface for entity repository operations
type EntityRepositoryInterface interface {
	Create(ctx context.Context, entity *models.Entity) error
	GetByID(ctx context.Context, id uint) (*models.Entity, error)
	GetWithChildren(ctx context.Context, id uint) (*models.Entity, error)
	GetAll(ctx context.Context) ([]models.Entity, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Entity, error)
	// Delete removes the entity with all owned rows and returns the blob
	// locators of the documents that were removed.
	Delete(ctx context.Context, id uint) ([]string, error)
}

// AccountRepositoryInterface defines the interface for account repository operations
type AccountRepositoryInterface interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByEntityID(ctx context.Context, entityID uint) ([]models.Account, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Account, error)
	Delete(ctx context.Context, id uint) error
}

// TaskRepositoryInterface defines the interface for task repository operations
type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	GetByEntityID(ctx context.Context, entityID uint) ([]models.Task, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Task, error)
	Delete(ctx context.Context, id uint) error
}

// DocumentRepositoryInterface defines the interface for document repository operations
type DocumentRepositoryInterface interface {
	Create(ctx context.Context, document *models.Document) error
	GetByID(ctx context.Context, id uint) (*models.Document, error)
	GetByEntityID(ctx context.Context, entityID uint) ([]models.Document, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Document, error)
	// Delete removes the row and returns it so the caller can drop the blob
	Delete(ctx context.Context, id uint) (*models.Document, error)
}
