package repository

import (
	"context"

	"entity-tracker-backend/internal/database/models"

	"gorm.io/gorm"
)

// DocumentRepository handles database operations for document metadata
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new document row; ErrEntityNotFound if the owner is gone
func (r *DocumentRepository) Create(ctx context.Context, document *models.Document) error {
	return createChild(ctx, r.db, document.EntityID, document)
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uint) (*models.Document, error) {
	return getByID[models.Document](ctx, r.db, id)
}

// GetByEntityID retrieves the documents of an entity
func (r *DocumentRepository) GetByEntityID(ctx context.Context, entityID uint) ([]models.Document, error) {
	return listChildren[models.Document](ctx, r.db, entityID)
}

// Update applies column updates to a document
func (r *DocumentRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Document, error) {
	return updateByID[models.Document](ctx, r.db, id, updates)
}

// Delete deletes a document row and returns what was removed
func (r *DocumentRepository) Delete(ctx context.Context, id uint) (*models.Document, error) {
	return deleteByID[models.Document](ctx, r.db, id)
}
