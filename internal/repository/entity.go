package repository

import (
	"context"

	"entity-tracker-backend/internal/database/models"

	"gorm.io/gorm"
)

// EntityRepository handles database operations for entities
type EntityRepository struct {
	db *gorm.DB
}

// NewEntityRepository creates a new entity repository
func NewEntityRepository(db *gorm.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

// Create creates a new entity
func (r *EntityRepository) Create(ctx context.Context, entity *models.Entity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Accounts", "Tasks", "Documents").Create(entity).Error
	})
}

// GetByID retrieves an entity by ID without its children
func (r *EntityRepository) GetByID(ctx context.Context, id uint) (*models.Entity, error) {
	return getByID[models.Entity](ctx, r.db, id)
}

// GetWithChildren retrieves an entity with accounts, tasks and documents, each in creation order
func (r *EntityRepository) GetWithChildren(ctx context.Context, id uint) (*models.Entity, error) {
	var entity models.Entity
	byID := func(db *gorm.DB) *gorm.DB { return db.Order("id") }
	err := r.db.WithContext(ctx).
		Preload("Accounts", byID).
		Preload("Tasks", byID).
		Preload("Documents", byID).
		First(&entity, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetAll retrieves all entities in creation order
func (r *EntityRepository) GetAll(ctx context.Context) ([]models.Entity, error) {
	var entities []models.Entity
	if err := r.db.WithContext(ctx).Order("id").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Update applies column updates to an entity
func (r *EntityRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Entity, error) {
	return updateByID[models.Entity](ctx, r.db, id, updates)
}

// Delete removes the entity and everything it owns in one transaction
func (r *EntityRepository) Delete(ctx context.Context, id uint) ([]string, error) {
	var locators []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entity models.Entity
		if err := tx.Select("id").First(&entity, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Document{}).
			Where("entity_id = ? AND file_path IS NOT NULL AND file_path <> ''", id).
			Order("id").
			Pluck("file_path", &locators).Error; err != nil {
			return err
		}

		for _, child := range []interface{}{&models.Document{}, &models.Task{}, &models.Account{}} {
			if err := tx.Where("entity_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Entity{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return locators, nil
}
