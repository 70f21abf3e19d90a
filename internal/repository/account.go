package repository

import (
	"context"

	"entity-tracker-backend/internal/database/models"

	"gorm.io/gorm"
)

// AccountRepository handles database operations for accounts
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account; ErrEntityNotFound if the owner is gone
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	return createChild(ctx, r.db, account.EntityID, account)
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	return getByID[models.Account](ctx, r.db, id)
}

// GetByEntityID retrieves the accounts of an entity
func (r *AccountRepository) GetByEntityID(ctx context.Context, entityID uint) ([]models.Account, error) {
	return listChildren[models.Account](ctx, r.db, entityID)
}

// Update applies column updates to an account
func (r *AccountRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Account, error) {
	return updateByID[models.Account](ctx, r.db, id, updates)
}

// Delete deletes an account
func (r *AccountRepository) Delete(ctx context.Context, id uint) error {
	_, err := deleteByID[models.Account](ctx, r.db, id)
	return err
}
