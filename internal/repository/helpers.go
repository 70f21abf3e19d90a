package repository

import (
	"context"
	"errors"
	"strings"

	"entity-tracker-backend/internal/database/models"
	apperrors "entity-tracker-backend/internal/errors"

	"gorm.io/gorm"
)

// isForeignKeyViolation recognises FK failures from both drivers. gorm
// translates the Postgres error; SQLite only reports it in the message.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key")
}

// requireEntity fails with ErrEntityNotFound unless the entity row exists
func requireEntity(tx *gorm.DB, entityID uint) error {
	var count int64
	if err := tx.Model(&models.Entity{}).Where("id = ?", entityID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.ErrEntityNotFound
	}
	return nil
}

// createChild inserts a row owned by entityID. The existence check only gives
// a clean error in the common case; the foreign key decides under a race.
func createChild(ctx context.Context, db *gorm.DB, entityID uint, record interface{}) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireEntity(tx, entityID); err != nil {
			return err
		}
		return tx.Create(record).Error
	})
	if isForeignKeyViolation(err) {
		return apperrors.ErrEntityNotFound
	}
	return err
}

// listChildren returns the rows owned by entityID in creation order
func listChildren[T any](ctx context.Context, db *gorm.DB, entityID uint) ([]T, error) {
	var rows []T
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireEntity(tx, entityID); err != nil {
			return err
		}
		return tx.Where("entity_id = ?", entityID).Order("id").Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// getByID returns gorm.ErrRecordNotFound when no row has the id
func getByID[T any](ctx context.Context, db *gorm.DB, id uint) (*T, error) {
	var row T
	if err := db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// updateByID applies column updates to one row and returns it re-read. An
// empty update set only checks existence. The re-read scans into a zero value
// because gorm leaves pointer fields untouched when the column is NULL.
func updateByID[T any](ctx context.Context, db *gorm.DB, id uint, updates map[string]interface{}) (*T, error) {
	var row T
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(new(T)).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		var fresh T
		if err := tx.First(&fresh, "id = ?", id).Error; err != nil {
			return err
		}
		row = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// deleteByID removes one row, returning gorm.ErrRecordNotFound if it was absent
func deleteByID[T any](ctx context.Context, db *gorm.DB, id uint) (*T, error) {
	var row T
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(new(T), "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}
