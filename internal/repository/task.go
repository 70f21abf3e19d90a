package repository

import (
	"context"

	"entity-tracker-backend/internal/database/models"

	"gorm.io/gorm"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task; ErrEntityNotFound if the owner is gone
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return createChild(ctx, r.db, task.EntityID, task)
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	return getByID[models.Task](ctx, r.db, id)
}

// GetByEntityID retrieves the tasks of an entity
func (r *TaskRepository) GetByEntityID(ctx context.Context, entityID uint) ([]models.Task, error) {
	return listChildren[models.Task](ctx, r.db, entityID)
}

// Update applies column updates to a task
func (r *TaskRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Task, error) {
	return updateByID[models.Task](ctx, r.db, id, updates)
}

// Delete deletes a task
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	_, err := deleteByID[models.Task](ctx, r.db, id)
	return err
}
