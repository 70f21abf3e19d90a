package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"entity-tracker-backend/internal/database/models"
	apperrors "entity-tracker-backend/internal/errors"
	"entity-tracker-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// TaskService handles business logic for tasks
type TaskService struct {
	repo      repository.TaskRepositoryInterface
	validator *validator.Validate
}

// NewTaskService creates a new task service
func NewTaskService(repo repository.TaskRepositoryInterface, validator *validator.Validate) *TaskService {
	return &TaskService{
		repo:      repo,
		validator: validator,
	}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	Title          string          `json:"title" validate:"required,notblank,max=200"`
	Description    *string         `json:"description"`
	Status         *string         `json:"status" validate:"omitempty,max=50"`
	Priority       *string         `json:"priority" validate:"omitempty,max=50"`
	DueDate        *string         `json:"due_date" example:"2024-12-31"`
	StartDate      *string         `json:"start_date"`
	CompletionDate *string         `json:"completion_date"`
	Category       *string         `json:"category" validate:"omitempty,max=100"`
	AssignedTo     *string         `json:"assigned_to" validate:"omitempty,max=100"`
	EstimatedHours *float64        `json:"estimated_hours" validate:"omitempty,gte=0"`
	ActualHours    *float64        `json:"actual_hours" validate:"omitempty,gte=0"`
	Dependencies   json.RawMessage `json:"dependencies" swaggertype:"array,integer"`
}

// UpdateTaskRequest represents a partial update of a task
type UpdateTaskRequest struct {
	Title          Optional[string]          `json:"title" swaggertype:"string"`
	Description    Optional[string]          `json:"description" swaggertype:"string"`
	Status         Optional[string]          `json:"status" swaggertype:"string"`
	Priority       Optional[string]          `json:"priority" swaggertype:"string"`
	DueDate        Optional[string]          `json:"due_date" swaggertype:"string"`
	StartDate      Optional[string]          `json:"start_date" swaggertype:"string"`
	CompletionDate Optional[string]          `json:"completion_date" swaggertype:"string"`
	Category       Optional[string]          `json:"category" swaggertype:"string"`
	AssignedTo     Optional[string]          `json:"assigned_to" swaggertype:"string"`
	EstimatedHours Optional[float64]         `json:"estimated_hours" swaggertype:"number"`
	ActualHours    Optional[float64]         `json:"actual_hours" swaggertype:"number"`
	Dependencies   Optional[json.RawMessage] `json:"dependencies" swaggertype:"array,integer"`
}

// Create creates a new task under an entity. Dates and dependencies are
// parsed before anything is written.
func (s *TaskService) Create(ctx context.Context, entityID uint, req *CreateTaskRequest) (*TaskResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	due, err := optionalDate("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}
	start, err := optionalDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	completed, err := optionalDate("completion_date", req.CompletionDate)
	if err != nil {
		return nil, err
	}
	deps, err := optionalDependencies(req.Dependencies)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		EntityID:       entityID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         stringOr(req.Status, models.DefaultTaskStatus),
		Priority:       req.Priority,
		DueDate:        due,
		StartDate:      start,
		CompletionDate: completed,
		Category:       req.Category,
		AssignedTo:     req.AssignedTo,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		Dependencies:   deps,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return toTaskResponse(task), nil
}

// GetByID retrieves a task by ID
func (s *TaskService) GetByID(ctx context.Context, id uint) (*TaskResponse, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return toTaskResponse(task), nil
}

// GetByEntityID retrieves the tasks of an entity
func (s *TaskService) GetByEntityID(ctx context.Context, entityID uint) ([]TaskResponse, error) {
	tasks, err := s.repo.GetByEntityID(ctx, entityID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	return toTaskResponses(tasks), nil
}

// Update applies a partial update to a task
func (s *TaskService) Update(ctx context.Context, id uint, req *UpdateTaskRequest) (*TaskResponse, error) {
	p := newPatch()
	p.required("title", req.Title, 200)
	p.nullable("description", req.Description, 0)
	p.defaulted("status", req.Status, 50)
	p.nullable("priority", req.Priority, 50)
	p.date("due_date", req.DueDate)
	p.date("start_date", req.StartDate)
	p.date("completion_date", req.CompletionDate)
	p.nullable("category", req.Category, 100)
	p.nullable("assigned_to", req.AssignedTo, 100)
	p.number("estimated_hours", req.EstimatedHours, true, false)
	p.number("actual_hours", req.ActualHours, true, false)
	p.dependencies("dependencies", req.Dependencies)
	updates, err := p.result()
	if err != nil {
		return nil, err
	}

	task, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return toTaskResponse(task), nil
}

// Delete deletes a task
func (s *TaskService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
