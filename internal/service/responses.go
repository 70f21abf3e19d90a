package service

import (
	"time"

	"entity-tracker-backend/internal/database/models"
	"entity-tracker-backend/internal/database/types"
)

// EntityResponse represents an entity without its children
type EntityResponse struct {
	ID                   uint        `json:"id"`
	Name                 string      `json:"name"`
	Description          *string     `json:"description"`
	EIN                  *string     `json:"ein"`
	RegisteredAddress    *string     `json:"registered_address"`
	RegisteredPhone      *string     `json:"registered_phone"`
	StateOfIncorporation *string     `json:"state_of_incorporation"`
	Status               string      `json:"status"`
	DateOfIncorporation  *types.Date `json:"date_of_incorporation" swaggertype:"string" example:"2020-01-31"`
	CreatedAt            time.Time   `json:"created_at"`
}

// EntityDetailResponse is an entity with everything it owns
type EntityDetailResponse struct {
	EntityResponse
	Accounts  []AccountResponse  `json:"accounts"`
	Tasks     []TaskResponse     `json:"tasks"`
	Documents []DocumentResponse `json:"documents"`
}

// AccountResponse represents an account; the password is never included
type AccountResponse struct {
	ID            uint      `json:"id"`
	EntityID      uint      `json:"entity_id"`
	AccountName   string    `json:"account_name"`
	AccountNumber *string   `json:"account_number"`
	Balance       float64   `json:"balance"`
	AccountType   *string   `json:"account_type"`
	Username      *string   `json:"username"`
	HasPassword   bool      `json:"has_password"`
	AccountURL    *string   `json:"account_url"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

// CredentialsResponse carries the revealed login of an account
type CredentialsResponse struct {
	AccountID uint    `json:"account_id"`
	Username  *string `json:"username"`
	Password  *string `json:"password"`
}

// TaskResponse represents a task
type TaskResponse struct {
	ID             uint        `json:"id"`
	EntityID       uint        `json:"entity_id"`
	Title          string      `json:"title"`
	Description    *string     `json:"description"`
	Status         string      `json:"status"`
	Priority       *string     `json:"priority"`
	DueDate        *types.Date `json:"due_date" swaggertype:"string" example:"2024-12-31"`
	StartDate      *types.Date `json:"start_date" swaggertype:"string"`
	CompletionDate *types.Date `json:"completion_date" swaggertype:"string"`
	Category       *string     `json:"category"`
	AssignedTo     *string     `json:"assigned_to"`
	EstimatedHours *float64    `json:"estimated_hours"`
	ActualHours    *float64    `json:"actual_hours"`
	Dependencies   []uint      `json:"dependencies"`
	CreatedAt      time.Time   `json:"created_at"`
}

// DocumentResponse represents document metadata
type DocumentResponse struct {
	ID               uint      `json:"id"`
	EntityID         uint      `json:"entity_id"`
	Title            string    `json:"title"`
	FilePath         *string   `json:"file_path"`
	OriginalFilename *string   `json:"original_filename"`
	DocumentType     *string   `json:"document_type"`
	FileSize         *int64    `json:"file_size"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

func toEntityResponse(e *models.Entity) *EntityResponse {
	return &EntityResponse{
		ID:                   e.ID,
		Name:                 e.Name,
		Description:          e.Description,
		EIN:                  e.EIN,
		RegisteredAddress:    e.RegisteredAddress,
		RegisteredPhone:      e.RegisteredPhone,
		StateOfIncorporation: e.StateOfIncorporation,
		Status:               e.Status,
		DateOfIncorporation:  e.DateOfIncorporation,
		CreatedAt:            e.CreatedAt,
	}
}

func toAccountResponse(a *models.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		EntityID:      a.EntityID,
		AccountName:   a.AccountName,
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance,
		AccountType:   a.AccountType,
		Username:      a.Username,
		HasPassword:   a.Password != nil && *a.Password != "",
		AccountURL:    a.AccountURL,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
	}
}

func toTaskResponse(t *models.Task) *TaskResponse {
	return &TaskResponse{
		ID:             t.ID,
		EntityID:       t.EntityID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		Priority:       t.Priority,
		DueDate:        t.DueDate,
		StartDate:      t.StartDate,
		CompletionDate: t.CompletionDate,
		Category:       t.Category,
		AssignedTo:     t.AssignedTo,
		EstimatedHours: t.EstimatedHours,
		ActualHours:    t.ActualHours,
		Dependencies:   []uint(t.Dependencies),
		CreatedAt:      t.CreatedAt,
	}
}

func toDocumentResponse(d *models.Document) *DocumentResponse {
	return &DocumentResponse{
		ID:               d.ID,
		EntityID:         d.EntityID,
		Title:            d.Title,
		FilePath:         d.FilePath,
		OriginalFilename: d.OriginalFilename,
		DocumentType:     d.DocumentType,
		FileSize:         d.FileSize,
		UploadedAt:       d.UploadedAt,
	}
}

func toAccountResponses(accounts []models.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = *toAccountResponse(&accounts[i])
	}
	return out
}

func toTaskResponses(tasks []models.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = *toTaskResponse(&tasks[i])
	}
	return out
}

func toDocumentResponses(docs []models.Document) []DocumentResponse {
	out := make([]DocumentResponse, len(docs))
	for i := range docs {
		out[i] = *toDocumentResponse(&docs[i])
	}
	return out
}
