package service

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// EntityServiceInterface defines the interface for entity service
type EntityServiceInterface interface {
	Create(ctx context.Context, req *CreateEntityRequest) (*EntityResponse, error)
	GetByID(ctx context.Context, id uint) (*EntityDetailResponse, error)
	GetAll(ctx context.Context) ([]EntityResponse, error)
	Update(ctx context.Context, id uint, req *UpdateEntityRequest) (*EntityResponse, error)
	Delete(ctx context.Context, id uint) error
}

// AccountServiceInterface defines the interface for account service
type AccountServiceInterface interface {
	Create(ctx context.Context, entityID uint, req *CreateAccountRequest) (*AccountResponse, error)
	GetByID(ctx context.Context, id uint) (*AccountResponse, error)
	GetByEntityID(ctx context.Context, entityID uint) ([]AccountResponse, error)
	Update(ctx context.Context, id uint, req *UpdateAccountRequest) (*AccountResponse, error)
	Delete(ctx context.Context, id uint) error
	RevealCredentials(ctx context.Context, id uint) (*CredentialsResponse, error)
}

// TaskServiceInterface defines the interface for task service
type TaskServiceInterface interface {
	Create(ctx context.Context, entityID uint, req *CreateTaskRequest) (*TaskResponse, error)
	GetByID(ctx context.Context, id uint) (*TaskResponse, error)
	GetByEntityID(ctx context.Context, entityID uint) ([]TaskResponse, error)
	Update(ctx context.Context, id uint, req *UpdateTaskRequest) (*TaskResponse, error)
	Delete(ctx context.Context, id uint) error
}

// DocumentServiceInterface defines the interface for document service
type DocumentServiceInterface interface {
	Upload(ctx context.Context, entityID uint, req *UploadDocumentRequest) (*DocumentResponse, error)
	GetByID(ctx context.Context, id uint) (*DocumentResponse, error)
	GetByEntityID(ctx context.Context, entityID uint) ([]DocumentResponse, error)
	Update(ctx context.Context, id uint, req *UpdateDocumentRequest) (*DocumentResponse, error)
	Delete(ctx context.Context, id uint) error
	OpenContent(ctx context.Context, id uint) (*DocumentContent, error)
}

var (
	_ EntityServiceInterface   = (*EntityService)(nil)
	_ AccountServiceInterface  = (*AccountService)(nil)
	_ TaskServiceInterface     = (*TaskService)(nil)
	_ DocumentServiceInterface = (*DocumentService)(nil)
)
