package testutils

import (
	"fmt"
	"time"

	"entity-tracker-backend/internal/database/models"
	"entity-tracker-backend/internal/database/types"
)

func strPtr(s string) *string { return &s }

// EntityFactory provides methods to create test Entity data
type EntityFactory struct{}

// NewEntityFactory creates a new EntityFactory
func NewEntityFactory() *EntityFactory {
	return &EntityFactory{}
}

// Create creates a test Entity with default values
func (f *EntityFactory) Create() *models.Entity {
	d := types.NewDate(2019, time.April, 2)
	return &models.Entity{
		Name:                 "Acme LLC",
		Description:          strPtr("Holding company"),
		EIN:                  strPtr("12-3456789"),
		RegisteredAddress:    strPtr("1 Main St, Dover, DE"),
		RegisteredPhone:      strPtr("+1-555-0100"),
		StateOfIncorporation: strPtr("Delaware"),
		Status:               models.DefaultEntityStatus,
		DateOfIncorporation:  &d,
	}
}

// WithName sets a custom name for the entity
func (f *EntityFactory) WithName(name string) *models.Entity {
	e := f.Create()
	e.Name = name
	return e
}

// AccountFactory provides methods to create test Account data
type AccountFactory struct{}

// NewAccountFactory creates a new AccountFactory
func NewAccountFactory() *AccountFactory {
	return &AccountFactory{}
}

// Create creates a test Account owned by entityID
func (f *AccountFactory) Create(entityID uint) *models.Account {
	return &models.Account{
		EntityID:      entityID,
		AccountName:   "Operating",
		AccountNumber: strPtr("000123456"),
		Balance:       1500.25,
		AccountType:   strPtr("checking"),
		Username:      strPtr("acme-ops"),
		AccountURL:    strPtr("https://bank.example.com"),
	}
}

// TaskFactory provides methods to create test Task data
type TaskFactory struct{}

// NewTaskFactory creates a new TaskFactory
func NewTaskFactory() *TaskFactory {
	return &TaskFactory{}
}

// Create creates a test Task owned by entityID
func (f *TaskFactory) Create(entityID uint) *models.Task {
	due := types.NewDate(2024, time.December, 31)
	hours := 2.5
	return &models.Task{
		EntityID:       entityID,
		Title:          "File annual report",
		Status:         models.DefaultTaskStatus,
		Priority:       strPtr("high"),
		DueDate:        &due,
		Category:       strPtr("compliance"),
		EstimatedHours: &hours,
	}
}

// WithTitle sets a custom title for the task
func (f *TaskFactory) WithTitle(entityID uint, title string) *models.Task {
	t := f.Create(entityID)
	t.Title = title
	return t
}

// DocumentFactory provides methods to create test Document data
type DocumentFactory struct {
	seq int
}

// NewDocumentFactory creates a new DocumentFactory
func NewDocumentFactory() *DocumentFactory {
	return &DocumentFactory{}
}

// Create creates a test Document owned by entityID with a unique locator
func (f *DocumentFactory) Create(entityID uint) *models.Document {
	f.seq++
	size := int64(1024)
	return &models.Document{
		EntityID:         entityID,
		Title:            "Operating Agreement",
		FilePath:         strPtr(fmt.Sprintf("00000000-0000-4000-8000-%012d.pdf", f.seq)),
		OriginalFilename: strPtr("agreement.pdf"),
		DocumentType:     strPtr("legal"),
		FileSize:         &size,
	}
}

// FactorySet provides access to all factories
type FactorySet struct {
	Entity   *EntityFactory
	Account  *AccountFactory
	Task     *TaskFactory
	Document *DocumentFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Entity:   NewEntityFactory(),
		Account:  NewAccountFactory(),
		Task:     NewTaskFactory(),
		Document: NewDocumentFactory(),
	}
}
