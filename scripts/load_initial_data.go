package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"entity-tracker-backend/internal/config"
	"entity-tracker-backend/internal/credentials"
	"entity-tracker-backend/internal/database"
	"entity-tracker-backend/internal/database/models"
	"entity-tracker-backend/internal/database/types"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type EntityData struct {
	Name                 string        `yaml:"name"`
	Description          string        `yaml:"description,omitempty"`
	EIN                  string        `yaml:"ein,omitempty"`
	RegisteredAddress    string        `yaml:"registered_address,omitempty"`
	RegisteredPhone      string        `yaml:"registered_phone,omitempty"`
	StateOfIncorporation string        `yaml:"state_of_incorporation,omitempty"`
	Status               string        `yaml:"status,omitempty"`
	DateOfIncorporation  string        `yaml:"date_of_incorporation,omitempty"`
	Accounts             []AccountData `yaml:"accounts,omitempty"`
	Tasks                []TaskData    `yaml:"tasks,omitempty"`
}

type AccountData struct {
	AccountName   string  `yaml:"account_name"`
	AccountNumber string  `yaml:"account_number,omitempty"`
	AccountType   string  `yaml:"account_type,omitempty"`
	Balance       float64 `yaml:"balance,omitempty"`
	Username      string  `yaml:"username,omitempty"`
	Password      string  `yaml:"password,omitempty"`
	AccountURL    string  `yaml:"account_url,omitempty"`
	Notes         string  `yaml:"notes,omitempty"`
}

type TaskData struct {
	Title          string   `yaml:"title"`
	Description    string   `yaml:"description,omitempty"`
	Status         string   `yaml:"status,omitempty"`
	Priority       string   `yaml:"priority,omitempty"`
	Category       string   `yaml:"category,omitempty"`
	AssignedTo     string   `yaml:"assigned_to,omitempty"`
	DueDate        string   `yaml:"due_date,omitempty"`
	StartDate      string   `yaml:"start_date,omitempty"`
	EstimatedHours *float64 `yaml:"estimated_hours,omitempty"`
	DependsOn      []string `yaml:"depends_on,omitempty"` // titles of tasks of the same entity listed earlier
}

type EntitiesFile struct {
	Entities []EntityData `yaml:"entities"`
}

func main() {
	log.Println("Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	sealer, err := credentials.NewSealer(cfg.CredentialsSecret)
	if err != nil {
		log.Fatalf("Failed to initialize credential sealer: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	// Load data from YAML files
	if err := loadDataFromYAMLFiles(db, sealer, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("Initial data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Suppress GORM logs including SQL queries and "record not found"
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, sealer *credentials.Sealer, dataDir string) error {
	entities, err := loadEntities(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load entities: %w", err)
	}

	entityCreated, accountCreated, taskCreated := 0, 0, 0
	for _, entityData := range entities {
		err := db.Transaction(func(tx *gorm.DB) error {
			entity, created, err := createEntity(tx, entityData)
			if err != nil {
				return err
			}
			if !created {
				return nil
			}
			entityCreated++

			for _, accountData := range entityData.Accounts {
				if err := createAccount(tx, sealer, entity.ID, accountData); err != nil {
					return fmt.Errorf("failed to create account %s: %w", accountData.AccountName, err)
				}
				accountCreated++
			}

			taskIDs := make(map[string]uint)
			for _, taskData := range entityData.Tasks {
				task, err := createTask(tx, entity.ID, taskData, taskIDs)
				if err != nil {
					return fmt.Errorf("failed to create task %s: %w", taskData.Title, err)
				}
				taskIDs[taskData.Title] = task.ID
				taskCreated++
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to create entity %s: %w", entityData.Name, err)
		}
	}

	log.Printf("Entities: %d created, %d total", entityCreated, len(entities))
	log.Printf("Accounts: %d created", accountCreated)
	log.Printf("Tasks: %d created", taskCreated)
	return nil
}

func loadEntities(dataDir string) ([]EntityData, error) {
	var allEntities []EntityData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "entities") {
			var file EntitiesFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			allEntities = append(allEntities, file.Entities...)
		}
		return nil
	})

	return allEntities, err
}

// createEntity inserts the entity unless one with the same name exists; the
// children of an existing entity are left alone.
func createEntity(db *gorm.DB, entityData EntityData) (*models.Entity, bool, error) {
	var entity models.Entity
	err := db.Where("name = ?", entityData.Name).First(&entity).Error
	if err == nil {
		return &entity, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to query entity: %w", err)
	}

	incorporated, err := optionalDate("date_of_incorporation", entityData.DateOfIncorporation)
	if err != nil {
		return nil, false, err
	}

	entity = models.Entity{
		Name:                 entityData.Name,
		Description:          optional(entityData.Description),
		EIN:                  optional(entityData.EIN),
		RegisteredAddress:    optional(entityData.RegisteredAddress),
		RegisteredPhone:      optional(entityData.RegisteredPhone),
		StateOfIncorporation: optional(entityData.StateOfIncorporation),
		Status:               withDefault(entityData.Status, models.DefaultEntityStatus),
		DateOfIncorporation:  incorporated,
	}
	if err := db.Create(&entity).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create entity: %w", err)
	}
	return &entity, true, nil
}

func createAccount(db *gorm.DB, sealer *credentials.Sealer, entityID uint, accountData AccountData) error {
	account := models.Account{
		EntityID:      entityID,
		AccountName:   accountData.AccountName,
		AccountNumber: optional(accountData.AccountNumber),
		AccountType:   optional(accountData.AccountType),
		Balance:       accountData.Balance,
		Username:      optional(accountData.Username),
		AccountURL:    optional(accountData.AccountURL),
		Notes:         optional(accountData.Notes),
	}
	if accountData.Password != "" {
		sealed, err := sealer.Seal(accountData.Password)
		if err != nil {
			return err
		}
		account.Password = &sealed
	}
	return db.Create(&account).Error
}

func createTask(db *gorm.DB, entityID uint, taskData TaskData, known map[string]uint) (*models.Task, error) {
	due, err := optionalDate("due_date", taskData.DueDate)
	if err != nil {
		return nil, err
	}
	start, err := optionalDate("start_date", taskData.StartDate)
	if err != nil {
		return nil, err
	}

	deps := types.Dependencies{}
	for _, title := range taskData.DependsOn {
		id, ok := known[title]
		if !ok {
			return nil, fmt.Errorf("unknown dependency %q (list it before the dependent task)", title)
		}
		deps = append(deps, id)
	}

	task := models.Task{
		EntityID:       entityID,
		Title:          taskData.Title,
		Description:    optional(taskData.Description),
		Status:         withDefault(taskData.Status, models.DefaultTaskStatus),
		Priority:       optional(taskData.Priority),
		Category:       optional(taskData.Category),
		AssignedTo:     optional(taskData.AssignedTo),
		DueDate:        due,
		StartDate:      start,
		EstimatedHours: taskData.EstimatedHours,
		Dependencies:   deps,
	}
	if err := db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func withDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func optionalDate(field, value string) (*types.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := types.ParseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
