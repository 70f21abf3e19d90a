package testutils

import (
	"fmt"
	"log"
	"sync"
	"testing"

	"entity-tracker-backend/internal/config"
	"entity-tracker-backend/internal/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ------------------------------
// Shared, process-wide resources
// ------------------------------
var (
	sharedOnce    sync.Once
	sharedInitErr error
	sharedDB      *gorm.DB
	sharedConfig  *config.Config
)

// managedTables lists the aggregate tables, children first
var managedTables = []string{"document", "task", "account", "entity"}

// ------------------------------
// Base suite types
// ------------------------------
type BaseTestSuite struct {
	suite.Suite
	DB     *gorm.DB
	Config *config.Config
}

// ------------------------------
// Public helpers
// ------------------------------

// SetupTestSuite initializes (once) the shared test database and returns a
// per-suite wrapper. The backend is SQLite unless built with the integration
// tag, which starts Postgres in Docker.
func SetupTestSuite(t *testing.T) *BaseTestSuite {
	sharedOnce.Do(func() {
		sharedDB, sharedConfig, sharedInitErr = openSharedDB()
	})
	if sharedInitErr != nil {
		t.Fatalf("failed to initialize shared test database: %v", sharedInitErr)
	}
	return &BaseTestSuite{
		DB:     sharedDB,
		Config: sharedConfig,
	}
}

// CleanupSharedContainer tears down shared resources when the whole test run ends.
// This is automatically called by TestMain in main_test.go
func CleanupSharedContainer() {
	if sharedDB != nil {
		_ = database.Close(sharedDB)
		sharedDB = nil
	}
	releaseSharedDB()
}

// NewSQLiteDB opens a private, migrated in-memory database that lives as long as t
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Initialize(dsn, &database.Options{LogLevel: logger.Silent})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// TestConfig returns a configuration suitable for wiring routes in tests
func TestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Environment:       "test",
		Port:              "8000",
		LogLevel:          "error",
		DatabaseURL:       "sqlite://:memory:",
		AllowedOrigins:    []string{"http://localhost:3000"},
		StorageBackend:    "local",
		UploadDir:         t.TempDir(),
		MaxUploadBytes:    1 << 20,
		CredentialsSecret: "test-credentials-secret",
	}
}

// ------------------------------
// Suite lifecycle hooks
// ------------------------------

func (s *BaseTestSuite) SetupTest()    { s.CleanTestDB() }
func (s *BaseTestSuite) TearDownTest() { s.CleanTestDB() }

// TeardownTestSuite is per *suite* (not process). We only clean DB here;
// the shared database persists across suites for speed.
func (s *BaseTestSuite) TeardownTestSuite() { s.CleanTestDB() }

// CleanTestDB empties the aggregate tables and resets their id sequences
func (s *BaseTestSuite) CleanTestDB() {
	if s.DB == nil {
		return
	}
	m := s.DB.Migrator()
	if s.DB.Dialector.Name() == "postgres" {
		for _, t := range managedTables {
			if m.HasTable(t) {
				s.DB.Exec(`TRUNCATE TABLE "` + t + `" RESTART IDENTITY CASCADE;`)
			}
		}
		return
	}

	for _, t := range managedTables {
		if m.HasTable(t) {
			s.DB.Exec(`DELETE FROM "` + t + `";`)
		}
	}
	if m.HasTable("sqlite_sequence") {
		s.DB.Exec(`DELETE FROM sqlite_sequence;`)
	}
}

func logSharedDB(kind, where string) {
	log.Printf("Shared %s test database ready on %s", kind, where)
}
