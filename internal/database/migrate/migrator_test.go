package migrate

import (
	"fmt"
	"testing"

	"entity-tracker-backend/internal/database/models"
	apperrors "entity-tracker-backend/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// legacySchema is the first released layout, before any ledger step
var legacySchema = []string{
	`CREATE TABLE entity (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(100) NOT NULL,
		description TEXT,
		created_at DATETIME
	)`,
	`CREATE TABLE account (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entity_id INTEGER NOT NULL REFERENCES entity(id),
		account_name VARCHAR(100) NOT NULL,
		account_number VARCHAR(50),
		balance FLOAT DEFAULT 0,
		account_type VARCHAR(50),
		created_at DATETIME
	)`,
	`CREATE TABLE task (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entity_id INTEGER NOT NULL REFERENCES entity(id),
		title VARCHAR(200) NOT NULL,
		description TEXT,
		status VARCHAR(50) DEFAULT 'pending',
		priority VARCHAR(50),
		due_date DATE,
		created_at DATETIME
	)`,
	`CREATE TABLE document (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entity_id INTEGER NOT NULL REFERENCES entity(id),
		title VARCHAR(200) NOT NULL,
		file_path VARCHAR(500),
		document_type VARCHAR(100),
		uploaded_at DATETIME
	)`,
}

// MigratorTestSuite runs the migrator against throwaway SQLite databases
type MigratorTestSuite struct {
	suite.Suite
	db *gorm.DB
}

func (suite *MigratorTestSuite) SetupTest() {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)
	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	suite.db = db
}

func (suite *MigratorTestSuite) TearDownTest() {
	if sqlDB, err := suite.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (suite *MigratorTestSuite) createLegacy() {
	for _, ddl := range legacySchema {
		suite.Require().NoError(suite.db.Exec(ddl).Error)
	}
}

func (suite *MigratorTestSuite) columns(table string) map[string]bool {
	cols, err := suite.db.Migrator().ColumnTypes(table)
	suite.Require().NoError(err)
	set := make(map[string]bool)
	for _, c := range cols {
		set[c.Name()] = true
	}
	return set
}

func (suite *MigratorTestSuite) TestRunOnEmptyDatabaseCreatesAllTables() {
	report, err := New(suite.db).Run()
	suite.Require().NoError(err)

	suite.Equal([]string{"entity", "account", "task", "document"}, report.Created)
	suite.Empty(report.Applied)
	for _, table := range report.Created {
		suite.True(suite.db.Migrator().HasTable(table), table)
	}
	suite.True(suite.db.Migrator().HasTable(&LedgerEntry{}))
}

func (suite *MigratorTestSuite) TestCreatedSchemaEnforcesForeignKeys() {
	_, err := New(suite.db).Run()
	suite.Require().NoError(err)

	err = suite.db.Create(&models.Account{EntityID: 999, AccountName: "Orphan"}).Error
	suite.Error(err)
}

func (suite *MigratorTestSuite) TestRunRepairsLegacySchemaAndKeepsRows() {
	suite.createLegacy()
	suite.Require().NoError(suite.db.Exec(`INSERT INTO entity (name, description, created_at) VALUES ('Acme LLC', 'ops', CURRENT_TIMESTAMP)`).Error)
	suite.Require().NoError(suite.db.Exec(`INSERT INTO account (entity_id, account_name, balance, created_at) VALUES (1, 'Main', 12.5, CURRENT_TIMESTAMP)`).Error)

	report, err := New(suite.db).Run()
	suite.Require().NoError(err)

	suite.Empty(report.Created)
	suite.Len(report.Applied, len(DefaultSteps))

	entityCols := suite.columns("entity")
	for _, col := range []string{"ein", "registered_address", "registered_phone", "state_of_incorporation", "status", "date_of_incorporation"} {
		suite.True(entityCols[col], col)
	}
	suite.True(suite.columns("account")["password"])
	suite.True(suite.columns("task")["dependencies"])
	suite.True(suite.columns("document")["file_size"])

	var entity models.Entity
	suite.Require().NoError(suite.db.First(&entity, 1).Error)
	suite.Equal("Acme LLC", entity.Name)
	suite.Equal(models.DefaultEntityStatus, entity.Status)

	var account models.Account
	suite.Require().NoError(suite.db.First(&account, 1).Error)
	suite.Equal(12.5, account.Balance)
	suite.Nil(account.Username)

	var ledger []LedgerEntry
	suite.Require().NoError(suite.db.Order("version").Find(&ledger).Error)
	suite.Len(ledger, len(DefaultSteps))
	suite.Equal("account", ledger[0].Table)
	suite.Equal("username", ledger[0].Column)
}

func (suite *MigratorTestSuite) TestSecondRunIsNoop() {
	suite.createLegacy()

	first, err := New(suite.db).Run()
	suite.Require().NoError(err)
	suite.True(first.Changed())

	second, err := New(suite.db).Run()
	suite.Require().NoError(err)
	suite.False(second.Changed())
	suite.Empty(second.Applied)
	suite.Empty(second.Created)
}

func (suite *MigratorTestSuite) TestRunCreatesOnlyMissingTables() {
	suite.Require().NoError(suite.db.Exec(legacySchema[0]).Error)

	report, err := New(suite.db).Run()
	suite.Require().NoError(err)

	suite.Equal([]string{"account", "task", "document"}, report.Created)
	suite.Len(report.Applied, 6)
	for _, step := range report.Applied {
		suite.Equal("entity", step.Table)
	}
}

func (suite *MigratorTestSuite) TestRunAddsModelColumnsOutsideLedger() {
	suite.createLegacy()
	suite.Require().NoError(suite.db.Exec(`ALTER TABLE document DROP COLUMN document_type`).Error)

	report, err := New(suite.db).Run()
	suite.Require().NoError(err)

	suite.Contains(report.Repaired, "document.document_type")
	suite.True(suite.columns("document")["document_type"])
}

func (suite *MigratorTestSuite) TestPlanIsDryRun() {
	suite.createLegacy()

	plan, err := New(suite.db).Plan()
	suite.Require().NoError(err)
	suite.False(plan.Empty())
	suite.Len(plan.Steps, len(DefaultSteps))
	suite.Empty(plan.Missing)

	suite.False(suite.columns("entity")["ein"])
	suite.False(suite.db.Migrator().HasTable(&LedgerEntry{}))

	_, err = New(suite.db).Run()
	suite.Require().NoError(err)

	plan, err = New(suite.db).Plan()
	suite.Require().NoError(err)
	suite.True(plan.Empty())
}

func (suite *MigratorTestSuite) TestPlanReportsMissingTables() {
	plan, err := New(suite.db).Plan()
	suite.Require().NoError(err)
	suite.Equal([]string{"entity", "account", "task", "document"}, plan.Missing)
}

func (suite *MigratorTestSuite) TestFailedRepairRollsBackTable() {
	suite.createLegacy()
	steps := []Step{
		{Version: 1, Table: "entity", Column: "ein", Type: "VARCHAR(50)"},
		{Version: 2, Table: "entity", Column: "broken", Type: "VARCHAR(50) DEFAULT ("},
	}

	_, err := New(suite.db, WithSteps(steps), WithModels(&models.Entity{})).Run()
	suite.Require().Error(err)
	suite.True(apperrors.IsMigration(err))
	suite.Contains(err.Error(), "entity")
	suite.Contains(err.Error(), "still missing:")
	suite.Contains(err.Error(), "broken")

	// ein was added in the same transaction as the failing step
	suite.False(suite.columns("entity")["ein"])

	var count int64
	suite.Require().NoError(suite.db.Model(&LedgerEntry{}).Count(&count).Error)
	suite.Zero(count)
}

func TestMigratorTestSuite(t *testing.T) {
	suite.Run(t, new(MigratorTestSuite))
}
