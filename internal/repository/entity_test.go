package repository

import (
	"context"
	"testing"

	"entity-tracker-backend/internal/database/models"
	"entity-tracker-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// EntityRepositoryTestSuite tests the EntityRepository
type EntityRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *EntityRepository
	accounts      *AccountRepository
	tasks         *TaskRepository
	documents     *DocumentRepository
	factories     *testutils.FactorySet
	ctx           context.Context
}

// SetupSuite runs before all tests in the suite
func (suite *EntityRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	db := suite.baseTestSuite.DB
	suite.repo = NewEntityRepository(db)
	suite.accounts = NewAccountRepository(db)
	suite.tasks = NewTaskRepository(db)
	suite.documents = NewDocumentRepository(db)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

// TearDownSuite runs after all tests in the suite
func (suite *EntityRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *EntityRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

func (suite *EntityRepositoryTestSuite) createEntity(name string) *models.Entity {
	entity := suite.factories.Entity.WithName(name)
	suite.Require().NoError(suite.repo.Create(suite.ctx, entity))
	return entity
}

// TestCreateAndGetRoundTrip tests that every stored field is read back unchanged
func (suite *EntityRepositoryTestSuite) TestCreateAndGetRoundTrip() {
	entity := suite.factories.Entity.Create()

	err := suite.repo.Create(suite.ctx, entity)

	suite.Require().NoError(err)
	suite.Equal(uint(1), entity.ID)
	suite.NotZero(entity.CreatedAt)

	got, err := suite.repo.GetByID(suite.ctx, entity.ID)
	suite.Require().NoError(err)
	suite.Equal(entity.Name, got.Name)
	suite.Equal(*entity.EIN, *got.EIN)
	suite.Equal(*entity.StateOfIncorporation, *got.StateOfIncorporation)
	suite.Equal("active", got.Status)
	suite.Require().NotNil(got.DateOfIncorporation)
	suite.Equal("2019-04-02", got.DateOfIncorporation.String())
}

// TestGetByIDNotFound tests retrieving a non-existent entity
func (suite *EntityRepositoryTestSuite) TestGetByIDNotFound() {
	entity, err := suite.repo.GetByID(suite.ctx, 404)

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
	suite.Nil(entity)
}

// TestGetAllInCreationOrder tests listing entities
func (suite *EntityRepositoryTestSuite) TestGetAllInCreationOrder() {
	suite.createEntity("First")
	suite.createEntity("Second")
	suite.createEntity("Third")

	entities, err := suite.repo.GetAll(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(entities, 3)
	suite.Equal("First", entities[0].Name)
	suite.Equal("Third", entities[2].Name)
}

// TestGetWithChildren tests that children are loaded in ascending id order
func (suite *EntityRepositoryTestSuite) TestGetWithChildren() {
	entity := suite.createEntity("Acme LLC")
	other := suite.createEntity("Other Co")

	for _, title := range []string{"one", "two", "three"} {
		suite.Require().NoError(suite.tasks.Create(suite.ctx, suite.factories.Task.WithTitle(entity.ID, title)))
	}
	suite.Require().NoError(suite.tasks.Create(suite.ctx, suite.factories.Task.WithTitle(other.ID, "elsewhere")))
	suite.Require().NoError(suite.accounts.Create(suite.ctx, suite.factories.Account.Create(entity.ID)))

	got, err := suite.repo.GetWithChildren(suite.ctx, entity.ID)

	suite.Require().NoError(err)
	suite.Len(got.Accounts, 1)
	suite.Empty(got.Documents)
	suite.Require().Len(got.Tasks, 3)
	suite.Equal("one", got.Tasks[0].Title)
	suite.Equal("three", got.Tasks[2].Title)
}

// TestUpdateAppliesOnlyGivenColumns tests partial updates, including clearing to NULL
func (suite *EntityRepositoryTestSuite) TestUpdateAppliesOnlyGivenColumns() {
	entity := suite.createEntity("Acme LLC")

	updated, err := suite.repo.Update(suite.ctx, entity.ID, map[string]interface{}{
		"status": "inactive",
		"ein":    nil,
	})

	suite.Require().NoError(err)
	suite.Equal("inactive", updated.Status)
	suite.Nil(updated.EIN)
	suite.Equal("Acme LLC", updated.Name)
	suite.Require().NotNil(updated.RegisteredAddress)
	suite.Equal("1 Main St, Dover, DE", *updated.RegisteredAddress)
	suite.Equal(entity.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

// TestUpdateClearsDate tests that a cleared date is nil in the returned row
func (suite *EntityRepositoryTestSuite) TestUpdateClearsDate() {
	entity := suite.createEntity("Acme LLC")
	suite.Require().NotNil(entity.DateOfIncorporation)

	updated, err := suite.repo.Update(suite.ctx, entity.ID, map[string]interface{}{
		"date_of_incorporation": nil,
	})

	suite.Require().NoError(err)
	suite.Nil(updated.DateOfIncorporation)

	stored, err := suite.repo.GetByID(suite.ctx, entity.ID)
	suite.Require().NoError(err)
	suite.Nil(stored.DateOfIncorporation)
}

// TestUpdateEmptyIsNoop tests an empty update on an existing row
func (suite *EntityRepositoryTestSuite) TestUpdateEmptyIsNoop() {
	entity := suite.createEntity("Acme LLC")

	updated, err := suite.repo.Update(suite.ctx, entity.ID, map[string]interface{}{})

	suite.Require().NoError(err)
	suite.Equal("Acme LLC", updated.Name)
}

// TestUpdateNotFound tests updating a non-existent entity
func (suite *EntityRepositoryTestSuite) TestUpdateNotFound() {
	_, err := suite.repo.Update(suite.ctx, 99, map[string]interface{}{"name": "x"})

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestDeleteCascades tests that deleting an entity removes every owned row
func (suite *EntityRepositoryTestSuite) TestDeleteCascades() {
	entity := suite.createEntity("Acme LLC")
	keep := suite.createEntity("Keep Inc")

	suite.Require().NoError(suite.accounts.Create(suite.ctx, suite.factories.Account.Create(entity.ID)))
	suite.Require().NoError(suite.accounts.Create(suite.ctx, suite.factories.Account.Create(entity.ID)))
	suite.Require().NoError(suite.tasks.Create(suite.ctx, suite.factories.Task.Create(entity.ID)))
	doc := suite.factories.Document.Create(entity.ID)
	suite.Require().NoError(suite.documents.Create(suite.ctx, doc))
	suite.Require().NoError(suite.tasks.Create(suite.ctx, suite.factories.Task.Create(keep.ID)))

	locators, err := suite.repo.Delete(suite.ctx, entity.ID)

	suite.Require().NoError(err)
	suite.Equal([]string{*doc.FilePath}, locators)

	db := suite.baseTestSuite.DB
	for _, model := range []interface{}{&models.Account{}, &models.Task{}, &models.Document{}} {
		var count int64
		suite.Require().NoError(db.Model(model).Where("entity_id = ?", entity.ID).Count(&count).Error)
		suite.Zero(count)
	}

	_, err = suite.repo.GetByID(suite.ctx, entity.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	kept, err := suite.tasks.GetByEntityID(suite.ctx, keep.ID)
	suite.Require().NoError(err)
	suite.Len(kept, 1)
}

// TestDeleteNotFound tests deleting a non-existent entity
func (suite *EntityRepositoryTestSuite) TestDeleteNotFound() {
	_, err := suite.repo.Delete(suite.ctx, 12345)

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestEntityRepositoryTestSuite runs the test suite
func TestEntityRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(EntityRepositoryTestSuite))
}
