package main

import (
	"testing"

	"entity-tracker-backend/internal/credentials"
	"entity-tracker-backend/internal/database/models"
	"entity-tracker-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func counts(t *testing.T, db *gorm.DB) map[string]int64 {
	t.Helper()
	out := make(map[string]int64)
	for name, model := range map[string]interface{}{
		"entity": &models.Entity{}, "account": &models.Account{}, "task": &models.Task{},
	} {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		out[name] = n
	}
	return out
}

func TestLoadDataFromYAMLFilesIsIdempotent(t *testing.T) {
	db := testutils.NewSQLiteDB(t)
	sealer, err := credentials.NewSealer("seed-test-secret")
	require.NoError(t, err)

	require.NoError(t, loadDataFromYAMLFiles(db, sealer, "data"))
	first := counts(t, db)
	assert.Equal(t, int64(2), first["entity"])
	assert.Equal(t, int64(2), first["account"])
	assert.Equal(t, int64(4), first["task"])

	require.NoError(t, loadDataFromYAMLFiles(db, sealer, "data"))
	assert.Equal(t, first, counts(t, db))
}

func TestLoadDataFromYAMLFilesSealsPasswordsAndLinksDependencies(t *testing.T) {
	db := testutils.NewSQLiteDB(t)
	sealer, err := credentials.NewSealer("seed-test-secret")
	require.NoError(t, err)
	require.NoError(t, loadDataFromYAMLFiles(db, sealer, "data"))

	var account models.Account
	require.NoError(t, db.Where("account_name = ?", "Operating").First(&account).Error)
	require.NotNil(t, account.Password)
	assert.True(t, credentials.IsSealed(*account.Password))
	plain, err := sealer.Open(*account.Password)
	require.NoError(t, err)
	assert.Equal(t, "change-me-on-first-login", plain)

	var gather, file models.Task
	require.NoError(t, db.Where("title = ?", "Gather annual financials").First(&gather).Error)
	require.NoError(t, db.Where("title = ?", "File annual report").First(&file).Error)
	assert.Equal(t, []uint{gather.ID}, []uint(file.Dependencies))

	var ventures models.Entity
	require.NoError(t, db.Where("name = ?", "Acme Ventures Inc").First(&ventures).Error)
	assert.Equal(t, "inactive", ventures.Status)
	require.NotNil(t, ventures.DateOfIncorporation)
	assert.Equal(t, "2021-09-01", ventures.DateOfIncorporation.String())
}

func TestCreateTaskRejectsUnknownDependency(t *testing.T) {
	db := testutils.NewSQLiteDB(t)
	entity, created, err := createEntity(db, EntityData{Name: "Solo"})
	require.NoError(t, err)
	require.True(t, created)

	_, err = createTask(db, entity.ID, TaskData{Title: "Late", DependsOn: []string{"Missing"}}, map[string]uint{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing")
}
