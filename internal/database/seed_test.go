package database

import (
	"testing"

	"github.com/mkotelnikov/tasktree-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskAssignee{},
	)
	require.NoError(t, err)

	SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSeed_PopulatesEmptyDatabase(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, Seed(GetDB()))

	assert.EqualValues(t, 3, count(t, db, &models.User{}))
	assert.EqualValues(t, 7, count(t, db, &models.Task{}))
	assert.EqualValues(t, 3, count(t, db, &models.TaskAssignee{}))

	var roots []models.Task
	require.NoError(t, db.Where("parent_id IS NULL").Find(&roots).Error)
	assert.Len(t, roots, 3)

	var nested models.Task
	require.NoError(t, db.Where("title = ?", "Sub for Sub Task 1").First(&nested).Error)
	require.NotNil(t, nested.ParentID)
}

func TestSeed_IsIdempotent(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	assert.EqualValues(t, 3, count(t, db, &models.User{}))
	assert.EqualValues(t, 7, count(t, db, &models.Task{}))
	assert.EqualValues(t, 3, count(t, db, &models.TaskAssignee{}))
}

func TestSeed_SkipsWhenUsersExist(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, db.Create(&models.User{
		Name:    "Existing",
		Surname: "User",
		Email:   "existing@example.com",
	}).Error)

	require.NoError(t, Seed(db))

	assert.EqualValues(t, 1, count(t, db, &models.User{}))
	assert.EqualValues(t, 0, count(t, db, &models.Task{}))
}
