package database

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cadastro/disciplinas/config"
	"github.com/cadastro/disciplinas/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.GetDefaultDatabaseConfig()
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "test.sqlite")
	db, err := InitDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB(db) })
	return db
}

func TestInitDBMigratesTables(t *testing.T) {
	db := openTestDB(t)

	assert.True(t, db.Migrator().HasTable("roles"))
	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasIndex(&model.User{}, "Username"))
}

func TestUniqueConstraints(t *testing.T) {
	db := openTestDB(t)

	role := &model.Role{Name: "1º semestre"}
	require.NoError(t, db.Create(role).Error)
	assert.Error(t, db.Create(&model.Role{Name: "1º semestre"}).Error)

	require.NoError(t, db.Create(&model.User{Username: "Calculo I", RoleId: role.Id}).Error)
	assert.Error(t, db.Create(&model.User{Username: "Calculo I", RoleId: role.Id}).Error)
}

func TestIsNotFound(t *testing.T) {
	db := openTestDB(t)

	err := db.Where("username = ?", "nope").First(&model.User{}).Error
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", err)))
	assert.False(t, IsNotFound(nil))
}

func TestInitDBRejectsInvalidConfig(t *testing.T) {
	cfg := config.GetDefaultDatabaseConfig()
	cfg.SQLite.Path = ""
	_, err := InitDB(cfg)
	assert.Error(t, err)
}

func TestCheckpoint(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, Checkpoint(db))
}
