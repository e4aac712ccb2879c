// Package testutil builds throwaway SQLite databases and fixtures for tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated database living in t.TempDir().
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "faithconnect.db")
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func strPtr(s string) *string { return &s }

// CreateWorshiper inserts an active worshiper.
func CreateWorshiper(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	return createUser(t, db, name, models.RoleWorshiper)
}

// CreateLeader inserts an active leader.
func CreateLeader(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	return createUser(t, db, name, models.RoleLeader)
}

func createUser(t *testing.T, db *gorm.DB, name string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{
		Email:    name + "@example.org",
		Password: "$2a$10$placeholderplaceholderplaceholderplaceholderplacehol",
		Name:     name,
		Role:     role,
		Faith:    strPtr("Christianity"),
		IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreatePost inserts a published, active post for leader.
func CreatePost(t *testing.T, db *gorm.DB, leader *models.User, text string, createdAt time.Time) *models.Post {
	t.Helper()
	p := &models.Post{
		LeaderID:    leader.ID,
		ContentText: text,
		Tag:         models.DefaultPostTag,
		Intent:      models.DefaultPostIntent,
		IsPublished: true,
		IsActive:    true,
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// Follow inserts a follow edge directly.
func Follow(t *testing.T, db *gorm.DB, worshiper, leader *models.User) {
	t.Helper()
	require.NoError(t, db.Create(&models.Follow{WorshiperID: worshiper.ID, LeaderID: leader.ID}).Error)
}
