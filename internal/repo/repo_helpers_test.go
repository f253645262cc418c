package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-flashcards-api/internal/core/database"
	"go-flashcards-api/internal/domain"
)

// newTestDB 每个测试独立的内存库；MaxOpenConns=1 避免连接池各拿一个空库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Folder{},
		&domain.CardSet{},
		&domain.Tag{},
		&domain.Card{},
	))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	t.Helper()
	u, err := NewUserRepo(db).Create(context.Background(), email, "password-123")
	require.NoError(t, err)
	return u
}

func seedFolder(t *testing.T, db *gorm.DB, ownerID uint, name string, public bool) *domain.Folder {
	t.Helper()
	f, err := NewFolderRepo(db).Create(context.Background(), ownerID, name, public)
	require.NoError(t, err)
	return f
}

func seedSet(t *testing.T, db *gorm.DB, folderID, ownerID uint, name string, tags ...string) *domain.CardSet {
	t.Helper()
	s, err := NewCardSetRepo(db).CreateInFolder(context.Background(), folderID, ownerID, domain.CardSetCreate{
		Name: name,
		Tags: tags,
	})
	require.NoError(t, err)
	return s
}

func seedCard(t *testing.T, db *gorm.DB, setID uint, term string) *domain.Card {
	t.Helper()
	c, err := NewCardRepo(db).Create(context.Background(), setID, domain.CardCreate{
		Term:       term,
		Definition: term + " definition",
	})
	require.NoError(t, err)
	return c
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
