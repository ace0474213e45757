// Package storage implements the repositories on PostgreSQL through gorm.
package storage

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/easeaico/zetazen/internal/auth"
	"github.com/easeaico/zetazen/internal/chat"
	"github.com/easeaico/zetazen/internal/mood"
	"github.com/easeaico/zetazen/internal/session"
)

// Store holds the DB handle and repositories.
type Store struct {
	db       *gorm.DB
	Sessions session.Repo
	Messages chat.MessageRepo
	MoodLogs mood.Repo
	Users    auth.UserRepo
}

// NewStore opens PostgreSQL and builds the repositories.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewStoreFromDB(db), nil
}

// NewStoreFromDB wraps an already opened gorm handle.
func NewStoreFromDB(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Sessions: NewSessionRepo(db),
		Messages: NewMessageRepo(db),
		MoodLogs: NewMoodLogRepo(db),
		Users:    NewUserRepo(db),
	}
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() {
	if s.db == nil {
		return
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
