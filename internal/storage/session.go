package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/easeaico/zetazen/internal/session"
	"github.com/easeaico/zetazen/internal/types"
)

// sessionModel maps to the sessions table.
type sessionModel struct {
	ID         int64
	AnonID     string
	CreatedAt  int64 `gorm:"autoCreateTime:milli"`
	LastSeenAt int64
}

func (sessionModel) TableName() string {
	return "sessions"
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo returns a session.Repo.
func NewSessionRepo(db *gorm.DB) session.Repo {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) GetByAnonID(ctx context.Context, anonID string) (*types.Session, error) {
	var record sessionModel
	if err := r.db.WithContext(ctx).Where("anon_id = ?", anonID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	result := sessionFromModel(record)
	return &result, nil
}

func (r *sessionRepo) Upsert(ctx context.Context, anonID string, now int64) (*types.Session, error) {
	record := sessionModel{AnonID: anonID, CreatedAt: now, LastSeenAt: now}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "anon_id"}},
			DoUpdates: clause.Assignments(map[string]any{"last_seen_at": now}),
		}).
		Create(&record).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert session: %w", err)
	}
	return r.GetByAnonID(ctx, anonID)
}

func (r *sessionRepo) Touch(ctx context.Context, id int64, now int64) error {
	res := r.db.WithContext(ctx).
		Model(&sessionModel{}).
		Where("id = ?", id).
		Update("last_seen_at", now)
	if res.Error != nil {
		return fmt.Errorf("failed to touch session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return session.ErrNotFound
	}
	return nil
}

func sessionFromModel(record sessionModel) types.Session {
	return types.Session{
		ID:         record.ID,
		AnonID:     record.AnonID,
		CreatedAt:  record.CreatedAt,
		LastSeenAt: record.LastSeenAt,
	}
}

// CountIdleSessions counts sessions last seen before the cutoff (Unix ms).
func (s *Store) CountIdleSessions(ctx context.Context, before int64) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&sessionModel{}).Where("last_seen_at < ?", before).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count idle sessions: %w", err)
	}
	return n, nil
}

// PruneIdleSessions deletes sessions last seen before the cutoff. Messages and
// mood logs go with them through ON DELETE CASCADE.
func (s *Store) PruneIdleSessions(ctx context.Context, before int64) (int64, error) {
	res := s.db.WithContext(ctx).Where("last_seen_at < ?", before).Delete(&sessionModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune idle sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
