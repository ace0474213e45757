package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/easeaico/zetazen/internal/mood"
	"github.com/easeaico/zetazen/internal/types"
)

// moodLogModel maps to the mood_logs table.
type moodLogModel struct {
	ID        int64
	SessionID int64
	Mood      string
	Note      string
	TS        int64 `gorm:"column:ts"`
}

func (moodLogModel) TableName() string {
	return "mood_logs"
}

type moodLogRepo struct {
	db *gorm.DB
}

// NewMoodLogRepo returns a mood.Repo.
func NewMoodLogRepo(db *gorm.DB) mood.Repo {
	return &moodLogRepo{db: db}
}

func (r *moodLogRepo) Create(ctx context.Context, log *types.MoodLog) error {
	if log == nil {
		return fmt.Errorf("mood log cannot be nil")
	}
	record := moodLogModel{
		SessionID: log.SessionID,
		Mood:      log.Mood,
		Note:      log.Note,
		TS:        log.TS,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert mood log: %w", err)
	}
	log.ID = record.ID
	return nil
}

func (r *moodLogRepo) ListSince(ctx context.Context, sessionID int64, since int64) ([]types.MoodLog, error) {
	query := r.db.WithContext(ctx).Where("session_id = ?", sessionID)
	if since > 0 {
		query = query.Where("ts >= ?", since)
	}

	var records []moodLogModel
	if err := query.Order("ts DESC, id DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list mood logs: %w", err)
	}

	result := make([]types.MoodLog, 0, len(records))
	for _, record := range records {
		result = append(result, types.MoodLog{
			ID:        record.ID,
			SessionID: record.SessionID,
			Mood:      record.Mood,
			Note:      record.Note,
			TS:        record.TS,
		})
	}
	return result, nil
}

func (r *moodLogRepo) DeleteAll(ctx context.Context, sessionID int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&moodLogModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete mood logs: %w", res.Error)
	}
	return res.RowsAffected, nil
}
