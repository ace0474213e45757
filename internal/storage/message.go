package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/easeaico/zetazen/internal/chat"
	"github.com/easeaico/zetazen/internal/types"
)

// messageModel maps to the messages table.
type messageModel struct {
	ID        int64
	SessionID int64
	Role      string
	Content   string
	Timestamp int64
}

func (messageModel) TableName() string {
	return "messages"
}

type messageRepo struct {
	db *gorm.DB
}

// NewMessageRepo returns a chat.MessageRepo.
func NewMessageRepo(db *gorm.DB) chat.MessageRepo {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, msg *types.Message) error {
	if msg == nil {
		return fmt.Errorf("message cannot be nil")
	}
	record := messageModel{
		SessionID: msg.SessionID,
		Role:      msg.Role,
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	msg.ID = record.ID
	return nil
}

func (r *messageRepo) List(ctx context.Context, sessionID int64, before *int64, limit int) ([]types.Message, error) {
	query := r.db.WithContext(ctx).Where("session_id = ?", sessionID)
	if before != nil {
		query = query.Where("timestamp < ?", *before)
	}

	var records []messageModel
	if err := query.Order("timestamp ASC, id ASC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messagesFromModels(records), nil
}

func (r *messageRepo) Recent(ctx context.Context, sessionID int64, limit int) ([]types.Message, error) {
	var records []messageModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent messages: %w", err)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return messagesFromModels(records), nil
}

func messagesFromModels(records []messageModel) []types.Message {
	result := make([]types.Message, 0, len(records))
	for _, record := range records {
		result = append(result, types.Message{
			ID:        record.ID,
			SessionID: record.SessionID,
			Role:      record.Role,
			Content:   record.Content,
			Timestamp: record.Timestamp,
		})
	}
	return result
}
