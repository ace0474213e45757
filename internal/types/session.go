package types

import "time"

// Role names who authored a message.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Session is an anonymous chat identity keyed by a client-generated anon id.
// Timestamps are Unix milliseconds.
type Session struct {
	ID         int64  `json:"id"`
	AnonID     string `json:"anon_id"`
	CreatedAt  int64  `json:"created_at"`
	LastSeenAt int64  `json:"last_seen_at"`
}

// Message is one persisted chat turn.
type Message struct {
	ID        int64  `json:"id"`
	SessionID int64  `json:"session_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// MoodLog is one journal entry.
type MoodLog struct {
	ID        int64  `json:"id"`
	SessionID int64  `json:"session_id"`
	Mood      string `json:"mood"`
	Note      string `json:"note"`
	TS        int64  `json:"ts"`
}

// User is a registered account.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	Image         *string   `json:"image"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserUpdate carries optional profile changes. A nil field is left untouched;
// ClearImage sets the image to NULL.
type UserUpdate struct {
	Name       *string
	Image      *string
	ClearImage bool
}
