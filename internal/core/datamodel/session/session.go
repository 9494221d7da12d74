package session

import "time"

// Session is the single-row credential record. ID is always 1: the local
// store mirrors at most one authenticated session, like the browser's
// token key.
type Session struct {
	ID        int64     `gorm:"primaryKey"`
	Token     string    `gorm:"column:token;not null"`
	UserID    int64     `gorm:"column:user_id;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Session) TableName() string {
	return "sessions"
}

// UserSnapshot caches the merged profile (user + annual leave) as the
// backend last returned it. Payload is the JSON document as received;
// the client never edits it field by field.
type UserSnapshot struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex;not null"`
	Payload   []byte    `gorm:"column:payload;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (UserSnapshot) TableName() string {
	return "user_snapshots"
}

// ChatMessage is one persisted transcript row.
type ChatMessage struct {
	ID        string    `gorm:"primaryKey"`
	Type      string    `gorm:"column:type;not null"`
	Content   string    `gorm:"column:content;not null"`
	Sources   []byte    `gorm:"column:sources"`
	Timestamp time.Time `gorm:"column:timestamp;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
