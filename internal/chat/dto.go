package chat

import "time"

// MessageType tags who a transcript turn belongs to.
type MessageType string

const (
	MessageTypeUser  MessageType = "user"
	MessageTypeAI    MessageType = "ai"
	MessageTypeError MessageType = "error"
)

// SourceDocument points at a policy document the assistant cited.
type SourceDocument struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}

// Message is one transcript turn. The list is append-only and persisted
// locally; the user can clear it.
type Message struct {
	ID              string           `json:"id"`
	Type            MessageType      `json:"type"`
	Content         string           `json:"content"`
	Timestamp       time.Time        `json:"timestamp"`
	SourceDocuments []SourceDocument `json:"source_documents,omitempty"`
}

// SendDTO is the outbound chat payload.
type SendDTO struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

// SendResult is the assistant's reply envelope.
type SendResult struct {
	Response        string           `json:"response"`
	Timestamp       string           `json:"timestamp"`
	SourceDocuments []SourceDocument `json:"source_documents,omitempty"`
}

// HistoryEntry is one server-side chat record: the user's message and the
// assistant's reply stored as a pair.
type HistoryEntry struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	Response  string `json:"response"`
	CreatedAt string `json:"created_at"`
}
