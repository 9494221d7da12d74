package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kwyt0087/AI-employee-takes-leave/internal"
	datamodel "github.com/kwyt0087/AI-employee-takes-leave/internal/core/datamodel/session"
)

// TranscriptStore is the slice of the local store the chat container uses.
type TranscriptStore interface {
	SaveTranscript(msgs []datamodel.ChatMessage) error
	Transcript() ([]datamodel.ChatMessage, error)
	ClearTranscript() error
}

// Service is the chat state container. Send appends the user's turn before
// the call and an AI or error turn after it, so the transcript always
// records the attempt; the error turn is independent of the shared error
// field.
type Service struct {
	api        API
	transcript TranscriptStore
	logger     *slog.Logger

	mu       sync.Mutex
	messages []Message
	loading  bool
	err      string
}

func NewService(api API, transcript TranscriptStore, logger *slog.Logger) *Service {
	return &Service{api: api, transcript: transcript, logger: logger}
}

func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Service) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Messages returns the in-memory transcript.
func (s *Service) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Send relays one message to the assistant. The user turn is appended
// optimistically; on success an AI turn follows, on failure an error turn.
// Either way the transcript is persisted and the failure still propagates.
func (s *Service) Send(ctx context.Context, userID int64, content string) (*Message, error) {
	userTurn := Message{
		ID:        uuid.NewString(),
		Type:      MessageTypeUser,
		Content:   content,
		Timestamp: time.Now(),
	}
	s.append(userTurn)

	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		s.persist()
	}()

	result, err := s.api.Send(ctx, SendDTO{UserID: userID, Message: content})
	if err != nil {
		detail := internal.ErrorDetail(err, "could not send message")
		s.mu.Lock()
		s.err = detail
		s.mu.Unlock()

		s.append(Message{
			ID:        uuid.NewString(),
			Type:      MessageTypeError,
			Content:   detail,
			Timestamp: time.Now(),
		})
		return nil, err
	}

	aiTurn := Message{
		ID:              uuid.NewString(),
		Type:            MessageTypeAI,
		Content:         result.Response,
		Timestamp:       time.Now(),
		SourceDocuments: result.SourceDocuments,
	}
	s.append(aiTurn)
	return &aiTurn, nil
}

// FetchHistory replaces the transcript with the server-side history,
// expanded back into user/ai turn pairs, and persists it.
func (s *Service) FetchHistory(ctx context.Context, userID int64) ([]Message, error) {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	entries, err := s.api.GetHistory(ctx, userID)
	if err != nil {
		detail := internal.ErrorDetail(err, "could not load chat history")
		s.mu.Lock()
		s.err = detail
		s.mu.Unlock()
		return nil, err
	}

	msgs := make([]Message, 0, len(entries)*2)
	for _, entry := range entries {
		timestamp := parseHistoryTime(entry.CreatedAt)
		msgs = append(msgs,
			Message{
				ID:        uuid.NewString(),
				Type:      MessageTypeUser,
				Content:   entry.Message,
				Timestamp: timestamp,
			},
			Message{
				ID:        uuid.NewString(),
				Type:      MessageTypeAI,
				Content:   entry.Response,
				Timestamp: timestamp,
			},
		)
	}

	s.mu.Lock()
	s.messages = msgs
	s.mu.Unlock()
	s.persist()
	return msgs, nil
}

// Clear empties the in-memory and persisted transcript. When userID is
// non-zero the server-side history is cleared too.
func (s *Service) Clear(ctx context.Context, userID int64) error {
	if userID != 0 {
		if err := s.api.ClearHistory(ctx, userID); err != nil {
			detail := internal.ErrorDetail(err, "could not clear chat history")
			s.mu.Lock()
			s.err = detail
			s.mu.Unlock()
			return err
		}
	}

	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()
	return s.transcript.ClearTranscript()
}

// Load restores the persisted transcript; an unreadable transcript is
// dropped.
func (s *Service) Load() {
	records, err := s.transcript.Transcript()
	if err != nil {
		s.logger.Error("load chat transcript", "error", err)
		return
	}

	msgs := make([]Message, 0, len(records))
	for _, record := range records {
		msg := Message{
			ID:        record.ID,
			Type:      MessageType(record.Type),
			Content:   record.Content,
			Timestamp: record.Timestamp,
		}
		if len(record.Sources) > 0 {
			if err := json.Unmarshal(record.Sources, &msg.SourceDocuments); err != nil {
				s.logger.Error("parse chat message sources", "error", err, "message_id", record.ID)
			}
		}
		msgs = append(msgs, msg)
	}

	s.mu.Lock()
	s.messages = msgs
	s.mu.Unlock()
}

func (s *Service) append(msg Message) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
}

func (s *Service) persist() {
	s.mu.Lock()
	msgs := make([]Message, len(s.messages))
	copy(msgs, s.messages)
	s.mu.Unlock()

	records := make([]datamodel.ChatMessage, 0, len(msgs))
	for _, msg := range msgs {
		record := datamodel.ChatMessage{
			ID:        msg.ID,
			Type:      string(msg.Type),
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		}
		if len(msg.SourceDocuments) > 0 {
			if data, err := json.Marshal(msg.SourceDocuments); err == nil {
				record.Sources = data
			}
		}
		records = append(records, record)
	}

	if err := s.transcript.SaveTranscript(records); err != nil {
		s.logger.Error("persist chat transcript", "error", err)
	}
}

func parseHistoryTime(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		return time.Now()
	}
	return t
}
