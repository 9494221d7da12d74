package chat

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/kwyt0087/AI-employee-takes-leave/internal"
	datamodel "github.com/kwyt0087/AI-employee-takes-leave/internal/core/datamodel/session"
)

func TestChat(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Chat Module Suite")
}

type mockAPI struct {
	sendResult    *SendResult
	sendErr       error
	onSend        func()
	history       []HistoryEntry
	historyErr    error
	clearErr      error
	clearCalls    int
	lastSend      SendDTO
	lastClearUser int64
}

func (m *mockAPI) Send(ctx context.Context, dto SendDTO) (*SendResult, error) {
	m.lastSend = dto
	if m.onSend != nil {
		m.onSend()
	}
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	return m.sendResult, nil
}

func (m *mockAPI) GetHistory(ctx context.Context, userID int64) ([]HistoryEntry, error) {
	if m.historyErr != nil {
		return nil, m.historyErr
	}
	return m.history, nil
}

func (m *mockAPI) ClearHistory(ctx context.Context, userID int64) error {
	m.clearCalls++
	m.lastClearUser = userID
	return m.clearErr
}

type mockTranscript struct {
	records    []datamodel.ChatMessage
	saveCalls  int
	loadErr    error
	clearCalls int
}

func (m *mockTranscript) SaveTranscript(msgs []datamodel.ChatMessage) error {
	m.saveCalls++
	m.records = make([]datamodel.ChatMessage, len(msgs))
	copy(m.records, msgs)
	return nil
}

func (m *mockTranscript) Transcript() ([]datamodel.ChatMessage, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.records, nil
}

func (m *mockTranscript) ClearTranscript() error {
	m.clearCalls++
	m.records = nil
	return nil
}

var _ = ginkgo.Describe("ChatService", func() {
	var (
		api        *mockAPI
		transcript *mockTranscript
		service    *Service
	)

	ginkgo.BeforeEach(func() {
		api = &mockAPI{
			sendResult: &SendResult{
				Response:        "you have 7 days left",
				SourceDocuments: []SourceDocument{{Title: "Leave policy"}},
			},
		}
		transcript = &mockTranscript{}
		service = NewService(api, transcript, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	ginkgo.Describe("Send", func() {
		ginkgo.It("appends the user turn before the call completes", func() {
			var turnsDuringCall []Message
			api.onSend = func() { turnsDuringCall = service.Messages() }

			_, err := service.Send(context.Background(), 7, "how many days left?")

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(turnsDuringCall).To(gomega.HaveLen(1))
			gomega.Expect(turnsDuringCall[0].Type).To(gomega.Equal(MessageTypeUser))
			gomega.Expect(turnsDuringCall[0].Content).To(gomega.Equal("how many days left?"))
		})

		ginkgo.It("follows with an AI turn carrying the sources on success", func() {
			reply, err := service.Send(context.Background(), 7, "how many days left?")

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(reply.Type).To(gomega.Equal(MessageTypeAI))
			gomega.Expect(reply.Content).To(gomega.Equal("you have 7 days left"))
			gomega.Expect(reply.SourceDocuments).To(gomega.HaveLen(1))

			msgs := service.Messages()
			gomega.Expect(msgs).To(gomega.HaveLen(2))
			gomega.Expect(msgs[0].ID).NotTo(gomega.Equal(msgs[1].ID))
			gomega.Expect(api.lastSend.UserID).To(gomega.Equal(int64(7)))
		})

		ginkgo.It("records an error turn and keeps the user turn on failure", func() {
			api.sendErr = internal.NewServerError()

			_, err := service.Send(context.Background(), 7, "how many days left?")

			gomega.Expect(err).To(gomega.HaveOccurred())
			msgs := service.Messages()
			gomega.Expect(msgs).To(gomega.HaveLen(2))
			gomega.Expect(msgs[0].Type).To(gomega.Equal(MessageTypeUser))
			gomega.Expect(msgs[1].Type).To(gomega.Equal(MessageTypeError))
			gomega.Expect(msgs[1].Content).To(gomega.Equal("could not send message"))
			gomega.Expect(service.Err()).To(gomega.Equal("could not send message"))
		})

		ginkgo.It("persists the transcript whether the call succeeds or fails", func() {
			_, err := service.Send(context.Background(), 7, "hello")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(transcript.saveCalls).To(gomega.Equal(1))
			gomega.Expect(transcript.records).To(gomega.HaveLen(2))
			gomega.Expect(transcript.records[1].Sources).NotTo(gomega.BeEmpty())

			api.sendErr = internal.NewNetworkError(context.DeadlineExceeded)
			_, err = service.Send(context.Background(), 7, "still there?")
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(transcript.saveCalls).To(gomega.Equal(2))
			gomega.Expect(transcript.records).To(gomega.HaveLen(4))
		})

		ginkgo.It("clears loading once the call finishes", func() {
			var loadingDuringCall bool
			api.onSend = func() { loadingDuringCall = service.Loading() }

			_, err := service.Send(context.Background(), 7, "hello")

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(loadingDuringCall).To(gomega.BeTrue())
			gomega.Expect(service.Loading()).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("FetchHistory", func() {
		ginkgo.It("expands server records into user and ai turn pairs", func() {
			api.history = []HistoryEntry{
				{ID: 1, Message: "first question", Response: "first answer", CreatedAt: "2024-04-01 09:30:00"},
				{ID: 2, Message: "second question", Response: "second answer", CreatedAt: "2024-04-01 09:31:00"},
			}

			msgs, err := service.FetchHistory(context.Background(), 7)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(msgs).To(gomega.HaveLen(4))
			gomega.Expect(msgs[0].Type).To(gomega.Equal(MessageTypeUser))
			gomega.Expect(msgs[0].Content).To(gomega.Equal("first question"))
			gomega.Expect(msgs[1].Type).To(gomega.Equal(MessageTypeAI))
			gomega.Expect(msgs[1].Content).To(gomega.Equal("first answer"))
			gomega.Expect(msgs[0].Timestamp).To(gomega.Equal(msgs[1].Timestamp))
			gomega.Expect(transcript.saveCalls).To(gomega.Equal(1))
		})

		ginkgo.It("replaces any local turns with the server history", func() {
			_, err := service.Send(context.Background(), 7, "local only")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			api.history = []HistoryEntry{
				{ID: 1, Message: "remote question", Response: "remote answer", CreatedAt: "2024-04-01 09:30:00"},
			}
			msgs, err := service.FetchHistory(context.Background(), 7)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(msgs).To(gomega.HaveLen(2))
			gomega.Expect(service.Messages()).To(gomega.HaveLen(2))
		})

		ginkgo.It("keeps the current transcript on failure", func() {
			api.historyErr = internal.NewServerError()

			_, err := service.FetchHistory(context.Background(), 7)

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(service.Err()).To(gomega.Equal("could not load chat history"))
			gomega.Expect(transcript.saveCalls).To(gomega.Equal(0))
		})
	})

	ginkgo.Describe("Clear", func() {
		ginkgo.BeforeEach(func() {
			_, err := service.Send(context.Background(), 7, "hello")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("clears locally only when no user is given", func() {
			gomega.Expect(service.Clear(context.Background(), 0)).To(gomega.Succeed())

			gomega.Expect(api.clearCalls).To(gomega.Equal(0))
			gomega.Expect(transcript.clearCalls).To(gomega.Equal(1))
			gomega.Expect(service.Messages()).To(gomega.BeEmpty())
		})

		ginkgo.It("clears the server history first for a signed-in user", func() {
			gomega.Expect(service.Clear(context.Background(), 7)).To(gomega.Succeed())

			gomega.Expect(api.clearCalls).To(gomega.Equal(1))
			gomega.Expect(api.lastClearUser).To(gomega.Equal(int64(7)))
			gomega.Expect(transcript.clearCalls).To(gomega.Equal(1))
		})

		ginkgo.It("keeps the local transcript when the server clear fails", func() {
			api.clearErr = internal.NewServerError()

			err := service.Clear(context.Background(), 7)

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(transcript.clearCalls).To(gomega.Equal(0))
			gomega.Expect(service.Messages()).NotTo(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("Load", func() {
		ginkgo.It("restores persisted turns including sources", func() {
			transcript.records = []datamodel.ChatMessage{
				{
					ID:        "msg-1",
					Type:      string(MessageTypeUser),
					Content:   "hello",
					Timestamp: time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC),
				},
				{
					ID:        "msg-2",
					Type:      string(MessageTypeAI),
					Content:   "hi",
					Timestamp: time.Date(2024, 4, 1, 9, 30, 5, 0, time.UTC),
					Sources:   []byte(`[{"title":"Leave policy"}]`),
				},
			}

			service.Load()

			msgs := service.Messages()
			gomega.Expect(msgs).To(gomega.HaveLen(2))
			gomega.Expect(msgs[1].SourceDocuments).To(gomega.HaveLen(1))
			gomega.Expect(msgs[1].SourceDocuments[0].Title).To(gomega.Equal("Leave policy"))
		})

		ginkgo.It("leaves the transcript empty when the store is unreadable", func() {
			transcript.loadErr = internal.NewUnexpectedError(0, "corrupt store")

			service.Load()

			gomega.Expect(service.Messages()).To(gomega.BeEmpty())
		})
	})
})
