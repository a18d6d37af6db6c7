package assistant_test

import (
	"context"
	"io"
	"log/slog"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/assistant"
)

type persistedTurn struct {
	userContent      string
	assistantContent string
}

type mockChatRepo struct {
	chats    map[int64]*assistant.Chat
	messages map[int64][]assistant.Message
	turns    []persistedTurn
	nextID   int64
}

func newMockChatRepo() *mockChatRepo {
	return &mockChatRepo{
		chats:    map[int64]*assistant.Chat{},
		messages: map[int64][]assistant.Message{},
		nextID:   1,
	}
}

func (m *mockChatRepo) CreateChat(userID, tenantID int64, title string) (*assistant.Chat, error) {
	chat := &assistant.Chat{ID: m.nextID, UserID: userID, TenantID: tenantID, Title: title}
	m.chats[m.nextID] = chat
	m.nextID++
	return chat, nil
}

func (m *mockChatRepo) ListChats(userID, tenantID int64) ([]assistant.Chat, error) {
	var out []assistant.Chat
	for _, c := range m.chats {
		if c.UserID == userID && c.TenantID == tenantID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockChatRepo) GetChat(chatID int64) (*assistant.Chat, error) {
	return m.chats[chatID], nil
}

func (m *mockChatRepo) ListMessages(chatID int64) ([]assistant.Message, error) {
	return m.messages[chatID], nil
}

func (m *mockChatRepo) AppendTurn(chatID int64, userContent, assistantContent string) error {
	m.turns = append(m.turns, persistedTurn{userContent, assistantContent})
	m.messages[chatID] = append(m.messages[chatID],
		assistant.Message{ChatID: chatID, Role: assistant.RoleUser, Content: userContent},
		assistant.Message{ChatID: chatID, Role: assistant.RoleAssistant, Content: assistantContent},
	)
	return nil
}

// scriptedModel replays a fixed sequence of turns, recording what it was
// sent.
type scriptedModel struct {
	turns       []*assistant.ModelTurn
	sent        []string
	toolResults [][]assistant.ToolResult
	cursor      int
}

func (m *scriptedModel) StartSession(ctx context.Context, history []assistant.Message, tools []assistant.ToolSpec) (assistant.ModelSessionAPI, error) {
	return m, nil
}

func (m *scriptedModel) Send(ctx context.Context, text string) (*assistant.ModelTurn, error) {
	m.sent = append(m.sent, text)
	return m.next(), nil
}

func (m *scriptedModel) SendToolResults(ctx context.Context, results []assistant.ToolResult) (*assistant.ModelTurn, error) {
	m.toolResults = append(m.toolResults, results)
	return m.next(), nil
}

func (m *scriptedModel) next() *assistant.ModelTurn {
	if m.cursor >= len(m.turns) {
		return &assistant.ModelTurn{Calls: []assistant.ToolCall{{Name: "list_products"}}}
	}
	turn := m.turns[m.cursor]
	m.cursor++
	return turn
}

func echoTool(name string) assistant.ToolSpec {
	return assistant.ToolSpec{
		Name: name,
		Execute: func(ctx context.Context, tc assistant.ToolContext, args map[string]interface{}) (map[string]interface{}, error) {
			return map[string]interface{}{"tenant_id": tc.TenantID}, nil
		},
	}
}

var _ = Describe("Service", func() {
	var (
		repo  *mockChatRepo
		model *scriptedModel
		chat  *assistant.Chat
	)

	newService := func() *assistant.Service {
		return assistant.NewService(repo, model,
			[]assistant.ToolSpec{echoTool("list_products"), echoTool("create_product")},
			slog.New(slog.NewTextHandler(io.Discard, nil)))
	}

	BeforeEach(func() {
		repo = newMockChatRepo()
		model = &scriptedModel{}
		var err error
		service := newService()
		chat, err = service.CreateChat(1, 10, "help")
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("SendMessage", func() {
		It("persists exactly two messages per successful turn", func() {
			model.turns = []*assistant.ModelTurn{
				{Calls: []assistant.ToolCall{{Name: "list_products"}}},
				{Text: "You have 3 products."},
			}

			reply, err := newService().SendMessage(context.Background(), 1, 10, chat.ID, "what do I have?")
			Expect(err).NotTo(HaveOccurred())
			Expect(reply.Content).To(Equal("You have 3 products."))

			Expect(repo.turns).To(HaveLen(1))
			Expect(repo.turns[0].userContent).To(Equal("what do I have?"))
			Expect(repo.turns[0].assistantContent).To(Equal("You have 3 products."))

			messages, err := repo.ListMessages(chat.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(messages).To(HaveLen(2))
		})

		It("injects the session identity into tool execution", func() {
			model.turns = []*assistant.ModelTurn{
				{Calls: []assistant.ToolCall{{Name: "list_products"}}},
				{Text: "done"},
			}

			_, err := newService().SendMessage(context.Background(), 1, 10, chat.ID, "list")
			Expect(err).NotTo(HaveOccurred())

			Expect(model.toolResults).To(HaveLen(1))
			Expect(model.toolResults[0][0].Response["tenant_id"]).To(Equal(int64(10)))
		})

		It("stops after five tool rounds when the model never resolves", func() {
			// The scripted model keeps requesting tools forever.
			_, err := newService().SendMessage(context.Background(), 1, 10, chat.ID, "loop")

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(500))

			Expect(model.toolResults).To(HaveLen(5))
			Expect(repo.turns).To(BeEmpty())
		})

		It("feeds tool failures back to the model instead of aborting", func() {
			failing := assistant.ToolSpec{
				Name: "list_products",
				Execute: func(ctx context.Context, tc assistant.ToolContext, args map[string]interface{}) (map[string]interface{}, error) {
					return nil, internal.ErrPermissionDenied
				},
			}
			service := assistant.NewService(repo, model, []assistant.ToolSpec{failing},
				slog.New(slog.NewTextHandler(io.Discard, nil)))
			model.turns = []*assistant.ModelTurn{
				{Calls: []assistant.ToolCall{{Name: "list_products"}}},
				{Text: "I could not access your products."},
			}

			reply, err := service.SendMessage(context.Background(), 1, 10, chat.ID, "list")
			Expect(err).NotTo(HaveOccurred())
			Expect(reply.Content).To(Equal("I could not access your products."))
			Expect(model.toolResults[0][0].Response["error"]).To(Equal("Permission denied"))
		})

		It("rejects a chat belonging to another user or tenant", func() {
			model.turns = []*assistant.ModelTurn{{Text: "hi"}}

			_, err := newService().SendMessage(context.Background(), 2, 10, chat.ID, "hi")
			Expect(err).To(MatchError("Chat not found"))

			_, err = newService().SendMessage(context.Background(), 1, 20, chat.ID, "hi")
			Expect(err).To(MatchError("Chat not found"))
		})
	})
})

var _ = Describe("BuildTools", func() {
	It("registers no destructive capability", func() {
		tools := assistant.BuildTools(nil, nil, nil, nil)

		names := make([]string, 0, len(tools))
		for _, tool := range tools {
			names = append(names, tool.Name)
			Expect(strings.Contains(tool.Name, "delete")).To(BeFalse())
			Expect(strings.Contains(tool.Name, "remove")).To(BeFalse())
		}

		Expect(names).To(ConsistOf(
			"list_products",
			"create_product",
			"update_product",
			"list_categories",
			"create_category",
			"list_statuses",
			"list_notifications",
		))
	})
})
