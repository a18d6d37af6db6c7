package assistant

import (
	"context"
	"log/slog"

	apperrors "github.com/tracksure/tracksure/internal"
)

// maxToolRounds bounds the tool loop: one model turn plus at most five
// tool-execution round trips before the conversation must resolve to text.
const maxToolRounds = 5

type Service struct {
	repo   RepositoryAPI
	model  ModelAPI
	tools  []ToolSpec
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, model ModelAPI, tools []ToolSpec, logger *slog.Logger) *Service {
	return &Service{repo: repo, model: model, tools: tools, logger: logger}
}

func (s *Service) CreateChat(actorID, tenantID int64, title string) (*Chat, error) {
	if title == "" {
		title = "New chat"
	}
	chat, err := s.repo.CreateChat(actorID, tenantID, title)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create chat", err)
	}
	return chat, nil
}

func (s *Service) ListChats(actorID, tenantID int64) ([]Chat, error) {
	chats, err := s.repo.ListChats(actorID, tenantID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list chats", err)
	}
	return chats, nil
}

func (s *Service) ListMessages(actorID, tenantID, chatID int64) ([]Message, error) {
	if _, err := s.ownChat(actorID, tenantID, chatID); err != nil {
		return nil, err
	}

	messages, err := s.repo.ListMessages(chatID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list messages", err)
	}
	return messages, nil
}

// SendMessage runs one assistant turn: history in, bounded tool loop, final
// text out. Exactly two rows are persisted per successful turn, the user
// message and the assistant's final text.
func (s *Service) SendMessage(ctx context.Context, actorID, tenantID, chatID int64, content string) (*Message, error) {
	if content == "" {
		return nil, apperrors.NewValidationFieldError("content", "content is required", apperrors.ErrCodeMissingField)
	}

	if _, err := s.ownChat(actorID, tenantID, chatID); err != nil {
		return nil, err
	}

	history, err := s.repo.ListMessages(chatID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load history", err)
	}

	session, err := s.model.StartSession(ctx, history, s.tools)
	if err != nil {
		return nil, apperrors.NewInternalError("assistant is unavailable", err)
	}

	turn, err := session.Send(ctx, content)
	if err != nil {
		return nil, apperrors.NewInternalError("assistant is unavailable", err)
	}

	tc := ToolContext{UserID: actorID, TenantID: tenantID}
	for round := 0; len(turn.Calls) > 0; round++ {
		if round >= maxToolRounds {
			s.logger.Warn("tool loop bound reached", "chat_id", chatID, "rounds", round)
			return nil, apperrors.NewInternalError("assistant could not complete the request", nil)
		}

		results := make([]ToolResult, 0, len(turn.Calls))
		for _, call := range turn.Calls {
			results = append(results, s.executeTool(ctx, tc, call))
		}

		turn, err = session.SendToolResults(ctx, results)
		if err != nil {
			return nil, apperrors.NewInternalError("assistant is unavailable", err)
		}
	}

	if err := s.repo.AppendTurn(chatID, content, turn.Text); err != nil {
		return nil, apperrors.NewInternalError("failed to store messages", err)
	}

	return &Message{ChatID: chatID, Role: RoleAssistant, Content: turn.Text}, nil
}

// executeTool never fails the turn: errors come back to the model as a
// result payload it can explain to the user.
func (s *Service) executeTool(ctx context.Context, tc ToolContext, call ToolCall) ToolResult {
	for _, tool := range s.tools {
		if tool.Name != call.Name {
			continue
		}
		response, err := tool.Execute(ctx, tc, call.Args)
		if err != nil {
			s.logger.Warn("tool execution failed",
				"tool", call.Name,
				"error", err)
			return ToolResult{Name: call.Name, Response: map[string]interface{}{"error": err.Error()}}
		}
		return ToolResult{Name: call.Name, Response: response}
	}

	s.logger.Warn("model requested unknown tool", "tool", call.Name)
	return ToolResult{Name: call.Name, Response: map[string]interface{}{"error": "unknown tool"}}
}

func (s *Service) ownChat(actorID, tenantID, chatID int64) (*Chat, error) {
	chat, err := s.repo.GetChat(chatID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load chat", err)
	}
	if chat == nil || chat.UserID != actorID || chat.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError("Chat not found", apperrors.ErrCodeChatNotFound)
	}
	return chat, nil
}
