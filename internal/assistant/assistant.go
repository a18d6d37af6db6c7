package assistant

import (
	"context"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Chat struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	TenantID int64  `json:"tenant_id"`
	Title    string `json:"title"`
}

type Message struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chat_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type RepositoryAPI interface {
	CreateChat(userID, tenantID int64, title string) (*Chat, error)
	ListChats(userID, tenantID int64) ([]Chat, error)
	GetChat(chatID int64) (*Chat, error)
	ListMessages(chatID int64) ([]Message, error)
	// AppendTurn persists the user message and the assistant reply together.
	AppendTurn(chatID int64, userContent, assistantContent string) error
}

// ToolCall is a function invocation the model requests.
type ToolCall struct {
	Name string
	Args map[string]interface{}
}

// ToolResult feeds a tool's output back into the model.
type ToolResult struct {
	Name     string
	Response map[string]interface{}
}

// ModelTurn is one model response: either final text, or tool calls that
// need executing before the conversation can continue.
type ModelTurn struct {
	Text  string
	Calls []ToolCall
}

type ModelSessionAPI interface {
	Send(ctx context.Context, text string) (*ModelTurn, error)
	SendToolResults(ctx context.Context, results []ToolResult) (*ModelTurn, error)
}

type ModelAPI interface {
	StartSession(ctx context.Context, history []Message, tools []ToolSpec) (ModelSessionAPI, error)
}

// ToolContext carries the authenticated identity into tool execution; the
// model never chooses the tenant or user it acts as.
type ToolContext struct {
	UserID   int64
	TenantID int64
}

// ToolSpec declares one callable tool: its schema for the model and its
// server-side implementation.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]ParamSpec
	Required    []string
	Execute     func(ctx context.Context, tc ToolContext, args map[string]interface{}) (map[string]interface{}, error)
}

type ParamSpec struct {
	Type        string
	Description string
}

type ServiceAPI interface {
	CreateChat(actorID, tenantID int64, title string) (*Chat, error)
	ListChats(actorID, tenantID int64) ([]Chat, error)
	ListMessages(actorID, tenantID, chatID int64) ([]Message, error)
	SendMessage(ctx context.Context, actorID, tenantID, chatID int64, content string) (*Message, error)
}
