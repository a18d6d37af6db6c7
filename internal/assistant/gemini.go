package assistant

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiModel adapts the Gemini SDK to the ModelAPI the service consumes.
type GeminiModel struct {
	client    *genai.Client
	modelName string
}

func NewGeminiModel(ctx context.Context, apiKey, modelName string) (*GeminiModel, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiModel{client: client, modelName: modelName}, nil
}

func (m *GeminiModel) Close() error {
	return m.client.Close()
}

func (m *GeminiModel) StartSession(ctx context.Context, history []Message, tools []ToolSpec) (ModelSessionAPI, error) {
	model := m.client.GenerativeModel(m.modelName)
	model.Tools = []*genai.Tool{{FunctionDeclarations: toDeclarations(tools)}}

	session := model.StartChat()
	session.History = toHistory(history)

	return &geminiSession{session: session}, nil
}

type geminiSession struct {
	session *genai.ChatSession
}

func (s *geminiSession) Send(ctx context.Context, text string) (*ModelTurn, error) {
	resp, err := s.session.SendMessage(ctx, genai.Text(text))
	if err != nil {
		return nil, err
	}
	return parseResponse(resp)
}

func (s *geminiSession) SendToolResults(ctx context.Context, results []ToolResult) (*ModelTurn, error) {
	parts := make([]genai.Part, 0, len(results))
	for _, result := range results {
		parts = append(parts, genai.FunctionResponse{
			Name:     result.Name,
			Response: result.Response,
		})
	}

	resp, err := s.session.SendMessage(ctx, parts...)
	if err != nil {
		return nil, err
	}
	return parseResponse(resp)
}

func parseResponse(resp *genai.GenerateContentResponse) (*ModelTurn, error) {
	turn := &ModelTurn{}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return turn, nil
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			turn.Text += string(p)
		case genai.FunctionCall:
			turn.Calls = append(turn.Calls, ToolCall{Name: p.Name, Args: p.Args})
		}
	}
	return turn, nil
}

func toDeclarations(tools []ToolSpec) []*genai.FunctionDeclaration {
	declarations := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		declaration := &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
		}
		if len(tool.Parameters) > 0 {
			properties := make(map[string]*genai.Schema, len(tool.Parameters))
			for name, param := range tool.Parameters {
				properties[name] = &genai.Schema{
					Type:        toGenaiType(param.Type),
					Description: param.Description,
				}
			}
			declaration.Parameters = &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   tool.Required,
			}
		}
		declarations = append(declarations, declaration)
	}
	return declarations
}

func toGenaiType(t string) genai.Type {
	switch t {
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}

func toHistory(messages []Message) []*genai.Content {
	history := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return history
}
