package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tracksure/tracksure/internal/assistant"
	chatmodel "github.com/tracksure/tracksure/internal/core/datamodel/chat"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) CreateChat(userID, tenantID int64, title string) (*assistant.Chat, error) {
	row := chatmodel.Chat{
		UserID:   userID,
		TenantID: tenantID,
		Title:    title,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &assistant.Chat{ID: row.ID, UserID: row.UserID, TenantID: row.TenantID, Title: row.Title}, nil
}

func (r *ChatRepository) ListChats(userID, tenantID int64) ([]assistant.Chat, error) {
	var rows []chatmodel.Chat
	err := r.db.Where("user_id = ? AND tenant_id = ?", userID, tenantID).
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	chats := make([]assistant.Chat, 0, len(rows))
	for i := range rows {
		chats = append(chats, assistant.Chat{
			ID:       rows[i].ID,
			UserID:   rows[i].UserID,
			TenantID: rows[i].TenantID,
			Title:    rows[i].Title,
		})
	}
	return chats, nil
}

func (r *ChatRepository) GetChat(chatID int64) (*assistant.Chat, error) {
	var row chatmodel.Chat
	err := r.db.Where("id = ?", chatID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assistant.Chat{ID: row.ID, UserID: row.UserID, TenantID: row.TenantID, Title: row.Title}, nil
}

func (r *ChatRepository) ListMessages(chatID int64) ([]assistant.Message, error) {
	var rows []chatmodel.Message
	err := r.db.Where("chat_id = ?", chatID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	messages := make([]assistant.Message, 0, len(rows))
	for i := range rows {
		messages = append(messages, assistant.Message{
			ID:        rows[i].ID,
			ChatID:    rows[i].ChatID,
			Role:      rows[i].Role,
			Content:   rows[i].Content,
			CreatedAt: rows[i].CreatedAt,
		})
	}
	return messages, nil
}

func (r *ChatRepository) AppendTurn(chatID int64, userContent, assistantContent string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		userRow := chatmodel.Message{ChatID: chatID, Role: assistant.RoleUser, Content: userContent}
		if err := tx.Create(&userRow).Error; err != nil {
			return err
		}
		assistantRow := chatmodel.Message{ChatID: chatID, Role: assistant.RoleAssistant, Content: assistantContent}
		return tx.Create(&assistantRow).Error
	})
}
