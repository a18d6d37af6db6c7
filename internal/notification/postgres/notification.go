package postgres

import (
	"encoding/json"

	"gorm.io/gorm"

	notificationmodel "github.com/tracksure/tracksure/internal/core/datamodel/notification"
	usermodel "github.com/tracksure/tracksure/internal/core/datamodel/user"
	domain "github.com/tracksure/tracksure/internal/notification"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) ListByUser(userID int64) ([]domain.Notification, error) {
	var rows []notificationmodel.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(rows)
}

func (r *NotificationRepository) GetByIDs(ids []int64) ([]domain.Notification, error) {
	var rows []notificationmodel.Notification
	if err := r.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainList(rows)
}

func (r *NotificationRepository) Create(n *domain.Notification) error {
	tags, err := json.Marshal(n.Tags)
	if err != nil {
		return err
	}

	row := notificationmodel.Notification{
		UserID:      n.UserID,
		Title:       n.Title,
		Description: n.Description,
		Tags:        string(tags),
	}
	if err := r.db.Create(&row).Error; err != nil {
		return err
	}

	n.ID = row.ID
	n.CreatedAt = row.CreatedAt
	return nil
}

func (r *NotificationRepository) MarkRead(ids []int64) error {
	return r.db.Model(&notificationmodel.Notification{}).
		Where("id IN ?", ids).
		Update("read", true).Error
}

func (r *NotificationRepository) UserExists(userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&usermodel.User{}).
		Where("id = ? AND is_deleted = ?", userID, false).
		Count(&count).Error
	return count > 0, err
}

func (r *NotificationRepository) CountUnread(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&notificationmodel.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func toDomainList(rows []notificationmodel.Notification) ([]domain.Notification, error) {
	list := make([]domain.Notification, 0, len(rows))
	for i := range rows {
		n := domain.Notification{
			ID:          rows[i].ID,
			UserID:      rows[i].UserID,
			Title:       rows[i].Title,
			Description: rows[i].Description,
			Read:        rows[i].Read,
			CreatedAt:   rows[i].CreatedAt,
		}
		if rows[i].Tags != "" {
			if err := json.Unmarshal([]byte(rows[i].Tags), &n.Tags); err != nil {
				return nil, err
			}
		}
		list = append(list, n)
	}
	return list, nil
}
