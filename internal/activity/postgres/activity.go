package postgres

import (
	"gorm.io/gorm"

	"github.com/tracksure/tracksure/internal/activity"
	activitymodel "github.com/tracksure/tracksure/internal/core/datamodel/activity"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Insert(log *activity.ActivityLog) error {
	row := activitymodel.ActivityLog{
		TenantID: log.TenantID,
		UserID:   log.UserID,
		Action:   log.Action,
		Entity:   log.Entity,
		EntityID: log.EntityID,
		Detail:   log.Detail,
	}
	return r.db.Create(&row).Error
}

type activityRow struct {
	activitymodel.ActivityLog
	UserName string `gorm:"column:user_name"`
}

func (r *ActivityRepository) ListByTenant(tenantID int64, limit int) ([]activity.ActivityLog, error) {
	var rows []activityRow
	err := r.db.Table("activity_logs").
		Select("activity_logs.*, users.name AS user_name").
		Joins("LEFT JOIN users ON users.id = activity_logs.user_id").
		Where("activity_logs.tenant_id = ?", tenantID).
		Order("activity_logs.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	logs := make([]activity.ActivityLog, 0, len(rows))
	for i := range rows {
		logs = append(logs, activity.ActivityLog{
			ID:        rows[i].ID,
			TenantID:  rows[i].TenantID,
			UserID:    rows[i].UserID,
			UserName:  rows[i].UserName,
			Action:    rows[i].Action,
			Entity:    rows[i].Entity,
			EntityID:  rows[i].EntityID,
			Detail:    rows[i].Detail,
			CreatedAt: rows[i].CreatedAt,
		})
	}
	return logs, nil
}
