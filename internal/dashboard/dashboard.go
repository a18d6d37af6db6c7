package dashboard

import "github.com/tracksure/tracksure/internal/auth"

// Summary is the per-tenant counter snapshot shown on the landing page.
type Summary struct {
	Products            int64 `json:"products"`
	Categories          int64 `json:"categories"`
	Statuses            int64 `json:"statuses"`
	Users               int64 `json:"users"`
	Documents           int64 `json:"documents"`
	QRCodes             int64 `json:"qr_codes"`
	UnreadNotifications int64 `json:"unread_notifications"`
}

type ServiceAPI interface {
	Summary(actorID, tenantID int64) (*Summary, error)
}

type RepositoryAPI interface {
	CountProducts(tenantID int64) (int64, error)
	CountCategories(tenantID int64) (int64, error)
	CountStatuses(tenantID int64) (int64, error)
	CountUsers(tenantID int64) (int64, error)
	CountDocuments(tenantID int64) (int64, error)
	CountQRCodes(tenantID int64) (int64, error)
	CountUnreadNotifications(userID int64) (int64, error)
}

type PermissionGuardAPI interface {
	CheckPermission(userID, tenantID int64, permission string) (*auth.User, error)
}
