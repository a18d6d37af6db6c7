package auth

import (
	"log/slog"

	apperrors "github.com/tracksure/tracksure/internal"
)

// GuardRepositoryAPI is the slice of the auth store the guard needs. A nil
// user with a nil error means the user does not exist or is deleted.
type GuardRepositoryAPI interface {
	GetUserWithRole(userID int64) (*User, error)
}

// Guard is the per-request permission check every protected operation runs
// before touching data. It re-queries the user and role on every call so a
// role edit or user removal takes effect immediately, not at next login.
type Guard struct {
	repo   GuardRepositoryAPI
	logger *slog.Logger
}

func NewGuard(repo GuardRepositoryAPI, logger *slog.Logger) *Guard {
	return &Guard{repo: repo, logger: logger}
}

// CheckPermission resolves the user, verifies tenant scope, then checks the
// permission string against the role. Any failure, including a store error,
// denies access.
func (g *Guard) CheckPermission(userID, tenantID int64, permission string) (*User, error) {
	user, err := g.repo.GetUserWithRole(userID)
	if err != nil {
		g.logger.Error("permission check failed to load user",
			"user_id", userID,
			"error", err)
		return nil, apperrors.ErrTenantScope.WithCause(err)
	}

	if user == nil || user.TenantID != tenantID {
		return nil, apperrors.ErrTenantScope
	}

	if !user.HasPermission(permission) {
		g.logger.Warn("permission denied",
			"user_id", userID,
			"tenant_id", tenantID,
			"permission", permission)
		return nil, apperrors.ErrPermissionDenied
	}

	return user, nil
}
