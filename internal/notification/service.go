package notification

import (
	"log/slog"

	apperrors "github.com/tracksure/tracksure/internal"
)

type Service struct {
	repo        RepositoryAPI
	broadcaster BroadcasterAPI
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, broadcaster BroadcasterAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, broadcaster: broadcaster, logger: logger}
}

// Add inserts an unread notification, then broadcasts the user's entire
// refreshed list so every connected client converges on the same state. The
// new row carries to_show inside that one broadcast only.
func (s *Service) Add(userID int64, title, description string, tags []string) (*Notification, error) {
	if title == "" {
		return nil, apperrors.NewValidationFieldError("title", "title is required", apperrors.ErrCodeMissingField)
	}

	exists, err := s.repo.UserExists(userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to verify user", err)
	}
	if !exists {
		return nil, apperrors.NewNotFoundError("User not found", apperrors.ErrCodeUserNotFound)
	}

	n := &Notification{
		UserID:      userID,
		Title:       title,
		Description: description,
		Tags:        tags,
	}
	if err := s.repo.Create(n); err != nil {
		return nil, apperrors.NewInternalError("failed to store notification", err)
	}

	list, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load notifications", err)
	}
	for i := range list {
		if list[i].ID == n.ID {
			list[i].ToShow = true
		}
	}

	s.broadcast(userID, list)
	return n, nil
}

func (s *Service) List(userID int64) ([]Notification, error) {
	list, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load notifications", err)
	}
	return list, nil
}

// UpdateRead flips the listed notifications to read. Every id must belong to
// the acting user or the whole batch is rejected.
func (s *Service) UpdateRead(actorID int64, ids []int64) error {
	if len(ids) == 0 {
		return apperrors.NewValidationFieldError("ids", "ids is required", apperrors.ErrCodeMissingField)
	}

	rows, err := s.repo.GetByIDs(ids)
	if err != nil {
		return apperrors.NewInternalError("failed to load notifications", err)
	}
	if len(rows) != len(ids) {
		return apperrors.ErrNotificationOwner
	}
	for _, n := range rows {
		if n.UserID != actorID {
			return apperrors.ErrNotificationOwner
		}
	}

	if err := s.repo.MarkRead(ids); err != nil {
		return apperrors.NewInternalError("failed to update notifications", err)
	}

	list, err := s.repo.ListByUser(actorID)
	if err != nil {
		return apperrors.NewInternalError("failed to load notifications", err)
	}
	s.broadcast(actorID, list)
	return nil
}

// broadcast failures never bubble up: the DB is the source of truth and
// clients resync over the list endpoint.
func (s *Service) broadcast(userID int64, list []Notification) {
	if err := s.broadcaster.BroadcastToUser(userID, Envelope{Type: "notification", Payload: list}); err != nil {
		s.logger.Warn("notification broadcast failed",
			"user_id", userID,
			"error", err)
	}
}
