package dashboard

import (
	"log/slog"
	"sync"

	apperrors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/auth"
)

type Service struct {
	repo   RepositoryAPI
	guard  PermissionGuardAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, guard PermissionGuardAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, guard: guard, logger: logger}
}

// Summary fans the seven counter queries out concurrently; the first error
// wins and the partial result is discarded.
func (s *Service) Summary(actorID, tenantID int64) (*Summary, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermDashboardRead); err != nil {
		return nil, err
	}

	summary := &Summary{}
	counters := []struct {
		dest  *int64
		fetch func() (int64, error)
	}{
		{&summary.Products, func() (int64, error) { return s.repo.CountProducts(tenantID) }},
		{&summary.Categories, func() (int64, error) { return s.repo.CountCategories(tenantID) }},
		{&summary.Statuses, func() (int64, error) { return s.repo.CountStatuses(tenantID) }},
		{&summary.Users, func() (int64, error) { return s.repo.CountUsers(tenantID) }},
		{&summary.Documents, func() (int64, error) { return s.repo.CountDocuments(tenantID) }},
		{&summary.QRCodes, func() (int64, error) { return s.repo.CountQRCodes(tenantID) }},
		{&summary.UnreadNotifications, func() (int64, error) { return s.repo.CountUnreadNotifications(actorID) }},
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, counter := range counters {
		wg.Add(1)
		go func(dest *int64, fetch func() (int64, error)) {
			defer wg.Done()
			count, err := fetch()
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			*dest = count
		}(counter.dest, counter.fetch)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, apperrors.NewInternalError("failed to build dashboard summary", firstErr)
	}
	return summary, nil
}
