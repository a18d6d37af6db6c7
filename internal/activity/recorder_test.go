package activity_test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/activity"
	"github.com/tracksure/tracksure/internal/auth"
	"github.com/tracksure/tracksure/internal/core/events"
)

type mockActivityRepo struct {
	logs      []activity.ActivityLog
	insertErr error
}

func (m *mockActivityRepo) Insert(log *activity.ActivityLog) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockActivityRepo) ListByTenant(tenantID int64, limit int) ([]activity.ActivityLog, error) {
	var out []activity.ActivityLog
	for _, log := range m.logs {
		if log.TenantID != tenantID {
			continue
		}
		out = append(out, log)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type allowAllGuard struct{}

func (allowAllGuard) CheckPermission(userID, tenantID int64, permission string) (*auth.User, error) {
	return &auth.User{ID: userID, TenantID: tenantID}, nil
}

type denyGuard struct{}

func (denyGuard) CheckPermission(userID, tenantID int64, permission string) (*auth.User, error) {
	return nil, apperrors.ErrPermissionDenied
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ = Describe("Recorder", func() {
	var (
		repo *mockActivityRepo
		bus  *events.EventBus
	)

	BeforeEach(func() {
		repo = &mockActivityRepo{}
		bus = events.NewEventBus(discardLogger())
		activity.RegisterEventHandlers(bus, repo, discardLogger())
	})

	It("appends one row per audit event", func() {
		event := events.NewAuditEvent(10, 1, "create", "product", 77, "Widget")
		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		Expect(repo.logs).To(HaveLen(1))
		Expect(repo.logs[0].TenantID).To(Equal(int64(10)))
		Expect(repo.logs[0].UserID).To(Equal(int64(1)))
		Expect(repo.logs[0].Action).To(Equal("create"))
		Expect(repo.logs[0].Entity).To(Equal("product"))
		Expect(repo.logs[0].EntityID).To(Equal(int64(77)))
		Expect(repo.logs[0].Detail).To(Equal("Widget"))
	})

	It("swallows insert failures so the mutation is unaffected", func() {
		repo.insertErr = errors.New("connection refused")

		event := events.NewAuditEvent(10, 1, "delete", "category", 3, "")
		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())
		Expect(repo.logs).To(BeEmpty())
	})
})

var _ = Describe("Service", func() {
	var repo *mockActivityRepo

	BeforeEach(func() {
		repo = &mockActivityRepo{logs: []activity.ActivityLog{
			{TenantID: 10, UserID: 1, Action: "create", Entity: "product"},
			{TenantID: 10, UserID: 2, Action: "update", Entity: "product"},
			{TenantID: 20, UserID: 9, Action: "create", Entity: "category"},
		}}
	})

	It("returns only the tenant's rows", func() {
		service := activity.NewService(repo, allowAllGuard{}, discardLogger())

		logs, err := service.List(1, 10, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(logs).To(HaveLen(2))
		for _, log := range logs {
			Expect(log.TenantID).To(Equal(int64(10)))
		}
	})

	It("caps the limit", func() {
		service := activity.NewService(repo, allowAllGuard{}, discardLogger())

		logs, err := service.List(1, 10, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(logs).To(HaveLen(1))
	})

	It("propagates guard denial untouched", func() {
		service := activity.NewService(repo, denyGuard{}, discardLogger())

		_, err := service.List(1, 10, 0)
		Expect(err).To(MatchError("Permission denied"))
	})
})
