package notification_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tracksure/tracksure/internal/core/events"
	"github.com/tracksure/tracksure/internal/notification"
)

type mockNotificationRepo struct {
	rows   map[int64]*notification.Notification
	users  map[int64]bool
	nextID int64
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{
		rows:   map[int64]*notification.Notification{},
		users:  map[int64]bool{},
		nextID: 1,
	}
}

func (m *mockNotificationRepo) ListByUser(userID int64) ([]notification.Notification, error) {
	var out []notification.Notification
	for id := int64(1); id < m.nextID; id++ {
		if n, ok := m.rows[id]; ok && n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) GetByIDs(ids []int64) ([]notification.Notification, error) {
	var out []notification.Notification
	for _, id := range ids {
		if n, ok := m.rows[id]; ok {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) Create(n *notification.Notification) error {
	n.ID = m.nextID
	n.CreatedAt = time.Now()
	clone := *n
	m.rows[m.nextID] = &clone
	m.nextID++
	return nil
}

func (m *mockNotificationRepo) MarkRead(ids []int64) error {
	for _, id := range ids {
		m.rows[id].Read = true
	}
	return nil
}

func (m *mockNotificationRepo) UserExists(userID int64) (bool, error) {
	return m.users[userID], nil
}

func (m *mockNotificationRepo) CountUnread(userID int64) (int64, error) {
	var count int64
	for _, n := range m.rows {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

type recordingBroadcaster struct {
	frames []notification.Envelope
	byUser map[int64]int
}

func newRecordingBroadcaster() *recordingBroadcaster {
	return &recordingBroadcaster{byUser: map[int64]int{}}
}

func (b *recordingBroadcaster) BroadcastToUser(userID int64, payload interface{}) error {
	envelope := payload.(notification.Envelope)
	b.frames = append(b.frames, envelope)
	b.byUser[userID]++
	return nil
}

var _ = Describe("Service", func() {
	var (
		repo        *mockNotificationRepo
		broadcaster *recordingBroadcaster
		service     *notification.Service
	)

	BeforeEach(func() {
		repo = newMockNotificationRepo()
		repo.users[1] = true
		repo.users[2] = true
		broadcaster = newRecordingBroadcaster()
		service = notification.NewService(repo, broadcaster, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("Add", func() {
		It("stores unread and broadcasts the full list with the new row flagged", func() {
			_, err := service.Add(1, "First", "hello", []string{"product"})
			Expect(err).NotTo(HaveOccurred())
			created, err := service.Add(1, "Second", "world", nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(broadcaster.frames).To(HaveLen(2))
			last := broadcaster.frames[1]
			Expect(last.Type).To(Equal("notification"))
			Expect(last.Payload).To(HaveLen(2))

			var flagged int
			for _, n := range last.Payload {
				Expect(n.Read).To(BeFalse())
				if n.ToShow {
					flagged++
					Expect(n.ID).To(Equal(created.ID))
				}
			}
			Expect(flagged).To(Equal(1))
		})

		It("does not persist the to_show flag", func() {
			_, err := service.Add(1, "First", "", nil)
			Expect(err).NotTo(HaveOccurred())

			list, err := service.List(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(list[0].ToShow).To(BeFalse())
		})

		It("rejects an unknown recipient", func() {
			_, err := service.Add(99, "First", "", nil)
			Expect(err).To(MatchError("User not found"))
			Expect(broadcaster.frames).To(BeEmpty())
		})
	})

	Describe("UpdateRead", func() {
		It("completes the round-trip: unread on add, read after the flip", func() {
			created, err := service.Add(1, "First", "", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Read).To(BeFalse())

			Expect(service.UpdateRead(1, []int64{created.ID})).To(Succeed())

			list, err := service.List(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(list[0].Read).To(BeTrue())

			last := broadcaster.frames[len(broadcaster.frames)-1]
			Expect(last.Payload[0].Read).To(BeTrue())
		})

		It("rejects ids belonging to another user", func() {
			mine, err := service.Add(1, "Mine", "", nil)
			Expect(err).NotTo(HaveOccurred())
			theirs, err := service.Add(2, "Theirs", "", nil)
			Expect(err).NotTo(HaveOccurred())

			err = service.UpdateRead(1, []int64{mine.ID, theirs.ID})
			Expect(err).To(MatchError("Unauthorized to update these notifications"))

			list, err := service.List(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(list[0].Read).To(BeFalse())
		})

		It("rejects ids that do not exist", func() {
			err := service.UpdateRead(1, []int64{404})
			Expect(err).To(MatchError("Unauthorized to update these notifications"))
		})
	})

	Describe("event fan-out", func() {
		var bus *events.EventBus

		BeforeEach(func() {
			bus = events.NewEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
			notification.RegisterEventHandlers(bus, service, slog.New(slog.NewTextHandler(io.Discard, nil)))
		})

		It("produces one grouped notification for a bulk ownership change", func() {
			event := events.NewOwnershipChangedEvent(10, 1, 2, []int64{7, 8, 9})
			Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

			Expect(broadcaster.byUser[2]).To(Equal(1))
			list, err := service.List(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Description).To(Equal("3 products were transferred to you"))
		})

		It("notifies owner and manufacturer once each on creation", func() {
			event := events.NewProductCreatedEvent(10, 1, 7, "Widget", 1, 2)
			Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

			Expect(broadcaster.byUser[1]).To(Equal(1))
			Expect(broadcaster.byUser[2]).To(Equal(1))
		})
	})
})
