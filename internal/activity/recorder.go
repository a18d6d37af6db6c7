package activity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tracksure/tracksure/internal/core/events"
)

type SubscriberAPI interface {
	Subscribe(eventType string, handler events.Handler)
}

// RegisterEventHandlers appends every audit event to the activity trail.
// Recording is best effort: a failed insert is logged, never propagated
// back into the mutation that produced the event.
func RegisterEventHandlers(bus SubscriberAPI, repo RepositoryAPI, logger *slog.Logger) {
	bus.Subscribe(events.TypeAuditRecorded, func(ctx context.Context, event events.Event) error {
		e, ok := event.(*events.AuditEvent)
		if !ok {
			return fmt.Errorf("unexpected event payload for %s", event.EventType())
		}

		err := repo.Insert(&ActivityLog{
			TenantID: e.TenantID,
			UserID:   e.ActorID,
			Action:   e.Action,
			Entity:   e.Entity,
			EntityID: e.EntityID,
			Detail:   e.Detail,
		})
		if err != nil {
			logger.Warn("activity log insert failed",
				"tenant_id", e.TenantID,
				"action", e.Action,
				"entity", e.Entity,
				"error", err)
		}
		return nil
	})
}
