package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tracksure/tracksure/internal/core/events"
)

type SubscriberAPI interface {
	Subscribe(eventType string, handler events.Handler)
}

// RegisterEventHandlers wires product lifecycle events into notification
// fan-out. One ownership event yields one grouped notification for the new
// owner, regardless of how many products moved.
func RegisterEventHandlers(bus SubscriberAPI, service ServiceAPI, logger *slog.Logger) {
	bus.Subscribe(events.TypeProductCreated, func(ctx context.Context, event events.Event) error {
		e, ok := event.(*events.ProductCreatedEvent)
		if !ok {
			return fmt.Errorf("unexpected event payload for %s", event.EventType())
		}

		recipients := []int64{e.OwnerID}
		if e.ManufacturerID != e.OwnerID {
			recipients = append(recipients, e.ManufacturerID)
		}
		for _, userID := range recipients {
			_, err := service.Add(userID,
				"New product registered",
				fmt.Sprintf("Product %q was registered", e.ProductName),
				[]string{"product"})
			if err != nil {
				logger.Warn("product notification failed",
					"user_id", userID,
					"product_id", e.ProductID,
					"error", err)
			}
		}
		return nil
	})

	bus.Subscribe(events.TypeOwnershipChanged, func(ctx context.Context, event events.Event) error {
		e, ok := event.(*events.OwnershipChangedEvent)
		if !ok {
			return fmt.Errorf("unexpected event payload for %s", event.EventType())
		}

		description := fmt.Sprintf("%d products were transferred to you", e.Count)
		if e.Count == 1 {
			description = "1 product was transferred to you"
		}
		_, err := service.Add(e.NewOwnerID, "Ownership transfer", description, []string{"ownership"})
		return err
	})
}
