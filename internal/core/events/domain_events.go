package events

import (
	"fmt"
	"time"
)

const (
	TypeProductCreated   = "product.created"
	TypeProductUpdated   = "product.updated"
	TypeOwnershipChanged = "product.ownership_changed"
	TypeAuditRecorded    = "audit.recorded"
)

func newBase(eventType string) BaseEvent {
	now := time.Now()
	return BaseEvent{
		ID:        fmt.Sprintf("%s-%d", eventType, now.UnixNano()),
		Type:      eventType,
		Timestamp: now,
	}
}

// ProductCreatedEvent fires after a product row is persisted; the
// notification fan-out tells the initial owner and manufacturer.
type ProductCreatedEvent struct {
	BaseEvent
	TenantID       int64
	ActorID        int64
	ProductID      int64
	ProductName    string
	OwnerID        int64
	ManufacturerID int64
}

func NewProductCreatedEvent(tenantID, actorID, productID int64, name string, ownerID, manufacturerID int64) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseEvent:      newBase(TypeProductCreated),
		TenantID:       tenantID,
		ActorID:        actorID,
		ProductID:      productID,
		ProductName:    name,
		OwnerID:        ownerID,
		ManufacturerID: manufacturerID,
	}
}

type ProductUpdatedEvent struct {
	BaseEvent
	TenantID    int64
	ActorID     int64
	ProductID   int64
	ProductName string
	OwnerID     int64
}

func NewProductUpdatedEvent(tenantID, actorID, productID int64, name string, ownerID int64) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseEvent:   newBase(TypeProductUpdated),
		TenantID:    tenantID,
		ActorID:     actorID,
		ProductID:   productID,
		ProductName: name,
		OwnerID:     ownerID,
	}
}

// OwnershipChangedEvent carries one recipient and the number of products
// moved to them in a single operation, so a bulk update of N rows produces
// one grouped notification, not N.
type OwnershipChangedEvent struct {
	BaseEvent
	TenantID   int64
	ActorID    int64
	NewOwnerID int64
	ProductIDs []int64
	Count      int
}

func NewOwnershipChangedEvent(tenantID, actorID, newOwnerID int64, productIDs []int64) *OwnershipChangedEvent {
	return &OwnershipChangedEvent{
		BaseEvent:  newBase(TypeOwnershipChanged),
		TenantID:   tenantID,
		ActorID:    actorID,
		NewOwnerID: newOwnerID,
		ProductIDs: productIDs,
		Count:      len(productIDs),
	}
}

// AuditEvent is published by every successful mutation; the activity
// recorder appends it to the audit trail.
type AuditEvent struct {
	BaseEvent
	TenantID int64
	ActorID  int64
	Action   string
	Entity   string
	EntityID int64
	Detail   string
}

func NewAuditEvent(tenantID, actorID int64, action, entity string, entityID int64, detail string) *AuditEvent {
	return &AuditEvent{
		BaseEvent: newBase(TypeAuditRecorded),
		TenantID:  tenantID,
		ActorID:   actorID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Detail:    detail,
	}
}
