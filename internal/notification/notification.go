package notification

import "time"

// Notification is per-user. ToShow is transient: it marks the freshly added
// row inside a broadcast payload and is never persisted.
type Notification struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Read        bool      `json:"read"`
	ToShow      bool      `json:"to_show,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type RepositoryAPI interface {
	ListByUser(userID int64) ([]Notification, error)
	GetByIDs(ids []int64) ([]Notification, error)
	Create(n *Notification) error
	MarkRead(ids []int64) error
	UserExists(userID int64) (bool, error)
	CountUnread(userID int64) (int64, error)
}

// BroadcasterAPI pushes a payload to every live socket of a user. A user
// with no sockets is not an error.
type BroadcasterAPI interface {
	BroadcastToUser(userID int64, payload interface{}) error
}

// Envelope is the wire frame sent over websockets.
type Envelope struct {
	Type    string         `json:"type"`
	Payload []Notification `json:"payload"`
}

type ServiceAPI interface {
	Add(userID int64, title, description string, tags []string) (*Notification, error)
	List(userID int64) ([]Notification, error)
	UpdateRead(actorID int64, ids []int64) error
}
