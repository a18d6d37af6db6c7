package qrcode

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewToken builds a scan token: the current unix-millisecond timestamp
// concatenated with a random UUID. The timestamp prefix keeps tokens roughly
// sortable by creation time; the UUID makes them unguessable.
func NewToken() string {
	return fmt.Sprintf("%d%s", time.Now().UnixMilli(), uuid.NewString())
}

// ScanURL is the exact string encoded into the PNG. The frontend route
// depends on this shape, trailing slash included.
func ScanURL(frontendBase string, tenantID int64, token string) string {
	return fmt.Sprintf("%s/scan/%d/?token=%s", frontendBase, tenantID, token)
}
