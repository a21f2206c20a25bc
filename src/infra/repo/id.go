package repo

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// NewID returns a 24 character hex identifier: a big-endian Unix timestamp
// followed by 8 random bytes. Identifiers sort roughly by creation time.
func NewID(now time.Time) string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(now.Unix()))

	// Skip the UUID version and variant bytes.
	u := uuid.New()
	copy(b[4:10], u[:6])
	copy(b[10:], u[10:12])

	return hex.EncodeToString(b[:])
}
