package repository

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoDocument is returned by a Backend that has never been written.
var ErrNoDocument = errors.New("no persisted document")

// Backend stores the serialized document as an opaque byte blob.
// Write must replace the previous blob as a whole.
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
}

// Quarantiner is implemented by backends that can keep a copy of an
// unreadable blob before it is overwritten.
type Quarantiner interface {
	Quarantine(ctx context.Context, data []byte) (string, error)
}

// quarantineName tags a quarantined copy with the unix time it was taken so
// later corruptions never overwrite earlier copies.
func quarantineName(base string, now time.Time) string {
	return fmt.Sprintf("%s.corrupt-%d", base, now.Unix())
}
