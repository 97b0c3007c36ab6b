package ports

import (
	"context"
	"errors"
)

// Logical slot names shared by every store backend and the backup format.
const (
	SlotResidents = "residents"
	SlotPackages  = "packages"
	SlotSession   = "session"
)

// ErrStorageUnavailable marks a read or write the underlying device
// rejected. It must reach the caller: after a failed persist the in-memory
// ledger no longer matches the stored state.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Port: durable key-value persistence over the three logical slots. Values
// are UTF-8 JSON text; a write is durable before the call returns.
type StateStore interface {
	// Write stores value under slot, replacing any previous value.
	Write(ctx context.Context, slot, value string) error

	// Read returns the last written value, or ok=false if the slot was
	// never written or has been cleared.
	Read(ctx context.Context, slot string) (value string, ok bool, err error)

	// Clear removes the slot entirely (logout uses this on the session slot).
	Clear(ctx context.Context, slot string) error
}
