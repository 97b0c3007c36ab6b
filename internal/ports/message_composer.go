package ports

import (
	"context"
	"porter-desk-service/internal/domain"
)

// Port: a boundary for composing the arrival notice sent to a resident.
// Callers must fall back to a deterministic template when this fails; the
// desk always needs some message to hand off.
type MessageComposer interface {
	ComposeArrivalNotice(ctx context.Context, pkg domain.Package, resident domain.Resident) (string, error)
}
