package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"porter-desk-service/internal/domain"
	"porter-desk-service/internal/ports"
)

// Tracker records which operator is on duty. The session lives in its own
// slot, independent of the ledger collections: at most one session is
// active, starting a new one replaces it, ending clears the slot. The
// tracker never gates ledger mutations itself; callers decide what an
// unattended desk may do.
type Tracker struct {
	store ports.StateStore
	now   func() time.Time
}

func NewTracker(store ports.StateStore) *Tracker {
	return &Tracker{
		store: store,
		now:   time.Now,
	}
}

// Start validates the operator identity and persists a fresh session,
// replacing any active one.
func (t *Tracker) Start(ctx context.Context, name string, shift domain.Shift) (domain.PorterSession, error) {
	session, err := domain.NewPorterSession(name, shift, t.now())
	if err != nil {
		return domain.PorterSession{}, fmt.Errorf("start session: %w", err)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return domain.PorterSession{}, fmt.Errorf("start session: encode: %w", err)
	}

	if err := t.store.Write(ctx, ports.SlotSession, string(data)); err != nil {
		return domain.PorterSession{}, fmt.Errorf("start session: %w", err)
	}

	return session, nil
}

// End clears the persisted session. Confirmation is the caller's contract;
// any caller may end the active session.
func (t *Tracker) End(ctx context.Context) error {
	if err := t.store.Clear(ctx, ports.SlotSession); err != nil {
		return fmt.Errorf("end session: %w", err)
	}

	return nil
}

// Current returns the active session, or nil when the desk is unattended.
func (t *Tracker) Current(ctx context.Context) (*domain.PorterSession, error) {
	value, ok, err := t.store.Read(ctx, ports.SlotSession)
	if err != nil {
		return nil, fmt.Errorf("current session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var session domain.PorterSession
	if err := json.Unmarshal([]byte(value), &session); err != nil {
		return nil, fmt.Errorf("current session: decode: %w", err)
	}

	return &session, nil
}

// Porter resolves the identity to stamp on a new package: the active
// session's name, or the "System" sentinel when the desk is unattended or
// the session slot cannot be read.
func (t *Tracker) Porter(ctx context.Context) string {
	session, err := t.Current(ctx)
	if err != nil || session == nil {
		return domain.DefaultPorter
	}

	return session.Name
}
