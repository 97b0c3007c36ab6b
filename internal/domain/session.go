package domain

import (
	"fmt"
	"strings"
	"time"
)

type Shift string

const (
	ShiftMorning   Shift = "Morning"
	ShiftAfternoon Shift = "Afternoon"
	ShiftNight     Shift = "Night"
	ShiftOvernight Shift = "Overnight"
)

// PorterSession records who is operating the desk and since when. At most
// one session is active at a time; starting a new one replaces it.
type PorterSession struct {
	Name      string    `json:"name"`
	Shift     Shift     `json:"shift"`
	StartedAt time.Time `json:"startedAt"`
}

func ParseShift(s string) (Shift, error) {
	switch Shift(s) {
	case ShiftMorning, ShiftAfternoon, ShiftNight, ShiftOvernight:
		return Shift(s), nil
	}

	return "", fmt.Errorf("parse shift: unknown shift %q: %w", s, ErrValidation)
}

func NewPorterSession(name string, shift Shift, now time.Time) (PorterSession, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return PorterSession{}, fmt.Errorf("new session: name is required: %w", ErrValidation)
	}

	if _, err := ParseShift(string(shift)); err != nil {
		return PorterSession{}, err
	}

	return PorterSession{
		Name:      name,
		Shift:     shift,
		StartedAt: now,
	}, nil
}
