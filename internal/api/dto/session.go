package dto

import "time"

type StartSessionRequest struct {
	Name  string `json:"name"`
	Shift string `json:"shift"`
}

type SessionResponse struct {
	Name      string    `json:"name"`
	Shift     string    `json:"shift"`
	StartedAt time.Time `json:"startedAt"`
}
