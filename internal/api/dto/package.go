package dto

import "time"

type CreatePackageRequest struct {
	ResidentID  string `json:"residentId"`
	Carrier     string `json:"carrier"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`
}

type UpdatePackageStatusRequest struct {
	Status string `json:"status"`
}

type PackageResponse struct {
	ID          string     `json:"id"`
	ResidentID  string     `json:"residentId"`
	Resident    string     `json:"resident"`
	Carrier     string     `json:"carrier"`
	Description string     `json:"description"`
	ReceivedAt  time.Time  `json:"receivedAt"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
	Status      string     `json:"status"`
	PhotoURL    string     `json:"photoUrl,omitempty"`
	PorterID    string     `json:"porterId"`
}

// DayViewResponse is the calendar view: one day's packages split into the
// two desk panels.
type DayViewResponse struct {
	Date      string            `json:"date"`
	Pending   []PackageResponse `json:"pending"`
	Delivered []PackageResponse `json:"delivered"`
}

type NotifyResponse struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsappUrl"`
	Fallback    bool   `json:"fallback"`
}
