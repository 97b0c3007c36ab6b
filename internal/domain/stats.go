package domain

import (
	"strings"
	"time"
)

// DashboardStats are the desk dashboard counters, all derived from the
// in-memory collections on demand.
type DashboardStats struct {
	TotalPending   int            `json:"totalPending"`
	ReceivedToday  int            `json:"receivedToday"`
	DeliveredToday int            `json:"deliveredToday"`
	TotalResidents int            `json:"totalResidents"`
	ByCarrier      map[string]int `json:"byCarrier"`
}

// ComputeStats aggregates the dashboard counters for the given calendar day
// (today formatted as YYYY-MM-DD).
func ComputeStats(pkgs []Package, residents []Resident, today string) DashboardStats {
	stats := DashboardStats{
		TotalResidents: len(residents),
		ByCarrier:      make(map[string]int, 8),
	}

	for _, p := range pkgs {
		stats.ByCarrier[p.Carrier]++

		if p.Status == StatusPending {
			stats.TotalPending++
		}
		if strings.HasPrefix(p.ReceivedAt.Format(time.RFC3339), today) {
			stats.ReceivedToday++
		}
		if p.Status == StatusDelivered && p.DeliveredAt != nil &&
			strings.HasPrefix(p.DeliveredAt.Format(time.RFC3339), today) {
			stats.DeliveredToday++
		}
	}

	return stats
}
