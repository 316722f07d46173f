package registry

import (
	"fmt"
	"time"

	"github.com/rootedtour/checkpoint/internal/models"
)

// StatsSnapshot is the dashboard payload. Purely derived; recomputed
// fresh on every call and only as current as the read that produced it.
type StatsSnapshot struct {
	Total       int64  `json:"total"`
	CheckedIn   int64  `json:"checked_in"`
	Pending     int64  `json:"pending"`
	CheckinRate string `json:"checkin_rate"` // "0%" when empty, else one decimal
	WorshipTeam int64  `json:"worship_team"`
	Volunteers  int64  `json:"volunteers"`
	ActiveDays  int64  `json:"active_days"`

	// HourlyCheckins maps hour-of-day ("00".."23") to the number of
	// check-ins in that hour on the current calendar day.
	HourlyCheckins map[string]int `json:"hourly_checkins"`
}

// Stats derives all counters in a single aggregation round-trip, then
// buckets today's check-ins by hour.
func (r *Registry) Stats() (*StatsSnapshot, error) {
	type agg struct {
		Total       int64
		CheckedIn   int64
		WorshipTeam int64
		Volunteers  int64
		ActiveDays  int64
	}
	var a agg
	err := r.db.Model(&models.Registration{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS checked_in,
			COALESCE(SUM(CASE WHEN worship_team THEN 1 ELSE 0 END), 0) AS worship_team,
			COALESCE(SUM(CASE WHEN volunteer THEN 1 ELSE 0 END), 0) AS volunteers,
			COUNT(DISTINCT date(registration_time)) AS active_days`,
			models.StatusCheckedIn).
		Scan(&a).Error
	if err != nil {
		return nil, fmt.Errorf("stats aggregate: %w", err)
	}

	snap := &StatsSnapshot{
		Total:          a.Total,
		CheckedIn:      a.CheckedIn,
		Pending:        a.Total - a.CheckedIn,
		CheckinRate:    "0%",
		WorshipTeam:    a.WorshipTeam,
		Volunteers:     a.Volunteers,
		ActiveDays:     a.ActiveDays,
		HourlyCheckins: map[string]int{},
	}
	if a.Total > 0 {
		snap.CheckinRate = fmt.Sprintf("%.1f%%", float64(a.CheckedIn)/float64(a.Total)*100)
	}

	// Hourly buckets are computed in Go so the day boundary doesn't depend
	// on how the driver serializes timestamps.
	var times []time.Time
	if err := r.db.Model(&models.Registration{}).
		Where("status = ? AND checkin_time IS NOT NULL", models.StatusCheckedIn).
		Pluck("checkin_time", &times).Error; err != nil {
		return nil, fmt.Errorf("stats hourly: %w", err)
	}
	y, m, d := time.Now().Date()
	for _, t := range times {
		lt := t.Local()
		ty, tm, td := lt.Date()
		if ty == y && tm == m && td == d {
			snap.HourlyCheckins[lt.Format("15")]++
		}
	}
	return snap, nil
}
