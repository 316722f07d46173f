package registry_test

import (
	"fmt"
	"testing"
)

func TestStats_EmptyRegistry(t *testing.T) {
	reg := openRegistry(t, nil)

	snap, err := reg.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if snap.Total != 0 || snap.CheckedIn != 0 || snap.Pending != 0 {
		t.Errorf("counts: got total=%d checked_in=%d pending=%d", snap.Total, snap.CheckedIn, snap.Pending)
	}
	if snap.CheckinRate != "0%" {
		t.Errorf("checkin_rate: want 0%%, got %q", snap.CheckinRate)
	}
	if len(snap.HourlyCheckins) != 0 {
		t.Errorf("hourly: want empty map, got %v", snap.HourlyCheckins)
	}
}

func TestStats_CountsAndRate(t *testing.T) {
	reg := openRegistry(t, nil)

	// 10 registrations: 3 worship team, 2 volunteers.
	ids := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		in := validInput()
		in.Email = fmt.Sprintf("p%d@example.com", i)
		in.WorshipTeam = i < 3
		in.Volunteer = i >= 3 && i < 5
		rec, err := reg.Register(in)
		if err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
		ids = append(ids, rec.TicketID)
	}
	// 7 check-ins.
	for i := 0; i < 7; i++ {
		if _, err := reg.CheckIn(ids[i]); err != nil {
			t.Fatalf("checkin %d: %v", i, err)
		}
	}

	snap, err := reg.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if snap.Total != 10 {
		t.Errorf("total: want 10, got %d", snap.Total)
	}
	if snap.CheckedIn != 7 {
		t.Errorf("checked_in: want 7, got %d", snap.CheckedIn)
	}
	if snap.Pending != 3 {
		t.Errorf("pending: want 3, got %d", snap.Pending)
	}
	if snap.CheckinRate != "70.0%" {
		t.Errorf("checkin_rate: want 70.0%%, got %q", snap.CheckinRate)
	}
	if snap.WorshipTeam != 3 {
		t.Errorf("worship_team: want 3, got %d", snap.WorshipTeam)
	}
	if snap.Volunteers != 2 {
		t.Errorf("volunteers: want 2, got %d", snap.Volunteers)
	}
	if snap.ActiveDays != 1 {
		t.Errorf("active_days: want 1, got %d", snap.ActiveDays)
	}

	// The 7 check-ins all happened just now, so today's hourly buckets
	// must sum to 7.
	sum := 0
	for hour, c := range snap.HourlyCheckins {
		if len(hour) != 2 {
			t.Errorf("hour key %q not zero-padded", hour)
		}
		sum += c
	}
	if sum != 7 {
		t.Errorf("hourly sum: want 7, got %d (%v)", sum, snap.HourlyCheckins)
	}
}

func TestStats_RecentActivity(t *testing.T) {
	reg := openRegistry(t, nil)

	var last string
	for i := 0; i < 12; i++ {
		in := validInput()
		in.Email = fmt.Sprintf("p%d@example.com", i)
		rec, err := reg.Register(in)
		if err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
		last = rec.TicketID
	}

	recent, err := reg.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 10 {
		t.Fatalf("want 10 recent rows, got %d", len(recent))
	}
	if recent[0].TicketID != last {
		t.Errorf("newest first: want %q, got %q", last, recent[0].TicketID)
	}

	if _, err := reg.CheckIn(last); err != nil {
		t.Fatalf("checkin: %v", err)
	}
	checkins, err := reg.RecentCheckins(5)
	if err != nil {
		t.Fatalf("recent checkins: %v", err)
	}
	if len(checkins) != 1 || checkins[0].TicketID != last {
		t.Errorf("recent checkins: want [%s], got %d rows", last, len(checkins))
	}
}
