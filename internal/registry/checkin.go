package registry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rootedtour/checkpoint/internal/models"
)

// CheckinResult identifies the attendee whose ticket transitioned.
type CheckinResult struct {
	TicketID  string
	FirstName string
	LastName  string
}

// CheckIn applies the one-way registered -> checked_in transition for the
// ticket matching identifier. The exact id is tried first; a fuzzy
// (substring) fallback handles damaged prints and partial scans, but only
// when it resolves to a single still-registered candidate. An ambiguous
// fragment must never check in a guessed attendee.
//
// The guarded UPDATE runs inside one transaction, so two stations racing
// on the same ticket cannot both win: exactly one sees success, the other
// ErrAlreadyCheckedIn.
func (r *Registry) CheckIn(identifier string) (*CheckinResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrTicketNotFound
	}

	var res CheckinResult
	err := r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		fields := map[string]any{
			"status":       models.StatusCheckedIn,
			"checkin_time": now,
		}

		upd := tx.Model(&models.Registration{}).
			Where("ticket_id = ? AND status = ?", identifier, models.StatusRegistered).
			Updates(fields)
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 1 {
			var reg models.Registration
			if err := tx.Where("ticket_id = ?", identifier).First(&reg).Error; err != nil {
				return err
			}
			res = CheckinResult{TicketID: reg.TicketID, FirstName: reg.FirstName, LastName: reg.LastName}
			return nil
		}

		// Exact miss: look for still-registered tickets containing the
		// fragment.
		var candidates []models.Registration
		if err := tx.
			Where("instr(ticket_id, ?) > 0 AND status = ?", identifier, models.StatusRegistered).
			Order("id ASC").
			Find(&candidates).Error; err != nil {
			return err
		}

		switch {
		case len(candidates) == 1:
			cand := candidates[0]
			upd = tx.Model(&models.Registration{}).
				Where("id = ? AND status = ?", cand.ID, models.StatusRegistered).
				Updates(fields)
			if upd.Error != nil {
				return upd.Error
			}
			if upd.RowsAffected != 1 {
				return ErrAlreadyCheckedIn
			}
			res = CheckinResult{TicketID: cand.TicketID, FirstName: cand.FirstName, LastName: cand.LastName}
			return nil
		case len(candidates) > 1:
			// Ambiguous scan; fail instead of guessing.
			return ErrTicketNotFound
		}

		// Nothing still registered. Distinguish "no such ticket" from
		// "matched but already transitioned".
		var n int64
		if err := tx.Model(&models.Registration{}).
			Where("ticket_id = ? OR instr(ticket_id, ?) > 0", identifier, identifier).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadyCheckedIn
		}
		return ErrTicketNotFound
	})
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) || errors.Is(err, ErrAlreadyCheckedIn) {
			return nil, err
		}
		return nil, fmt.Errorf("check-in %q: %w", identifier, err)
	}
	return &res, nil
}
