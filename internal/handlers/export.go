package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/rootedtour/checkpoint/internal/models"
	"github.com/rootedtour/checkpoint/internal/registry"
	"github.com/rootedtour/checkpoint/internal/services"
)

func parseDate(s string, def time.Time) time.Time {
	if s == "" {
		return def
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return def
	}
	return t
}

// GET /export.csv?status=&team=&from=&to=
//
// status: registered | checked_in; team: worship | volunteer;
// from/to: inclusive registration-date range (YYYY-MM-DD).
func ExportCSV(reg *registry.Registry, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var f registry.ExportFilter
		switch q.Get("status") {
		case models.StatusRegistered, models.StatusCheckedIn:
			f.Status = q.Get("status")
		case "":
		default:
			writeError(w, http.StatusBadRequest, "status must be registered or checked_in")
			return
		}
		switch q.Get("team") {
		case "worship":
			f.WorshipTeam = true
		case "volunteer":
			f.Volunteer = true
		case "":
		default:
			writeError(w, http.StatusBadRequest, "team must be worship or volunteer")
			return
		}
		f.From = parseDate(q.Get("from"), time.Time{})
		if to := parseDate(q.Get("to"), time.Time{}); !to.IsZero() {
			f.To = to.AddDate(0, 0, 1) // inclusive end date
		}

		rows, err := reg.Export(f)
		if err != nil {
			log.Error().Err(err).Msg("export failed")
			writeError(w, http.StatusInternalServerError, "export failed")
			return
		}

		filename := fmt.Sprintf("registrations-%s.csv", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)

		cw := csv.NewWriter(w)
		defer cw.Flush()

		_ = cw.Write([]string{
			"Ticket", "First Name", "Last Name", "Email", "Phone",
			"Emergency Contact", "Medical Notes", "Worship Team", "Volunteer",
			"Status", "Source", "Registered At", "Checked In At",
		})

		for _, row := range rows {
			checkStr := ""
			if row.CheckinTime != nil {
				checkStr = row.CheckinTime.Format("2006-01-02 15:04")
			}
			_ = cw.Write([]string{
				row.TicketID,
				row.FirstName,
				row.LastName,
				row.Email,
				services.FormatPhone(row.Phone),
				row.EmergencyContact,
				row.MedicalNotes,
				strconv.FormatBool(row.WorshipTeam),
				strconv.FormatBool(row.Volunteer),
				row.Status,
				row.SourceSystem,
				row.RegistrationTime.Format("2006-01-02 15:04"),
				checkStr,
			})
		}
	}
}
