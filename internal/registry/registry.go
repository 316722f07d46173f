// Package registry is the durable ticket store and the only part of the
// system with correctness invariants: ticket_id uniqueness at insert and
// the at-most-once registered -> checked_in transition.
package registry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/rootedtour/checkpoint/internal/models"
	"github.com/rootedtour/checkpoint/internal/ticket"
)

var (
	// ErrDuplicateTicket is returned when an insert collides with an
	// existing ticket_id (and, from Register, retries were exhausted).
	ErrDuplicateTicket = errors.New("ticket id already exists")

	// ErrTicketNotFound means no record matched the identifier, exact or
	// fuzzy, or a fuzzy match was ambiguous.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrAlreadyCheckedIn is a benign outcome: the ticket matched but its
	// transition already happened.
	ErrAlreadyCheckedIn = errors.New("already checked in")
)

// ValidationError reports missing or malformed registration fields. It is
// a user-correctable outcome, not a server fault.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid registration: " + strings.Join(e.Fields, ", ")
}

// Input is a registration request. Names and email are required; the rest
// is optional.
type Input struct {
	FirstName        string `validate:"required"`
	LastName         string `validate:"required"`
	Email            string `validate:"required,email"`
	Phone            string
	EmergencyContact string
	MedicalNotes     string
	WorshipTeam      bool
	Volunteer        bool
	SourceSystem     string
}

const (
	// Fresh identifiers to try when inserts keep colliding.
	maxInsertRetries = 5

	// SearchByName result cap.
	searchLimit = 10
)

// Registry wraps the database handle and the identifier generator. All
// state lives in the database; a Registry is safe for concurrent use.
type Registry struct {
	db       *gorm.DB
	gen      ticket.Generator
	prefix   string
	validate *validator.Validate
}

func New(db *gorm.DB, gen ticket.Generator, prefix string) *Registry {
	if prefix == "" {
		prefix = ticket.DefaultPrefix
	}
	return &Registry{
		db:       db,
		gen:      gen,
		prefix:   prefix,
		validate: validator.New(),
	}
}

// Register validates input, assigns a ticket identifier and stores the
// record with status "registered". Identifier collisions are retried with
// fresh identifiers; uniqueness is enforced by the database index, not a
// pre-check, so concurrent inserts cannot both win the same id.
func (r *Registry) Register(in Input) (*models.Registration, error) {
	if err := r.validateInput(in); err != nil {
		return nil, err
	}

	source := strings.TrimSpace(in.SourceSystem)
	if source == "" {
		source = "manual"
	}

	var lastErr error
	for i := 0; i < maxInsertRetries; i++ {
		reg := &models.Registration{
			TicketID:         r.gen.Generate(r.prefix),
			FirstName:        strings.TrimSpace(in.FirstName),
			LastName:         strings.TrimSpace(in.LastName),
			Email:            strings.TrimSpace(in.Email),
			Phone:            strings.TrimSpace(in.Phone),
			EmergencyContact: strings.TrimSpace(in.EmergencyContact),
			MedicalNotes:     strings.TrimSpace(in.MedicalNotes),
			WorshipTeam:      in.WorshipTeam,
			Volunteer:        in.Volunteer,
			SourceSystem:     source,
		}
		err := r.Insert(reg)
		if err == nil {
			return reg, nil
		}
		if !errors.Is(err, ErrDuplicateTicket) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// Insert stores reg as-is. Status and registration_time default if unset;
// checkin_time stays nil. A ticket_id collision returns ErrDuplicateTicket
// and leaves the registry unchanged.
func (r *Registry) Insert(reg *models.Registration) error {
	var missing []string
	if strings.TrimSpace(reg.FirstName) == "" {
		missing = append(missing, "FirstName")
	}
	if strings.TrimSpace(reg.LastName) == "" {
		missing = append(missing, "LastName")
	}
	if strings.TrimSpace(reg.Email) == "" {
		missing = append(missing, "Email")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	if reg.Status == "" {
		reg.Status = models.StatusRegistered
	}
	if reg.RegistrationTime.IsZero() {
		reg.RegistrationTime = time.Now()
	}

	if err := r.db.Create(reg).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateTicket
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

// FindExact looks a registration up by its full ticket id.
func (r *Registry) FindExact(ticketID string) (*models.Registration, error) {
	var reg models.Registration
	err := r.db.Where("ticket_id = ?", ticketID).First(&reg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return &reg, nil
}

// FindFuzzy returns registrations whose ticket_id contains sub
// (case-sensitive), in insertion order. Containment is evaluated with
// instr() so the user-supplied fragment is always a bound parameter,
// never part of the query text.
func (r *Registry) FindFuzzy(sub string) ([]models.Registration, error) {
	if sub == "" {
		return nil, nil
	}
	var regs []models.Registration
	err := r.db.Where("instr(ticket_id, ?) > 0", sub).
		Order("id ASC").
		Find(&regs).Error
	if err != nil {
		return nil, fmt.Errorf("fuzzy find: %w", err)
	}
	return regs, nil
}

// SearchByName returns registrations whose first or last name contains
// term, case-insensitively, capped at 10 results in insertion order.
func (r *Registry) SearchByName(term string) ([]models.Registration, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	var regs []models.Registration
	err := r.db.
		Where("instr(LOWER(first_name), LOWER(?)) > 0 OR instr(LOWER(last_name), LOWER(?)) > 0", term, term).
		Order("id ASC").
		Limit(searchLimit).
		Find(&regs).Error
	if err != nil {
		return nil, fmt.Errorf("name search: %w", err)
	}
	return regs, nil
}

// Recent returns the latest n registrations, newest first.
func (r *Registry) Recent(n int) ([]models.Registration, error) {
	var regs []models.Registration
	err := r.db.Order("id DESC").Limit(n).Find(&regs).Error
	if err != nil {
		return nil, fmt.Errorf("recent registrations: %w", err)
	}
	return regs, nil
}

// RecentCheckins returns the latest n check-ins, newest first.
func (r *Registry) RecentCheckins(n int) ([]models.Registration, error) {
	var regs []models.Registration
	err := r.db.
		Where("status = ? AND checkin_time IS NOT NULL", models.StatusCheckedIn).
		Order("checkin_time DESC").
		Limit(n).
		Find(&regs).Error
	if err != nil {
		return nil, fmt.Errorf("recent check-ins: %w", err)
	}
	return regs, nil
}

// ExportFilter narrows the record set handed to the export collaborator.
// Zero values mean "no constraint".
type ExportFilter struct {
	Status      string // "", "registered" or "checked_in"
	WorshipTeam bool
	Volunteer   bool
	From        time.Time // registration_time >= From
	To          time.Time // registration_time < To
}

// Export returns registrations matching f, in insertion order. Read-only.
func (r *Registry) Export(f ExportFilter) ([]models.Registration, error) {
	q := r.db.Order("id ASC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.WorshipTeam {
		q = q.Where("worship_team = ?", true)
	}
	if f.Volunteer {
		q = q.Where("volunteer = ?", true)
	}
	if !f.From.IsZero() {
		q = q.Where("registration_time >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("registration_time < ?", f.To)
	}

	var regs []models.Registration
	if err := q.Find(&regs).Error; err != nil {
		return nil, fmt.Errorf("export query: %w", err)
	}
	return regs, nil
}

// ClearAll wipes every registration. Administrative escape hatch only; no
// correctness guarantees attach to it.
func (r *Registry) ClearAll() error {
	return r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Registration{}).Error
}

func (r *Registry) validateInput(in Input) error {
	err := r.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return &ValidationError{Fields: fields}
	}
	return fmt.Errorf("validate input: %w", err)
}
