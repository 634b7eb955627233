package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sandiprv9898/salon-flow-pos/internal/dto"
	"github.com/sandiprv9898/salon-flow-pos/internal/model"
	"github.com/sandiprv9898/salon-flow-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type AppointmentService interface {
	// ForDate lists the appointments of one day (YYYY-MM-DD) in time order.
	ForDate(ctx context.Context, date string) ([]dto.AppointmentResponse, error)
	// Upcoming lists scheduled appointments at or after now, at most limit.
	Upcoming(ctx context.Context, now time.Time, limit int) ([]dto.AppointmentResponse, error)
	Get(ctx context.Context, id string) (*dto.AppointmentResponse, error)
	SetStatus(ctx context.Context, id string, req dto.AppointmentStatusRequest) (*dto.AppointmentResponse, error)
	// Create books a scheduled appointment. Customer, employee and every
	// service must exist.
	Create(ctx context.Context, req dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
}

type appointmentService struct {
	repo      repository.AppointmentRepository
	customers repository.CustomerRepository
	employees repository.EmployeeRepository
	catalog   repository.CatalogRepository
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	customers repository.CustomerRepository,
	employees repository.EmployeeRepository,
	catalog repository.CatalogRepository,
) AppointmentService {
	return &appointmentService{repo: repo, customers: customers, employees: employees, catalog: catalog}
}

func (s *appointmentService) ForDate(ctx context.Context, date string) ([]dto.AppointmentResponse, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return s.filter(ctx, 0, func(a model.Appointment) bool { return a.Date == date })
}

func (s *appointmentService) Upcoming(ctx context.Context, now time.Time, limit int) ([]dto.AppointmentResponse, error) {
	from := now.Format(dateLayout + " 15:04")
	return s.filter(ctx, limit, func(a model.Appointment) bool {
		return a.Status == model.AppointmentScheduled && a.SortKey() >= from
	})
}

func (s *appointmentService) Get(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r := s.enrich(ctx, *a)
	return &r, nil
}

// SetStatus moves an appointment forward. Completed and cancelled are final.
func (s *appointmentService) SetStatus(ctx context.Context, id string, req dto.AppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	next := model.AppointmentStatus(req.Status)
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	a, err := s.repo.Update(ctx, id, func(a *model.Appointment) error {
		if a.Status == next {
			return nil
		}
		if !canTransition(a.Status, next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, next)
		}
		a.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("appointment_id", a.ID).Str("status", string(a.Status)).Msg("appointment status changed")
	r := s.enrich(ctx, *a)
	return &r, nil
}

func (s *appointmentService) Create(ctx context.Context, req dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if _, err := time.Parse(timeLayout, req.Time); err != nil {
		return nil, fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	}
	if len(req.ServiceIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	if _, err := s.employees.FindByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	duration := 0
	for _, id := range req.ServiceIDs {
		svc, err := s.catalog.FindService(ctx, id)
		if err != nil {
			return nil, err
		}
		duration += svc.DurationMinutes
	}

	a := model.Appointment{
		ID:              "apt-" + uuid.NewString(),
		CustomerID:      req.CustomerID,
		ServiceIDs:      append([]string(nil), req.ServiceIDs...),
		EmployeeID:      req.EmployeeID,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: duration,
		Status:          model.AppointmentScheduled,
		Notes:           strings.TrimSpace(req.Notes),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	log.Info().
		Str("appointment_id", a.ID).
		Str("employee_id", a.EmployeeID).
		Str("slot", a.SortKey()).
		Msg("appointment booked")
	r := s.enrich(ctx, a)
	return &r, nil
}

func canTransition(from, to model.AppointmentStatus) bool {
	switch from {
	case model.AppointmentScheduled:
		return to != model.AppointmentScheduled
	case model.AppointmentInProgress:
		return to == model.AppointmentCompleted || to == model.AppointmentCancelled
	}
	return false
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *appointmentService) filter(ctx context.Context, limit int, keep func(model.Appointment) bool) ([]dto.AppointmentResponse, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Appointment, 0, len(all))
	for _, a := range all {
		if keep(a) {
			matched = append(matched, a)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].SortKey() < matched[j].SortKey() })
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]dto.AppointmentResponse, len(matched))
	for i, a := range matched {
		out[i] = s.enrich(ctx, a)
	}
	return out, nil
}

// enrich resolves display names. Dangling references are left blank.
func (s *appointmentService) enrich(ctx context.Context, a model.Appointment) dto.AppointmentResponse {
	r := dto.AppointmentResponse{
		ID:              a.ID,
		Date:            a.Date,
		Time:            a.Time,
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		CustomerID:      a.CustomerID,
		EmployeeID:      a.EmployeeID,
		ServiceIDs:      a.ServiceIDs,
		Notes:           a.Notes,
	}
	if c, err := s.customers.FindByID(ctx, a.CustomerID); err == nil {
		r.CustomerName = c.Name
	}
	if e, err := s.employees.FindByID(ctx, a.EmployeeID); err == nil {
		r.EmployeeName = e.Name
	}
	for _, id := range a.ServiceIDs {
		if svc, err := s.catalog.FindService(ctx, id); err == nil {
			r.ServiceNames = append(r.ServiceNames, svc.Name)
		}
	}
	return r
}
