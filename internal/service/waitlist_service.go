package service

import (
	"context"
	"errors"
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

type WaitlistService interface {
	// List returns the entries high priority first, oldest first within a
	// priority, with counts per priority.
	List(ctx context.Context) (*dto.WaitlistResponse, error)
	Add(ctx context.Context, req dto.WaitlistRequest) (*dto.WaitlistEntryResponse, error)
	Remove(ctx context.Context, id string) error
	// Convert books the entry as an appointment and drops it from the list.
	// On failure the entry stays on the list.
	Convert(ctx context.Context, id string, req dto.ConvertWaitlistRequest) (*dto.AppointmentResponse, error)
}

type waitlistService struct {
	repo         repository.WaitlistRepository
	appointments AppointmentService
	customers    repository.CustomerRepository
	employees    repository.EmployeeRepository
	catalog      repository.CatalogRepository
	now          func() time.Time
}

func NewWaitlistService(
	repo repository.WaitlistRepository,
	appointments AppointmentService,
	customers repository.CustomerRepository,
	employees repository.EmployeeRepository,
	catalog repository.CatalogRepository,
) WaitlistService {
	return &waitlistService{
		repo:         repo,
		appointments: appointments,
		customers:    customers,
		employees:    employees,
		catalog:      catalog,
		now:          time.Now,
	}
}

func (s *waitlistService) List(ctx context.Context) (*dto.WaitlistResponse, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
			return ra < rb
		}
		if !a.AddedAt.Equal(b.AddedAt) {
			return a.AddedAt.Before(b.AddedAt)
		}
		return a.ID < b.ID
	})

	today := s.now().Format(dateLayout)
	resp := &dto.WaitlistResponse{
		Entries: make([]dto.WaitlistEntryResponse, len(entries)),
		Summary: dto.WaitlistSummary{
			Total: len(entries),
			ByPriority: map[string]int{
				string(model.PriorityHigh):   0,
				string(model.PriorityNormal): 0,
				string(model.PriorityLow):    0,
			},
		},
	}
	for i, e := range entries {
		resp.Entries[i] = s.toResponse(ctx, e)
		resp.Summary.ByPriority[string(e.Priority)]++
		if e.PreferredDate == today {
			resp.Summary.Today++
		}
	}
	return resp, nil
}

func (s *waitlistService) Add(ctx context.Context, req dto.WaitlistRequest) (*dto.WaitlistEntryResponse, error) {
	name := strings.TrimSpace(req.CustomerName)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", ErrInvalidInput)
	}
	svc, err := s.resolveService(ctx, req.PreferredService)
	if err != nil {
		return nil, err
	}

	employeeID := strings.TrimSpace(req.PreferredEmployeeID)
	if strings.EqualFold(employeeID, "any") {
		employeeID = ""
	}
	if employeeID != "" {
		if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
			return nil, err
		}
	}
	if req.PreferredDate != "" {
		if _, err := time.Parse(dateLayout, req.PreferredDate); err != nil {
			return nil, fmt.Errorf("%w: preferred date must be YYYY-MM-DD", ErrInvalidInput)
		}
	}

	priority := model.WaitlistPriority(req.Priority)
	if priority == "" {
		priority = model.PriorityNormal
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, req.Priority)
	}
	frame := req.TimeFrame
	if frame == "" {
		frame = "anytime"
	}

	e := model.WaitlistEntry{
		ID:                  "wl-" + uuid.NewString(),
		CustomerName:        name,
		Phone:               phone,
		ServiceID:           svc.ID,
		PreferredEmployeeID: employeeID,
		PreferredDate:       req.PreferredDate,
		TimeFrame:           frame,
		Priority:            priority,
		AddedAt:             s.now().UTC(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	log.Info().Str("entry_id", e.ID).Str("priority", string(e.Priority)).Msg("added to waitlist")
	r := s.toResponse(ctx, e)
	return &r, nil
}

func (s *waitlistService) Remove(ctx context.Context, id string) error {
	if _, err := s.repo.Take(ctx, id); err != nil {
		return err
	}
	log.Info().Str("entry_id", id).Msg("removed from waitlist")
	return nil
}

// Convert claims the entry before booking so two terminals cannot book the
// same entry twice.
func (s *waitlistService) Convert(ctx context.Context, id string, req dto.ConvertWaitlistRequest) (*dto.AppointmentResponse, error) {
	e, err := s.repo.Take(ctx, id)
	if err != nil {
		return nil, err
	}

	appt, err := s.book(ctx, *e, req)
	if err != nil {
		if rerr := s.repo.Create(ctx, *e); rerr != nil {
			log.Error().Err(rerr).Str("entry_id", e.ID).Msg("failed to restore waitlist entry")
		}
		return nil, err
	}
	log.Info().Str("entry_id", e.ID).Str("appointment_id", appt.ID).Msg("waitlist entry booked")
	return appt, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *waitlistService) book(ctx context.Context, e model.WaitlistEntry, req dto.ConvertWaitlistRequest) (*dto.AppointmentResponse, error) {
	customerID := req.CustomerID
	if customerID == "" {
		c, err := s.customerByPhone(ctx, e.Phone)
		if err != nil {
			return nil, err
		}
		customerID = c.ID
	}
	employeeID := firstNonEmpty(req.EmployeeID, e.PreferredEmployeeID)
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee is required", ErrInvalidInput)
	}
	date := firstNonEmpty(req.Date, e.PreferredDate)
	if date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		notes = "Booked from waitlist"
	}
	return s.appointments.Create(ctx, dto.CreateAppointmentRequest{
		CustomerID: customerID,
		EmployeeID: employeeID,
		ServiceIDs: []string{e.ServiceID},
		Date:       date,
		Time:       req.Time,
		Notes:      notes,
	})
}

// resolveService accepts a service id or a case-insensitive service name.
func (s *waitlistService) resolveService(ctx context.Context, ref string) (*model.Service, error) {
	ref = strings.TrimSpace(ref)
	svc, err := s.catalog.FindService(ctx, ref)
	if err == nil {
		return svc, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	all, err := s.catalog.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.EqualFold(all[i].Name, ref) {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("%w: unknown service %q", ErrInvalidInput, ref)
}

func (s *waitlistService) customerByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	all, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	want := digitsOnly(phone)
	for i := range all {
		if want != "" && digitsOnly(all[i].Phone) == want {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no customer with phone %q", ErrInvalidInput, phone)
}

func (s *waitlistService) toResponse(ctx context.Context, e model.WaitlistEntry) dto.WaitlistEntryResponse {
	r := dto.WaitlistEntryResponse{
		ID:                  e.ID,
		CustomerName:        e.CustomerName,
		Phone:               e.Phone,
		ServiceID:           e.ServiceID,
		PreferredEmployeeID: e.PreferredEmployeeID,
		PreferredDate:       e.PreferredDate,
		TimeFrame:           e.TimeFrame,
		Priority:            string(e.Priority),
		AddedAt:             e.AddedAt,
	}
	if svc, err := s.catalog.FindService(ctx, e.ServiceID); err == nil {
		r.ServiceName = svc.Name
	}
	if e.PreferredEmployeeID != "" {
		if emp, err := s.employees.FindByID(ctx, e.PreferredEmployeeID); err == nil {
			r.PreferredEmployeeName = emp.Name
		}
	}
	return r
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
