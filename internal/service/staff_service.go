package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sandiprv9898/salon-flow-pos/internal/dto"
	"github.com/sandiprv9898/salon-flow-pos/internal/model"
	"github.com/sandiprv9898/salon-flow-pos/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type StaffService interface {
	List(ctx context.Context) (*dto.StaffResponse, error)
	Get(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	ClockIn(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	// ClockOut closes the shift and adds it to the hours worked.
	ClockOut(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	StartBreak(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	EndBreak(ctx context.Context, id string) (*dto.EmployeeResponse, error)
}

type staffService struct {
	repo repository.EmployeeRepository
	now  func() time.Time
}

func NewStaffService(repo repository.EmployeeRepository) StaffService {
	return &staffService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *staffService) List(ctx context.Context) (*dto.StaffResponse, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	resp := &dto.StaffResponse{
		Employees: make([]dto.EmployeeResponse, 0, len(all)),
		Counts: map[string]int{
			string(model.StatusAvailable):  0,
			string(model.StatusBusy):       0,
			string(model.StatusOnBreak):    0,
			string(model.StatusClockedOut): 0,
		},
	}
	for _, e := range all {
		resp.Employees = append(resp.Employees, employeeResponse(e, now))
		resp.Counts[string(e.Status)]++
	}
	return resp, nil
}

func (s *staffService) Get(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r := employeeResponse(*e, s.now())
	return &r, nil
}

// ── Shift transitions ─────────────────────────────────────────────────────────

func (s *staffService) ClockIn(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	return s.transition(ctx, id, "clock in", func(e *model.Employee, now time.Time) error {
		if e.ClockedIn {
			return fmt.Errorf("%w: %s is already clocked in", ErrInvalidTransition, e.ID)
		}
		e.ClockedIn = true
		e.ClockInTime = &now
		e.BreakStartTime = nil
		e.Status = model.StatusAvailable
		return nil
	})
}

func (s *staffService) ClockOut(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	return s.transition(ctx, id, "clock out", func(e *model.Employee, now time.Time) error {
		if !e.ClockedIn || e.ClockInTime == nil {
			return fmt.Errorf("%w: %s is not clocked in", ErrInvalidTransition, e.ID)
		}
		e.MinutesWorked += now.Sub(*e.ClockInTime).Minutes()
		e.ClockedIn = false
		e.ClockInTime = nil
		e.BreakStartTime = nil
		e.Status = model.StatusClockedOut
		return nil
	})
}

func (s *staffService) StartBreak(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	return s.transition(ctx, id, "start break", func(e *model.Employee, now time.Time) error {
		if !e.ClockedIn {
			return fmt.Errorf("%w: %s is not clocked in", ErrInvalidTransition, e.ID)
		}
		if e.Status == model.StatusOnBreak {
			return fmt.Errorf("%w: %s is already on break", ErrInvalidTransition, e.ID)
		}
		e.BreakStartTime = &now
		e.Status = model.StatusOnBreak
		return nil
	})
}

func (s *staffService) EndBreak(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	return s.transition(ctx, id, "end break", func(e *model.Employee, _ time.Time) error {
		if e.Status != model.StatusOnBreak {
			return fmt.Errorf("%w: %s is not on break", ErrInvalidTransition, e.ID)
		}
		e.BreakStartTime = nil
		e.Status = model.StatusAvailable
		return nil
	})
}

func (s *staffService) transition(ctx context.Context, id, action string, fn func(e *model.Employee, now time.Time) error) (*dto.EmployeeResponse, error) {
	now := s.now()
	e, err := s.repo.Update(ctx, id, func(e *model.Employee) error { return fn(e, now) })
	if err != nil {
		return nil, err
	}
	log.Info().Str("employee_id", e.ID).Str("action", action).Str("status", string(e.Status)).Msg("staff status changed")
	r := employeeResponse(*e, now)
	return &r, nil
}

func employeeResponse(e model.Employee, now time.Time) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:             e.ID,
		Name:           e.Name,
		Title:          e.Title,
		Role:           e.Role,
		Status:         string(e.Status),
		ClockedIn:      e.ClockedIn,
		ClockInTime:    e.ClockInTime,
		BreakStartTime: e.BreakStartTime,
		HoursWorked:    decimal.NewFromFloat(e.HoursWorked(now)).Round(2),
		Commission:     e.Commission,
		Specialties:    e.Specialties,
	}
}
