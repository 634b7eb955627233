package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeStatus: "available" | "busy" | "break" | "clocked-out"
type EmployeeStatus string

const (
	StatusAvailable  EmployeeStatus = "available"
	StatusBusy       EmployeeStatus = "busy"
	StatusOnBreak    EmployeeStatus = "break"
	StatusClockedOut EmployeeStatus = "clocked-out"
)

// Roles used for route authorization.
const (
	RoleManager = "manager"
	RoleStylist = "stylist"
)

// Employee is a staff member. PINHash is never serialized.
type Employee struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Title           string          `json:"title"`
	Role            string          `json:"role"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	Commission      decimal.Decimal `json:"commission"`
	Specialties     []string        `json:"specialties,omitempty"`
	ExperienceYears int             `json:"experience_years"`
	Status          EmployeeStatus  `json:"status"`
	ClockedIn       bool            `json:"clocked_in"`
	ClockInTime     *time.Time      `json:"clock_in_time,omitempty"`
	BreakStartTime  *time.Time      `json:"break_start_time,omitempty"`
	// MinutesWorked accumulates closed shifts; the open shift is added on read.
	MinutesWorked float64 `json:"-"`
	PINHash       string  `json:"-"`
}

// HoursWorked includes the running shift when the employee is clocked in.
func (e Employee) HoursWorked(now time.Time) float64 {
	minutes := e.MinutesWorked
	if e.ClockedIn && e.ClockInTime != nil {
		minutes += now.Sub(*e.ClockInTime).Minutes()
	}
	return minutes / 60
}
