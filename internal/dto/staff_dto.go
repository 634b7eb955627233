package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmployeeResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Title          string          `json:"title"`
	Role           string          `json:"role"`
	Status         string          `json:"status"`
	ClockedIn      bool            `json:"clocked_in"`
	ClockInTime    *time.Time      `json:"clock_in_time,omitempty"`
	BreakStartTime *time.Time      `json:"break_start_time,omitempty"`
	HoursWorked    decimal.Decimal `json:"hours_worked"`
	Commission     decimal.Decimal `json:"commission"`
	Specialties    []string        `json:"specialties,omitempty"`
}

type StaffResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	// Counts by status: available, busy, break, clocked-out.
	Counts map[string]int `json:"counts"`
}

// CreateAppointmentRequest books a slot. Date is YYYY-MM-DD and Time HH:MM;
// the duration is the sum of the services' durations.
type CreateAppointmentRequest struct {
	CustomerID string   `json:"customer_id" validate:"required"`
	EmployeeID string   `json:"employee_id" validate:"required"`
	ServiceIDs []string `json:"service_ids" validate:"dive,required"`
	Date       string   `json:"date"        validate:"required"`
	Time       string   `json:"time"        validate:"required"`
	Notes      string   `json:"notes"       validate:"max=500"`
}

type AppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled in-progress completed cancelled"`
}

type AppointmentResponse struct {
	ID              string   `json:"id"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	DurationMinutes int      `json:"duration_minutes"`
	Status          string   `json:"status"`
	CustomerID      string   `json:"customer_id"`
	CustomerName    string   `json:"customer_name,omitempty"`
	EmployeeID      string   `json:"employee_id"`
	EmployeeName    string   `json:"employee_name,omitempty"`
	ServiceIDs      []string `json:"service_ids"`
	ServiceNames    []string `json:"service_names,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}
