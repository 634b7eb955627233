package model

// AppointmentStatus: "scheduled" | "in-progress" | "completed" | "cancelled"
type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "scheduled"
	AppointmentInProgress AppointmentStatus = "in-progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentInProgress, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment is a booking. Date is YYYY-MM-DD and Time is HH:MM, both local
// to the salon.
type Appointment struct {
	ID              string            `json:"id"`
	CustomerID      string            `json:"customer_id"`
	ServiceIDs      []string          `json:"service_ids"`
	EmployeeID      string            `json:"employee_id"`
	Date            string            `json:"date"`
	Time            string            `json:"time"`
	DurationMinutes int               `json:"duration_minutes"`
	Status          AppointmentStatus `json:"status"`
	Notes           string            `json:"notes,omitempty"`
}

// SortKey orders appointments chronologically.
func (a Appointment) SortKey() string { return a.Date + " " + a.Time }
