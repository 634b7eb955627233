package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/sandiprv9898/salon-flow-pos/internal/dto"
	"github.com/sandiprv9898/salon-flow-pos/internal/service"

	"github.com/gin-gonic/gin"
)

const defaultUpcomingLimit = 5

type StaffHandler struct {
	staff        service.StaffService
	appointments service.AppointmentService
	now          func() time.Time
}

func NewStaffHandler(staff service.StaffService, appointments service.AppointmentService) *StaffHandler {
	return &StaffHandler{staff: staff, appointments: appointments, now: time.Now}
}

func (h *StaffHandler) List(c *gin.Context) {
	resp, err := h.staff.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StaffHandler) ClockIn(c *gin.Context)    { h.shift(c, h.staff.ClockIn) }
func (h *StaffHandler) ClockOut(c *gin.Context)   { h.shift(c, h.staff.ClockOut) }
func (h *StaffHandler) StartBreak(c *gin.Context) { h.shift(c, h.staff.StartBreak) }
func (h *StaffHandler) EndBreak(c *gin.Context)   { h.shift(c, h.staff.EndBreak) }

func (h *StaffHandler) shift(c *gin.Context, fn func(ctx context.Context, id string) (*dto.EmployeeResponse, error)) {
	resp, err := fn(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Appointments ──────────────────────────────────────────────────────────────

// Appointments lists ?date=YYYY-MM-DD, defaulting to today.
func (h *StaffHandler) Appointments(c *gin.Context) {
	date := c.DefaultQuery("date", h.now().Format("2006-01-02"))
	list, err := h.appointments.ForDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "appointments": list, "count": len(list)})
}

func (h *StaffHandler) Upcoming(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultUpcomingLimit)))
	if err != nil || limit < 1 {
		limit = defaultUpcomingLimit
	}
	list, err := h.appointments.Upcoming(c.Request.Context(), h.now(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": list, "count": len(list)})
}

func (h *StaffHandler) SetAppointmentStatus(c *gin.Context) {
	var req dto.AppointmentStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.appointments.SetStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StaffHandler) CreateAppointment(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.appointments.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
