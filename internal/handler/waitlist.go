package handler

import (
	"net/http"

	"github.com/sandiprv9898/salon-flow-pos/internal/dto"
	"github.com/sandiprv9898/salon-flow-pos/internal/service"

	"github.com/gin-gonic/gin"
)

type WaitlistHandler struct {
	waitlist service.WaitlistService
}

func NewWaitlistHandler(waitlist service.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{waitlist: waitlist}
}

func (h *WaitlistHandler) List(c *gin.Context) {
	resp, err := h.waitlist.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WaitlistHandler) Add(c *gin.Context) {
	var req dto.WaitlistRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.waitlist.Add(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *WaitlistHandler) Remove(c *gin.Context) {
	if err := h.waitlist.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Convert books the entry and returns the new appointment.
func (h *WaitlistHandler) Convert(c *gin.Context) {
	var req dto.ConvertWaitlistRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.waitlist.Convert(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
