package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/sandiprv9898/salon-flow-pos/internal/dto"
	"github.com/sandiprv9898/salon-flow-pos/internal/middleware"
	"github.com/sandiprv9898/salon-flow-pos/internal/service"

	"github.com/gin-gonic/gin"
)

type RegisterHandler struct{ svc service.RegisterService }

func NewRegisterHandler(svc service.RegisterService) *RegisterHandler {
	return &RegisterHandler{svc: svc}
}

func (h *RegisterHandler) Open(c *gin.Context) {
	var req dto.OpenRegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	openedBy := ""
	if claims := middleware.GetClaims(c); claims != nil {
		openedBy = claims.EmployeeID
	}
	resp, err := h.svc.Open(c.Request.Context(), openedBy, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Close performs the blind cash count and closes the session.
func (h *RegisterHandler) Close(c *gin.Context) {
	var req dto.CloseRegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RegisterHandler) Report(c *gin.Context) {
	resp, err := h.svc.Report(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RegisterHandler) Transactions(c *gin.Context) {
	txs, err := h.svc.Transactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs, "count": len(txs)})
}

// ExportCSV streams the session journal as an attachment.
func (h *RegisterHandler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.ExportCSV(c.Request.Context(), &buf); err != nil {
		respondError(c, err)
		return
	}
	name := "journal_" + time.Now().UTC().Format("20060102_150405") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
