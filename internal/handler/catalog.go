package handler

import (
	"net/http"

	"github.com/sandiprv9898/salon-flow-pos/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog   service.CatalogService
	customers service.CustomerService
}

func NewCatalogHandler(catalog service.CatalogService, customers service.CustomerService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, customers: customers}
}

// List accepts ?kind=product|service|package|gift_card and ?q= search.
func (h *CatalogHandler) List(c *gin.Context) {
	items, err := h.catalog.List(c.Request.Context(), c.Query("kind"), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *CatalogHandler) Get(c *gin.Context) {
	item, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) ByBarcode(c *gin.Context) {
	item, err := h.catalog.ByBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// ── Customers ─────────────────────────────────────────────────────────────────

func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	list, err := h.customers.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": list, "count": len(list)})
}

func (h *CatalogHandler) GetCustomer(c *gin.Context) {
	cust, err := h.customers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}
