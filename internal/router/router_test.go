package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sandiprv9898/salon-flow-pos/internal/config"
	"github.com/sandiprv9898/salon-flow-pos/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t      *testing.T
	engine *gin.Engine
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Env:                "test",
		TaxRate:            "0.18",
		MaxSplitPayments:   3,
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		RateLimitRPS:       1000,
		RateLimitBurst:     1000,
	}
	metrics := infra.NewMetrics("test")
	app := NewApp(Deps{Config: cfg, Metrics: metrics})
	require.NoError(t, app.Auth.SetPIN(context.Background(), "e1", "1111"))
	require.NoError(t, app.Auth.SetPIN(context.Background(), "e2", "2222"))
	return &harness{t: t, engine: New(cfg, app, metrics)}
}

func (h *harness) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)

	var out map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func (h *harness) login(id, pin string) string {
	h.t.Helper()
	w, body := h.do(http.MethodPost, "/v1/auth/login", "", gin.H{"employee_id": id, "pin": pin})
	require.Equal(h.t, http.StatusOK, w.Code, w.Body.String())
	return body["access_token"].(string)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHarness(t)

	w, body := h.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "closed", body["register"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, _ = h.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_http_requests_total")
}

func TestAuthGuards(t *testing.T) {
	h := newHarness(t)

	w, _ := h.do(http.MethodGet, "/v1/catalog", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := h.do(http.MethodPost, "/v1/auth/login", "", gin.H{"employee_id": "e1", "pin": "0000"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", body["detail"])

	w, _ = h.do(http.MethodPost, "/v1/auth/login", "", gin.H{"employee_id": "e2", "pin": "2222"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, body = h.do(http.MethodPost, "/v1/auth/login", "", gin.H{"employee_id": "e1", "pin": "12"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, body["fields"], "PIN")
}

func TestCatalogRoutes(t *testing.T) {
	h := newHarness(t)
	token := h.login("e1", "1111")

	w, body := h.do(http.MethodGet, "/v1/catalog?kind=package", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, body["count"])

	w, body = h.do(http.MethodGet, "/v1/catalog/barcode/8901234567890", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p1", body["id"])

	w, _ = h.do(http.MethodGet, "/v1/catalog/zzz", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = h.do(http.MethodGet, "/v1/catalog?kind=boat", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSaleEndToEnd(t *testing.T) {
	h := newHarness(t)
	manager := h.login("e1", "1111")

	w, _ := h.do(http.MethodPost, "/v1/register/open", manager, gin.H{"opening_float": "1000"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	stylist := h.login("e2", "2222")
	w, _ = h.do(http.MethodPost, "/v1/register/close", stylist, gin.H{"declared_cash": "0"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body := h.do(http.MethodPost, "/v1/terminals/front/cart/items", stylist, gin.H{"catalog_id": "s1", "employee_id": "e2"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "942.82", body["totals"].(map[string]interface{})["grand_total"])

	w, _ = h.do(http.MethodPut, "/v1/terminals/front/cart/discount", stylist, gin.H{"amount": "10", "mode": "bogus"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = h.do(http.MethodPost, "/v1/terminals/front/checkout", stylist, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = h.do(http.MethodPost, "/v1/terminals/front/cart/items", stylist, gin.H{"catalog_id": "p1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = h.do(http.MethodPost, "/v1/terminals/front/checkout/payments", stylist, gin.H{"method": "card", "amount": "400"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = h.do(http.MethodPost, "/v1/terminals/front/checkout/finalize", stylist, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, body = h.do(http.MethodPost, "/v1/terminals/front/checkout/tender", stylist, gin.H{"method": "cash", "amount": "600"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "complete", body["state"])
	assert.Equal(t, "57.18", body["change_due"])

	w, body = h.do(http.MethodPost, "/v1/terminals/front/checkout/finalize", stylist, gin.H{"notes": "walk-in"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "e2", body["cashier_id"])
	assert.Equal(t, "Mike Chen", body["cashier_name"])
	assert.True(t, strings.HasPrefix(body["id"].(string), "TXN"))

	w, body = h.do(http.MethodGet, "/v1/register", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["transaction_count"])
	assert.Equal(t, "1542.82", body["expected_cash"])

	w, _ = h.do(http.MethodGet, "/v1/register/transactions.csv", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "transaction_id")

	w, body = h.do(http.MethodPost, "/v1/register/close", manager, gin.H{"declared_cash": "1542.82"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "normal", body["deviation"].(map[string]interface{})["classification"])
}

func TestStaffAndAppointmentRoutes(t *testing.T) {
	h := newHarness(t)
	token := h.login("e1", "1111")

	w, body := h.do(http.MethodPost, "/v1/staff/e3/clock-in", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "available", body["status"])

	w, _ = h.do(http.MethodPost, "/v1/staff/e3/clock-in", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, body = h.do(http.MethodGet, "/v1/appointments?date=2024-01-25", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 5, body["count"])

	w, body = h.do(http.MethodPatch, "/v1/appointments/apt1/status", token, gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", body["status"])

	w, _ = h.do(http.MethodPatch, "/v1/inventory/p3/stock", token, gin.H{"delta": 5})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCartUpdateKeepsCatalogPrice(t *testing.T) {
	h := newHarness(t)
	token := h.login("e1", "1111")

	w, _ := h.do(http.MethodPost, "/v1/terminals/front/cart/items", token, gin.H{"catalog_id": "p1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, body := h.do(http.MethodPatch, "/v1/terminals/front/cart/items/p1", token, gin.H{"quantity": 2, "unit_price": "1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	item := body["items"].([]interface{})[0].(map[string]interface{})
	assert.EqualValues(t, 2, item["quantity"])
	assert.Equal(t, "299", item["unit_price"])
	assert.Equal(t, "598", item["total"])
}

func TestBookingAndWaitlistRoutes(t *testing.T) {
	h := newHarness(t)
	token := h.login("e1", "1111")

	w, body := h.do(http.MethodPost, "/v1/appointments", token, gin.H{
		"customer_id": "c2", "employee_id": "e4", "service_ids": []string{"s6", "s7"},
		"date": "2024-01-26", "time": "11:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 60, body["duration_minutes"])
	assert.Equal(t, "scheduled", body["status"])

	w, _ = h.do(http.MethodPost, "/v1/appointments", token, gin.H{"customer_id": "c2"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, body = h.do(http.MethodGet, "/v1/waitlist", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := body["summary"].(map[string]interface{})
	assert.EqualValues(t, 2, summary["total"])

	w, body = h.do(http.MethodPost, "/v1/waitlist", token, gin.H{
		"customer_name": "Ana", "phone": "333", "preferred_service": "Pedicure", "priority": "low",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "s8", body["service_id"])
	added := body["id"].(string)

	w, _ = h.do(http.MethodPost, "/v1/waitlist", token, gin.H{
		"customer_name": "Ana", "phone": "333", "preferred_service": "s8", "priority": "urgent",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = h.do(http.MethodDelete, "/v1/waitlist/"+added, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = h.do(http.MethodDelete, "/v1/waitlist/"+added, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = h.do(http.MethodPost, "/v1/waitlist/w1/convert", token, gin.H{"customer_id": "c4", "time": "09:00"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "e2", body["employee_id"])
	assert.Equal(t, "2024-01-25", body["date"])

	w, body = h.do(http.MethodGet, "/v1/appointments?date=2024-01-25", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 6, body["count"])

	w, _ = h.do(http.MethodPost, "/v1/waitlist/w1/convert", token, gin.H{"customer_id": "c4", "time": "09:00"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
