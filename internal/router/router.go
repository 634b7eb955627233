package router

import (
	"time"

	"github.com/sandiprv9898/salon-flow-pos/internal/config"
	"github.com/sandiprv9898/salon-flow-pos/internal/handler"
	"github.com/sandiprv9898/salon-flow-pos/internal/infra"
	"github.com/sandiprv9898/salon-flow-pos/internal/middleware"
	"github.com/sandiprv9898/salon-flow-pos/internal/model"

	"github.com/gin-gonic/gin"
)

// New returns a configured Gin engine serving app.
func New(cfg *config.Config, app *App, metrics *infra.Metrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	apiLimiter := middleware.DefaultRateLimiterConfig()
	if cfg.RateLimitRPS > 0 {
		apiLimiter.RequestsPerSecond = cfg.RateLimitRPS
	}
	if cfg.RateLimitBurst > 0 {
		apiLimiter.Burst = cfg.RateLimitBurst
	}

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(metrics))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.NewIPRateLimiter("api", apiLimiter).Middleware())

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(app.Auth)
	catalogH := handler.NewCatalogHandler(app.Catalog, app.Customers)
	checkoutH := handler.NewCheckoutHandler(app.Checkout)
	registerH := handler.NewRegisterHandler(app.Register)
	inventoryH := handler.NewInventoryHandler(app.Inventory)
	staffH := handler.NewStaffHandler(app.Staff, app.Appointments)
	waitlistH := handler.NewWaitlistHandler(app.Waitlist)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(app.Register, time.Now()))
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	auth := r.Group("/v1/auth")
	{
		loginLimiter := middleware.NewIPRateLimiter("login", middleware.LoginRateLimiterConfig())
		auth.POST("/login", loginLimiter.Middleware(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	managers := middleware.RequireRole(model.RoleManager)
	{
		v1.GET("/catalog", catalogH.List)
		v1.GET("/catalog/:id", catalogH.Get)
		v1.GET("/catalog/barcode/:code", catalogH.ByBarcode)

		v1.GET("/customers", catalogH.ListCustomers)
		v1.GET("/customers/:id", catalogH.GetCustomer)

		term := v1.Group("/terminals/:tid")
		{
			term.GET("/cart", checkoutH.Cart)
			term.DELETE("/cart", checkoutH.ClearCart)
			term.POST("/cart/items", checkoutH.AddItem)
			term.PATCH("/cart/items/:item_id", checkoutH.UpdateItem)
			term.DELETE("/cart/items/:item_id", checkoutH.RemoveItem)
			term.PUT("/cart/items/:item_id/discount", checkoutH.SetLineDiscount)
			term.PUT("/cart/discount", checkoutH.SetOrderDiscount)
			term.PUT("/cart/customer", checkoutH.SetCustomer)

			term.POST("/checkout", checkoutH.Start)
			term.GET("/checkout", checkoutH.Checkout)
			term.POST("/checkout/payments", checkoutH.AddPayment)
			term.DELETE("/checkout/payments/:index", checkoutH.RemovePayment)
			term.POST("/checkout/tender", checkoutH.Tender)
			term.POST("/checkout/finalize", checkoutH.Finalize)
			term.POST("/checkout/cancel", checkoutH.Cancel)
		}

		reg := v1.Group("/register")
		{
			reg.GET("", registerH.Report)
			reg.POST("/open", managers, registerH.Open)
			reg.POST("/close", managers, registerH.Close)
			reg.GET("/transactions", registerH.Transactions)
			reg.GET("/transactions.csv", managers, registerH.ExportCSV)
		}

		inv := v1.Group("/inventory")
		{
			inv.GET("", inventoryH.List)
			inv.GET("/low-stock", inventoryH.LowStock)
			inv.PATCH("/:id/stock", managers, inventoryH.AdjustStock)
			inv.POST("/:id/reorder", managers, inventoryH.Reorder)
		}

		staff := v1.Group("/staff")
		{
			staff.GET("", staffH.List)
			staff.POST("/:id/clock-in", staffH.ClockIn)
			staff.POST("/:id/clock-out", staffH.ClockOut)
			staff.POST("/:id/break/start", staffH.StartBreak)
			staff.POST("/:id/break/end", staffH.EndBreak)
		}

		appts := v1.Group("/appointments")
		{
			appts.GET("", staffH.Appointments)
			appts.GET("/upcoming", staffH.Upcoming)
			appts.POST("", staffH.CreateAppointment)
			appts.PATCH("/:id/status", staffH.SetAppointmentStatus)
		}

		wait := v1.Group("/waitlist")
		{
			wait.GET("", waitlistH.List)
			wait.POST("", waitlistH.Add)
			wait.DELETE("/:id", waitlistH.Remove)
			wait.POST("/:id/convert", waitlistH.Convert)
		}
	}

	return r
}
