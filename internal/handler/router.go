package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"salon-scheduler/internal/handler/api"
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Booking    *api.BookingHandler
	Schedule   *api.ScheduleHandler
	Queue      *api.QueueHandler
	Finance    *api.FinanceHandler
	Commission *api.CommissionHandler
	Tenant     *api.TenantHandler
	Public     *api.PublicHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware, rateLimiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.RequestLogger(slog.Default()))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		tenants := apiGroup.Group("/tenants/:tenantId")
		tenants.Use(authMiddleware.RequireAuth())
		{
			addRoutes(tenants, []route{
				{Method: http.MethodPost, Path: "/bookings", Handler: h.Booking.CreateBooking},
				{Method: http.MethodGet, Path: "/bookings", Handler: h.Booking.ListBookings},
				{Method: http.MethodGet, Path: "/finance", Handler: h.Finance.GetSnapshot},
				{Method: http.MethodPost, Path: "/finance/recompute", Handler: h.Finance.Recompute},
				{Method: http.MethodGet, Path: "/commissions", Handler: h.Commission.Overview},
				{Method: http.MethodPatch, Path: "/settings", Handler: h.Tenant.UpdateSettings},
				{Method: http.MethodPost, Path: "/booking-link", Handler: h.Tenant.IssueBookingLink},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.GetBooking},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.CancelBooking},
				{Method: http.MethodPost, Path: "/:id/reschedule", Handler: h.Booking.RescheduleBooking},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: h.Booking.ConfirmBooking},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Booking.CompleteBooking},
				{Method: http.MethodPost, Path: "/:id/no-show", Handler: h.Booking.MarkNoShow},
			})
		}

		professionals := apiGroup.Group("/professionals/:id")
		professionals.Use(authMiddleware.RequireAuth())
		{
			addRoutes(professionals, []route{
				{Method: http.MethodGet, Path: "/blocked-times", Handler: h.Schedule.GetBlockedTimes},
				{Method: http.MethodPost, Path: "/blocked-times", Handler: h.Schedule.BlockTime},
				{Method: http.MethodGet, Path: "/conflicts", Handler: h.Schedule.CheckConflict},
				{Method: http.MethodGet, Path: "/next-available", Handler: h.Schedule.NextAvailable},
				{Method: http.MethodGet, Path: "/queue", Handler: h.Queue.GetQueueStatus},
				{Method: http.MethodGet, Path: "/commissions", Handler: h.Commission.Calculate},
				{Method: http.MethodPost, Path: "/payouts", Handler: h.Commission.RecordPayout},
			})
		}

		blocked := apiGroup.Group("/blocked-times")
		blocked.Use(authMiddleware.RequireAuth())
		{
			addRoutes(blocked, []route{
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Schedule.UnblockTime},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth())
		{
			addRoutes(admin, []route{
				{Method: http.MethodDelete, Path: "/bookings/:id", Handler: h.Booking.DeleteBooking},
			})
		}

		public := apiGroup.Group("/public/:token")
		public.Use(rateLimiter.Middleware(), authMiddleware.RequireBookingLink())
		{
			addRoutes(public, []route{
				{Method: http.MethodPost, Path: "/bookings", Handler: h.Public.CreateBooking},
				{Method: http.MethodGet, Path: "/professionals/:id/queue", Handler: h.Public.GetQueueStatus},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
