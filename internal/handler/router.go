package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"restobook/internal/domain/user"
	"restobook/internal/handler/api"
	"restobook/internal/handler/middleware"
	"restobook/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth     *api.AuthHandler
	Table    *api.TableHandler
	Booking  *api.BookingHandler
	Order    *api.OrderHandler
	Payment  *api.PaymentHandler
	Menu     *api.MenuHandler
	Feedback *api.FeedbackHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMw *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMw.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		// Reading the menu is public; managing it is an admin concern.
		menu := apiGroup.Group("/menu")
		{
			addRoutes(menu, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Menu.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Menu.Get},
			})

			menuAdmin := menu.Group("")
			menuAdmin.Use(authMw.RequireAuth(), authMw.RequireRoles(user.RoleAdmin))
			addRoutes(menuAdmin, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Menu.Create},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Menu.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Menu.Delete},
			})
		}

		tables := apiGroup.Group("/tables")
		tables.Use(authMw.RequireAuth())
		{
			addRoutes(tables, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Table.List},
				{Method: http.MethodGet, Path: "/available", Handler: h.Table.ListAvailable},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Table.Get},
			})

			tableAdmin := tables.Group("")
			tableAdmin.Use(authMw.RequireRoles(user.RoleAdmin))
			addRoutes(tableAdmin, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Table.Create},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Table.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Table.Delete},
			})

			tableStaff := tables.Group("")
			tableStaff.Use(authMw.RequireStaff())
			addRoutes(tableStaff, []route{
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Table.SetStatus},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMw.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel},
			})

			bookingStaff := bookings.Group("")
			bookingStaff.Use(authMw.RequireStaff())
			addRoutes(bookingStaff, []route{
				{Method: http.MethodGet, Path: "/by-date", Handler: h.Booking.ListByDate},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: h.Booking.Confirm},
				{Method: http.MethodPost, Path: "/:id/checkin", Handler: h.Booking.CheckIn},
				{Method: http.MethodPost, Path: "/:id/checkout", Handler: h.Booking.CheckOut},
				{Method: http.MethodPost, Path: "/:id/no-show", Handler: h.Booking.MarkNoShow},
			})
		}

		orders := apiGroup.Group("/orders")
		orders.Use(authMw.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Order.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Order.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Order.Get},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Order.Cancel},
			})

			orderStaff := orders.Group("")
			orderStaff.Use(authMw.RequireStaff())
			addRoutes(orderStaff, []route{
				{Method: http.MethodGet, Path: "/by-status", Handler: h.Order.ListByStatus},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Order.UpdateStatus},
			})

			orderAdmin := orders.Group("")
			orderAdmin.Use(authMw.RequireRoles(user.RoleAdmin))
			addRoutes(orderAdmin, []route{
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Order.Delete},
			})
		}

		payments := apiGroup.Group("/payments")
		payments.Use(authMw.RequireAuth())
		{
			addRoutes(payments, []route{
				{Method: http.MethodPost, Path: "/intent", Handler: h.Payment.CreateIntent},
				{Method: http.MethodPost, Path: "/verify", Handler: h.Payment.Verify},
				{Method: http.MethodGet, Path: "/order/:orderId", Handler: h.Payment.GetByOrder},
			})

			paymentStaff := payments.Group("")
			paymentStaff.Use(authMw.RequireStaff())
			addRoutes(paymentStaff, []route{
				{Method: http.MethodPost, Path: "/process", Handler: h.Payment.Process},
			})
		}

		feedback := apiGroup.Group("/feedback")
		feedback.Use(authMw.RequireAuth())
		{
			addRoutes(feedback, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Feedback.Submit},
				{Method: http.MethodGet, Path: "", Handler: h.Feedback.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Feedback.Get},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Feedback.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Feedback.Delete},
			})

			feedbackStaff := feedback.Group("")
			feedbackStaff.Use(authMw.RequireStaff())
			addRoutes(feedbackStaff, []route{
				{Method: http.MethodGet, Path: "/all", Handler: h.Feedback.ListAll},
				{Method: http.MethodGet, Path: "/stats", Handler: h.Feedback.Stats},
				{Method: http.MethodPut, Path: "/:id/status", Handler: h.Feedback.Moderate},
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
