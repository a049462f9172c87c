package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
	"github.com/mamadbah2/hotel-admin/internal/server/handlers"
	"github.com/mamadbah2/hotel-admin/internal/service/hotel"
	"github.com/mamadbah2/hotel-admin/pkg/clients/hotelapi"
)

// Handlers groups every HTTP handler mounted by New. Webhook is nil when
// WhatsApp is not configured.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Rooms         *handlers.CatalogHandler[models.Room]
	RoomStatuses  *handlers.CatalogHandler[models.RoomStatus]
	Units         *handlers.CatalogHandler[models.Unit]
	Profiles      *handlers.CatalogHandler[models.Profile]
	Purchases     *handlers.CatalogHandler[models.Purchase]
	Reservations  *handlers.ReservationHandler
	Users         *handlers.UserHandler
	Notifications *handlers.NotificationHandler
	Dashboard     *handlers.DashboardHandler
	Reports       *handlers.ReportHandler
	Webhook       *handlers.WebhookHandler
}

// AddCatalogs builds the five collection handlers over svc.
func (h *Handlers) AddCatalogs(svc *hotel.Service, logger *zap.Logger) {
	h.Rooms = handlers.NewCatalogHandler(svc.Rooms, "rooms", hotel.FilterRooms, logger)
	h.RoomStatuses = handlers.NewCatalogHandler(svc.Statuses, "room statuses", hotel.FilterStatuses, logger)
	h.Units = handlers.NewCatalogHandler[models.Unit](svc.Units, "units", nil, logger)
	h.Profiles = handlers.NewCatalogHandler(svc.Profiles, "profiles", hotel.FilterProfiles, logger)
	h.Purchases = handlers.NewCatalogHandler(svc.Purchases, "purchases", hotel.FilterPurchases, logger)
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, corsOrigins []string, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(corsMiddleware(corsOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if h.Webhook != nil {
		r.GET("/webhook", h.Webhook.Verify)
		r.POST("/webhook", h.Webhook.Receive)
		r.POST("/send-message", h.Webhook.SendMessage)
	}

	api := r.Group("/api")
	api.POST("/auth/login", h.Auth.Login)

	secured := api.Group("")
	secured.Use(forwardTokenMiddleware())
	{
		h.Rooms.Register(secured.Group("/chambres"))
		h.RoomStatuses.Register(secured.Group("/status-chambres"))
		h.Units.Register(secured.Group("/uniters"))
		h.Profiles.Register(secured.Group("/profils"))
		h.Purchases.Register(secured.Group("/achats"))

		reservations := secured.Group("/reservations")
		reservations.GET("", h.Reservations.List)
		reservations.POST("", h.Reservations.Create)
		reservations.GET("/:id", h.Reservations.Get)
		reservations.GET("/:id/form", h.Reservations.Form)
		reservations.PUT("/:id", h.Reservations.Update)
		reservations.DELETE("/:id", h.Reservations.Delete)

		secured.GET("/clients", h.Reservations.Clients)
		secured.GET("/departures", h.Reservations.Departures)

		users := secured.Group("/utilisateurs")
		users.GET("", h.Users.List)
		users.POST("", h.Users.Create)
		users.GET("/:id", h.Users.Get)
		users.PUT("/:id", h.Users.Update)
		users.DELETE("/:id", h.Users.Delete)

		notifications := secured.Group("/notifications")
		notifications.GET("", h.Notifications.List)
		notifications.POST("/:id/view", h.Notifications.View)
		notifications.DELETE("/:id", h.Notifications.Delete)

		dashboard := secured.Group("/dashboard")
		dashboard.GET("/summary", h.Dashboard.Summary)
		dashboard.GET("/timeline", h.Dashboard.Timeline)
		dashboard.GET("/calendar", h.Dashboard.Calendar)

		secured.GET("/reports/daily", h.Reports.Daily)
		secured.GET("/export/reservations.xlsx", h.Reports.ExportReservations)
		secured.GET("/export/achats.xlsx", h.Reports.ExportPurchases)
		secured.GET("/export/monthly.xlsx", h.Reports.ExportMonthly)
	}

	logger.Info("router initialized", zap.Bool("whatsapp", h.Webhook != nil), zap.Strings("cors_origins", corsOrigins))

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	})
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(handlers.RequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// forwardTokenMiddleware passes the caller's bearer token on to the hotel API.
func forwardTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok && token != "" {
			c.Request = c.Request.WithContext(hotelapi.WithToken(c.Request.Context(), strings.TrimSpace(token)))
		}
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(handlers.RequestIDKey)))
	}
}
