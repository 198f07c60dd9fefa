package server

import (
	"hotelier/internal/middleware"
	"hotelier/internal/modules/auth"
	"hotelier/internal/modules/booking"
	"hotelier/internal/modules/catalog"
	"hotelier/internal/modules/payment"
	"hotelier/internal/notification"
	"hotelier/internal/pkg/jwt"
	"hotelier/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New assembles the HTTP engine: repositories, services, handlers and
// the route tree. Everything hangs off the one gorm handle.
func New(db *gorm.DB, jwtService *jwt.Service) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	roomTypeRepo := repository.NewRoomTypeRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	itemRepo := repository.NewServiceItemRepository(db)
	lineRepo := repository.NewServiceLineRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	hub := notification.NewHub()
	notifier := notification.NewNotifier(hub)

	authService := auth.NewService(userRepo, bookingRepo, jwtService)
	catalogService := catalog.NewService(roomTypeRepo, roomRepo, itemRepo, bookingRepo, lineRepo)
	bookingService := booking.NewService(bookingRepo, roomRepo, roomTypeRepo, itemRepo, lineRepo, userRepo, notifier)
	paymentService := payment.NewService(paymentRepo, bookingRepo, notifier)

	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService)
	bookingHandler := booking.NewHandler(bookingService)
	paymentHandler := payment.NewHandler(paymentService)
	wsHandler := notification.NewHandler(hub, jwtService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/ws/events", wsHandler.HandleWebSocket)

	api := r.Group("/api/v1")

	public := api.Group("")
	authHandler.RegisterPublicRoutes(public)
	catalogHandler.RegisterPublicRoutes(public)
	bookingHandler.RegisterPublicRoutes(public)

	authed := api.Group("")
	authed.Use(middleware.JWTAuth(jwtService))

	staff := middleware.RequireRole("manager", "admin")
	authHandler.RegisterRoutes(authed, middleware.AdminOnly())
	bookingHandler.RegisterRoutes(authed, staff)

	staffGroup := authed.Group("")
	staffGroup.Use(staff)
	catalogHandler.RegisterStaffRoutes(staffGroup)
	paymentHandler.RegisterRoutes(staffGroup)

	return r
}
