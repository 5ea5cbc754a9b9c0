package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/audit"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/config"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/petgroom-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/lock"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/middleware"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/notify"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/stream"
	ucBooking "github.com/BruksfildServices01/petgroom-scheduler/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	locker lock.Locker,
	notifier *notify.Dispatcher,
	hub *stream.Hub,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES — BOOKINGS
	// ======================================================
	createPublicUC := ucBooking.NewCreatePublicBooking(
		bookingRepo,
		locker,
		notifier,
		hub,
		auditDispatcher,
	)

	createAdminUC := ucBooking.NewCreateAdminBooking(
		bookingRepo,
		locker,
		notifier,
		hub,
		auditDispatcher,
	)

	transitionUC := ucBooking.NewTransitionBooking(
		bookingRepo,
		notifier,
		hub,
		auditDispatcher,
	)

	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)
	listByDateUC := ucBooking.NewListBookingsByDate(bookingRepo)
	listByMonthUC := ucBooking.NewListBookingsByMonth(bookingRepo)
	statsUC := ucBooking.NewGetDashboardStats(bookingRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	petshopHandler := handlers.NewPetshopHandler(db)

	serviceHandler := handlers.NewGroomingServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		createAdminUC,
		transitionUC,
		listByDateUC,
		listByMonthUC,
		statsUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	streamHandler := handlers.NewStreamHandler(hub)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC, createPublicUC)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.AvailabilityForClient)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/petshop", petshopHandler.GetMePetshop)
			secured.PATCH("/me/petshop", petshopHandler.UpdateMePetshop)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/month", bookingHandler.ListByMonth)
			secured.PATCH("/me/bookings/:id/confirm", bookingHandler.Confirm)
			secured.PATCH("/me/bookings/:id/complete", bookingHandler.Complete)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)

			secured.GET("/me/stats", bookingHandler.Stats)
			secured.GET("/me/stream", streamHandler.Feed)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
