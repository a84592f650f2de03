package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberflow/barberflow-server/internal/audit"
	"github.com/barberflow/barberflow-server/internal/config"
	"github.com/barberflow/barberflow-server/internal/handlers"
	"github.com/barberflow/barberflow-server/internal/insight"
	"github.com/barberflow/barberflow-server/internal/middleware"
	"github.com/barberflow/barberflow-server/internal/store"
	ucbooking "github.com/barberflow/barberflow-server/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	db *gorm.DB, // nil no modo degradado (somente cache local)
	st *store.Store,
	insightProvider *insight.Provider,
	loc *time.Location,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucbooking.NewCreateBooking(st, auditDispatcher, loc)
	completeUC := ucbooking.NewCompleteAppointment(st, auditDispatcher, loc)
	cancelUC := ucbooking.NewCancelAppointment(st, auditDispatcher, loc)
	listByDateUC := ucbooking.NewListAppointmentsByDate(st)
	availabilityUC := ucbooking.NewGetAvailability(st)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(cfg)

	publicHandler := handlers.NewPublicHandler(
		createBookingUC,
		availabilityUC,
		loc,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		listByDateUC,
		completeUC,
		cancelUC,
		st,
		insightProvider,
		loc,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (wizard de agendamento)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// PIN → SESSÃO
		// ------------------------------
		api.POST("/auth/session", authHandler.CreateSession)

		// ------------------------------
		// API PRIVADA (painel do barbeiro)
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/insight", appointmentHandler.Insight)
		}
	}
}
