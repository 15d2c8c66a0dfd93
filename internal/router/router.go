package router

import (
	"net/http"

	"hospital_backend/internal/handlers"
	"hospital_backend/internal/metrics"
	"hospital_backend/internal/middleware"
	"hospital_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the API exposes.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Employee    *handlers.EmployeeHandler
	Payment     *handlers.PaymentHandler
	Patient     *handlers.PatientHandler
	Appointment *handlers.AppointmentHandler
	Clinical    *handlers.ClinicalHandler
	Stock       *handlers.StockHandler
	Cleaning    *handlers.CleaningHandler
	Reminder    *handlers.ReminderHandler
	Report      *handlers.ReportHandler
}

// Setup registers the operational endpoints and the /api/v1 tree on engine.
func Setup(engine *gin.Engine, h Handlers, tokens *utils.TokenManager) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	engine.GET("/metrics", metrics.Handler())

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), h.Auth)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(tokens))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), h.Auth)
		SetupEmployeeRoutes(authenticated, h.Employee)
		SetupPaymentRequestRoutes(authenticated, h.Payment)
		SetupPatientRoutes(authenticated, h.Patient)
		SetupAppointmentRoutes(authenticated, h.Appointment)
		SetupLabRoutes(authenticated, h.Clinical)
		SetupMedicalRecordRoutes(authenticated, h.Clinical)
		SetupPharmacyRoutes(authenticated, h.Stock)
		SetupInventoryRoutes(authenticated, h.Stock)
		SetupCleaningRoutes(authenticated, h.Cleaning)
		SetupReminderRoutes(authenticated, h.Reminder)
		SetupDashboardRoutes(authenticated, h.Report)
	}
}
