package router

import (
	"hospital_backend/internal/handlers"
	"hospital_backend/internal/middleware"
	"hospital_backend/internal/models"

	"github.com/gin-gonic/gin"
)

func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.Login)
}

// SetupAuthenticatedAuthRoutes expects group to already carry AuthMiddleware.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.Me)
	group.POST("/logout", authHandler.Logout)
	group.POST("/change-password", authHandler.ChangePassword)

	adminOnly := group.Group("")
	adminOnly.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		adminOnly.POST("/register", authHandler.Register)
		adminOnly.POST("/reset-password", authHandler.ResetPassword)
	}
}

// SetupEmployeeRoutes sets up employee records and the attendance clock.
func SetupEmployeeRoutes(authenticatedGroup *gin.RouterGroup, employeeHandler *handlers.EmployeeHandler) {
	employeeRoutes := authenticatedGroup.Group("/employees")
	{
		employeeRoutes.GET("", employeeHandler.GetEmployees)
		employeeRoutes.GET("/:id", employeeHandler.GetEmployeeByID)
		employeeRoutes.GET("/:id/hours-summary", employeeHandler.GetHoursSummary)

		employeeRoutes.POST("/clock-in", employeeHandler.ClockIn)
		employeeRoutes.POST("/clock-out", employeeHandler.ClockOut)
		employeeRoutes.GET("/clock-records/:employee_id", employeeHandler.GetClockRecords)

		adminRoutes := employeeRoutes.Group("")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.POST("", employeeHandler.CreateEmployee)
			adminRoutes.PUT("/:id", employeeHandler.UpdateEmployee)
		}
	}
}

// SetupPaymentRequestRoutes sets up the payment request workflow.
func SetupPaymentRequestRoutes(authenticatedGroup *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	paymentRoutes := authenticatedGroup.Group("/payment-requests")
	{
		paymentRoutes.GET("", paymentHandler.GetPaymentRequests)
		paymentRoutes.GET("/:id", paymentHandler.GetPaymentRequestByID)

		financeRoutes := paymentRoutes.Group("")
		financeRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleFinance))
		{
			financeRoutes.POST("", paymentHandler.CreatePaymentRequest)
			financeRoutes.PATCH("/:id/status", paymentHandler.UpdatePaymentStatus)
		}
	}
}

func SetupPatientRoutes(authenticatedGroup *gin.RouterGroup, patientHandler *handlers.PatientHandler) {
	patientRoutes := authenticatedGroup.Group("/patients")
	{
		patientRoutes.POST("/register", patientHandler.RegisterPatient)
		patientRoutes.GET("", patientHandler.GetPatients)
		patientRoutes.GET("/:id", patientHandler.GetPatientByID)
		patientRoutes.PUT("/:id", patientHandler.UpdatePatient)
		patientRoutes.DELETE("/:id", patientHandler.DeletePatient)
		patientRoutes.GET("/:id/wristband", patientHandler.GetWristband)
	}
}

func SetupAppointmentRoutes(authenticatedGroup *gin.RouterGroup, appointmentHandler *handlers.AppointmentHandler) {
	appointmentRoutes := authenticatedGroup.Group("/appointments")
	{
		appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
		appointmentRoutes.GET("", appointmentHandler.GetAppointments)
		appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
		appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
		appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
	}
}

func SetupLabRoutes(authenticatedGroup *gin.RouterGroup, clinicalHandler *handlers.ClinicalHandler) {
	labRoutes := authenticatedGroup.Group("/lab")
	{
		labRoutes.POST("/records", clinicalHandler.CreateLabRecord)
		labRoutes.GET("/records", clinicalHandler.GetLabRecords)
		labRoutes.GET("/records/:id", clinicalHandler.GetLabRecordByID)
		labRoutes.PUT("/records/:id", clinicalHandler.UpdateLabRecord)
		labRoutes.GET("/patient/:patient_id", clinicalHandler.GetPatientLabRecords)
	}
}

func SetupMedicalRecordRoutes(authenticatedGroup *gin.RouterGroup, clinicalHandler *handlers.ClinicalHandler) {
	recordRoutes := authenticatedGroup.Group("/medical-records")
	{
		recordRoutes.POST("", clinicalHandler.CreateMedicalRecord)
		recordRoutes.GET("/:id", clinicalHandler.GetMedicalRecordByID)
		recordRoutes.GET("/patient/:patient_id", clinicalHandler.GetPatientMedicalRecords)
	}
}

func SetupPharmacyRoutes(authenticatedGroup *gin.RouterGroup, stockHandler *handlers.StockHandler) {
	pharmacyRoutes := authenticatedGroup.Group("/pharmacy")
	{
		pharmacyRoutes.POST("", stockHandler.CreateMedicine)
		pharmacyRoutes.GET("", stockHandler.GetMedicines)
		pharmacyRoutes.GET("/low-stock/alert", stockHandler.GetLowStockMedicines)
		pharmacyRoutes.GET("/:id", stockHandler.GetMedicineByID)
		pharmacyRoutes.PUT("/:id", stockHandler.UpdateMedicine)
		pharmacyRoutes.DELETE("/:id", stockHandler.DeleteMedicine)
	}
}

func SetupInventoryRoutes(authenticatedGroup *gin.RouterGroup, stockHandler *handlers.StockHandler) {
	inventoryRoutes := authenticatedGroup.Group("/inventory")
	{
		inventoryRoutes.POST("", stockHandler.CreateInventoryItem)
		inventoryRoutes.GET("", stockHandler.GetInventoryItems)
		inventoryRoutes.GET("/low-stock/alert", stockHandler.GetLowStockInventory)
		inventoryRoutes.GET("/:id", stockHandler.GetInventoryItemByID)
		inventoryRoutes.PUT("/:id", stockHandler.UpdateInventoryItem)
		inventoryRoutes.DELETE("/:id", stockHandler.DeleteInventoryItem)
	}
}

func SetupCleaningRoutes(authenticatedGroup *gin.RouterGroup, cleaningHandler *handlers.CleaningHandler) {
	cleaningRoutes := authenticatedGroup.Group("/cleaning")
	{
		cleaningRoutes.POST("/logs", cleaningHandler.CreateLog)
		cleaningRoutes.GET("/logs", cleaningHandler.GetLogs)
		cleaningRoutes.GET("/logs/:id", cleaningHandler.GetLogByID)
		cleaningRoutes.PUT("/logs/:id", cleaningHandler.UpdateLog)
		cleaningRoutes.GET("/history/:cleaner_id", cleaningHandler.GetCleanerHistory)
	}
}

func SetupReminderRoutes(authenticatedGroup *gin.RouterGroup, reminderHandler *handlers.ReminderHandler) {
	reminderRoutes := authenticatedGroup.Group("/reminders")
	{
		reminderRoutes.POST("", reminderHandler.CreateReminder)
		reminderRoutes.GET("", reminderHandler.GetReminders)
		reminderRoutes.GET("/pending/patient/:patient_id", reminderHandler.GetPendingForPatient)
		reminderRoutes.GET("/:id", reminderHandler.GetReminderByID)
		reminderRoutes.PUT("/:id", reminderHandler.UpdateReminder)
		reminderRoutes.POST("/:id/mark-sent", reminderHandler.MarkSent)
	}
}

// SetupDashboardRoutes sets up the admin dashboard.
func SetupDashboardRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	dashboardRoutes := authenticatedGroup.Group("/dashboard")
	dashboardRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		dashboardRoutes.GET("/summary", reportHandler.GetDashboardSummary)
	}
}
