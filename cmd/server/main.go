package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital_backend/internal/cache"
	"hospital_backend/internal/config"
	"hospital_backend/internal/database"
	"hospital_backend/internal/handlers"
	"hospital_backend/internal/metrics"
	"hospital_backend/internal/middleware"
	"hospital_backend/internal/models"
	"hospital_backend/internal/repositories"
	"hospital_backend/internal/router"
	"hospital_backend/internal/services"
	"hospital_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func fatal(err error, msg string) {
	utils.LogError(err, msg)
	os.Exit(1)
}

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)
	if cfg.EnvFileErr != nil {
		utils.LogDebug("No .env file loaded", map[string]interface{}{"reason": cfg.EnvFileErr.Error()})
	}

	if err := utils.RegisterValidators(models.Roles); err != nil {
		fatal(err, "Failed to register validators")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(cfg.DSN(), cfg.DBApplySchema)
	if err != nil {
		fatal(err, "Failed to initialize database")
	}
	defer db.Close()
	utils.LogInfo("Database initialized", map[string]interface{}{"host": cfg.DBHost, "name": cfg.DBName})

	var locker cache.ClockLocker = cache.NewLocalClockLocker()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			fatal(err, "Redis ping failed")
		}
		cancel()
		defer func() {
			if err := redisClient.Close(); err != nil {
				utils.LogWarn("Redis close error", map[string]interface{}{"error": err.Error()})
			}
		}()
		locker = cache.NewRedisClockLocker(redisClient, cfg.ClockLockTTL)
		utils.LogInfo("Clock lock backed by redis", map[string]interface{}{"addr": cfg.RedisAddr})
	}

	// Repositories
	userRepo := repositories.NewUserRepository()
	employeeRepo := repositories.NewEmployeeRepository()
	paymentRepo := repositories.NewPaymentRepository()
	patientRepo := repositories.NewPatientRepository()
	appointmentRepo := repositories.NewAppointmentRepository()
	labRepo := repositories.NewLabRepository()
	medicalRepo := repositories.NewMedicalRecordRepository()
	pharmacyRepo := repositories.NewPharmacyRepository()
	inventoryRepo := repositories.NewInventoryRepository()
	cleaningRepo := repositories.NewCleaningRepository()
	reminderRepo := repositories.NewReminderRepository()
	reportRepo := repositories.NewReportRepository()
	tx := repositories.NewTransactor(db)

	// Services
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	policy := services.NewPasswordPolicy(cfg.UniversalPassword, cfg.PasswordTTL)

	authService := services.NewAuthService(userRepo, db, tx, tokens, policy)
	employeeService := services.NewEmployeeService(employeeRepo, userRepo, db)
	attendanceService := services.NewAttendanceService(employeeRepo, db, tx, locker, cfg.DayBoundary)
	paymentService := services.NewPaymentService(paymentRepo, employeeRepo, db, tx, cfg.StrictPaymentTransitions)
	patientService := services.NewPatientService(patientRepo, db)
	appointmentService := services.NewAppointmentService(appointmentRepo, patientRepo, userRepo, db)
	clinicalService := services.NewClinicalService(labRepo, medicalRepo, patientRepo, userRepo, db)
	pharmacyService := services.NewPharmacyService(pharmacyRepo, db, cfg.PharmacyLowStockLimit)
	inventoryService := services.NewInventoryService(inventoryRepo, db)
	cleaningService := services.NewCleaningService(cleaningRepo, db)
	reminderService := services.NewReminderService(reminderRepo, db, tx)
	reportService := services.NewReportService(reportRepo, db, cfg.PharmacyLowStockLimit)

	if cfg.SeedAdminEmail != "" {
		admin, err := authService.SeedAdmin(ctx, cfg.SeedAdminEmail, cfg.SeedAdminName)
		if err != nil {
			fatal(err, "Failed to seed admin account")
		}
		utils.LogInfo("Admin account ready", map[string]interface{}{"user_id": admin.ID, "email": admin.Email})
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(utils.GinLogger())
	engine.Use(metrics.GinMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	router.Setup(engine, router.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		Employee:    handlers.NewEmployeeHandler(employeeService, attendanceService),
		Payment:     handlers.NewPaymentHandler(paymentService),
		Patient:     handlers.NewPatientHandler(patientService),
		Appointment: handlers.NewAppointmentHandler(appointmentService),
		Clinical:    handlers.NewClinicalHandler(clinicalService),
		Stock:       handlers.NewStockHandler(pharmacyService, inventoryService),
		Cleaning:    handlers.NewCleaningHandler(cleaningService),
		Reminder:    handlers.NewReminderHandler(reminderService),
		Report:      handlers.NewReportHandler(reportService),
	}, tokens)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port, "day_boundary": string(cfg.DayBoundary)})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(err, "Failed to start server")
		}
	}()

	<-ctx.Done()
	utils.LogInfo("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Shutdown error")
	}
}
