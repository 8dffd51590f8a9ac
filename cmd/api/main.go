package main

import (
	"daybook/cmd/internal/config"
	"daybook/cmd/internal/domain/sqlite"
	"daybook/cmd/internal/domain/sqlite/repository"
	"daybook/cmd/internal/routes"
	"daybook/cmd/internal/service"
	"daybook/cmd/internal/storage"
	"daybook/cmd/internal/store"
	"daybook/cmd/internal/utils/validators"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	validate := validator.New()
	registerValidators(validate)

	// Init SQLite (durable key-value store)
	db, err := sqlite.Init(cfg.DBPath)
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	// Persistence chain: kv repository -> gateway -> store
	kvRepo := repository.NewStorageRepository(db)
	gateway := storage.NewGateway(kvRepo)
	apptStore := store.New(gateway)

	apptService := service.NewAppointmentService(apptStore, validate)
	apptRoutes := routes.NewAppointmentDefault(apptService)

	e := echo.New()
	if cfg.EnableCORS {
		e.Use(middleware.CORS())
	}
	if cfg.JWTSecret != "" {
		e.Use(routes.RequireToken(cfg.JWTSecret))
	}

	// Appointments
	e.GET("/api/appointments", apptRoutes.GetAppointments)
	e.POST("/api/appointments", apptRoutes.CreateAppointment)
	e.PUT("/api/appointments/:id", apptRoutes.UpdateAppointment)
	e.DELETE("/api/appointments/:id", apptRoutes.DeleteAppointment)
	e.PUT("/api/appointments/:id/reschedule", apptRoutes.RescheduleAppointment)

	// Day timeline and month grid
	e.GET("/api/appointments/day", apptRoutes.GetDay)
	e.GET("/api/calendar", apptRoutes.GetCalendar)
	e.GET("/api/timeline", apptRoutes.GetTimeline)

	// iCalendar feed
	e.GET("/api/export.ics", apptRoutes.ExportICS)

	err = e.Start(":" + cfg.Port)
	if err != nil {
		e.Logger.Fatal(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("dateonly", validators.IsDateOnly)
}
