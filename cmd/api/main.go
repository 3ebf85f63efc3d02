package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/salvadodental/booking-api/internal/config"
	"github.com/salvadodental/booking-api/internal/email"
	appointmenthandler "github.com/salvadodental/booking-api/internal/handler/appointment"
	authhandler "github.com/salvadodental/booking-api/internal/handler/auth"
	clinichandler "github.com/salvadodental/booking-api/internal/handler/clinic"
	healthhandler "github.com/salvadodental/booking-api/internal/handler/health"
	profilehandler "github.com/salvadodental/booking-api/internal/handler/profile"
	"github.com/salvadodental/booking-api/internal/middleware"
	"github.com/salvadodental/booking-api/internal/repository/postgres"
	"github.com/salvadodental/booking-api/internal/router"
	appointmentsvc "github.com/salvadodental/booking-api/internal/service/appointment"
	authsvc "github.com/salvadodental/booking-api/internal/service/auth"
	clinicsvc "github.com/salvadodental/booking-api/internal/service/clinic"
	notificationsvc "github.com/salvadodental/booking-api/internal/service/notification"
	profilesvc "github.com/salvadodental/booking-api/internal/service/profile"
	"github.com/salvadodental/booking-api/pkg/auth"
	"github.com/salvadodental/booking-api/pkg/logger"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load config")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	profileRepo := postgres.NewProfileRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	clinicRepo := postgres.NewClinicConfigRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	emailService := email.NewNoopService(log)
	if cfg.SMTP.Host != "" {
		emailService = email.NewSMTPService(email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	clinicService := clinicsvc.NewService(clinicRepo)
	notificationService := notificationsvc.NewService(notificationRepo, emailService, log)
	appointmentService := appointmentsvc.NewService(
		appointmentRepo,
		profileRepo,
		outboxRepo,
		clinicService,
		notificationService,
		appointmentsvc.Config{StrictTransitions: cfg.Lifecycle.StrictTransitions},
		log,
	)
	authService := authsvc.NewService(profileRepo, jwtService)
	profileService := profilesvc.NewService(profileRepo)

	engine := router.New(
		router.Handlers{
			Auth:        authhandler.NewHandler(authService),
			Appointment: appointmenthandler.NewHandler(appointmentService),
			Clinic:      clinichandler.NewHandler(clinicService),
			Profile:     profilehandler.NewHandler(profileService),
			Health:      healthhandler.NewHandler(db),
		},
		middleware.NewAuthMiddleware(jwtService),
		log,
		router.Config{
			RateLimit: rate.Limit(cfg.Server.RateLimit),
			RateBurst: cfg.Server.RateBurst,
		},
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info("starting API server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "forced shutdown")
	}
}
