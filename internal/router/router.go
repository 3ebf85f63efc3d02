package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	appointmenthandler "github.com/salvadodental/booking-api/internal/handler/appointment"
	authhandler "github.com/salvadodental/booking-api/internal/handler/auth"
	clinichandler "github.com/salvadodental/booking-api/internal/handler/clinic"
	healthhandler "github.com/salvadodental/booking-api/internal/handler/health"
	profilehandler "github.com/salvadodental/booking-api/internal/handler/profile"
	"github.com/salvadodental/booking-api/internal/middleware"
	"github.com/salvadodental/booking-api/internal/model"
	"github.com/salvadodental/booking-api/pkg/logger"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)
)

type Handlers struct {
	Auth        *authhandler.Handler
	Appointment *appointmenthandler.Handler
	Clinic      *clinichandler.Handler
	Profile     *profilehandler.Handler
	Health      *healthhandler.Handler
}

type Config struct {
	RateLimit rate.Limit
	RateBurst int
}

// New assembles the HTTP surface. Route groups encode role access: the
// doctor-only groups sit behind RequireRole so handlers never re-check.
func New(h Handlers, authMW *middleware.AuthMiddleware, log *logger.Logger, cfg Config) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(metrics())

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  cfg.RateLimit,
			Burst: cfg.RateBurst,
		})
		r.Use(limiter.RateLimit())
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	h.Health.RegisterRoutes(r)

	v1 := r.Group("/api/v1")

	h.Auth.RegisterRoutes(v1.Group("/auth"))

	authed := v1.Group("")
	authed.Use(authMW.Authenticate())

	h.Appointment.RegisterRoutes(authed.Group("/appointments"))
	h.Clinic.RegisterRoutes(authed.Group("/clinic"))
	h.Profile.RegisterRoutes(authed.Group("/profiles"))

	doctor := authed.Group("")
	doctor.Use(authMW.RequireRole(model.RoleDoctor))

	h.Appointment.RegisterDoctorRoutes(doctor.Group("/appointments"))
	h.Clinic.RegisterDoctorRoutes(doctor.Group("/clinic"))
	h.Profile.RegisterDoctorRoutes(doctor.Group("/profiles"))

	return r
}

func metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		requestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
			return model.PaymentMethod(fl.Field().String()).Valid()
		})
	}
}
