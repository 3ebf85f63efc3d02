package appointment

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salvadodental/booking-api/internal/middleware"
	"github.com/salvadodental/booking-api/internal/model"
	"github.com/salvadodental/booking-api/internal/service/appointment"
	"github.com/salvadodental/booking-api/pkg/errors"
	"github.com/salvadodental/booking-api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the shared appointment surface. Lifecycle mutations
// and direct booking are doctor-only; they are registered separately.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.Book)
	r.GET("", h.List)
	r.GET("/:id", h.Get)
}

func (h *Handler) RegisterDoctorRoutes(r *gin.RouterGroup) {
	r.POST("/direct", h.DirectCreate)
	r.GET("/stats", h.Stats)
	r.POST("/:id/confirm", h.Confirm)
	r.POST("/:id/finish", h.Finish)
	r.POST("/:id/cancel", h.Cancel)
	r.POST("/:id/reschedule", h.Reschedule)
}

// Book creates an appointment for the authenticated client. The doctor's
// trusted path is DirectCreate.
func (h *Handler) Book(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized(nil))
		return
	}
	if claims.Role != model.RoleClient {
		httputil.RespondWithError(c, errors.Forbidden("only clients can request appointments"))
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	apt, err := h.service.Book(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, apt)
}

func (h *Handler) DirectCreate(c *gin.Context) {
	var req model.DirectCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	apt, err := h.service.DirectCreate(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, apt)
}

// List scopes by role: clients see their own history, the doctor sees the
// whole agenda with client profiles attached.
func (h *Handler) List(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized(nil))
		return
	}

	filter := model.AppointmentFilter{}
	if claims.Role == model.RoleDoctor {
		filter.WithClients = true
	} else {
		filter.ClientID = claims.UserID
	}
	if status := c.Query("status"); status != "" {
		s := model.AppointmentStatus(status)
		if !s.Valid() {
			httputil.RespondWithError(c, errors.Validation("invalid status filter", nil))
			return
		}
		filter.Status = s
	}

	appointments, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) Get(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized(nil))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid appointment ID", err))
		return
	}

	apt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if claims.Role != model.RoleDoctor && apt.ClientID != claims.UserID {
		httputil.RespondWithError(c, errors.NotFound("appointment", nil))
		return
	}

	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, stats)
}

func (h *Handler) Confirm(c *gin.Context) {
	h.mutate(c, func(id uuid.UUID) (*model.Appointment, error) {
		return h.service.Confirm(c.Request.Context(), id)
	})
}

func (h *Handler) Finish(c *gin.Context) {
	var req model.FinishAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	h.mutate(c, func(id uuid.UUID) (*model.Appointment, error) {
		return h.service.Finish(c.Request.Context(), id, req.Rating)
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	h.mutate(c, func(id uuid.UUID) (*model.Appointment, error) {
		return h.service.Cancel(c.Request.Context(), id)
	})
}

func (h *Handler) Reschedule(c *gin.Context) {
	h.mutate(c, func(id uuid.UUID) (*model.Appointment, error) {
		return h.service.RescheduleToNextDay(c.Request.Context(), id)
	})
}

func (h *Handler) mutate(c *gin.Context, fn func(uuid.UUID) (*model.Appointment, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid appointment ID", err))
		return
	}

	apt, err := fn(id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, apt)
}
