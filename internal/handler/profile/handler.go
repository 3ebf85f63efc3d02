package profile

import (
	"github.com/gin-gonic/gin"

	"github.com/salvadodental/booking-api/internal/middleware"
	"github.com/salvadodental/booking-api/internal/service/profile"
	"github.com/salvadodental/booking-api/pkg/errors"
	"github.com/salvadodental/booking-api/pkg/httputil"
)

type Handler struct {
	service *profile.Service
}

func NewHandler(service *profile.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/me", h.Me)
}

func (h *Handler) RegisterDoctorRoutes(r *gin.RouterGroup) {
	r.GET("/clients", h.ListClients)
}

func (h *Handler) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized(nil))
		return
	}

	p, err := h.service.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) ListClients(c *gin.Context) {
	profiles, err := h.service.ListClients(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profiles)
}
