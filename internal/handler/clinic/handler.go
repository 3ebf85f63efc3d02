package clinic

import (
	"github.com/gin-gonic/gin"

	"github.com/salvadodental/booking-api/internal/model"
	"github.com/salvadodental/booking-api/internal/service/clinic"
	"github.com/salvadodental/booking-api/pkg/errors"
	"github.com/salvadodental/booking-api/pkg/httputil"
)

type Handler struct {
	service *clinic.Service
}

func NewHandler(service *clinic.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the read surface available to any authenticated user.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/config", h.GetConfig)
}

func (h *Handler) RegisterDoctorRoutes(r *gin.RouterGroup) {
	r.PATCH("/config", h.UpdateConfig)
	r.POST("/toggle", h.ToggleOpen)
}

func (h *Handler) GetConfig(c *gin.Context) {
	config, err := h.service.GetConfig(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, config)
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	var req model.UpdateClinicConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	config, err := h.service.UpdateConfig(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, config)
}

func (h *Handler) ToggleOpen(c *gin.Context) {
	config, err := h.service.ToggleOpen(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, config)
}
