package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/couchconnector/buildingrez-api/internal/models"
	"github.com/couchconnector/buildingrez-api/internal/service"
	appErrors "github.com/couchconnector/buildingrez-api/pkg/errors"
	"github.com/couchconnector/buildingrez-api/pkg/response"
)

type availabilityService interface {
	Search(ctx context.Context, req service.SearchAvailabilityRequest) ([]models.RoomWithBuilding, error)
}

// AvailabilityHandler wires the room availability search to HTTP.
type AvailabilityHandler struct {
	service availabilityService
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(service availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// Search godoc
// @Summary Search available rooms
// @Tags Availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param startHour query int true "Start hour (7-19)"
// @Param endHour query int true "End hour, exclusive (8-20)"
// @Param buildingId query string false "Building ID"
// @Param floor query int false "Floor"
// @Success 200 {object} response.Envelope
// @Router /availability [get]
func (h *AvailabilityHandler) Search(c *gin.Context) {
	var req service.SearchAvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid availability query"))
		return
	}
	rooms, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, map[string]interface{}{"count": len(rooms)})
}
