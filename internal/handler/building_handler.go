package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/couchconnector/buildingrez-api/internal/models"
	"github.com/couchconnector/buildingrez-api/pkg/response"
)

type buildingService interface {
	List(ctx context.Context) ([]models.BuildingSummary, error)
	Floors(ctx context.Context, buildingID string) ([]int, error)
	Rooms(ctx context.Context, buildingID string) ([]models.RoomWithBuilding, error)
}

// BuildingHandler wires the building/room directory to HTTP.
type BuildingHandler struct {
	service buildingService
}

// NewBuildingHandler constructs the handler.
func NewBuildingHandler(service buildingService) *BuildingHandler {
	return &BuildingHandler{service: service}
}

// List godoc
// @Summary List buildings with room counts
// @Tags Buildings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /buildings [get]
func (h *BuildingHandler) List(c *gin.Context) {
	buildings, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, buildings)
}

// Floors godoc
// @Summary List distinct floors of a building
// @Tags Buildings
// @Produce json
// @Param id path string true "Building ID"
// @Success 200 {object} response.Envelope
// @Router /buildings/{id}/floors [get]
func (h *BuildingHandler) Floors(c *gin.Context) {
	floors, err := h.service.Floors(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, floors)
}

// Rooms godoc
// @Summary List rooms, optionally scoped to one building
// @Tags Rooms
// @Produce json
// @Param buildingId query string false "Building ID"
// @Success 200 {object} response.Envelope
// @Router /admin/rooms [get]
func (h *BuildingHandler) Rooms(c *gin.Context) {
	buildingID := strings.TrimSpace(c.Query("buildingId"))
	rooms, err := h.service.Rooms(c.Request.Context(), buildingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, map[string]interface{}{"count": len(rooms)})
}
