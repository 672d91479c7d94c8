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

type seriesService interface {
	Create(ctx context.Context, req service.CreateSeriesRequest) (*service.CreateSeriesResult, error)
	List(ctx context.Context) ([]models.SeriesSummary, error)
	Delete(ctx context.Context, req service.DeleteSeriesRequest) (int64, error)
}

// SeriesHandler wires recurring series management to HTTP.
type SeriesHandler struct {
	service seriesService
}

// NewSeriesHandler constructs the handler.
func NewSeriesHandler(service seriesService) *SeriesHandler {
	return &SeriesHandler{service: service}
}

// Create godoc
// @Summary Create a recurring weekly series
// @Tags Series
// @Accept json
// @Produce json
// @Param payload body service.CreateSeriesRequest true "Series"
// @Success 201 {object} response.Envelope
// @Router /admin/series [post]
func (h *SeriesHandler) Create(c *gin.Context) {
	var req service.CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid series payload"))
		return
	}
	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List godoc
// @Summary List future recurring series
// @Tags Series
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/series [get]
func (h *SeriesHandler) List(c *gin.Context) {
	series, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, series, map[string]interface{}{"count": len(series)})
}

// Delete godoc
// @Summary Delete a series from a date onward
// @Tags Series
// @Accept json
// @Produce json
// @Param payload body service.DeleteSeriesRequest true "Series key"
// @Success 200 {object} response.Envelope
// @Router /admin/series [delete]
func (h *SeriesHandler) Delete(c *gin.Context) {
	var req service.DeleteSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing series information"))
		return
	}
	count, err := h.service.Delete(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": count})
}
