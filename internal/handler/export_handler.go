package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/couchconnector/buildingrez-api/internal/models"
	appErrors "github.com/couchconnector/buildingrez-api/pkg/errors"
	"github.com/couchconnector/buildingrez-api/pkg/response"
)

type exportService interface {
	ReservationsCSV(ctx context.Context, status models.SlotStatus) ([]byte, error)
	ReservationsPDF(ctx context.Context, status models.SlotStatus) ([]byte, error)
}

// ExportHandler streams reservation exports as file downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Reservations godoc
// @Summary Export reservations as CSV or PDF
// @Tags Exports
// @Produce octet-stream
// @Param format query string false "csv (default) or pdf"
// @Param status query string false "pending|approved|rejected"
// @Success 200 {file} binary
// @Router /admin/reservations/export [get]
func (h *ExportHandler) Reservations(c *gin.Context) {
	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "csv")))
	status := models.SlotStatus(strings.TrimSpace(c.Query("status")))

	var (
		out         []byte
		err         error
		contentType string
		ext         string
	)
	switch format {
	case "csv":
		out, err = h.service.ReservationsCSV(c.Request.Context(), status)
		contentType, ext = "text/csv", "csv"
	case "pdf":
		out, err = h.service.ReservationsPDF(c.Request.Context(), status)
		contentType, ext = "application/pdf", "pdf"
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("reservations-%s.%s", time.Now().Format("20060102-150405"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, out)
}
