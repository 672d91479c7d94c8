package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/couchconnector/buildingrez-api/internal/models"
	appErrors "github.com/couchconnector/buildingrez-api/pkg/errors"
	"github.com/couchconnector/buildingrez-api/pkg/export"
)

type detailedSlotLister interface {
	ListDetailed(ctx context.Context, status models.SlotStatus) ([]models.SlotDetail, error)
}

// ExportService renders the reservation ledger as downloadable CSV or PDF
// documents.
type ExportService struct {
	slots  detailedSlotLister
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService instantiates ExportService.
func NewExportService(slots detailedSlotLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		slots:  slots,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

var exportHeaders = []string{"Building", "Room", "Date", "Hour", "Reserved By", "Status", "Submitted"}

// ReservationsCSV exports reservations, optionally filtered by status.
func (s *ExportService) ReservationsCSV(ctx context.Context, status models.SlotStatus) ([]byte, error) {
	data, err := s.dataset(ctx, status)
	if err != nil {
		return nil, err
	}
	out, err := s.csv.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
	}
	return out, nil
}

// ReservationsPDF exports reservations, optionally filtered by status.
func (s *ExportService) ReservationsPDF(ctx context.Context, status models.SlotStatus) ([]byte, error) {
	data, err := s.dataset(ctx, status)
	if err != nil {
		return nil, err
	}
	title := "Reservations"
	if status != "" {
		title = fmt.Sprintf("Reservations (%s)", status)
	}
	out, err := s.pdf.Render(data, title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
	}
	return out, nil
}

func (s *ExportService) dataset(ctx context.Context, status models.SlotStatus) (export.Dataset, error) {
	if status != "" && !status.IsValid() {
		return export.Dataset{}, appErrors.Clone(appErrors.ErrValidation, "unknown status filter")
	}
	slots, err := s.slots.ListDetailed(ctx, status)
	if err != nil {
		return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reservations for export")
	}

	rows := make([]map[string]string, 0, len(slots))
	for _, slot := range slots {
		rows = append(rows, map[string]string{
			"Building":    slot.BuildingName,
			"Room":        slot.RoomNumber,
			"Date":        slot.SlotDate.Format(models.DateFormat),
			"Hour":        strconv.Itoa(slot.SlotHour),
			"Reserved By": slot.ReservedBy,
			"Status":      string(slot.Status),
			"Submitted":   slot.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}, nil
}
