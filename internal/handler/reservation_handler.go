package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/couchconnector/buildingrez-api/internal/models"
	"github.com/couchconnector/buildingrez-api/internal/service"
	appErrors "github.com/couchconnector/buildingrez-api/pkg/errors"
	"github.com/couchconnector/buildingrez-api/pkg/response"
)

type reservationService interface {
	Submit(ctx context.Context, req service.SubmitReservationRequest) (*service.SubmitReservationResult, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	ApproveBlock(ctx context.Context, req service.BlockActionRequest) (int64, error)
	RejectBlock(ctx context.Context, req service.BlockActionRequest) (int64, error)
	Cancel(ctx context.Context, id string) error
	PendingBlocks(ctx context.Context) ([][]models.SlotDetail, error)
	List(ctx context.Context, status string) ([]models.SlotDetail, error)
	RoomSchedule(ctx context.Context, roomID string) (*service.RoomSchedule, error)
}

// ReservationHandler wires reservation submission and the admin slot
// lifecycle to HTTP.
type ReservationHandler struct {
	service reservationService
}

// NewReservationHandler constructs the handler.
func NewReservationHandler(service reservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// Submit godoc
// @Summary Submit a reservation request
// @Tags Reservations
// @Accept json
// @Produce json
// @Param payload body service.SubmitReservationRequest true "Reservation"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /reservations [post]
func (h *ReservationHandler) Submit(c *gin.Context) {
	var req service.SubmitReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid reservation payload"))
		return
	}
	result, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List godoc
// @Summary List reservations
// @Tags Reservations
// @Produce json
// @Param status query string false "pending|approved|rejected"
// @Success 200 {object} response.Envelope
// @Router /admin/reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	slots, err := h.service.List(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, map[string]interface{}{"count": len(slots)})
}

// PendingBlocks godoc
// @Summary List pending reservations grouped into contiguous blocks
// @Tags Reservations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/reservations/blocks [get]
func (h *ReservationHandler) PendingBlocks(c *gin.Context) {
	blocks, err := h.service.PendingBlocks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, blocks, map[string]interface{}{"count": len(blocks)})
}

// Approve godoc
// @Summary Approve a pending reservation
// @Tags Reservations
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} response.Envelope
// @Router /admin/reservations/{id}/approve [post]
func (h *ReservationHandler) Approve(c *gin.Context) {
	if err := h.service.Approve(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": models.StatusApproved})
}

// Reject godoc
// @Summary Reject a pending or approved reservation
// @Tags Reservations
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} response.Envelope
// @Router /admin/reservations/{id}/reject [post]
func (h *ReservationHandler) Reject(c *gin.Context) {
	if err := h.service.Reject(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": models.StatusRejected})
}

// ApproveBlock godoc
// @Summary Approve a block of pending reservations
// @Tags Reservations
// @Accept json
// @Produce json
// @Param payload body service.BlockActionRequest true "Slot IDs"
// @Success 200 {object} response.Envelope
// @Router /admin/reservations/blocks/approve [post]
func (h *ReservationHandler) ApproveBlock(c *gin.Context) {
	h.blockAction(c, h.service.ApproveBlock)
}

// RejectBlock godoc
// @Summary Reject a block of reservations
// @Tags Reservations
// @Accept json
// @Produce json
// @Param payload body service.BlockActionRequest true "Slot IDs"
// @Success 200 {object} response.Envelope
// @Router /admin/reservations/blocks/reject [post]
func (h *ReservationHandler) RejectBlock(c *gin.Context) {
	h.blockAction(c, h.service.RejectBlock)
}

func (h *ReservationHandler) blockAction(c *gin.Context, action func(context.Context, service.BlockActionRequest) (int64, error)) {
	var req service.BlockActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "no reservations specified"))
		return
	}
	count, err := action(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": count})
}

// Cancel godoc
// @Summary Cancel (delete) a reservation
// @Tags Reservations
// @Produce json
// @Param id path string true "Slot ID"
// @Success 204
// @Router /admin/reservations/{id} [delete]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RoomSchedule godoc
// @Summary Three-week weekday schedule for one room
// @Tags Rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /admin/rooms/{id}/schedule [get]
func (h *ReservationHandler) RoomSchedule(c *gin.Context) {
	schedule, err := h.service.RoomSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule)
}
