package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchconnector/buildingrez-api/internal/models"
	"github.com/couchconnector/buildingrez-api/internal/service"
	appErrors "github.com/couchconnector/buildingrez-api/pkg/errors"
	"github.com/couchconnector/buildingrez-api/pkg/response"
)

type reservationServiceMock struct {
	submitResp *service.SubmitReservationResult
	submitErr  error
	approveErr error
	cancelErr  error
	blocks     [][]models.SlotDetail
	slots      []models.SlotDetail
	lastStatus string
}

func (m *reservationServiceMock) Submit(_ context.Context, req service.SubmitReservationRequest) (*service.SubmitReservationResult, error) {
	return m.submitResp, m.submitErr
}

func (m *reservationServiceMock) Approve(context.Context, string) error { return m.approveErr }
func (m *reservationServiceMock) Reject(context.Context, string) error  { return m.approveErr }

func (m *reservationServiceMock) ApproveBlock(context.Context, service.BlockActionRequest) (int64, error) {
	return int64(2), nil
}

func (m *reservationServiceMock) RejectBlock(context.Context, service.BlockActionRequest) (int64, error) {
	return int64(2), nil
}

func (m *reservationServiceMock) Cancel(context.Context, string) error { return m.cancelErr }

func (m *reservationServiceMock) PendingBlocks(context.Context) ([][]models.SlotDetail, error) {
	return m.blocks, nil
}

func (m *reservationServiceMock) List(_ context.Context, status string) ([]models.SlotDetail, error) {
	m.lastStatus = status
	return m.slots, nil
}

func (m *reservationServiceMock) RoomSchedule(context.Context, string) (*service.RoomSchedule, error) {
	return &service.RoomSchedule{}, nil
}

func performJSON(t *testing.T, h gin.HandlerFunc, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	h(c)
	return w
}

func TestReservationHandlerSubmit(t *testing.T) {
	mockSvc := &reservationServiceMock{
		submitResp: &service.SubmitReservationResult{SlotIDs: []string{"a", "b"}, HoursReserved: 2},
	}
	h := NewReservationHandler(mockSvc)

	w := performJSON(t, h.Submit, http.MethodPost, "/reservations", service.SubmitReservationRequest{
		RoomID:     "room-1",
		ReservedBy: "Chess Club",
		Date:       "2026-09-07",
		StartHour:  9,
		EndHour:    11,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Nil(t, envelope.Error)
}

func TestReservationHandlerSubmitConflict(t *testing.T) {
	mockSvc := &reservationServiceMock{
		submitErr: appErrors.Clone(appErrors.ErrConflict, "time slot 10:00 is already reserved or pending"),
	}
	h := NewReservationHandler(mockSvc)

	w := performJSON(t, h.Submit, http.MethodPost, "/reservations", service.SubmitReservationRequest{
		RoomID:     "room-1",
		ReservedBy: "Chess Club",
		Date:       "2026-09-07",
		StartHour:  9,
		EndHour:    11,
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Message, "10:00")
}

func TestReservationHandlerSubmitMalformedBody(t *testing.T) {
	h := NewReservationHandler(&reservationServiceMock{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/reservations", bytes.NewBufferString("{not json"))
	c.Request = req
	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReservationHandlerList(t *testing.T) {
	mockSvc := &reservationServiceMock{slots: []models.SlotDetail{{ID: "s1"}}}
	h := NewReservationHandler(mockSvc)

	w := performJSON(t, h.List, http.MethodGet, "/admin/reservations?status=pending", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending", mockSvc.lastStatus)
}

func TestReservationHandlerBlockAction(t *testing.T) {
	h := NewReservationHandler(&reservationServiceMock{})

	w := performJSON(t, h.ApproveBlock, http.MethodPost, "/admin/reservations/blocks/approve",
		service.BlockActionRequest{SlotIDs: []string{"a", "b"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"updated":2`)
}

func TestReservationHandlerCancelNotFound(t *testing.T) {
	mockSvc := &reservationServiceMock{cancelErr: appErrors.Clone(appErrors.ErrNotFound, "reservation not found")}
	h := NewReservationHandler(mockSvc)

	w := performJSON(t, h.Cancel, http.MethodDelete, "/admin/reservations/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
