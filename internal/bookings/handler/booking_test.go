package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"hotelbooking/internal/bookings/service"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/events"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockBookingService struct {
	createFn       func(ctx context.Context, b *model.Booking) ([]events.Event, error)
	getByIDFn      func(ctx context.Context, id string) (*model.Booking, error)
	updateStatusFn func(ctx context.Context, id, status, role string) (*model.Booking, []events.Event, error)
	cancelFn       func(ctx context.Context, id, requesterID, reason string) (*model.Booking, []events.Event, error)
}

func (m *mockBookingService) Create(ctx context.Context, b *model.Booking) ([]events.Event, error) {
	if m.createFn != nil {
		return m.createFn(ctx, b)
	}
	return nil, nil
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, apperrors.NotFoundWithID("Booking", id)
}

func (m *mockBookingService) GetByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	return []*model.Booking{}, 0, nil
}

func (m *mockBookingService) GetByHotel(ctx context.Context, hotelID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	return []*model.Booking{}, 0, nil
}

func (m *mockBookingService) UpdateStatus(ctx context.Context, id, status, role string) (*model.Booking, []events.Event, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status, role)
	}
	return nil, nil, nil
}

func (m *mockBookingService) Cancel(ctx context.Context, id, requesterID, reason string) (*model.Booking, []events.Event, error) {
	if m.cancelFn != nil {
		return m.cancelFn(ctx, id, requesterID, reason)
	}
	return nil, nil, nil
}

func (m *mockBookingService) HotelStats(ctx context.Context, hotelID string) (*service.HotelStats, error) {
	return &service.HotelStats{Total: 5}, nil
}

func (m *mockBookingService) UserStats(ctx context.Context, userID string) (*service.UserStats, error) {
	return &service.UserStats{Total: 2}, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Emit(_ context.Context, ev events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, ev)
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.events)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.JSON})
}

func newTestRouter(svc service.BookingService, dispatcher *recordingDispatcher) *httprouter.Router {
	h := NewBookingHandler(svc, dispatcher, testLogger())
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func TestCreate_ReturnsCreatedAndDispatchesEvents(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, b *model.Booking) ([]events.Event, error) {
			b.ID = "507f1f77bcf86cd799439099"
			b.Status = model.StatusPending
			return events.BookingCreated(b, model.RoomDoubleBed, time.Now().UTC()), nil
		},
	}
	dispatcher := &recordingDispatcher{}
	router := newTestRouter(svc, dispatcher)

	body, _ := json.Marshal(map[string]any{
		"user_id":        "507f1f77bcf86cd799439011",
		"room_id":        "507f1f77bcf86cd799439012",
		"check_in_date":  "2026-10-10T00:00:00Z",
		"check_out_date": "2026-10-13T00:00:00Z",
		"guests":         2,
		"payment_method": "Pay At Hotel",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if dispatcher.count() != 3 {
		t.Errorf("dispatched events = %d, want 3", dispatcher.count())
	}
}

func TestCreate_InvalidBody(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	router := newTestRouter(&mockBookingService{}, dispatcher)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if dispatcher.count() != 0 {
		t.Errorf("no events should be dispatched on failure, got %d", dispatcher.count())
	}
}

func TestCreate_DateConflictMapsTo409(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, b *model.Booking) ([]events.Event, error) {
			return nil, apperrors.DateConflict("Room is already booked from 2026-10-10 to 2026-10-13")
		},
	}
	dispatcher := &recordingDispatcher{}
	router := newTestRouter(svc, dispatcher)

	body, _ := json.Marshal(map[string]any{"room_id": "507f1f77bcf86cd799439012"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if dispatcher.count() != 0 {
		t.Errorf("no events should be dispatched on conflict, got %d", dispatcher.count())
	}
}

func TestGetByID_NotFound(t *testing.T) {
	router := newTestRouter(&mockBookingService{}, &recordingDispatcher{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/id/507f1f77bcf86cd799439099", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetByUser_InvalidLimit(t *testing.T) {
	router := newTestRouter(&mockBookingService{}, &recordingDispatcher{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/user/507f1f77bcf86cd799439011?limit=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateStatus_InvalidTransitionMapsTo409(t *testing.T) {
	svc := &mockBookingService{
		updateStatusFn: func(ctx context.Context, id, status, role string) (*model.Booking, []events.Event, error) {
			return nil, nil, apperrors.InvalidTransition(model.StatusCancelled, status)
		},
	}
	router := newTestRouter(svc, &recordingDispatcher{})

	body, _ := json.Marshal(statusUpdateRequest{Status: model.StatusConfirmed})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/id/507f1f77bcf86cd799439099/status", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestCancel_ForwardsRequesterFromHeader(t *testing.T) {
	var gotRequester, gotReason string
	svc := &mockBookingService{
		cancelFn: func(ctx context.Context, id, requesterID, reason string) (*model.Booking, []events.Event, error) {
			gotRequester = requesterID
			gotReason = reason
			b := &model.Booking{ID: id, Status: model.StatusCancelled}
			return b, events.BookingCancelled(b, model.StatusPending, time.Now().UTC()), nil
		},
	}
	dispatcher := &recordingDispatcher{}
	router := newTestRouter(svc, dispatcher)

	body, _ := json.Marshal(cancelRequest{Reason: "change of plans"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/id/507f1f77bcf86cd799439099/cancel", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "507f1f77bcf86cd799439011")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if gotRequester != "507f1f77bcf86cd799439011" {
		t.Errorf("requester = %q, want header value", gotRequester)
	}
	if gotReason != "change of plans" {
		t.Errorf("reason = %q, want body value", gotReason)
	}
	if dispatcher.count() != 3 {
		t.Errorf("dispatched events = %d, want 3", dispatcher.count())
	}
}

func TestCancel_ForbiddenMapsTo403(t *testing.T) {
	svc := &mockBookingService{
		cancelFn: func(ctx context.Context, id, requesterID, reason string) (*model.Booking, []events.Event, error) {
			return nil, nil, apperrors.Forbidden("Not authorized to cancel this booking")
		},
	}
	router := newTestRouter(svc, &recordingDispatcher{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/id/507f1f77bcf86cd799439099/cancel", strings.NewReader("{}"))
	req.Header.Set("X-User-ID", "507f1f77bcf86cd799439014")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestHotelStats(t *testing.T) {
	router := newTestRouter(&mockBookingService{}, &recordingDispatcher{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/stats/hotel/507f1f77bcf86cd799439013", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Data service.HotelStats `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Total != 5 {
		t.Errorf("total = %d, want 5", resp.Data.Total)
	}
}
