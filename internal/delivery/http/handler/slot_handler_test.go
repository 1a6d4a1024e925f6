package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/domain/entity"
	"telemed-scheduling/internal/usecase"
	"telemed-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type fakeSlotUsecase struct {
	createErr error
	updateErr error
	deleteErr error
}

func (f *fakeSlotUsecase) CreateSlot(ctx context.Context, doctorID uuid.UUID, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &dto.SlotResponse{ID: 1, DoctorID: doctorID, MaxPatients: req.MaxPatients, IsAvailable: true}, nil
}

func (f *fakeSlotUsecase) GetAvailableSlots(ctx context.Context, filter *entity.SlotFilter) (*dto.SlotListResponse, error) {
	return &dto.SlotListResponse{Slots: []dto.SlotResponse{}}, nil
}

func (f *fakeSlotUsecase) GetDoctorSlots(ctx context.Context, doctorID uuid.UUID, availableOnly bool) (*dto.SlotListResponse, error) {
	return &dto.SlotListResponse{Slots: []dto.SlotResponse{}}, nil
}

func (f *fakeSlotUsecase) UpdateSlot(ctx context.Context, actor entity.Actor, id int, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &dto.SlotResponse{ID: id}, nil
}

func (f *fakeSlotUsecase) DeleteSlot(ctx context.Context, actor entity.Actor, id int) error {
	return f.deleteErr
}

func TestCreateSlotStatusCodes(t *testing.T) {
	actor := entity.Actor{ID: uuid.New(), Role: entity.RoleDoctor}

	tests := []struct {
		name       string
		usecaseErr error
		wantStatus int
	}{
		{"success", nil, http.StatusCreated},
		{"bad time format", usecase.ErrInvalidTimeFormat, http.StatusBadRequest},
		{"reversed window", usecase.ErrInvalidTimeRange, http.StatusBadRequest},
		{"overlapping window", usecase.ErrOverlappingSlot, http.StatusBadRequest},
		{"no doctor profile", usecase.ErrDoctorNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSlotHandler(&fakeSlotUsecase{createErr: tt.usecaseErr}, validator.NewValidator())

			body, _ := json.Marshal(dto.CreateSlotRequest{
				StartTime: "2026-09-01T09:00:00Z",
				EndTime:   "2026-09-01T09:30:00Z",
			})
			req := httptest.NewRequest(http.MethodPost, "/api/slots", bytes.NewReader(body))
			req = withActor(req, actor)
			rec := httptest.NewRecorder()

			h.CreateSlot(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestUpdateSlotStatusCodes(t *testing.T) {
	actor := entity.Actor{ID: uuid.New(), Role: entity.RoleDoctor}

	tests := []struct {
		name       string
		usecaseErr error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"not found", usecase.ErrSlotNotFound, http.StatusNotFound},
		{"foreign slot", usecase.ErrNotAuthorized, http.StatusForbidden},
		{"scheduled bookings block time change", usecase.ErrSlotHasActiveBookings, http.StatusBadRequest},
		{"overlapping window", usecase.ErrOverlappingSlot, http.StatusBadRequest},
		{"max below booked", usecase.ErrMaxPatientsTooLow, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSlotHandler(&fakeSlotUsecase{updateErr: tt.usecaseErr}, validator.NewValidator())

			body, _ := json.Marshal(dto.UpdateSlotRequest{StartTime: "2026-09-01T10:00:00Z", EndTime: "2026-09-01T10:30:00Z"})
			req := httptest.NewRequest(http.MethodPut, "/api/slots/1", bytes.NewReader(body))
			req = mux.SetURLVars(req, map[string]string{"id": "1"})
			req = withActor(req, actor)
			rec := httptest.NewRecorder()

			h.UpdateSlot(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestDeleteSlotStatusCodes(t *testing.T) {
	actor := entity.Actor{ID: uuid.New(), Role: entity.RoleDoctor}

	tests := []struct {
		name       string
		usecaseErr error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"not found", usecase.ErrSlotNotFound, http.StatusNotFound},
		{"foreign slot", usecase.ErrNotAuthorized, http.StatusForbidden},
		{"slot has appointments", usecase.ErrSlotHasAppointments, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSlotHandler(&fakeSlotUsecase{deleteErr: tt.usecaseErr}, validator.NewValidator())

			req := httptest.NewRequest(http.MethodDelete, "/api/slots/1", nil)
			req = mux.SetURLVars(req, map[string]string{"id": "1"})
			req = withActor(req, actor)
			rec := httptest.NewRecorder()

			h.DeleteSlot(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
