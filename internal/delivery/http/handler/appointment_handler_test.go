package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/delivery/http/middleware"
	"telemed-scheduling/internal/domain/entity"
	"telemed-scheduling/internal/usecase"
	"telemed-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type fakeBookingUsecase struct {
	createErr error
	statusErr error
	deleteErr error
}

func (f *fakeBookingUsecase) CreateAppointment(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &dto.AppointmentResponse{ID: uuid.New(), PatientID: patientID, SlotID: req.SlotID, Status: string(entity.AppointmentStatusScheduled)}, nil
}

func (f *fakeBookingUsecase) GetAppointments(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{Appointments: []dto.AppointmentResponse{}, Total: 0}, nil
}

func (f *fakeBookingUsecase) GetAppointment(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return &dto.AppointmentResponse{ID: id}, nil
}

func (f *fakeBookingUsecase) UpdateAppointmentStatus(ctx context.Context, actor entity.Actor, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &dto.AppointmentResponse{ID: id, Status: req.Status}, nil
}

func (f *fakeBookingUsecase) DeleteAppointment(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	return f.deleteErr
}

type fakePrescriptionUsecase struct{}

func (f *fakePrescriptionUsecase) CreatePrescription(ctx context.Context, doctorID uuid.UUID, appointmentID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	return &dto.PrescriptionResponse{AppointmentID: appointmentID}, nil
}

func (f *fakePrescriptionUsecase) GetPrescription(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.PrescriptionResponse, error) {
	return &dto.PrescriptionResponse{AppointmentID: appointmentID}, nil
}

func newAppointmentHandler(booking usecase.BookingUsecase) *AppointmentHandler {
	return NewAppointmentHandler(booking, &fakePrescriptionUsecase{}, validator.NewValidator())
}

func withActor(r *http.Request, actor entity.Actor) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ActorKey, actor)
	return r.WithContext(ctx)
}

func TestCreateAppointmentStatusCodes(t *testing.T) {
	actor := entity.Actor{ID: uuid.New(), Role: entity.RolePatient}

	tests := []struct {
		name       string
		usecaseErr error
		wantStatus int
	}{
		{"success", nil, http.StatusCreated},
		{"slot not found", usecase.ErrSlotNotFound, http.StatusNotFound},
		{"slot unavailable", usecase.ErrSlotUnavailable, http.StatusBadRequest},
		{"slot full", usecase.ErrSlotFull, http.StatusBadRequest},
		{"slot in past", usecase.ErrSlotInPast, http.StatusBadRequest},
		{"duplicate booking", usecase.ErrDuplicateBooking, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAppointmentHandler(&fakeBookingUsecase{createErr: tt.usecaseErr})

			body, _ := json.Marshal(dto.CreateAppointmentRequest{SlotID: 1})
			req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body))
			req = withActor(req, actor)
			rec := httptest.NewRecorder()

			h.CreateAppointment(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestCreateAppointmentRequiresActor(t *testing.T) {
	h := newAppointmentHandler(&fakeBookingUsecase{})

	body, _ := json.Marshal(dto.CreateAppointmentRequest{SlotID: 1})
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateAppointment(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestCreateAppointmentRejectsInvalidBody(t *testing.T) {
	h := newAppointmentHandler(&fakeBookingUsecase{})
	actor := entity.Actor{ID: uuid.New(), Role: entity.RolePatient}

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader([]byte(`{"slot_id": 0}`)))
	req = withActor(req, actor)
	rec := httptest.NewRecorder()

	h.CreateAppointment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateAppointmentStatusCodes(t *testing.T) {
	actor := entity.Actor{ID: uuid.New(), Role: entity.RoleDoctor}

	tests := []struct {
		name       string
		usecaseErr error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"not found", usecase.ErrAppointmentNotFound, http.StatusNotFound},
		{"not authorized", usecase.ErrNotAuthorized, http.StatusForbidden},
		{"patient cancel only", usecase.ErrPatientCancelOnly, http.StatusForbidden},
		{"slot full on un-cancel", usecase.ErrSlotFull, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAppointmentHandler(&fakeBookingUsecase{statusErr: tt.usecaseErr})

			body, _ := json.Marshal(dto.UpdateAppointmentRequest{Status: "CANCELLED"})
			req := httptest.NewRequest(http.MethodPut, "/api/appointments/"+uuid.NewString(), bytes.NewReader(body))
			req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
			req = withActor(req, actor)
			rec := httptest.NewRecorder()

			h.UpdateAppointmentStatus(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestDeleteAppointmentStatusCodes(t *testing.T) {
	actor := entity.Actor{ID: uuid.New(), Role: entity.RolePatient}

	tests := []struct {
		name       string
		usecaseErr error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"not found", usecase.ErrAppointmentNotFound, http.StatusNotFound},
		{"not a participant", usecase.ErrNotAuthorized, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAppointmentHandler(&fakeBookingUsecase{deleteErr: tt.usecaseErr})

			req := httptest.NewRequest(http.MethodDelete, "/api/appointments/"+uuid.NewString(), nil)
			req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
			req = withActor(req, actor)
			rec := httptest.NewRecorder()

			h.DeleteAppointment(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestDeleteAppointmentRejectsBadID(t *testing.T) {
	h := newAppointmentHandler(&fakeBookingUsecase{})
	actor := entity.Actor{ID: uuid.New(), Role: entity.RoleAdmin}

	req := httptest.NewRequest(http.MethodDelete, "/api/appointments/not-a-uuid", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "not-a-uuid"})
	req = withActor(req, actor)
	rec := httptest.NewRecorder()

	h.DeleteAppointment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
