package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/delivery/http/middleware"
	"telemed-scheduling/internal/domain/entity"
	"telemed-scheduling/internal/usecase"
	"telemed-scheduling/pkg/response"
	"telemed-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type SlotHandler struct {
	slotUsecase usecase.SlotUsecase
	validator   *validator.CustomValidator
}

func NewSlotHandler(slotUsecase usecase.SlotUsecase, validator *validator.CustomValidator) *SlotHandler {
	return &SlotHandler{
		slotUsecase: slotUsecase,
		validator:   validator,
	}
}

func (h *SlotHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.slotUsecase.CreateSlot(r.Context(), actor.ID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidTimeFormat:
			response.BadRequest(w, "Invalid time format, use RFC3339")
		case usecase.ErrInvalidTimeRange:
			response.BadRequest(w, "Start time must be before end time")
		case usecase.ErrOverlappingSlot:
			response.BadRequest(w, "Slot overlaps an existing slot")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor profile not found")
		default:
			response.InternalServerError(w, "Failed to create slot")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Slot created successfully", slot)
}

func (h *SlotHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	filter := &entity.SlotFilter{
		Date:      r.URL.Query().Get("date"),
		Specialty: r.URL.Query().Get("specialty"),
	}

	slots, err := h.slotUsecase.GetAvailableSlots(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get available slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

func (h *SlotHandler) GetDoctorSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	availableOnly := r.URL.Query().Get("available") == "true"

	slots, err := h.slotUsecase.GetDoctorSlots(r.Context(), doctorID, availableOnly)
	if err != nil {
		response.InternalServerError(w, "Failed to get doctor slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

func (h *SlotHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid slot ID")
		return
	}

	var req dto.UpdateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.slotUsecase.UpdateSlot(r.Context(), actor, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		case usecase.ErrNotAuthorized:
			response.Forbidden(w, "You can only manage your own slots")
		case usecase.ErrInvalidTimeFormat:
			response.BadRequest(w, "Invalid time format, use RFC3339")
		case usecase.ErrInvalidTimeRange:
			response.BadRequest(w, "Start time must be before end time")
		case usecase.ErrSlotHasActiveBookings:
			response.BadRequest(w, "Slot has scheduled appointments, times cannot change")
		case usecase.ErrOverlappingSlot:
			response.BadRequest(w, "Slot overlaps an existing slot")
		case usecase.ErrMaxPatientsTooLow:
			response.BadRequest(w, "Max patients cannot be below current bookings")
		default:
			response.InternalServerError(w, "Failed to update slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot updated successfully", slot)
}

func (h *SlotHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid slot ID")
		return
	}

	if err := h.slotUsecase.DeleteSlot(r.Context(), actor, id); err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		case usecase.ErrNotAuthorized:
			response.Forbidden(w, "You can only manage your own slots")
		case usecase.ErrSlotHasAppointments:
			response.BadRequest(w, "Slot has appointments and cannot be deleted")
		default:
			response.InternalServerError(w, "Failed to delete slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot deleted successfully", nil)
}
