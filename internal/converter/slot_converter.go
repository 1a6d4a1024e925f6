package converter

import (
	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// SlotToResponse converts a Slot entity to SlotResponse DTO
func SlotToResponse(slot *entity.Slot) *dto.SlotResponse {
	if slot == nil {
		return nil
	}

	response := &dto.SlotResponse{
		ID:             slot.ID,
		DoctorID:       slot.DoctorID,
		StartTime:      slot.StartTime,
		EndTime:        slot.EndTime,
		MaxPatients:    slot.MaxPatients,
		BookedPatients: slot.BookedPatients,
		IsAvailable:    slot.IsAvailable,
		CreatedAt:      slot.CreatedAt,
		UpdatedAt:      slot.UpdatedAt,
	}

	// Include doctor info if preloaded
	if slot.Doctor.UserID != uuid.Nil {
		response.Doctor = DoctorToResponse(&slot.Doctor)
	}

	return response
}

// SlotsToResponses converts a slice of Slot entities to SlotResponse DTOs
func SlotsToResponses(slots []entity.Slot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i := range slots {
		responses[i] = *SlotToResponse(&slots[i])
	}
	return responses
}

// DoctorToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.DoctorProfile) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}
	return &dto.DoctorResponse{
		ID:        doctor.UserID,
		FirstName: doctor.User.FirstName,
		LastName:  doctor.User.LastName,
		Specialty: doctor.Specialty,
	}
}
