package converter

import (
	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewToResponse converts a Review entity to ReviewResponse DTO
func ReviewToResponse(review *entity.Review) *dto.ReviewResponse {
	if review == nil {
		return nil
	}

	response := &dto.ReviewResponse{
		ID:            review.ID,
		AppointmentID: review.AppointmentID,
		Rating:        review.Rating,
		Comment:       review.Comment,
		CreatedAt:     review.CreatedAt,
		UpdatedAt:     review.UpdatedAt,
	}

	if review.Doctor.UserID != uuid.Nil {
		response.Doctor = DoctorToResponse(&review.Doctor)
	}
	if review.Patient.UserID != uuid.Nil {
		response.Patient = PatientToResponse(&review.Patient)
	}

	return response
}

// ReviewsToResponses converts a slice of Review entities to DTOs
func ReviewsToResponses(reviews []entity.Review) []dto.ReviewResponse {
	responses := make([]dto.ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = *ReviewToResponse(&reviews[i])
	}
	return responses
}
