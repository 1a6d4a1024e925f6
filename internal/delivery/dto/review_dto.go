package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateReviewRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" validate:"required"`
	Rating        int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment       string    `json:"comment" validate:"omitempty"`
}

type UpdateReviewRequest struct {
	Rating  *int   `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment string `json:"comment" validate:"omitempty"`
}

// Response DTOs

type ReviewResponse struct {
	ID            int              `json:"id"`
	AppointmentID uuid.UUID        `json:"appointment_id"`
	Rating        int              `json:"rating"`
	Comment       string           `json:"comment,omitempty"`
	Doctor        *DoctorResponse  `json:"doctor,omitempty"`
	Patient       *PatientResponse `json:"patient,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Total   int              `json:"total"`
}
