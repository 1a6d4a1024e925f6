package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateSlotRequest struct {
	StartTime   string `json:"start_time" validate:"required"` // RFC3339
	EndTime     string `json:"end_time" validate:"required"`   // RFC3339
	MaxPatients int    `json:"max_patients" validate:"omitempty,min=1"`
}

type UpdateSlotRequest struct {
	StartTime   string `json:"start_time" validate:"omitempty"` // RFC3339
	EndTime     string `json:"end_time" validate:"omitempty"`   // RFC3339
	MaxPatients *int   `json:"max_patients" validate:"omitempty,min=1"`
	IsAvailable *bool  `json:"is_available" validate:"omitempty"`
}

// Response DTOs

type SlotResponse struct {
	ID             int             `json:"id"`
	DoctorID       uuid.UUID       `json:"doctor_id"`
	Doctor         *DoctorResponse `json:"doctor,omitempty"`
	StartTime      time.Time       `json:"start_time"`
	EndTime        time.Time       `json:"end_time"`
	MaxPatients    int             `json:"max_patients"`
	BookedPatients int             `json:"booked_patients"`
	IsAvailable    bool            `json:"is_available"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

type DoctorResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Specialty string    `json:"specialty"`
}
