package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePrescriptionRequest struct {
	Title       string `json:"title" validate:"omitempty,max=255"`
	Notes       string `json:"notes" validate:"omitempty"`
	Medications string `json:"medications" validate:"omitempty"`
	Tests       string `json:"tests" validate:"omitempty"`
}

// Response DTOs

type PrescriptionResponse struct {
	ID            int       `json:"id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	DoctorID      uuid.UUID `json:"doctor_id"`
	PatientID     uuid.UUID `json:"patient_id"`
	Title         string    `json:"title,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Medications   string    `json:"medications,omitempty"`
	Tests         string    `json:"tests,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
