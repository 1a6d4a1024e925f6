package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// RegisterRequest creates a doctor or patient account. Admin accounts cannot
// be self-registered.
type RegisterRequest struct {
	FirstName      string `json:"first_name" validate:"required,min=2"`
	LastName       string `json:"last_name" validate:"required,min=2"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,password"`
	Role           string `json:"role" validate:"required,oneof=DOCTOR PATIENT ADMIN"`
	Gender         string `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Specialty      string `json:"specialty" validate:"omitempty"`
	MedicalLicense string `json:"medical_license" validate:"omitempty"`
	DateOfBirth    string `json:"dob" validate:"omitempty"` // Format: YYYY-MM-DD
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type LoginResponse struct {
	User   *UserResponse  `json:"user"`
	Tokens *TokenResponse `json:"tokens"`
}

type UserResponse struct {
	ID             uuid.UUID               `json:"id"`
	Email          string                  `json:"email"`
	FirstName      string                  `json:"first_name"`
	LastName       string                  `json:"last_name"`
	Role           string                  `json:"role"`
	Gender         string                  `json:"gender,omitempty"`
	DoctorProfile  *DoctorProfileResponse  `json:"doctor_profile,omitempty"`
	PatientProfile *PatientProfileResponse `json:"patient_profile,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

type DoctorProfileResponse struct {
	Specialty       string          `json:"specialty"`
	MedicalLicense  string          `json:"medical_license"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	Biography       string          `json:"biography,omitempty"`
}

type PatientProfileResponse struct {
	DateOfBirth    string `json:"date_of_birth,omitempty"` // Format: YYYY-MM-DD
	MedicalHistory string `json:"medical_history,omitempty"`
}
