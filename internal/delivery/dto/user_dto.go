package dto

// Request DTOs

type UpdateUserRequest struct {
	FirstName      string `json:"first_name" validate:"omitempty,min=2"`
	LastName       string `json:"last_name" validate:"omitempty,min=2"`
	Email          string `json:"email" validate:"omitempty,email"`
	Gender         string `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Specialty      string `json:"specialty" validate:"omitempty"`
	DateOfBirth    string `json:"dob" validate:"omitempty"` // Format: YYYY-MM-DD
	MedicalHistory string `json:"medical_history" validate:"omitempty"`
}

// Response DTOs

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

type DoctorListResponse struct {
	Doctors []UserResponse `json:"doctors"`
	Total   int            `json:"total"`
}

type PatientListResponse struct {
	Patients []UserResponse `json:"patients"`
	Total    int            `json:"total"`
}
