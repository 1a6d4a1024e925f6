package converter

import (
	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      entity.RoleNameByID(user.RoleID),
		Gender:    user.Gender,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.DoctorProfile != nil {
		response.DoctorProfile = &dto.DoctorProfileResponse{
			Specialty:       user.DoctorProfile.Specialty,
			MedicalLicense:  user.DoctorProfile.MedicalLicense,
			ConsultationFee: user.DoctorProfile.ConsultationFee,
			Biography:       user.DoctorProfile.Biography,
		}
	}

	if user.PatientProfile != nil {
		profile := &dto.PatientProfileResponse{
			MedicalHistory: user.PatientProfile.MedicalHistory,
		}
		if user.PatientProfile.DateOfBirth != nil {
			profile.DateOfBirth = user.PatientProfile.DateOfBirth.Format("2006-01-02")
		}
		response.PatientProfile = profile
	}

	return response
}

// UsersToResponses converts a slice of User entities to UserResponse DTOs
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}
