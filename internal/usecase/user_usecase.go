package usecase

import (
	"context"
	"strings"
	"time"

	"telemed-scheduling/internal/converter"
	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/domain/entity"
	"telemed-scheduling/internal/domain/repository"
	"telemed-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserUsecase interface {
	GetUsers(ctx context.Context) (*dto.UserListResponse, error)
	GetDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetPatients(ctx context.Context) (*dto.PatientListResponse, error)
	GetUser(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
}

type userUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
	}
}

func (u *userUsecase) GetUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

func (u *userUsecase) GetDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	users, err := u.userRepo.FindByRoleID(u.db.WithContext(ctx), entity.RoleIDDoctor)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.UsersToResponses(users),
		Total:   len(users),
	}, nil
}

func (u *userUsecase) GetPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	users, err := u.userRepo.FindByRoleID(u.db.WithContext(ctx), entity.RoleIDPatient)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.UsersToResponses(users),
		Total:    len(users),
	}, nil
}

func (u *userUsecase) GetUser(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.UserResponse, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, ErrNotAuthorized
	}

	user, err := u.userRepo.FindByIDWithProfiles(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByIDWithProfiles(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Email != "" {
		user.Email = strings.ToLower(req.Email)
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}

	if err := u.userRepo.Update(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	if user.DoctorProfile != nil && req.Specialty != "" {
		user.DoctorProfile.Specialty = req.Specialty
		if err := u.doctorProfileRepo.Update(tx, user.DoctorProfile); err != nil {
			u.log.Warnf("Failed to update doctor profile: %+v", err)
			return nil, err
		}
	}

	if user.PatientProfile != nil && (req.DateOfBirth != "" || req.MedicalHistory != "") {
		if req.DateOfBirth != "" {
			dob, err := time.Parse("2006-01-02", req.DateOfBirth)
			if err != nil {
				return nil, ErrInvalidDateFormat
			}
			user.PatientProfile.DateOfBirth = &dob
		}
		if req.MedicalHistory != "" {
			user.PatientProfile.MedicalHistory = req.MedicalHistory
		}
		if err := u.patientProfileRepo.Update(tx, user.PatientProfile); err != nil {
			u.log.Warnf("Failed to update patient profile: %+v", err)
			return nil, err
		}
	}

	u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "user", userID.String(), nil, map[string]interface{}{
		"email": user.Email,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}
