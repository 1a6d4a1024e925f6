package repository

import (
	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(db *gorm.DB, review *entity.Review) error
	FindByID(db *gorm.DB, id int) (*entity.Review, error)
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Review, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Review, error)
	Update(db *gorm.DB, review *entity.Review) error
	Delete(db *gorm.DB, id int) (int64, error)
}
