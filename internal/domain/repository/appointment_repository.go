package repository

import (
	"time"

	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	// FindActiveByWindow returns the patient's non-cancelled appointment whose
	// slot has exactly the window [start, end), nil when there is none.
	FindActiveByWindow(db *gorm.DB, patientID uuid.UUID, start, end time.Time) (*entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	CountBySlot(db *gorm.DB, slotID int) (int64, error)
	CountScheduledBySlot(db *gorm.DB, slotID int) (int64, error)
}
