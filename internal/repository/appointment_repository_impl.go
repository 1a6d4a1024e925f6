package repository

import (
	"errors"
	"time"

	"telemed-scheduling/internal/domain/entity"
	domainRepo "telemed-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Slot").Preload("Doctor.User").Preload("Patient.User").Preload("Review").
		Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Slot").Preload("Doctor.User").
		Where("patient_id = ?", patientID).
		Order("date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Slot").Preload("Patient.User").
		Where("doctor_id = ?", doctorID).
		Order("date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Slot").Preload("Doctor.User").Preload("Patient.User").
		Order("date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindActiveByWindow returns the patient's non-cancelled appointment whose slot
// occupies exactly the window [start, end).
func (r *appointmentRepository) FindActiveByWindow(db *gorm.DB, patientID uuid.UUID, start, end time.Time) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.
		Joins("JOIN slots ON slots.id = appointments.slot_id").
		Where("appointments.patient_id = ? AND appointments.status != ?", patientID, entity.AppointmentStatusCancelled).
		Where("slots.start_time = ? AND slots.end_time = ?", start, end).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Slot", "Doctor", "Patient", "Review", "Prescription").Save(appointment).Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return affected.RowsAffected, affected.Error
}

func (r *appointmentRepository) CountBySlot(db *gorm.DB, slotID int) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Where("slot_id = ?", slotID).Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountScheduledBySlot(db *gorm.DB, slotID int) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("slot_id = ? AND status = ?", slotID, entity.AppointmentStatusScheduled).
		Count(&count).Error
	return count, err
}
