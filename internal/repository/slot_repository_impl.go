package repository

import (
	"errors"
	"time"

	"telemed-scheduling/internal/domain/entity"
	domainRepo "telemed-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type slotRepository struct{}

func NewSlotRepository() domainRepo.SlotRepository {
	return &slotRepository{}
}

func (r *slotRepository) Create(db *gorm.DB, slot *entity.Slot) error {
	return db.Create(slot).Error
}

func (r *slotRepository) FindByID(db *gorm.DB, id int) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.Preload("Doctor.User").Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

// FindByIDForUpdate loads the slot row with SELECT ... FOR UPDATE so that
// concurrent bookings against the same slot serialize on the row lock.
func (r *slotRepository) FindByIDForUpdate(db *gorm.DB, id int) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

// CountOverlapping counts the doctor's slots whose half-open window intersects
// [start, end). Pass excludeID > 0 to skip the slot being updated.
func (r *slotRepository) CountOverlapping(db *gorm.DB, doctorID uuid.UUID, start, end time.Time, excludeID int) (int64, error) {
	var count int64
	query := db.Model(&entity.Slot{}).
		Where("doctor_id = ? AND start_time < ? AND end_time > ?", doctorID, end, start)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *slotRepository) FindAvailable(db *gorm.DB, filter *entity.SlotFilter) ([]entity.Slot, error) {
	var slots []entity.Slot
	query := db.Where("is_available = ?", true)

	if filter != nil && filter.Date != "" {
		query = query.Where("start_time >= ?::date AND start_time < ?::date + interval '1 day'", filter.Date, filter.Date)
	} else {
		query = query.Where("start_time >= ?", time.Now())
	}

	if filter != nil && filter.Specialty != "" {
		query = query.
			Joins("JOIN doctor_profiles ON doctor_profiles.user_id = slots.doctor_id").
			Where("doctor_profiles.specialty = ?", filter.Specialty)
	}

	err := query.
		Preload("Doctor").Preload("Doctor.User").
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, availableOnly bool) ([]entity.Slot, error) {
	var slots []entity.Slot
	query := db.Where("doctor_id = ?", doctorID)
	if availableOnly {
		query = query.Where("is_available = ? AND start_time >= ?", true, time.Now())
	}
	err := query.Order("start_time ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) Update(db *gorm.DB, slot *entity.Slot) error {
	return db.Omit("Doctor", "Appointments").Save(slot).Error
}

func (r *slotRepository) Delete(db *gorm.DB, id int) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Slot{})
	return affected.RowsAffected, affected.Error
}
