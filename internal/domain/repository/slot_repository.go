package repository

import (
	"time"

	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlotRepository interface {
	Create(db *gorm.DB, slot *entity.Slot) error
	FindByID(db *gorm.DB, id int) (*entity.Slot, error)
	// FindByIDForUpdate loads the slot under a row lock. Must be called
	// inside a transaction; the lock is held until commit or rollback.
	FindByIDForUpdate(db *gorm.DB, id int) (*entity.Slot, error)
	CountOverlapping(db *gorm.DB, doctorID uuid.UUID, start, end time.Time, excludeID int) (int64, error)
	FindAvailable(db *gorm.DB, filter *entity.SlotFilter) ([]entity.Slot, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, availableOnly bool) ([]entity.Slot, error)
	Update(db *gorm.DB, slot *entity.Slot) error
	Delete(db *gorm.DB, id int) (int64, error)
}
