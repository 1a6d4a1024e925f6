package entity

import (
	"time"

	"github.com/google/uuid"
)

// Slot represents a doctor-published bookable time interval with a
// patient-capacity limit. The time window is half-open: [StartTime, EndTime).
//
// Invariants maintained by the booking usecase:
//   - 0 <= BookedPatients <= MaxPatients
//   - IsAvailable == (BookedPatients < MaxPatients) after every booking mutation
type Slot struct {
	ID             int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID       uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	StartTime      time.Time `gorm:"not null;index" json:"start_time"`
	EndTime        time.Time `gorm:"not null" json:"end_time"`
	MaxPatients    int       `gorm:"not null;default:1" json:"max_patients"`
	BookedPatients int       `gorm:"not null;default:0" json:"booked_patients"`
	IsAvailable    bool      `gorm:"not null;default:true;index" json:"is_available"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor       DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:SlotID" json:"appointments,omitempty"`
}

func (Slot) TableName() string {
	return "slots"
}

// HasCapacity reports whether another patient can still book this slot.
func (s *Slot) HasCapacity() bool {
	return s.BookedPatients < s.MaxPatients
}

// Overlaps reports whether the slot's half-open window intersects [start, end).
func (s *Slot) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && s.EndTime.After(start)
}

// AddBooking increments the booked counter and recomputes availability.
// Callers must hold the slot row lock.
func (s *Slot) AddBooking() {
	s.BookedPatients++
	s.RecomputeAvailability()
}

// ReleaseBooking decrements the booked counter (floor 0) and marks the slot
// available again. Callers must hold the slot row lock.
func (s *Slot) ReleaseBooking() {
	if s.BookedPatients > 0 {
		s.BookedPatients--
	}
	s.IsAvailable = true
}

// RecomputeAvailability re-derives the cached availability flag from the
// capacity counter.
func (s *Slot) RecomputeAvailability() {
	s.IsAvailable = s.BookedPatients < s.MaxPatients
}
