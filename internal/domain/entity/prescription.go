package entity

import (
	"time"

	"github.com/google/uuid"
)

// Prescription holds the free-form prescription a doctor attaches to an
// appointment, one per appointment.
type Prescription struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"appointment_id"`
	DoctorID      uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID     uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Title         string    `gorm:"type:varchar(255)" json:"title,omitempty"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	Medications   string    `gorm:"type:text" json:"medications,omitempty"`
	Tests         string    `gorm:"type:text" json:"tests,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}
