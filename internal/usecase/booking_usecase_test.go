package usecase

import (
	"context"
	"testing"
	"time"

	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type fakeAppointmentRepo struct {
	appointment *entity.Appointment
	deleteCalls int
}

func (r *fakeAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return nil
}

func (r *fakeAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	if r.appointment != nil && r.appointment.ID == id {
		return r.appointment, nil
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) FindActiveByWindow(db *gorm.DB, patientID uuid.UUID, start, end time.Time) (*entity.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return nil
}

func (r *fakeAppointmentRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	r.deleteCalls++
	return 1, nil
}

func (r *fakeAppointmentRepo) CountBySlot(db *gorm.DB, slotID int) (int64, error) {
	return 0, nil
}

func (r *fakeAppointmentRepo) CountScheduledBySlot(db *gorm.DB, slotID int) (int64, error) {
	return 0, nil
}

type fakeSlotRepo struct {
	slot        *entity.Slot
	updateCalls int
}

func (r *fakeSlotRepo) Create(db *gorm.DB, slot *entity.Slot) error { return nil }

func (r *fakeSlotRepo) FindByID(db *gorm.DB, id int) (*entity.Slot, error) {
	return r.slot, nil
}

func (r *fakeSlotRepo) FindByIDForUpdate(db *gorm.DB, id int) (*entity.Slot, error) {
	return r.slot, nil
}

func (r *fakeSlotRepo) CountOverlapping(db *gorm.DB, doctorID uuid.UUID, start, end time.Time, excludeID int) (int64, error) {
	return 0, nil
}

func (r *fakeSlotRepo) FindAvailable(db *gorm.DB, filter *entity.SlotFilter) ([]entity.Slot, error) {
	return nil, nil
}

func (r *fakeSlotRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, availableOnly bool) ([]entity.Slot, error) {
	return nil, nil
}

func (r *fakeSlotRepo) Update(db *gorm.DB, slot *entity.Slot) error {
	r.updateCalls++
	return nil
}

func (r *fakeSlotRepo) Delete(db *gorm.DB, id int) (int64, error) { return 1, nil }

type fakeAuditService struct{}

func (s *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return nil
}

func (s *fakeAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return nil
}

func (s *fakeAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	return nil
}

func newTestBookingUsecase(appointmentRepo *fakeAppointmentRepo, slotRepo *fakeSlotRepo) *bookingUsecase {
	return &bookingUsecase{
		log:             logrus.New(),
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		auditService:    &fakeAuditService{},
	}
}

func TestDeleteScheduledAppointmentReleasesCapacityOnce(t *testing.T) {
	slot := mkTestSlot(2, 2)
	appointment := &entity.Appointment{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		SlotID:    slot.ID,
		Status:    entity.AppointmentStatusScheduled,
	}
	appointmentRepo := &fakeAppointmentRepo{appointment: appointment}
	slotRepo := &fakeSlotRepo{slot: slot}
	u := newTestBookingUsecase(appointmentRepo, slotRepo)

	actor := entity.Actor{ID: appointment.PatientID, Role: entity.RolePatient}
	if _, err := u.deleteAppointmentTx(context.Background(), nil, actor, appointment.ID); err != nil {
		t.Fatalf("deleteAppointmentTx() error = %v", err)
	}

	if slotRepo.updateCalls != 1 {
		t.Errorf("slot updates = %d, want 1", slotRepo.updateCalls)
	}
	if slot.BookedPatients != 1 {
		t.Errorf("BookedPatients = %d, want 1", slot.BookedPatients)
	}
	if !slot.IsAvailable {
		t.Error("releasing the booking should make the slot available again")
	}
	if appointmentRepo.deleteCalls != 1 {
		t.Errorf("appointment deletes = %d, want 1", appointmentRepo.deleteCalls)
	}
}

func TestDeleteCancelledAppointmentKeepsCapacity(t *testing.T) {
	slot := mkTestSlot(2, 1)
	appointment := &entity.Appointment{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		SlotID:    slot.ID,
		Status:    entity.AppointmentStatusCancelled,
	}
	appointmentRepo := &fakeAppointmentRepo{appointment: appointment}
	slotRepo := &fakeSlotRepo{slot: slot}
	u := newTestBookingUsecase(appointmentRepo, slotRepo)

	actor := entity.Actor{ID: appointment.PatientID, Role: entity.RolePatient}
	if _, err := u.deleteAppointmentTx(context.Background(), nil, actor, appointment.ID); err != nil {
		t.Fatalf("deleteAppointmentTx() error = %v", err)
	}

	// Cancelling already released the place, the delete must not touch the
	// counters again.
	if slotRepo.updateCalls != 0 {
		t.Errorf("slot updates = %d, want 0", slotRepo.updateCalls)
	}
	if slot.BookedPatients != 1 {
		t.Errorf("BookedPatients = %d, want 1", slot.BookedPatients)
	}
	if appointmentRepo.deleteCalls != 1 {
		t.Errorf("appointment deletes = %d, want 1", appointmentRepo.deleteCalls)
	}
}

func TestDeleteAppointmentRejectsNonParticipant(t *testing.T) {
	slot := mkTestSlot(1, 1)
	appointment := &entity.Appointment{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		SlotID:    slot.ID,
		Status:    entity.AppointmentStatusScheduled,
	}
	appointmentRepo := &fakeAppointmentRepo{appointment: appointment}
	slotRepo := &fakeSlotRepo{slot: slot}
	u := newTestBookingUsecase(appointmentRepo, slotRepo)

	actor := entity.Actor{ID: uuid.New(), Role: entity.RolePatient}
	if _, err := u.deleteAppointmentTx(context.Background(), nil, actor, appointment.ID); err != ErrNotAuthorized {
		t.Fatalf("deleteAppointmentTx() error = %v, want ErrNotAuthorized", err)
	}
	if slotRepo.updateCalls != 0 || appointmentRepo.deleteCalls != 0 {
		t.Error("rejected delete must not touch the slot or the appointment")
	}
}

func mkTestSlot(max, booked int) *entity.Slot {
	s := &entity.Slot{ID: 1, DoctorID: uuid.New(), MaxPatients: max, BookedPatients: booked}
	s.RecomputeAvailability()
	return s
}
