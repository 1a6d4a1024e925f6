package usecase

import (
	"context"
	"errors"
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

var (
	ErrSlotNotFound        = errors.New("slot not found")
	ErrSlotUnavailable     = errors.New("slot is not available")
	ErrSlotFull            = errors.New("slot is fully booked")
	ErrSlotInPast          = errors.New("slot is in the past")
	ErrDuplicateBooking    = errors.New("patient already has an appointment in this time window")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNotAuthorized       = errors.New("not authorized for this appointment")
	ErrPatientCancelOnly   = errors.New("patients may only cancel their appointments")
	ErrInvalidStatus       = errors.New("invalid appointment status")
)

// BookingUsecase owns the appointment lifecycle. Every mutation that touches
// slot capacity runs in one transaction with the slot row locked, so the
// booked counter, the availability flag and the appointment set can never
// drift apart.
type BookingUsecase interface {
	CreateAppointment(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointments(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error)
	GetAppointment(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.AppointmentResponse, error)
	UpdateAppointmentStatus(ctx context.Context, actor entity.Actor, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, actor entity.Actor, id uuid.UUID) error
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	slotRepo        repository.SlotRepository
	auditService    service.AuditService
	slotCache       *service.SlotCacheService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	slotRepo repository.SlotRepository,
	auditService service.AuditService,
	slotCache *service.SlotCacheService,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		auditService:    auditService,
		slotCache:       slotCache,
	}
}

func (u *bookingUsecase) CreateAppointment(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Row lock on the slot serializes concurrent bookings. All capacity
	// checks below read the locked row, so two requests racing for the last
	// place cannot both pass.
	slot, err := u.slotRepo.FindByIDForUpdate(tx, req.SlotID)
	if err != nil {
		u.log.Warnf("Failed to lock slot %d: %+v", req.SlotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	if slot.StartTime.Before(time.Now()) {
		return nil, ErrSlotInPast
	}
	if !slot.IsAvailable {
		return nil, ErrSlotUnavailable
	}
	if !slot.HasCapacity() {
		return nil, ErrSlotFull
	}

	existing, err := u.appointmentRepo.FindActiveByWindow(tx, patientID, slot.StartTime, slot.EndTime)
	if err != nil {
		u.log.Warnf("Failed to check duplicate booking: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateBooking
	}

	appointment := &entity.Appointment{
		PatientID: patientID,
		DoctorID:  slot.DoctorID,
		SlotID:    slot.ID,
		Date:      slot.StartTime,
		Status:    entity.AppointmentStatusScheduled,
	}
	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	slot.AddBooking()
	if err := u.slotRepo.Update(tx, slot); err != nil {
		u.log.Warnf("Failed to update slot counters: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), map[string]interface{}{
		"slot_id":   slot.ID,
		"doctor_id": slot.DoctorID,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.slotCache.InvalidateDoctor(ctx, slot.DoctorID)

	appointment.Slot = *slot
	return converter.AppointmentToResponse(appointment), nil
}

func (u *bookingUsecase) GetAppointments(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error) {
	db := u.db.WithContext(ctx)

	var appointments []entity.Appointment
	var err error
	switch {
	case actor.IsAdmin():
		appointments, err = u.appointmentRepo.FindAll(db)
	case actor.IsDoctor():
		appointments, err = u.appointmentRepo.FindByDoctorID(db, actor.ID)
	default:
		appointments, err = u.appointmentRepo.FindByPatientID(db, actor.ID)
	}
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *bookingUsecase) GetAppointment(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !ownsAppointment(actor, appointment) {
		return nil, ErrNotAuthorized
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *bookingUsecase) UpdateAppointmentStatus(ctx context.Context, actor entity.Actor, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	newStatus := entity.AppointmentStatus(req.Status)
	if !entity.ValidAppointmentStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if err := authorizeStatusChange(actor, appointment, newStatus); err != nil {
		return nil, err
	}

	oldStatus := appointment.Status
	if oldStatus == newStatus {
		// No-op change, nothing to release or re-acquire.
		return converter.AppointmentToResponse(appointment), nil
	}

	// Capacity follows the status: leaving CANCELLED takes a place back,
	// entering CANCELLED frees one. Exactly once per transition.
	if releasesCapacity(oldStatus, newStatus) || reacquiresCapacity(oldStatus, newStatus) {
		slot, err := u.slotRepo.FindByIDForUpdate(tx, appointment.SlotID)
		if err != nil {
			u.log.Warnf("Failed to lock slot %d: %+v", appointment.SlotID, err)
			return nil, err
		}
		if slot == nil {
			return nil, ErrSlotNotFound
		}

		if releasesCapacity(oldStatus, newStatus) {
			slot.ReleaseBooking()
		} else {
			if !slot.HasCapacity() {
				return nil, ErrSlotFull
			}
			slot.AddBooking()
		}
		if err := u.slotRepo.Update(tx, slot); err != nil {
			u.log.Warnf("Failed to update slot counters: %+v", err)
			return nil, err
		}
	}

	appointment.Status = newStatus
	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	action := entity.AuditActionAppointmentUpdate
	if newStatus == entity.AppointmentStatusCancelled {
		action = entity.AuditActionAppointmentCancel
	}
	u.auditService.LogUpdate(ctx, tx, &actor.ID, action, "appointment", appointment.ID.String(), string(oldStatus), string(newStatus))

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.slotCache.InvalidateDoctor(ctx, appointment.DoctorID)

	return converter.AppointmentToResponse(appointment), nil
}

func (u *bookingUsecase) DeleteAppointment(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.deleteAppointmentTx(ctx, tx, actor, id)
	if err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.slotCache.InvalidateDoctor(ctx, appointment.DoctorID)

	return nil
}

// deleteAppointmentTx runs the delete inside the given transaction.
func (u *bookingUsecase) deleteAppointmentTx(ctx context.Context, tx *gorm.DB, actor entity.Actor, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !ownsAppointment(actor, appointment) {
		return nil, ErrNotAuthorized
	}

	// A cancelled appointment already gave its place back, deleting it must
	// not release capacity a second time.
	if !appointment.IsCancelled() {
		slot, err := u.slotRepo.FindByIDForUpdate(tx, appointment.SlotID)
		if err != nil {
			u.log.Warnf("Failed to lock slot %d: %+v", appointment.SlotID, err)
			return nil, err
		}
		if slot != nil {
			slot.ReleaseBooking()
			if err := u.slotRepo.Update(tx, slot); err != nil {
				u.log.Warnf("Failed to update slot counters: %+v", err)
				return nil, err
			}
		}
	}

	rows, err := u.appointmentRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAppointmentNotFound
	}

	u.auditService.LogDelete(ctx, tx, &actor.ID, entity.AuditActionAppointmentDelete, "appointment", appointment.ID.String(), map[string]interface{}{
		"status":  string(appointment.Status),
		"slot_id": appointment.SlotID,
	})

	return appointment, nil
}

// ownsAppointment reports whether the actor is a participant in this
// appointment. Admins count as participants everywhere.
func ownsAppointment(actor entity.Actor, appointment *entity.Appointment) bool {
	switch {
	case actor.IsAdmin():
		return true
	case actor.IsDoctor():
		return appointment.DoctorID == actor.ID
	case actor.IsPatient():
		return appointment.PatientID == actor.ID
	default:
		return false
	}
}

// authorizeStatusChange enforces who may move an appointment to newStatus.
// Patients may only cancel their own appointments, doctors may set any
// status on appointments in their slots, admins may do anything.
func authorizeStatusChange(actor entity.Actor, appointment *entity.Appointment, newStatus entity.AppointmentStatus) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.IsDoctor():
		if appointment.DoctorID != actor.ID {
			return ErrNotAuthorized
		}
		return nil
	case actor.IsPatient():
		if appointment.PatientID != actor.ID {
			return ErrNotAuthorized
		}
		if newStatus != entity.AppointmentStatusCancelled {
			return ErrPatientCancelOnly
		}
		return nil
	default:
		return ErrNotAuthorized
	}
}

// releasesCapacity reports whether moving oldStatus -> newStatus frees a
// place in the slot.
func releasesCapacity(oldStatus, newStatus entity.AppointmentStatus) bool {
	return oldStatus != entity.AppointmentStatusCancelled && newStatus == entity.AppointmentStatusCancelled
}

// reacquiresCapacity reports whether moving oldStatus -> newStatus takes a
// place in the slot again, e.g. un-cancelling.
func reacquiresCapacity(oldStatus, newStatus entity.AppointmentStatus) bool {
	return oldStatus == entity.AppointmentStatusCancelled && newStatus != entity.AppointmentStatusCancelled
}
