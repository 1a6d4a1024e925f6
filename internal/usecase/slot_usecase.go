package usecase

import (
	"context"
	"errors"
	"strconv"
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
	ErrInvalidTimeRange      = errors.New("start time must be before end time")
	ErrInvalidTimeFormat     = errors.New("invalid time format, use RFC3339")
	ErrOverlappingSlot       = errors.New("slot overlaps an existing slot for this doctor")
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrSlotHasActiveBookings = errors.New("slot has scheduled appointments")
	ErrSlotHasAppointments   = errors.New("slot has appointments and cannot be deleted")
	ErrMaxPatientsTooLow     = errors.New("max patients cannot be below current bookings")
)

type SlotUsecase interface {
	CreateSlot(ctx context.Context, doctorID uuid.UUID, req *dto.CreateSlotRequest) (*dto.SlotResponse, error)
	GetAvailableSlots(ctx context.Context, filter *entity.SlotFilter) (*dto.SlotListResponse, error)
	GetDoctorSlots(ctx context.Context, doctorID uuid.UUID, availableOnly bool) (*dto.SlotListResponse, error)
	UpdateSlot(ctx context.Context, actor entity.Actor, id int, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error)
	DeleteSlot(ctx context.Context, actor entity.Actor, id int) error
}

type slotUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	slotRepo          repository.SlotRepository
	appointmentRepo   repository.AppointmentRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
	slotCache         *service.SlotCacheService
}

func NewSlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	slotRepo repository.SlotRepository,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	slotCache *service.SlotCacheService,
) SlotUsecase {
	return &slotUsecase{
		db:                db,
		log:               log,
		slotRepo:          slotRepo,
		appointmentRepo:   appointmentRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
		slotCache:         slotCache,
	}
}

func (u *slotUsecase) CreateSlot(ctx context.Context, doctorID uuid.UUID, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	startTime, endTime, err := parseSlotWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	maxPatients := req.MaxPatients
	if maxPatients <= 0 {
		maxPatients = 1
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	count, err := u.slotRepo.CountOverlapping(tx, doctorID, startTime, endTime, 0)
	if err != nil {
		u.log.Warnf("Failed to check slot overlap: %+v", err)
		return nil, err
	}
	if count > 0 {
		return nil, ErrOverlappingSlot
	}

	slot := &entity.Slot{
		DoctorID:       doctorID,
		StartTime:      startTime,
		EndTime:        endTime,
		MaxPatients:    maxPatients,
		BookedPatients: 0,
		IsAvailable:    true,
	}
	if err := u.slotRepo.Create(tx, slot); err != nil {
		u.log.Warnf("Failed to create slot: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &doctorID, entity.AuditActionSlotCreate, "slot", strconv.Itoa(slot.ID), map[string]interface{}{
		"start_time":   slot.StartTime,
		"end_time":     slot.EndTime,
		"max_patients": slot.MaxPatients,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.slotCache.InvalidateDoctor(ctx, doctorID)

	return converter.SlotToResponse(slot), nil
}

func (u *slotUsecase) GetAvailableSlots(ctx context.Context, filter *entity.SlotFilter) (*dto.SlotListResponse, error) {
	if cached := u.slotCache.GetSearch(ctx, *filter); cached != nil {
		return &dto.SlotListResponse{Slots: cached, Total: len(cached)}, nil
	}

	slots, err := u.slotRepo.FindAvailable(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list available slots: %+v", err)
		return nil, err
	}

	responses := converter.SlotsToResponses(slots)
	u.slotCache.SetSearch(ctx, *filter, responses)

	return &dto.SlotListResponse{Slots: responses, Total: len(responses)}, nil
}

func (u *slotUsecase) GetDoctorSlots(ctx context.Context, doctorID uuid.UUID, availableOnly bool) (*dto.SlotListResponse, error) {
	if cached := u.slotCache.GetDoctor(ctx, doctorID, availableOnly); cached != nil {
		return &dto.SlotListResponse{Slots: cached, Total: len(cached)}, nil
	}

	slots, err := u.slotRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID, availableOnly)
	if err != nil {
		u.log.Warnf("Failed to list doctor slots: %+v", err)
		return nil, err
	}

	responses := converter.SlotsToResponses(slots)
	u.slotCache.SetDoctor(ctx, doctorID, availableOnly, responses)

	return &dto.SlotListResponse{Slots: responses, Total: len(responses)}, nil
}

func (u *slotUsecase) UpdateSlot(ctx context.Context, actor entity.Actor, id int, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	slot, err := u.slotRepo.FindByIDForUpdate(tx, id)
	if err != nil {
		u.log.Warnf("Failed to lock slot %d: %+v", id, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	if !canManageSlot(actor, slot) {
		return nil, ErrNotAuthorized
	}

	timesChanged := req.StartTime != "" || req.EndTime != ""
	if timesChanged {
		startStr, endStr := req.StartTime, req.EndTime
		if startStr == "" {
			startStr = slot.StartTime.Format(time.RFC3339)
		}
		if endStr == "" {
			endStr = slot.EndTime.Format(time.RFC3339)
		}
		startTime, endTime, err := parseSlotWindow(startStr, endStr)
		if err != nil {
			return nil, err
		}

		// Moving the window under patients who already booked it would
		// silently reschedule them.
		scheduled, err := u.appointmentRepo.CountScheduledBySlot(tx, slot.ID)
		if err != nil {
			u.log.Warnf("Failed to count scheduled appointments: %+v", err)
			return nil, err
		}
		if scheduled > 0 {
			return nil, ErrSlotHasActiveBookings
		}

		count, err := u.slotRepo.CountOverlapping(tx, slot.DoctorID, startTime, endTime, slot.ID)
		if err != nil {
			u.log.Warnf("Failed to check slot overlap: %+v", err)
			return nil, err
		}
		if count > 0 {
			return nil, ErrOverlappingSlot
		}

		slot.StartTime = startTime
		slot.EndTime = endTime
	}

	if req.MaxPatients != nil {
		if *req.MaxPatients < slot.BookedPatients {
			return nil, ErrMaxPatientsTooLow
		}
		slot.MaxPatients = *req.MaxPatients
	}

	applyAvailability(slot, req.IsAvailable)

	if err := u.slotRepo.Update(tx, slot); err != nil {
		u.log.Warnf("Failed to update slot: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actor.ID, entity.AuditActionSlotUpdate, "slot", strconv.Itoa(slot.ID), nil, map[string]interface{}{
		"start_time":   slot.StartTime,
		"end_time":     slot.EndTime,
		"max_patients": slot.MaxPatients,
		"is_available": slot.IsAvailable,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.slotCache.InvalidateDoctor(ctx, slot.DoctorID)

	return converter.SlotToResponse(slot), nil
}

func (u *slotUsecase) DeleteSlot(ctx context.Context, actor entity.Actor, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	slot, err := u.slotRepo.FindByIDForUpdate(tx, id)
	if err != nil {
		u.log.Warnf("Failed to lock slot %d: %+v", id, err)
		return err
	}
	if slot == nil {
		return ErrSlotNotFound
	}
	if !canManageSlot(actor, slot) {
		return ErrNotAuthorized
	}

	// Any appointment, whatever its status, keeps the slot around as the
	// appointment's historical anchor.
	count, err := u.appointmentRepo.CountBySlot(tx, slot.ID)
	if err != nil {
		u.log.Warnf("Failed to count appointments for slot: %+v", err)
		return err
	}
	if count > 0 {
		return ErrSlotHasAppointments
	}

	rows, err := u.slotRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete slot: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrSlotNotFound
	}

	u.auditService.LogDelete(ctx, tx, &actor.ID, entity.AuditActionSlotDelete, "slot", strconv.Itoa(slot.ID), map[string]interface{}{
		"start_time": slot.StartTime,
		"end_time":   slot.EndTime,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.slotCache.InvalidateDoctor(ctx, slot.DoctorID)

	return nil
}

// canManageSlot reports whether the actor may modify this slot. Only the
// owning doctor or an admin.
func canManageSlot(actor entity.Actor, slot *entity.Slot) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.IsDoctor() && slot.DoctorID == actor.ID
}

// applyAvailability applies an explicitly requested availability flag. When
// the field is absent the flag stays untouched, so an unrelated update never
// reopens a slot the doctor closed early. An explicit true cannot force a
// full slot open.
func applyAvailability(slot *entity.Slot, requested *bool) {
	if requested == nil {
		return
	}
	slot.IsAvailable = *requested && slot.HasCapacity()
}

// parseSlotWindow parses the RFC3339 pair and checks ordering.
func parseSlotWindow(startStr, endStr string) (time.Time, time.Time, error) {
	startTime, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidTimeFormat
	}
	endTime, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidTimeFormat
	}
	if !startTime.Before(endTime) {
		return time.Time{}, time.Time{}, ErrInvalidTimeRange
	}
	return startTime, endTime, nil
}
