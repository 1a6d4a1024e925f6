package usecase

import (
	"testing"

	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

func TestOwnsAppointment(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()
	otherID := uuid.New()
	appointment := &entity.Appointment{DoctorID: doctorID, PatientID: patientID}

	tests := []struct {
		name  string
		actor entity.Actor
		want  bool
	}{
		{"admin always", entity.Actor{ID: otherID, Role: entity.RoleAdmin}, true},
		{"owning doctor", entity.Actor{ID: doctorID, Role: entity.RoleDoctor}, true},
		{"other doctor", entity.Actor{ID: otherID, Role: entity.RoleDoctor}, false},
		{"owning patient", entity.Actor{ID: patientID, Role: entity.RolePatient}, true},
		{"other patient", entity.Actor{ID: otherID, Role: entity.RolePatient}, false},
		{"unknown role", entity.Actor{ID: patientID, Role: "GUEST"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ownsAppointment(tt.actor, appointment); got != tt.want {
				t.Errorf("ownsAppointment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAuthorizeStatusChange(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()
	otherID := uuid.New()
	appointment := &entity.Appointment{DoctorID: doctorID, PatientID: patientID, Status: entity.AppointmentStatusScheduled}

	tests := []struct {
		name      string
		actor     entity.Actor
		newStatus entity.AppointmentStatus
		wantErr   error
	}{
		{"admin any status", entity.Actor{ID: otherID, Role: entity.RoleAdmin}, entity.AppointmentStatusCompleted, nil},
		{"doctor completes own", entity.Actor{ID: doctorID, Role: entity.RoleDoctor}, entity.AppointmentStatusCompleted, nil},
		{"doctor cancels own", entity.Actor{ID: doctorID, Role: entity.RoleDoctor}, entity.AppointmentStatusCancelled, nil},
		{"doctor touches foreign", entity.Actor{ID: otherID, Role: entity.RoleDoctor}, entity.AppointmentStatusCompleted, ErrNotAuthorized},
		{"patient cancels own", entity.Actor{ID: patientID, Role: entity.RolePatient}, entity.AppointmentStatusCancelled, nil},
		{"patient completes own", entity.Actor{ID: patientID, Role: entity.RolePatient}, entity.AppointmentStatusCompleted, ErrPatientCancelOnly},
		{"patient reschedules own", entity.Actor{ID: patientID, Role: entity.RolePatient}, entity.AppointmentStatusScheduled, ErrPatientCancelOnly},
		{"patient cancels foreign", entity.Actor{ID: otherID, Role: entity.RolePatient}, entity.AppointmentStatusCancelled, ErrNotAuthorized},
		{"unknown role", entity.Actor{ID: patientID, Role: ""}, entity.AppointmentStatusCancelled, ErrNotAuthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authorizeStatusChange(tt.actor, appointment, tt.newStatus)
			if err != tt.wantErr {
				t.Errorf("authorizeStatusChange() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCapacityTransitions(t *testing.T) {
	scheduled := entity.AppointmentStatusScheduled
	completed := entity.AppointmentStatusCompleted
	cancelled := entity.AppointmentStatusCancelled

	tests := []struct {
		name          string
		from, to      entity.AppointmentStatus
		wantRelease   bool
		wantReacquire bool
	}{
		{"cancel a scheduled", scheduled, cancelled, true, false},
		{"cancel a completed", completed, cancelled, true, false},
		{"complete a scheduled", scheduled, completed, false, false},
		{"un-cancel to scheduled", cancelled, scheduled, false, true},
		{"un-cancel to completed", cancelled, completed, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := releasesCapacity(tt.from, tt.to); got != tt.wantRelease {
				t.Errorf("releasesCapacity(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.wantRelease)
			}
			if got := reacquiresCapacity(tt.from, tt.to); got != tt.wantReacquire {
				t.Errorf("reacquiresCapacity(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.wantReacquire)
			}
		})
	}
}

func TestCanManageSlot(t *testing.T) {
	doctorID := uuid.New()
	otherID := uuid.New()
	slot := &entity.Slot{DoctorID: doctorID}

	if !canManageSlot(entity.Actor{ID: otherID, Role: entity.RoleAdmin}, slot) {
		t.Error("admin should manage any slot")
	}
	if !canManageSlot(entity.Actor{ID: doctorID, Role: entity.RoleDoctor}, slot) {
		t.Error("owning doctor should manage their slot")
	}
	if canManageSlot(entity.Actor{ID: otherID, Role: entity.RoleDoctor}, slot) {
		t.Error("foreign doctor must not manage the slot")
	}
	if canManageSlot(entity.Actor{ID: doctorID, Role: entity.RolePatient}, slot) {
		t.Error("patients must not manage slots")
	}
}

func TestParseSlotWindow(t *testing.T) {
	start := "2026-09-01T09:00:00Z"
	end := "2026-09-01T09:30:00Z"

	gotStart, gotEnd, err := parseSlotWindow(start, end)
	if err != nil {
		t.Fatalf("parseSlotWindow() error = %v", err)
	}
	if !gotStart.Before(gotEnd) {
		t.Fatal("parsed window is not ordered")
	}

	if _, _, err := parseSlotWindow(end, start); err != ErrInvalidTimeRange {
		t.Errorf("reversed window error = %v, want ErrInvalidTimeRange", err)
	}
	if _, _, err := parseSlotWindow(start, start); err != ErrInvalidTimeRange {
		t.Errorf("empty window error = %v, want ErrInvalidTimeRange", err)
	}
	if _, _, err := parseSlotWindow("not-a-time", end); err != ErrInvalidTimeFormat {
		t.Errorf("garbage start error = %v, want ErrInvalidTimeFormat", err)
	}
}

func TestApplyAvailability(t *testing.T) {
	open := true
	closed := false

	t.Run("absent leaves a closed slot closed", func(t *testing.T) {
		slot := &entity.Slot{MaxPatients: 3, BookedPatients: 1, IsAvailable: false}
		applyAvailability(slot, nil)
		if slot.IsAvailable {
			t.Error("an update without the flag must not reopen the slot")
		}
	})

	t.Run("absent leaves an open slot open", func(t *testing.T) {
		slot := &entity.Slot{MaxPatients: 3, BookedPatients: 1, IsAvailable: true}
		applyAvailability(slot, nil)
		if !slot.IsAvailable {
			t.Error("an update without the flag must not close the slot")
		}
	})

	t.Run("explicit false closes", func(t *testing.T) {
		slot := &entity.Slot{MaxPatients: 3, BookedPatients: 0, IsAvailable: true}
		applyAvailability(slot, &closed)
		if slot.IsAvailable {
			t.Error("explicit false must close the slot")
		}
	})

	t.Run("explicit true reopens with capacity", func(t *testing.T) {
		slot := &entity.Slot{MaxPatients: 3, BookedPatients: 1, IsAvailable: false}
		applyAvailability(slot, &open)
		if !slot.IsAvailable {
			t.Error("explicit true must reopen a slot with capacity")
		}
	})

	t.Run("explicit true cannot open a full slot", func(t *testing.T) {
		slot := &entity.Slot{MaxPatients: 2, BookedPatients: 2, IsAvailable: false}
		applyAvailability(slot, &open)
		if slot.IsAvailable {
			t.Error("a full slot must stay unavailable")
		}
	})
}

func TestCanManageReview(t *testing.T) {
	patientID := uuid.New()
	otherID := uuid.New()
	review := &entity.Review{PatientID: patientID}

	if !canManageReview(entity.Actor{ID: otherID, Role: entity.RoleAdmin}, review) {
		t.Error("admin should manage any review")
	}
	if !canManageReview(entity.Actor{ID: patientID, Role: entity.RolePatient}, review) {
		t.Error("author should manage their review")
	}
	if canManageReview(entity.Actor{ID: otherID, Role: entity.RolePatient}, review) {
		t.Error("other patients must not manage the review")
	}
	if canManageReview(entity.Actor{ID: patientID, Role: entity.RoleDoctor}, review) {
		t.Error("doctors must not manage patient reviews")
	}
}
