package entity

import (
	"testing"
	"time"
)

func mkSlot(max, booked int) *Slot {
	s := &Slot{MaxPatients: max, BookedPatients: booked}
	s.RecomputeAvailability()
	return s
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	slot := &Slot{
		StartTime: base,
		EndTime:   base.Add(30 * time.Minute),
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical window", base, base.Add(30 * time.Minute), true},
		{"contained inside", base.Add(5 * time.Minute), base.Add(10 * time.Minute), true},
		{"straddles start", base.Add(-15 * time.Minute), base.Add(15 * time.Minute), true},
		{"straddles end", base.Add(15 * time.Minute), base.Add(45 * time.Minute), true},
		{"touches end", base.Add(30 * time.Minute), base.Add(60 * time.Minute), false},
		{"touches start", base.Add(-30 * time.Minute), base, false},
		{"entirely before", base.Add(-60 * time.Minute), base.Add(-30 * time.Minute), false},
		{"entirely after", base.Add(60 * time.Minute), base.Add(90 * time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slot.Overlaps(tt.start, tt.end); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestAddBookingRecomputesAvailability(t *testing.T) {
	slot := mkSlot(2, 0)

	slot.AddBooking()
	if slot.BookedPatients != 1 {
		t.Fatalf("BookedPatients = %d, want 1", slot.BookedPatients)
	}
	if !slot.IsAvailable {
		t.Fatal("slot should still be available with capacity remaining")
	}

	slot.AddBooking()
	if slot.BookedPatients != 2 {
		t.Fatalf("BookedPatients = %d, want 2", slot.BookedPatients)
	}
	if slot.IsAvailable {
		t.Fatal("slot at capacity should not be available")
	}
	if slot.HasCapacity() {
		t.Fatal("slot at capacity should report no capacity")
	}
}

func TestReleaseBookingRestoresAvailability(t *testing.T) {
	slot := mkSlot(2, 2)
	if slot.IsAvailable {
		t.Fatal("full slot should start unavailable")
	}

	slot.ReleaseBooking()
	if slot.BookedPatients != 1 {
		t.Fatalf("BookedPatients = %d, want 1", slot.BookedPatients)
	}
	if !slot.IsAvailable {
		t.Fatal("releasing a booking should restore availability")
	}
}

func TestReleaseBookingFloorsAtZero(t *testing.T) {
	slot := mkSlot(1, 0)

	slot.ReleaseBooking()
	if slot.BookedPatients != 0 {
		t.Fatalf("BookedPatients = %d, want 0", slot.BookedPatients)
	}
	if !slot.IsAvailable {
		t.Fatal("empty slot should be available")
	}
}

func TestCapacityInvariantAcrossLifecycle(t *testing.T) {
	slot := mkSlot(3, 0)

	for i := 0; i < 3; i++ {
		if !slot.HasCapacity() {
			t.Fatalf("expected capacity before booking %d", i+1)
		}
		slot.AddBooking()
		if slot.BookedPatients < 0 || slot.BookedPatients > slot.MaxPatients {
			t.Fatalf("capacity invariant violated: booked=%d max=%d", slot.BookedPatients, slot.MaxPatients)
		}
		if slot.IsAvailable != (slot.BookedPatients < slot.MaxPatients) {
			t.Fatalf("availability out of sync: booked=%d max=%d available=%v", slot.BookedPatients, slot.MaxPatients, slot.IsAvailable)
		}
	}

	for i := 0; i < 5; i++ {
		slot.ReleaseBooking()
		if slot.BookedPatients < 0 {
			t.Fatalf("booked counter went negative: %d", slot.BookedPatients)
		}
	}
}
