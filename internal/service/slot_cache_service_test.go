package service

import (
	"testing"

	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

func TestSearchKey(t *testing.T) {
	tests := []struct {
		name   string
		filter entity.SlotFilter
		want   string
	}{
		{"date and specialty", entity.SlotFilter{Date: "2026-09-01", Specialty: "Cardiology"}, "slots:search:2026-09-01:Cardiology"},
		{"date only", entity.SlotFilter{Date: "2026-09-01"}, "slots:search:2026-09-01:"},
		{"empty filter", entity.SlotFilter{}, "slots:search::"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := searchKey(tt.filter); got != tt.want {
				t.Errorf("searchKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDoctorKey(t *testing.T) {
	doctorID := uuid.MustParse("a3bb189e-8bf9-3888-9912-ace4e6543002")

	if got, want := doctorKey(doctorID, true), "slots:doctor:a3bb189e-8bf9-3888-9912-ace4e6543002:true"; got != want {
		t.Errorf("doctorKey(available) = %q, want %q", got, want)
	}
	if got, want := doctorKey(doctorID, false), "slots:doctor:a3bb189e-8bf9-3888-9912-ace4e6543002:false"; got != want {
		t.Errorf("doctorKey(all) = %q, want %q", got, want)
	}
}
