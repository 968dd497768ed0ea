package clinic

import (
	"errors"
	"testing"
)

func TestDefaultCatalogIsTotal(t *testing.T) {
	catalog := DefaultCatalog()
	for _, d := range Diseases() {
		if _, err := catalog.RequiredSpecialization(d); err != nil {
			t.Errorf("disease %s has no catalog entry: %v", d, err)
		}
	}
}

func TestDefaultCatalogMapping(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		disease Disease
		want    Specialization
	}{
		{Flu, FamilyMedicine},
		{Covid19, FamilyMedicine},
		{Tonsillitis, FamilyMedicine},
		{Bronchitis, Pulmonology},
		{Pneumonia, Pulmonology},
		{Chickenpox, Pediatrics},
		{Rubella, Pediatrics},
		{Mumps, Pediatrics},
		{Measles, Pediatrics},
		{ScarletFever, Pediatrics},
	}
	for _, tt := range tests {
		got, err := catalog.RequiredSpecialization(tt.disease)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.disease, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.disease, got, tt.want)
		}
	}
}

func TestRequiredSpecialization_UnmappedDisease(t *testing.T) {
	catalog := NewSpecializationCatalog(map[Disease]Specialization{Flu: FamilyMedicine})

	_, err := catalog.RequiredSpecialization(Measles)
	if !errors.Is(err, ErrUnmappedDisease) {
		t.Errorf("expected ErrUnmappedDisease, got %v", err)
	}
}
