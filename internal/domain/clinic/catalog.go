package clinic

import "fmt"

// SpecializationCatalog maps each disease to the specialization required
// to treat it. The catalog is a constructed value owned by the Service so
// tests can substitute their own mapping.
type SpecializationCatalog struct {
	byDisease map[Disease]Specialization
}

// NewSpecializationCatalog builds a catalog from an explicit mapping.
func NewSpecializationCatalog(mapping map[Disease]Specialization) *SpecializationCatalog {
	byDisease := make(map[Disease]Specialization, len(mapping))
	for d, s := range mapping {
		byDisease[d] = s
	}
	return &SpecializationCatalog{byDisease: byDisease}
}

// DefaultCatalog returns the catalog used in production. The mapping is
// total over the Disease enumeration.
func DefaultCatalog() *SpecializationCatalog {
	return NewSpecializationCatalog(map[Disease]Specialization{
		Flu:          FamilyMedicine,
		Covid19:      FamilyMedicine,
		Tonsillitis:  FamilyMedicine,
		Bronchitis:   Pulmonology,
		Pneumonia:    Pulmonology,
		Chickenpox:   Pediatrics,
		Rubella:      Pediatrics,
		Mumps:        Pediatrics,
		Measles:      Pediatrics,
		ScarletFever: Pediatrics,
	})
}

// RequiredSpecialization returns the specialization that treats disease.
// A miss is a programming defect (an enum value added without a catalog
// entry) and is never silently defaulted.
func (c *SpecializationCatalog) RequiredSpecialization(disease Disease) (Specialization, error) {
	s, ok := c.byDisease[disease]
	if !ok {
		return "", fmt.Errorf("disease %s: %w", disease, ErrUnmappedDisease)
	}
	return s, nil
}
