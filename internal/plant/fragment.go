package plant

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// USDA hardiness zones run 1-13.
const (
	MinUSDAZone = 1
	MaxUSDAZone = 13
)

// ErrUnidentified indicates a fragment with neither a common nor a
// scientific name.
var ErrUnidentified = errors.New("fragment has no identifying name")

// Fragment is the research output for one specimen: every Plant field
// except the identity/bookkeeping trio (id, date_added, is_wishlist),
// which the caller supplies when merging.
type Fragment struct {
	CommonName            string  `json:"common_name"`
	ScientificName        string  `json:"scientific_name"`
	USDAZones             []int   `json:"usda_zones"`
	MinTemp               float64 `json:"min_temp"`
	MaxTemp               float64 `json:"max_temp"`
	DroughtTolerance      string  `json:"drought_tolerance"`
	WateringRequirements  string  `json:"watering_requirements"`
	WateringFrequency     string  `json:"watering_frequency"`
	Sunlight              string  `json:"sunlight"`
	SoilType              string  `json:"soil_type"`
	FertilizationSchedule string  `json:"fertilization_schedule"`
	HerbalBenefits        string  `json:"herbal_benefits"`
	HerbalProperties      string  `json:"herbal_properties"`
	HerbalDosage          string  `json:"herbal_dosage"`
	HerbalNotes           string  `json:"herbal_notes"`
	Notes                 string  `json:"notes"`
}

// Validate checks that a fragment is safe to persist. A fragment must
// carry at least one identifying name, and every hardiness zone must
// be in the USDA 1-13 range.
func (f *Fragment) Validate() error {
	if strings.TrimSpace(f.CommonName) == "" && strings.TrimSpace(f.ScientificName) == "" {
		return ErrUnidentified
	}
	for _, z := range f.USDAZones {
		if z < MinUSDAZone || z > MaxUSDAZone {
			return fmt.Errorf("usda zone out of range: %d", z)
		}
	}
	return nil
}

// Plant merges the fragment with the caller-supplied identity fields
// into a persistable record.
func (f *Fragment) Plant(id string, added time.Time, wishlist bool) Plant {
	zones := f.USDAZones
	if zones == nil {
		zones = []int{}
	}
	return Plant{
		ID:                    id,
		CommonName:            f.CommonName,
		ScientificName:        f.ScientificName,
		USDAZones:             zones,
		MinTemp:               f.MinTemp,
		MaxTemp:               f.MaxTemp,
		DroughtTolerance:      f.DroughtTolerance,
		WateringRequirements:  f.WateringRequirements,
		WateringFrequency:     f.WateringFrequency,
		Sunlight:              f.Sunlight,
		SoilType:              f.SoilType,
		FertilizationSchedule: f.FertilizationSchedule,
		Notes:                 f.Notes,
		HerbalBenefits:        f.HerbalBenefits,
		HerbalProperties:      f.HerbalProperties,
		HerbalDosage:          f.HerbalDosage,
		HerbalNotes:           f.HerbalNotes,
		IsWishlist:            wishlist,
		DateAdded:             added,
		Images:                []string{},
		GroundingSources:      []string{},
	}
}
