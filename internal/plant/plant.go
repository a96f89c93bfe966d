// Package plant defines the specimen record shared by the vault,
// research client, and export layers.
package plant

import (
	"strconv"
	"time"
)

// Plant is one specimen record in the vault, keyed by ID.
//
// USDAZones, Images, and GroundingSources are stored as JSON text in
// the plants table and round-trip through the vault as Go slices.
type Plant struct {
	ID                    string    `json:"id"`
	CommonName            string    `json:"common_name"`
	ScientificName        string    `json:"scientific_name"`
	USDAZones             []int     `json:"usda_zones"`
	MinTemp               float64   `json:"min_temp"`
	MaxTemp               float64   `json:"max_temp"`
	DroughtTolerance      string    `json:"drought_tolerance"`
	WateringRequirements  string    `json:"watering_requirements"`
	WateringFrequency     string    `json:"watering_frequency"`
	Sunlight              string    `json:"sunlight"`
	SoilType              string    `json:"soil_type"`
	FertilizationSchedule string    `json:"fertilization_schedule"`
	Notes                 string    `json:"notes"`
	HerbalBenefits        string    `json:"herbal_benefits"`
	HerbalProperties      string    `json:"herbal_properties"`
	HerbalDosage          string    `json:"herbal_dosage"`
	HerbalNotes           string    `json:"herbal_notes"`
	IsWishlist            bool      `json:"is_wishlist"`
	DateAdded             time.Time `json:"date_added"`
	Images                []string  `json:"images"`
	GroundingSources      []string  `json:"grounding_sources"`
}

// NewID derives a record ID from a timestamp, formatted as fractional
// Unix seconds ("1700000000.123456"). IDs generated from distinct
// times are unique; the vault never generates IDs itself.
func NewID(t time.Time) string {
	return strconv.FormatFloat(float64(t.UnixNano())/1e9, 'f', 6, 64)
}
