// Package export renders the vault as a flat CSV table for backup and
// migration.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/matsen/hortus/internal/plant"
)

// Header is the CSV column order, matching the plants table.
var Header = []string{
	"id", "common_name", "scientific_name", "usda_zones",
	"min_temp", "max_temp", "drought_tolerance", "watering_requirements",
	"watering_frequency", "sunlight", "soil_type", "fertilization_schedule",
	"notes", "herbal_benefits", "herbal_properties", "herbal_dosage",
	"herbal_notes", "is_wishlist", "date_added", "images", "grounding_sources",
}

// WriteCSV writes a header row and one row per record. Sequence
// fields are emitted as JSON text, matching their stored encoding.
func WriteCSV(w io.Writer, plants []plant.Plant) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, p := range plants {
		rec, err := row(p)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", p.ID, err)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing %s: %w", p.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func row(p plant.Plant) ([]string, error) {
	if p.USDAZones == nil {
		p.USDAZones = []int{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.GroundingSources == nil {
		p.GroundingSources = []string{}
	}

	zones, err := jsonCell(p.USDAZones)
	if err != nil {
		return nil, err
	}
	images, err := jsonCell(p.Images)
	if err != nil {
		return nil, err
	}
	sources, err := jsonCell(p.GroundingSources)
	if err != nil {
		return nil, err
	}

	return []string{
		p.ID, p.CommonName, p.ScientificName, zones,
		formatFloat(p.MinTemp), formatFloat(p.MaxTemp),
		p.DroughtTolerance, p.WateringRequirements,
		p.WateringFrequency, p.Sunlight, p.SoilType, p.FertilizationSchedule,
		p.Notes, p.HerbalBenefits, p.HerbalProperties, p.HerbalDosage,
		p.HerbalNotes, strconv.FormatBool(p.IsWishlist),
		p.DateAdded.UTC().Format(time.RFC3339Nano),
		images, sources,
	}, nil
}

func jsonCell(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
