// Package vault owns durable storage of specimen records in a local
// SQLite database.
package vault

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matsen/hortus/internal/plant"
	_ "modernc.org/sqlite"
)

// ErrPersistence marks storage-layer failures (disk, locked file,
// schema mismatch). Callers on the read path degrade to an empty
// listing; callers on the write path fail the triggering action.
var ErrPersistence = errors.New("vault storage error")

// DB wraps the SQLite vault database.
type DB struct {
	db *sql.DB
}

// timeLayout is RFC 3339 with a fixed-width fraction. RFC3339Nano
// trims trailing zeros, which breaks lexicographic ORDER BY on
// date_added for sub-second timestamps ("...12:00:00.1Z" sorts after
// "...12:00:00.15Z"). Reads still parse with RFC3339Nano, so rows
// written in either form load fine.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// plantColumns is the standard column list for SELECT and INSERT.
const plantColumns = `id, common_name, scientific_name, usda_zones,
	min_temp, max_temp, drought_tolerance, watering_requirements,
	watering_frequency, sunlight, soil_type, fertilization_schedule,
	notes, herbal_benefits, herbal_properties, herbal_dosage,
	herbal_notes, is_wishlist, date_added, images, grounding_sources`

// OpenDB opens or creates the vault database at the given path.
// Schema creation is idempotent; reopening an existing vault is a
// no-op beyond the connection itself.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", ErrPersistence, err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating schema: %v", ErrPersistence, err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the plants table if it doesn't exist.
// Sequence-valued columns hold JSON text; date_added holds RFC 3339.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS plants (
			id TEXT PRIMARY KEY,
			common_name TEXT,
			scientific_name TEXT,
			usda_zones TEXT,
			min_temp REAL,
			max_temp REAL,
			drought_tolerance TEXT,
			watering_requirements TEXT,
			watering_frequency TEXT,
			sunlight TEXT,
			soil_type TEXT,
			fertilization_schedule TEXT,
			notes TEXT,
			herbal_benefits TEXT,
			herbal_properties TEXT,
			herbal_dosage TEXT,
			herbal_notes TEXT,
			is_wishlist INTEGER,
			date_added TEXT,
			images TEXT,
			grounding_sources TEXT
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Upsert inserts the record, or fully replaces an existing row with
// the same id. Nil sequence fields are stored as empty JSON arrays.
func (d *DB) Upsert(p plant.Plant) error {
	zonesJSON, err := encodeZones(p.USDAZones)
	if err != nil {
		return fmt.Errorf("%w: encoding usda_zones for %s: %v", ErrPersistence, p.ID, err)
	}
	imagesJSON, err := encodeStrings(p.Images)
	if err != nil {
		return fmt.Errorf("%w: encoding images for %s: %v", ErrPersistence, p.ID, err)
	}
	sourcesJSON, err := encodeStrings(p.GroundingSources)
	if err != nil {
		return fmt.Errorf("%w: encoding grounding_sources for %s: %v", ErrPersistence, p.ID, err)
	}

	_, err = d.db.Exec(`
		INSERT OR REPLACE INTO plants (`+plantColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID, p.CommonName, p.ScientificName, zonesJSON,
		p.MinTemp, p.MaxTemp, p.DroughtTolerance, p.WateringRequirements,
		p.WateringFrequency, p.Sunlight, p.SoilType, p.FertilizationSchedule,
		p.Notes, p.HerbalBenefits, p.HerbalProperties, p.HerbalDosage,
		p.HerbalNotes, boolToInt(p.IsWishlist), p.DateAdded.UTC().Format(timeLayout),
		imagesJSON, sourcesJSON,
	)
	if err != nil {
		return fmt.Errorf("%w: upserting %s: %v", ErrPersistence, p.ID, err)
	}
	return nil
}

// ReadAll returns every record, oldest first. All three JSON columns
// are deserialized back to slices, symmetric with Upsert.
func (d *DB) ReadAll() ([]plant.Plant, error) {
	rows, err := d.db.Query(`SELECT ` + plantColumns + ` FROM plants ORDER BY date_added, id`)
	if err != nil {
		return nil, fmt.Errorf("%w: reading plants: %v", ErrPersistence, err)
	}
	defer rows.Close()

	return scanPlants(rows)
}

// Get retrieves a record by id. Returns (nil, nil) when absent.
func (d *DB) Get(id string) (*plant.Plant, error) {
	row := d.db.QueryRow(`SELECT `+plantColumns+` FROM plants WHERE id = ?`, id)
	return scanPlant(row)
}

// Search returns records whose common or scientific name contains the
// query, case-insensitively, oldest first. LIKE metacharacters in the
// query match literally.
func (d *DB) Search(query string) ([]plant.Plant, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := d.db.Query(`
		SELECT `+plantColumns+`
		FROM plants
		WHERE common_name LIKE ? ESCAPE '\' OR scientific_name LIKE ? ESCAPE '\'
		ORDER BY date_added, id
	`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: searching plants: %v", ErrPersistence, err)
	}
	defer rows.Close()

	return scanPlants(rows)
}

// Count returns the total number of records.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM plants").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting plants: %v", ErrPersistence, err)
	}
	return count, nil
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPlant(s scanner) (*plant.Plant, error) {
	var p plant.Plant
	var zonesJSON, imagesJSON, sourcesJSON, dateAdded sql.NullString
	var commonName, scientificName sql.NullString
	var drought, waterReq, waterFreq, sunlight, soil, fertilization sql.NullString
	var notes, herbBenefits, herbProps, herbDosage, herbNotes sql.NullString
	var minTemp, maxTemp sql.NullFloat64
	var wishlist sql.NullInt64

	err := s.Scan(
		&p.ID, &commonName, &scientificName, &zonesJSON,
		&minTemp, &maxTemp, &drought, &waterReq,
		&waterFreq, &sunlight, &soil, &fertilization,
		&notes, &herbBenefits, &herbProps, &herbDosage,
		&herbNotes, &wishlist, &dateAdded,
		&imagesJSON, &sourcesJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: scanning plant: %v", ErrPersistence, err)
	}

	p.CommonName = commonName.String
	p.ScientificName = scientificName.String
	p.MinTemp = minTemp.Float64
	p.MaxTemp = maxTemp.Float64
	p.DroughtTolerance = drought.String
	p.WateringRequirements = waterReq.String
	p.WateringFrequency = waterFreq.String
	p.Sunlight = sunlight.String
	p.SoilType = soil.String
	p.FertilizationSchedule = fertilization.String
	p.Notes = notes.String
	p.HerbalBenefits = herbBenefits.String
	p.HerbalProperties = herbProps.String
	p.HerbalDosage = herbDosage.String
	p.HerbalNotes = herbNotes.String
	p.IsWishlist = wishlist.Int64 != 0

	if dateAdded.Valid && dateAdded.String != "" {
		t, err := time.Parse(time.RFC3339Nano, dateAdded.String)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing date_added for %s: %v", ErrPersistence, p.ID, err)
		}
		p.DateAdded = t
	}

	p.USDAZones = []int{}
	if zonesJSON.Valid && zonesJSON.String != "" {
		if err := json.Unmarshal([]byte(zonesJSON.String), &p.USDAZones); err != nil {
			return nil, fmt.Errorf("%w: parsing usda_zones for %s: %v", ErrPersistence, p.ID, err)
		}
	}
	p.Images = []string{}
	if imagesJSON.Valid && imagesJSON.String != "" {
		if err := json.Unmarshal([]byte(imagesJSON.String), &p.Images); err != nil {
			return nil, fmt.Errorf("%w: parsing images for %s: %v", ErrPersistence, p.ID, err)
		}
	}
	p.GroundingSources = []string{}
	if sourcesJSON.Valid && sourcesJSON.String != "" {
		if err := json.Unmarshal([]byte(sourcesJSON.String), &p.GroundingSources); err != nil {
			return nil, fmt.Errorf("%w: parsing grounding_sources for %s: %v", ErrPersistence, p.ID, err)
		}
	}

	return &p, nil
}

func scanPlants(rows *sql.Rows) ([]plant.Plant, error) {
	var plants []plant.Plant
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		if p != nil {
			plants = append(plants, *p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating plants: %v", ErrPersistence, err)
	}
	return plants, nil
}

func encodeZones(zones []int) (string, error) {
	if zones == nil {
		zones = []int{}
	}
	b, err := json.Marshal(zones)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// escapeLike escapes LIKE metacharacters so user queries match
// literally inside the %...% pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
