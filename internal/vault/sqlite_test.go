package vault

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/matsen/hortus/internal/plant"
)

func testPlant(id string) plant.Plant {
	return plant.Plant{
		ID:                    id,
		CommonName:            "Aloe",
		ScientificName:        "Aloe vera",
		USDAZones:             []int{9, 10, 11},
		MinTemp:               20.0,
		MaxTemp:               110.0,
		DroughtTolerance:      "High",
		WateringRequirements:  "Low",
		WateringFrequency:     "Every 3 weeks",
		Sunlight:              "Full sun",
		SoilType:              "Sandy, well-draining",
		FertilizationSchedule: "Monthly in summer",
		Notes:                 "Keep away from frost",
		HerbalBenefits:        "Topical burn relief",
		HerbalProperties:      "Anti-inflammatory",
		HerbalDosage:          "External use only",
		HerbalNotes:           "Gel from mature leaves",
		IsWishlist:            false,
		DateAdded:             time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC),
		Images:                []string{"aloe_front.jpg"},
		GroundingSources:      []string{"https://example.org/aloe"},
	}
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUpsertRoundTrip(t *testing.T) {
	db := openTestDB(t)

	want := testPlant("1700000000.000000")
	if err := db.Upsert(want); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	plants, err := db.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(plants) != 1 {
		t.Fatalf("ReadAll() len = %d, want 1", len(plants))
	}

	got := plants[0]
	if !got.DateAdded.Equal(want.DateAdded) {
		t.Errorf("DateAdded = %v, want %v", got.DateAdded, want.DateAdded)
	}
	// Normalize times for the full struct comparison
	got.DateAdded = want.DateAdded
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
	if !reflect.DeepEqual(got.USDAZones, []int{9, 10, 11}) {
		t.Errorf("USDAZones = %v, want [9 10 11]", got.USDAZones)
	}
}

func TestUpsertOverwrite(t *testing.T) {
	db := openTestDB(t)

	p := testPlant("1700000000.000000")
	if err := db.Upsert(p); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	p.CommonName = "Barbados Aloe"
	p.USDAZones = []int{10, 11}
	p.IsWishlist = true
	if err := db.Upsert(p); err != nil {
		t.Fatalf("Upsert() replace error = %v", err)
	}

	plants, err := db.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(plants) != 1 {
		t.Fatalf("ReadAll() len = %d, want 1 after replace", len(plants))
	}
	if plants[0].CommonName != "Barbados Aloe" {
		t.Errorf("CommonName = %q, want %q", plants[0].CommonName, "Barbados Aloe")
	}
	if !reflect.DeepEqual(plants[0].USDAZones, []int{10, 11}) {
		t.Errorf("USDAZones = %v, want [10 11]", plants[0].USDAZones)
	}
	if !plants[0].IsWishlist {
		t.Error("IsWishlist = false, want true after replace")
	}
}

func TestUpsertNilSequences(t *testing.T) {
	db := openTestDB(t)

	p := testPlant("1.000000")
	p.USDAZones = nil
	p.Images = nil
	p.GroundingSources = nil
	if err := db.Upsert(p); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := db.Get("1.000000")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() returned nil")
	}
	if got.USDAZones == nil || len(got.USDAZones) != 0 {
		t.Errorf("USDAZones = %v, want empty slice", got.USDAZones)
	}
	if got.Images == nil || len(got.Images) != 0 {
		t.Errorf("Images = %v, want empty slice", got.Images)
	}
	if got.GroundingSources == nil || len(got.GroundingSources) != 0 {
		t.Errorf("GroundingSources = %v, want empty slice", got.GroundingSources)
	}
}

func TestReadAllEmpty(t *testing.T) {
	db := openTestDB(t)

	plants, err := db.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(plants) != 0 {
		t.Errorf("ReadAll() len = %d, want 0", len(plants))
	}
}

func TestSchemaIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	if err := db.Upsert(testPlant("1.000000")); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	db.Close()

	// Reopening runs schema creation again; data must survive
	db, err = OpenDB(dbPath)
	if err != nil {
		t.Fatalf("OpenDB() reopen error = %v", err)
	}
	defer db.Close()

	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1 after reopen", count)
	}
}

func TestGetMissing(t *testing.T) {
	db := openTestDB(t)

	p, err := db.Get("nonexistent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p != nil {
		t.Errorf("Get() = %+v, want nil for missing id", p)
	}
}

func TestSearch(t *testing.T) {
	db := openTestDB(t)

	aloe := testPlant("1.000000")
	fern := testPlant("2.000000")
	fern.CommonName = "Boston Fern"
	fern.ScientificName = "Nephrolepis exaltata"
	for _, p := range []plant.Plant{aloe, fern} {
		if err := db.Upsert(p); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	tests := []struct {
		query string
		want  int
	}{
		{"aloe", 1},     // case-insensitive common name
		{"ALOE", 1},     // uppercase query
		{"nephro", 1},   // scientific name
		{"fern", 1},     // common name substring
		{"", 2},         // empty query matches everything
		{"cactus", 0},   // no match
	}

	for _, tt := range tests {
		got, err := db.Search(tt.query)
		if err != nil {
			t.Fatalf("Search(%q) error = %v", tt.query, err)
		}
		if len(got) != tt.want {
			t.Errorf("Search(%q) len = %d, want %d", tt.query, len(got), tt.want)
		}
	}
}

func TestReadAllOrdering(t *testing.T) {
	db := openTestDB(t)

	newer := testPlant("2.000000")
	newer.DateAdded = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	older := testPlant("1.000000")
	older.DateAdded = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := db.Upsert(newer); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := db.Upsert(older); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	plants, err := db.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(plants) != 2 {
		t.Fatalf("ReadAll() len = %d, want 2", len(plants))
	}
	if plants[0].ID != "1.000000" || plants[1].ID != "2.000000" {
		t.Errorf("ReadAll() order = [%s %s], want oldest first", plants[0].ID, plants[1].ID)
	}
}

func TestReadAllOrderingSubSecond(t *testing.T) {
	db := openTestDB(t)

	// Fractions like .1 and .15 sort wrong when trailing zeros are
	// trimmed from the stored timestamp (".1Z" > ".15Z")
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	newer := testPlant("2.000000")
	newer.DateAdded = base.Add(150 * time.Millisecond)
	older := testPlant("1.000000")
	older.DateAdded = base.Add(100 * time.Millisecond)

	if err := db.Upsert(newer); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := db.Upsert(older); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	plants, err := db.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(plants) != 2 {
		t.Fatalf("ReadAll() len = %d, want 2", len(plants))
	}
	if plants[0].ID != "1.000000" || plants[1].ID != "2.000000" {
		t.Errorf("ReadAll() order = [%s %s], want oldest first", plants[0].ID, plants[1].ID)
	}
	if !plants[0].DateAdded.Equal(older.DateAdded) {
		t.Errorf("DateAdded = %v, want %v", plants[0].DateAdded, older.DateAdded)
	}
}

func TestSearchLiteralWildcards(t *testing.T) {
	db := openTestDB(t)

	aloe := testPlant("1.000000")
	fern := testPlant("2.000000")
	fern.CommonName = "Fern 100% Shade"
	fern.ScientificName = "Nephrolepis exaltata"
	for _, p := range []plant.Plant{aloe, fern} {
		if err := db.Upsert(p); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	tests := []struct {
		query string
		want  int
	}{
		{"100%", 1}, // literal percent, not a match-all wildcard
		{"%", 1},    // only the name containing a percent sign
		{"_", 0},    // literal underscore, not single-char wildcard
		{`\`, 0},    // literal backslash
	}

	for _, tt := range tests {
		got, err := db.Search(tt.query)
		if err != nil {
			t.Fatalf("Search(%q) error = %v", tt.query, err)
		}
		if len(got) != tt.want {
			t.Errorf("Search(%q) len = %d, want %d", tt.query, len(got), tt.want)
		}
	}
}

func TestUpsertAfterClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	db.Close()

	err = db.Upsert(testPlant("1.000000"))
	if !errors.Is(err, ErrPersistence) {
		t.Errorf("Upsert() on closed db error = %v, want ErrPersistence", err)
	}
}
