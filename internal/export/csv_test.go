package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/matsen/hortus/internal/plant"
)

func TestWriteCSV(t *testing.T) {
	plants := []plant.Plant{
		{
			ID:               "1700000000.000000",
			CommonName:       "Aloe",
			ScientificName:   "Aloe vera",
			USDAZones:        []int{9, 10, 11},
			MinTemp:          20.0,
			MaxTemp:          110.0,
			Notes:            "has \"quotes\", and commas",
			IsWishlist:       false,
			DateAdded:        time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
			Images:           []string{"aloe.jpg"},
			GroundingSources: []string{},
		},
		{
			ID:         "1700000001.000000",
			CommonName: "Boston Fern",
			IsWishlist: true,
			DateAdded:  time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC),
		},
	}

	var buf strings.Builder
	if err := WriteCSV(&buf, plants); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("reading back csv: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("got %d rows, want header + 2 data rows", len(records))
	}
	if len(records[0]) != 21 {
		t.Errorf("header has %d columns, want 21", len(records[0]))
	}
	if records[0][0] != "id" || records[0][20] != "grounding_sources" {
		t.Errorf("header = %v, want vault column order", records[0])
	}

	aloe := records[1]
	if aloe[1] != "Aloe" {
		t.Errorf("common_name = %q, want %q", aloe[1], "Aloe")
	}
	if aloe[3] != "[9,10,11]" {
		t.Errorf("usda_zones cell = %q, want JSON text %q", aloe[3], "[9,10,11]")
	}
	if aloe[12] != `has "quotes", and commas` {
		t.Errorf("notes cell = %q, quoting not round-tripped", aloe[12])
	}
	if aloe[17] != "false" {
		t.Errorf("is_wishlist = %q, want %q", aloe[17], "false")
	}

	fern := records[2]
	if fern[3] != "[]" {
		t.Errorf("nil zones cell = %q, want %q", fern[3], "[]")
	}
	if fern[17] != "true" {
		t.Errorf("is_wishlist = %q, want %q", fern[17], "true")
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf strings.Builder
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("empty vault export = %d lines, want header only", len(lines))
	}
}
