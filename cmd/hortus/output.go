package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/hortus/internal/plant"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or
// JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// warn reports a non-fatal condition to stderr in either output mode.
func warn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListResponse is the response for list and search commands.
type ListResponse struct {
	Total  int           `json:"total"`
	Plants []plant.Plant `json:"plants"`
	Error  string        `json:"error,omitempty"`
}

// vaultDir returns the parent directory of a vault database path.
func vaultDir(path string) string {
	return filepath.Dir(path)
}

// printPlantHuman prints a record in the archive card layout.
func printPlantHuman(p plant.Plant) {
	fmt.Printf("%s (%s)\n", p.CommonName, p.ScientificName)
	fmt.Printf("  id:       %s\n", p.ID)
	fmt.Printf("  zones:    %v\n", p.USDAZones)
	fmt.Printf("  range:    %.1f°F - %.1f°F\n", p.MinTemp, p.MaxTemp)
	fmt.Printf("  water:    %s\n", p.WateringFrequency)
	fmt.Printf("  sun:      %s\n", p.Sunlight)
	if p.IsWishlist {
		fmt.Printf("  status:   wishlist\n")
	} else {
		fmt.Printf("  status:   in collection\n")
	}
	if p.HerbalBenefits != "" {
		fmt.Printf("  herbal:   %s\n", p.HerbalBenefits)
	}
	if p.Notes != "" {
		fmt.Printf("  notes:    %s\n", p.Notes)
	}
}
