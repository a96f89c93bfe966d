package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matsen/hortus/internal/plant"
)

var addFlags struct {
	common        string
	scientific    string
	zones         string
	minTemp       float64
	maxTemp       float64
	drought       string
	waterReq      string
	waterFreq     string
	sunlight      string
	soil          string
	fertilization string
	notes         string
	herbBenefits  string
	herbProps     string
	herbDosage    string
	herbNotes     string
	wishlist      bool
}

func init() {
	f := addCmd.Flags()
	f.StringVar(&addFlags.common, "common", "", "Common name")
	f.StringVar(&addFlags.scientific, "scientific", "", "Scientific name")
	f.StringVar(&addFlags.zones, "zones", "", "USDA zones, comma-separated (e.g. 9,10,11)")
	f.Float64Var(&addFlags.minTemp, "min-temp", 0, "Minimum temperature (°F)")
	f.Float64Var(&addFlags.maxTemp, "max-temp", 0, "Maximum temperature (°F)")
	f.StringVar(&addFlags.drought, "drought", "", "Drought tolerance")
	f.StringVar(&addFlags.waterReq, "water-requirements", "", "Watering requirements")
	f.StringVar(&addFlags.waterFreq, "water-frequency", "", "Watering frequency")
	f.StringVar(&addFlags.sunlight, "sunlight", "", "Sunlight needs")
	f.StringVar(&addFlags.soil, "soil", "", "Soil type")
	f.StringVar(&addFlags.fertilization, "fertilization", "", "Fertilization schedule")
	f.StringVar(&addFlags.notes, "notes", "", "Free-form notes")
	f.StringVar(&addFlags.herbBenefits, "herbal-benefits", "", "Herbal benefits")
	f.StringVar(&addFlags.herbProps, "herbal-properties", "", "Herbal properties")
	f.StringVar(&addFlags.herbDosage, "herbal-dosage", "", "Herbal dosage")
	f.StringVar(&addFlags.herbNotes, "herbal-notes", "", "Herbalist notes")
	f.BoolVar(&addFlags.wishlist, "wishlist", false, "Mark for acquisition (not yet in collection)")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a specimen record directly",
	Long: `Add a specimen record directly, without research.

Examples:
  hortus add --common "Aloe" --scientific "Aloe vera" --zones 9,10,11 --min-temp 20 --max-temp 110
  hortus add --common "Ghost Orchid" --wishlist`,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	if addFlags.common == "" && addFlags.scientific == "" {
		exitWithError(ExitDataError, "--common or --scientific is required")
	}

	zones, err := parseZones(addFlags.zones)
	if err != nil {
		exitWithError(ExitDataError, "parsing --zones: %v", err)
	}

	now := time.Now()
	p := plant.Plant{
		ID:                    plant.NewID(now),
		CommonName:            addFlags.common,
		ScientificName:        addFlags.scientific,
		USDAZones:             zones,
		MinTemp:               addFlags.minTemp,
		MaxTemp:               addFlags.maxTemp,
		DroughtTolerance:      addFlags.drought,
		WateringRequirements:  addFlags.waterReq,
		WateringFrequency:     addFlags.waterFreq,
		Sunlight:              addFlags.sunlight,
		SoilType:              addFlags.soil,
		FertilizationSchedule: addFlags.fertilization,
		Notes:                 addFlags.notes,
		HerbalBenefits:        addFlags.herbBenefits,
		HerbalProperties:      addFlags.herbProps,
		HerbalDosage:          addFlags.herbDosage,
		HerbalNotes:           addFlags.herbNotes,
		IsWishlist:            addFlags.wishlist,
		DateAdded:             now,
		Images:                []string{},
		GroundingSources:      []string{},
	}

	db, _ := openVault()
	defer db.Close()

	if err := db.Upsert(p); err != nil {
		exitWithError(ExitError, "saving plant: %v", err)
	}

	if humanOutput {
		fmt.Printf("Archived: %s\n", p.CommonName)
	} else {
		outputJSON(p)
	}
	return nil
}

// parseZones parses a comma-separated zone list like "9,10,11".
func parseZones(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}

	parts := strings.Split(s, ",")
	zones := make([]int, 0, len(parts))
	for _, part := range parts {
		z, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid zone %q", part)
		}
		zones = append(zones, z)
	}
	return zones, nil
}
