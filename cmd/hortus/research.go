package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matsen/hortus/internal/config"
	"github.com/matsen/hortus/internal/plant"
	"github.com/matsen/hortus/internal/research"
)

var researchFlags struct {
	common     string
	scientific string
	clues      string
	wishlist   bool
}

func init() {
	f := researchCmd.Flags()
	f.StringVar(&researchFlags.common, "common", "", "Common name")
	f.StringVar(&researchFlags.scientific, "scientific", "", "Scientific name")
	f.StringVar(&researchFlags.clues, "clues", "", "Contextual observations (physical description, habitat)")
	f.BoolVar(&researchFlags.wishlist, "wishlist", false, "Mark for acquisition (not yet in collection)")
	rootCmd.AddCommand(researchCmd)
}

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Research a specimen with Gemini and archive the result",
	Long: `Research a specimen with Gemini and archive the result.

Builds a botanical analysis prompt from the given identification,
asks the model for a structured JSON record, validates it, and saves
it to the vault. Requires a Gemini API key in the global config file
or the GEMINI_API_KEY environment variable.

Examples:
  hortus research --common "Aloe"
  hortus research --scientific "Nepenthes rajah" --wishlist
  hortus research --clues "carnivorous pitcher plant from Borneo"`,
	RunE: runResearch,
}

func runResearch(cmd *cobra.Command, args []string) error {
	if researchFlags.common == "" && researchFlags.scientific == "" && researchFlags.clues == "" {
		exitWithError(ExitDataError, "identification requires at least one data point")
	}

	cfg, err := loadConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	ctx := context.Background()
	client, err := research.NewClient(ctx, cfg)
	if err != nil {
		if errors.Is(err, research.ErrAPIKeyMissing) {
			exitWithError(ExitConfigError,
				"research disabled: set gemini_api_key in %s or export %s",
				config.GlobalConfigPath(), config.EnvAPIKey)
		}
		exitWithError(ExitError, "creating research client: %v", err)
	}
	defer client.Close()

	frag, err := client.Research(ctx, researchFlags.common, researchFlags.scientific, researchFlags.clues)
	if err != nil {
		// Nothing has been persisted at this point
		exitWithError(ExitError, "research failed: %v", err)
	}

	now := time.Now()
	p := frag.Plant(plant.NewID(now), now, researchFlags.wishlist)

	db, _ := openVault()
	defer db.Close()

	if err := db.Upsert(p); err != nil {
		exitWithError(ExitError, "saving plant: %v", err)
	}

	if humanOutput {
		fmt.Printf("Archived: %s\n", p.CommonName)
		printPlantHuman(p)
	} else {
		outputJSON(p)
	}
	return nil
}
