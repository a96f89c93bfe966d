package research

import "fmt"

// BuildPrompt assembles the botanical research prompt. The field list
// names the exact 16-key JSON object the model must return: the
// fragment keys, never id, date_added, or is_wishlist.
func BuildPrompt(common, scientific, clues string) string {
	return fmt.Sprintf(`Botanical Analysis Protocol for: %s %s.
Clues: %s
Return JSON only: common_name, scientific_name, usda_zones (int list), min_temp (F), max_temp (F),
drought_tolerance, watering_requirements, watering_frequency, sunlight, soil_type,
fertilization_schedule, herbal_benefits, herbal_properties, herbal_dosage, herbal_notes, notes.`,
		common, scientific, clues)
}
