package recipe

import "strings"

const (
	// nutrientSuffix is dropped from nutrition keys ("fatContent" -> "fat").
	nutrientSuffix = "Content"
	// nutritionType is the schema.org @type value that shows up among the
	// nutrition entries. It is not a nutrient.
	nutritionType = "NutritionInformation"
)

// Extracted groups the rows derived from a single Record.
type Extracted struct {
	Info        CookingInfo
	Ingredients []Ingredient
	Nutrition   []Nutrition
}

// Extract derives all three row sets for rec.
func Extract(rec Record, cookingID string, categoryID int) Extracted {
	return Extracted{
		Info:        ExtractCookingInfo(rec, cookingID, categoryID),
		Ingredients: ExtractIngredients(rec, cookingID),
		Nutrition:   ExtractNutrition(rec, cookingID),
	}
}

// ExtractCookingInfo copies the descriptive fields of rec.
func ExtractCookingInfo(rec Record, cookingID string, categoryID int) CookingInfo {
	return CookingInfo{
		CookingID:   cookingID,
		Name:        rec.Name,
		Description: rec.Description,
		Servings:    string(rec.Yield),
		RootID:      categoryID,
		ImageURL:    string(rec.Image),
	}
}

// ExtractIngredients returns one row per ingredient string, in order.
func ExtractIngredients(rec Record, cookingID string) []Ingredient {
	rows := make([]Ingredient, 0, len(rec.Ingredients))
	for _, text := range rec.Ingredients {
		rows = append(rows, Ingredient{Text: text, CookingID: cookingID})
	}
	return rows
}

// ExtractNutrition returns one row per nutrient. When the record carries no
// nutrient at all, a single row with empty name and quantity is returned
// instead, so every recipe has at least one nutrition row.
func ExtractNutrition(rec Record, cookingID string) []Nutrition {
	var rows []Nutrition
	if rec.Nutrition != nil {
		for _, fact := range *rec.Nutrition {
			if fact.Value == nutritionType {
				continue
			}
			rows = append(rows, Nutrition{
				Name:      strings.ReplaceAll(fact.Key, nutrientSuffix, ""),
				Quantity:  fact.Value,
				CookingID: cookingID,
			})
		}
	}

	if len(rows) == 0 {
		return []Nutrition{{CookingID: cookingID}}
	}
	return rows
}
