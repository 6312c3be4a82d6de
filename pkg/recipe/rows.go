package recipe

import "strconv"

// Table headers, in column order.
var (
	CategoryHeader    = []string{"id", "name"}
	CookingInfoHeader = []string{"cooking_id", "cooking_name", "description", "for_how_many_people", "root_id"}
	IngredientHeader  = []string{"ingredients", "cooking_id"}
	NutritionHeader   = []string{"nutrition_name", "quantity", "cooking_id"}
)

// CookingInfo is one row of cooking_info.csv.
type CookingInfo struct {
	CookingID   string `json:"cooking_id"`
	Name        string `json:"cooking_name"`
	Description string `json:"description"`
	Servings    string `json:"for_how_many_people"`
	RootID      int    `json:"root_id"` // Owning category id
	ImageURL    string `json:"-"`       // Not persisted as a column
}

// Row returns the CSV fields in CookingInfoHeader order.
func (c CookingInfo) Row() []string {
	return []string{c.CookingID, c.Name, c.Description, c.Servings, strconv.Itoa(c.RootID)}
}

// Ingredient is one row of ingredients.csv.
type Ingredient struct {
	Text      string `json:"ingredients"`
	CookingID string `json:"cooking_id"`
}

// Row returns the CSV fields in IngredientHeader order.
func (i Ingredient) Row() []string {
	return []string{i.Text, i.CookingID}
}

// Nutrition is one row of nutrition.csv.
type Nutrition struct {
	Name      string `json:"nutrition_name"`
	Quantity  string `json:"quantity"`
	CookingID string `json:"cooking_id"`
}

// Row returns the CSV fields in NutritionHeader order.
func (n Nutrition) Row() []string {
	return []string{n.Name, n.Quantity, n.CookingID}
}

// IsSentinel reports whether the row is the placeholder emitted for a
// recipe without nutrition data.
func (n Nutrition) IsSentinel() bool {
	return n.Name == "" && n.Quantity == ""
}

// CategoryRow returns the category_master.csv fields for c.
func CategoryRow(c Category) []string {
	return []string{strconv.Itoa(c.ID), c.Name}
}
