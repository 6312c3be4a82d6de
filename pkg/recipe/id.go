package recipe

import "fmt"

// MaxPerCategory is the number of positions a category can hold before
// cooking ids start to collide with the next category.
const MaxPerCategory = 10000

// CookingID returns the six-digit composite key for the recipe at the
// 1-based position within a category.
func CookingID(categoryID, position int) string {
	return fmt.Sprintf("%06d", categoryID*MaxPerCategory+position)
}
