package recipe

import "strings"

// Slugify turns a category heading into the token the listing endpoint
// expects after "cuisine-".
//
//	"Barbecue"  -> "barbecue-bbq"
//	"Tex & Mex" -> "tex"
//	"Italian"   -> "italian"
func Slugify(name string) string {
	slug := strings.ToLower(name)

	if strings.Contains(slug, "barbecue") {
		slug += "-bbq"
	}
	if strings.Contains(slug, "&") {
		return strings.Split(slug, " ")[0]
	}
	return slug
}
