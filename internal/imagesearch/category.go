// Package imagesearch attaches stock photos to itinerary activities. It turns
// an activity title into ranked search queries, asks the photo providers in
// priority order and keeps every photo unique across one itinerary.
package imagesearch

import "strings"

// Category drives which query templates are used for an activity.
type Category string

const (
	CategoryDining     Category = "dining"
	CategoryAttraction Category = "attraction"
	CategoryMuseum     Category = "museum"
	CategoryTemple     Category = "temple"
	CategoryPark       Category = "park"
	CategoryShopping   Category = "shopping"
	CategoryDefault    Category = "default"
)

// categoryLabels maps the labels callers may pass as a hint, both the
// Chinese venue labels used by planners and the English names.
var categoryLabels = map[string]Category{
	"景点":  CategoryAttraction,
	"餐厅":  CategoryDining,
	"美食":  CategoryDining,
	"酒店":  CategoryDefault,
	"公园":  CategoryPark,
	"博物馆": CategoryMuseum,
	"寺庙":  CategoryTemple,
	"古镇":  CategoryDefault,
	"夜景":  CategoryDefault,
	"购物":  CategoryShopping,

	string(CategoryDining):     CategoryDining,
	string(CategoryAttraction): CategoryAttraction,
	string(CategoryMuseum):     CategoryMuseum,
	string(CategoryTemple):     CategoryTemple,
	string(CategoryPark):       CategoryPark,
	string(CategoryShopping):   CategoryShopping,
	string(CategoryDefault):    CategoryDefault,
	"lodging":                  CategoryDefault,
}

// ParseCategory resolves a hint label. Unknown labels report false so the
// caller falls back to keyword classification.
func ParseCategory(label string) (Category, bool) {
	c, ok := categoryLabels[strings.ToLower(strings.TrimSpace(label))]
	return c, ok
}
