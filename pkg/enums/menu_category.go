package enums

import "fmt"

// MenuCategory groups menu items on the menu page.
type MenuCategory string

const (
	MenuCategoryAppetizers MenuCategory = "Appetizers"
	MenuCategoryMainDishes MenuCategory = "Main Dishes"
	MenuCategorySides      MenuCategory = "Sides"
	MenuCategoryDesserts   MenuCategory = "Desserts"
	MenuCategoryBeverages  MenuCategory = "Beverages"
)

// MenuCategoryAll is the menu filter sentinel meaning "no category predicate".
const MenuCategoryAll = "All"

var validMenuCategories = []MenuCategory{
	MenuCategoryAppetizers,
	MenuCategoryMainDishes,
	MenuCategorySides,
	MenuCategoryDesserts,
	MenuCategoryBeverages,
}

// MenuCategories returns the categories in display order.
func MenuCategories() []MenuCategory {
	out := make([]MenuCategory, len(validMenuCategories))
	copy(out, validMenuCategories)
	return out
}

// String implements fmt.Stringer.
func (c MenuCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known MenuCategory.
func (c MenuCategory) IsValid() bool {
	for _, candidate := range validMenuCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseMenuCategory converts raw input into a MenuCategory.
func ParseMenuCategory(value string) (MenuCategory, error) {
	for _, candidate := range validMenuCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid menu category %q", value)
}
