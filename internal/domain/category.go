package domain

import (
	"fmt"
	"strings"
)

// CategoryID identifies one entry of the food category catalog.
type CategoryID string

const (
	CategoryFrozenFoods     CategoryID = "frozen_foods"
	CategoryFreshVegetables CategoryID = "fresh_vegetables"
	CategoryRawMeats        CategoryID = "raw_meats"
	CategoryBakedGoods      CategoryID = "baked_goods"
	CategorySeafood         CategoryID = "seafood"
)

// FoodCategory is an immutable catalog record describing how oven
// settings translate to the air fryer for one kind of food.
type FoodCategory struct {
	ID          CategoryID
	Name        string
	Icon        string
	Description string
	Tip         string

	// ReductionF is subtracted from the oven temperature, in °F.
	ReductionF int
	// TimePercent is the time multiplier expressed in percent, (0,100].
	TimePercent int
	// MinSafeF is the lowest oven temperature accepted for the category,
	// in °F. Zero means no category-specific floor.
	MinSafeF int
}

// catalog is ordered for display; never mutate it.
var catalog = []FoodCategory{
	{
		ID:          CategoryFrozenFoods,
		Name:        "Frozen Foods",
		Icon:        "❄",
		Description: "Fries, nuggets, and other pre-cooked frozen items",
		Tip:         "No need to thaw. Shake the basket halfway through for even crisping.",
		ReductionF:  0,
		TimePercent: 50,
	},
	{
		ID:          CategoryFreshVegetables,
		Name:        "Fresh Vegetables",
		Icon:        "🥦",
		Description: "Roasted vegetables, potatoes, and root veg",
		Tip:         "Toss lightly in oil and cut pieces to a similar size.",
		ReductionF:  25,
		TimePercent: 80,
		MinSafeF:    300,
	},
	{
		ID:          CategoryRawMeats,
		Name:        "Raw Meats",
		Icon:        "🍗",
		Description: "Chicken, pork, beef, and other raw cuts",
		Tip:         "Check the internal temperature with a thermometer before serving.",
		ReductionF:  25,
		TimePercent: 75,
		MinSafeF:    325,
	},
	{
		ID:          CategoryBakedGoods,
		Name:        "Baked Goods",
		Icon:        "🧁",
		Description: "Muffins, cookies, and small cakes",
		Tip:         "Use a smaller pan and check early; tops brown faster than in an oven.",
		ReductionF:  25,
		TimePercent: 80,
	},
	{
		ID:          CategorySeafood,
		Name:        "Seafood",
		Icon:        "🐟",
		Description: "Fish fillets, shrimp, and scallops",
		Tip:         "Lightly oil the basket so delicate fillets don't stick.",
		ReductionF:  25,
		TimePercent: 70,
	},
}

// categoryAliases maps short user input to catalog ids.
var categoryAliases = map[string]CategoryID{
	"frozen":     CategoryFrozenFoods,
	"veg":        CategoryFreshVegetables,
	"veggies":    CategoryFreshVegetables,
	"vegetables": CategoryFreshVegetables,
	"meat":       CategoryRawMeats,
	"meats":      CategoryRawMeats,
	"baked":      CategoryBakedGoods,
	"baking":     CategoryBakedGoods,
	"fish":       CategorySeafood,
}

// Categories returns the catalog in display order. The returned slice is a copy.
func Categories() []FoodCategory {
	out := make([]FoodCategory, len(catalog))
	copy(out, catalog)
	return out
}

// LookupCategory returns the catalog entry for id.
func LookupCategory(id CategoryID) (FoodCategory, error) {
	for _, c := range catalog {
		if c.ID == id {
			return c, nil
		}
	}
	return FoodCategory{}, fmt.Errorf("%w: %q", ErrUnknownCategory, id)
}

// ParseCategory resolves an id, a display name, or a short alias.
func ParseCategory(s string) (CategoryID, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	if id, ok := categoryAliases[key]; ok {
		return id, nil
	}
	for _, c := range catalog {
		if string(c.ID) == key || strings.EqualFold(c.Name, s) {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
