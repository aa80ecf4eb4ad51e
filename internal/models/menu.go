package models

import "fmt"

// Cents is an amount of money in US cents
type Cents int64

// String formats the amount as dollars, e.g. $14.50
func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}

// RestaurantCategory is the filter bucket shown on the browse page
type RestaurantCategory string

const (
	CategoryDiningHall RestaurantCategory = "Dining Hall"
	CategoryCafe       RestaurantCategory = "Café"
	CategoryQuickBites RestaurantCategory = "Quick Bites"
)

// RestaurantCategories lists the browse filters in display order
func RestaurantCategories() []RestaurantCategory {
	return []RestaurantCategory{CategoryDiningHall, CategoryCafe, CategoryQuickBites}
}

// Restaurant represents a campus food venue
type Restaurant struct {
	Slug     string             `db:"slug" json:"slug"`
	Name     string             `db:"name" json:"name"`
	Hours    string             `db:"hours" json:"hours"`
	Info     string             `db:"info" json:"info"`
	Category RestaurantCategory `db:"category" json:"category"`
	Icon     string             `db:"icon" json:"icon"`
	ImageURL string             `db:"image_url" json:"image_url"`
}

// MenuItem represents an item on a restaurant's menu
type MenuItem struct {
	ID             string `db:"id" json:"id"`
	RestaurantSlug string `db:"restaurant_slug" json:"restaurant_slug"`
	Name           string `db:"name" json:"name"`
	Description    string `db:"description" json:"description"`
	Price          Cents  `db:"price_cents" json:"price_cents"`
	Category       string `db:"category" json:"category"`
	Icon           string `db:"icon" json:"icon"`
}

// MenuSection groups menu items sharing a category
type MenuSection struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}
