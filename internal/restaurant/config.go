// Package restaurant holds the static reference data shown on every page:
// contact details, opening hours, delivery terms and vocabularies.
package restaurant

import (
	"github.com/angelmondragon/friendsofall-backend/pkg/enums"
	"github.com/angelmondragon/friendsofall-backend/pkg/money"
	"github.com/shopspring/decimal"
)

// EstimatedTime is quoted on every new order.
const EstimatedTime = "25-35 minutes"

type HoursEntry struct {
	Days  string `json:"days"`
	Hours string `json:"hours"`
}

type Delivery struct {
	Fee     decimal.Decimal `json:"fee"`
	Minimum decimal.Decimal `json:"minimum"`
	Time    string          `json:"time"`
}

type StatusLabel struct {
	Status enums.OrderStatus `json:"status"`
	Label  string            `json:"label"`
}

// Config is immutable after construction; callers receive copies.
type Config struct {
	Name       string               `json:"name"`
	Tagline    string               `json:"tagline"`
	Phone      string               `json:"phone"`
	Address    string               `json:"address"`
	Hours      []HoursEntry         `json:"hours"`
	Delivery   Delivery             `json:"delivery"`
	TaxRate    decimal.Decimal      `json:"tax_rate"`
	Categories []enums.MenuCategory `json:"categories"`
	Statuses   []StatusLabel        `json:"statuses"`
}

// Default returns the Friends of All configuration.
func Default() Config {
	statuses := make([]StatusLabel, 0, len(enums.OrderStatuses()))
	for _, s := range enums.OrderStatuses() {
		statuses = append(statuses, StatusLabel{Status: s, Label: s.Label()})
	}
	return Config{
		Name:    "Friends of All",
		Tagline: "Delicious food made with love",
		Phone:   "(555) 123-4567",
		Address: "123 Foodie Street, Delicious City, DC 12345",
		Hours: []HoursEntry{
			{Days: "Monday - Thursday", Hours: "11:00 AM - 9:00 PM"},
			{Days: "Friday - Saturday", Hours: "11:00 AM - 10:00 PM"},
			{Days: "Sunday", Hours: "12:00 PM - 8:00 PM"},
		},
		Delivery: Delivery{
			Fee:     money.MustParse("2.99"),
			Minimum: money.MustParse("15.00"),
			Time:    EstimatedTime,
		},
		TaxRate:    money.MustParse("0.08"),
		Categories: enums.MenuCategories(),
		Statuses:   statuses,
	}
}
