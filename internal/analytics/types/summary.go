package types

import (
	"github.com/angelmondragon/friendsofall-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// CategoryShare is one row of the menu category breakdown.
type CategoryShare struct {
	Category enums.MenuCategory `json:"category"`
	Count    int                `json:"count"`
	Percent  decimal.Decimal    `json:"percent"`
}

// Summary backs the admin dashboard.
type Summary struct {
	TotalOrders    int                       `json:"total_orders"`
	ActiveOrders   int                       `json:"active_orders"`
	Revenue        decimal.Decimal           `json:"revenue"`
	OrdersByStatus map[enums.OrderStatus]int `json:"orders_by_status"`
	MenuItems      int                       `json:"menu_items"`
	AvailableItems int                       `json:"available_items"`
	AveragePrice   decimal.Decimal           `json:"average_price"`
	Categories     []CategoryShare           `json:"categories"`
}
