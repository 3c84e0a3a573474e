package catalog

import (
	"github.com/angelmondragon/friendsofall-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// MenuItem is an orderable dish or drink.
type MenuItem struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       decimal.Decimal    `json:"price"`
	Category    enums.MenuCategory `json:"category"`
	Available   bool               `json:"available"`
	Spicy       bool               `json:"spicy"`
	Image       *string            `json:"image"`
}

// ListFilter narrows List results. All predicates are combined with AND.
type ListFilter struct {
	Category      string
	Query         string
	AvailableOnly bool
}

// CreateInput is the admin draft for a new item. Price has already been
// parsed permissively; negative values are clamped to zero.
type CreateInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Available   *bool
	Spicy       bool
	Image       *string
}

// UpdateInput is a partial patch; nil fields are left unchanged.
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	Available   *bool
	Spicy       *bool
	Image       *string
}

// NewImageTarget stages an image for the next Create instead of an existing item.
const NewImageTarget = "new"

func cloneItems(items []MenuItem) []MenuItem {
	out := make([]MenuItem, len(items))
	copy(out, items)
	return out
}
