package cart

import "github.com/shopspring/decimal"

// Line is one cart entry. Name and price are captured when the line is added
// and are not linked to later menu edits.
type Line struct {
	ID                  int64           `json:"id"`
	MenuItemID          int64           `json:"menu_item_id"`
	Name                string          `json:"name"`
	Price               decimal.Decimal `json:"price"`
	Quantity            int             `json:"quantity"`
	SpecialInstructions string          `json:"special_instructions"`
	Total               decimal.Decimal `json:"total"`
}

// LinePatch updates a line in place. Omitted fields keep their current value.
type LinePatch struct {
	Price               *decimal.Decimal
	Quantity            *int
	SpecialInstructions *string
}

// Summary is the cart as shown in the cart drawer.
type Summary struct {
	Lines    []Line          `json:"lines"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func lineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
