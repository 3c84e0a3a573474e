package cart

import (
	"github.com/angelmondragon/friendsofall-backend/api/validators"
	internalcart "github.com/angelmondragon/friendsofall-backend/internal/cart"
	"github.com/angelmondragon/friendsofall-backend/pkg/money"
)

const maxInstructionsLen = 500

type addLineRequest struct {
	MenuItemID          int64  `json:"menu_item_id" validate:"required,gt=0"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions"`
}

type updateLineRequest struct {
	Price               money.Input `json:"price"`
	Quantity            *int        `json:"quantity"`
	SpecialInstructions *string     `json:"special_instructions"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func (p updateLineRequest) toPatch() internalcart.LinePatch {
	return internalcart.LinePatch{
		Price:               p.Price.Ptr(),
		Quantity:            p.Quantity,
		SpecialInstructions: validators.SanitizeOptional(p.SpecialInstructions, maxInstructionsLen),
	}
}
