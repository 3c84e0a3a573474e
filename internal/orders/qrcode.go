package orders

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRGenerator renders an order confirmation code.
type QRGenerator interface {
	Generate(order Order) ([]byte, error)
}

// DefaultQRGenerator encodes the order number and total as a PNG.
type DefaultQRGenerator struct {
	Restaurant string
	Size       int
}

func (g DefaultQRGenerator) Generate(order Order) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	payload := fmt.Sprintf("%s order #%d total $%s", g.Restaurant, order.ID, order.Total.StringFixed(2))
	return qrcode.Encode(payload, qrcode.Medium, size)
}
