package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/angelmondragon/friendsofall-backend/internal/catalog"
	"github.com/angelmondragon/friendsofall-backend/pkg/ids"
	"github.com/angelmondragon/friendsofall-backend/pkg/kvstore"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
	"github.com/angelmondragon/friendsofall-backend/pkg/metrics"
	"github.com/angelmondragon/friendsofall-backend/pkg/money"
	"github.com/shopspring/decimal"
)

const maxInstructionsLen = 500

// Service owns the session cart.
type Service interface {
	Add(ctx context.Context, item catalog.MenuItem, quantity int, instructions string) Line
	Remove(ctx context.Context, lineID int64) bool
	RemoveLines(ctx context.Context, lineIDs []int64) int
	UpdateLine(ctx context.Context, lineID int64, patch LinePatch) (Line, bool)
	SetQuantity(ctx context.Context, lineID int64, quantity int) (*Line, bool)
	Clear(ctx context.Context)
	Lines(ctx context.Context) []Line
	Count(ctx context.Context) int
	Subtotal(ctx context.Context) decimal.Decimal
	Summary(ctx context.Context) Summary
	Subscribe(fn func([]Line)) func()
}

type service struct {
	slot    *kvstore.Slot[[]Line]
	ids     ids.Generator
	logg    *logger.Logger
	metrics *metrics.StoreMetrics

	mu sync.Mutex
}

// NewService constructs a cart service over a loaded cart slot.
func NewService(slot *kvstore.Slot[[]Line], idGen ids.Generator, logg *logger.Logger, m *metrics.StoreMetrics) (Service, error) {
	if slot == nil {
		return nil, fmt.Errorf("cart slot required")
	}
	if idGen == nil {
		return nil, fmt.Errorf("id generator required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	svc := &service{slot: slot, ids: idGen, logg: logg, metrics: m}
	m.SetCartLines(len(slot.Get()))
	slot.Subscribe(func(lines []Line) { m.SetCartLines(len(lines)) })
	return svc, nil
}

// Add appends a new line. Adding the same menu item twice yields two lines.
func (s *service) Add(ctx context.Context, item catalog.MenuItem, quantity int, instructions string) Line {
	if quantity < 1 {
		quantity = 1
	}
	line := Line{
		ID:                  s.ids.Next(),
		MenuItemID:          item.ID,
		Name:                item.Name,
		Price:               item.Price,
		Quantity:            quantity,
		SpecialInstructions: trimInstructions(instructions),
		Total:               lineTotal(item.Price, quantity),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.slot.Update(ctx, func(lines []Line) ([]Line, error) {
		return append(cloneLines(lines), line), nil
	})
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"cart_line_id": line.ID, "menu_item_id": item.ID}), "cart line added")
	return line
}

// Remove drops the line and reports whether it existed.
func (s *service) Remove(ctx context.Context, lineID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, lineID)
}

func (s *service) removeLocked(ctx context.Context, lineID int64) bool {
	if indexOf(s.slot.Get(), lineID) < 0 {
		return false
	}
	_, _ = s.slot.Update(ctx, func(lines []Line) ([]Line, error) {
		next := make([]Line, 0, len(lines))
		for _, line := range lines {
			if line.ID != lineID {
				next = append(next, line)
			}
		}
		return next, nil
	})
	return true
}

// RemoveLines drops every listed line in one write and returns how many were
// present. Lines not in the list are kept.
func (s *service) RemoveLines(ctx context.Context, lineIDs []int64) int {
	if len(lineIDs) == 0 {
		return 0
	}
	drop := make(map[int64]struct{}, len(lineIDs))
	for _, id := range lineIDs {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, line := range s.slot.Get() {
		if _, ok := drop[line.ID]; ok {
			removed++
		}
	}
	if removed == 0 {
		return 0
	}
	_, _ = s.slot.Update(ctx, func(lines []Line) ([]Line, error) {
		next := make([]Line, 0, len(lines))
		for _, line := range lines {
			if _, ok := drop[line.ID]; !ok {
				next = append(next, line)
			}
		}
		return next, nil
	})
	s.logg.Info(s.logg.WithField(ctx, "removed", removed), "cart lines removed")
	return removed
}

// UpdateLine patches price, quantity or instructions and recomputes the total.
// Quantity is kept at one or more and price at zero or more.
func (s *service) UpdateLine(ctx context.Context, lineID int64, patch LinePatch) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(ctx, lineID, patch)
}

func (s *service) updateLocked(ctx context.Context, lineID int64, patch LinePatch) (Line, bool) {
	idx := indexOf(s.slot.Get(), lineID)
	if idx < 0 {
		return Line{}, false
	}

	var updated Line
	_, _ = s.slot.Update(ctx, func(lines []Line) ([]Line, error) {
		next := cloneLines(lines)
		line := next[idx]
		if patch.Price != nil {
			line.Price = money.NonNegative(*patch.Price)
		}
		if patch.Quantity != nil {
			line.Quantity = *patch.Quantity
			if line.Quantity < 1 {
				line.Quantity = 1
			}
		}
		if patch.SpecialInstructions != nil {
			line.SpecialInstructions = trimInstructions(*patch.SpecialInstructions)
		}
		line.Total = lineTotal(line.Price, line.Quantity)
		next[idx] = line
		updated = line
		return next, nil
	})
	return updated, true
}

// SetQuantity is the quantity stepper: zero or less removes the line, in which
// case the returned line is nil.
func (s *service) SetQuantity(ctx context.Context, lineID int64, quantity int) (*Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return nil, s.removeLocked(ctx, lineID)
	}
	line, found := s.updateLocked(ctx, lineID, LinePatch{Quantity: &quantity})
	if !found {
		return nil, false
	}
	return &line, true
}

func (s *service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot.Set(ctx, []Line{})
	s.logg.Info(ctx, "cart cleared")
}

func (s *service) Lines(_ context.Context) []Line {
	return cloneLines(s.slot.Get())
}

// Count is the number of lines, not the number of units.
func (s *service) Count(_ context.Context) int {
	return len(s.slot.Get())
}

func (s *service) Subtotal(_ context.Context) decimal.Decimal {
	return subtotal(s.slot.Get())
}

func (s *service) Summary(_ context.Context) Summary {
	lines := cloneLines(s.slot.Get())
	return Summary{Lines: lines, Count: len(lines), Subtotal: subtotal(lines)}
}

func (s *service) Subscribe(fn func([]Line)) func() {
	return s.slot.Subscribe(fn)
}

// Subtotal sums line totals. An empty cart is zero.
func subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Total)
	}
	return total
}

// SubtotalOf sums the totals of a line snapshot.
func SubtotalOf(lines []Line) decimal.Decimal {
	return subtotal(lines)
}

// trimInstructions caps instructions at maxInstructionsLen bytes without
// splitting a multi-byte character.
func trimInstructions(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) <= maxInstructionsLen {
		return trimmed
	}
	cut := maxInstructionsLen
	for cut > 0 && !utf8.RuneStart(trimmed[cut]) {
		cut--
	}
	return trimmed[:cut]
}

func indexOf(lines []Line, id int64) int {
	for i, line := range lines {
		if line.ID == id {
			return i
		}
	}
	return -1
}
