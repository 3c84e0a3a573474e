package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/angelmondragon/friendsofall-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/friendsofall-backend/pkg/errors"
	"github.com/angelmondragon/friendsofall-backend/pkg/ids"
	"github.com/angelmondragon/friendsofall-backend/pkg/kvstore"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
	"github.com/angelmondragon/friendsofall-backend/pkg/money"
)

// Service exposes menu browsing and admin menu management.
type Service interface {
	List(ctx context.Context, filter ListFilter) []MenuItem
	Get(ctx context.Context, id int64) (MenuItem, error)
	Create(ctx context.Context, input CreateInput) (MenuItem, error)
	Update(ctx context.Context, id int64, input UpdateInput) (MenuItem, error)
	Delete(ctx context.Context, id int64) bool
	AttachImage(ctx context.Context, target string, data string) (*MenuItem, error)
	Subscribe(fn func([]MenuItem)) func()
}

type service struct {
	slot *kvstore.Slot[[]MenuItem]
	ids  ids.Generator
	logg *logger.Logger

	mu          sync.Mutex
	stagedImage *string
}

// NewService constructs a catalog service over a loaded menu slot.
func NewService(slot *kvstore.Slot[[]MenuItem], idGen ids.Generator, logg *logger.Logger) (Service, error) {
	if slot == nil {
		return nil, fmt.Errorf("menu slot required")
	}
	if idGen == nil {
		return nil, fmt.Errorf("id generator required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{slot: slot, ids: idGen, logg: logg}, nil
}

// List returns matching items in insertion order.
func (s *service) List(_ context.Context, filter ListFilter) []MenuItem {
	category := strings.TrimSpace(filter.Category)
	if category == enums.MenuCategoryAll {
		category = ""
	}
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	items := s.slot.Get()
	out := make([]MenuItem, 0, len(items))
	for _, item := range items {
		if category != "" && string(item.Category) != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Name), query) &&
			!strings.Contains(strings.ToLower(item.Description), query) {
			continue
		}
		if filter.AvailableOnly && !item.Available {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (s *service) Get(_ context.Context, id int64) (MenuItem, error) {
	for _, item := range s.slot.Get() {
		if item.ID == id {
			return item, nil
		}
	}
	return MenuItem{}, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
}

func (s *service) Create(ctx context.Context, input CreateInput) (MenuItem, error) {
	details := map[string]string{}
	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)
	if name == "" {
		details["name"] = "is required"
	}
	if description == "" {
		details["description"] = "is required"
	}
	category, err := resolveCategory(input.Category)
	if err != nil {
		details["category"] = err.Error()
	}
	if len(details) > 0 {
		return MenuItem{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid menu item").WithDetails(details)
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	image := input.Image
	usedStaged := false
	if image == nil && s.stagedImage != nil {
		image = s.stagedImage
		usedStaged = true
	}

	item := MenuItem{
		ID:          s.ids.Next(),
		Name:        name,
		Description: description,
		Price:       money.NonNegative(input.Price),
		Category:    category,
		Available:   available,
		Spicy:       input.Spicy,
		Image:       image,
	}

	if _, err := s.slot.Update(ctx, func(items []MenuItem) ([]MenuItem, error) {
		return append(cloneItems(items), item), nil
	}); err != nil {
		return MenuItem{}, err
	}
	if usedStaged {
		s.stagedImage = nil
	}

	s.logg.Info(s.logg.WithField(ctx, "menu_item_id", item.ID), "menu item created")
	return item, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (MenuItem, error) {
	details := map[string]string{}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		details["name"] = "must not be empty"
	}
	if input.Description != nil && strings.TrimSpace(*input.Description) == "" {
		details["description"] = "must not be empty"
	}
	var category *enums.MenuCategory
	if input.Category != nil {
		c, err := resolveCategory(*input.Category)
		if err != nil {
			details["category"] = err.Error()
		}
		category = &c
	}
	if len(details) > 0 {
		return MenuItem{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid menu item").WithDetails(details)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var updated MenuItem
	_, err := s.slot.Update(ctx, func(items []MenuItem) ([]MenuItem, error) {
		idx := indexOf(items, id)
		if idx < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		next := cloneItems(items)
		item := next[idx]
		if input.Name != nil {
			item.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			item.Description = strings.TrimSpace(*input.Description)
		}
		if input.Price != nil {
			item.Price = money.NonNegative(*input.Price)
		}
		if category != nil {
			item.Category = *category
		}
		if input.Available != nil {
			item.Available = *input.Available
		}
		if input.Spicy != nil {
			item.Spicy = *input.Spicy
		}
		if input.Image != nil {
			item.Image = input.Image
		}
		next[idx] = item
		updated = item
		return next, nil
	})
	if err != nil {
		return MenuItem{}, err
	}

	s.logg.Info(s.logg.WithField(ctx, "menu_item_id", id), "menu item updated")
	return updated, nil
}

// Delete removes the item and reports whether it existed. Absent ids are a no-op.
func (s *service) Delete(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.slot.Get(), id) < 0 {
		return false
	}
	_, _ = s.slot.Update(ctx, func(items []MenuItem) ([]MenuItem, error) {
		next := make([]MenuItem, 0, len(items))
		for _, item := range items {
			if item.ID != id {
				next = append(next, item)
			}
		}
		return next, nil
	})
	s.logg.Info(s.logg.WithField(ctx, "menu_item_id", id), "menu item deleted")
	return true
}

// AttachImage stores an opaque image payload on an item, or stages it for the
// next Create when target is "new". The payload is not inspected.
func (s *service) AttachImage(ctx context.Context, target string, data string) (*MenuItem, error) {
	target = strings.TrimSpace(target)
	if target == NewImageTarget {
		s.mu.Lock()
		staged := data
		s.stagedImage = &staged
		s.mu.Unlock()
		return nil, nil
	}

	id, err := strconv.ParseInt(target, 10, 64)
	if err != nil || id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image target must be an item id or \"new\"")
	}

	image := data
	item, err := s.Update(ctx, id, UpdateInput{Image: &image})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *service) Subscribe(fn func([]MenuItem)) func() {
	return s.slot.Subscribe(fn)
}

func resolveCategory(raw string) (enums.MenuCategory, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return enums.MenuCategoryMainDishes, nil
	}
	category, err := enums.ParseMenuCategory(raw)
	if err != nil {
		return "", fmt.Errorf("must be one of Appetizers, Main Dishes, Sides, Desserts, Beverages")
	}
	return category, nil
}

func indexOf(items []MenuItem, id int64) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
