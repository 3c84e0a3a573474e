package catalog

import (
	"github.com/angelmondragon/friendsofall-backend/pkg/enums"
	"github.com/angelmondragon/friendsofall-backend/pkg/money"
)

// SeedMenu is the starter menu written on first run.
func SeedMenu() []MenuItem {
	item := func(id int64, name, description, price string, category enums.MenuCategory, spicy bool) MenuItem {
		return MenuItem{
			ID:          id,
			Name:        name,
			Description: description,
			Price:       money.MustParse(price),
			Category:    category,
			Available:   true,
			Spicy:       spicy,
		}
	}
	return []MenuItem{
		item(1, "Wings (8 pieces)", "Crispy chicken wings with your choice of sauce", "12.99", enums.MenuCategoryAppetizers, true),
		item(2, "Mozzarella Sticks", "Golden fried cheese sticks served with marinara sauce", "8.99", enums.MenuCategoryAppetizers, false),
		item(3, "Loaded Nachos", "Tortilla chips topped with cheese, jalapeños, and sour cream", "10.99", enums.MenuCategoryAppetizers, true),
		item(4, "Classic Burger", "Beef patty with lettuce, tomato, onion, and pickles", "14.99", enums.MenuCategoryMainDishes, false),
		item(5, "BBQ Ribs (Half Rack)", "Tender pork ribs with house BBQ sauce", "18.99", enums.MenuCategoryMainDishes, false),
		item(6, "Grilled Chicken Caesar", "Fresh romaine lettuce with grilled chicken and Caesar dressing", "13.99", enums.MenuCategoryMainDishes, false),
		item(7, "Fish & Chips", "Beer-battered cod with crispy fries and tartar sauce", "16.99", enums.MenuCategoryMainDishes, false),
		item(8, "French Fries", "Crispy golden fries", "4.99", enums.MenuCategorySides, false),
		item(9, "Onion Rings", "Beer-battered onion rings", "5.99", enums.MenuCategorySides, false),
		item(10, "Mac & Cheese", "Creamy macaroni and cheese", "6.99", enums.MenuCategorySides, false),
		item(11, "Chocolate Cake", "Rich chocolate cake with chocolate frosting", "6.99", enums.MenuCategoryDesserts, false),
		item(12, "Ice Cream (3 scoops)", "Vanilla, chocolate, or strawberry", "4.99", enums.MenuCategoryDesserts, false),
		item(13, "Soft Drinks", "Coke, Pepsi, Sprite, Orange", "2.99", enums.MenuCategoryBeverages, false),
		item(14, "Fresh Juice", "Orange, Apple, or Cranberry", "3.99", enums.MenuCategoryBeverages, false),
		item(15, "Coffee", "Fresh brewed coffee", "2.49", enums.MenuCategoryBeverages, false),
	}
}
