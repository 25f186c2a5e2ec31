package models

// Category is one of the fixed menu sections. The set is not editable.
type Category string

const (
	CategorySoup    Category = "Soup"
	CategoryMain    Category = "Main"
	CategorySalad   Category = "Salad"
	CategoryDrink   Category = "Drink"
	CategoryDessert Category = "Dessert"
)

// MenuCategories lists the categories in display order.
var MenuCategories = []Category{
	CategorySoup,
	CategoryMain,
	CategorySalad,
	CategoryDrink,
	CategoryDessert,
}

func (c Category) Valid() bool {
	for _, known := range MenuCategories {
		if c == known {
			return true
		}
	}
	return false
}

type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
}

func (m MenuItem) EntityID() string { return m.ID }
