package enums

// CategoryID identifies the fixed product categories the admin forms
// dispatch on. The ids are part of the backend contract.
type CategoryID int64

const (
	CategoryPizza     CategoryID = 1
	CategoryCalzone   CategoryID = 2
	CategoryPasta     CategoryID = 3
	CategoryPromocion CategoryID = 5
	CategoryAdicional CategoryID = 6
	CategoryBebida    CategoryID = 7
)

// ProductType maps a category to its size/flavor type tag. Promotions and
// adicionales have no size/flavor concept and return an empty type.
func (c CategoryID) ProductType() ProductType {
	switch c {
	case CategoryPizza:
		return ProductTypePizza
	case CategoryCalzone:
		return ProductTypeCalzone
	case CategoryPasta:
		return ProductTypePasta
	case CategoryBebida:
		return ProductTypeBebida
	}
	return ""
}

func (c CategoryID) Valid() bool {
	switch c {
	case CategoryPizza, CategoryCalzone, CategoryPasta, CategoryPromocion, CategoryAdicional, CategoryBebida:
		return true
	}
	return false
}
