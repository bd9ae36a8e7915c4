package enums

// ProductType is the catalog type tag shared by sizes, flavors, and the
// menu sections. Values match the backend's `tipo` column verbatim.
type ProductType string

const (
	ProductTypePizza    ProductType = "Pizza"
	ProductTypeCalzone  ProductType = "Calzone"
	ProductTypePasta    ProductType = "Pasta"
	ProductTypeBebida   ProductType = "Bebida"
	ProductTypeAgregado ProductType = "Agregado"
)

// PathSegment returns the backend sub-path for per-type listings
// (e.g. /api/tamanios/pizza).
func (p ProductType) PathSegment() string {
	switch p {
	case ProductTypePizza:
		return "pizza"
	case ProductTypeCalzone:
		return "calzone"
	case ProductTypePasta:
		return "pasta"
	case ProductTypeBebida:
		return "bebida"
	case ProductTypeAgregado:
		return "agregado"
	}
	return ""
}

// Valid reports whether the tag is one of the known catalog types.
func (p ProductType) Valid() bool {
	return p.PathSegment() != ""
}

// HasAddons reports whether the configurator offers extra toppings for the
// type. Only pizzas and calzones carry agregados.
func (p ProductType) HasAddons() bool {
	return p == ProductTypePizza || p == ProductTypeCalzone
}
