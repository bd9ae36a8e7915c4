package catalog

import "encoding/json"

// Wire shapes of the external catalog backend. Field names mirror the
// backend's JSON verbatim, including the unicos/combinaciones nesting
// asymmetry (tamanios_sabor vs tamanio_sabor).

type Size struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Tipo   string `json:"tipo"`
}

type Flavor struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Tipo     string `json:"tipo"`
	Especial bool   `json:"especial"`
}

// SizeFlavorPrice is the only source of truth for prices: one row per
// sellable (size, flavor) pair. Precio stays the backend's 2-decimal
// string until arithmetic needs it.
type SizeFlavorPrice struct {
	ID        int64   `json:"id"`
	TamanioID int64   `json:"tamanio_id"`
	SaborID   int64   `json:"sabor_id"`
	Precio    string  `json:"precio"`
	Tamanio   *Size   `json:"tamanio,omitempty"`
	Sabor     *Flavor `json:"sabor,omitempty"`
}

// UniquePairing is a product's fixed (size, flavor) association.
type UniquePairing struct {
	TamaniosSabor SizeFlavorPrice `json:"tamanios_sabor"`
}

// Combination is one leg of a dual-flavor pizza pairing.
type Combination struct {
	TamanioSabor SizeFlavorPrice `json:"tamanio_sabor"`
}

// BundleEntry is one constituent of a promotion.
type BundleEntry struct {
	ProductoID int64  `json:"producto_id"`
	Nombre     string `json:"nombre"`
	Cantidad   int    `json:"cantidad"`
}

type Product struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Precio      string `json:"precio"`
	Stock       int    `json:"stock"`
	CategoriaID int64  `json:"categoria_id"`
	Imagen      string `json:"imagen"`
	Destacado   bool   `json:"destacado"`
	Habilitado  bool   `json:"habilitado"`
	UnicoSabor  *bool  `json:"unico_sabor"`

	Unicos        []UniquePairing `json:"unicos,omitempty"`
	Combinaciones []Combination   `json:"combinaciones,omitempty"`
	Productos     []BundleEntry   `json:"productos,omitempty"`
}

// IsCombination reports whether the product is a locked dual-flavor pizza.
func (p Product) IsCombination() bool {
	return len(p.Combinaciones) > 0
}

// OriginalPairing returns the product's default (size, flavor, price) row:
// the first combination leg for combination pizzas, the first unique
// pairing otherwise.
func (p Product) OriginalPairing() *SizeFlavorPrice {
	if len(p.Combinaciones) > 0 {
		return &p.Combinaciones[0].TamanioSabor
	}
	if len(p.Unicos) > 0 {
		return &p.Unicos[0].TamaniosSabor
	}
	return nil
}

type Category struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

type User struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol"`
}

// ProductStats is passed through to the dashboard untouched; the backend
// owns the aggregation shape.
type ProductStats = json.RawMessage
