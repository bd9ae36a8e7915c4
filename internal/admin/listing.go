package admin

import (
	"strconv"
	"strings"

	"github.com/jhonvillanueva44/mammapizza-api/internal/catalog"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/enums"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/pagination"
)

// Query is the shared listing input of every admin table: one free-text
// filter plus optional narrowing, paged at the fixed table size.
type Query struct {
	Search     string
	Tipo       string
	CategoryID int64
	Page       int
}

func matches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, page int) ([]T, pagination.Page) {
	start, end, p := pagination.Slice(len(items), page)
	return items[start:end], p
}

// FilterCategories matches on name and description.
func FilterCategories(categories []catalog.Category, q Query) ([]catalog.Category, pagination.Page) {
	var kept []catalog.Category
	for _, c := range categories {
		if matches(q.Search, c.Nombre, c.Descripcion) {
			kept = append(kept, c)
		}
	}
	return paginate(kept, q.Page)
}

// FilterSizes matches on name and narrows by type when one is given.
func FilterSizes(sizes []catalog.Size, q Query) ([]catalog.Size, pagination.Page) {
	var kept []catalog.Size
	for _, s := range sizes {
		if q.Tipo != "" && s.Tipo != q.Tipo {
			continue
		}
		if matches(q.Search, s.Nombre) {
			kept = append(kept, s)
		}
	}
	return paginate(kept, q.Page)
}

// FilterFlavors matches on name and description fields, narrowed by type.
func FilterFlavors(flavors []catalog.Flavor, q Query) ([]catalog.Flavor, pagination.Page) {
	var kept []catalog.Flavor
	for _, f := range flavors {
		if q.Tipo != "" && f.Tipo != q.Tipo {
			continue
		}
		if matches(q.Search, f.Nombre) {
			kept = append(kept, f)
		}
	}
	return paginate(kept, q.Page)
}

// FilterPrices matches on the joined flavor name, size name, size type
// and the raw price text.
func FilterPrices(rows []catalog.SizeFlavorPrice, q Query) ([]catalog.SizeFlavorPrice, pagination.Page) {
	var kept []catalog.SizeFlavorPrice
	for _, row := range rows {
		fields := []string{row.Precio}
		if row.Sabor != nil {
			fields = append(fields, row.Sabor.Nombre)
		}
		if row.Tamanio != nil {
			fields = append(fields, row.Tamanio.Nombre, row.Tamanio.Tipo)
		}
		if matches(q.Search, fields...) {
			kept = append(kept, row)
		}
	}
	return paginate(kept, q.Page)
}

// FilterProducts matches on name, category name, price and stock text,
// narrowed by category when one is given.
func FilterProducts(products []catalog.Product, categories []catalog.Category, q Query) ([]catalog.Product, pagination.Page) {
	names := map[int64]string{}
	for _, c := range categories {
		names[c.ID] = c.Nombre
	}
	var kept []catalog.Product
	for _, p := range products {
		if q.CategoryID != 0 && p.CategoriaID != q.CategoryID {
			continue
		}
		if matches(q.Search, p.Nombre, names[p.CategoriaID], p.Precio, strconv.Itoa(p.Stock)) {
			kept = append(kept, p)
		}
	}
	return paginate(kept, q.Page)
}

// FlavorSummary is the pizza flavor column of the product table.
func FlavorSummary(p catalog.Product) string {
	if enums.CategoryID(p.CategoriaID) != enums.CategoryPizza {
		return ""
	}
	if p.UnicoSabor == nil {
		return "Sin sabor definido"
	}
	if *p.UnicoSabor {
		return "Sabor único"
	}
	return "Combinación"
}
