package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jhonvillanueva44/mammapizza-api/api/responses"
	"github.com/jhonvillanueva44/mammapizza-api/internal/catalog"
	pkgerrors "github.com/jhonvillanueva44/mammapizza-api/pkg/errors"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
)

// MenuSource lists the storefront's product sections.
type MenuSource interface {
	ProductsByType(ctx context.Context, segment string) ([]catalog.Product, error)
	Promotions(ctx context.Context) ([]catalog.Product, error)
}

var menuSections = map[string]bool{
	"pizzas":   true,
	"calzones": true,
	"pastas":   true,
	"bebidas":  true,
}

// menuEntry is a product card as the menu pages render it. Prices shown
// on cards come from the product's stored pairing, not the price matrix.
type menuEntry struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Precio      string `json:"precio"`
	Imagen      string `json:"imagen"`
	Destacado   bool   `json:"destacado"`
	Combinacion bool   `json:"combinacion"`
}

// MenuSection lists the enabled products of one menu section.
func MenuSection(source MenuSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section := chi.URLParam(r, "seccion")
		if !menuSections[section] {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "unknown menu section").
				WithDetails(map[string]any{"seccion": section}))
			return
		}

		products, err := source.ProductsByType(r.Context(), section)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, menuEntries(products))
	}
}

// MenuPromotions lists the enabled promotions with their bundles.
func MenuPromotions(source MenuSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		promos, err := source.Promotions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		type promoEntry struct {
			menuEntry
			Productos []catalog.BundleEntry `json:"productos"`
		}
		entries := make([]promoEntry, 0, len(promos))
		for _, p := range promos {
			if !p.Habilitado {
				continue
			}
			entries = append(entries, promoEntry{menuEntry: newMenuEntry(p), Productos: p.Productos})
		}
		responses.WriteSuccess(w, entries)
	}
}

func menuEntries(products []catalog.Product) []menuEntry {
	entries := make([]menuEntry, 0, len(products))
	for _, p := range products {
		if !p.Habilitado {
			continue
		}
		entries = append(entries, newMenuEntry(p))
	}
	return entries
}

func newMenuEntry(p catalog.Product) menuEntry {
	precio := p.Precio
	if pairing := p.OriginalPairing(); pairing != nil && !p.IsCombination() {
		precio = pairing.Precio
	}
	return menuEntry{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      precio,
		Imagen:      p.Imagen,
		Destacado:   p.Destacado,
		Combinacion: p.IsCombination(),
	}
}
