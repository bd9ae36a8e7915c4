package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jhonvillanueva44/mammapizza-api/api/responses"
	"github.com/jhonvillanueva44/mammapizza-api/api/validators"
	"github.com/jhonvillanueva44/mammapizza-api/internal/catalog"
	"github.com/jhonvillanueva44/mammapizza-api/internal/configurator"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/enums"
	pkgerrors "github.com/jhonvillanueva44/mammapizza-api/pkg/errors"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// ConfiguratorSource fetches a product with its reference data.
type ConfiguratorSource interface {
	LoadConfiguratorData(ctx context.Context, tipo enums.ProductType, productID int64) (*catalog.ConfiguratorData, error)
}

var configurableSections = map[string]enums.ProductType{
	"pizzas":   enums.ProductTypePizza,
	"calzones": enums.ProductTypeCalzone,
	"pastas":   enums.ProductTypePasta,
	"bebidas":  enums.ProductTypeBebida,
}

func sectionType(r *http.Request) (enums.ProductType, error) {
	section := chi.URLParam(r, "seccion")
	tipo, ok := configurableSections[section]
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "unknown menu section").
			WithDetails(map[string]any{"seccion": section})
	}
	return tipo, nil
}

// ProductOptions returns the initial configurator view for one product.
func ProductOptions(source ConfiguratorSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tipo, err := sectionType(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParsePathID(chi.URLParam(r, "productoId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		data, err := source.LoadConfiguratorData(r.Context(), tipo, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := configurator.Options(tipo, data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type quoteRequest struct {
	TamanioID      int64   `json:"tamanio_id" validate:"required"`
	SaborIDs       []int64 `json:"sabor_ids"`
	AgregadoIDs    []int64 `json:"agregado_ids"`
	PrecioAnterior string  `json:"precio_anterior"`
}

type quoteResponse struct {
	TamanioID   int64   `json:"tamanio_id"`
	SaborIDs    []int64 `json:"sabor_ids"`
	AgregadoIDs []int64 `json:"agregado_ids"`
	Precio      string  `json:"precio"`
}

// ProductQuote re-prices a selection after the customer changes size,
// flavors or add-ons. The flavor list is normalized for the requested
// size before pricing.
func ProductQuote(source ConfiguratorSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tipo, err := sectionType(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParsePathID(chi.URLParam(r, "productoId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		data, err := source.LoadConfiguratorData(r.Context(), tipo, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		previous := decimal.Zero
		if payload.PrecioAnterior != "" {
			if parsed, err := decimal.NewFromString(payload.PrecioAnterior); err == nil {
				previous = parsed
			}
		}

		flavors := configurator.AdjustFlavorsForSize(data.Product, payload.TamanioID, payload.SaborIDs)
		selection := configurator.Selection{
			SizeID:    payload.TamanioID,
			FlavorIDs: flavors,
			AddonIDs:  payload.AgregadoIDs,
		}
		price := configurator.Quote(tipo, data, selection, previous)

		responses.WriteSuccess(w, quoteResponse{
			TamanioID:   payload.TamanioID,
			SaborIDs:    flavors,
			AgregadoIDs: payload.AgregadoIDs,
			Precio:      price.StringFixed(2),
		})
	}
}
