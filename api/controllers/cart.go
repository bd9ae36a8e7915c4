package controllers

import (
	"context"
	"net/http"

	"github.com/jhonvillanueva44/mammapizza-api/api/middleware"
	"github.com/jhonvillanueva44/mammapizza-api/api/responses"
	"github.com/jhonvillanueva44/mammapizza-api/api/validators"
	cartsvc "github.com/jhonvillanueva44/mammapizza-api/internal/cart"
	pkgerrors "github.com/jhonvillanueva44/mammapizza-api/pkg/errors"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
)

// CartService is the session cart surface the storefront uses.
type CartService interface {
	Summarize(ctx context.Context, sessionID string) (*cartsvc.Summary, error)
	Add(ctx context.Context, sessionID string, item cartsvc.Item) (*cartsvc.Summary, error)
	Duplicate(ctx context.Context, sessionID, groupKey string) (*cartsvc.Summary, error)
	RemoveOne(ctx context.Context, sessionID, groupKey string) (*cartsvc.Summary, error)
	RemoveGroup(ctx context.Context, sessionID, groupKey string) (*cartsvc.Summary, error)
	Clear(ctx context.Context, sessionID string) error
}

func sessionID(r *http.Request) (string, error) {
	id := middleware.SessionIDFromContext(r.Context())
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	return id, nil
}

// CartFetch returns the grouped cart view.
func CartFetch(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		summary, err := svc.Summarize(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// CartCount returns only the item count, for the header badge poll.
func CartCount(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		summary, err := svc.Summarize(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"count": summary.Count})
	}
}

type addItemRequest struct {
	ProductID int64                `json:"id" validate:"required"`
	Titulo    string               `json:"titulo" validate:"required"`
	Imagen    string               `json:"imagen"`
	Precio    string               `json:"precio" validate:"required"`
	Tamanio   string               `json:"tamanio"`
	Sabores   []string             `json:"sabores"`
	Agregados []string             `json:"agregados"`
	Productos []cartsvc.BundleLine `json:"productos"`
}

// CartAdd appends one configured item to the session cart.
func CartAdd(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Add(r.Context(), id, cartsvc.Item{
			ProductID: payload.ProductID,
			Titulo:    payload.Titulo,
			Imagen:    payload.Imagen,
			Precio:    payload.Precio,
			Tamanio:   payload.Tamanio,
			Sabores:   payload.Sabores,
			Agregados: payload.Agregados,
			Productos: payload.Productos,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, summary)
	}
}

type groupRequest struct {
	Key string `json:"key" validate:"required"`
}

func groupAction(svc func(ctx context.Context, sessionID, groupKey string) (*cartsvc.Summary, error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload groupRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc(r.Context(), id, payload.Key)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// CartIncrease raises a group's quantity by one.
func CartIncrease(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return groupAction(svc.Duplicate, logg)
}

// CartDecrease lowers a group's quantity by one.
func CartDecrease(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return groupAction(svc.RemoveOne, logg)
}

// CartRemoveGroup drops every entry of one configuration.
func CartRemoveGroup(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return groupAction(svc.RemoveGroup, logg)
}

// CartClear empties the session cart.
func CartClear(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Clear(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
