package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jhonvillanueva44/mammapizza-api/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMenuSource struct {
	products    []catalog.Product
	promotions  []catalog.Product
	err         error
	lastSegment string
}

func (s *stubMenuSource) ProductsByType(ctx context.Context, segment string) ([]catalog.Product, error) {
	s.lastSegment = segment
	return s.products, s.err
}

func (s *stubMenuSource) Promotions(ctx context.Context) ([]catalog.Product, error) {
	return s.promotions, s.err
}

func menuRequest(target, section string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("seccion", section)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestMenuSectionFiltersDisabledProducts(t *testing.T) {
	source := &stubMenuSource{products: []catalog.Product{
		{ID: 1, Nombre: "Americana", Precio: "25.00", Habilitado: true},
		{ID: 2, Nombre: "Hawaiana", Precio: "27.00", Habilitado: false},
	}}
	resp := httptest.NewRecorder()

	MenuSection(source, testLogger())(resp, menuRequest("/api/menu/pizzas", "pizzas"))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "pizzas", source.lastSegment)

	var envelope struct {
		Data []menuEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Americana", envelope.Data[0].Nombre)
}

func TestMenuSectionUsesPairingPrice(t *testing.T) {
	source := &stubMenuSource{products: []catalog.Product{{
		ID:         3,
		Nombre:     "Pepperoni",
		Precio:     "0.00",
		Habilitado: true,
		Unicos: []catalog.UniquePairing{{
			TamaniosSabor: catalog.SizeFlavorPrice{ID: 10, Precio: "31.50"},
		}},
	}}}
	resp := httptest.NewRecorder()

	MenuSection(source, testLogger())(resp, menuRequest("/api/menu/pizzas", "pizzas"))

	var envelope struct {
		Data []menuEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "31.50", envelope.Data[0].Precio)
	assert.False(t, envelope.Data[0].Combinacion)
}

func TestMenuSectionRejectsUnknownSection(t *testing.T) {
	source := &stubMenuSource{}
	resp := httptest.NewRecorder()

	MenuSection(source, testLogger())(resp, menuRequest("/api/menu/postres", "postres"))

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Empty(t, source.lastSegment)
}

func TestMenuPromotionsIncludeBundles(t *testing.T) {
	source := &stubMenuSource{promotions: []catalog.Product{
		{
			ID:         9,
			Nombre:     "Combo Familiar",
			Precio:     "89.90",
			Habilitado: true,
			Productos: []catalog.BundleEntry{
				{ProductoID: 1, Nombre: "Pizza Americana", Cantidad: 2},
				{ProductoID: 5, Nombre: "Inca Kola 1L", Cantidad: 1},
			},
		},
		{ID: 10, Nombre: "Combo Retirado", Habilitado: false},
	}}
	resp := httptest.NewRecorder()

	MenuPromotions(source, testLogger())(resp, httptest.NewRequest(http.MethodGet, "/api/menu/promociones", nil))

	require.Equal(t, http.StatusOK, resp.Code)

	var envelope struct {
		Data []struct {
			Nombre    string                `json:"nombre"`
			Precio    string                `json:"precio"`
			Productos []catalog.BundleEntry `json:"productos"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Combo Familiar", envelope.Data[0].Nombre)
	assert.Equal(t, "89.90", envelope.Data[0].Precio)
	require.Len(t, envelope.Data[0].Productos, 2)
	assert.Equal(t, 2, envelope.Data[0].Productos[0].Cantidad)
}
