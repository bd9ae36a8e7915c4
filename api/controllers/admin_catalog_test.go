package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	adminsvc "github.com/jhonvillanueva44/mammapizza-api/internal/admin"
	"github.com/jhonvillanueva44/mammapizza-api/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalogBackend satisfies admin.Backend with canned data and
// records forwarded writes.
type fakeCatalogBackend struct {
	categories []catalog.Category
	sizes      []catalog.Size
	flavors    []catalog.Flavor
	prices     []catalog.SizeFlavorPrice
	products   []catalog.Product
	promos     []catalog.Product
	stats      catalog.ProductStats

	lastMethod string
	lastPath   string
	lastBody   any
	lastFields [][2]string
	lastFile   *catalog.Upload
	deleted    []string
}

func (f *fakeCatalogBackend) Categories(ctx context.Context) ([]catalog.Category, error) {
	return f.categories, nil
}

func (f *fakeCatalogBackend) AllSizes(ctx context.Context) ([]catalog.Size, error) {
	return f.sizes, nil
}

func (f *fakeCatalogBackend) AllFlavors(ctx context.Context) ([]catalog.Flavor, error) {
	return f.flavors, nil
}

func (f *fakeCatalogBackend) SizeFlavorPricesExpanded(ctx context.Context) ([]catalog.SizeFlavorPrice, error) {
	return f.prices, nil
}

func (f *fakeCatalogBackend) Products(ctx context.Context) ([]catalog.Product, error) {
	return f.products, nil
}

func (f *fakeCatalogBackend) Promotions(ctx context.Context) ([]catalog.Product, error) {
	return f.promos, nil
}

func (f *fakeCatalogBackend) ProductStats(ctx context.Context) (catalog.ProductStats, error) {
	return f.stats, nil
}

func (f *fakeCatalogBackend) SendJSON(ctx context.Context, method, path string, payload any, dest any) error {
	f.lastMethod, f.lastPath, f.lastBody = method, path, payload
	return nil
}

func (f *fakeCatalogBackend) SendMultipart(ctx context.Context, method, path string, fields [][2]string, file *catalog.Upload, dest any) error {
	f.lastMethod, f.lastPath, f.lastFields, f.lastFile = method, path, fields, file
	return nil
}

func (f *fakeCatalogBackend) Delete(ctx context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func newAdminService(backend *fakeCatalogBackend) *adminsvc.Service {
	return adminsvc.NewService(backend, testLogger())
}

func idRequest(method, target, id string, body []byte) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAdminListCategoriesFiltersAndPages(t *testing.T) {
	backend := &fakeCatalogBackend{categories: []catalog.Category{
		{ID: 1, Nombre: "Pizzas", Descripcion: "Clásicas y especiales"},
		{ID: 7, Nombre: "Bebidas", Descripcion: "Gaseosas y jugos"},
	}}
	resp := httptest.NewRecorder()

	AdminListCategories(newAdminService(backend), testLogger())(resp, httptest.NewRequest(http.MethodGet, "/api/admin/categorias?busqueda=bebi", nil))

	require.Equal(t, http.StatusOK, resp.Code)

	var envelope struct {
		Data struct {
			Items []catalog.Category `json:"items"`
			Total int                `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, "Bebidas", envelope.Data.Items[0].Nombre)
	assert.Equal(t, 1, envelope.Data.Total)
}

func TestAdminListCategoriesRejectsBadPage(t *testing.T) {
	resp := httptest.NewRecorder()

	AdminListCategories(newAdminService(&fakeCatalogBackend{}), testLogger())(resp, httptest.NewRequest(http.MethodGet, "/api/admin/categorias?pagina=abc", nil))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAdminCreateCategoryForwardsForm(t *testing.T) {
	backend := &fakeCatalogBackend{}
	payload, _ := json.Marshal(adminsvc.CategoryForm{Nombre: "Postres", Descripcion: "Dulces"})
	resp := httptest.NewRecorder()

	AdminCreateCategory(newAdminService(backend), testLogger())(resp, httptest.NewRequest(http.MethodPost, "/api/admin/categorias", bytes.NewReader(payload)))

	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, http.MethodPost, backend.lastMethod)
	assert.Equal(t, "/api/categorias", backend.lastPath)
}

func TestAdminCreateCategoryValidates(t *testing.T) {
	backend := &fakeCatalogBackend{}
	resp := httptest.NewRecorder()

	AdminCreateCategory(newAdminService(backend), testLogger())(resp, httptest.NewRequest(http.MethodPost, "/api/admin/categorias", bytes.NewReader([]byte(`{"descripcion":"sin nombre"}`))))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Empty(t, backend.lastPath)
}

func TestAdminUpdateSizeForwardsID(t *testing.T) {
	backend := &fakeCatalogBackend{}
	payload, _ := json.Marshal(adminsvc.SizeForm{Nombre: "Familiar", Tipo: "Pizza"})
	resp := httptest.NewRecorder()

	AdminUpdateSize(newAdminService(backend), testLogger())(resp, idRequest(http.MethodPut, "/api/admin/tamanios/4", "4", payload))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, http.MethodPut, backend.lastMethod)
	assert.Equal(t, "/api/tamanios/4", backend.lastPath)
}

func TestAdminDeleteFlavor(t *testing.T) {
	backend := &fakeCatalogBackend{}
	resp := httptest.NewRecorder()

	AdminDeleteFlavor(newAdminService(backend), testLogger())(resp, idRequest(http.MethodDelete, "/api/admin/sabores/9", "9", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []string{"/api/sabores/9"}, backend.deleted)
}

func TestAdminDeleteRejectsBadID(t *testing.T) {
	backend := &fakeCatalogBackend{}
	resp := httptest.NewRecorder()

	AdminDeleteFlavor(newAdminService(backend), testLogger())(resp, idRequest(http.MethodDelete, "/api/admin/sabores/zero", "zero", nil))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Empty(t, backend.deleted)
}

func TestAdminCreatePriceValidatesAmount(t *testing.T) {
	backend := &fakeCatalogBackend{}
	payload, _ := json.Marshal(adminsvc.PriceForm{TamanioID: 1, SaborID: 2, Precio: "-5.00"})
	resp := httptest.NewRecorder()

	AdminCreatePrice(newAdminService(backend), testLogger())(resp, httptest.NewRequest(http.MethodPost, "/api/admin/tamaniosabor", bytes.NewReader(payload)))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Empty(t, backend.lastPath)
}

func TestAdminStatsPassthrough(t *testing.T) {
	backend := &fakeCatalogBackend{stats: catalog.ProductStats(`{"total_productos":42}`)}
	resp := httptest.NewRecorder()

	AdminStats(newAdminService(backend), testLogger())(resp, httptest.NewRequest(http.MethodGet, "/api/admin/estadisticas", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"data":{"total_productos":42}}`, resp.Body.String())
}
