package admin

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jhonvillanueva44/mammapizza-api/internal/catalog"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/enums"
	pkgerrors "github.com/jhonvillanueva44/mammapizza-api/pkg/errors"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/pagination"
)

// Backend is the slice of the catalog client the back-office uses.
type Backend interface {
	Categories(ctx context.Context) ([]catalog.Category, error)
	AllSizes(ctx context.Context) ([]catalog.Size, error)
	AllFlavors(ctx context.Context) ([]catalog.Flavor, error)
	SizeFlavorPricesExpanded(ctx context.Context) ([]catalog.SizeFlavorPrice, error)
	Products(ctx context.Context) ([]catalog.Product, error)
	Promotions(ctx context.Context) ([]catalog.Product, error)
	ProductStats(ctx context.Context) (catalog.ProductStats, error)
	SendJSON(ctx context.Context, method, path string, payload any, dest any) error
	SendMultipart(ctx context.Context, method, path string, fields [][2]string, file *catalog.Upload, dest any) error
	Delete(ctx context.Context, path string) error
}

// Service implements the back-office catalog management: filtered paged
// listings plus writes forwarded to the catalog backend. Nothing is
// stored locally; the backend stays the single source of truth.
type Service struct {
	backend  Backend
	validate *validator.Validate
	logger   *logger.Logger
}

func NewService(backend Backend, logg *logger.Logger) *Service {
	return &Service{
		backend:  backend,
		validate: validator.New(),
		logger:   logg,
	}
}

// Listing pairs a filtered page of rows with its page descriptor.
type Listing[T any] struct {
	Items []T
	Page  pagination.Page
}

func (s *Service) ListCategories(ctx context.Context, q Query) (*Listing[catalog.Category], error) {
	categories, err := s.backend.Categories(ctx)
	if err != nil {
		return nil, err
	}
	items, page := FilterCategories(categories, q)
	return &Listing[catalog.Category]{Items: items, Page: page}, nil
}

func (s *Service) ListSizes(ctx context.Context, q Query) (*Listing[catalog.Size], error) {
	sizes, err := s.backend.AllSizes(ctx)
	if err != nil {
		return nil, err
	}
	items, page := FilterSizes(sizes, q)
	return &Listing[catalog.Size]{Items: items, Page: page}, nil
}

func (s *Service) ListFlavors(ctx context.Context, q Query) (*Listing[catalog.Flavor], error) {
	flavors, err := s.backend.AllFlavors(ctx)
	if err != nil {
		return nil, err
	}
	items, page := FilterFlavors(flavors, q)
	return &Listing[catalog.Flavor]{Items: items, Page: page}, nil
}

func (s *Service) ListPrices(ctx context.Context, q Query) (*Listing[catalog.SizeFlavorPrice], error) {
	rows, err := s.backend.SizeFlavorPricesExpanded(ctx)
	if err != nil {
		return nil, err
	}
	items, page := FilterPrices(rows, q)
	return &Listing[catalog.SizeFlavorPrice]{Items: items, Page: page}, nil
}

func (s *Service) ListProducts(ctx context.Context, q Query) (*Listing[catalog.Product], error) {
	products, err := s.backend.Products(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.backend.Categories(ctx)
	if err != nil {
		return nil, err
	}
	items, page := FilterProducts(products, categories, q)
	return &Listing[catalog.Product]{Items: items, Page: page}, nil
}

func (s *Service) ListPromotions(ctx context.Context, q Query) (*Listing[catalog.Product], error) {
	promos, err := s.backend.Promotions(ctx)
	if err != nil {
		return nil, err
	}
	q.CategoryID = 0
	items, page := FilterProducts(promos, nil, q)
	return &Listing[catalog.Product]{Items: items, Page: page}, nil
}

// Stats passes the dashboard aggregation through untouched.
func (s *Service) Stats(ctx context.Context) (catalog.ProductStats, error) {
	return s.backend.ProductStats(ctx)
}

// --- simple JSON entities ---

func (s *Service) CreateCategory(ctx context.Context, form CategoryForm) (*catalog.Category, error) {
	if err := s.checkStruct(form); err != nil {
		return nil, err
	}
	var created catalog.Category
	if err := s.backend.SendJSON(ctx, http.MethodPost, "/api/categorias", form, &created); err != nil {
		return nil, err
	}
	s.audit(ctx, "category created", created.ID)
	return &created, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, form CategoryForm) (*catalog.Category, error) {
	if err := s.checkStruct(form); err != nil {
		return nil, err
	}
	var updated catalog.Category
	if err := s.backend.SendJSON(ctx, http.MethodPut, entityPath("categorias", id), form, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.backend.Delete(ctx, entityPath("categorias", id))
}

func (s *Service) CreateSize(ctx context.Context, form SizeForm) (*catalog.Size, error) {
	if err := s.checkStruct(form); err != nil {
		return nil, err
	}
	var created catalog.Size
	if err := s.backend.SendJSON(ctx, http.MethodPost, "/api/tamanios", form, &created); err != nil {
		return nil, err
	}
	s.audit(ctx, "size created", created.ID)
	return &created, nil
}

func (s *Service) UpdateSize(ctx context.Context, id int64, form SizeForm) (*catalog.Size, error) {
	if err := s.checkStruct(form); err != nil {
		return nil, err
	}
	var updated catalog.Size
	if err := s.backend.SendJSON(ctx, http.MethodPut, entityPath("tamanios", id), form, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteSize(ctx context.Context, id int64) error {
	return s.backend.Delete(ctx, entityPath("tamanios", id))
}

func (s *Service) CreateFlavor(ctx context.Context, form FlavorForm) (*catalog.Flavor, error) {
	if err := s.checkStruct(form); err != nil {
		return nil, err
	}
	var created catalog.Flavor
	if err := s.backend.SendJSON(ctx, http.MethodPost, "/api/sabores", form, &created); err != nil {
		return nil, err
	}
	s.audit(ctx, "flavor created", created.ID)
	return &created, nil
}

func (s *Service) UpdateFlavor(ctx context.Context, id int64, form FlavorForm) (*catalog.Flavor, error) {
	if err := s.checkStruct(form); err != nil {
		return nil, err
	}
	var updated catalog.Flavor
	if err := s.backend.SendJSON(ctx, http.MethodPut, entityPath("sabores", id), form, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteFlavor(ctx context.Context, id int64) error {
	return s.backend.Delete(ctx, entityPath("sabores", id))
}

func (s *Service) CreatePrice(ctx context.Context, form PriceForm) (*catalog.SizeFlavorPrice, error) {
	if err := s.checkStruct(form); err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	var created catalog.SizeFlavorPrice
	if err := s.backend.SendJSON(ctx, http.MethodPost, "/api/tamaniosabor", form, &created); err != nil {
		return nil, err
	}
	s.audit(ctx, "price row created", created.ID)
	return &created, nil
}

func (s *Service) UpdatePrice(ctx context.Context, id int64, form PriceForm) (*catalog.SizeFlavorPrice, error) {
	if err := s.checkStruct(form); err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	var updated catalog.SizeFlavorPrice
	if err := s.backend.SendJSON(ctx, http.MethodPut, entityPath("tamaniosabor", id), form, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeletePrice(ctx context.Context, id int64) error {
	return s.backend.Delete(ctx, entityPath("tamaniosabor", id))
}

// --- products and promotions (multipart writes) ---

func (s *Service) CreateProduct(ctx context.Context, form ProductForm) (*catalog.Product, error) {
	if err := form.Validate(); err != nil {
		return nil, wrapFormError(err)
	}
	var created catalog.Product
	if err := s.backend.SendMultipart(ctx, http.MethodPost, writePath(form), form.Fields(), form.Imagen, &created); err != nil {
		return nil, err
	}
	s.audit(ctx, "product created", created.ID)
	return &created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, form ProductForm) (*catalog.Product, error) {
	if err := form.Validate(); err != nil {
		return nil, wrapFormError(err)
	}
	var updated catalog.Product
	if err := s.backend.SendMultipart(ctx, http.MethodPut, writePath(form)+fmt.Sprintf("/%d", id), form.Fields(), form.Imagen, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.backend.Delete(ctx, entityPath("productos", id))
}

func (s *Service) DeletePromotion(ctx context.Context, id int64) error {
	return s.backend.Delete(ctx, entityPath("promociones", id))
}

// writePath routes promotion forms to their own endpoint; every other
// category writes through /api/productos.
func writePath(form ProductForm) string {
	if enums.CategoryID(form.CategoriaID) == enums.CategoryPromocion {
		return "/api/promociones"
	}
	return "/api/productos"
}

func entityPath(entity string, id int64) string {
	return fmt.Sprintf("/api/%s/%d", entity, id)
}

func (s *Service) checkStruct(form any) error {
	if err := s.validate.Struct(form); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form")
	}
	return nil
}

func wrapFormError(err error) error {
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product form")
}

func (s *Service) audit(ctx context.Context, msg string, id int64) {
	ctx = s.logger.WithField(ctx, "id", id)
	s.logger.Info(ctx, msg)
}
