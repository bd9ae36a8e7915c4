package admin

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jhonvillanueva44/mammapizza-api/internal/catalog"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/enums"
	pkgerrors "github.com/jhonvillanueva44/mammapizza-api/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// CategoryForm is the JSON payload for category writes.
type CategoryForm struct {
	Nombre      string `json:"nombre" validate:"required"`
	Descripcion string `json:"descripcion"`
}

// SizeForm is the JSON payload for size writes.
type SizeForm struct {
	Nombre string `json:"nombre" validate:"required"`
	Tipo   string `json:"tipo" validate:"required,oneof=Pizza Calzone Pasta Bebida Agregado"`
}

// FlavorForm is the JSON payload for flavor writes.
type FlavorForm struct {
	Nombre      string `json:"nombre" validate:"required"`
	Descripcion string `json:"descripcion"`
	Tipo        string `json:"tipo" validate:"required,oneof=Pizza Calzone Pasta Bebida Agregado"`
	Especial    bool   `json:"especial"`
}

// PriceForm is the JSON payload for size/flavor price rows.
type PriceForm struct {
	TamanioID int64  `json:"tamanio_id" validate:"required"`
	SaborID   int64  `json:"sabor_id" validate:"required"`
	Precio    string `json:"precio" validate:"required"`
}

// Validate checks the price parses as a positive amount.
func (f PriceForm) Validate() error {
	amount, err := decimal.NewFromString(f.Precio)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "precio must be a decimal amount")
	}
	if !amount.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "precio must be greater than zero")
	}
	return nil
}

// BundleSelection is one chosen constituent of a promotion form.
type BundleSelection struct {
	ProductoID int64 `json:"producto_id" validate:"required"`
	Cantidad   int   `json:"cantidad" validate:"required,min=1"`
}

// ProductForm covers every product category; the category decides which
// fields are required and how the multipart body is laid out.
type ProductForm struct {
	Nombre          string            `json:"nombre" validate:"required"`
	Precio          string            `json:"precio"`
	Stock           int               `json:"stock"`
	CategoriaID     int64             `json:"categoria_id" validate:"required"`
	Descripcion     string            `json:"descripcion"`
	Impuesto        string            `json:"impuesto"`
	Descuento       string            `json:"descuento"`
	Destacado       bool              `json:"destacado"`
	Habilitado      bool              `json:"habilitado"`
	UnicoSabor      *bool             `json:"unico_sabor"`
	TamanioSaborIDs []int64           `json:"tamanio_sabor_ids"`
	Productos       []BundleSelection `json:"productos"`

	Imagen *catalog.Upload `json:"-"`
}

// Validate aggregates every category-rule violation instead of stopping
// at the first one, so the admin form can show them all.
func (f ProductForm) Validate() error {
	var errs error

	category := enums.CategoryID(f.CategoriaID)
	if !category.Valid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown categoria_id").
			WithDetails(map[string]any{"categoria_id": f.CategoriaID})
	}
	if strings.TrimSpace(f.Nombre) == "" {
		errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "nombre is required"))
	}

	switch category {
	case enums.CategoryPizza:
		if f.UnicoSabor == nil {
			errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "unico_sabor is required for pizzas"))
		}
		if len(f.TamanioSaborIDs) == 0 || len(f.TamanioSaborIDs) > 2 {
			errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "pizzas take one or two tamanio_sabor_ids"))
		}
		if f.UnicoSabor != nil && *f.UnicoSabor && len(f.TamanioSaborIDs) > 1 {
			errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "single-flavor pizzas take exactly one tamanio_sabor_id"))
		}
	case enums.CategoryCalzone, enums.CategoryPasta:
		if len(f.TamanioSaborIDs) != 1 {
			errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "exactly one tamanio_sabor_id is required"))
		}
	case enums.CategoryPromocion:
		errs = multierr.Append(errs, f.validatePrice())
		if len(f.Productos) == 0 {
			errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "promotions need at least one product"))
		}
		for _, sel := range f.Productos {
			if sel.ProductoID == 0 || sel.Cantidad < 1 {
				errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "bundle entries need producto_id and cantidad"))
				break
			}
		}
	case enums.CategoryAdicional, enums.CategoryBebida:
		errs = multierr.Append(errs, f.validatePrice())
	}

	return errs
}

func (f ProductForm) validatePrice() error {
	amount, err := decimal.NewFromString(f.Precio)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "precio must be a decimal amount")
	}
	if !amount.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "precio must be greater than zero")
	}
	return nil
}

// Fields lays out the multipart body in the shape the backend's product
// endpoint expects for the form's category. Field order matches the
// original admin forms.
func (f ProductForm) Fields() [][2]string {
	category := enums.CategoryID(f.CategoriaID)
	switch category {
	case enums.CategoryPizza:
		return [][2]string{
			{"nombre", f.Nombre},
			{"stock", strconv.Itoa(f.Stock)},
			{"categoria_id", strconv.FormatInt(f.CategoriaID, 10)},
			{"descripcion", f.Descripcion},
			{"impuesto", zeroDefault(f.Impuesto)},
			{"descuento", zeroDefault(f.Descuento)},
			{"destacado", strconv.FormatBool(f.Destacado)},
			{"habilitado", strconv.FormatBool(f.Habilitado)},
			{"unico_sabor", boolField(f.UnicoSabor)},
			{"tamanio_sabor_ids", jsonIDs(f.TamanioSaborIDs)},
		}
	case enums.CategoryCalzone, enums.CategoryPasta:
		return [][2]string{
			{"nombre", f.Nombre},
			{"stock", strconv.Itoa(f.Stock)},
			{"categoria_id", strconv.FormatInt(f.CategoriaID, 10)},
			{"descripcion", f.Descripcion},
			{"impuesto", zeroDefault(f.Impuesto)},
			{"descuento", zeroDefault(f.Descuento)},
			{"destacado", strconv.FormatBool(f.Destacado)},
			{"habilitado", strconv.FormatBool(f.Habilitado)},
			{"unico_sabor", "true"},
			{"tamanio_sabor_ids", jsonIDs(f.TamanioSaborIDs)},
		}
	case enums.CategoryPromocion:
		bundle, _ := json.Marshal(f.Productos)
		return [][2]string{
			{"nombre", f.Nombre},
			{"precio", f.Precio},
			{"stock", strconv.Itoa(f.Stock)},
			{"categoria_id", strconv.FormatInt(f.CategoriaID, 10)},
			{"descripcion", f.Descripcion},
			{"impuesto", zeroDefault(f.Impuesto)},
			{"descuento", zeroDefault(f.Descuento)},
			{"destacado", strconv.FormatBool(f.Destacado)},
			{"habilitado", strconv.FormatBool(f.Habilitado)},
			{"unico_sabor", "null"},
			{"tamanio_sabor_ids", ""},
			{"productos", string(bundle)},
		}
	default:
		return [][2]string{
			{"nombre", f.Nombre},
			{"precio", f.Precio},
			{"stock", strconv.Itoa(f.Stock)},
			{"categoria_id", strconv.FormatInt(f.CategoriaID, 10)},
			{"tamanio", ""},
			{"sabor", ""},
			{"unico_sabor", "null"},
			{"descripcion", f.Descripcion},
			{"impuesto", zeroDefault(f.Impuesto)},
			{"descuento", zeroDefault(f.Descuento)},
			{"destacado", strconv.FormatBool(f.Destacado)},
			{"habilitado", strconv.FormatBool(f.Habilitado)},
		}
	}
}

func zeroDefault(value string) string {
	if strings.TrimSpace(value) == "" {
		return "0"
	}
	return value
}

func boolField(value *bool) string {
	if value == nil {
		return "null"
	}
	return strconv.FormatBool(*value)
}

func jsonIDs(ids []int64) string {
	if ids == nil {
		ids = []int64{}
	}
	encoded, _ := json.Marshal(ids)
	return string(encoded)
}
