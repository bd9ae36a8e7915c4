package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jhonvillanueva44/mammapizza-api/api/responses"
	adminsvc "github.com/jhonvillanueva44/mammapizza-api/internal/admin"
	"github.com/jhonvillanueva44/mammapizza-api/internal/catalog"
	pkgerrors "github.com/jhonvillanueva44/mammapizza-api/pkg/errors"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
)

const maxProductFormMemory = 10 << 20

// AdminListProducts returns a filtered, paged product listing.
func AdminListProducts(svc *adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := adminQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		listing, err := svc.ListProducts(r.Context(), q)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePage(w, listing.Items, listing.Page)
	}
}

// AdminListPromotions returns a filtered, paged promotion listing.
func AdminListPromotions(svc *adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := adminQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		listing, err := svc.ListPromotions(r.Context(), q)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePage(w, listing.Items, listing.Page)
	}
}

// AdminCreateProduct accepts the multipart product form and forwards it
// to the catalog backend. Promotion forms route to their own endpoint
// based on categoria_id.
func AdminCreateProduct(svc *adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := parseProductForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.CreateProduct(r.Context(), *form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// AdminUpdateProduct replaces a product or promotion in place.
func AdminUpdateProduct(svc *adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		form, err := parseProductForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.UpdateProduct(r.Context(), id, *form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminDeleteProduct(svc *adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteByID(svc.DeleteProduct, logg)
}

func AdminDeletePromotion(svc *adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteByID(svc.DeletePromotion, logg)
}

// parseProductForm maps the admin multipart body onto the shared product
// form. Optional fields keep their zero values when absent.
func parseProductForm(r *http.Request) (*adminsvc.ProductForm, error) {
	if err := r.ParseMultipartForm(maxProductFormMemory); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body")
	}

	form := adminsvc.ProductForm{
		Nombre:      strings.TrimSpace(r.FormValue("nombre")),
		Precio:      strings.TrimSpace(r.FormValue("precio")),
		Descripcion: r.FormValue("descripcion"),
		Impuesto:    strings.TrimSpace(r.FormValue("impuesto")),
		Descuento:   strings.TrimSpace(r.FormValue("descuento")),
	}

	categoryID, err := strconv.ParseInt(r.FormValue("categoria_id"), 10, 64)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "categoria_id must be numeric")
	}
	form.CategoriaID = categoryID

	if raw := r.FormValue("stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must be numeric")
		}
		form.Stock = stock
	}

	form.Destacado = r.FormValue("destacado") == "true"
	form.Habilitado = r.FormValue("habilitado") == "true"

	switch r.FormValue("unico_sabor") {
	case "true":
		v := true
		form.UnicoSabor = &v
	case "false":
		v := false
		form.UnicoSabor = &v
	}

	if raw := strings.TrimSpace(r.FormValue("tamanio_sabor_ids")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &form.TamanioSaborIDs); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tamanio_sabor_ids must be a JSON array of ids")
		}
	}
	if raw := strings.TrimSpace(r.FormValue("productos")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &form.Productos); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "productos must be a JSON array")
		}
	}

	file, header, err := r.FormFile("imagen")
	if err == nil {
		defer file.Close()
		content, readErr := io.ReadAll(file)
		if readErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, readErr, "reading imagen upload")
		}
		form.Imagen = &catalog.Upload{
			FieldName: "imagen",
			FileName:  header.Filename,
			Content:   content,
		}
	} else if err != http.ErrMissingFile {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading imagen upload")
	}

	return &form, nil
}
