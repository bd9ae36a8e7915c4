package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/jhonvillanueva44/mammapizza-api/pkg/config"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/enums"
	pkgerrors "github.com/jhonvillanueva44/mammapizza-api/pkg/errors"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
	"golang.org/x/sync/errgroup"
)

var errLoggerRequired = errors.New("catalog logger is required")

// Client is the typed HTTP client for the external catalog backend. It
// does no caching and no retries: every call is a single request whose
// failure is surfaced as a dependency error carrying the backend's own
// message when one is present.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient validates the backend configuration and builds the client.
func NewClient(cfg config.BackendConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("catalog backend base url is required")
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logg,
	}, nil
}

// Upload carries a file field for multipart writes.
type Upload struct {
	FieldName string
	FileName  string
	Content   []byte
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building catalog request")
	}
	return c.do(req, path, dest)
}

// SendJSON issues a write with a JSON body and decodes the response into
// dest when dest is non-nil.
func (c *Client) SendJSON(ctx context.Context, method, path string, payload any, dest any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding catalog payload")
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building catalog request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, path, dest)
}

// SendMultipart issues a write with a rebuilt multipart/form-data body.
// Field order follows the admin forms; the optional file rides last.
func (c *Client) SendMultipart(ctx context.Context, method, path string, fields [][2]string, file *Upload, dest any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, field := range fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing multipart field")
		}
	}
	if file != nil {
		part, err := writer.CreateFormFile(file.FieldName, file.FileName)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing multipart file")
		}
		if _, err := part.Write(file.Content); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing multipart file")
		}
	}
	if err := writer.Close(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "closing multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building catalog request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req, path, dest)
}

// Delete issues a DELETE against the given entity path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.SendJSON(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(req *http.Request, path string, dest any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling catalog backend").
			WithDetails(map[string]any{"endpoint": path})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading catalog response").
			WithDetails(map[string]any{"endpoint": path})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstream := &pkgerrors.UpstreamError{
			Status:   resp.StatusCode,
			Endpoint: path,
			Message:  backendMessage(body),
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, upstream, "catalog backend error").
			WithDetails(map[string]any{"endpoint": path, "status": resp.StatusCode})
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding catalog response").
			WithDetails(map[string]any{"endpoint": path})
	}
	return nil
}

// backendMessage pulls the backend's message/error field out of an error
// body, falling back to the raw text.
func backendMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}

// --- reference data ---

func (c *Client) Sizes(ctx context.Context, tipo enums.ProductType) ([]Size, error) {
	var sizes []Size
	if err := c.get(ctx, "/api/tamanios/"+tipo.PathSegment(), &sizes); err != nil {
		return nil, err
	}
	return sizes, nil
}

func (c *Client) AllSizes(ctx context.Context) ([]Size, error) {
	var sizes []Size
	if err := c.get(ctx, "/api/tamanios", &sizes); err != nil {
		return nil, err
	}
	return sizes, nil
}

func (c *Client) Flavors(ctx context.Context, tipo enums.ProductType) ([]Flavor, error) {
	var flavors []Flavor
	if err := c.get(ctx, "/api/sabores/"+tipo.PathSegment(), &flavors); err != nil {
		return nil, err
	}
	return flavors, nil
}

func (c *Client) AllFlavors(ctx context.Context) ([]Flavor, error) {
	var flavors []Flavor
	if err := c.get(ctx, "/api/sabores", &flavors); err != nil {
		return nil, err
	}
	return flavors, nil
}

func (c *Client) SizeFlavorPrices(ctx context.Context) ([]SizeFlavorPrice, error) {
	var rows []SizeFlavorPrice
	if err := c.get(ctx, "/api/tamaniosabor", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SizeFlavorPricesExpanded returns price rows with their size and flavor
// records included, as the admin combination table shows them.
func (c *Client) SizeFlavorPricesExpanded(ctx context.Context) ([]SizeFlavorPrice, error) {
	var rows []SizeFlavorPrice
	if err := c.get(ctx, "/api/tamaniosabor?include=tamanio,sabor", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.get(ctx, "/api/categorias", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, "/api/productos", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductsByType lists the products of one menu section
// (e.g. /api/productos/pizzas).
func (c *Client) ProductsByType(ctx context.Context, segment string) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, "/api/productos/"+segment, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductByType fetches one product through its section sub-path
// (e.g. /api/productos/pizzas/42).
func (c *Client) ProductByType(ctx context.Context, segment string, id int64) (*Product, error) {
	var product Product
	if err := c.get(ctx, fmt.Sprintf("/api/productos/%s/%d", segment, id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) Promotions(ctx context.Context) ([]Product, error) {
	var promos []Product
	if err := c.get(ctx, "/api/promociones", &promos); err != nil {
		return nil, err
	}
	return promos, nil
}

func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/api/usuarios", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) ProductStats(ctx context.Context) (ProductStats, error) {
	var stats ProductStats
	if err := c.get(ctx, "/api/estadisticas/productos", &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// ConfiguratorData is everything a product detail page needs, fetched in
// one parallel round trip.
type ConfiguratorData struct {
	Product    Product
	Sizes      []Size
	Flavors    []Flavor
	Addons     []Flavor
	AddonSizes []Size
	Prices     []SizeFlavorPrice
}

// LoadConfiguratorData fetches the product plus its type's reference data
// in parallel. Add-on lists are only loaded for types that offer them.
func (c *Client) LoadConfiguratorData(ctx context.Context, tipo enums.ProductType, productID int64) (*ConfiguratorData, error) {
	segment, err := sectionSegment(tipo)
	if err != nil {
		return nil, err
	}

	data := &ConfiguratorData{}
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		product, err := c.ProductByType(ctx, segment, productID)
		if err != nil {
			return err
		}
		data.Product = *product
		return nil
	})
	group.Go(func() error {
		sizes, err := c.Sizes(ctx, tipo)
		if err != nil {
			return err
		}
		data.Sizes = sizes
		return nil
	})
	group.Go(func() error {
		flavors, err := c.Flavors(ctx, tipo)
		if err != nil {
			return err
		}
		data.Flavors = flavors
		return nil
	})
	group.Go(func() error {
		prices, err := c.SizeFlavorPrices(ctx)
		if err != nil {
			return err
		}
		data.Prices = prices
		return nil
	})
	if tipo.HasAddons() {
		group.Go(func() error {
			addons, err := c.Flavors(ctx, enums.ProductTypeAgregado)
			if err != nil {
				return err
			}
			data.Addons = addons
			return nil
		})
		group.Go(func() error {
			addonSizes, err := c.Sizes(ctx, enums.ProductTypeAgregado)
			if err != nil {
				return err
			}
			data.AddonSizes = addonSizes
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// sectionSegment maps a configurable product type to its menu sub-path.
func sectionSegment(tipo enums.ProductType) (string, error) {
	switch tipo {
	case enums.ProductTypePizza:
		return "pizzas", nil
	case enums.ProductTypeCalzone:
		return "calzones", nil
	case enums.ProductTypePasta:
		return "pastas", nil
	case enums.ProductTypeBebida:
		return "bebidas", nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "product type has no configurator").
		WithDetails(map[string]any{"tipo": string(tipo)})
}
