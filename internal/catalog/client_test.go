package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jhonvillanueva44/mammapizza-api/pkg/config"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/enums"
	pkgerrors "github.com/jhonvillanueva44/mammapizza-api/pkg/errors"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.BackendConfig{BaseURL: server.URL, Timeout: 2 * time.Second}, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	if err != nil {
		t.Fatalf("building client: %v", err)
	}
	return client
}

func TestSizesDecodesArray(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tamanios/pizza" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":1,"nombre":"Personal","tipo":"Pizza"},{"id":2,"nombre":"Mediana","tipo":"Pizza"}]`)
	}))

	sizes, err := client.Sizes(context.Background(), enums.ProductTypePizza)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sizes) != 2 || sizes[1].Nombre != "Mediana" {
		t.Fatalf("unexpected sizes %+v", sizes)
	}
}

func TestBackendErrorCarriesMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"message":"db down"}`)
	}))

	_, err := client.Categories(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	dump := pkgerrors.Dump(err)
	if dump.UpstreamStatus != http.StatusInternalServerError || dump.UpstreamMessage != "db down" {
		t.Fatalf("expected backend message lifted, got %+v", dump)
	}
}

func TestBackendErrorFallsBackToRawBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "upstream exploded")
	}))

	_, err := client.AllFlavors(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if dump := pkgerrors.Dump(err); dump.UpstreamMessage != "upstream exploded" {
		t.Fatalf("expected raw body message, got %+v", dump)
	}
}

func TestLoadConfiguratorDataFetchesInParallel(t *testing.T) {
	pizza := Product{
		ID:     7,
		Nombre: "Americana",
		Unicos: []UniquePairing{{TamaniosSabor: SizeFlavorPrice{TamanioID: 1, SaborID: 3, Precio: "25.00"}}},
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/productos/pizzas/7":
			json.NewEncoder(w).Encode(pizza)
		case "/api/tamanios/pizza":
			io.WriteString(w, `[{"id":1,"nombre":"Personal","tipo":"Pizza"}]`)
		case "/api/sabores/pizza":
			io.WriteString(w, `[{"id":3,"nombre":"Americana","tipo":"Pizza"}]`)
		case "/api/sabores/agregado":
			io.WriteString(w, `[{"id":40,"nombre":"Queso extra","tipo":"Agregado"}]`)
		case "/api/tamanios/agregado":
			io.WriteString(w, `[{"id":10,"nombre":"Agregado personal","tipo":"Agregado"}]`)
		case "/api/tamaniosabor":
			io.WriteString(w, `[{"id":1,"tamanio_id":1,"sabor_id":3,"precio":"25.00"}]`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	data, err := client.LoadConfiguratorData(context.Background(), enums.ProductTypePizza, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Product.Nombre != "Americana" {
		t.Fatalf("unexpected product %+v", data.Product)
	}
	if len(data.Sizes) != 1 || len(data.Flavors) != 1 || len(data.Prices) != 1 {
		t.Fatalf("reference data incomplete: %+v", data)
	}
	if len(data.Addons) != 1 || len(data.AddonSizes) != 1 {
		t.Fatalf("expected addon lists for pizza, got %+v", data)
	}
}

func TestLoadConfiguratorDataSkipsAddonsForBeverages(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/sabores/agregado", "/api/tamanios/agregado":
			t.Errorf("addon endpoints must not be called for beverages: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/productos/bebidas/3" {
			io.WriteString(w, `{"id":3,"nombre":"Chicha morada"}`)
			return
		}
		io.WriteString(w, `[]`)
	}))

	data, err := client.LoadConfiguratorData(context.Background(), enums.ProductTypeBebida, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Addons != nil || data.AddonSizes != nil {
		t.Fatalf("beverages must not load addon lists, got %+v", data)
	}
}

func TestSendMultipartRebuildsForm(t *testing.T) {
	var gotFields map[string]string
	var gotFile string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart: %v", err)
		}
		gotFields = map[string]string{}
		for key, values := range r.MultipartForm.Value {
			gotFields[key] = values[0]
		}
		if file, header, err := r.FormFile("imagen"); err == nil {
			defer file.Close()
			gotFile = header.Filename
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":9}`)
	}))

	fields := [][2]string{
		{"nombre", "Pizza Hawaiana"},
		{"categoria_id", "1"},
		{"tamanio_sabor_ids", "[4,9]"},
	}
	file := &Upload{FieldName: "imagen", FileName: "hawaiana.jpg", Content: []byte("fake-image")}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := client.SendMultipart(context.Background(), http.MethodPost, "/api/productos", fields, file, &created); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 9 {
		t.Fatalf("expected created id decoded, got %+v", created)
	}
	if gotFields["nombre"] != "Pizza Hawaiana" || gotFields["tamanio_sabor_ids"] != "[4,9]" {
		t.Fatalf("fields not forwarded: %+v", gotFields)
	}
	if gotFile != "hawaiana.jpg" {
		t.Fatalf("file not forwarded, got %q", gotFile)
	}
}
