package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	checkoutsvc "github.com/jhonvillanueva44/mammapizza-api/internal/checkout"
	pkgerrors "github.com/jhonvillanueva44/mammapizza-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCheckoutService struct {
	result    *checkoutsvc.Result
	err       error
	lastReq   checkoutsvc.Request
	lastAgent string
}

func (s *stubCheckoutService) Checkout(ctx context.Context, sessionID, userAgent string, req checkoutsvc.Request) (*checkoutsvc.Result, error) {
	s.lastReq, s.lastAgent = req, userAgent
	return s.result, s.err
}

func TestCheckoutForwardsFormAndUserAgent(t *testing.T) {
	svc := &stubCheckoutService{result: &checkoutsvc.Result{Link: "https://wa.me/51987654321?text=x", Total: "56.00"}}
	payload, _ := json.Marshal(checkoutsvc.Request{Nombre: "Carlos", Entrega: "delivery", Direccion: "Av. Grau 123"})

	req := sessionRequest(http.MethodPost, "/api/pedido", payload)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)")
	resp := httptest.NewRecorder()

	Checkout(svc, testLogger())(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Carlos", svc.lastReq.Nombre)
	assert.Equal(t, "delivery", svc.lastReq.Entrega)
	assert.Contains(t, svc.lastAgent, "iPhone")

	var envelope struct {
		Data checkoutsvc.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "56.00", envelope.Data.Total)
}

func TestCheckoutRejectsInvalidDeliveryMethod(t *testing.T) {
	svc := &stubCheckoutService{}
	resp := httptest.NewRecorder()

	Checkout(svc, testLogger())(resp, sessionRequest(http.MethodPost, "/api/pedido", []byte(`{"nombre":"Ana","entrega":"drone"}`)))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Empty(t, svc.lastReq.Nombre)
}

func TestCheckoutPropagatesEmptyCart(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}
	payload, _ := json.Marshal(checkoutsvc.Request{Nombre: "Ana", Entrega: "recoger"})
	resp := httptest.NewRecorder()

	Checkout(svc, testLogger())(resp, sessionRequest(http.MethodPost, "/api/pedido", payload))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCheckoutWithoutSessionFails(t *testing.T) {
	svc := &stubCheckoutService{}
	resp := httptest.NewRecorder()

	Checkout(svc, testLogger())(resp, httptest.NewRequest(http.MethodPost, "/api/pedido", nil))

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
