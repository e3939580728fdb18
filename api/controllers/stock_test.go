package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/teltechdev/teltech-backend/internal/stock"
	pkgerrors "github.com/teltechdev/teltech-backend/pkg/errors"
)

type stubStock struct {
	result *stock.DeductResult
	err    error

	gotID  uuid.UUID
	gotQty int
}

func (s *stubStock) Deduct(ctx context.Context, productID uuid.UUID, quantity int) (*stock.DeductResult, error) {
	s.gotID = productID
	s.gotQty = quantity
	return s.result, s.err
}

func deductRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/stock/deduct", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDeductStockSuccess(t *testing.T) {
	id := uuid.New()
	remaining := 2
	stub := &stubStock{result: &stock.DeductResult{ProductID: id, Remaining: &remaining}}
	handler := DeductStock(stub, nil)

	body := `{"product_id":"` + id.String() + `","quantity":3}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, deductRequest(t, body))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if stub.gotID != id || stub.gotQty != 3 {
		t.Fatalf("request not forwarded: id=%s qty=%d", stub.gotID, stub.gotQty)
	}

	var envelope struct {
		Data stock.DeductResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Remaining == nil || *envelope.Data.Remaining != 2 {
		t.Fatalf("unexpected remaining: %v", envelope.Data.Remaining)
	}
}

func TestDeductStockInsufficient(t *testing.T) {
	stub := &stubStock{err: pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
		WithDetails(map[string]int{"available": 2, "requested": 3})}
	handler := DeductStock(stub, nil)

	body := `{"product_id":"` + uuid.NewString() + `","quantity":3}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, deductRequest(t, body))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]int `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeInsufficientStock) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
	if envelope.Error.Details["available"] != 2 {
		t.Fatalf("expected available count in details, got %v", envelope.Error.Details)
	}
}

func TestDeductStockInvalidBody(t *testing.T) {
	handler := DeductStock(&stubStock{}, nil)

	cases := []struct {
		name string
		body string
	}{
		{"missing quantity", `{"product_id":"` + uuid.NewString() + `"}`},
		{"zero quantity", `{"product_id":"` + uuid.NewString() + `","quantity":0}`},
		{"bad product id", `{"product_id":"nope","quantity":1}`},
		{"malformed json", `{`},
	}
	for _, tc := range cases {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, deductRequest(t, tc.body))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", tc.name, resp.Code)
		}
	}
}
