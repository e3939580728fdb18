package products

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/teltechdev/teltech-backend/pkg/errors"
	"github.com/teltechdev/teltech-backend/pkg/logger"
	"github.com/teltechdev/teltech-backend/pkg/types"
)

// RemoteStore talks to the authoritative catalog API. Mutations are
// fail-closed: a non-2xx response or transport failure reports an error and
// nothing is cached locally, so a failed write can never show up in a
// re-render.
type RemoteStore struct {
	baseURL string
	client  *http.Client
	token   string
	logg    *logger.Logger
}

// NewRemoteStore builds a store against the API base URL. A nil client falls
// back to a default client with transport-level timeouts only.
func NewRemoteStore(baseURL string, client *http.Client, logg *logger.Logger) *RemoteStore {
	if client == nil {
		client = &http.Client{}
	}
	return &RemoteStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logg:    logg,
	}
}

// SetToken attaches the admin access token used for catalog mutations.
func (s *RemoteStore) SetToken(token string) {
	s.token = token
}

func (s *RemoteStore) List(ctx context.Context) []types.Product {
	var out []types.Product
	if err := s.do(ctx, http.MethodGet, "/api/v1/products", nil, &out); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "could not fetch products", err)
		}
		return []types.Product{}
	}
	if out == nil {
		return []types.Product{}
	}
	return out
}

func (s *RemoteStore) Create(ctx context.Context, input Input) (*types.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	var out types.Product
	if err := s.do(ctx, http.MethodPost, "/api/v1/products", input.wire(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RemoteStore) Update(ctx context.Context, productID string, input Input) (*types.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	var out types.Product
	if err := s.do(ctx, http.MethodPut, "/api/v1/products/"+productID, input.wire(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RemoteStore) Delete(ctx context.Context, productID string) error {
	return s.do(ctx, http.MethodDelete, "/api/v1/products/"+productID, nil, nil)
}

// Reserve asks the stock authority to deduct quantity units before the cart
// commits the line. Any error means nothing was deducted or the deduction is
// unknown; the caller must not mutate the cart.
func (s *RemoteStore) Reserve(ctx context.Context, productID string, quantity int) error {
	body := types.StockDeductRequest{ProductID: productID, Quantity: quantity}
	return s.do(ctx, http.MethodPost, "/api/v1/products/stock/deduct", body, nil)
}

// Login exchanges admin credentials for an access token and attaches it to
// subsequent mutations.
func (s *RemoteStore) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}
	var out struct {
		Email       string `json:"email"`
		AccessToken string `json:"access_token"`
	}
	if err := s.do(ctx, http.MethodPost, "/api/v1/auth/login", payload, &out); err != nil {
		return "", err
	}
	s.token = out.AccessToken
	return out.AccessToken, nil
}

type wireInput struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Quantity *int            `json:"quantity,omitempty"`
	Image    string          `json:"image,omitempty"`
}

func (i Input) wire() wireInput {
	return wireInput{
		Name:     i.Name,
		Price:    i.Price,
		Category: i.Category,
		Quantity: i.Quantity,
		Image:    i.Image,
	}
}

func (s *RemoteStore) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("%s %s", method, path))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	envelope := types.SuccessEnvelope{Data: out}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response body")
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Code != "" {
		return pkgerrors.New(codeFromWire(envelope.Error.Code), envelope.Error.Message).
			WithDetails(envelope.Error.Details)
	}
	message := strings.TrimSpace(string(raw))
	if message == "" {
		message = resp.Status
	}
	return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("api request failed: %d - %s", resp.StatusCode, message))
}

func codeFromWire(code string) pkgerrors.Code {
	switch pkgerrors.Code(code) {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeUnauthorized,
		pkgerrors.CodeForbidden,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict,
		pkgerrors.CodeInsufficientStock,
		pkgerrors.CodeInternal,
		pkgerrors.CodeDependency:
		return pkgerrors.Code(code)
	}
	return pkgerrors.CodeDependency
}
