package products

import (
	"context"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/teltechdev/teltech-backend/pkg/errors"
	"github.com/teltechdev/teltech-backend/pkg/kv"
	"github.com/teltechdev/teltech-backend/pkg/logger"
	"github.com/teltechdev/teltech-backend/pkg/types"
)

// LocalStore keeps the catalog as a JSON array in the KV store. Every write
// goes through the store's change notifier, so other views re-render without
// a manual refresh.
type LocalStore struct {
	store *kv.Store
	logg  *logger.Logger
}

func NewLocalStore(store *kv.Store, logg *logger.Logger) *LocalStore {
	return &LocalStore{store: store, logg: logg}
}

func (s *LocalStore) List(ctx context.Context) []types.Product {
	return kv.Read[types.Product](ctx, s.store, StorageKey)
}

func (s *LocalStore) Create(ctx context.Context, input Input) (*types.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product := types.Product{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(input.Name),
		Price:    input.Price,
		Category: strings.TrimSpace(input.Category),
		Quantity: input.Quantity,
		Image:    input.Image,
	}

	catalog := append(s.List(ctx), product)
	if err := kv.Write(ctx, s.store, StorageKey, catalog); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "kv: persist products")
	}
	return &product, nil
}

func (s *LocalStore) Update(ctx context.Context, productID string, input Input) (*types.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	catalog := s.List(ctx)
	idx := indexByID(catalog, productID)
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	catalog[idx].Name = strings.TrimSpace(input.Name)
	catalog[idx].Price = input.Price
	catalog[idx].Category = strings.TrimSpace(input.Category)
	catalog[idx].Quantity = input.Quantity
	catalog[idx].Image = input.Image

	if err := kv.Write(ctx, s.store, StorageKey, catalog); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "kv: persist products")
	}
	updated := catalog[idx]
	return &updated, nil
}

func (s *LocalStore) Delete(ctx context.Context, productID string) error {
	catalog := s.List(ctx)
	idx := indexByID(catalog, productID)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	catalog = append(catalog[:idx], catalog[idx+1:]...)
	if err := kv.Write(ctx, s.store, StorageKey, catalog); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "kv: persist products")
	}
	return nil
}

// indexByID resolves a product by its stable id. Positional addressing is
// deliberately not part of the contract: indexes shift under concurrent
// edits, ids do not.
func indexByID(catalog []types.Product, productID string) int {
	for i, product := range catalog {
		if product.ID == productID {
			return i
		}
	}
	return -1
}
