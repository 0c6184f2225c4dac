package api

import (
	"context"

	"github.com/totegamma/nameless-go"
)

type Store struct {
	api *API
}

func (a *API) Store() Store { return Store{api: a} }

func (s Store) Products(ctx context.Context) ([]nameless.StoreProduct, error) {
	var out struct {
		Products []nameless.StoreProduct `json:"products"`
	}
	if err := s.api.client.Get(ctx, "store/products", nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (s Store) Payments(ctx context.Context) ([]nameless.StorePayment, error) {
	var out struct {
		Payments []nameless.StorePayment `json:"payments"`
	}
	if err := s.api.client.Get(ctx, "store/payments", nil, &out); err != nil {
		return nil, err
	}
	return out.Payments, nil
}
