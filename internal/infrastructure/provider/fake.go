package provider

import (
	"context"

	"useful-api/internal/application"
	"useful-api/internal/domain"
)

// Ensure the fakes implement the application ports.
var (
	_ application.PriceFeed     = (*Fake)(nil)
	_ application.StockProvider = (*FakeStock)(nil)
)

// Fake serves a fixed satoshi-per-EUR price.
type Fake struct {
	price float64
}

func NewFake(price float64) *Fake { return &Fake{price: price} }

func (f *Fake) FetchPrice(context.Context) (float64, error) {
	return f.price, nil
}

type FakeStock struct {
	Stock domain.SharkStock
}

func (f *FakeStock) SharkStock(context.Context) (domain.SharkStock, error) {
	return f.Stock, nil
}
