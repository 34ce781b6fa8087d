package data

import (
	"context"
	"fmt"
	"time"
)

// manualPriceProvider returns a price typed in by the user.
type manualPriceProvider struct {
	price     float64
	secondary Provider
}

func NewManualPriceProvider(price float64, secondary Provider) Provider {
	return &manualPriceProvider{price: price, secondary: secondary}
}

func (manualProv *manualPriceProvider) Name() string { return "manual" }

func (manualProv *manualPriceProvider) Secondary() Provider {
	return manualProv.secondary
}

func (manualProv *manualPriceProvider) GetUnderlyingPrice(ctx context.Context, ticker string, asOf time.Time) (float64, error) {
	if manualProv.price <= 0 {
		return 0, fmt.Errorf("%w: manual price not set", ErrNoPrice)
	}
	return manualProv.price, nil
}
