package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"useful-api/internal/application"
	"useful-api/internal/domain"
	"useful-api/internal/infrastructure/httpx"
)

// IKEA article numbers of the plush toys we track.
const (
	ItemBeeghaj = "30373588" // BLÅHAJ 100 cm
	ItemSmolhaj = "20540663" // BLÅHAJ 55 cm
	ItemWhale   = "70522107" // BLÅVINGAD whale
)

// Ikea looks up cash & carry availability of the sharks in one store.
type Ikea struct {
	BaseURL string
	Store   string
	Client  *httpx.Client
}

var _ application.StockProvider = (*Ikea)(nil)

type ikeaResp struct {
	Availabilities []struct {
		BuyingOption struct {
			CashCarry *struct {
				Availability *struct {
					Quantity int `json:"quantity"`
				} `json:"availability"`
			} `json:"cashCarry"`
		} `json:"buyingOption"`
		ClassUnitKey struct {
			ClassUnitCode string `json:"classUnitCode"`
		} `json:"classUnitKey"`
		ItemKey struct {
			ItemNo string `json:"itemNo"`
		} `json:"itemKey"`
	} `json:"availabilities"`
}

func (p *Ikea) SharkStock(ctx context.Context) (domain.SharkStock, error) {
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return domain.SharkStock{}, fmt.Errorf("%w: invalid Ikea url: %w", domain.ErrStock, err)
	}
	q := u.Query()
	q.Set("itemNos", strings.Join([]string{ItemBeeghaj, ItemSmolhaj, ItemWhale}, ","))
	q.Set("expand", "StoresList")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.SharkStock{}, fmt.Errorf("%w: create request: %w", domain.ErrStock, err)
	}
	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}
	var body ikeaResp
	if err := client.DoJSON(ctx, req, &body); err != nil {
		if httpx.IsTransport(err) {
			return domain.SharkStock{}, fmt.Errorf("%w: fetching data from Ikea: %w", domain.ErrStock, err)
		}
		return domain.SharkStock{}, fmt.Errorf("%w: parsing Ikea response: %w", domain.ErrStock, err)
	}

	out := domain.SharkStock{Store: p.Store}
	found := false
	for _, a := range body.Availabilities {
		if a.ClassUnitKey.ClassUnitCode != p.Store {
			continue
		}
		found = true
		qty := 0
		if cc := a.BuyingOption.CashCarry; cc != nil && cc.Availability != nil {
			qty = cc.Availability.Quantity
		}
		switch a.ItemKey.ItemNo {
		case ItemBeeghaj:
			out.Beeghaj = qty
		case ItemSmolhaj:
			out.Smolhaj = qty
		case ItemWhale:
			out.Whale = qty
		}
	}
	if !found {
		return domain.SharkStock{}, fmt.Errorf("%w: store %s not found in Ikea response", domain.ErrStock, p.Store)
	}
	return out, nil
}
