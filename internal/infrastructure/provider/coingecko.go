package provider

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"useful-api/internal/application"
	"useful-api/internal/domain"
	"useful-api/internal/infrastructure/httpx"
)

const (
	msgClient    = "Error creating HTTP client"
	msgTransport = "Error fetching data from CoinGecko"
	msgDecode    = "Error deserializing CoinGecko response. Probably rate limited."
)

// CoinGecko reads the BTC/EUR price from the CoinGecko simple price API and
// turns it into satoshi per EUR. One call is one attempt; there are no retries.
type CoinGecko struct {
	URL    string
	Client *httpx.Client
}

var _ application.PriceFeed = (*CoinGecko)(nil)

type simplePriceResp struct {
	Bitcoin *struct {
		EUR *float64 `json:"eur"`
	} `json:"bitcoin"`
}

func (p *CoinGecko) FetchPrice(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return 0, domain.NewFetchError(domain.FetchCauseClient, msgClient, err)
	}

	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}
	var body simplePriceResp
	if err := client.DoJSON(ctx, req, &body); err != nil {
		if httpx.IsTransport(err) {
			return 0, domain.NewFetchError(domain.FetchCauseTransport, msgTransport, err)
		}
		return 0, domain.NewFetchError(domain.FetchCauseDecode, msgDecode, err)
	}

	if body.Bitcoin == nil || body.Bitcoin.EUR == nil {
		return 0, domain.NewFetchError(domain.FetchCauseDecode, msgDecode, errors.New("missing field bitcoin.eur"))
	}
	eurPerBTC := *body.Bitcoin.EUR
	if eurPerBTC <= 0 {
		return 0, domain.NewFetchError(domain.FetchCauseDecode, msgDecode, fmt.Errorf("non-positive price %v", eurPerBTC))
	}
	sat := domain.SatoshiPerBTC / eurPerBTC
	if math.IsInf(sat, 0) || math.IsNaN(sat) {
		return 0, domain.NewFetchError(domain.FetchCauseDecode, msgDecode, fmt.Errorf("price %v out of range", eurPerBTC))
	}
	return sat, nil
}
