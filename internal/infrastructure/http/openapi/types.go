package openapi

import "time"

// Format selects the response representation. Anything but FormatJSON means
// plain text.
type Format string

const FormatJSON Format = "json"

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Hello struct {
	Message string `json:"message"`
}

type MensaSatoshi struct {
	Satoshi int64  `json:"satoshi"`
	Message string `json:"message"`
}

type MensaBeer struct {
	Beers   float64 `json:"beers"`
	Message string  `json:"message"`
}

type CongressBeer struct {
	Congressbeers int64  `json:"congressbeers"`
	Message       string `json:"message"`
}

type Shark struct {
	Beeghaj int    `json:"beeghaj"`
	Smolhaj int    `json:"smolhaj"`
	Whale   int    `json:"whale"`
	Message string `json:"message"`
}

type PriceSnapshot struct {
	Id            int64     `json:"id"`
	Pair          string    `json:"pair"`
	SatoshiPerEur float64   `json:"satoshi_per_eur"`
	QuotedAt      time.Time `json:"quoted_at"`
	Source        string    `json:"source"`
}

type GetHelloParams struct {
	Format *Format `form:"format,omitempty" json:"format,omitempty"`
}

type GetMensatoshiParams struct {
	Format *Format `form:"format,omitempty" json:"format,omitempty"`
}

type GetMensabeerParams struct {
	Format *Format `form:"format,omitempty" json:"format,omitempty"`
}

type GetCongressbeerParams struct {
	Satoshi *float64 `form:"satoshi,omitempty" json:"satoshi,omitempty"`
	Format  *Format  `form:"format,omitempty" json:"format,omitempty"`
}

type GetSharkParams struct {
	Format *Format `form:"format,omitempty" json:"format,omitempty"`
}

type GetPriceHistoryParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}
