package domain

import "time"

type PriceSnapshot struct {
	ID            int64
	Pair          Pair
	SatoshiPerEUR float64
	QuotedAt      time.Time
	Source        string
}
