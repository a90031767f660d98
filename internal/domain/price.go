package domain

import "time"

// SatoshiPerBTC is the number of satoshi in one bitcoin.
const SatoshiPerBTC = 100_000_000.0

// SatoshiPrice is the price of one EUR expressed in satoshi, stamped with the
// moment it was fetched.
type SatoshiPrice struct {
	Value     float64
	FetchedAt time.Time
}
