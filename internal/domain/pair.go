package domain

type Pair string

// PairBTCEUR is the only pair the price feed serves.
const PairBTCEUR Pair = "BTC/EUR"
