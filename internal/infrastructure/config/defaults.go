package config

import "time"

const (
	DefaultHTTPPort        = "8000"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultRequestTimeout  = 4 * time.Second
	DefaultWorkerPoll      = time.Minute
	DefaultPGMaxConns      = 5
	DefaultPGMinConns      = 1
	DefaultRedisHistoryKey = "useful-api:price_history"
	DefaultRedisHistoryMax = 1000

	DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3/simple/price?ids=bitcoin&vs_currencies=eur"
	DefaultIkeaURL      = "https://api.salesitem.ingka.com/availabilities/ru/de"
	DefaultIkeaClientID = "ef382663-a2a5-40d4-8afe-f0634821c0ed"
	DefaultIkeaStore    = "147"
)
