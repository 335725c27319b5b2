package commons

import "time"

const (
	DefaultNowPaymentsBase = "https://api.nowpayments.io/v1"
	DefaultPriceFeedBase   = "https://api.coingecko.com/api/v3"

	PriceFeedTimeout    = 10 * time.Second
	NowPaymentsTimeout  = 15 * time.Second
	PriceFeedMaxRetries = 3
	PriceFeedRetryDelay = 2 * time.Second

	QuotePrecision = 8

	AllowedRPS           = 10
	PriceCacheExpiration = 1 * time.Minute
	WarmupInterval       = 1 * time.Minute
	ServerIdleTimeout    = time.Minute
	ServerReadTimeout    = 10 * time.Second
	ServerWriteTimeout   = 30 * time.Second
)

// AuthHeaders builds the header set the payment processor expects on
// every authenticated call.
func AuthHeaders(apiKey string) map[string]string {
	return map[string]string{
		"x-api-key": apiKey,
		"Accept":    "application/json",
	}
}
