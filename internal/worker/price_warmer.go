package worker

import (
	"context"
	"strings"
	"time"

	"github.com/paybridge/crypto-checkout/internal/cache"
	"github.com/paybridge/crypto-checkout/internal/client"
	"github.com/paybridge/crypto-checkout/internal/commons"
	"github.com/paybridge/crypto-checkout/internal/logger"
	"github.com/paybridge/crypto-checkout/internal/service"
)

// Pair is one symbol/currency combination the warmer keeps fresh.
type Pair struct {
	Symbol   string
	Currency string
}

// ParsePairs builds the cross product of two comma-separated lists,
// e.g. ("btc,ltc", "usd") -> btc/usd, ltc/usd.
func ParsePairs(symbols, currencies string) []Pair {
	var pairs []Pair
	for _, symbol := range splitList(symbols) {
		for _, currency := range splitList(currencies) {
			pairs = append(pairs, Pair{Symbol: symbol, Currency: currency})
		}
	}
	return pairs
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(strings.ToLower(item))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// PriceWarmer periodically refreshes cached spot prices for a fixed
// set of pairs so quote requests mostly hit the cache.
type PriceWarmer struct {
	prices   client.PriceClient
	cache    cache.Cache
	pairs    []Pair
	interval time.Duration
}

func NewPriceWarmer(prices client.PriceClient, cache cache.Cache, pairs []Pair, interval time.Duration) *PriceWarmer {
	return &PriceWarmer{
		prices:   prices,
		cache:    cache,
		pairs:    pairs,
		interval: interval,
	}
}

func (pw *PriceWarmer) Start(ctx context.Context) {
	pw.refresh(ctx)

	ticker := time.NewTicker(pw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("price warmer stopped")
			return
		case <-ticker.C:
			pw.refresh(ctx)
		}
	}
}

func (pw *PriceWarmer) refresh(ctx context.Context) {
	for _, pair := range pw.pairs {
		price, err := pw.prices.SpotPrice(ctx, pair.Symbol, pair.Currency)
		if err != nil {
			logger.Errorf("failed to refresh %s/%s price: %v", pair.Symbol, pair.Currency, err)
			continue
		}

		key := service.PriceKey(pair.Symbol, pair.Currency)
		if err := pw.cache.Set(ctx, key, price, commons.PriceCacheExpiration); err != nil {
			logger.Errorf("failed to cache %s: %v", key, err)
		}
	}
}
