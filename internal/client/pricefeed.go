package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paybridge/crypto-checkout/internal/commons"
	"github.com/paybridge/crypto-checkout/internal/logger"
	"github.com/paybridge/crypto-checkout/internal/model"
	"github.com/shopspring/decimal"
)

// cryptoToFeedID maps wallet-style symbols to the ids the price feed
// keys its responses by. Symbols without an entry are used as-is.
var cryptoToFeedID = map[string]string{
	"btc":  "bitcoin",
	"ltc":  "litecoin",
	"eth":  "ethereum",
	"doge": "dogecoin",
}

type PriceFeedClient struct {
	baseURL    string
	client     *http.Client
	maxRetries int
	retryDelay time.Duration
}

type PriceFeedOption func(*PriceFeedClient)

func WithMaxRetries(n int) PriceFeedOption {
	return func(c *PriceFeedClient) {
		c.maxRetries = n
	}
}

func WithRetryDelay(d time.Duration) PriceFeedOption {
	return func(c *PriceFeedClient) {
		c.retryDelay = d
	}
}

func WithPriceFeedBaseURL(baseURL string) PriceFeedOption {
	return func(c *PriceFeedClient) {
		c.baseURL = baseURL
	}
}

func NewPriceFeedClient(opts ...PriceFeedOption) *PriceFeedClient {
	c := &PriceFeedClient{
		baseURL:    commons.DefaultPriceFeedBase,
		client:     &http.Client{Timeout: commons.PriceFeedTimeout},
		maxRetries: commons.PriceFeedMaxRetries,
		retryDelay: commons.PriceFeedRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// SpotPrice fetches the current price of one unit of cryptoSymbol in
// fiatCurrency, retrying transient failures with a fixed delay. All
// failure modes of an attempt are treated the same way for retry
// purposes; when every attempt fails the last error is wrapped into
// model.ErrPriceLookup.
func (c *PriceFeedClient) SpotPrice(ctx context.Context, cryptoSymbol, fiatCurrency string) (decimal.Decimal, error) {
	cryptoSymbol = strings.ToLower(cryptoSymbol)
	fiatCurrency = strings.ToLower(fiatCurrency)
	feedID := cryptoSymbol
	if mapped, ok := cryptoToFeedID[cryptoSymbol]; ok {
		feedID = mapped
	}

	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s",
		c.baseURL, url.QueryEscape(feedID), url.QueryEscape(fiatCurrency))

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		price, err := c.fetchPrice(ctx, endpoint, feedID, fiatCurrency)
		if err == nil {
			return price, nil
		}
		lastErr = err
		logger.Errorf("price feed request failed (attempt %d/%d): %v", attempt, c.maxRetries, err)
		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return decimal.Zero, fmt.Errorf("%w: %v", model.ErrPriceLookup, ctx.Err())
			case <-time.After(c.retryDelay):
			}
		}
	}

	return decimal.Zero, fmt.Errorf("%w: unable to fetch %s price: %v",
		model.ErrPriceLookup, strings.ToUpper(cryptoSymbol), lastErr)
}

// Convert returns the amount of cryptoSymbol that fiatAmount buys at
// the current spot price, rounded to eight fractional digits.
func (c *PriceFeedClient) Convert(ctx context.Context, fiatAmount decimal.Decimal, fiatCurrency, cryptoSymbol string) (decimal.Decimal, error) {
	price, err := c.SpotPrice(ctx, cryptoSymbol, fiatCurrency)
	if err != nil {
		return decimal.Zero, err
	}
	return fiatAmount.DivRound(price, commons.QuotePrecision), nil
}

func (c *PriceFeedClient) fetchPrice(ctx context.Context, endpoint, feedID, fiatCurrency string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("price feed responded with status %d", resp.StatusCode)
	}

	var payload map[string]map[string]any
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode response: %w", err)
	}

	raw, ok := payload[feedID][fiatCurrency]
	if !ok {
		return decimal.Zero, fmt.Errorf("missing price for %s/%s", feedID, fiatCurrency)
	}

	price, err := parsePrice(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if price.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("invalid price received: %s", price)
	}
	return price, nil
}

// The feed is loose about numeric types: prices arrive as JSON numbers
// or as quoted strings depending on the endpoint revision.
func parsePrice(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case string:
		price, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("malformed price %q: %w", v, err)
		}
		return price, nil
	case json.Number:
		price, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("malformed price %q: %w", v, err)
		}
		return price, nil
	default:
		return decimal.Zero, fmt.Errorf("unexpected price type %T", raw)
	}
}
