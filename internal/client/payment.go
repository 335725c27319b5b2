package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/paybridge/crypto-checkout/internal/commons"
	"github.com/paybridge/crypto-checkout/internal/model"
)

// NowPaymentsClient wraps the processor's invoice endpoints. Calls are
// single-attempt; transient failures surface to the caller untouched.
type NowPaymentsClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type NowPaymentsOption func(*NowPaymentsClient)

func WithPaymentBaseURL(baseURL string) NowPaymentsOption {
	return func(c *NowPaymentsClient) {
		c.baseURL = baseURL
	}
}

func NewNowPaymentsClient(apiKey string, opts ...NowPaymentsOption) (*NowPaymentsClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", model.ErrPayment)
	}

	c := &NowPaymentsClient{
		apiKey:  apiKey,
		baseURL: commons.DefaultNowPaymentsBase,
		client:  &http.Client{Timeout: commons.NowPaymentsTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c, nil
}

type invoiceRequestBody struct {
	PriceAmount   json.Number `json:"price_amount"`
	PriceCurrency string      `json:"price_currency"`
	PayCurrency   string      `json:"pay_currency"`
	OrderDesc     string      `json:"order_description"`
	OrderID       string      `json:"order_id,omitempty"`
}

// CreateInvoice registers a payment with the processor and returns the
// resulting invoice. The response must carry a payment id, a pay
// address and a pay amount; anything less is treated as a failure.
func (c *NowPaymentsClient) CreateInvoice(ctx context.Context, req model.InvoiceRequest) (*model.Invoice, error) {
	priceCurrency := strings.ToLower(req.PriceCurrency)
	payCurrency := strings.ToLower(req.PayCurrency)

	body := invoiceRequestBody{
		PriceAmount:   json.Number(req.PriceAmount.String()),
		PriceCurrency: priceCurrency,
		PayCurrency:   payCurrency,
		OrderDesc:     req.Description,
		OrderID:       req.OrderID,
	}

	data, err := c.doRequest(ctx, http.MethodPost, "/payment", body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create invoice: %v", model.ErrPayment, err)
	}

	var payload map[string]any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode invoice response: %v", model.ErrPayment, err)
	}

	paymentID := stringField(payload, "payment_id")
	payAddress := stringField(payload, "pay_address")
	rawPayAmount, hasPayAmount := payload["pay_amount"]

	if paymentID == "" || payAddress == "" || !hasPayAmount || rawPayAmount == nil {
		return nil, fmt.Errorf("%w: unexpected response: %s", model.ErrPayment, data)
	}

	payAmount, err := parsePrice(rawPayAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: unexpected response: %s", model.ErrPayment, data)
	}

	priceAmount := req.PriceAmount
	if raw, ok := payload["price_amount"]; ok && raw != nil {
		parsed, err := parsePrice(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: unexpected response: %s", model.ErrPayment, data)
		}
		priceAmount = parsed
	}

	return &model.Invoice{
		PaymentID:     paymentID,
		PayAddress:    payAddress,
		PayAmount:     payAmount,
		PriceAmount:   priceAmount,
		PriceCurrency: priceCurrency,
		PayCurrency:   payCurrency,
	}, nil
}

// GetPaymentStatus returns the processor's status string for a payment
// verbatim. Interpreting the status is the caller's business.
func (c *NowPaymentsClient) GetPaymentStatus(ctx context.Context, paymentID string) (string, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/payment/"+paymentID, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to fetch payment %s: %v", model.ErrPayment, paymentID, err)
	}

	var payload map[string]any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: failed to decode status response: %v", model.ErrPayment, err)
	}

	status := stringField(payload, "payment_status")
	if status == "" {
		return "", fmt.Errorf("%w: payment %s returned unexpected payload: %s", model.ErrPayment, paymentID, data)
	}
	return status, nil
}

func (c *NowPaymentsClient) doRequest(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range commons.AuthHeaders(c.apiKey) {
		req.Header.Set(key, value)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("request to %s failed with status %d", path, resp.StatusCode)
	}
	return data, nil
}

// stringField pulls a field out of a loosely typed payload. Numeric
// ids are stringified the way the processor documents them.
func stringField(payload map[string]any, key string) string {
	raw, ok := payload[key]
	if !ok || raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

var (
	_ PriceClient   = (*PriceFeedClient)(nil)
	_ PaymentClient = (*NowPaymentsClient)(nil)
)
