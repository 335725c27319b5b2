package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paybridge/crypto-checkout/internal/handler"
	"github.com/paybridge/crypto-checkout/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Quote(ctx context.Context, fiatAmount decimal.Decimal, fiatCurrency, cryptoSymbol string) (decimal.Decimal, error) {
	args := m.Called(ctx, fiatAmount, fiatCurrency, cryptoSymbol)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCheckoutService) CreateInvoice(ctx context.Context, req model.InvoiceRequest) (*model.Invoice, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockCheckoutService) PaymentStatus(ctx context.Context, paymentID string) (string, error) {
	args := m.Called(ctx, paymentID)
	return args.String(0), args.Error(1)
}

func TestGetQuote(t *testing.T) {
	mockService := new(MockCheckoutService)
	h := handler.NewQuoteHandler(mockService)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedBody   string
		mockBehavior   func()
	}{
		{
			name:           "Valid quote",
			query:          "amount=100&currency=usd&symbol=btc",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"amount":"100","crypto_amount":"0.002","currency":"usd","symbol":"btc"}`,
			mockBehavior: func() {
				mockService.On("Quote", mock.Anything, decimal.RequireFromString("100"), "usd", "btc").
					Return(decimal.RequireFromString("0.002"), nil).Once()
			},
		},
		{
			name:           "Uppercase parameters are lowercased",
			query:          "amount=100&currency=USD&symbol=BTC",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"amount":"100","crypto_amount":"0.002","currency":"usd","symbol":"btc"}`,
			mockBehavior: func() {
				mockService.On("Quote", mock.Anything, decimal.RequireFromString("100"), "usd", "btc").
					Return(decimal.RequireFromString("0.002"), nil).Once()
			},
		},
		{
			name:           "Missing parameters",
			query:          "amount=100&currency=usd",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Missing required parameters"}`,
			mockBehavior:   func() {},
		},
		{
			name:           "Invalid amount",
			query:          "amount=abc&currency=usd&symbol=btc",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid amount"}`,
			mockBehavior:   func() {},
		},
		{
			name:           "Negative amount",
			query:          "amount=-5&currency=usd&symbol=btc",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid amount"}`,
			mockBehavior:   func() {},
		},
		{
			name:           "Price lookup failure",
			query:          "amount=100&currency=usd&symbol=btc",
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"Price lookup failed"}`,
			mockBehavior: func() {
				mockService.On("Quote", mock.Anything, decimal.RequireFromString("100"), "usd", "btc").
					Return(decimal.Zero, fmt.Errorf("%w: feed is down", model.ErrPriceLookup)).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()

			req := httptest.NewRequest(http.MethodGet, "/quote?"+tt.query, nil)
			w := httptest.NewRecorder()

			h.GetQuote(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
