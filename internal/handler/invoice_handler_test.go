package handler_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/paybridge/crypto-checkout/internal/handler"
	"github.com/paybridge/crypto-checkout/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateInvoice(t *testing.T) {
	mockService := new(MockCheckoutService)
	h := handler.NewInvoiceHandler(mockService)

	invoice := &model.Invoice{
		PaymentID:     "123",
		PayAddress:    "addr",
		PayAmount:     decimal.RequireFromString("0.002"),
		PriceAmount:   decimal.RequireFromString("100"),
		PriceCurrency: "usd",
		PayCurrency:   "btc",
	}

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
		mockBehavior   func()
	}{
		{
			name:           "Valid invoice",
			body:           `{"price_amount":"100","price_currency":"usd","pay_currency":"btc","order_description":"Test order"}`,
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"payment_id":"123","pay_address":"addr","pay_amount":"0.002","price_amount":"100","price_currency":"usd","pay_currency":"btc"}`,
			mockBehavior: func() {
				mockService.On("CreateInvoice", mock.Anything, mock.MatchedBy(func(req model.InvoiceRequest) bool {
					return req.PriceAmount.Equal(decimal.RequireFromString("100")) &&
						req.PriceCurrency == "usd" &&
						req.PayCurrency == "btc" &&
						req.Description == "Test order"
				})).Return(invoice, nil).Once()
			},
		},
		{
			name:           "Invalid payload",
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request payload"}`,
			mockBehavior:   func() {},
		},
		{
			name:           "Zero amount",
			body:           `{"price_amount":"0","price_currency":"usd","pay_currency":"btc"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid price amount"}`,
			mockBehavior:   func() {},
		},
		{
			name:           "Missing pay currency",
			body:           `{"price_amount":"100","price_currency":"usd"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Missing price or pay currency"}`,
			mockBehavior:   func() {},
		},
		{
			name:           "Gateway failure",
			body:           `{"price_amount":"100","price_currency":"usd","pay_currency":"btc"}`,
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"Invoice creation failed"}`,
			mockBehavior: func() {
				mockService.On("CreateInvoice", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: processor unavailable", model.ErrPayment)).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()

			req := httptest.NewRequest(http.MethodPost, "/invoice", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			h.CreateInvoice(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}

func TestGetPaymentStatus(t *testing.T) {
	mockService := new(MockCheckoutService)
	h := handler.NewInvoiceHandler(mockService)

	router := chi.NewRouter()
	router.Get("/invoice/{id}/status", h.GetPaymentStatus)

	tests := []struct {
		name           string
		paymentID      string
		expectedStatus int
		expectedBody   string
		mockBehavior   func()
	}{
		{
			name:           "Valid status",
			paymentID:      "123",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"payment_id":"123","status":"finished"}`,
			mockBehavior: func() {
				mockService.On("PaymentStatus", mock.Anything, "123").Return("finished", nil).Once()
			},
		},
		{
			name:           "Gateway failure",
			paymentID:      "missing",
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"Status fetch failed"}`,
			mockBehavior: func() {
				mockService.On("PaymentStatus", mock.Anything, "missing").
					Return("", fmt.Errorf("%w: not found", model.ErrPayment)).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()

			req := httptest.NewRequest(http.MethodGet, "/invoice/"+tt.paymentID+"/status", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
