// internal/domain/order/service_test.go
package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-gateway/internal/backend"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]OrderListItem{
			{ID: 1, OrderNumber: "ORD-1001", Status: OrderStatusPending, TotalAmount: decimal.RequireFromString("59.98")},
		})
	}))
	defer server.Close()

	service := NewService(backend.NewClient(server.URL, time.Second, testLogger()), testLogger())

	orders, err := service.List(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD-1001", orders[0].OrderNumber)
}

func TestCreate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var req CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "cod", req.PaymentMethod)
		assert.Equal(t, "Springfield", req.ShippingInfo.City)

		json.NewEncoder(w).Encode(Order{
			ID:            12,
			OrderNumber:   "ORD-1002",
			Status:        OrderStatusPending,
			PaymentStatus: PaymentStatusUnpaid,
		})
	}))
	defer server.Close()

	service := NewService(backend.NewClient(server.URL, time.Second, testLogger()), testLogger())

	created, err := service.Create(context.Background(), "tok", CreateOrderRequest{
		ShippingInfo: ShippingInfo{
			Name: "Jordan Doe", Address: "1 Main St", City: "Springfield",
			State: "IL", ZipCode: "62701", Country: "USA",
		},
		PaymentMethod: "cod",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(12), created.ID)
	assert.Equal(t, PaymentStatusUnpaid, created.PaymentStatus)
}

func TestCancel_NotCancellablePassesUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/12/cancel", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"Order has already shipped"}`))
	}))
	defer server.Close()

	service := NewService(backend.NewClient(server.URL, time.Second, testLogger()), testLogger())

	err := service.Cancel(context.Background(), "tok", 12)
	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Order has already shipped", apiErr.Message)
}
