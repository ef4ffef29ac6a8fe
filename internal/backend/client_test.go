// internal/backend/client_test.go
package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestDo_DecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/widgets", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"widget","count":3}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())

	var out struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	err := client.Do(context.Background(), http.MethodGet, "/widgets", "tok-1", nil, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "widget", out.Name)
	assert.Equal(t, 3, out.Count)
}

func TestDo_SendsBodyAndQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "5", r.URL.Query().Get("page"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())

	query := url.Values{}
	query.Set("page", "5")
	body := map[string]int{"quantity": 2}
	err := client.Do(context.Background(), http.MethodPost, "/items", "", query, body, nil)
	require.NoError(t, err)
}

func TestDo_UpstreamErrorBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"Insufficient stock"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())

	err := client.Do(context.Background(), http.MethodPost, "/cart/items", "tok", nil, nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "Insufficient stock", apiErr.Message)
}

func TestDo_MessageFieldFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Order not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())

	err := client.Do(context.Background(), http.MethodGet, "/orders/99", "tok", nil, nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Order not found", apiErr.Message)
}

func TestDo_TransportFailureWrapsErrNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, time.Second, testLogger())

	err := client.Do(context.Background(), http.MethodGet, "/anything", "", nil, nil, nil)
	require.True(t, errors.Is(err, ErrNetwork))
}

func TestDoIdempotent_SetsHeader(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())

	err := client.DoIdempotent(context.Background(), http.MethodPost, "/payment/create-payment-intent", "tok", "attempt-1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "attempt-1", gotKey)
}

func TestReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	client := NewClient(server.URL, time.Second, testLogger())
	assert.True(t, client.Reachable(context.Background()))

	server.Close()
	assert.False(t, client.Reachable(context.Background()))
}
