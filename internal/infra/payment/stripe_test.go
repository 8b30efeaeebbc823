//go:build unit

package payment_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shophub/internal/infra/payment"
	"shophub/internal/pkg/config"
	"shophub/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripeGateway_Capture_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/charges", r.URL.Path)
		require.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "2500", r.PostFormValue("amount"))
		assert.Equal(t, "tok_visa", r.PostFormValue("source"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ch_abc123","status":"succeeded"}`))
	}))
	defer srv.Close()

	gateway := payment.NewStripeGateway(config.PaymentConfig{
		BaseURL:   srv.URL,
		SecretKey: "sk_test_123",
		Timeout:   2 * time.Second,
	})

	result, err := gateway.Capture(context.Background(), 2500, commands.PaymentMethod{Reference: "tok_visa"})

	require.NoError(t, err)
	assert.Equal(t, "stripe", result.Gateway)
	assert.Equal(t, "ch_abc123", result.Reference)
	assert.Equal(t, int64(2500), result.AmountCents)
	assert.True(t, result.Succeeded())
}

func TestStripeGateway_Capture_Declined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"card declined"}}`))
	}))
	defer srv.Close()

	gateway := payment.NewStripeGateway(config.PaymentConfig{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	})

	result, err := gateway.Capture(context.Background(), 1000, commands.PaymentMethod{Reference: "tok_declined"})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "card declined")
}

func TestStripeGateway_Capture_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"id":"ch_late","status":"succeeded"}`))
	}))
	defer srv.Close()

	gateway := payment.NewStripeGateway(config.PaymentConfig{
		BaseURL: srv.URL,
		Timeout: 50 * time.Millisecond,
	})

	result, err := gateway.Capture(context.Background(), 1000, commands.PaymentMethod{Reference: "tok_visa"})

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestStripeGateway_Capture_NonSucceededStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ch_pending","status":"pending"}`))
	}))
	defer srv.Close()

	gateway := payment.NewStripeGateway(config.PaymentConfig{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	})

	result, err := gateway.Capture(context.Background(), 1000, commands.PaymentMethod{Reference: "tok_visa"})

	require.NoError(t, err)
	assert.False(t, result.Succeeded())
}
