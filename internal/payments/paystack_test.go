package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaystackClient_Initialize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_abc", r.Header.Get("Authorization"))

		var body struct {
			Email  string `json:"email"`
			Amount int64  `json:"amount"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ben@example.com", body.Email)
		assert.Equal(t, int64(500000), body.Amount)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code": "abc123",
				"reference": "ref-001"
			}
		}`))
	}))
	defer srv.Close()

	client := NewPaystackClient(srv.URL, "sk_test_abc")
	checkout, err := client.Initialize(context.Background(), "ben@example.com", 500000)

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc123", checkout.AuthorizationURL)
	assert.Equal(t, "abc123", checkout.AccessCode)
	assert.Equal(t, "ref-001", checkout.Reference)
}

func TestPaystackClient_VerifySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transaction/verify/ref-001", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {
				"status": "success",
				"amount": 500000,
				"reference": "ref-001"
			}
		}`))
	}))
	defer srv.Close()

	client := NewPaystackClient(srv.URL, "sk_test_abc")
	verification, err := client.Verify(context.Background(), "ref-001")

	require.NoError(t, err)
	assert.True(t, verification.Success)
	assert.Equal(t, int64(500000), verification.Amount)
	assert.Equal(t, "ref-001", verification.Reference)
}

func TestPaystackClient_VerifyFailedTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {
				"status": "abandoned",
				"amount": 500000,
				"reference": "ref-002"
			}
		}`))
	}))
	defer srv.Close()

	client := NewPaystackClient(srv.URL, "sk_test_abc")
	verification, err := client.Verify(context.Background(), "ref-002")

	require.NoError(t, err)
	assert.False(t, verification.Success)
}

func TestPaystackClient_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status": false, "message": "Invalid key"}`))
	}))
	defer srv.Close()

	client := NewPaystackClient(srv.URL, "sk_test_bad")
	_, err := client.Initialize(context.Background(), "ben@example.com", 500000)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid key")
}
