package qrsvc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/qr/generate", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "QR-0A1B2C3D", payload["qr_code"])
		assert.Equal(t, "venue-1", payload["venue_id"])
		assert.Equal(t, "12.75", payload["amount"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":       true,
			"qr_image_data": "data:image/png;base64,abc",
			"message":       "ok",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	result, err := client.Generate(context.Background(), "QR-0A1B2C3D", "venue-1", decimal.RequireFromString("12.75"))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "data:image/png;base64,abc", result.ImageData)
}

func TestClientVerify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/qr/validate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"valid":  false,
			"reason": "unknown code",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	result, err := client.Verify(context.Background(), "QR-DEADBEEF")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "unknown code", result.Reason)
}

func TestClientSurfacesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Generate(context.Background(), "QR-0A1B2C3D", "venue-1", decimal.NewFromInt(5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClientHonoursTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, 20*time.Millisecond)
	_, err := client.Verify(context.Background(), "QR-0A1B2C3D")
	require.Error(t, err)
}
