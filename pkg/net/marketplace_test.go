package net

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func sampleRequest() *MultipartRequest {
	return &MultipartRequest{
		Path: "/ads/create",
		Fields: []FormField{
			{Name: "title", Value: "Toyota Hilux 2015"},
			{Name: "price", Value: "25000000"},
			{Name: "ownerUid", Value: "u-1"},
		},
		Files: []FileData{
			{Field: "images", Filename: "front.jpg", ContentType: "image/jpeg", Data: []byte("front")},
			{Field: "images", Filename: "back.jpg", ContentType: "image/jpeg", Data: []byte("back")},
			{Field: "video", Filename: "walkaround.mp4", ContentType: "video/mp4", Data: []byte("video")},
		},
	}
}

func TestCreateAd_SendsMultipart(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/ads/create", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}

		assert.Equal(t, "Toyota Hilux 2015", r.FormValue("title"))
		assert.Equal(t, "25000000", r.FormValue("price"))

		images := r.MultipartForm.File["images"]
		if !assert.Len(t, images, 2) {
			return
		}
		assert.Equal(t, "front.jpg", images[0].Filename)
		assert.Equal(t, "back.jpg", images[1].Filename)

		videos := r.MultipartForm.File["video"]
		if !assert.Len(t, videos, 1) {
			return
		}
		f, err := videos[0].Open()
		if !assert.NoError(t, err) {
			return
		}
		data, _ := io.ReadAll(f)
		assert.Equal(t, "video", string(data))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewMarketplaceClient(ClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, zaptest.NewLogger(t))

	err := client.CreateAd(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCreateAd_ServerMessage(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantMessage string
	}{
		{"json message", http.StatusBadRequest, "application/json", `{"message":"Title already used"}`, "Title already used"},
		{"json without message", http.StatusUnprocessableEntity, "application/json", `{}`, ""},
		{"plain text", http.StatusBadRequest, "text/plain", "nope", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewMarketplaceClient(ClientConfig{BaseURL: srv.URL}, nil)
			err := client.CreateAd(context.Background(), sampleRequest())

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestCreateAd_BreakerOpensOnServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewMarketplaceClient(ClientConfig{
		BaseURL:         srv.URL,
		BreakerFailures: 2,
		BreakerCooldown: time.Minute,
	}, nil)

	for i := 0; i < 2; i++ {
		var apiErr *APIError
		require.ErrorAs(t, client.CreateAd(context.Background(), sampleRequest()), &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	}

	err := client.CreateAd(context.Background(), sampleRequest())

	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCreateAd_ClientErrorsDoNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewMarketplaceClient(ClientConfig{BaseURL: srv.URL, BreakerFailures: 1}, nil)

	for i := 0; i < 3; i++ {
		err := client.CreateAd(context.Background(), sampleRequest())
		assert.NotErrorIs(t, err, ErrCircuitOpen)
	}
}

func TestMultipartRequest_Get(t *testing.T) {
	req := sampleRequest()

	v, ok := req.Get("price")
	assert.True(t, ok)
	assert.Equal(t, "25000000", v)

	_, ok = req.Get("condition")
	assert.False(t, ok)
}
