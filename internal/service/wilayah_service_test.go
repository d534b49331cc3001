package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Kryx404/gohealth/internal/config"
)

func TestWilayahLookup(t *testing.T) {
	var gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"code":"32","name":"Jawa Barat"}]}`))
	}))
	defer upstream.Close()

	svc := NewWilayahService(config.WilayahConfig{BaseURL: upstream.URL}, nil, zap.NewNop())
	ctx := context.Background()

	body, err := svc.Lookup(ctx, "provinces", "")
	require.NoError(t, err)
	assert.Equal(t, "/provinces.json", gotPath)
	assert.Contains(t, string(body), "Jawa Barat")

	_, err = svc.Lookup(ctx, "regencies", "32")
	require.NoError(t, err)
	assert.Equal(t, "/regencies/32.json", gotPath)
}

func TestWilayahLookupValidation(t *testing.T) {
	svc := NewWilayahService(config.WilayahConfig{BaseURL: "http://unused"}, nil, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name       string
		lookupType string
		code       string
	}{
		{"unknown type", "countries", ""},
		{"regencies without code", "regencies", ""},
		{"districts without code", "districts", ""},
		{"villages without code", "villages", ""},
		{"empty type", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Lookup(ctx, tt.lookupType, tt.code)
			require.Error(t, err)
			assert.Equal(t, "Invalid parameters", err.Error())
		})
	}
}

func TestWilayahLookupUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer upstream.Close()

	svc := NewWilayahService(config.WilayahConfig{BaseURL: upstream.URL}, nil, zap.NewNop())
	_, err := svc.Lookup(context.Background(), "provinces", "")
	assert.Error(t, err)
}
