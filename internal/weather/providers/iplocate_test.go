package providers

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

func TestIPLocator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "success", "lat": 59.33, "lon": 18.06}`))
	}))
	defer srv.Close()

	pos, err := NewIPLocator(srv.URL, "ua").CurrentPosition(context.Background(), weather.HighAccuracyAttempt)
	require.NoError(t, err)
	assert.Equal(t, 59.33, pos.Coordinate.Latitude)
	assert.Equal(t, 18.06, pos.Coordinate.Longitude)
	require.NotNil(t, pos.AccuracyMeters)
	assert.Equal(t, 5000.0, *pos.AccuracyMeters)
}

func TestIPLocatorFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "fail", "message": "private range"}`))
	}))
	defer srv.Close()

	_, err := NewIPLocator(srv.URL, "ua").CurrentPosition(context.Background(), weather.LowAccuracyAttempt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private range")
}

func TestTCPProbe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()

	probe := TCPProbe{Addr: addr, Timeout: time.Second}
	assert.True(t, probe.Online(context.Background()))

	require.NoError(t, ln.Close())
	assert.False(t, probe.Online(context.Background()))
}
