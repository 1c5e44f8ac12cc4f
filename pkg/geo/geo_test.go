package geo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"dayhub-backend/pkg/geo"

	"github.com/stretchr/testify/assert"
)

func TestValidZip(t *testing.T) {
	assert.True(t, geo.ValidZip("10001"))
	assert.True(t, geo.ValidZip("00501"))
	assert.False(t, geo.ValidZip("1234"))
	assert.False(t, geo.ValidZip("123456"))
	assert.False(t, geo.ValidZip("1000a"))
	assert.False(t, geo.ValidZip("10001-1234"))
	assert.False(t, geo.ValidZip(""))
}

func TestHaversineMiles(t *testing.T) {
	// Empire State Building to LA City Hall, roughly 2445 miles
	d := geo.HaversineMiles(40.7484, -73.9857, 34.0536, -118.2430)
	assert.InDelta(t, 2445, d, 15)

	// Zero distance for identical points
	assert.InDelta(t, 0, geo.HaversineMiles(40.75, -73.99, 40.75, -73.99), 0.001)
}

func TestHTTPGeocoder(t *testing.T) {
	t.Run("Should parse a Zippopotam response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/10001", r.URL.Path)
			w.Write([]byte(`{"places":[{"latitude":"40.7484","longitude":"-73.9967"}]}`))
		}))
		defer srv.Close()

		g := geo.NewHTTPGeocoder(srv.URL, nil)
		coords, err := g.Geocode(context.Background(), "10001")
		assert.NoError(t, err)
		assert.InDelta(t, 40.7484, coords.Lat, 0.0001)
		assert.InDelta(t, -73.9967, coords.Lng, 0.0001)
	})

	t.Run("Should fail on unknown ZIPs", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		g := geo.NewHTTPGeocoder(srv.URL, nil)
		_, err := g.Geocode(context.Background(), "99999")
		assert.Error(t, err)
	})

	t.Run("Should reject malformed ZIPs without a request", func(t *testing.T) {
		g := geo.NewHTTPGeocoder("http://127.0.0.1:1", nil)
		_, err := g.Geocode(context.Background(), "abcde")
		assert.Error(t, err)
	})

	t.Run("Should fail on responses without places", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"places":[]}`))
		}))
		defer srv.Close()

		g := geo.NewHTTPGeocoder(srv.URL, nil)
		_, err := g.Geocode(context.Background(), "10001")
		assert.Error(t, err)
	})
}
