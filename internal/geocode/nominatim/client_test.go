package nominatim_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayudrishti/vayudrishti/internal/geocode"
	"github.com/vayudrishti/vayudrishti/internal/geocode/nominatim"
)

func TestClient_Geocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "Delhi, India", r.URL.Query().Get("q"))
		assert.Equal(t, "en", r.Header.Get("Accept-Language"))
		_, _ = w.Write([]byte(`[{"lat":"28.6139","lon":"77.2090","display_name":"Delhi, India"}]`))
	}))
	defer server.Close()

	client := nominatim.NewClient(nominatim.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	place, err := client.Geocode(context.Background(), "Delhi, India")
	require.NoError(t, err)

	assert.InDelta(t, 28.6139, place.Lat, 0.0001)
	assert.InDelta(t, 77.209, place.Lon, 0.0001)
	assert.Equal(t, "Delhi, India", place.DisplayName)
}

func TestClient_Geocode_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := nominatim.NewClient(nominatim.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.Geocode(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, geocode.ErrNotFound)
}
