package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"dayhub-backend/pkg/logger"
)

// Coordinates is a resolved ZIP centroid.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geocoder resolves a US ZIP code to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, zip string) (*Coordinates, error)
}

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// ValidZip reports whether s looks like a 5-digit US ZIP code.
func ValidZip(s string) bool {
	return zipPattern.MatchString(s)
}

const cacheTTL = 24 * time.Hour

// HTTPGeocoder resolves ZIP codes against a Zippopotam-style HTTP API
// (GET {base}/{zip} -> {"places":[{"latitude":"..","longitude":".."}]}).
// Results are cached in Redis for a day when a client is available.
type HTTPGeocoder struct {
	baseURL string
	client  *http.Client
	cache   *goredis.Client
}

func NewHTTPGeocoder(baseURL string, cache *goredis.Client) *HTTPGeocoder {
	return &HTTPGeocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		cache:   cache,
	}
}

type zippopotamResponse struct {
	Places []struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"places"`
}

func (g *HTTPGeocoder) Geocode(ctx context.Context, zip string) (*Coordinates, error) {
	if !ValidZip(zip) {
		return nil, fmt.Errorf("geocode: invalid zip %q", zip)
	}

	cacheKey := "geo:zip:" + zip
	if g.cache != nil {
		if raw, err := g.cache.Get(ctx, cacheKey).Result(); err == nil {
			var coords Coordinates
			if err := json.Unmarshal([]byte(raw), &coords); err == nil {
				return &coords, nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/"+zip, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: zip %s not found (status %d)", zip, resp.StatusCode)
	}

	var parsed zippopotamResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("geocode: bad response: %w", err)
	}
	if len(parsed.Places) == 0 {
		return nil, fmt.Errorf("geocode: zip %s has no places", zip)
	}

	lat, err := strconv.ParseFloat(parsed.Places[0].Latitude, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode: bad latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(parsed.Places[0].Longitude, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode: bad longitude: %w", err)
	}

	coords := &Coordinates{Lat: lat, Lng: lng}

	if g.cache != nil {
		if raw, err := json.Marshal(coords); err == nil {
			if err := g.cache.Set(ctx, cacheKey, raw, cacheTTL).Err(); err != nil && logger.Log != nil {
				logger.Log.Warn("geocode cache write failed", "zip", zip, "error", err)
			}
		}
	}

	return coords, nil
}
