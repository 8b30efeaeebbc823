package shipping

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"shophub/internal/pkg/config"
	"shophub/internal/pkg/errs"
)

var ErrAddressNotGeocoded = errs.New("address could not be geocoded")

type Coordinates struct {
	Lat float64
	Lon float64
}

// Geocoder resolves a street address to coordinates through a
// Nominatim-compatible search API.
type Geocoder struct {
	baseURL string
	userTag string
	client  *http.Client
}

func NewGeocoder(cfg config.ShippingConfig) *Geocoder {
	return &Geocoder{
		baseURL: strings.TrimSuffix(cfg.GeocodeBaseURL, "/"),
		userTag: cfg.GeocodeUserTag,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *Geocoder) Geocode(ctx context.Context, query string) (*Coordinates, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build geocode request")
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", g.userTag)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "geocode request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.Newf("geocode returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errs.Wrap(err, "failed to read geocode response")
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, errs.Wrap(err, "failed to decode geocode response")
	}
	if len(results) == 0 {
		return nil, ErrAddressNotGeocoded
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, errs.Wrap(err, "invalid latitude in geocode response")
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, errs.Wrap(err, "invalid longitude in geocode response")
	}

	return &Coordinates{Lat: lat, Lon: lon}, nil
}
