// README: Address suggestion lookups via the Google Maps Text Search API.
package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"github.com/vikrant8989/Drop-Go/internal/types"
)

// Suggestion is a simplified place result for the booking address picker.
type Suggestion struct {
	Title     string      `json:"title"`
	Address   string      `json:"address"`
	Position  types.Point `json:"position"`
	CityGuess string      `json:"cityGuess,omitempty"`
}

// PlacesService handles interactions with the Google Places API.
type PlacesService struct {
	client *maps.Client
	limit  int
}

// NewPlacesService creates a PlacesService with the given API key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client, limit: 5}, nil
}

// Search returns ranked place suggestions for a free-text query, biased
// toward the caller's coordinate when one is known.
func (s *PlacesService) Search(ctx context.Context, query string, near *types.Point) ([]Suggestion, error) {
	r := &maps.TextSearchRequest{
		Query:    query,
		Language: "en",
		Region:   "IN",
	}
	if near != nil {
		r.Location = &maps.LatLng{Lat: near.Lat, Lng: near.Lng}
		r.Radius = 50000
	}

	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var out []Suggestion
	for _, result := range resp.Results {
		out = append(out, Suggestion{
			Title:   result.Name,
			Address: result.FormattedAddress,
			Position: types.Point{
				Lat: result.Geometry.Location.Lat,
				Lng: result.Geometry.Location.Lng,
			},
			CityGuess: guessCity(result.FormattedAddress),
		})
		if len(out) >= s.limit {
			break
		}
	}
	return out, nil
}

// guessCity pulls a best-effort city name out of a formatted address:
// the third-from-last comma segment ("..., City, State PIN, Country"),
// stripped of any trailing postal code.
func guessCity(address string) string {
	parts := strings.Split(address, ",")
	if len(parts) < 3 {
		return ""
	}
	seg := strings.TrimSpace(parts[len(parts)-3])
	fields := strings.Fields(seg)
	if len(fields) == 0 {
		return ""
	}
	if isNumeric(fields[len(fields)-1]) {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
