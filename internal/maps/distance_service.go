// README: Travel-distance lookups via the Google Distance Matrix API.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"github.com/vikrant8989/Drop-Go/internal/types"
)

// DistanceService resolves driving distance between two coordinates.
type DistanceService struct {
	client *maps.Client
}

// NewDistanceService creates a DistanceService with the given API key.
func NewDistanceService(apiKey string) (*DistanceService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &DistanceService{client: client}, nil
}

// DistanceKm returns the driving distance from origin to dest in kilometres.
// The API reports metres; the division by 1000 is the only conversion.
func (s *DistanceService) DistanceKm(ctx context.Context, origin, dest types.Point) (float64, error) {
	r := &maps.DistanceMatrixRequest{
		Origins:      []string{latLng(origin)},
		Destinations: []string{latLng(dest)},
		Mode:         maps.TravelModeDriving,
	}

	resp, err := s.client.DistanceMatrix(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("distance matrix error: %w", err)
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("no route found")
	}
	el := resp.Rows[0].Elements[0]
	if el.Status != "OK" {
		return 0, fmt.Errorf("distance matrix element status %s", el.Status)
	}
	return float64(el.Distance.Meters) / 1000.0, nil
}

func latLng(p types.Point) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}
