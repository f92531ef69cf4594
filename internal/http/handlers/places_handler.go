// README: Address suggestion handler; degrades to an empty list on upstream failure.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vikrant8989/Drop-Go/internal/maps"
	"github.com/vikrant8989/Drop-Go/internal/metrics"
	"github.com/vikrant8989/Drop-Go/internal/types"
)

// PlaceSearcher is the slice of the maps client this handler needs.
type PlaceSearcher interface {
	Search(ctx context.Context, query string, near *types.Point) ([]maps.Suggestion, error)
}

type PlacesHandler struct {
	places PlaceSearcher
	log    *zap.Logger
}

func NewPlacesHandler(places PlaceSearcher, log *zap.Logger) *PlacesHandler {
	return &PlacesHandler{places: places, log: log}
}

// Suggest serves the booking page's address autocomplete. A maps outage
// must never block the booking flow, so upstream errors come back as an
// empty suggestion list with an error note rather than a failure status.
func (h *PlacesHandler) Suggest(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		writeError(c, http.StatusBadRequest, "query is required")
		return
	}

	var near *types.Point
	if lat, err := strconv.ParseFloat(c.Query("latitude"), 64); err == nil {
		if lng, err := strconv.ParseFloat(c.Query("longitude"), 64); err == nil {
			near = &types.Point{Lat: lat, Lng: lng}
		}
	}

	suggestions, err := h.places.Search(c.Request.Context(), query, near)
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("places").Inc()
		h.log.Warn("place search failed", zap.Error(err), zap.String("query", query))
		c.JSON(http.StatusOK, gin.H{
			"suggestions": []maps.Suggestion{},
			"error":       "address suggestions are temporarily unavailable",
		})
		return
	}
	if suggestions == nil {
		suggestions = []maps.Suggestion{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
