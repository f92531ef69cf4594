// README: Shared value types used across modules.
package types

// ID is an opaque entity identifier (UUID string).
type ID string

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// IsZero reports whether the point carries no coordinate.
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}
