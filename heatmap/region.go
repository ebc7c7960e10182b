package heatmap

import (
	"github.com/golang/geo/s2"

	"go-sentinel/types"
)

// BoundingRect returns the smallest lat/lng rectangle covering every point
// in the snapshot, used to fit the map camera around the active hazard
// scenario. Empty input yields the empty rect.
func BoundingRect(points []types.HeatmapPoint) s2.Rect {
	rect := s2.EmptyRect()
	for _, p := range points {
		rect = rect.AddPoint(s2.LatLngFromDegrees(p.Lat, p.Long))
	}
	return rect
}
