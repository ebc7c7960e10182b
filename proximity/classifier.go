package proximity

import (
	"math"

	"go-sentinel/types"
)

const (
	earthRadiusKM = 6371.0

	// Coarse linear approximation: kilometers per degree of latitude.
	// Intentionally not a true projection.
	kmPerDegree = 111.0

	// dangerThreshold is in degree-equivalent units, roughly five meters.
	dangerThreshold = 0.00007
)

// Classify evaluates every user against the high-risk points of the current
// heatmap snapshot and returns one SafetyStatus per user, keyed by user ID.
// Bad data never raises: points with non-finite coordinates are skipped and
// an empty snapshot simply leaves everyone safe.
//
// The scan for a user stops at the first point strictly below the danger
// threshold; the minimum recorded up to that moment is the one reported.
func Classify(users []types.UserLocation, points []types.HeatmapPoint) map[string]types.SafetyStatus {
	statuses := make(map[string]types.SafetyStatus, len(users))

	for _, user := range users {
		minDistance := math.Inf(1)
		inDanger := false

		for _, point := range points {
			if !isFinite(point.Lat) || !isFinite(point.Long) {
				continue
			}
			if point.Prediction != 1 {
				continue
			}

			dist := DegreeDistance(user.Latitude, user.Longitude, point.Lat, point.Long)
			if dist < minDistance {
				minDistance = dist
			}
			if dist < dangerThreshold {
				inDanger = true
				break
			}
		}

		statuses[user.ID] = types.SafetyStatus{
			UserID:      user.ID,
			Safe:        !inDanger,
			MinDistance: minDistance,
		}
	}

	return statuses
}

// DegreeDistance is the haversine distance between two coordinates,
// converted from kilometers to degree-equivalent units.
func DegreeDistance(lat1, lon1, lat2, lon2 float64) float64 {
	return haversineDistance(lat1, lon1, lat2, lon2) / kmPerDegree
}

// haversineDistance calculates the great-circle distance in kilometers
// between two points specified in decimal degrees.
func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	radLat1 := lat1 * math.Pi / 180
	radLon1 := lon1 * math.Pi / 180
	radLat2 := lat2 * math.Pi / 180
	radLon2 := lon2 * math.Pi / 180

	deltaLat := radLat2 - radLat1
	deltaLon := radLon2 - radLon1

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(radLat1)*math.Cos(radLat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
