package proximity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"go-sentinel/types"
)

func TestDegreeDistanceIdenticalCoordinatesIsZero(t *testing.T) {
	require.Equal(t, 0.0, DegreeDistance(11.0175, 76.3104, 11.0175, 76.3104))
	require.Equal(t, 0.0, DegreeDistance(0, 0, 0, 0))
}

func TestClassifyUserOnHighRiskPointIsUnsafe(t *testing.T) {
	points := []types.HeatmapPoint{
		{Lat: 11.0175, Long: 76.3104, Prediction: 1},
	}
	users := []types.UserLocation{
		{ID: "close@example.com", Latitude: 11.0175, Longitude: 76.3104},
		{ID: "far@example.com", Latitude: 12.0, Longitude: 77.0},
	}

	statuses := Classify(users, points)
	require.Len(t, statuses, 2)

	closeBy := statuses["close@example.com"]
	require.False(t, closeBy.Safe)
	require.Equal(t, 0.0, closeBy.MinDistance)

	far := statuses["far@example.com"]
	require.True(t, far.Safe)
	require.Greater(t, far.MinDistance, 1.0) // ~150 km away, well above threshold
}

func TestClassifyLowRiskPointNeverTriggersDanger(t *testing.T) {
	points := []types.HeatmapPoint{
		{Lat: 11.0175, Long: 76.3104, Prediction: 0},
	}
	users := []types.UserLocation{
		{ID: "user@example.com", Latitude: 11.0175, Longitude: 76.3104},
	}

	statuses := Classify(users, points)
	st := statuses["user@example.com"]
	require.True(t, st.Safe)
	// Low-risk points do not participate at all, not even in the minimum.
	require.True(t, math.IsInf(st.MinDistance, 1))
}

func TestClassifyEmptyUsers(t *testing.T) {
	points := []types.HeatmapPoint{
		{Lat: 11.0175, Long: 76.3104, Prediction: 1},
	}
	statuses := Classify(nil, points)
	require.Empty(t, statuses)
}

func TestClassifyEmptyPointsLeavesEveryoneSafe(t *testing.T) {
	users := []types.UserLocation{
		{ID: "a@example.com", Latitude: 11.0175, Longitude: 76.3104},
		{ID: "b@example.com", Latitude: 12.0, Longitude: 77.0},
	}

	statuses := Classify(users, nil)
	require.Len(t, statuses, 2)
	for _, st := range statuses {
		require.True(t, st.Safe)
		require.True(t, math.IsInf(st.MinDistance, 1))
	}
}

func TestClassifySkipsNonFinitePoints(t *testing.T) {
	points := []types.HeatmapPoint{
		{Lat: math.NaN(), Long: 76.3104, Prediction: 1},
		{Lat: 11.0175, Long: math.Inf(1), Prediction: 1},
	}
	users := []types.UserLocation{
		{ID: "user@example.com", Latitude: 11.0175, Longitude: 76.3104},
	}

	statuses := Classify(users, points)
	st := statuses["user@example.com"]
	require.True(t, st.Safe)
	require.True(t, math.IsInf(st.MinDistance, 1))
}

func TestClassifyShortCircuitsOnFirstDangerPoint(t *testing.T) {
	// The far point is scanned first; the triggering point settles the
	// verdict and records the minimum seen so far.
	points := []types.HeatmapPoint{
		{Lat: 12.0, Long: 77.0, Prediction: 1},
		{Lat: 11.0175, Long: 76.3104, Prediction: 1},
	}
	users := []types.UserLocation{
		{ID: "user@example.com", Latitude: 11.0175, Longitude: 76.3104},
	}

	statuses := Classify(users, points)
	st := statuses["user@example.com"]
	require.False(t, st.Safe)
	require.Equal(t, 0.0, st.MinDistance)
}

func TestClassifyTracksMinimumAcrossSafeDistances(t *testing.T) {
	// Two high-risk points, both far away: user stays safe and the
	// reported minimum is the nearer of the two.
	points := []types.HeatmapPoint{
		{Lat: 12.0, Long: 77.0, Prediction: 1},
		{Lat: 11.1, Long: 76.4, Prediction: 1},
	}
	users := []types.UserLocation{
		{ID: "user@example.com", Latitude: 11.0175, Longitude: 76.3104},
	}

	statuses := Classify(users, points)
	st := statuses["user@example.com"]
	require.True(t, st.Safe)

	nearer := DegreeDistance(11.0175, 76.3104, 11.1, 76.4)
	require.Equal(t, nearer, st.MinDistance)
	require.Greater(t, st.MinDistance, 0.00007)
}
