package heatmap

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"go-sentinel/types"
)

func floatPtr(f float64) *float64 { return &f }

func extNum(f float64) *types.ExtendedNumber {
	n := types.ExtendedNumber(f)
	return &n
}

func TestIntensityBaseValues(t *testing.T) {
	require.Equal(t, 0.8, Intensity(1, nil))
	require.Equal(t, 0.2, Intensity(0, nil))
}

func TestIntensityMetadataModifiers(t *testing.T) {
	md := &types.HazardMetadata{
		WindSpeed:   floatPtr(10),
		Temperature: floatPtr(35),
		Humidity:    floatPtr(50),
	}
	// modifier = 1.1 * 1.2 * 0.75 = 0.99
	require.InDelta(t, 0.8*0.99, Intensity(1, md), 1e-9)

	// Absent fields contribute no modifier.
	windOnly := &types.HazardMetadata{WindSpeed: floatPtr(20)}
	require.InDelta(t, 0.2*1.2, Intensity(0, windOnly), 1e-9)
}

func TestIntensityCappedAtOne(t *testing.T) {
	md := &types.HazardMetadata{
		WindSpeed:   floatPtr(100),
		Temperature: floatPtr(75),
	}
	require.Equal(t, 1.0, Intensity(1, md))
	require.LessOrEqual(t, Intensity(0, md), 1.0)
}

func TestIntensityHasNoLowerClamp(t *testing.T) {
	// humidity 300 gives modifier 1 - 1.5 = -0.5
	md := &types.HazardMetadata{Humidity: floatPtr(300)}
	require.InDelta(t, -0.4, Intensity(1, md), 1e-9)
}

func TestRenderIntensityStaysWithinJitterBounds(t *testing.T) {
	md := &types.HazardMetadata{WindSpeed: floatPtr(10)}
	canonical := Intensity(1, md)
	for i := 0; i < 200; i++ {
		rendered := RenderIntensity(1, md)
		require.GreaterOrEqual(t, rendered, canonical*0.9)
		require.LessOrEqual(t, rendered, canonical*1.1)
	}
}

func TestCoercePointsDiscardsInvalidRecords(t *testing.T) {
	raw := []types.RawHeatmapPoint{
		{Lat: extNum(11.0175), Long: extNum(76.3104), Prediction: extNum(1)},
		{Lat: extNum(math.NaN()), Long: extNum(76.3104), Prediction: extNum(1)},
		{Lat: extNum(11.0175), Long: extNum(math.Inf(1)), Prediction: extNum(0)},
		{Lat: extNum(11.0175), Long: extNum(76.3104), Prediction: extNum(2)},
		{Lat: extNum(12.0), Long: extNum(77.0), Prediction: extNum(0)},
	}

	points := CoercePoints(raw)
	require.Len(t, points, 2)
	require.Equal(t, 1, points[0].Prediction)
	require.Equal(t, 11.0175, points[0].Lat)
	require.Equal(t, 0, points[1].Prediction)
}

func TestCoercePointsDiscardsNullAndAbsentCoordinates(t *testing.T) {
	// Records arriving with null or missing coordinates must be dropped,
	// not coerced to a point at the origin.
	body := `[
		{"lat": null, "lon": 76.3104, "prediction": 1},
		{"prediction": 1},
		{"lat": 11.0175, "lon": 76.3104},
		{"lat": 11.0175, "lon": 76.3104, "prediction": 1}
	]`

	raw, err := DecodeSnapshot([]byte(body))
	require.NoError(t, err)
	require.Len(t, raw, 4)

	points := CoercePoints(raw)
	require.Len(t, points, 1)
	require.Equal(t, 11.0175, points[0].Lat)
	require.Equal(t, 76.3104, points[0].Long)
	require.Equal(t, 1, points[0].Prediction)
}

func TestDecodeSnapshotSkipsMalformedRecords(t *testing.T) {
	body := `[
		{"lat": 11.0175, "lon": 76.3104, "prediction": 1},
		"not an object",
		{"lat": {"$numberDouble": "12.0"}, "lon": {"$numberDouble": "77.0"}, "prediction": {"$numberInt": "0"}}
	]`

	raw, err := DecodeSnapshot([]byte(body))
	require.NoError(t, err)
	require.Len(t, raw, 2)
	require.Equal(t, 12.0, raw[1].Lat.Float64())

	_, err = DecodeSnapshot([]byte(`{"not": "an array"}`))
	require.Error(t, err)
}

func TestBoundingRect(t *testing.T) {
	require.True(t, BoundingRect(nil).IsEmpty())

	points := []types.HeatmapPoint{
		{Lat: 11.0175, Long: 76.3104, Prediction: 1},
		{Lat: 12.0, Long: 77.0, Prediction: 0},
	}
	rect := BoundingRect(points)
	require.False(t, rect.IsEmpty())
	require.InDelta(t, 11.0175, rect.Lo().Lat.Degrees(), 1e-6)
	require.InDelta(t, 12.0, rect.Hi().Lat.Degrees(), 1e-6)
	require.InDelta(t, 76.3104, rect.Lo().Lng.Degrees(), 1e-6)
	require.InDelta(t, 77.0, rect.Hi().Lng.Degrees(), 1e-6)
}

func TestHazardMetadataJSONRoundTrip(t *testing.T) {
	in := `{"windSpeed": 10, "humidity": 50}`
	var md types.HazardMetadata
	require.NoError(t, json.Unmarshal([]byte(in), &md))
	require.NotNil(t, md.WindSpeed)
	require.Nil(t, md.Temperature)
	require.NotNil(t, md.Humidity)
}
