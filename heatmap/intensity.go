package heatmap

import (
	"encoding/json"
	"log"
	"math"
	"math/rand"

	"go-sentinel/types"
)

const (
	highRiskBase = 0.8
	lowRiskBase  = 0.2
	maxIntensity = 1.0

	// Rendering jitter spread: the displayed value is the canonical
	// intensity times a uniform factor in [0.9, 1.1].
	jitterSpread = 0.1
)

// Intensity maps a binary risk prediction plus optional environmental
// metadata to the canonical intensity value. Each metadata factor applies
// only when the field is present.
func Intensity(prediction int, md *types.HazardMetadata) float64 {
	base := lowRiskBase
	if prediction == 1 {
		base = highRiskBase
	}

	modifier := 1.0
	if md != nil {
		if md.WindSpeed != nil {
			modifier *= 1 + *md.WindSpeed/100
		}
		if md.Temperature != nil {
			modifier *= 1 + (*md.Temperature-25)/50
		}
		if md.Humidity != nil {
			modifier *= 1 - *md.Humidity/200
		}
	}

	// Capped above at 1.0 only. A large humidity reading can drive the
	// product negative; see DESIGN.md before adding a floor here.
	return math.Min(maxIntensity, base*modifier)
}

// RenderIntensity is the display-only view of Intensity, perturbed by the
// jitter factor. Never use this for a stored decision.
func RenderIntensity(prediction int, md *types.HazardMetadata) float64 {
	jitter := 1 - jitterSpread + 2*jitterSpread*rand.Float64()
	return Intensity(prediction, md) * jitter
}

// CoercePoints converts raw snapshot records into validated points.
// Records with absent or null coordinates, coordinates that did not coerce
// to finite floats, or a prediction that is not exactly 0 or 1, are
// discarded.
func CoercePoints(raw []types.RawHeatmapPoint) []types.HeatmapPoint {
	points := make([]types.HeatmapPoint, 0, len(raw))
	for _, r := range raw {
		if r.Lat == nil || r.Long == nil || r.Prediction == nil {
			continue
		}
		if !r.Lat.IsFinite() || !r.Long.IsFinite() || !r.Prediction.IsFinite() {
			continue
		}
		prediction := r.Prediction.Float64()
		if prediction != 0 && prediction != 1 {
			continue
		}
		points = append(points, types.HeatmapPoint{
			Lat:        r.Lat.Float64(),
			Long:       r.Long.Float64(),
			Prediction: int(prediction),
			Metadata:   r.Metadata,
		})
	}
	return points
}

// DecodeSnapshot parses a JSON array of heatmap records, skipping individual
// records that fail to decode. A malformed record never fails the snapshot.
func DecodeSnapshot(data []byte) ([]types.RawHeatmapPoint, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, err
	}

	raw := make([]types.RawHeatmapPoint, 0, len(elements))
	for i, element := range elements {
		var point types.RawHeatmapPoint
		if err := json.Unmarshal(element, &point); err != nil {
			log.Printf("Warning: skipping malformed heatmap record %d: %v", i, err)
			continue
		}
		raw = append(raw, point)
	}
	return raw, nil
}
