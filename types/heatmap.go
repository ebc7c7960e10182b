package types

// RawHeatmapPoint is a heatmap document exactly as delivered by the snapshot
// feed, before numeric coercion. Lat, Long and Prediction may be plain
// numbers or extended-JSON wrappers depending on which pipeline exported the
// snapshot. A nil field means the key was absent or null in the source
// record; coercion discards such records.
type RawHeatmapPoint struct {
	Lat        *ExtendedNumber `json:"lat"`
	Long       *ExtendedNumber `json:"lon"`
	Prediction *ExtendedNumber `json:"prediction"`
	Metadata   *HazardMetadata `json:"metadata,omitempty"`
}

// HeatmapPoint is a coerced, validated hazard sample. Lat/Long are finite
// and Prediction is 0 or 1.
type HeatmapPoint struct {
	Lat        float64         `firestore:"lat" json:"lat"`
	Long       float64         `firestore:"lon" json:"lon"`
	Prediction int             `firestore:"prediction" json:"prediction"`
	Metadata   *HazardMetadata `firestore:"metadata,omitempty" json:"metadata,omitempty"`
}

// HazardMetadata carries optional environmental readings attached to a
// heatmap point. Nil fields were absent from the source record and
// contribute no intensity modifier.
type HazardMetadata struct {
	WindSpeed   *float64 `firestore:"windSpeed,omitempty" json:"windSpeed,omitempty"`
	Temperature *float64 `firestore:"temperature,omitempty" json:"temperature,omitempty"`
	Humidity    *float64 `firestore:"humidity,omitempty" json:"humidity,omitempty"`
}
