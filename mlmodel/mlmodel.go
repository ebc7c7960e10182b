package mlmodel

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"go-sentinel/types"
)

// MLPoint is one sample handed to the hazard-risk model: a coordinate plus
// whatever environmental readings are available for it.
type MLPoint struct {
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	WindSpeed   *float64 `json:"windSpeed,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
}

type MLRequest struct {
	Points []MLPoint `json:"points"`
}

// MLResponse carries one risk score per input point, in input order.
type MLResponse struct {
	Predictions []float64 `json:"predictions"`
}

const defaultModelURL = "https://hazardmodel-165032778338.us-central1.run.app/predict/"

// riskCutoff converts the model's score into the binary prediction.
const riskCutoff = 0.5

func modelURL() string {
	if url := os.Getenv("HAZARD_MODEL_URL"); url != "" {
		return url
	}
	return defaultModelURL
}

func CallModel(inputs MLRequest) (MLResponse, error) {
	var mlResp MLResponse

	payloadBytes, err := json.Marshal(inputs)
	if err != nil {
		return mlResp, err
	}

	req, err := http.NewRequest(http.MethodPost, modelURL(), bytes.NewBuffer(payloadBytes))
	if err != nil {
		return mlResp, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return mlResp, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return mlResp, errors.New("hazard model returned status: " + resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(&mlResp); err != nil {
		return mlResp, err
	}

	return mlResp, nil
}

// BuildPoints zips model scores with their input samples into heatmap
// points. Returns an error when the model answered with a different number
// of scores than points sent.
func BuildPoints(inputs []MLPoint, resp MLResponse) ([]types.HeatmapPoint, error) {
	if len(resp.Predictions) != len(inputs) {
		return nil, errors.New("hazard model returned a mismatched number of predictions")
	}

	points := make([]types.HeatmapPoint, 0, len(inputs))
	for i, in := range inputs {
		prediction := 0
		if resp.Predictions[i] >= riskCutoff {
			prediction = 1
		}

		var md *types.HazardMetadata
		if in.WindSpeed != nil || in.Temperature != nil || in.Humidity != nil {
			md = &types.HazardMetadata{
				WindSpeed:   in.WindSpeed,
				Temperature: in.Temperature,
				Humidity:    in.Humidity,
			}
		}

		points = append(points, types.HeatmapPoint{
			Lat:        in.Lat,
			Long:       in.Lon,
			Prediction: prediction,
			Metadata:   md,
		})
	}
	return points, nil
}
