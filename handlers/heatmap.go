package handlers

import (
	"io"
	"log"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"go-sentinel/db"
	"go-sentinel/heatmap"
	"go-sentinel/mlmodel"
)

// GetHeatmap returns the coerced heatmap points with display intensities
// and the bounding rect for fitting the map camera.
func GetHeatmap(c *gin.Context, firestoreClient *firestore.Client) {
	raw, err := db.GetHeatmapSnapshot(firestoreClient)
	if err != nil {
		log.Printf("ERROR fetching heatmap snapshot: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve heatmap"})
		return
	}

	points := heatmap.CoercePoints(raw)
	rendered := make([]gin.H, 0, len(points))
	for _, p := range points {
		rendered = append(rendered, gin.H{
			"lat":        p.Lat,
			"lon":        p.Long,
			"prediction": p.Prediction,
			"intensity":  heatmap.RenderIntensity(p.Prediction, p.Metadata),
		})
	}

	resp := gin.H{
		"points": rendered,
		"count":  len(points),
	}
	if rect := heatmap.BoundingRect(points); !rect.IsEmpty() {
		resp["bounds"] = gin.H{
			"minLat": rect.Lo().Lat.Degrees(),
			"minLon": rect.Lo().Lng.Degrees(),
			"maxLat": rect.Hi().Lat.Degrees(),
			"maxLon": rect.Hi().Lng.Degrees(),
		}
	}

	c.JSON(http.StatusOK, resp)
}

// ImportHeatmap ingests a raw snapshot body (extended-JSON numeric wrappers
// tolerated) and replaces the stored heatmap with the valid records.
func ImportHeatmap(c *gin.Context, firestoreClient *firestore.Client) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	raw, err := heatmap.DecodeSnapshot(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body is not a JSON array of heatmap records"})
		return
	}
	points := heatmap.CoercePoints(raw)

	if err := db.SaveHeatmapSnapshot(firestoreClient, points); err != nil {
		log.Printf("ERROR saving heatmap snapshot: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save heatmap"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imported":  len(points),
		"discarded": len(raw) - len(points),
	})
}

type refreshRequest struct {
	Points []mlmodel.MLPoint `json:"points" binding:"required"`
}

// RefreshHeatmap sends sample coordinates to the hazard-risk model and
// stores the resulting predictions as the new snapshot.
func RefreshHeatmap(c *gin.Context, firestoreClient *firestore.Client) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	resp, err := mlmodel.CallModel(mlmodel.MLRequest{Points: req.Points})
	if err != nil {
		log.Printf("ERROR calling hazard model: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Hazard model call failed"})
		return
	}

	points, err := mlmodel.BuildPoints(req.Points, resp)
	if err != nil {
		log.Printf("ERROR building heatmap points: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if err := db.SaveHeatmapSnapshot(firestoreClient, points); err != nil {
		log.Printf("ERROR saving heatmap snapshot: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save heatmap"})
		return
	}

	highRisk := 0
	for _, p := range points {
		if p.Prediction == 1 {
			highRisk++
		}
	}
	c.JSON(http.StatusOK, gin.H{"saved": len(points), "highRisk": highRisk})
}
