package handlers

import (
	"log"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"go-sentinel/db"
	"go-sentinel/geocode"
	"go-sentinel/summarization"
	"go-sentinel/types"
)

type sosRequest struct {
	UserID    string  `json:"userId" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

// SendSOSAlert records an SOS alert. Reverse geocoding is best-effort: a
// geocoding failure still files the alert, just without an address.
func SendSOSAlert(c *gin.Context, firestoreClient *firestore.Client) {
	var req sosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	alert := types.SOSAlert{
		UserID:    req.UserID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Location: types.GeoPoint{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		},
		Status: types.SOSActive,
	}

	address, err := geocode.ReverseGeocode(req.Latitude, req.Longitude)
	if err != nil {
		log.Printf("Warning: reverse geocode failed for SOS from %s: %v", req.UserID, err)
	} else {
		alert.Address = address
	}

	id, err := db.SaveSOSAlert(firestoreClient, alert)
	if err != nil {
		log.Printf("ERROR saving SOS alert for %s: %v", req.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save SOS alert"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "address": alert.Address})
}

// GetSOSBriefing returns an LLM-generated situation briefing over the
// active SOS alerts.
func GetSOSBriefing(c *gin.Context, firestoreClient *firestore.Client, openaiClient *openai.Client) {
	briefing, err := summarization.GenerateBriefing(c.Request.Context(), firestoreClient, openaiClient)
	if err != nil {
		log.Printf("ERROR generating SOS briefing: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate briefing"})
		return
	}
	if briefing == "" {
		c.JSON(http.StatusOK, gin.H{"briefing": "", "message": "No active SOS alerts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"briefing": briefing})
}
