package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"go-sentinel/db"
	"go-sentinel/types"
)

type submitReportRequest struct {
	Description string         `json:"description" binding:"required"`
	Severity    types.Severity `json:"severity" binding:"required"`
}

// SubmitReport creates a new incident report for a user.
func SubmitReport(c *gin.Context, firestoreClient *firestore.Client) {
	email := c.Param("email")

	var req submitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !types.ValidSeverity(req.Severity) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Severity must be low, medium, high or critical"})
		return
	}

	report := types.IncidentReport{
		Description: req.Description,
		Severity:    req.Severity,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Status:      types.ReportPending,
	}

	reportNumber, err := db.SaveReport(firestoreClient, email, report)
	if err != nil {
		log.Printf("ERROR saving report for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reportNumber": reportNumber})
}

// ListReports returns a user's reports, newest first.
func ListReports(c *gin.Context, firestoreClient *firestore.Client) {
	email := c.Param("email")

	reports, err := db.GetReports(firestoreClient, email)
	if err != nil {
		log.Printf("ERROR fetching reports for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reports"})
		return
	}
	if reports == nil {
		reports = []types.IncidentReport{}
	}

	c.JSON(http.StatusOK, reports)
}

// DeleteReport removes one report and refreshes the report metadata.
func DeleteReport(c *gin.Context, firestoreClient *firestore.Client) {
	email := c.Param("email")

	reportNumber, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Report number must be an integer"})
		return
	}

	if err := db.DeleteReport(firestoreClient, email, reportNumber); err != nil {
		log.Printf("ERROR deleting report %d for %s: %v", reportNumber, email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": reportNumber})
}
