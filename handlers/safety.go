package handlers

import (
	"log"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-sentinel/db"
	"go-sentinel/processor"
)

// RunSafetyCheck triggers a full classification pass and returns the
// computed verdicts. Publish failures are per-user and already logged;
// they never fail this endpoint.
func RunSafetyCheck(c *gin.Context, firestoreClient *firestore.Client) {
	writer := &db.FirestoreStatusWriter{Client: firestoreClient}
	statuses, err := processor.RunSafetyPass(firestoreClient, writer)
	if err != nil {
		log.Printf("ERROR running safety pass: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Safety pass failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"statuses": statuses, "count": len(statuses)})
}

// GetSafetyStatus returns a user's published verdict. Until a verdict has
// been published the user displays as safe.
func GetSafetyStatus(c *gin.Context, firestoreClient *firestore.Client) {
	email := c.Param("email")

	data, err := db.GetSafetyStatus(firestoreClient, email)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			c.JSON(http.StatusOK, gin.H{"safe": true, "verdict": "unknown"})
			return
		}
		log.Printf("ERROR fetching safety status for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve safety status"})
		return
	}

	c.JSON(http.StatusOK, data)
}
