package routes

import (
	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"go-sentinel/handlers"
)

func SetupRouter(firestoreClient *firestore.Client, openaiClient *openai.Client) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to Go Sentinel!",
		})
	})

	// api routes, Firestore client injected into each handler
	api := r.Group("/api/sentinel")
	{
		api.GET("/heatmap", func(c *gin.Context) {
			handlers.GetHeatmap(c, firestoreClient)
		})
		api.POST("/heatmap/import", func(c *gin.Context) {
			handlers.ImportHeatmap(c, firestoreClient)
		})
		api.POST("/heatmap/refresh", func(c *gin.Context) {
			handlers.RefreshHeatmap(c, firestoreClient)
		})

		api.POST("/safety/run", func(c *gin.Context) {
			handlers.RunSafetyCheck(c, firestoreClient)
		})
		api.GET("/safety/:email", func(c *gin.Context) {
			handlers.GetSafetyStatus(c, firestoreClient)
		})

		api.POST("/reports/:email", func(c *gin.Context) {
			handlers.SubmitReport(c, firestoreClient)
		})
		api.GET("/reports/:email", func(c *gin.Context) {
			handlers.ListReports(c, firestoreClient)
		})
		api.DELETE("/reports/:email/:number", func(c *gin.Context) {
			handlers.DeleteReport(c, firestoreClient)
		})

		api.POST("/sos", func(c *gin.Context) {
			handlers.SendSOSAlert(c, firestoreClient)
		})
		api.GET("/sos/briefing", func(c *gin.Context) {
			handlers.GetSOSBriefing(c, firestoreClient, openaiClient)
		})
	}

	return r
}
