package cronjobs

import (
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/robfig/cron/v3"

	"go-sentinel/db"
	"go-sentinel/processor"
)

// Users whose presence heartbeat is older than this are considered gone.
const presenceTTL = 15 * time.Minute

func InitCronJobs(firestoreClient *firestore.Client) {
	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	// Safety classification pass: every 2 minutes
	_, err := c.AddFunc("*/2 * * * *", func() {
		log.Println("\nCronJob: Safety Classification Pass Running")
		writer := &db.FirestoreStatusWriter{Client: firestoreClient}
		if _, err := processor.RunSafetyPass(firestoreClient, writer); err != nil {
			log.Println("Error running safety pass:", err)
		}
	})
	if err != nil {
		log.Println("Error scheduling Safety Classification Pass", err)
	}

	// Stale presence sweep: every 10 minutes at the 5 minute mark
	_, err = c.AddFunc("5-59/10 * * * *", func() {
		log.Println("\nCronJob: Stale Presence Sweep Running")
		swept, err := db.SweepStalePresence(firestoreClient, presenceTTL)
		if err != nil {
			log.Println("Error sweeping stale presence:", err)
			return
		}
		log.Printf("Marked %d users offline", swept)
	})
	if err != nil {
		log.Println("Error scheduling Stale Presence Sweep:", err)
	}

	c.Start()
}
