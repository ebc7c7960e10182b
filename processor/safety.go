package processor

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"

	"go-sentinel/db"
	"go-sentinel/heatmap"
	"go-sentinel/proximity"
	"go-sentinel/publisher"
	"go-sentinel/types"
)

// RunSafetyPass evaluates every online user against the current hazard
// heatmap and publishes the resulting verdicts. A pass is a pure transform
// over one snapshot; a newer pass simply overwrites the previous verdicts,
// so in-flight publishes from a superseded pass are left to finish.
func RunSafetyPass(firestoreClient *firestore.Client, writer publisher.StatusWriter) (map[string]types.SafetyStatus, error) {
	// Helper function to append a formatted log message.
	var logBuilder strings.Builder
	addLog := func(format string, args ...interface{}) {
		logBuilder.WriteString(fmt.Sprintf(format, args...))
		logBuilder.WriteString("\n")
	}

	raw, err := db.GetHeatmapSnapshot(firestoreClient)
	if err != nil {
		addLog("Error fetching heatmap snapshot: %v", err)
		log.Println(logBuilder.String())
		return nil, err
	}
	points := heatmap.CoercePoints(raw)
	addLog("Heatmap snapshot: %d raw records, %d valid points", len(raw), len(points))

	users, err := db.GetOnlineUserLocations(firestoreClient)
	if err != nil {
		addLog("Error fetching online users: %v", err)
		log.Println(logBuilder.String())
		return nil, err
	}
	addLog("Online users: %d", len(users))

	statuses := proximity.Classify(users, points)

	inDanger := 0
	for _, st := range statuses {
		if !st.Safe {
			inDanger++
		}
	}
	addLog("Classified %d users, %d in danger", len(statuses), inDanger)

	results := publisher.PublishStatuses(context.Background(), writer, statuses)
	failed := publisher.Failures(results)
	addLog("Published %d verdicts, %d failures", len(results)-len(failed), len(failed))
	for _, f := range failed {
		addLog("  publish failed for %s: %v", f.UserID, f.Err)
	}

	log.Println(logBuilder.String())
	return statuses, nil
}
