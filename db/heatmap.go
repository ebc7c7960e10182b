package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"go-sentinel/types"
)

// GetHeatmapSnapshot returns the raw heatmap documents for the active
// hazard scenario. Snapshots imported from the mobile pipeline can carry
// extended-JSON numeric wrappers, so documents are decoded through the
// coercion path rather than DataTo; a document that fails to decode is
// skipped, never fatal.
func GetHeatmapSnapshot(client *firestore.Client) ([]types.RawHeatmapPoint, error) {
	ctx := context.Background()
	var points []types.RawHeatmapPoint

	iter := client.Collection(heatmapCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating heatmap collection: %w", err)
		}

		encoded, err := json.Marshal(doc.Data())
		if err != nil {
			log.Printf("Warning: skipping heatmap doc %s: %v", doc.Ref.ID, err)
			continue
		}
		var point types.RawHeatmapPoint
		if err := json.Unmarshal(encoded, &point); err != nil {
			log.Printf("Warning: skipping heatmap doc %s: %v", doc.Ref.ID, err)
			continue
		}
		points = append(points, point)
	}

	return points, nil
}

// SaveHeatmapSnapshot replaces the heatmap collection with the given points
// using BulkWriter. Each delivery is a full replacement snapshot, not a
// delta, so the previous documents are deleted first.
func SaveHeatmapSnapshot(client *firestore.Client, points []types.HeatmapPoint) error {
	ctx := context.Background()
	bw := client.BulkWriter(ctx)
	collectionRef := client.Collection(heatmapCollection)

	existing, err := collectionRef.Documents(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("error listing existing heatmap docs: %w", err)
	}
	for _, doc := range existing {
		if _, err := bw.Delete(doc.Ref); err != nil {
			log.Printf("Error enqueueing delete for heatmap doc %s: %v", doc.Ref.ID, err)
		}
	}

	savedCount := 0
	for i := range points {
		docRef := collectionRef.Doc(fmt.Sprintf("point_%d", i))
		if _, err := bw.Set(docRef, points[i]); err != nil {
			log.Printf("Error enqueueing heatmap point %d for save: %v", i, err)
		} else {
			savedCount++
		}
	}

	// Flush sends any remaining writes and waits for them to complete.
	bw.Flush()
	log.Printf("Heatmap snapshot saved: %d points enqueued.", savedCount)
	return nil
}
