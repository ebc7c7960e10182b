package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"go-sentinel/types"
)

// SaveSOSAlert stores a new SOS alert and returns its document ID.
func SaveSOSAlert(client *firestore.Client, alert types.SOSAlert) (string, error) {
	ctx := context.Background()

	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	if _, err := client.Collection(sosCollection).Doc(alert.ID).Set(ctx, alert); err != nil {
		return "", fmt.Errorf("failed to save SOS alert for %s: %w", alert.UserID, err)
	}

	log.Printf("Saved SOS alert %s for %s", alert.ID, alert.UserID)
	return alert.ID, nil
}

// GetActiveSOSAlerts retrieves every alert still marked active.
func GetActiveSOSAlerts(client *firestore.Client) ([]types.SOSAlert, error) {
	ctx := context.Background()
	var alerts []types.SOSAlert

	iter := client.Collection(sosCollection).
		Where("status", "==", string(types.SOSActive)).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating SOS alerts: %w", err)
		}

		var alert types.SOSAlert
		if err := doc.DataTo(&alert); err != nil {
			log.Printf("Warning: skipping SOS alert doc %s: %v", doc.Ref.ID, err)
			continue
		}
		alert.ID = doc.Ref.ID
		alerts = append(alerts, alert)
	}

	return alerts, nil
}
