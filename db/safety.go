package db

import (
	"context"
	"fmt"
	"math"
	"time"

	"cloud.google.com/go/firestore"

	"go-sentinel/types"
)

// FirestoreStatusWriter persists safety verdicts under
// userLocation/{email}/situation/SafeOrNot. It satisfies the publisher's
// StatusWriter interface.
type FirestoreStatusWriter struct {
	Client *firestore.Client
}

func (w *FirestoreStatusWriter) WriteSafetyStatus(ctx context.Context, emailKey string, st types.SafetyStatus) error {
	data := map[string]interface{}{
		"safe":        st.Safe,
		"evaluatedAt": time.Now().UTC().Format(time.RFC3339),
	}
	// Firestore rejects non-finite doubles; the distance is stored only
	// when a qualifying point existed.
	if !math.IsNaN(st.MinDistance) && !math.IsInf(st.MinDistance, 0) {
		data["minDistance"] = st.MinDistance
	}

	docRef := w.Client.Collection(userLocationCollection).Doc(emailKey).
		Collection(situationSubcollection).Doc(safetyStatusDoc)
	// Merge keeps unrelated fields on the situation doc intact.
	if _, err := docRef.Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to write safety status for %s: %w", emailKey, err)
	}
	return nil
}

// GetSafetyStatus reads the published verdict for a user. Callers should
// treat a NotFound error as "no verdict yet", which displays as safe.
func GetSafetyStatus(client *firestore.Client, emailKey string) (map[string]interface{}, error) {
	ctx := context.Background()
	doc, err := client.Collection(userLocationCollection).Doc(emailKey).
		Collection(situationSubcollection).Doc(safetyStatusDoc).Get(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Data(), nil
}
