package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-sentinel/types"
)

func reportsRef(client *firestore.Client, emailKey string) *firestore.CollectionRef {
	return client.Collection(userLocationCollection).Doc(emailKey).Collection(reportsSubcollection)
}

// SaveReport allocates the next report number and writes the report in one
// transaction, so concurrent submissions from the same user cannot collide
// on a number.
func SaveReport(client *firestore.Client, emailKey string, report types.IncidentReport) (int, error) {
	ctx := context.Background()
	next := 0

	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		metaRef := reportsRef(client, emailKey).Doc(reportMetadataDoc)
		metaDoc, err := tx.Get(metaRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				// First report for this user.
				next = 1
			} else {
				return fmt.Errorf("error getting report metadata for %s: %w", emailKey, err)
			}
		} else {
			var meta types.ReportMetadata
			if err := metaDoc.DataTo(&meta); err != nil {
				return fmt.Errorf("error converting report metadata for %s: %w", emailKey, err)
			}
			next = meta.LastReportNumber + 1
		}

		metaData := map[string]interface{}{"lastReportNumber": next}
		if err := tx.Set(metaRef, metaData, firestore.MergeAll); err != nil {
			return fmt.Errorf("failed to set report metadata for %s: %w", emailKey, err)
		}

		report.ReportNumber = next
		docRef := reportsRef(client, emailKey).Doc(fmt.Sprintf("report_%d", next))
		if err := tx.Set(docRef, report); err != nil {
			return fmt.Errorf("failed to set report %d for %s: %w", next, emailKey, err)
		}
		return nil
	})

	if err != nil {
		log.Printf("Report transaction failed for %s: %v", emailKey, err)
		return 0, err
	}
	return next, nil
}

// GetReports returns a user's reports, newest first. The metadata doc is
// excluded by the timestamp ordering (it carries no timestamp field).
func GetReports(client *firestore.Client, emailKey string) ([]types.IncidentReport, error) {
	ctx := context.Background()
	var reports []types.IncidentReport

	iter := reportsRef(client, emailKey).
		OrderBy("timestamp", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating reports for %s: %w", emailKey, err)
		}
		if doc.Ref.ID == reportMetadataDoc {
			continue
		}

		var report types.IncidentReport
		if err := doc.DataTo(&report); err != nil {
			log.Printf("Warning: skipping report doc %s for %s: %v", doc.Ref.ID, emailKey, err)
			continue
		}
		reports = append(reports, report)
	}

	return reports, nil
}

// DeleteReport removes one report and recomputes lastReportNumber over the
// remaining ones.
func DeleteReport(client *firestore.Client, emailKey string, reportNumber int) error {
	ctx := context.Background()

	docRef := reportsRef(client, emailKey).Doc(fmt.Sprintf("report_%d", reportNumber))
	if _, err := docRef.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete report %d for %s: %w", reportNumber, emailKey, err)
	}

	remaining, err := GetReports(client, emailKey)
	if err != nil {
		return err
	}

	lastReportNumber := 0
	for _, report := range remaining {
		if report.ReportNumber > lastReportNumber {
			lastReportNumber = report.ReportNumber
		}
	}

	metaRef := reportsRef(client, emailKey).Doc(reportMetadataDoc)
	metaData := map[string]interface{}{"lastReportNumber": lastReportNumber}
	if _, err := metaRef.Set(ctx, metaData, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update report metadata for %s: %w", emailKey, err)
	}
	return nil
}
