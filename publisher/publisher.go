package publisher

import (
	"context"
	"log"
	"sync"

	"go-sentinel/types"
)

// StatusWriter is the document-store capability the publisher needs.
// The Firestore implementation lives in db; tests substitute an in-memory
// fake.
type StatusWriter interface {
	WriteSafetyStatus(ctx context.Context, emailKey string, status types.SafetyStatus) error
}

type PublishResult struct {
	UserID  string `json:"userId"`
	Skipped bool   `json:"skipped"`
	Err     error  `json:"-"`
}

// PublishStatuses persists each user's verdict with one independent attempt
// per user. Attempts run concurrently; a failure is captured in its
// PublishResult and logged, and never aborts the rest of the batch. Users
// without an identity key are skipped without an attempt.
func PublishStatuses(ctx context.Context, w StatusWriter, statuses map[string]types.SafetyStatus) []PublishResult {
	resultsChan := make(chan PublishResult, len(statuses))
	var wg sync.WaitGroup

	for _, status := range statuses {
		if status.UserID == "" {
			resultsChan <- PublishResult{Skipped: true}
			continue
		}

		wg.Add(1)
		st := status // capture for goroutine
		go func() {
			defer wg.Done()
			err := w.WriteSafetyStatus(ctx, st.UserID, st)
			if err != nil {
				log.Printf("Failed to publish safety status for %s: %v", st.UserID, err)
			}
			resultsChan <- PublishResult{UserID: st.UserID, Err: err}
		}()
	}

	wg.Wait()
	close(resultsChan)

	results := make([]PublishResult, 0, len(statuses))
	for result := range resultsChan {
		results = append(results, result)
	}
	return results
}

// Failures filters results down to the failed attempts.
func Failures(results []PublishResult) []PublishResult {
	var failed []PublishResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
