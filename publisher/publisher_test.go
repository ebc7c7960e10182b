package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"go-sentinel/types"
)

// memoryStatusWriter is an in-memory StatusWriter that can be told to fail
// for specific users.
type memoryStatusWriter struct {
	mu      sync.Mutex
	written map[string]types.SafetyStatus
	failFor map[string]bool
}

func newMemoryStatusWriter() *memoryStatusWriter {
	return &memoryStatusWriter{
		written: make(map[string]types.SafetyStatus),
		failFor: make(map[string]bool),
	}
}

func (w *memoryStatusWriter) WriteSafetyStatus(_ context.Context, emailKey string, st types.SafetyStatus) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failFor[emailKey] {
		return errors.New("store unreachable")
	}
	w.written[emailKey] = st
	return nil
}

func TestPublishStatusesAllSucceed(t *testing.T) {
	w := newMemoryStatusWriter()
	statuses := map[string]types.SafetyStatus{
		"a@example.com": {UserID: "a@example.com", Safe: true, MinDistance: 1.2},
		"b@example.com": {UserID: "b@example.com", Safe: false, MinDistance: 0},
	}

	results := PublishStatuses(context.Background(), w, statuses)
	require.Len(t, results, 2)
	require.Empty(t, Failures(results))

	require.Len(t, w.written, 2)
	require.False(t, w.written["b@example.com"].Safe)
}

func TestPublishOneFailureDoesNotAffectOthers(t *testing.T) {
	w := newMemoryStatusWriter()
	w.failFor["bad@example.com"] = true

	statuses := map[string]types.SafetyStatus{
		"bad@example.com":  {UserID: "bad@example.com", Safe: false, MinDistance: 0},
		"good@example.com": {UserID: "good@example.com", Safe: true, MinDistance: 2.5},
	}

	results := PublishStatuses(context.Background(), w, statuses)
	require.Len(t, results, 2)

	failed := Failures(results)
	require.Len(t, failed, 1)
	require.Equal(t, "bad@example.com", failed[0].UserID)

	// The other user's publish landed.
	require.Contains(t, w.written, "good@example.com")
	require.NotContains(t, w.written, "bad@example.com")
}

func TestPublishSkipsUsersWithoutIdentityKey(t *testing.T) {
	w := newMemoryStatusWriter()
	statuses := map[string]types.SafetyStatus{
		"":              {UserID: "", Safe: true, MinDistance: 3},
		"a@example.com": {UserID: "a@example.com", Safe: true, MinDistance: 3},
	}

	results := PublishStatuses(context.Background(), w, statuses)
	require.Len(t, results, 2)

	skipped := 0
	for _, r := range results {
		if r.Skipped {
			skipped++
			require.NoError(t, r.Err)
		}
	}
	require.Equal(t, 1, skipped)

	// No write was attempted for the skipped user.
	require.Len(t, w.written, 1)
	require.Contains(t, w.written, "a@example.com")
}

func TestPublishEmptyBatch(t *testing.T) {
	w := newMemoryStatusWriter()
	results := PublishStatuses(context.Background(), w, nil)
	require.Empty(t, results)
	require.Empty(t, w.written)
}
