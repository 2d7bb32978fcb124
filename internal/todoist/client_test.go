package todoist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aidahq/aida/internal/store"
	"github.com/aidahq/aida/internal/testutil"
)

// fakeTodoist serves a fixed set of completed items and records what the
// client sent.
type fakeTodoist struct {
	items      []CompletedItem
	lastSince  string
	lastAuth   string
	statusCode int
}

func (f *fakeTodoist) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.lastSince = r.URL.Query().Get("since")
		f.lastAuth = r.Header.Get("Authorization")
		if f.statusCode != 0 {
			http.Error(w, "nope", f.statusCode)
			return
		}
		_ = json.NewEncoder(w).Encode(completedResponse{Items: f.items})
	}
}

func newTestClient(t *testing.T, fake *fakeTodoist) *Client {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	client := NewClient("test-token")
	client.BaseURL = srv.URL
	return client
}

func TestCompletedItemsSendsTokenAndSince(t *testing.T) {
	fake := &fakeTodoist{items: []CompletedItem{
		{ID: "100", TaskID: "t1", Content: "Boka tandläkare", CompletedAt: "2026-02-10T14:00:00Z"},
	}}
	client := newTestClient(t, fake)

	items, err := client.CompletedItems(context.Background(), "2026-02-01 00:00:00")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Boka tandläkare", items[0].Content)
	require.Equal(t, "Bearer test-token", fake.lastAuth)
	require.Equal(t, "2026-02-01 00:00:00", fake.lastSince)
}

func TestCompletedItemsSurfacesHTTPErrors(t *testing.T) {
	fake := &fakeTodoist{statusCode: http.StatusUnauthorized}
	client := newTestClient(t, fake)

	_, err := client.CompletedItems(context.Background(), "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
}

func TestSyncImportsCompletedItems(t *testing.T) {
	st := testutil.NewStore(t)
	fake := &fakeTodoist{items: []CompletedItem{
		{ID: "100", TaskID: "t1", Content: "Boka tandläkare", CompletedAt: "2026-02-10T14:00:00Z"},
		{ID: "101", TaskID: "t2", Content: "Betala räkningar", CompletedAt: "2026-02-11T09:30:00Z"},
	}}
	client := newTestClient(t, fake)

	result, err := client.Sync(context.Background(), st)
	require.NoError(t, err)
	require.Equal(t, int64(2), result.Imported)
	require.Equal(t, int64(0), result.Skipped)
	require.NotEmpty(t, result.Watermark)

	entries, err := st.GetEntriesByType(context.Background(), "task", nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		require.True(t, strings.HasPrefix(entry.Content, "Slutförde i Todoist: "), entry.Content)
		require.Contains(t, entry.Content, "[todoist:")
	}

	status, err := st.GetSyncStatus(context.Background())
	require.NoError(t, err)
	require.NotNil(t, status.LastSync)
	require.Equal(t, result.Watermark, *status.LastSync)
	require.Equal(t, int64(2), status.SyncedItems)
}

func TestSyncIsIdempotent(t *testing.T) {
	st := testutil.NewStore(t)
	fake := &fakeTodoist{items: []CompletedItem{
		{ID: "100", TaskID: "t1", Content: "Boka tandläkare", CompletedAt: "2026-02-10T14:00:00Z"},
	}}
	client := newTestClient(t, fake)

	first, err := client.Sync(context.Background(), st)
	require.NoError(t, err)
	require.Equal(t, int64(1), first.Imported)

	// Same upstream data again: the item is recognized and skipped.
	second, err := client.Sync(context.Background(), st)
	require.NoError(t, err)
	require.Equal(t, int64(0), second.Imported)
	require.Equal(t, int64(1), second.Skipped)

	entries, err := st.GetEntriesByType(context.Background(), "task", nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// The second run queried with the first run's watermark.
	require.Equal(t, first.Watermark, fake.lastSince)
}

func TestSyncNormalizesTimestamps(t *testing.T) {
	st := testutil.NewStore(t)
	fake := &fakeTodoist{items: []CompletedItem{
		{ID: "200", TaskID: "t3", Content: "Städa garaget", CompletedAt: "2026-02-10T14:00:00Z"},
	}}
	client := newTestClient(t, fake)

	_, err := client.Sync(context.Background(), st)
	require.NoError(t, err)

	entries, err := st.GetEntriesByType(context.Background(), "task", nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	// Stored in the canonical layout, not RFC3339.
	require.NotContains(t, entries[0].Timestamp, "T")
	require.NotContains(t, entries[0].Timestamp, "Z")
	require.Len(t, entries[0].Timestamp, 19)
}

func TestSyncFailedFetchLeavesStateUntouched(t *testing.T) {
	st := testutil.NewStore(t)
	fake := &fakeTodoist{statusCode: http.StatusInternalServerError}
	client := newTestClient(t, fake)

	_, err := client.Sync(context.Background(), st)
	require.Error(t, err)

	state, err := st.GetSyncState(context.Background(), store.SyncStateLastSync)
	require.NoError(t, err)
	require.Nil(t, state)
}
