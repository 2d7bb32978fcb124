// Package todoist pulls completed items from the Todoist sync API and turns
// them into journal entries. The import is idempotent: every item carries a
// stable external id, and an id that has been imported once is skipped on
// every later run.
package todoist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aidahq/aida/internal/dates"
	"github.com/aidahq/aida/internal/store"
)

// DefaultBaseURL is the production Todoist sync endpoint.
const DefaultBaseURL = "https://api.todoist.com"

const completedPath = "/sync/v9/completed/get_all"

// Client talks to the Todoist sync API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient returns a client against the production API.
func NewClient(token string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CompletedItem is one completed task as Todoist reports it.
type CompletedItem struct {
	ID          string `json:"id"`
	TaskID      string `json:"task_id"`
	Content     string `json:"content"`
	CompletedAt string `json:"completed_at"`
}

type completedResponse struct {
	Items []CompletedItem `json:"items"`
}

// CompletedItems fetches items completed since the given watermark. An empty
// since fetches everything Todoist still has.
func (c *Client) CompletedItems(ctx context.Context, since string) ([]CompletedItem, error) {
	u, err := url.Parse(c.BaseURL + completedPath)
	if err != nil {
		return nil, fmt.Errorf("invalid todoist base url: %w", err)
	}
	q := u.Query()
	if since != "" {
		q.Set("since", since)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("todoist request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("todoist returned %d: %s", resp.StatusCode, body)
	}

	var parsed completedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode todoist response: %w", err)
	}
	return parsed.Items, nil
}

// SyncResult reports what a sync run did.
type SyncResult struct {
	Imported  int64  `json:"imported"`
	Skipped   int64  `json:"skipped"`
	Watermark string `json:"watermark"`
}

// Sync pulls completed items since the stored watermark, appends one journal
// entry per new item, and advances the watermark. Rerunning with the same
// upstream data imports nothing.
func (c *Client) Sync(ctx context.Context, st *store.Store) (*SyncResult, error) {
	since, err := st.GetSyncState(ctx, store.SyncStateLastSync)
	if err != nil {
		return nil, err
	}
	watermark := ""
	if since != nil {
		watermark = *since
	}

	items, err := c.CompletedItems(ctx, watermark)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	for _, item := range items {
		seen, err := st.HasSyncedItem(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		if seen {
			result.Skipped++
			continue
		}

		content := fmt.Sprintf("Slutförde i Todoist: %s [todoist:%s]", item.Content, item.ID)
		var timestamp *string
		if t, err := dates.ParseDatetime(item.CompletedAt); err == nil {
			ts := t.Local().Format(dates.DatetimeLayout)
			timestamp = &ts
		}

		entry, err := st.CreateEntry(ctx, store.CreateEntryInput{
			EntryType: "task",
			Content:   content,
			Timestamp: timestamp,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record item %s: %w", item.ID, err)
		}

		if _, err := st.RecordSyncedItem(ctx, item.ID, entry.ID); err != nil {
			return nil, err
		}
		result.Imported++
	}

	result.Watermark = dates.Now()
	if err := st.SetSyncState(ctx, store.SyncStateLastSync, result.Watermark); err != nil {
		return nil, err
	}
	return result, nil
}
