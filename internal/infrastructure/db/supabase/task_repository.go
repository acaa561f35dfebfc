package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/leadnest/leadnest-api/internal/core/domain"
)

const completedTasksTable = "completed_tasks"

// CompletedTaskRepository tracks claimed credit tasks. There is no store-side
// uniqueness constraint on (user_id, task_id); the claim flow's pre-check via
// Exists is the only guard.
type CompletedTaskRepository struct {
	client *Client
}

func NewCompletedTaskRepository(client *Client) *CompletedTaskRepository {
	return &CompletedTaskRepository{client: client}
}

func (r *CompletedTaskRepository) Exists(ctx context.Context, userID, taskID string) (bool, error) {
	query := url.Values{
		"user_id": {"eq." + userID},
		"task_id": {"eq." + taskID},
		"select":  {"id"},
		"limit":   {"1"},
	}

	resp, err := r.client.rest(ctx, http.MethodGet, completedTasksTable, query, nil, nil)
	if err != nil {
		return false, err
	}
	if resp.status >= 400 {
		return false, fmt.Errorf("%w: check claim: status %d: %s", domain.ErrUpstreamRead, resp.status, snippet(resp.body))
	}

	var rows []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.body, &rows); err != nil {
		return false, fmt.Errorf("%w: check claim: decode response: %v", domain.ErrUpstreamRead, err)
	}
	return len(rows) > 0, nil
}

func (r *CompletedTaskRepository) ListTaskIDs(ctx context.Context, userID string) ([]string, error) {
	query := url.Values{
		"user_id": {"eq." + userID},
		"select":  {"task_id"},
	}

	resp, err := r.client.rest(ctx, http.MethodGet, completedTasksTable, query, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.status >= 400 {
		return nil, fmt.Errorf("%w: list claims: status %d: %s", domain.ErrUpstreamRead, resp.status, snippet(resp.body))
	}

	var rows []struct {
		TaskID string `json:"task_id"`
	}
	if err := json.Unmarshal(resp.body, &rows); err != nil {
		return nil, fmt.Errorf("%w: list claims: decode response: %v", domain.ErrUpstreamRead, err)
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.TaskID
	}
	return ids, nil
}

func (r *CompletedTaskRepository) Record(ctx context.Context, userID, taskID string, completedAt time.Time) error {
	headers := map[string]string{"Prefer": "return=minimal"}
	body := map[string]string{
		"user_id":      userID,
		"task_id":      taskID,
		"completed_at": completedAt.UTC().Format(time.RFC3339),
	}

	resp, err := r.client.rest(ctx, http.MethodPost, completedTasksTable, nil, headers, body)
	if err != nil {
		return err
	}
	if resp.status >= 400 {
		return fmt.Errorf("%w: record claim: status %d: %s", domain.ErrUpstreamWrite, resp.status, snippet(resp.body))
	}
	return nil
}
