package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/leadnest/leadnest-api/internal/core/domain"
)

const leadsTable = "leads"

// LeadRepository reads and deletes leads.
type LeadRepository struct {
	client *Client
}

func NewLeadRepository(client *Client) *LeadRepository {
	return &LeadRepository{client: client}
}

// GetCreator fetches only the created_by column of one lead.
func (r *LeadRepository) GetCreator(ctx context.Context, leadID string) (string, error) {
	query := url.Values{
		"id":     {"eq." + leadID},
		"select": {"created_by"},
	}
	headers := map[string]string{"Accept": singleObjectAccept}

	resp, err := r.client.rest(ctx, http.MethodGet, leadsTable, query, headers, nil)
	if err != nil {
		return "", err
	}
	if resp.status == http.StatusNotAcceptable {
		return "", domain.ErrLeadNotFound
	}
	if resp.status >= 400 {
		return "", fmt.Errorf("%w: fetch lead creator: status %d: %s", domain.ErrUpstreamRead, resp.status, snippet(resp.body))
	}

	var row struct {
		CreatedBy string `json:"created_by"`
	}
	if err := json.Unmarshal(resp.body, &row); err != nil {
		return "", fmt.Errorf("%w: fetch lead creator: decode response: %v", domain.ErrUpstreamRead, err)
	}
	return row.CreatedBy, nil
}

func (r *LeadRepository) Delete(ctx context.Context, leadID string) error {
	query := url.Values{"id": {"eq." + leadID}}

	resp, err := r.client.rest(ctx, http.MethodDelete, leadsTable, query, nil, nil)
	if err != nil {
		return err
	}
	if resp.status >= 400 {
		return fmt.Errorf("%w: delete lead: status %d: %s", domain.ErrUpstreamWrite, resp.status, snippet(resp.body))
	}
	return nil
}

func (r *LeadRepository) ListByCreator(ctx context.Context, userID string, limit int) ([]domain.Lead, error) {
	query := url.Values{
		"created_by": {"eq." + userID},
		"select":     {"*"},
		"order":      {"created_at.desc"},
		"limit":      {strconv.Itoa(limit)},
	}
	return r.list(ctx, query)
}

func (r *LeadRepository) ListActive(ctx context.Context, limit int) ([]domain.Lead, error) {
	query := url.Values{
		"status": {"eq." + domain.LeadStatusActive},
		"select": {"*"},
		"order":  {"created_at.desc"},
		"limit":  {strconv.Itoa(limit)},
	}
	return r.list(ctx, query)
}

func (r *LeadRepository) list(ctx context.Context, query url.Values) ([]domain.Lead, error) {
	resp, err := r.client.rest(ctx, http.MethodGet, leadsTable, query, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.status >= 400 {
		return nil, fmt.Errorf("%w: list leads: status %d: %s", domain.ErrUpstreamRead, resp.status, snippet(resp.body))
	}

	var leads []domain.Lead
	if err := json.Unmarshal(resp.body, &leads); err != nil {
		return nil, fmt.Errorf("%w: list leads: decode response: %v", domain.ErrUpstreamRead, err)
	}
	return leads, nil
}
