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

const applicationsTable = "applications"

// applicantJoin embeds the lead row and the applicant's profile row (the
// applications table carries two profile FKs, so the constraint is named).
const applicantJoin = "*,leads(*),profiles!applications_applicant_id_fkey(*)"

// leadJoin embeds only the lead row.
const leadJoin = "*,leads(*)"

// ApplicationRepository reads the applications table and its joined views.
// Nothing here writes: application mutations happen outside this service.
type ApplicationRepository struct {
	client *Client
}

func NewApplicationRepository(client *Client) *ApplicationRepository {
	return &ApplicationRepository{client: client}
}

func (r *ApplicationRepository) CountByApplicant(ctx context.Context, userID string) (int, error) {
	query := url.Values{
		"applicant_id": {"eq." + userID},
		"select":       {"id"},
	}
	return r.client.exactCount(ctx, applicationsTable, query)
}

func (r *ApplicationRepository) CountByLead(ctx context.Context, leadID string) (int, error) {
	query := url.Values{
		"lead_id": {"eq." + leadID},
		"select":  {"id"},
	}
	return r.client.exactCount(ctx, applicationsTable, query)
}

func (r *ApplicationRepository) ListForLeads(ctx context.Context, leadIDs []string, limit int) ([]domain.Application, error) {
	query := url.Values{
		"lead_id": {inList(leadIDs)},
		"select":  {applicantJoin},
		"order":   {"created_at.desc"},
		"limit":   {strconv.Itoa(limit)},
	}
	return r.list(ctx, query)
}

func (r *ApplicationRepository) RefsForLeads(ctx context.Context, leadIDs []string) ([]domain.ApplicationRef, error) {
	query := url.Values{
		"lead_id": {inList(leadIDs)},
		"select":  {"id,status"},
	}
	return r.refs(ctx, query)
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, userID string, limit int) ([]domain.Application, error) {
	query := url.Values{
		"applicant_id": {"eq." + userID},
		"select":       {leadJoin},
		"order":        {"created_at.desc"},
		"limit":        {strconv.Itoa(limit)},
	}
	return r.list(ctx, query)
}

func (r *ApplicationRepository) RefsByApplicant(ctx context.Context, userID string) ([]domain.ApplicationRef, error) {
	query := url.Values{
		"applicant_id": {"eq." + userID},
		"select":       {"id,status"},
	}
	return r.refs(ctx, query)
}

func (r *ApplicationRepository) ListResolvedByApplicant(ctx context.Context, userID string, limit int) ([]domain.Application, error) {
	query := url.Values{
		"applicant_id": {"eq." + userID},
		"status":       {"neq." + domain.ApplicationPending},
		"select":       {leadJoin},
		"order":        {"updated_at.desc"},
		"limit":        {strconv.Itoa(limit)},
	}
	return r.list(ctx, query)
}

func (r *ApplicationRepository) list(ctx context.Context, query url.Values) ([]domain.Application, error) {
	resp, err := r.client.rest(ctx, http.MethodGet, applicationsTable, query, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.status >= 400 {
		return nil, fmt.Errorf("%w: list applications: status %d: %s", domain.ErrUpstreamRead, resp.status, snippet(resp.body))
	}

	var apps []domain.Application
	if err := json.Unmarshal(resp.body, &apps); err != nil {
		return nil, fmt.Errorf("%w: list applications: decode response: %v", domain.ErrUpstreamRead, err)
	}
	return apps, nil
}

func (r *ApplicationRepository) refs(ctx context.Context, query url.Values) ([]domain.ApplicationRef, error) {
	resp, err := r.client.rest(ctx, http.MethodGet, applicationsTable, query, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.status >= 400 {
		return nil, fmt.Errorf("%w: list application refs: status %d: %s", domain.ErrUpstreamRead, resp.status, snippet(resp.body))
	}

	var refs []domain.ApplicationRef
	if err := json.Unmarshal(resp.body, &refs); err != nil {
		return nil, fmt.Errorf("%w: list application refs: decode response: %v", domain.ErrUpstreamRead, err)
	}
	return refs, nil
}
