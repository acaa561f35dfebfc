package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/leadnest/leadnest-api/internal/core/domain"
)

// Aggregates invokes the store's server-side functions. Their result shapes
// are owned by the database, so they come back raw or loosely decoded and the
// services validate.
type Aggregates struct {
	client *Client
}

func NewAggregates(client *Client) *Aggregates {
	return &Aggregates{client: client}
}

func (a *Aggregates) CountLeadApplications(ctx context.Context, leadID string) (json.RawMessage, error) {
	resp, err := a.client.rpc(ctx, "count_lead_applications", map[string]string{"lead_id_arg": leadID})
	if err != nil {
		return nil, err
	}
	if resp.status >= 400 {
		return nil, fmt.Errorf("%w: count_lead_applications: status %d: %s", domain.ErrUpstreamRead, resp.status, snippet(resp.body))
	}
	return json.RawMessage(resp.body), nil
}

// DirectProfile calls get_direct_profile_data, which has been seen returning
// either a one-element array or a bare object. (nil, nil) means the function
// answered but had no usable record.
func (a *Aggregates) DirectProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	resp, err := a.client.rpc(ctx, "get_direct_profile_data", map[string]string{"p_user_id": userID})
	if err != nil {
		return nil, err
	}
	if resp.status >= 400 {
		return nil, fmt.Errorf("%w: get_direct_profile_data: status %d: %s", domain.ErrUpstreamRead, resp.status, snippet(resp.body))
	}

	var list []domain.Profile
	if err := json.Unmarshal(resp.body, &list); err == nil {
		if len(list) == 0 {
			return nil, nil
		}
		return &list[0], nil
	}

	var profile domain.Profile
	if err := json.Unmarshal(resp.body, &profile); err != nil {
		return nil, fmt.Errorf("%w: get_direct_profile_data: decode response: %v", domain.ErrUpstreamRead, err)
	}
	if profile.ID == "" {
		return nil, nil
	}
	return &profile, nil
}
