package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/leadnest/leadnest-api/internal/core/domain"
)

const profilesTable = "profiles"

// singleObjectAccept makes PostgREST return one object instead of an array,
// answering 406 when no row matches.
const singleObjectAccept = "application/vnd.pgrst.object+json"

// ProfileRepository reads and writes the profiles table.
type ProfileRepository struct {
	client *Client
}

func NewProfileRepository(client *Client) *ProfileRepository {
	return &ProfileRepository{client: client}
}

func (r *ProfileRepository) GetByID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := url.Values{
		"id":     {"eq." + userID},
		"select": {"*"},
	}
	headers := map[string]string{"Accept": singleObjectAccept}

	resp, err := r.client.rest(ctx, http.MethodGet, profilesTable, query, headers, nil)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusNotAcceptable {
		return nil, domain.ErrProfileNotFound
	}
	if resp.status >= 400 {
		return nil, fmt.Errorf("%w: fetch profile: status %d: %s", domain.ErrUpstreamRead, resp.status, snippet(resp.body))
	}

	var profile domain.Profile
	if err := json.Unmarshal(resp.body, &profile); err != nil {
		return nil, fmt.Errorf("%w: fetch profile: decode response: %v", domain.ErrUpstreamRead, err)
	}
	return &profile, nil
}

func (r *ProfileRepository) UpdateCredits(ctx context.Context, userID string, credits int) error {
	query := url.Values{"id": {"eq." + userID}}
	headers := map[string]string{"Prefer": "return=minimal"}
	body := map[string]int{"credits": credits}

	resp, err := r.client.rest(ctx, http.MethodPatch, profilesTable, query, headers, body)
	if err != nil {
		return err
	}
	if resp.status >= 400 {
		return fmt.Errorf("%w: update credits: status %d: %s", domain.ErrUpstreamWrite, resp.status, snippet(resp.body))
	}
	return nil
}
