package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/leadnest/leadnest-api/internal/core/domain"
	"github.com/leadnest/leadnest-api/internal/core/ports"
)

// AuthProvider implements ports.AuthProvider against GoTrue.
type AuthProvider struct {
	client *Client
}

func NewAuthProvider(client *Client) *AuthProvider {
	return &AuthProvider{client: client}
}

// sessionEnvelope is GoTrue's token-bearing response shape. Signup returns it
// when autoconfirm is on; with email confirmation enabled the same endpoint
// returns the bare user object instead.
type sessionEnvelope struct {
	AccessToken  string           `json:"access_token"`
	TokenType    string           `json:"token_type"`
	ExpiresIn    int              `json:"expires_in"`
	RefreshToken string           `json:"refresh_token"`
	User         *domain.Identity `json:"user"`
}

func (e *sessionEnvelope) session() *domain.Session {
	return &domain.Session{
		AccessToken:  e.AccessToken,
		TokenType:    e.TokenType,
		ExpiresIn:    e.ExpiresIn,
		RefreshToken: e.RefreshToken,
		User:         e.User,
	}
}

func (p *AuthProvider) SignUp(ctx context.Context, params ports.SignUpParams) (*domain.Identity, *domain.Session, error) {
	body := map[string]any{
		"email":    params.Email,
		"password": params.Password,
		// Stored as user_metadata on the identity; the store-side trigger
		// reads role from here when it creates the profiles row.
		"data": map[string]any{
			"first_name": params.FirstName,
			"last_name":  params.LastName,
			"username":   params.Username,
			"role":       params.Role,
		},
	}

	resp, err := p.client.do(ctx, componentAuth, http.MethodPost, p.client.baseURL+"/auth/v1/signup", nil, body)
	if err != nil {
		return nil, nil, err
	}
	if resp.status >= 500 {
		return nil, nil, fmt.Errorf("%w: signup: status %d", domain.ErrUpstreamUnavailable, resp.status)
	}
	if resp.status >= 400 {
		return nil, nil, providerError(resp.body)
	}

	var envelope sessionEnvelope
	if err := json.Unmarshal(resp.body, &envelope); err != nil {
		return nil, nil, fmt.Errorf("%w: signup: decode response: %v", domain.ErrUpstreamRead, err)
	}
	if envelope.AccessToken != "" && envelope.User != nil {
		return envelope.User, envelope.session(), nil
	}

	// No session: confirmation flow, the body is the user object itself.
	var user domain.Identity
	if err := json.Unmarshal(resp.body, &user); err != nil || user.ID == "" {
		return nil, nil, fmt.Errorf("%w: signup: user object not returned", domain.ErrUpstreamRead)
	}
	return &user, nil, nil
}

func (p *AuthProvider) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, *domain.Identity, error) {
	body := map[string]any{"email": email, "password": password}

	resp, err := p.client.do(ctx, componentAuth, http.MethodPost,
		p.client.baseURL+"/auth/v1/token?grant_type=password", nil, body)
	if err != nil {
		return nil, nil, err
	}
	if resp.status >= 500 {
		return nil, nil, fmt.Errorf("%w: login: status %d", domain.ErrUpstreamUnavailable, resp.status)
	}
	if resp.status >= 400 {
		return nil, nil, providerError(resp.body)
	}

	var envelope sessionEnvelope
	if err := json.Unmarshal(resp.body, &envelope); err != nil {
		return nil, nil, fmt.Errorf("%w: login: decode response: %v", domain.ErrUpstreamRead, err)
	}
	if envelope.AccessToken == "" || envelope.User == nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	return envelope.session(), envelope.User, nil
}

// UserFromToken resolves the identity behind a user's bearer token. The
// Authorization header carries the user token; the service key stays on the
// apikey header.
func (p *AuthProvider) UserFromToken(ctx context.Context, token string) (*domain.Identity, error) {
	headers := map[string]string{"Authorization": "Bearer " + token}

	resp, err := p.client.do(ctx, componentAuth, http.MethodGet, p.client.baseURL+"/auth/v1/user", headers, nil)
	if err != nil {
		return nil, err
	}
	if resp.status >= 500 {
		return nil, fmt.Errorf("%w: resolve token: status %d", domain.ErrUpstreamUnavailable, resp.status)
	}
	if resp.status >= 400 {
		return nil, domain.ErrInvalidToken
	}

	var user domain.Identity
	if err := json.Unmarshal(resp.body, &user); err != nil || user.ID == "" {
		return nil, domain.ErrInvalidToken
	}
	return &user, nil
}

// AdminGetUser looks up an identity by id with the service role. A 404 means
// the user simply does not exist and yields (nil, nil).
func (p *AuthProvider) AdminGetUser(ctx context.Context, userID string) (*domain.Identity, error) {
	resp, err := p.client.do(ctx, componentAuth, http.MethodGet,
		p.client.baseURL+"/auth/v1/admin/users/"+userID, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusNotFound {
		return nil, nil
	}
	if resp.status >= 400 {
		return nil, fmt.Errorf("%w: admin user lookup: status %d: %s", domain.ErrUpstreamRead, resp.status, snippet(resp.body))
	}

	var user domain.Identity
	if err := json.Unmarshal(resp.body, &user); err != nil {
		return nil, fmt.Errorf("%w: admin user lookup: decode response: %v", domain.ErrUpstreamRead, err)
	}
	if user.ID == "" {
		return nil, nil
	}
	return &user, nil
}

// providerError extracts the human-readable message from GoTrue's several
// error body shapes and wraps it for verbatim propagation.
func providerError(body []byte) error {
	var e struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		ErrorCode        string `json:"error"`
	}
	_ = json.Unmarshal(body, &e)

	msg := e.Msg
	if msg == "" {
		msg = e.Message
	}
	if msg == "" {
		msg = e.ErrorDescription
	}
	if msg == "" {
		msg = e.ErrorCode
	}
	if msg == "" {
		msg = "authentication request failed"
	}
	return &domain.ProviderError{Message: msg}
}
