package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/leadnest/leadnest-api/internal/core/domain"
)

// SignUpParams carries the account fields handed to the auth provider. The
// metadata ends up on the new identity; profile-row creation is a store-side
// trigger, not our concern.
type SignUpParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Username  string
	Role      string
}

// AuthProvider is the credentialed handle to the external auth service.
// Implementations must be safe for concurrent use by many in-flight requests.
type AuthProvider interface {
	// SignUp creates an account. The returned session is nil when the provider
	// requires email confirmation before issuing tokens.
	SignUp(ctx context.Context, params SignUpParams) (*domain.Identity, *domain.Session, error)
	// SignInWithPassword exchanges credentials for a session.
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, *domain.Identity, error)
	// UserFromToken resolves the identity a bearer token belongs to. Returns
	// domain.ErrInvalidToken when the provider rejects the token.
	UserFromToken(ctx context.Context, token string) (*domain.Identity, error)
	// AdminGetUser looks a user up by id with administrative credentials.
	AdminGetUser(ctx context.Context, userID string) (*domain.Identity, error)
}

// ProfileRepository reads and writes the profiles table.
type ProfileRepository interface {
	// GetByID returns domain.ErrProfileNotFound when no row exists.
	GetByID(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateCredits(ctx context.Context, userID string, credits int) error
}

// LeadRepository reads and deletes leads.
type LeadRepository interface {
	// GetCreator returns the created_by of a lead, or domain.ErrLeadNotFound.
	GetCreator(ctx context.Context, leadID string) (string, error)
	Delete(ctx context.Context, leadID string) error
	// ListByCreator returns the newest leads created by a user, capped at limit.
	ListByCreator(ctx context.Context, userID string, limit int) ([]domain.Lead, error)
	// ListActive returns the newest leads with status "active", capped at limit.
	ListActive(ctx context.Context, limit int) ([]domain.Lead, error)
}

// ApplicationRepository reads applications, including the joined views the
// dashboard renders.
type ApplicationRepository interface {
	CountByApplicant(ctx context.Context, userID string) (int, error)
	CountByLead(ctx context.Context, leadID string) (int, error)
	// ListForLeads returns the newest applications targeting any of the given
	// leads, joined with lead and applicant profile data, capped at limit.
	ListForLeads(ctx context.Context, leadIDs []string, limit int) ([]domain.Application, error)
	// RefsForLeads returns the full (id, status) set for the given leads.
	RefsForLeads(ctx context.Context, leadIDs []string) ([]domain.ApplicationRef, error)
	// ListByApplicant returns the newest applications by a user, joined with
	// lead data, capped at limit.
	ListByApplicant(ctx context.Context, userID string, limit int) ([]domain.Application, error)
	// RefsByApplicant returns the full (id, status) set for a user.
	RefsByApplicant(ctx context.Context, userID string) ([]domain.ApplicationRef, error)
	// ListResolvedByApplicant returns a user's non-pending applications ordered
	// by update time descending, capped at limit.
	ListResolvedByApplicant(ctx context.Context, userID string, limit int) ([]domain.Application, error)
}

// CompletedTaskRepository tracks which credit tasks a user has already claimed.
type CompletedTaskRepository interface {
	Exists(ctx context.Context, userID, taskID string) (bool, error)
	ListTaskIDs(ctx context.Context, userID string) ([]string, error)
	Record(ctx context.Context, userID, taskID string, completedAt time.Time) error
}

// Aggregates exposes the store's server-side functions. Results come back raw
// because their shape is not under our control; callers validate.
type Aggregates interface {
	// CountLeadApplications invokes the count_lead_applications function.
	CountLeadApplications(ctx context.Context, leadID string) (json.RawMessage, error)
	// DirectProfile invokes get_direct_profile_data. Returns (nil, nil) when
	// the function yields no usable record.
	DirectProfile(ctx context.Context, userID string) (*domain.Profile, error)
}
