package ports

import (
	"context"

	"github.com/leadnest/leadnest-api/internal/core/domain"
)

// SignUpResult is returned after a successful account creation.
type SignUpResult struct {
	User    *domain.Identity
	Session *domain.Session
	Message string
}

// AuthService validates credentials-shaped input and delegates account
// operations to the auth provider.
type AuthService interface {
	SignUp(ctx context.Context, params SignUpParams) (*SignUpResult, error)
	Login(ctx context.Context, email, password string) (*domain.Session, *domain.Identity, error)
}

// ClaimResult is returned after credits were awarded.
type ClaimResult struct {
	NewBalance int
	Message    string
}

// TaskService owns the static credit-task registry and the claim flow.
type TaskService interface {
	ClaimCredits(ctx context.Context, userID, taskID string) (*ClaimResult, error)
}

// DashboardStats are derived from the full (id, status) application set, not
// from the capped display fetch.
type DashboardStats struct {
	TotalLeads           int `json:"totalLeads"`
	TotalApplications    int `json:"totalApplications"`
	PendingApplications  int `json:"pendingApplications"`
	AcceptedApplications int `json:"acceptedApplications"`
}

// DashboardData is the single aggregation payload the dashboard renders.
type DashboardData struct {
	Profile        *domain.Profile      `json:"profile"`
	CompletedTasks []string             `json:"completedTasks"`
	Leads          []domain.Lead        `json:"leads"`
	Applications   []domain.Application `json:"applications"`
	Notifications  []domain.Application `json:"notifications"`
	Stats          DashboardStats       `json:"stats"`
}

// DashboardService composes the role-conditioned dashboard queries.
type DashboardService interface {
	GetData(ctx context.Context, userID string) (*DashboardData, error)
}

// ApplicationCount is the per-lead count with the static policy cap.
type ApplicationCount struct {
	Count      int `json:"count"`
	MaxAllowed int `json:"maxAllowed"`
}

// LeadService handles owner-checked deletion and the application-count
// fallback chain.
type LeadService interface {
	Delete(ctx context.Context, userID, leadID string) error
	ApplicationCount(ctx context.Context, leadID string) (*ApplicationCount, error)
}

// ProfileService resolves a profile through an ordered list of strategies:
// server-side function, direct table read, identity-store synthesis.
type ProfileService interface {
	GetDetails(ctx context.Context, targetUserID string) (*domain.Profile, error)
}
