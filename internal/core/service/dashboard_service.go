package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/leadnest/leadnest-api/internal/core/domain"
	"github.com/leadnest/leadnest-api/internal/core/ports"
)

const (
	dashboardLeadLimit = 10
	dashboardAppLimit  = 5
)

// DashboardService stitches the per-role dashboard payload together from a
// handful of dependent store queries. Nothing is cached; every request runs
// the full fan-out again.
type DashboardService struct {
	profiles ports.ProfileRepository
	claims   ports.CompletedTaskRepository
	leads    ports.LeadRepository
	apps     ports.ApplicationRepository
	logger   zerolog.Logger
}

func NewDashboardService(
	profiles ports.ProfileRepository,
	claims ports.CompletedTaskRepository,
	leads ports.LeadRepository,
	apps ports.ApplicationRepository,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		profiles: profiles,
		claims:   claims,
		leads:    leads,
		apps:     apps,
		logger:   logger,
	}
}

// GetData returns the aggregation for one user. Any failing store query aborts
// the whole composition; there is no partial payload.
func (s *DashboardService) GetData(ctx context.Context, userID string) (*ports.DashboardData, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed, err := s.claims.ListTaskIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if completed == nil {
		completed = []string{}
	}

	data := &ports.DashboardData{
		Profile:        profile,
		CompletedTasks: completed,
		Leads:          []domain.Lead{},
		Applications:   []domain.Application{},
		Notifications:  []domain.Application{},
	}

	if profile.Role == domain.RoleLeadApplier {
		err = s.fillPosterView(ctx, userID, data)
	} else {
		err = s.fillApplierView(ctx, userID, data)
	}
	if err != nil {
		return nil, err
	}

	return data, nil
}

// fillPosterView covers the lead-applier ("poster") branch: own leads, then
// the applications those leads received. With zero leads no application query
// is issued at all.
func (s *DashboardService) fillPosterView(ctx context.Context, userID string, data *ports.DashboardData) error {
	leads, err := s.leads.ListByCreator(ctx, userID, dashboardLeadLimit)
	if err != nil {
		return err
	}
	if len(leads) > 0 {
		data.Leads = leads
	}
	// Count of the fetched page, not of all leads ever posted. Matches the
	// frontend's expectation of "leads on the dashboard".
	data.Stats.TotalLeads = len(leads)

	if len(leads) == 0 {
		return nil
	}

	leadIDs := make([]string, len(leads))
	for i, l := range leads {
		leadIDs[i] = l.ID
	}

	apps, err := s.apps.ListForLeads(ctx, leadIDs, dashboardAppLimit)
	if err != nil {
		return err
	}
	if len(apps) > 0 {
		data.Applications = apps
		// New applications on own leads double as notifications.
		data.Notifications = apps
	}

	refs, err := s.apps.RefsForLeads(ctx, leadIDs)
	if err != nil {
		return err
	}
	applyStats(&data.Stats, refs)

	return nil
}

// fillApplierView covers the lead-finder ("applier") branch: active leads to
// browse, own applications, and resolved applications as notifications.
func (s *DashboardService) fillApplierView(ctx context.Context, userID string, data *ports.DashboardData) error {
	leads, err := s.leads.ListActive(ctx, dashboardLeadLimit)
	if err != nil {
		return err
	}
	if len(leads) > 0 {
		data.Leads = leads
	}
	data.Stats.TotalLeads = len(leads)

	apps, err := s.apps.ListByApplicant(ctx, userID, dashboardAppLimit)
	if err != nil {
		return err
	}
	if len(apps) > 0 {
		data.Applications = apps
	}

	refs, err := s.apps.RefsByApplicant(ctx, userID)
	if err != nil {
		return err
	}
	applyStats(&data.Stats, refs)

	notifications, err := s.apps.ListResolvedByApplicant(ctx, userID, dashboardAppLimit)
	if err != nil {
		return err
	}
	if len(notifications) > 0 {
		data.Notifications = notifications
	}

	return nil
}

// applyStats derives the counters from the full (id, status) set, never from
// the capped display page.
func applyStats(stats *ports.DashboardStats, refs []domain.ApplicationRef) {
	stats.TotalApplications = len(refs)
	for _, r := range refs {
		switch r.Status {
		case domain.ApplicationPending:
			stats.PendingApplications++
		case domain.ApplicationAccepted:
			stats.AcceptedApplications++
		}
	}
}
