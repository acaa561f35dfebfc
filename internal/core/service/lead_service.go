package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/leadnest/leadnest-api/internal/core/domain"
	"github.com/leadnest/leadnest-api/internal/core/ports"
)

// MaxApplicationsPerLead is a static policy constant reported alongside every
// application count; it is not derived from the store.
const MaxApplicationsPerLead = 6

// LeadService handles lead deletion and the per-lead application count.
type LeadService struct {
	leads  ports.LeadRepository
	apps   ports.ApplicationRepository
	agg    ports.Aggregates
	logger zerolog.Logger
}

func NewLeadService(
	leads ports.LeadRepository,
	apps ports.ApplicationRepository,
	agg ports.Aggregates,
	logger zerolog.Logger,
) *LeadService {
	return &LeadService{leads: leads, apps: apps, agg: agg, logger: logger}
}

// Delete removes a lead after checking that the requester created it. The
// ownership check and the delete are two separate store calls.
func (s *LeadService) Delete(ctx context.Context, userID, leadID string) error {
	creator, err := s.leads.GetCreator(ctx, leadID)
	if err != nil {
		return err
	}
	if creator != userID {
		return domain.ErrForbidden
	}

	if err := s.leads.Delete(ctx, leadID); err != nil {
		return err
	}

	s.logger.Info().Str("lead_id", leadID).Str("user_id", userID).Msg("lead deleted")
	return nil
}

// ApplicationCount asks the store's count_lead_applications function first and
// falls back to a direct exact count when the function errors or returns a
// shape we do not recognise.
func (s *LeadService) ApplicationCount(ctx context.Context, leadID string) (*ports.ApplicationCount, error) {
	raw, err := s.agg.CountLeadApplications(ctx, leadID)

	count, valid := 0, false
	if err == nil {
		count, valid = parseAggregateCount(raw)
	}

	if err != nil || !valid {
		s.logger.Warn().Err(err).Str("lead_id", leadID).
			Msg("aggregate count unusable, falling back to direct count")
		count, err = s.apps.CountByLead(ctx, leadID)
		if err != nil {
			return nil, err
		}
	}

	return &ports.ApplicationCount{Count: count, MaxAllowed: MaxApplicationsPerLead}, nil
}

// parseAggregateCount accepts the three result shapes the store function has
// been observed to produce: a bare number, a one-element list carrying a count
// field, or an object carrying a count field. Anything else is invalid.
func parseAggregateCount(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n >= 0 {
			return int(n), true
		}
		return 0, false
	}

	var list []struct {
		Count *float64 `json:"count"`
	}
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) > 0 && list[0].Count != nil && *list[0].Count >= 0 {
			return int(*list[0].Count), true
		}
		return 0, false
	}

	var obj struct {
		Count *float64 `json:"count"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Count != nil && *obj.Count >= 0 {
		return int(*obj.Count), true
	}

	return 0, false
}
