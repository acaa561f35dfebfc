package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadnest/leadnest-api/internal/api/metrics"
	"github.com/leadnest/leadnest-api/internal/core/domain"
	"github.com/leadnest/leadnest-api/internal/core/ports"
)

// TaskService owns the static registry of claimable credit tasks and the claim
// flow. The registry is built once at construction and never mutated, so it is
// safe to share across requests.
type TaskService struct {
	profiles ports.ProfileRepository
	claims   ports.CompletedTaskRepository
	registry map[string]domain.TaskDefinition
	logger   zerolog.Logger
}

func NewTaskService(
	profiles ports.ProfileRepository,
	claims ports.CompletedTaskRepository,
	apps ports.ApplicationRepository,
	logger zerolog.Logger,
) *TaskService {
	s := &TaskService{
		profiles: profiles,
		claims:   claims,
		logger:   logger,
	}
	s.registry = buildRegistry(apps)
	return s
}

// buildRegistry returns the fixed task catalog. The "apply" task is the only
// activity-checked one: it needs a store query against the user's applications
// rather than a look at the profile row.
func buildRegistry(apps ports.ApplicationRepository) map[string]domain.TaskDefinition {
	defs := []domain.TaskDefinition{
		{
			ID:      "profile",
			Credits: 5,
			Kind:    domain.TaskKindProfile,
			CheckProfile: func(p *domain.Profile) bool {
				return p.FirstName != "" && p.LastName != "" && p.Username != "" &&
					p.PhoneNumber != "" && p.Bio != "" && p.Company != "" && p.Position != ""
			},
		},
		{
			ID:      "bio",
			Credits: 3,
			Kind:    domain.TaskKindProfile,
			CheckProfile: func(p *domain.Profile) bool {
				return len(p.Bio) >= 20
			},
		},
		{
			ID:      "apply",
			Credits: 2,
			Kind:    domain.TaskKindActivity,
			CheckActivity: func(ctx context.Context, userID string) (bool, error) {
				n, err := apps.CountByApplicant(ctx, userID)
				if err != nil {
					return false, err
				}
				return n > 0, nil
			},
		},
		{
			ID:      "company",
			Credits: 3,
			Kind:    domain.TaskKindProfile,
			CheckProfile: func(p *domain.Profile) bool {
				return p.Company != "" && p.Position != ""
			},
		},
		{
			ID:      "address",
			Credits: 2,
			Kind:    domain.TaskKindProfile,
			CheckProfile: func(p *domain.Profile) bool {
				return len(p.Address) > 5
			},
		},
	}

	registry := make(map[string]domain.TaskDefinition, len(defs))
	for _, d := range defs {
		registry[d.ID] = d
	}
	return registry
}

// ClaimCredits awards a task's credits to a user once. The already-claimed
// pre-check, the balance write, and the claim insert are three separate store
// calls with no transaction around them; concurrent identical claims can race.
func (s *TaskService) ClaimCredits(ctx context.Context, userID, taskID string) (*ports.ClaimResult, error) {
	def, ok := s.registry[taskID]
	if !ok {
		return nil, domain.ErrUnknownTask
	}

	claimed, err := s.claims.Exists(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if claimed {
		metrics.ClaimsTotal.WithLabelValues(taskID, "already_claimed").Inc()
		return nil, domain.ErrTaskAlreadyClaimed
	}

	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var completed bool
	switch def.Kind {
	case domain.TaskKindActivity:
		completed, err = def.CheckActivity(ctx, userID)
		if err != nil {
			return nil, err
		}
	default:
		completed = def.CheckProfile(profile)
	}
	if !completed {
		metrics.ClaimsTotal.WithLabelValues(taskID, "not_complete").Inc()
		return nil, domain.ErrTaskNotComplete
	}

	newBalance := profile.Credits + def.Credits
	if err := s.profiles.UpdateCredits(ctx, userID, newBalance); err != nil {
		return nil, err
	}

	// If this insert fails the balance has already been updated and the claim
	// is unrecorded; the user could claim again. Known gap, kept as-is.
	if err := s.claims.Record(ctx, userID, taskID, time.Now().UTC()); err != nil {
		s.logger.Error().Err(err).
			Str("user_id", userID).
			Str("task_id", taskID).
			Int("new_balance", newBalance).
			Msg("balance updated but claim not recorded")
		return nil, err
	}

	metrics.ClaimsTotal.WithLabelValues(taskID, "awarded").Inc()
	s.logger.Info().Str("user_id", userID).Str("task_id", taskID).Int("credits", def.Credits).Msg("credits claimed")

	return &ports.ClaimResult{
		NewBalance: newBalance,
		Message:    fmt.Sprintf("Successfully claimed %d credits!", def.Credits),
	}, nil
}
