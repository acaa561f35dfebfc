package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadnest/leadnest-api/internal/core/domain"
	"github.com/leadnest/leadnest-api/internal/core/ports"
)

// ProfileService resolves a profile through an ordered list of lookup
// strategies. Each strategy either yields a usable record, misses, or errors;
// misses and errors both advance to the next strategy. Only when every tier
// has been exhausted does the lookup fail with not-found.
type ProfileService struct {
	agg      ports.Aggregates
	profiles ports.ProfileRepository
	auth     ports.AuthProvider
	logger   zerolog.Logger
}

func NewProfileService(
	agg ports.Aggregates,
	profiles ports.ProfileRepository,
	auth ports.AuthProvider,
	logger zerolog.Logger,
) *ProfileService {
	return &ProfileService{agg: agg, profiles: profiles, auth: auth, logger: logger}
}

type lookupStrategy struct {
	name string
	fn   func(ctx context.Context, userID string) (*domain.Profile, error)
}

func (s *ProfileService) GetDetails(ctx context.Context, targetUserID string) (*domain.Profile, error) {
	strategies := []lookupStrategy{
		{name: "aggregate", fn: s.fromAggregate},
		{name: "table", fn: s.fromTable},
		{name: "identity", fn: s.fromIdentity},
	}

	for _, strat := range strategies {
		profile, err := strat.fn(ctx, targetUserID)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("strategy", strat.name).
				Str("target_user_id", targetUserID).
				Msg("profile lookup strategy failed")
			continue
		}
		if profile != nil && profile.ID != "" {
			return profile, nil
		}
	}

	return nil, domain.ErrProfileNotFound
}

// fromAggregate asks the store's get_direct_profile_data function.
func (s *ProfileService) fromAggregate(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.agg.DirectProfile(ctx, userID)
}

// fromTable reads the profiles row directly with the privileged client.
func (s *ProfileService) fromTable(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err == domain.ErrProfileNotFound {
		return nil, nil
	}
	return profile, err
}

// fromIdentity synthesises a profile-shaped record from the identity store
// when no profiles row exists (e.g. the creation trigger never fired).
func (s *ProfileService) fromIdentity(ctx context.Context, userID string) (*domain.Profile, error) {
	user, err := s.auth.AdminGetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return synthesizeProfile(user), nil
}

// synthesizeProfile maps identity metadata onto the profile shape, defaulting
// the display fields from the email local part where metadata is absent.
func synthesizeProfile(user *domain.Identity) *domain.Profile {
	local := emailLocalPart(user.Email)

	firstName := user.MetadataString("first_name")
	if firstName == "" {
		firstName = local
	}
	if firstName == "" {
		firstName = "User"
	}

	username := user.MetadataString("username")
	if username == "" {
		username = local
	}

	role := user.Role
	if role == "" {
		role = "user"
	}

	return &domain.Profile{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   firstName,
		LastName:    user.MetadataString("last_name"),
		Username:    username,
		AvatarURL:   user.MetadataString("avatar_url"),
		PhoneNumber: user.Phone,
		Company:     user.MetadataString("company"),
		Website:     user.MetadataString("website"),
		Bio:         user.MetadataString("bio"),
		Role:        role,
		CreatedAt:   formatTime(user.CreatedAt),
		UpdatedAt:   formatTime(user.UpdatedAt),
	}
}

func emailLocalPart(email string) string {
	if email == "" {
		return ""
	}
	return strings.SplitN(email, "@", 2)[0]
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
