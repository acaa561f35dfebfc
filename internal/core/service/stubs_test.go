package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadnest/leadnest-api/internal/core/domain"
	"github.com/leadnest/leadnest-api/internal/core/ports"
)

// Shared in-memory stubs for the store ports. Each field with an Err suffix,
// when set, makes the corresponding method fail.

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Profiles
// ---------------------------------------------------------------------------

type stubProfileRepo struct {
	profiles map[string]*domain.Profile

	getErr    error
	updateErr error

	updatedCredits map[string]int
	updateCalls    int
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{
		profiles:       make(map[string]*domain.Profile),
		updatedCredits: make(map[string]int),
	}
}

func (r *stubProfileRepo) GetByID(_ context.Context, userID string) (*domain.Profile, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) UpdateCredits(_ context.Context, userID string, credits int) error {
	r.updateCalls++
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updatedCredits[userID] = credits
	return nil
}

// ---------------------------------------------------------------------------
// Leads
// ---------------------------------------------------------------------------

type stubLeadRepo struct {
	creators  map[string]string
	byCreator []domain.Lead
	active    []domain.Lead

	deleteErr error

	deleted            []string
	listByCreatorCalls int
	listActiveCalls    int
	lastLimit          int
}

func newStubLeadRepo() *stubLeadRepo {
	return &stubLeadRepo{creators: make(map[string]string)}
}

func (r *stubLeadRepo) GetCreator(_ context.Context, leadID string) (string, error) {
	creator, ok := r.creators[leadID]
	if !ok {
		return "", domain.ErrLeadNotFound
	}
	return creator, nil
}

func (r *stubLeadRepo) Delete(_ context.Context, leadID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleted = append(r.deleted, leadID)
	return nil
}

func (r *stubLeadRepo) ListByCreator(_ context.Context, _ string, limit int) ([]domain.Lead, error) {
	r.listByCreatorCalls++
	r.lastLimit = limit
	return r.byCreator, nil
}

func (r *stubLeadRepo) ListActive(_ context.Context, limit int) ([]domain.Lead, error) {
	r.listActiveCalls++
	r.lastLimit = limit
	return r.active, nil
}

// ---------------------------------------------------------------------------
// Applications
// ---------------------------------------------------------------------------

type stubApplicationRepo struct {
	countByApplicant int
	countByLead      int
	forLeads         []domain.Application
	refsForLeads     []domain.ApplicationRef
	byApplicant      []domain.Application
	refsByApplicant  []domain.ApplicationRef
	resolved         []domain.Application

	countByApplicantErr error
	countByLeadErr      error

	listForLeadsCalls int
	refsForLeadsCalls int
	lastLeadIDs       []string
}

func (r *stubApplicationRepo) CountByApplicant(_ context.Context, _ string) (int, error) {
	if r.countByApplicantErr != nil {
		return 0, r.countByApplicantErr
	}
	return r.countByApplicant, nil
}

func (r *stubApplicationRepo) CountByLead(_ context.Context, _ string) (int, error) {
	if r.countByLeadErr != nil {
		return 0, r.countByLeadErr
	}
	return r.countByLead, nil
}

func (r *stubApplicationRepo) ListForLeads(_ context.Context, leadIDs []string, _ int) ([]domain.Application, error) {
	r.listForLeadsCalls++
	r.lastLeadIDs = leadIDs
	return r.forLeads, nil
}

func (r *stubApplicationRepo) RefsForLeads(_ context.Context, leadIDs []string) ([]domain.ApplicationRef, error) {
	r.refsForLeadsCalls++
	r.lastLeadIDs = leadIDs
	return r.refsForLeads, nil
}

func (r *stubApplicationRepo) ListByApplicant(_ context.Context, _ string, _ int) ([]domain.Application, error) {
	return r.byApplicant, nil
}

func (r *stubApplicationRepo) RefsByApplicant(_ context.Context, _ string) ([]domain.ApplicationRef, error) {
	return r.refsByApplicant, nil
}

func (r *stubApplicationRepo) ListResolvedByApplicant(_ context.Context, _ string, _ int) ([]domain.Application, error) {
	return r.resolved, nil
}

// ---------------------------------------------------------------------------
// Completed tasks
// ---------------------------------------------------------------------------

type recordedClaim struct {
	userID string
	taskID string
	at     time.Time
}

type stubClaimRepo struct {
	claimed map[string]bool
	taskIDs []string

	existsErr error
	listErr   error
	recordErr error

	recorded []recordedClaim
}

func newStubClaimRepo() *stubClaimRepo {
	return &stubClaimRepo{claimed: make(map[string]bool)}
}

func claimKey(userID, taskID string) string { return userID + "|" + taskID }

func (r *stubClaimRepo) Exists(_ context.Context, userID, taskID string) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	return r.claimed[claimKey(userID, taskID)], nil
}

func (r *stubClaimRepo) ListTaskIDs(_ context.Context, _ string) ([]string, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.taskIDs, nil
}

func (r *stubClaimRepo) Record(_ context.Context, userID, taskID string, completedAt time.Time) error {
	if r.recordErr != nil {
		return r.recordErr
	}
	r.claimed[claimKey(userID, taskID)] = true
	r.recorded = append(r.recorded, recordedClaim{userID: userID, taskID: taskID, at: completedAt})
	return nil
}

// ---------------------------------------------------------------------------
// Aggregates
// ---------------------------------------------------------------------------

type stubAggregates struct {
	countRaw json.RawMessage
	countErr error

	profile    *domain.Profile
	profileErr error

	countCalls   int
	profileCalls int
}

func (a *stubAggregates) CountLeadApplications(_ context.Context, _ string) (json.RawMessage, error) {
	a.countCalls++
	if a.countErr != nil {
		return nil, a.countErr
	}
	return a.countRaw, nil
}

func (a *stubAggregates) DirectProfile(_ context.Context, _ string) (*domain.Profile, error) {
	a.profileCalls++
	if a.profileErr != nil {
		return nil, a.profileErr
	}
	return a.profile, nil
}

// ---------------------------------------------------------------------------
// Auth provider
// ---------------------------------------------------------------------------

type stubAuthProvider struct {
	signUpFn       func(ctx context.Context, params ports.SignUpParams) (*domain.Identity, *domain.Session, error)
	signInFn       func(ctx context.Context, email, password string) (*domain.Session, *domain.Identity, error)
	userFromToken  func(ctx context.Context, token string) (*domain.Identity, error)
	adminGetUserFn func(ctx context.Context, userID string) (*domain.Identity, error)

	signUpCalls int
}

func (p *stubAuthProvider) SignUp(ctx context.Context, params ports.SignUpParams) (*domain.Identity, *domain.Session, error) {
	p.signUpCalls++
	if p.signUpFn == nil {
		return nil, nil, nil
	}
	return p.signUpFn(ctx, params)
}

func (p *stubAuthProvider) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, *domain.Identity, error) {
	if p.signInFn == nil {
		return nil, nil, nil
	}
	return p.signInFn(ctx, email, password)
}

func (p *stubAuthProvider) UserFromToken(ctx context.Context, token string) (*domain.Identity, error) {
	if p.userFromToken == nil {
		return nil, nil
	}
	return p.userFromToken(ctx, token)
}

func (p *stubAuthProvider) AdminGetUser(ctx context.Context, userID string) (*domain.Identity, error) {
	if p.adminGetUserFn == nil {
		return nil, nil
	}
	return p.adminGetUserFn(ctx, userID)
}
