package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/leadnest/leadnest-api/internal/core/domain"
)

func mustParseTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return ts
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{URL: srv.URL, ServiceKey: "service-key"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNew_RequiresURLAndKey(t *testing.T) {
	if _, err := New(Config{ServiceKey: "k"}); err == nil {
		t.Error("expected error without URL")
	}
	if _, err := New(Config{URL: "http://localhost"}); err == nil {
		t.Error("expected error without service key")
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	client, err := New(Config{URL: "http://localhost:54321/", ServiceKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.baseURL != "http://localhost:54321" {
		t.Errorf("base URL must be trimmed, got %q", client.baseURL)
	}
}

func TestClient_ServiceKeyHeaders(t *testing.T) {
	var gotAPIKey, gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAPIKey != "service-key" {
		t.Errorf("apikey header: got %q", gotAPIKey)
	}
	if gotAuth != "Bearer service-key" {
		t.Errorf("Authorization header: got %q", gotAuth)
	}
}

func TestClient_TransportErrorWrapsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := New(Config{URL: srv.URL, ServiceKey: "k"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	srv.Close() // connection refused from here on

	err = client.Health(context.Background())
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestParseContentRangeTotal(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0-0/7", 7, false},
		{"*/0", 0, false},
		{"0-9/120", 120, false},
		{"*/*", 0, true},
		{"", 0, true},
		{"garbage", 0, true},
	}
	for _, tc := range cases {
		got, err := parseContentRangeTotal(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestInList(t *testing.T) {
	got := inList([]string{"a", "b", "c"})
	if got != "in.(a,b,c)" {
		t.Errorf("expected in.(a,b,c), got %q", got)
	}
}

func TestSnippet_TrimsLongBodies(t *testing.T) {
	long := strings.Repeat("x", 500)
	got := snippet([]byte(long))
	if len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Errorf("long bodies must be trimmed to 200 chars plus ellipsis, got len %d", len(got))
	}
	if snippet([]byte("  short  ")) != "short" {
		t.Error("short bodies must only be whitespace-trimmed")
	}
}

// ---------------------------------------------------------------------------
// ProfileRepository
// ---------------------------------------------------------------------------

func TestProfileRepository_GetByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/profiles" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("id"); got != "eq.u1" {
			t.Errorf("id filter: got %q", got)
		}
		if got := r.Header.Get("Accept"); got != singleObjectAccept {
			t.Errorf("Accept header: got %q", got)
		}
		w.Write([]byte(`{"id":"u1","username":"alice","credits":10}`))
	})
	repo := NewProfileRepository(client)

	profile, err := repo.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Username != "alice" || profile.Credits != 10 {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestProfileRepository_GetByID_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
		w.Write([]byte(`{"message":"JSON object requested, multiple (or no) rows returned"}`))
	})
	repo := NewProfileRepository(client)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("406 must map to ErrProfileNotFound, got %v", err)
	}
}

func TestProfileRepository_UpdateCredits(t *testing.T) {
	var gotMethod, gotPrefer string
	var gotBody []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPrefer = r.Header.Get("Prefer")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	})
	repo := NewProfileRepository(client)

	if err := repo.UpdateCredits(context.Background(), "u1", 15); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("expected PATCH, got %s", gotMethod)
	}
	if gotPrefer != "return=minimal" {
		t.Errorf("Prefer header: got %q", gotPrefer)
	}
	var body map[string]int
	if err := json.Unmarshal(gotBody, &body); err != nil || body["credits"] != 15 {
		t.Errorf("unexpected body: %s", gotBody)
	}
}

func TestProfileRepository_UpdateCredits_WriteError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	repo := NewProfileRepository(client)

	err := repo.UpdateCredits(context.Background(), "u1", 15)
	if !errors.Is(err, domain.ErrUpstreamWrite) {
		t.Fatalf("expected ErrUpstreamWrite, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// LeadRepository
// ---------------------------------------------------------------------------

func TestLeadRepository_GetCreator(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("select"); got != "created_by" {
			t.Errorf("select: got %q", got)
		}
		w.Write([]byte(`{"created_by":"owner-1"}`))
	})
	repo := NewLeadRepository(client)

	creator, err := repo.GetCreator(context.Background(), "l1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creator != "owner-1" {
		t.Errorf("expected owner-1, got %q", creator)
	}
}

func TestLeadRepository_GetCreator_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
	})
	repo := NewLeadRepository(client)

	_, err := repo.GetCreator(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrLeadNotFound) {
		t.Fatalf("406 must map to ErrLeadNotFound, got %v", err)
	}
}

func TestLeadRepository_ListActive_Query(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("status") != "eq.active" {
			t.Errorf("status filter: got %q", q.Get("status"))
		}
		if q.Get("order") != "created_at.desc" {
			t.Errorf("order: got %q", q.Get("order"))
		}
		if q.Get("limit") != "10" {
			t.Errorf("limit: got %q", q.Get("limit"))
		}
		w.Write([]byte(`[{"id":"l1","status":"active"}]`))
	})
	repo := NewLeadRepository(client)

	leads, err := repo.ListActive(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 1 || leads[0].ID != "l1" {
		t.Errorf("unexpected leads: %+v", leads)
	}
}

// ---------------------------------------------------------------------------
// ApplicationRepository
// ---------------------------------------------------------------------------

func TestApplicationRepository_CountByLead(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Prefer"); got != "count=exact" {
			t.Errorf("Prefer header: got %q", got)
		}
		if got := r.Header.Get("Range"); got != "0-0" {
			t.Errorf("Range header: got %q", got)
		}
		w.Header().Set("Content-Range", "0-0/7")
		w.WriteHeader(http.StatusPartialContent)
		w.Write([]byte(`[{"id":"a1"}]`))
	})
	repo := NewApplicationRepository(client)

	n, err := repo.CountByLead(context.Background(), "l1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Errorf("expected 7, got %d", n)
	}
}

func TestApplicationRepository_CountByLead_EmptyTable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// PostgREST answers 416 for Range 0-0 on an empty set; the count is
		// still in the header.
		w.Header().Set("Content-Range", "*/0")
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
	})
	repo := NewApplicationRepository(client)

	n, err := repo.CountByLead(context.Background(), "l1")
	if err != nil {
		t.Fatalf("416 with a count header must not fail: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0, got %d", n)
	}
}

func TestApplicationRepository_ListForLeads_Query(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("lead_id") != "in.(l1,l2)" {
			t.Errorf("lead_id filter: got %q", q.Get("lead_id"))
		}
		if q.Get("select") != applicantJoin {
			t.Errorf("select: got %q", q.Get("select"))
		}
		w.Write([]byte(`[{"id":"a1","leads":{"id":"l1"},"profiles":{"id":"u9","username":"bob"}}]`))
	})
	repo := NewApplicationRepository(client)

	apps, err := repo.ListForLeads(context.Background(), []string{"l1", "l2"}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(apps))
	}
	if apps[0].Lead == nil || apps[0].Lead.ID != "l1" {
		t.Errorf("embedded lead must decode, got %+v", apps[0].Lead)
	}
	if apps[0].Applicant == nil || apps[0].Applicant.Username != "bob" {
		t.Errorf("embedded applicant must decode, got %+v", apps[0].Applicant)
	}
}

func TestApplicationRepository_ListResolved_ExcludesPending(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("status") != "neq.pending" {
			t.Errorf("status filter: got %q", q.Get("status"))
		}
		if q.Get("order") != "updated_at.desc" {
			t.Errorf("order: got %q", q.Get("order"))
		}
		w.Write([]byte(`[]`))
	})
	repo := NewApplicationRepository(client)

	if _, err := repo.ListResolvedByApplicant(context.Background(), "u1", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ---------------------------------------------------------------------------
// CompletedTaskRepository
// ---------------------------------------------------------------------------

func TestCompletedTaskRepository_Exists(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("user_id") != "eq.u1" || q.Get("task_id") != "eq.bio" {
			t.Errorf("unexpected filters: %v", q)
		}
		if q.Get("limit") != "1" {
			t.Errorf("limit: got %q", q.Get("limit"))
		}
		w.Write([]byte(`[{"id":"c1"}]`))
	})
	repo := NewCompletedTaskRepository(client)

	claimed, err := repo.Exists(context.Background(), "u1", "bio")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !claimed {
		t.Error("expected claimed=true")
	}
}

func TestCompletedTaskRepository_ListTaskIDs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"task_id":"bio"},{"task_id":"profile"}]`))
	})
	repo := NewCompletedTaskRepository(client)

	ids, err := repo.ListTaskIDs(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "bio" || ids[1] != "profile" {
		t.Errorf("unexpected ids: %v", ids)
	}
}

func TestCompletedTaskRepository_Record(t *testing.T) {
	var gotBody []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	})
	repo := NewCompletedTaskRepository(client)

	at := mustParseTime(t, "2026-03-01T12:00:00Z")
	if err := repo.Record(context.Background(), "u1", "bio", at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body map[string]string
	if err := json.Unmarshal(gotBody, &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["user_id"] != "u1" || body["task_id"] != "bio" {
		t.Errorf("unexpected body: %v", body)
	}
	if body["completed_at"] != "2026-03-01T12:00:00Z" {
		t.Errorf("completed_at must be RFC3339 UTC, got %q", body["completed_at"])
	}
}

// ---------------------------------------------------------------------------
// Aggregates
// ---------------------------------------------------------------------------

func TestAggregates_CountLeadApplications(t *testing.T) {
	var gotBody []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/rpc/count_lead_applications" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`4`))
	})
	agg := NewAggregates(client)

	raw, err := agg.CountLeadApplications(context.Background(), "l1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `4` {
		t.Errorf("raw body must pass through untouched, got %s", raw)
	}
	var body map[string]string
	if err := json.Unmarshal(gotBody, &body); err != nil || body["lead_id_arg"] != "l1" {
		t.Errorf("unexpected rpc args: %s", gotBody)
	}
}

func TestAggregates_DirectProfile_ArrayShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/rpc/get_direct_profile_data" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id":"u1","username":"alice"}]`))
	})
	agg := NewAggregates(client)

	profile, err := agg.DirectProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile == nil || profile.Username != "alice" {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestAggregates_DirectProfile_ObjectShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"u1","username":"alice"}`))
	})
	agg := NewAggregates(client)

	profile, err := agg.DirectProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile == nil || profile.ID != "u1" {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestAggregates_DirectProfile_EmptyMeansNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	agg := NewAggregates(client)

	profile, err := agg.DirectProfile(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile != nil {
		t.Errorf("empty result must yield nil, got %+v", profile)
	}
}
