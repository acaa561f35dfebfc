package domain

const (
	LeadStatusActive = "active"
	LeadStatusClosed = "closed"
)

const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// Lead is a posting owned by a lead-applier profile. Only its creator may
// delete it.
type Lead struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// Application links an applicant profile to a lead. Status transitions happen
// outside this service; we only read them for aggregation and notifications.
type Application struct {
	ID          string   `json:"id"`
	LeadID      string   `json:"lead_id,omitempty"`
	ApplicantID string   `json:"applicant_id,omitempty"`
	Status      string   `json:"status,omitempty"`
	Message     string   `json:"message,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
	Lead        *Lead    `json:"leads,omitempty"`
	Applicant   *Profile `json:"profiles,omitempty"`
}

// ApplicationRef is the minimal (id, status) projection fetched in full for
// stats computation, separate from the capped display fetch.
type ApplicationRef struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
