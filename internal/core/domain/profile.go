package domain

import "time"

const (
	// RoleLeadApplier posts leads and reviews incoming applications.
	RoleLeadApplier = "lead-applier"
	// RoleLeadFinder browses active leads and applies to them.
	RoleLeadFinder = "lead-finder"
)

// AllowedRoles is the closed set a new account may sign up with.
var AllowedRoles = []string{RoleLeadFinder, RoleLeadApplier}

// Identity is the authenticated principal as resolved by the auth provider.
// The ID is immutable; metadata is whatever the user supplied at signup.
type Identity struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone,omitempty"`
	Role         string         `json:"role,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at,omitzero"`
	UpdatedAt    time.Time      `json:"updated_at,omitzero"`
}

// MetadataString returns the named user_metadata entry when it is a string.
func (i *Identity) MetadataString(key string) string {
	if i == nil || i.UserMetadata == nil {
		return ""
	}
	s, _ := i.UserMetadata[key].(string)
	return s
}

// Session is the token bundle issued by the auth provider on signup/login.
type Session struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	RefreshToken string    `json:"refresh_token"`
	User         *Identity `json:"user,omitempty"`
}

// Profile is the denormalized per-user business record, created store-side by a
// trigger when the identity is created. This service only ever writes credits.
type Profile struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Username    string `json:"username,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Company     string `json:"company,omitempty"`
	Position    string `json:"position,omitempty"`
	Website     string `json:"website,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Address     string `json:"address,omitempty"`
	Role        string `json:"role,omitempty"`
	Credits     int    `json:"credits"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}
