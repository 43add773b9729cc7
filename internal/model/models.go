// internal/model/models.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Tenant binds one community to one repository and its webhook credential.
type Tenant struct {
	ID                 uuid.UUID `json:"id"`
	CommunityID        string    `json:"community_id"`
	RepositoryName     string    `json:"repository_name"`
	WebhookSecret      string    `json:"-"`
	NotificationTarget string    `json:"notification_target"`
	OwnerIdentity      string    `json:"owner_identity"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ScoreEntry is one contributor's cumulative standing within one tenant.
type ScoreEntry struct {
	Contributor string `json:"contributor"`
	Points      int64  `json:"points"`
}

// ScoringEvent is the normalized fact extracted from a merged pull-request
// payload. It is transient and never persisted.
type ScoringEvent struct {
	Contributor string
	IssueNumber int
	PRNumber    int
	Title       string
	URL         string
}

// RegistrationRequest carries the parameters of a community registration.
type RegistrationRequest struct {
	CommunityID        string `json:"community_id"`
	RepositoryName     string `json:"repository_name"`
	NotificationTarget string `json:"notification_target"`
	OwnerIdentity      string `json:"owner_identity"`
}

// RegistrationResult is returned to the registrant exactly once. The secret
// is never logged and never re-displayed.
type RegistrationResult struct {
	TenantID      uuid.UUID `json:"tenant_id"`
	PayloadURL    string    `json:"payload_url"`
	WebhookSecret string    `json:"webhook_secret"`
	ContentType   string    `json:"content_type"`
}
