// internal/database/models.go
package database

import (
	"time"

	"github.com/google/uuid"
)

// Tenant mirrors a row of the tenants table.
type Tenant struct {
	ID                 uuid.UUID
	CommunityID        string
	RepositoryName     string
	WebhookSecret      string
	NotificationTarget string
	OwnerIdentity      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Score mirrors a row of the scores table.
type Score struct {
	TenantID    uuid.UUID
	Contributor string
	Points      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
