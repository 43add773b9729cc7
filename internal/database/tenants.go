// internal/database/tenants.go
package database

import (
	"context"

	"github.com/google/uuid"
)

const upsertTenant = `
INSERT INTO tenants (id, community_id, repository_name, webhook_secret, notification_target, owner_identity)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (community_id) DO UPDATE
  SET repository_name     = EXCLUDED.repository_name,
      webhook_secret      = EXCLUDED.webhook_secret,
      notification_target = EXCLUDED.notification_target,
      owner_identity      = EXCLUDED.owner_identity,
      updated_at          = now()
RETURNING id, community_id, repository_name, webhook_secret, notification_target, owner_identity, created_at, updated_at
`

// UpsertTenantParams are the inputs for UpsertTenant. ID is only used when the
// community is not yet registered; on conflict the existing row keeps its ID,
// so scores tied to the tenant survive re-registration.
type UpsertTenantParams struct {
	ID                 uuid.UUID
	CommunityID        string
	RepositoryName     string
	WebhookSecret      string
	NotificationTarget string
	OwnerIdentity      string
}

// UpsertTenant atomically creates or replaces the registration for a community.
func (q *Queries) UpsertTenant(ctx context.Context, arg UpsertTenantParams) (Tenant, error) {
	row := q.db.QueryRow(ctx, upsertTenant,
		arg.ID,
		arg.CommunityID,
		arg.RepositoryName,
		arg.WebhookSecret,
		arg.NotificationTarget,
		arg.OwnerIdentity,
	)
	var t Tenant
	err := row.Scan(
		&t.ID,
		&t.CommunityID,
		&t.RepositoryName,
		&t.WebhookSecret,
		&t.NotificationTarget,
		&t.OwnerIdentity,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

const getTenantByID = `
SELECT id, community_id, repository_name, webhook_secret, notification_target, owner_identity, created_at, updated_at
FROM tenants
WHERE id = $1
`

// GetTenantByID looks up a tenant by its surrogate ID.
func (q *Queries) GetTenantByID(ctx context.Context, id uuid.UUID) (Tenant, error) {
	row := q.db.QueryRow(ctx, getTenantByID, id)
	var t Tenant
	err := row.Scan(
		&t.ID,
		&t.CommunityID,
		&t.RepositoryName,
		&t.WebhookSecret,
		&t.NotificationTarget,
		&t.OwnerIdentity,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

const getTenantByCommunity = `
SELECT id, community_id, repository_name, webhook_secret, notification_target, owner_identity, created_at, updated_at
FROM tenants
WHERE community_id = $1
`

// GetTenantByCommunity looks up a tenant by its community key.
func (q *Queries) GetTenantByCommunity(ctx context.Context, communityID string) (Tenant, error) {
	row := q.db.QueryRow(ctx, getTenantByCommunity, communityID)
	var t Tenant
	err := row.Scan(
		&t.ID,
		&t.CommunityID,
		&t.RepositoryName,
		&t.WebhookSecret,
		&t.NotificationTarget,
		&t.OwnerIdentity,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}
