// internal/database/querier.go
package database

import (
	"context"

	"github.com/google/uuid"
)

// Querier is the narrow store contract consumed by the registry and ledger.
type Querier interface {
	UpsertTenant(ctx context.Context, arg UpsertTenantParams) (Tenant, error)
	GetTenantByID(ctx context.Context, id uuid.UUID) (Tenant, error)
	GetTenantByCommunity(ctx context.Context, communityID string) (Tenant, error)
	AwardPoints(ctx context.Context, arg AwardPointsParams) (int64, error)
	GetPoints(ctx context.Context, arg GetPointsParams) (int64, error)
	GetLeaderboard(ctx context.Context, arg GetLeaderboardParams) ([]GetLeaderboardRow, error)
}

var _ Querier = (*Queries)(nil)
