// internal/ledger/ledger.go

// Package ledger is the durable per-tenant, per-contributor point
// accumulator. Totals only grow; there is no subtraction operation.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"merge-scoreboard/internal/database"
	"merge-scoreboard/internal/model"
)

// Ledger persists score accumulation on top of the query layer.
type Ledger struct {
	q database.Querier
}

// New creates a Ledger.
func New(q database.Querier) *Ledger {
	return &Ledger{q: q}
}

// Award adds points to a contributor's total and returns the new total. The
// underlying statement is an atomic read-modify-write, so concurrent awards
// for the same contributor never lose an update. Non-positive points are a
// no-op that still reports the current total.
func (l *Ledger) Award(ctx context.Context, tenantID uuid.UUID, contributor string, points int64) (int64, error) {
	if points <= 0 {
		total, err := l.q.GetPoints(ctx, database.GetPointsParams{
			TenantID:    tenantID,
			Contributor: contributor,
		})
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		if err != nil {
			return 0, fmt.Errorf("get points for %s: %w", contributor, err)
		}
		return total, nil
	}

	total, err := l.q.AwardPoints(ctx, database.AwardPointsParams{
		TenantID:    tenantID,
		Contributor: contributor,
		Points:      points,
	})
	if err != nil {
		return 0, fmt.Errorf("award %d points to %s: %w", points, contributor, err)
	}
	return total, nil
}

// Leaderboard returns up to limit contributors ranked by points descending,
// ties broken by who scored first.
func (l *Ledger) Leaderboard(ctx context.Context, tenantID uuid.UUID, limit int) ([]model.ScoreEntry, error) {
	rows, err := l.q.GetLeaderboard(ctx, database.GetLeaderboardParams{
		TenantID: tenantID,
		Limit:    int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("leaderboard for tenant %s: %w", tenantID, err)
	}

	entries := make([]model.ScoreEntry, len(rows))
	for i, r := range rows {
		entries[i] = model.ScoreEntry{Contributor: r.Contributor, Points: r.Points}
	}
	return entries, nil
}
