// internal/database/scores.go
package database

import (
	"context"

	"github.com/google/uuid"
)

const awardPoints = `
INSERT INTO scores (tenant_id, contributor, points)
VALUES ($1, $2, $3)
ON CONFLICT (tenant_id, contributor) DO UPDATE
  SET points     = scores.points + EXCLUDED.points,
      updated_at = now()
RETURNING points
`

// AwardPointsParams are the inputs for AwardPoints.
type AwardPointsParams struct {
	TenantID    uuid.UUID
	Contributor string
	Points      int64
}

// AwardPoints adds points to a contributor's total and returns the new total.
// The increment is a single conditional insert, so concurrent awards for the
// same contributor serialize on the row and never lose an update.
func (q *Queries) AwardPoints(ctx context.Context, arg AwardPointsParams) (int64, error) {
	row := q.db.QueryRow(ctx, awardPoints, arg.TenantID, arg.Contributor, arg.Points)
	var points int64
	err := row.Scan(&points)
	return points, err
}

const getPoints = `
SELECT points
FROM scores
WHERE tenant_id = $1 AND contributor = $2
`

// GetPointsParams are the inputs for GetPoints.
type GetPointsParams struct {
	TenantID    uuid.UUID
	Contributor string
}

// GetPoints returns the current total for a contributor. Callers translate
// pgx.ErrNoRows into a zero total.
func (q *Queries) GetPoints(ctx context.Context, arg GetPointsParams) (int64, error) {
	row := q.db.QueryRow(ctx, getPoints, arg.TenantID, arg.Contributor)
	var points int64
	err := row.Scan(&points)
	return points, err
}

const getLeaderboard = `
SELECT contributor, points
FROM scores
WHERE tenant_id = $1
ORDER BY points DESC, created_at ASC
LIMIT $2
`

// GetLeaderboardParams are the inputs for GetLeaderboard.
type GetLeaderboardParams struct {
	TenantID uuid.UUID
	Limit    int32
}

// GetLeaderboardRow is one ranked leaderboard entry.
type GetLeaderboardRow struct {
	Contributor string
	Points      int64
}

// GetLeaderboard returns contributors ranked by points, ties broken by the
// time of their first score.
func (q *Queries) GetLeaderboard(ctx context.Context, arg GetLeaderboardParams) ([]GetLeaderboardRow, error) {
	rows, err := q.db.Query(ctx, getLeaderboard, arg.TenantID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []GetLeaderboardRow
	for rows.Next() {
		var e GetLeaderboardRow
		if err := rows.Scan(&e.Contributor, &e.Points); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
