// internal/scoring/scorer.go
package scoring

import (
	"context"
	"log/slog"
	"strings"
	"time"

	apperrors "merge-scoreboard/internal/errors"
)

// Point values by issue label, evaluated in precedence order: the first
// label present wins.
const (
	PointsHard   = 20
	PointsMedium = 10
	PointsEasy   = 5
)

// LabelFetcher looks up the labels of an issue. Implemented by the GitHub
// client; network-bound and read-only.
type LabelFetcher interface {
	GetIssueLabels(ctx context.Context, owner, name string, number int) ([]string, error)
}

// Scorer prices a linked issue from its labels.
type Scorer struct {
	fetcher LabelFetcher
	timeout time.Duration
	logger  *slog.Logger
}

// NewScorer creates a Scorer. The timeout bounds each label lookup so a
// stalled provider call never delays webhook acknowledgment.
func NewScorer(fetcher LabelFetcher, timeout time.Duration, logger *slog.Logger) *Scorer {
	return &Scorer{
		fetcher: fetcher,
		timeout: timeout,
		logger:  logger,
	}
}

// Score returns the point value for an issue in the given 'owner/name'
// repository. Lookup failures of any kind degrade to zero points: a missing
// label must never block acknowledging the webhook.
func (s *Scorer) Score(ctx context.Context, repositoryName string, issueNumber int) int64 {
	owner, name, err := splitRepositoryName(repositoryName)
	if err != nil {
		s.logger.Warn("Cannot score issue, bad repository name", "repository", repositoryName, "error", err)
		return 0
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	labels, err := s.fetcher.GetIssueLabels(ctx, owner, name, issueNumber)
	if err != nil {
		s.logger.Warn("Issue label lookup failed, awarding no points",
			"repository", repositoryName, "issue", issueNumber, "error", err)
		return 0
	}

	return PointsForLabels(labels)
}

// PointsForLabels maps a label set to a point value. Comparison is
// case-insensitive; hard > medium > easy; no recognized label means zero.
func PointsForLabels(labels []string) int64 {
	present := make(map[string]bool, len(labels))
	for _, l := range labels {
		present[strings.ToLower(l)] = true
	}
	switch {
	case present["hard"]:
		return PointsHard
	case present["medium"]:
		return PointsMedium
	case present["easy"]:
		return PointsEasy
	default:
		return 0
	}
}

func splitRepositoryName(repositoryName string) (owner, name string, err error) {
	parts := strings.Split(repositoryName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", &apperrors.ErrInvalidRepoFormat{Repo: repositoryName}
	}
	return parts[0], parts[1], nil
}
