// internal/scoring/extractor.go

// Package scoring turns provider payloads into scored events: the extractor
// normalizes a merged pull-request payload into a ScoringEvent, and the
// scorer prices it from the linked issue's labels.
package scoring

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"merge-scoreboard/internal/model"
)

// PullRequestEvent is the subset of the provider's pull_request payload the
// pipeline cares about. Unknown fields are ignored; missing fields yield no
// event rather than an error.
type PullRequestEvent struct {
	Action      string      `json:"action"`
	PullRequest PullRequest `json:"pull_request"`
}

// PullRequest carries the merge-request details used for scoring.
type PullRequest struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
	Body    string `json:"body"`
	Merged  bool   `json:"merged"`
	User    User   `json:"user"`
}

// User is the external identity of the merge-request author.
type User struct {
	Login string `json:"login"`
}

// closingKeywords is the synonym set recognized in PR descriptions. It is
// data, not logic: extending it only means adding a word here.
var closingKeywords = []string{
	"close", "closes", "closed",
	"fix", "fixes", "fixed",
	"resolve", "resolves", "resolved",
}

var issueRefPattern = regexp.MustCompile(
	`(?i)(?:` + strings.Join(closingKeywords, "|") + `)\s+#(\d+)`,
)

// Extract parses a webhook body and returns the scoring event it describes.
// The second return value is false when no event applies: the payload is not
// a merged-and-closed pull request, it is malformed, or its description
// references no issue. When multiple issue references are present the first
// match wins.
func Extract(body []byte) (model.ScoringEvent, bool) {
	var payload PullRequestEvent
	if err := json.Unmarshal(body, &payload); err != nil {
		return model.ScoringEvent{}, false
	}
	if payload.Action != "closed" || !payload.PullRequest.Merged {
		return model.ScoringEvent{}, false
	}

	match := issueRefPattern.FindStringSubmatch(payload.PullRequest.Body)
	if match == nil {
		return model.ScoringEvent{}, false
	}
	issueNumber, err := strconv.Atoi(match[1])
	if err != nil {
		return model.ScoringEvent{}, false
	}

	return model.ScoringEvent{
		Contributor: payload.PullRequest.User.Login,
		IssueNumber: issueNumber,
		PRNumber:    payload.PullRequest.Number,
		Title:       payload.PullRequest.Title,
		URL:         payload.PullRequest.HTMLURL,
	}, true
}
