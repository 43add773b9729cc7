// internal/api/handler.go
package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "merge-scoreboard/internal/errors"
	"merge-scoreboard/internal/metrics"
	"merge-scoreboard/internal/model"
	"merge-scoreboard/internal/notify"
	"merge-scoreboard/internal/scoring"
	"merge-scoreboard/internal/signature"
)

// maxBodyBytes caps webhook payload reads. Provider payloads are well under
// this; anything larger is not a legitimate delivery.
const maxBodyBytes = 1 << 20

// TenantStore resolves tenants for the webhook route and the leaderboard.
type TenantStore interface {
	FindTenantByID(ctx context.Context, id uuid.UUID) (model.Tenant, error)
	FindTenantByCommunity(ctx context.Context, communityID string) (model.Tenant, error)
}

// Registrar is the registration contract consumed by the command layer.
type Registrar interface {
	Register(ctx context.Context, req model.RegistrationRequest) (model.RegistrationResult, error)
}

// Scorer prices a linked issue. Failures degrade to zero points.
type Scorer interface {
	Score(ctx context.Context, repositoryName string, issueNumber int) int64
}

// Ledger accumulates and ranks contributor points.
type Ledger interface {
	Award(ctx context.Context, tenantID uuid.UUID, contributor string, points int64) (int64, error)
	Leaderboard(ctx context.Context, tenantID uuid.UUID, limit int) ([]model.ScoreEntry, error)
}

// Handler is the container for API dependencies.
type Handler struct {
	tenants       TenantStore
	registrar     Registrar
	scorer        Scorer
	ledger        Ledger
	notifier      notify.Sender
	metrics       *metrics.Metrics
	logger        *slog.Logger
	notifyTimeout time.Duration
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(tenants TenantStore, registrar Registrar, scorer Scorer, ledger Ledger, notifier notify.Sender, m *metrics.Metrics, logger *slog.Logger, notifyTimeout time.Duration) http.Handler {
	h := &Handler{
		tenants:       tenants,
		registrar:     registrar,
		scorer:        scorer,
		ledger:        ledger,
		notifier:      notifier,
		metrics:       m,
		logger:        logger,
		notifyTimeout: notifyTimeout,
	}

	r := chi.NewRouter()

	// Middleware stack. No access logger: registration responses carry
	// secrets and must never end up in request logs.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", h.healthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}))

	r.Post("/webhook/{tenantID}", h.handleWebhook)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/registrations", h.handleRegister)
		r.Get("/communities/{communityID}/leaderboard", h.getLeaderboard)
	})

	return r
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleWebhook runs the per-delivery pipeline:
// resolve tenant -> verify signature -> extract event -> score -> award.
// POST /webhook/{tenantID}
func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		h.metrics.WebhookDuration.Observe(time.Since(start).Seconds())
	}()

	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		h.metrics.WebhooksReceived.WithLabelValues("unknown_tenant").Inc()
		respondWithError(w, http.StatusNotFound, "Unknown tenant")
		return
	}

	tenant, err := h.tenants.FindTenantByID(r.Context(), tenantID)
	if errors.Is(err, apperrors.ErrTenantNotFound) {
		h.metrics.WebhooksReceived.WithLabelValues("unknown_tenant").Inc()
		respondWithError(w, http.StatusNotFound, "Unknown tenant")
		return
	}
	if err != nil {
		h.logger.Error("Failed to resolve tenant", "tenant_id", tenantID, "error", err)
		h.metrics.WebhooksReceived.WithLabelValues("store_error").Inc()
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// The digest must cover the exact bytes on the wire, so read the body
	// before any structured parsing.
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.metrics.WebhooksReceived.WithLabelValues("bad_request").Inc()
		respondWithError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	switch err := signature.Verify([]byte(tenant.WebhookSecret), body, r.Header.Get("X-Signature-256")); {
	case errors.Is(err, signature.ErrMissingSignature), errors.Is(err, signature.ErrMalformedSignature):
		h.metrics.SignatureFailures.Inc()
		h.metrics.WebhooksReceived.WithLabelValues("bad_signature").Inc()
		respondWithError(w, http.StatusBadRequest, "Missing or malformed signature header")
		return
	case err != nil:
		h.logger.Warn("Webhook signature mismatch", "tenant_id", tenant.ID)
		h.metrics.SignatureFailures.Inc()
		h.metrics.WebhooksReceived.WithLabelValues("bad_signature").Inc()
		respondWithError(w, http.StatusForbidden, "Signature mismatch")
		return
	}

	event, ok := scoring.Extract(body)
	if !ok {
		h.metrics.WebhooksReceived.WithLabelValues("no_event").Inc()
		w.WriteHeader(http.StatusNoContent)
		return
	}

	points := h.scorer.Score(r.Context(), tenant.RepositoryName, event.IssueNumber)
	if points == 0 {
		h.logger.Info("Merged PR carries no scorable label, no points awarded",
			"tenant_id", tenant.ID, "pr", event.PRNumber, "issue", event.IssueNumber)
		h.metrics.WebhooksReceived.WithLabelValues("zero_points").Inc()
		w.WriteHeader(http.StatusNoContent)
		return
	}

	total, err := h.ledger.Award(r.Context(), tenant.ID, event.Contributor, points)
	if err != nil {
		// Acknowledging a delivery we failed to record would be dishonest;
		// a 5xx lets the provider retry.
		h.logger.Error("Failed to record award", "tenant_id", tenant.ID, "contributor", event.Contributor, "error", err)
		h.metrics.WebhooksReceived.WithLabelValues("store_error").Inc()
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("Points awarded",
		"tenant_id", tenant.ID, "contributor", event.Contributor, "points", points, "total", total)
	h.metrics.EventsScored.Inc()
	h.metrics.PointsAwarded.Add(float64(points))
	h.metrics.WebhooksReceived.WithLabelValues("scored").Inc()

	h.dispatchNotification(tenant, event, points)
	w.WriteHeader(http.StatusNoContent)
}

// dispatchNotification sends the notification intent on a detached context so
// a slow or failing sender never blocks the webhook response.
func (h *Handler) dispatchNotification(tenant model.Tenant, event model.ScoringEvent, points int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.notifyTimeout)
		defer cancel()

		err := h.notifier.Notify(ctx, tenant.NotificationTarget, notify.Notification{
			Contributor: event.Contributor,
			Points:      points,
			Title:       event.Title,
			URL:         event.URL,
		})
		if err != nil {
			h.logger.Warn("Notification send failed",
				"tenant_id", tenant.ID, "target", tenant.NotificationTarget, "error", err)
			h.metrics.NotifyFailures.Inc()
		}
	}()
}

// handleRegister creates or replaces a community registration.
// POST /v1/registrations
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegistrationRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CommunityID == "" || req.RepositoryName == "" || req.NotificationTarget == "" {
		respondWithError(w, http.StatusBadRequest, "community_id, repository_name and notification_target are required")
		return
	}

	result, err := h.registrar.Register(r.Context(), req)
	if err != nil {
		var formatErr *apperrors.ErrInvalidRepoFormat
		if errors.As(err, &formatErr) {
			respondWithError(w, http.StatusBadRequest, formatErr.Error())
			return
		}
		h.logger.Error("Registration failed", "community_id", req.CommunityID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// The secret appears in this response exactly once and is never logged.
	h.logger.Info("Community registered",
		"community_id", req.CommunityID, "repository", req.RepositoryName, "tenant_id", result.TenantID)
	respondWithJSON(w, http.StatusCreated, result)
}

// getLeaderboard returns the ranked standings for a community's repository.
// GET /v1/communities/{communityID}/leaderboard?limit=N
func (h *Handler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	communityID := chi.URLParam(r, "communityID")

	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		limitStr = "10" // Default limit
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 100 {
		respondWithError(w, http.StatusBadRequest, "Invalid 'limit' parameter. Must be an integer between 1 and 100.")
		return
	}

	tenant, err := h.tenants.FindTenantByCommunity(r.Context(), communityID)
	if errors.Is(err, apperrors.ErrTenantNotFound) {
		respondWithError(w, http.StatusNotFound, "Community not registered")
		return
	}
	if err != nil {
		h.logger.Error("Failed to resolve community", "community_id", communityID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	entries, err := h.ledger.Leaderboard(r.Context(), tenant.ID, limit)
	if err != nil {
		h.logger.Error("Failed to get leaderboard", "tenant_id", tenant.ID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}
