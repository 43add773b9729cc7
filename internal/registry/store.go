// internal/registry/store.go

// Package registry manages tenant registrations: credential issuance and
// the community/repository binding each webhook route resolves against.
package registry

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"merge-scoreboard/internal/database"
	apperrors "merge-scoreboard/internal/errors"
	"merge-scoreboard/internal/model"
)

// secretBytes is the entropy of a webhook secret. 16 bytes rendered as hex
// matches the provider's recommendation for shared webhook secrets.
const secretBytes = 16

// CredentialStore persists tenant registration records.
type CredentialStore struct {
	q database.Querier
}

// NewCredentialStore creates a CredentialStore on top of the query layer.
func NewCredentialStore(q database.Querier) *CredentialStore {
	return &CredentialStore{q: q}
}

// UpsertTenant creates or replaces the registration for a community. A fresh
// secret is generated on every call, including updates, so any previously
// issued secret stops verifying immediately. The tenant ID is stable across
// re-registrations and existing scores remain attached to it.
func (s *CredentialStore) UpsertTenant(ctx context.Context, req model.RegistrationRequest) (model.Tenant, error) {
	if err := validateRepositoryName(req.RepositoryName); err != nil {
		return model.Tenant{}, err
	}

	secret, err := newSecret()
	if err != nil {
		return model.Tenant{}, fmt.Errorf("generate webhook secret: %w", err)
	}

	row, err := s.q.UpsertTenant(ctx, database.UpsertTenantParams{
		ID:                 uuid.New(),
		CommunityID:        req.CommunityID,
		RepositoryName:     req.RepositoryName,
		WebhookSecret:      secret,
		NotificationTarget: req.NotificationTarget,
		OwnerIdentity:      req.OwnerIdentity,
	})
	if err != nil {
		return model.Tenant{}, fmt.Errorf("upsert tenant for community %s: %w", req.CommunityID, err)
	}
	return toModelTenant(row), nil
}

// FindTenantByID looks up a tenant by its surrogate ID.
func (s *CredentialStore) FindTenantByID(ctx context.Context, id uuid.UUID) (model.Tenant, error) {
	row, err := s.q.GetTenantByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Tenant{}, apperrors.ErrTenantNotFound
	}
	if err != nil {
		return model.Tenant{}, fmt.Errorf("get tenant %s: %w", id, err)
	}
	return toModelTenant(row), nil
}

// FindTenantByCommunity looks up a tenant by its community key.
func (s *CredentialStore) FindTenantByCommunity(ctx context.Context, communityID string) (model.Tenant, error) {
	row, err := s.q.GetTenantByCommunity(ctx, communityID)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Tenant{}, apperrors.ErrTenantNotFound
	}
	if err != nil {
		return model.Tenant{}, fmt.Errorf("get tenant for community %s: %w", communityID, err)
	}
	return toModelTenant(row), nil
}

func newSecret() (string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func validateRepositoryName(repositoryName string) error {
	parts := strings.Split(repositoryName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return &apperrors.ErrInvalidRepoFormat{Repo: repositoryName}
	}
	return nil
}

func toModelTenant(row database.Tenant) model.Tenant {
	return model.Tenant{
		ID:                 row.ID,
		CommunityID:        row.CommunityID,
		RepositoryName:     row.RepositoryName,
		WebhookSecret:      row.WebhookSecret,
		NotificationTarget: row.NotificationTarget,
		OwnerIdentity:      row.OwnerIdentity,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}
