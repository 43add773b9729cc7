// internal/registry/service.go
package registry

import (
	"context"
	"fmt"
	"strings"

	"merge-scoreboard/internal/model"
)

// Service exposes the registration contract to the command layer.
type Service struct {
	store         *CredentialStore
	publicBaseURL string
}

// NewService creates a registration Service. publicBaseURL is the externally
// reachable address webhook deliveries are sent to.
func NewService(store *CredentialStore, publicBaseURL string) *Service {
	return &Service{
		store:         store,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Register creates or replaces a community's registration and returns the
// payload URL and the freshly rotated secret. The result is shown to the
// registrant exactly once; callers must not log it.
func (s *Service) Register(ctx context.Context, req model.RegistrationRequest) (model.RegistrationResult, error) {
	tenant, err := s.store.UpsertTenant(ctx, req)
	if err != nil {
		return model.RegistrationResult{}, err
	}

	return model.RegistrationResult{
		TenantID:      tenant.ID,
		PayloadURL:    fmt.Sprintf("%s/webhook/%s", s.publicBaseURL, tenant.ID),
		WebhookSecret: tenant.WebhookSecret,
		ContentType:   "application/json",
	}, nil
}
