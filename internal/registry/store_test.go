// internal/registry/store_test.go
package registry

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"merge-scoreboard/internal/database"
	apperrors "merge-scoreboard/internal/errors"
	"merge-scoreboard/internal/model"
)

// MockQuerier is a mock of the database.Querier interface.
type MockQuerier struct {
	mock.Mock
}

func (m *MockQuerier) UpsertTenant(ctx context.Context, arg database.UpsertTenantParams) (database.Tenant, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.Tenant), args.Error(1)
}
func (m *MockQuerier) GetTenantByID(ctx context.Context, id uuid.UUID) (database.Tenant, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(database.Tenant), args.Error(1)
}
func (m *MockQuerier) GetTenantByCommunity(ctx context.Context, communityID string) (database.Tenant, error) {
	args := m.Called(ctx, communityID)
	return args.Get(0).(database.Tenant), args.Error(1)
}
func (m *MockQuerier) AwardPoints(ctx context.Context, arg database.AwardPointsParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockQuerier) GetPoints(ctx context.Context, arg database.GetPointsParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockQuerier) GetLeaderboard(ctx context.Context, arg database.GetLeaderboardParams) ([]database.GetLeaderboardRow, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]database.GetLeaderboardRow), args.Error(1)
}

func registrationRequest() model.RegistrationRequest {
	return model.RegistrationRequest{
		CommunityID:        "G1",
		RepositoryName:     "acme/widget",
		NotificationTarget: "channel-123",
		OwnerIdentity:      "admin-1",
	}
}

func TestCredentialStore_UpsertTenant(t *testing.T) {
	ctx := context.Background()

	t.Run("generates a fresh random secret on every call", func(t *testing.T) {
		mockQ := new(MockQuerier)
		store := NewCredentialStore(mockQ)

		var secrets []string
		mockQ.On("UpsertTenant", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				arg := args.Get(1).(database.UpsertTenantParams)
				secrets = append(secrets, arg.WebhookSecret)
			}).
			Return(database.Tenant{ID: uuid.New(), CommunityID: "G1"}, nil).Twice()

		_, err := store.UpsertTenant(ctx, registrationRequest())
		require.NoError(t, err)
		_, err = store.UpsertTenant(ctx, registrationRequest())
		require.NoError(t, err)

		require.Len(t, secrets, 2)
		assert.NotEqual(t, secrets[0], secrets[1], "re-registration must rotate the secret")
		for _, s := range secrets {
			raw, err := hex.DecodeString(s)
			require.NoError(t, err)
			assert.Len(t, raw, secretBytes)
		}
		mockQ.AssertExpectations(t)
	})

	t.Run("rejects a repository not in owner/name form", func(t *testing.T) {
		mockQ := new(MockQuerier)
		store := NewCredentialStore(mockQ)

		req := registrationRequest()
		req.RepositoryName = "just-a-name"
		_, err := store.UpsertTenant(ctx, req)

		var formatErr *apperrors.ErrInvalidRepoFormat
		assert.ErrorAs(t, err, &formatErr)
		mockQ.AssertNotCalled(t, "UpsertTenant")
	})

	t.Run("propagates store failures", func(t *testing.T) {
		mockQ := new(MockQuerier)
		store := NewCredentialStore(mockQ)
		dbErr := errors.New("connection refused")

		mockQ.On("UpsertTenant", ctx, mock.Anything).Return(database.Tenant{}, dbErr).Once()

		_, err := store.UpsertTenant(ctx, registrationRequest())

		assert.ErrorIs(t, err, dbErr)
		mockQ.AssertExpectations(t)
	})
}

func TestCredentialStore_FindTenant(t *testing.T) {
	ctx := context.Background()

	t.Run("maps no rows to ErrTenantNotFound", func(t *testing.T) {
		mockQ := new(MockQuerier)
		store := NewCredentialStore(mockQ)
		id := uuid.New()

		mockQ.On("GetTenantByID", ctx, id).Return(database.Tenant{}, pgx.ErrNoRows).Once()
		mockQ.On("GetTenantByCommunity", ctx, "G9").Return(database.Tenant{}, pgx.ErrNoRows).Once()

		_, err := store.FindTenantByID(ctx, id)
		assert.ErrorIs(t, err, apperrors.ErrTenantNotFound)

		_, err = store.FindTenantByCommunity(ctx, "G9")
		assert.ErrorIs(t, err, apperrors.ErrTenantNotFound)
		mockQ.AssertExpectations(t)
	})

	t.Run("returns the stored tenant", func(t *testing.T) {
		mockQ := new(MockQuerier)
		store := NewCredentialStore(mockQ)
		id := uuid.New()
		row := database.Tenant{
			ID:                 id,
			CommunityID:        "G1",
			RepositoryName:     "acme/widget",
			WebhookSecret:      "shh",
			NotificationTarget: "channel-123",
			OwnerIdentity:      "admin-1",
		}

		mockQ.On("GetTenantByID", ctx, id).Return(row, nil).Once()

		tenant, err := store.FindTenantByID(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, id, tenant.ID)
		assert.Equal(t, "acme/widget", tenant.RepositoryName)
		assert.Equal(t, "shh", tenant.WebhookSecret)
		mockQ.AssertExpectations(t)
	})
}
