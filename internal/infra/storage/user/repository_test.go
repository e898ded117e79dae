package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/sqlitetest"
	"github.com/m04kA/SMC-CourtBookingService/pkg/sqlbuilder"
)

var now = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

func newUser(id, email string) *domain.User {
	return &domain.User{
		ID:           id,
		Email:        email,
		FirstName:    "Max",
		LastName:     "Muster",
		FullName:     "Max Muster",
		Role:         domain.RoleMember,
		Status:       domain.StatusPending,
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestRepository_Users(t *testing.T) {
	repo := NewRepository(sqlitetest.Open(t), sqlbuilder.MustNew(sqlbuilder.SQLite))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("u1", "max@stv.de")))
	assert.ErrorIs(t, repo.Create(ctx, newUser("u2", "max@stv.de")), ErrEmailTaken)

	got, err := repo.GetByEmail(ctx, "  MAX@stv.de ")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, domain.StatusPending, got.Status)

	require.NoError(t, repo.UpdateStatus(ctx, "u1", domain.StatusApproved, now.Add(time.Minute)))
	require.NoError(t, repo.UpdateRole(ctx, "u1", domain.RoleTrainer, now.Add(time.Minute)))

	got, err = repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	assert.Equal(t, domain.RoleTrainer, got.Role)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, "u1"))
	_, err = repo.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "u1"), ErrUserNotFound)
	assert.ErrorIs(t, repo.UpdateRole(ctx, "u1", domain.RoleAdmin, now), ErrUserNotFound)
}
