package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository/postgres"
	"github.com/dom/studio-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewAdminRepository(testDB.DB)
	ctx := context.Background()

	tests := []struct {
		name      string
		admin     *domain.Admin
		wantField string
	}{
		{
			name: "successful creation",
			admin: &domain.Admin{
				ID:           uuid.New(),
				Username:     "rsadmin",
				Email:        "admin@studio.test",
				PasswordHash: "hashedpassword",
			},
		},
		{
			name: "duplicate username",
			admin: &domain.Admin{
				ID:           uuid.New(),
				Username:     "rsadmin", // Same as above
				Email:        "other@studio.test",
				PasswordHash: "hashedpassword2",
			},
			wantField: "username",
		},
		{
			name: "duplicate email",
			admin: &domain.Admin{
				ID:           uuid.New(),
				Username:     "someone",
				Email:        "admin@studio.test",
				PasswordHash: "hashedpassword3",
			},
			wantField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.admin)
			if tt.wantField != "" {
				var dup *domain.DuplicateError
				require.True(t, errors.As(err, &dup), "expected DuplicateError, got %v", err)
				assert.Equal(t, tt.wantField, dup.Field)
				return
			}
			require.NoError(t, err)
		})
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAdminRepository_Lookups(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewAdminRepository(testDB.DB)
	ctx := context.Background()

	admin, _ := testutil.NewAdminBuilder().WithUsername("rsadmin").WithEmail("admin@studio.test").Build(t, testDB.DB)

	byID, err := repo.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "rsadmin", byID.Username)

	byName, err := repo.GetByUsername(ctx, "rsadmin")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, byName.ID)

	byEmail, err := repo.GetByEmail(ctx, "admin@studio.test")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, byEmail.ID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "admin not found")
}
