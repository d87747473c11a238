package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meufreelas/meufreelas_be/internal/models"
	"github.com/meufreelas/meufreelas_be/internal/storage"
)

func TestCreateIdentityRejectsDuplicateEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.CreateIdentity(ctx, storage.NewIdentity{
		Email: "a@x.com", PasswordHash: "h", Role: models.RoleClient, Name: "Ana",
	})
	require.NoError(t, err)

	_, err = s.CreateIdentity(ctx, storage.NewIdentity{
		Email: "a@x.com", PasswordHash: "h2", Role: models.RoleFreelancer, Name: "Outra",
	})
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	n, _ := s.CountUsers(ctx)
	assert.EqualValues(t, 1, n)
}

func TestProvisionAccountRejectsDuplicateRole(t *testing.T) {
	s := New()
	ctx := context.Background()

	u, err := s.CreateIdentity(ctx, storage.NewIdentity{
		Email: "a@x.com", PasswordHash: "h", Role: models.RoleClient, Name: "Ana",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, s.ProvisionAccount(ctx, u.ID, models.RoleClient, ""), storage.ErrDuplicate)
	require.NoError(t, s.ProvisionAccount(ctx, u.ID, models.RoleFreelancer, ""))
	assert.ErrorIs(t, s.ProvisionAccount(ctx, u.ID, models.RoleFreelancer, ""), storage.ErrDuplicate)

	roles, err := s.AccountRoles(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, roles, 2)
}

func TestProvisionAccountUnknownUser(t *testing.T) {
	s := New()
	err := s.ProvisionAccount(context.Background(), 42, models.RoleClient, "")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProvisionKeepsExistingProfile(t *testing.T) {
	s := New()
	ctx := context.Background()

	u, err := s.CreateIdentity(ctx, storage.NewIdentity{
		Email: "a@x.com", PasswordHash: "h", Role: models.RoleFreelancer, Name: "Ana",
	})
	require.NoError(t, err)

	// Um segundo provisionamento freelancer não sobrescreve o titulo.
	_ = s.ProvisionAccount(ctx, u.ID, models.RoleFreelancer, "")
	p, err := s.FreelancerProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Titulo)
}
