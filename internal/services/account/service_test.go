package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meufreelas/meufreelas_be/internal/apperr"
	"github.com/meufreelas/meufreelas_be/internal/models"
	"github.com/meufreelas/meufreelas_be/internal/storage/memstore"
)

func newService() (*Service, *memstore.Store) {
	store := memstore.New()
	return New(store), store
}

func TestRegisterClientCreatesIdentity(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	user, created, err := svc.Register(ctx, "ana@x.com", "secret1", "Ana", models.RoleClient)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "ana@x.com", user.Email)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, models.RoleClient, user.Type)
	assert.True(t, user.HasClientAccount)
	assert.False(t, user.HasFreelancerAccount)

	p, err := store.ClientProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Nome)

	// Recursos de freelancer não existem para conta client.
	assert.False(t, store.HasWallet(user.ID))
	assert.False(t, store.HasPlan(user.ID))
}

func TestRegisterFreelancerCreatesWalletAndPlan(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	user, created, err := svc.Register(ctx, "a@x.com", "secret1", "Ana", models.RoleFreelancer)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleFreelancer, user.Type)

	p, err := store.FreelancerProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Titulo)
	assert.True(t, store.HasWallet(user.ID))
	assert.True(t, store.HasPlan(user.ID))
}

func TestRegisterExistingEmailWrongPassword(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "a@x.com", "secret1", "Ana", models.RoleFreelancer)
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "a@x.com", "other-password", "Ana", models.RoleClient)
	assert.ErrorIs(t, err, apperr.ErrEmailExistsWrongPassword)
}

func TestRegisterExistingEmailSameRole(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "a@x.com", "secret1", "Ana", models.RoleClient)
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "a@x.com", "secret1", "Ana", models.RoleClient)
	assert.ErrorIs(t, err, apperr.ErrEmailRoleExists)
}

func TestRegisterLinksSecondaryAccountOnPasswordMatch(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	first, _, err := svc.Register(ctx, "a@x.com", "secret1", "Ana", models.RoleClient)
	require.NoError(t, err)

	user, created, err := svc.Register(ctx, "a@x.com", "secret1", "Ana Dev", models.RoleFreelancer)
	require.NoError(t, err)
	assert.False(t, created, "vincular conta secundária não cria nova identidade")
	assert.Equal(t, first.ID, user.ID)
	assert.Equal(t, models.RoleFreelancer, user.Type)
	assert.True(t, user.HasClientAccount)
	assert.True(t, user.HasFreelancerAccount)
	assert.True(t, store.HasWallet(user.ID))
	assert.True(t, store.HasPlan(user.ID))
}

func TestLoginUnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "a@x.com", "secret1", "Ana", models.RoleClient)
	require.NoError(t, err)

	_, errUnknown := svc.Login(ctx, "nobody@x.com", "whatever")
	_, errWrong := svc.Login(ctx, "a@x.com", "wrong")

	assert.ErrorIs(t, errUnknown, apperr.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, apperr.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "a@x.com", "secret1", "Ana", models.RoleClient)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	u, err := store.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, u.LastLoginAt)
	first := *u.LastLoginAt

	time.Sleep(5 * time.Millisecond)
	_, err = svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	u, err = store.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, u.LastLoginAt.Before(first), "last_login_at nunca anda para trás")

	// Senha errada não altera estado.
	before := *u.LastLoginAt
	_, _ = svc.Login(ctx, "a@x.com", "wrong")
	u, _ = store.FindUserByID(ctx, user.ID)
	assert.Equal(t, before, *u.LastLoginAt)
}

func TestLoginBlockedAccount(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "a@x.com", "secret1", "Ana", models.RoleClient)
	require.NoError(t, err)
	store.SetStatus(user.ID, models.StatusBlocked)

	_, err = svc.Login(ctx, "a@x.com", "secret1")
	assert.ErrorIs(t, err, apperr.ErrAccountBlocked)
}

func TestCreateSecondaryAccountIsIdempotent(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "a@x.com", "secret1", "Ana", models.RoleClient)
	require.NoError(t, err)

	p1, err := svc.CreateSecondaryAccount(ctx, user.ID, models.RoleFreelancer)
	require.NoError(t, err)
	p2, err := svc.CreateSecondaryAccount(ctx, user.ID, models.RoleFreelancer)
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.True(t, p2.HasClientAccount)
	assert.True(t, p2.HasFreelancerAccount)
	assert.Equal(t, models.RoleFreelancer, p2.Type)
}

func TestCreateSecondaryAccountKeepsActiveRoleOnRepeat(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "a@x.com", "secret1", "Ana", models.RoleClient)
	require.NoError(t, err)

	_, err = svc.CreateSecondaryAccount(ctx, user.ID, models.RoleFreelancer)
	require.NoError(t, err)
	_, err = svc.SwitchAccountType(ctx, user.ID, models.RoleClient)
	require.NoError(t, err)

	// A conta freelancer já existe; a chamada repetida não troca o papel ativo.
	p, err := svc.CreateSecondaryAccount(ctx, user.ID, models.RoleFreelancer)
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, p.Type)
}

func TestSwitchAccountType(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "a@x.com", "secret1", "Ana", models.RoleClient)
	require.NoError(t, err)

	// Sem conta freelancer ainda.
	_, err = svc.SwitchAccountType(ctx, user.ID, models.RoleFreelancer)
	assert.ErrorIs(t, err, apperr.ErrNoAccount)

	_, err = svc.CreateSecondaryAccount(ctx, user.ID, models.RoleFreelancer)
	require.NoError(t, err)

	p, err := svc.SwitchAccountType(ctx, user.ID, models.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, p.Type)

	// Idempotente.
	p2, err := svc.SwitchAccountType(ctx, user.ID, models.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, p, p2)
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "ana@x.com", "secret1", "Ana", models.RoleClient)
	require.NoError(t, err)

	p, err := svc.Login(ctx, "ana@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, p.Type)

	_, err = svc.CreateSecondaryAccount(ctx, user.ID, models.RoleFreelancer)
	require.NoError(t, err)
	_, err = svc.SwitchAccountType(ctx, user.ID, models.RoleFreelancer)
	require.NoError(t, err)

	p, err = svc.Login(ctx, "ana@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleFreelancer, p.Type)
	assert.True(t, p.HasClientAccount)
	assert.True(t, p.HasFreelancerAccount)
}

func TestUserPayloadNameFallsBackToEmail(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "ana@x.com", "secret1", "Ana", models.RoleClient)
	require.NoError(t, err)

	// O perfil freelancer criado pelo vínculo secundário nasce sem titulo.
	p, err := svc.CreateSecondaryAccount(ctx, user.ID, models.RoleFreelancer)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", p.Name)

	// De volta ao client, o nome do perfil volta a valer.
	p, err = svc.SwitchAccountType(ctx, user.ID, models.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
}

func TestEnsureOAuthIdentity(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	p, err := svc.EnsureOAuthIdentity(ctx, "g@x.com", "Gui")
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, p.Type)
	assert.True(t, p.HasClientAccount)
	assert.Equal(t, "Gui", p.Name)

	// Segundo login OAuth resolve a mesma identidade.
	p2, err := svc.EnsureOAuthIdentity(ctx, "g@x.com", "Gui")
	require.NoError(t, err)
	assert.Equal(t, p.ID, p2.ID)

	n, err := store.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestResetPassword(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "a@x.com", "secret1", "Ana", models.RoleClient)
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, user.ID, "newsecret"))

	_, err = svc.Login(ctx, "a@x.com", "secret1")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	p, err := svc.Login(ctx, "a@x.com", "newsecret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, p.ID)
}
