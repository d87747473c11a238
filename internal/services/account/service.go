// Package account is the single authority over identities, role-scoped
// accounts and the active-role switch. Handlers translate HTTP into these
// calls and never touch the store directly.
package account

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/meufreelas/meufreelas_be/internal/apperr"
	"github.com/meufreelas/meufreelas_be/internal/models"
	"github.com/meufreelas/meufreelas_be/internal/storage"
	"github.com/meufreelas/meufreelas_be/internal/utils"
)

type Service struct {
	store storage.AccountStore
}

func New(store storage.AccountStore) *Service {
	return &Service{store: store}
}

// Payload is the user shape every auth endpoint returns.
type Payload struct {
	ID                   uint64      `json:"id"`
	Email                string      `json:"email"`
	Name                 string      `json:"name"`
	Type                 models.Role `json:"type"`
	HasClientAccount     bool        `json:"hasClientAccount"`
	HasFreelancerAccount bool        `json:"hasFreelancerAccount"`
}

// Register creates a fresh identity, or links a new role account onto an
// existing one when the caller proves ownership of the email by password.
// The returned bool reports whether a brand-new identity was created, so
// the handler knows when to send the welcome mail.
func (s *Service) Register(ctx context.Context, email, password, name string, role models.Role) (Payload, bool, error) {
	existing, err := s.store.FindUserByEmail(ctx, email)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return s.registerFresh(ctx, email, password, name, role)
	case err != nil:
		return Payload{}, false, err
	}

	// Email já cadastrado. A senha decide entre conflito e vínculo de
	// conta secundária; a mensagem não revela qual verificação falhou.
	if !utils.CheckPassword(existing.PasswordHash, password) {
		return Payload{}, false, apperr.ErrEmailExistsWrongPassword
	}

	has, err := s.store.HasAccount(ctx, existing.ID, role)
	if err != nil {
		return Payload{}, false, err
	}
	if has {
		return Payload{}, false, apperr.ErrEmailRoleExists
	}

	p, err := s.CreateSecondaryAccount(ctx, existing.ID, role)
	return p, false, err
}

func (s *Service) registerFresh(ctx context.Context, email, password, name string, role models.Role) (Payload, bool, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return Payload{}, false, err
	}

	u, err := s.store.CreateIdentity(ctx, storage.NewIdentity{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Name:         name,
	})
	if errors.Is(err, storage.ErrDuplicate) {
		// Perdeu a corrida contra um registro concorrente do mesmo email.
		return Payload{}, false, apperr.ErrEmailExists
	}
	if err != nil {
		return Payload{}, false, err
	}

	return Payload{
		ID:                   u.ID,
		Email:                u.Email,
		Name:                 name,
		Type:                 role,
		HasClientAccount:     role == models.RoleClient,
		HasFreelancerAccount: role == models.RoleFreelancer,
	}, true, nil
}

// Login verifies the credentials and bumps last_login_at. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (Payload, error) {
	u, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return Payload{}, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return Payload{}, err
	}

	if !utils.CheckPassword(u.PasswordHash, password) {
		return Payload{}, apperr.ErrInvalidCredentials
	}
	if u.Status == models.StatusBlocked {
		return Payload{}, apperr.ErrAccountBlocked
	}

	if err := s.store.TouchLastLogin(ctx, u.ID); err != nil {
		return Payload{}, err
	}
	return s.UserPayload(ctx, u.ID)
}

// CreateSecondaryAccount provisions the missing role account, profile and
// (for freelancers) wallet/plan, then makes the new role active. If the
// account already exists the call is a no-op: it returns the current
// payload and leaves the active role alone.
func (s *Service) CreateSecondaryAccount(ctx context.Context, userID uint64, role models.Role) (Payload, error) {
	has, err := s.store.HasAccount(ctx, userID, role)
	if err != nil {
		return Payload{}, err
	}
	if has {
		// Curto-circuito: a conta já existe e o active_role fica como está.
		return s.UserPayload(ctx, userID)
	}

	err = s.store.ProvisionAccount(ctx, userID, role, "")
	if err != nil && !errors.Is(err, storage.ErrDuplicate) {
		// ErrDuplicate significa que uma chamada concorrente venceu; o
		// estado final é o mesmo.
		if errors.Is(err, storage.ErrNotFound) {
			return Payload{}, apperr.ErrUserNotFound
		}
		return Payload{}, err
	}

	if err := s.store.SetActiveRole(ctx, userID, role); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Payload{}, apperr.ErrUserNotFound
		}
		return Payload{}, err
	}
	return s.UserPayload(ctx, userID)
}

// SwitchAccountType moves the active role within the existing account
// set. It never changes which accounts exist.
func (s *Service) SwitchAccountType(ctx context.Context, userID uint64, role models.Role) (Payload, error) {
	has, err := s.store.HasAccount(ctx, userID, role)
	if err != nil {
		return Payload{}, err
	}
	if !has {
		return Payload{}, apperr.ErrNoAccount
	}

	if err := s.store.SetActiveRole(ctx, userID, role); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Payload{}, apperr.ErrUserNotFound
		}
		return Payload{}, err
	}
	return s.UserPayload(ctx, userID)
}

// EnsureOAuthIdentity resolves an OAuth login: known emails pass through,
// unknown ones get a client identity with a throwaway random password.
func (s *Service) EnsureOAuthIdentity(ctx context.Context, email, name string) (Payload, error) {
	u, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		hash, herr := utils.HashPassword(uuid.NewString())
		if herr != nil {
			return Payload{}, herr
		}
		u, err = s.store.CreateIdentity(ctx, storage.NewIdentity{
			Email:        email,
			PasswordHash: hash,
			Role:         models.RoleClient,
			Name:         name,
		})
		if errors.Is(err, storage.ErrDuplicate) {
			// Corrida com outro login OAuth do mesmo email.
			u, err = s.store.FindUserByEmail(ctx, email)
		}
	}
	if err != nil {
		return Payload{}, err
	}
	return s.UserPayload(ctx, u.ID)
}

// PayloadByEmail backs the oauth/complete endpoint.
func (s *Service) PayloadByEmail(ctx context.Context, email string) (Payload, error) {
	u, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return Payload{}, apperr.ErrUserNotFound
	}
	if err != nil {
		return Payload{}, err
	}
	return s.UserPayload(ctx, u.ID)
}

// UserPayload assembles the contract shape: active role, account flags
// and the display name of the active profile (nome for clients, titulo
// for freelancers), falling back to the email.
func (s *Service) UserPayload(ctx context.Context, userID uint64) (Payload, error) {
	u, err := s.store.FindUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return Payload{}, apperr.ErrUserNotFound
	}
	if err != nil {
		return Payload{}, err
	}

	roles, err := s.store.AccountRoles(ctx, userID)
	if err != nil {
		return Payload{}, err
	}

	p := Payload{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Email,
		Type:  u.CurrentRole(),
	}
	for _, r := range roles {
		switch r {
		case models.RoleClient:
			p.HasClientAccount = true
		case models.RoleFreelancer:
			p.HasFreelancerAccount = true
		}
	}

	if p.Type == models.RoleClient {
		if cp, err := s.store.ClientProfile(ctx, userID); err == nil && cp.Nome != "" {
			p.Name = cp.Nome
		}
	} else {
		if fp, err := s.store.FreelancerProfile(ctx, userID); err == nil && fp.Titulo != "" {
			p.Name = fp.Titulo
		}
	}

	return p, nil
}

// ResetPassword rehashes and stores a new password for the identity.
func (s *Service) ResetPassword(ctx context.Context, userID uint64, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.store.UpdatePasswordHash(ctx, userID, hash); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.ErrUserNotFound
		}
		return err
	}
	return nil
}

// FindUserIDByEmail returns the identity id without revealing anything
// else; the forgot-password flow needs only this.
func (s *Service) FindUserIDByEmail(ctx context.Context, email string) (uint64, error) {
	u, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

// CountUsers backs the health endpoint.
func (s *Service) CountUsers(ctx context.Context) (int64, error) {
	return s.store.CountUsers(ctx)
}
