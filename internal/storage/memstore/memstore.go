// Package memstore is an in-memory AccountStore enforcing the same
// uniqueness rules as the MySQL schema. It backs the service and handler
// tests, which must not depend on a live database.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/meufreelas/meufreelas_be/internal/models"
	"github.com/meufreelas/meufreelas_be/internal/storage"
)

var _ storage.AccountStore = (*Store)(nil)

type Store struct {
	mu     sync.Mutex
	nextID uint64

	users  map[uint64]models.User
	emails map[string]uint64

	accounts           map[uint64][]models.Role
	clientProfiles     map[uint64]models.ClientProfile
	freelancerProfiles map[uint64]models.FreelancerProfile
	wallets            map[uint64]models.ConnectionsWallet
	plans              map[uint64]models.Plan
}

func New() *Store {
	return &Store{
		nextID:             1,
		users:              map[uint64]models.User{},
		emails:             map[string]uint64{},
		accounts:           map[uint64][]models.Role{},
		clientProfiles:     map[uint64]models.ClientProfile{},
		freelancerProfiles: map[uint64]models.FreelancerProfile{},
		wallets:            map[uint64]models.ConnectionsWallet{},
		plans:              map[uint64]models.Plan{},
	}
}

func (s *Store) CreateIdentity(ctx context.Context, in storage.NewIdentity) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[in.Email]; taken {
		return models.User{}, storage.ErrDuplicate
	}

	role := in.Role
	u := models.User{
		ID:           s.nextID,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Role:         role,
		ActiveRole:   &role,
		Status:       models.StatusActive,
		CreatedAt:    time.Now(),
	}
	s.nextID++

	s.users[u.ID] = u
	s.emails[u.Email] = u.ID
	s.accounts[u.ID] = []models.Role{role}
	s.provisionRoleResources(u.ID, role, in.Name)

	return u, nil
}

func (s *Store) ProvisionAccount(ctx context.Context, userID uint64, role models.Role, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return storage.ErrNotFound
	}
	for _, r := range s.accounts[userID] {
		if r == role {
			return storage.ErrDuplicate
		}
	}
	s.accounts[userID] = append(s.accounts[userID], role)
	s.provisionRoleResources(userID, role, name)
	return nil
}

func (s *Store) provisionRoleResources(userID uint64, role models.Role, name string) {
	if role == models.RoleClient {
		if _, ok := s.clientProfiles[userID]; !ok {
			s.clientProfiles[userID] = models.ClientProfile{UserID: userID, Nome: name}
		}
		return
	}
	if _, ok := s.freelancerProfiles[userID]; !ok {
		s.freelancerProfiles[userID] = models.FreelancerProfile{UserID: userID, Titulo: name}
	}
	if _, ok := s.wallets[userID]; !ok {
		s.wallets[userID] = models.ConnectionsWallet{FreelancerID: userID}
	}
	if _, ok := s.plans[userID]; !ok {
		s.plans[userID] = models.Plan{
			FreelancerID: userID,
			TipoPlano:    models.PlanBasic,
			Modalidade:   models.PlanModeCompra,
			Inicio:       time.Now(),
			Renovacao:    models.PlanRenewMonthly,
			Status:       models.PlanActive,
		}
	}
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.emails[email]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) FindUserByID(ctx context.Context, id uint64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) AccountRoles(ctx context.Context, userID uint64) ([]models.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	roles := make([]models.Role, len(s.accounts[userID]))
	copy(roles, s.accounts[userID])
	return roles, nil
}

func (s *Store) HasAccount(ctx context.Context, userID uint64, role models.Role) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.accounts[userID] {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ClientProfile(ctx context.Context, userID uint64) (models.ClientProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.clientProfiles[userID]
	if !ok {
		return models.ClientProfile{}, storage.ErrNotFound
	}
	return p, nil
}

func (s *Store) FreelancerProfile(ctx context.Context, userID uint64) (models.FreelancerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.freelancerProfiles[userID]
	if !ok {
		return models.FreelancerProfile{}, storage.ErrNotFound
	}
	return p, nil
}

func (s *Store) SetActiveRole(ctx context.Context, userID uint64, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	u.ActiveRole = &role
	s.users[userID] = u
	return nil
}

func (s *Store) TouchLastLogin(ctx context.Context, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	s.users[userID] = u
	return nil
}

func (s *Store) UpdatePasswordHash(ctx context.Context, userID uint64, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	u.PasswordHash = hash
	s.users[userID] = u
	return nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

// HasWallet and HasPlan let tests assert the derived freelancer resources.

func (s *Store) HasWallet(userID uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.wallets[userID]
	return ok
}

func (s *Store) HasPlan(userID uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.plans[userID]
	return ok
}

// SetStatus flips the identity status, for blocked-account tests.
func (s *Store) SetStatus(userID uint64, status models.UserStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[userID]
	u.Status = status
	s.users[userID] = u
}
