// Package storage declares the persistence seam of the account service.
// The gormstore implementation talks to MySQL; memstore backs the tests.
package storage

import (
	"context"
	"errors"

	"github.com/meufreelas/meufreelas_be/internal/models"
)

// ErrNotFound indicates the record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate indicates a uniqueness constraint was violated
// (users.email or user_accounts (user_id, role)).
var ErrDuplicate = errors.New("record already exists")

// NewIdentity carries everything needed to provision a fresh identity.
type NewIdentity struct {
	Email        string
	PasswordHash string
	Role         models.Role
	Name         string
}

// AccountStore is the data-access contract of the account service.
//
// CreateIdentity and ProvisionAccount are atomic: either every row of the
// provisioning sequence (account, profile, wallet, plan) lands or none do.
// Both rely on the database constraints, not on prior reads, to reject
// duplicates, so concurrent calls race safely.
type AccountStore interface {
	// CreateIdentity inserts the user plus its first account, role profile
	// and, for freelancers, the zero-balance wallet and basic plan.
	CreateIdentity(ctx context.Context, in NewIdentity) (models.User, error)

	// ProvisionAccount adds a role account to an existing identity,
	// creating the profile/wallet/plan rows only where missing.
	ProvisionAccount(ctx context.Context, userID uint64, role models.Role, name string) error

	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id uint64) (models.User, error)

	AccountRoles(ctx context.Context, userID uint64) ([]models.Role, error)
	HasAccount(ctx context.Context, userID uint64, role models.Role) (bool, error)

	ClientProfile(ctx context.Context, userID uint64) (models.ClientProfile, error)
	FreelancerProfile(ctx context.Context, userID uint64) (models.FreelancerProfile, error)

	SetActiveRole(ctx context.Context, userID uint64, role models.Role) error
	TouchLastLogin(ctx context.Context, userID uint64) error
	UpdatePasswordHash(ctx context.Context, userID uint64, hash string) error

	CountUsers(ctx context.Context) (int64, error)
}
