// Package gormstore is the MySQL-backed AccountStore. Every multi-table
// provisioning sequence runs inside a single transaction; uniqueness is
// enforced by inserting and catching the constraint violation, never by
// a prior read.
package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/meufreelas/meufreelas_be/internal/models"
	"github.com/meufreelas/meufreelas_be/internal/storage"
)

var _ storage.AccountStore = (*Store)(nil)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates the schema for every table the service owns.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.UserAccount{},
		&models.ClientProfile{},
		&models.FreelancerProfile{},
		&models.ConnectionsWallet{},
		&models.Plan{},
	)
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var my *mysql.MySQLError
	return errors.As(err, &my) && my.Number == 1062
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case isDuplicate(err):
		return storage.ErrDuplicate
	default:
		return err
	}
}

func (s *Store) CreateIdentity(ctx context.Context, in storage.NewIdentity) (models.User, error) {
	role := in.Role
	u := models.User{
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Role:         role,
		ActiveRole:   &role,
		Status:       models.StatusActive,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.UserAccount{UserID: u.ID, Role: role}).Error; err != nil {
			return err
		}
		return provisionRoleResources(tx, u.ID, role, in.Name)
	})
	if err != nil {
		return models.User{}, translate(err)
	}
	return u, nil
}

func (s *Store) ProvisionAccount(ctx context.Context, userID uint64, role models.Role, name string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.UserAccount{UserID: userID, Role: role}).Error; err != nil {
			return err
		}
		return provisionRoleResources(tx, userID, role, name)
	})
	return translate(err)
}

// provisionRoleResources creates the profile row of the role and, for
// freelancers, the wallet and default plan. DoNothing keeps the sequence
// idempotent when a profile survived an earlier account of the same role.
func provisionRoleResources(tx *gorm.DB, userID uint64, role models.Role, name string) error {
	ignore := clause.OnConflict{DoNothing: true}

	if role == models.RoleClient {
		p := models.ClientProfile{UserID: userID, Nome: name}
		return tx.Clauses(ignore).Create(&p).Error
	}

	p := models.FreelancerProfile{UserID: userID, Titulo: name}
	if err := tx.Clauses(ignore).Create(&p).Error; err != nil {
		return err
	}

	w := models.ConnectionsWallet{FreelancerID: userID}
	if err := tx.Clauses(ignore).Create(&w).Error; err != nil {
		return err
	}

	pl := models.Plan{
		FreelancerID: userID,
		TipoPlano:    models.PlanBasic,
		Modalidade:   models.PlanModeCompra,
		Inicio:       time.Now().Truncate(24 * time.Hour),
		Renovacao:    models.PlanRenewMonthly,
		Status:       models.PlanActive,
	}
	return tx.Clauses(ignore).Create(&pl).Error
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	return u, translate(err)
}

func (s *Store) FindUserByID(ctx context.Context, id uint64) (models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return u, translate(err)
}

func (s *Store) AccountRoles(ctx context.Context, userID uint64) ([]models.Role, error) {
	var roles []models.Role
	err := s.db.WithContext(ctx).
		Model(&models.UserAccount{}).
		Where("user_id = ?", userID).
		Pluck("role", &roles).Error
	return roles, translate(err)
}

func (s *Store) HasAccount(ctx context.Context, userID uint64, role models.Role) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.UserAccount{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&n).Error
	return n > 0, translate(err)
}

func (s *Store) ClientProfile(ctx context.Context, userID uint64) (models.ClientProfile, error) {
	var p models.ClientProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	return p, translate(err)
}

func (s *Store) FreelancerProfile(ctx context.Context, userID uint64) (models.FreelancerProfile, error) {
	var p models.FreelancerProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	return p, translate(err)
}

// userExists distinguishes a missing row from an update that changed
// nothing: MySQL reports zero affected rows when the stored value already
// equals the new one.
func (s *Store) userExists(ctx context.Context, userID uint64) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Count(&n).Error
	return n > 0, translate(err)
}

func (s *Store) SetActiveRole(ctx context.Context, userID uint64, role models.Role) error {
	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("active_role", role)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		ok, err := s.userExists(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return storage.ErrNotFound
		}
	}
	return nil
}

func (s *Store) TouchLastLogin(ctx context.Context, userID uint64) error {
	return translate(s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_login_at", time.Now()).Error)
}

func (s *Store) UpdatePasswordHash(ctx context.Context, userID uint64, hash string) error {
	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		ok, err := s.userExists(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return storage.ErrNotFound
		}
	}
	return nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, translate(err)
}
