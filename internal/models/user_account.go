package models

import "time"

// UserAccount grants one role (client or freelancer) to an identity.
// The (user_id, role) pair is unique, so an identity holds at most
// two accounts. Rows are never updated, only created.
type UserAccount struct {
	ID     uint64 `gorm:"primaryKey" json:"id"`
	UserID uint64 `gorm:"not null;uniqueIndex:uniq_user_role" json:"user_id"`
	Role   Role   `gorm:"type:varchar(20);not null;uniqueIndex:uniq_user_role" json:"role"`

	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserAccount) TableName() string { return "user_accounts" }
