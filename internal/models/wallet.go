package models

import "time"

// ConnectionsWallet tracks the connection credits of a freelancer.
// Created with zero balances when the freelancer account is provisioned.
type ConnectionsWallet struct {
	FreelancerID uint64 `gorm:"column:freelancer_id;primaryKey" json:"freelancer_id"`

	SaldoPlanoMensal  int `gorm:"column:saldo_plano_mensal;not null;default:0" json:"saldo_plano_mensal"`
	SaldoMedalhaBonus int `gorm:"column:saldo_medalha_bonus;not null;default:0" json:"saldo_medalha_bonus"`
	SaldoNaoExpiravel int `gorm:"column:saldo_nao_expiravel;not null;default:0" json:"saldo_nao_expiravel"`

	RenovacaoEm *time.Time `gorm:"column:renovacao_em;type:date" json:"renovacao_em,omitempty"`

	User *User `gorm:"foreignKey:FreelancerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ConnectionsWallet) TableName() string { return "connections_wallet" }
