package models

import "time"

type PlanType string

const (
	PlanBasic   PlanType = "basic"
	PlanPro     PlanType = "pro"
	PlanPremium PlanType = "premium"
)

type PlanMode string

const (
	PlanModeCompra     PlanMode = "compra"
	PlanModeAssinatura PlanMode = "assinatura"
)

type PlanRenewal string

const (
	PlanRenewMonthly PlanRenewal = "monthly"
	PlanRenewNone    PlanRenewal = "none"
)

type PlanStatus string

const (
	PlanActive   PlanStatus = "active"
	PlanExpired  PlanStatus = "expired"
	PlanCanceled PlanStatus = "canceled"
)

// Plan is the subscription row of a freelancer. Every freelancer account
// starts on a basic/compra plan beginning the day it is provisioned.
type Plan struct {
	FreelancerID uint64 `gorm:"column:freelancer_id;primaryKey" json:"freelancer_id"`

	TipoPlano  PlanType    `gorm:"column:tipo_plano;type:varchar(20);not null" json:"tipo_plano"`
	Modalidade PlanMode    `gorm:"type:varchar(20);not null" json:"modalidade"`
	Inicio     time.Time   `gorm:"type:date;not null" json:"inicio"`
	Fim        *time.Time  `gorm:"type:date" json:"fim,omitempty"`
	Renovacao  PlanRenewal `gorm:"type:varchar(20);not null;default:'monthly'" json:"renovacao"`
	Status     PlanStatus  `gorm:"type:varchar(20);not null" json:"status"`

	GatewaySubID string `gorm:"column:gateway_sub_id;type:varchar(128)" json:"gateway_sub_id,omitempty"`

	User *User `gorm:"foreignKey:FreelancerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Plan) TableName() string { return "plans" }
