package models

import "gorm.io/datatypes"

// FreelancerProfile holds the freelancer-side attributes of an identity.
// Exists iff the identity has a freelancer account.
type FreelancerProfile struct {
	UserID uint64 `gorm:"primaryKey" json:"user_id"`

	Titulo string `gorm:"type:varchar(255)" json:"titulo"`
	Bio    string `gorm:"type:text" json:"bio"`

	// Lista de habilidades como array JSON.
	Habilidades datatypes.JSON `gorm:"type:json" json:"habilidades,omitempty"`

	// Agregados de avaliação/ranking, recalculados fora deste serviço.
	RatingMedia   float64 `gorm:"column:rating_media;default:0" json:"rating_media"`
	RatingTotal   int     `gorm:"column:rating_total;default:0" json:"rating_total"`
	RankingPontos int     `gorm:"column:ranking_pontos;default:0" json:"ranking_pontos"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (FreelancerProfile) TableName() string { return "profiles_freelancer" }
