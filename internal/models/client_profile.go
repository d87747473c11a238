package models

import "gorm.io/datatypes"

// ClientProfile holds the client-side attributes of an identity.
// Exists iff the identity has a client account; created together with it.
type ClientProfile struct {
	UserID uint64 `gorm:"primaryKey" json:"user_id"`

	Nome        string `gorm:"type:varchar(255);not null" json:"nome"`
	Empresa     string `gorm:"type:varchar(255)" json:"empresa"`
	CpfCnpj     string `gorm:"column:cpf_cnpj;type:varchar(32)" json:"cpf_cnpj"`
	Telefone    string `gorm:"type:varchar(32)" json:"telefone"`
	Localizacao string `gorm:"type:varchar(255)" json:"localizacao"`

	Preferencias datatypes.JSON `gorm:"type:json" json:"preferencias,omitempty"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ClientProfile) TableName() string { return "profiles_cliente" }
