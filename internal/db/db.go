package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Connect opens the MySQL pool. TranslateError makes duplicate-key
// violations surface as gorm.ErrDuplicatedKey, which the store maps to
// the conflict codes of the API.
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
}
