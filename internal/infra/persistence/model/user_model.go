// Package model holds the GORM persistence models.
package model

import "github.com/shopspring/decimal"

// UserModel mirrors the 'users' table. The id column is an auto-increment key assigned on insert.
type UserModel struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"type:varchar(100);not null"`
	Email string `gorm:"type:varchar(255);not null"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// AccountModel mirrors the 'accounts' table.
type AccountModel struct {
	ID      int64           `gorm:"primaryKey;autoIncrement"`
	Balance decimal.Decimal `gorm:"type:numeric(20,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
