package entity

import "github.com/shopspring/decimal"

// Account holds a balance that can be moved between accounts by a transfer.
type Account struct {
	ID      string          `json:"id"`
	Balance decimal.Decimal `json:"balance"`
}
