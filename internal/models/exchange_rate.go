package models

import "github.com/shopspring/decimal"

// ExchangeRate is one row of the USD->currency rate table.
type ExchangeRate struct {
	CurrencyCode string          `db:"currency_code"` // Primary Key
	Rate         decimal.Decimal `db:"rate"`
	AuditFields
}
