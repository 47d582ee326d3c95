package entities

import "github.com/shopspring/decimal"

// ClientType is informational only; it never changes pricing.
type ClientType string

const (
	ClientParticular ClientType = "particular"
	ClientEmpresa    ClientType = "empresa"
	ClientMayorista  ClientType = "mayorista"
)

// Client is a shop customer. DiscountPercent is the special discount applied
// to every new order of the client, in [0, 100] with two decimals.
type Client struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	Type            ClientType      `json:"type"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}
