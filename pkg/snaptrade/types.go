package snaptrade

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the API health report.
type Status struct {
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Online    bool      `json:"online"`
}

// User identifies a registered end user. The secret is required for every
// account level call.
type User struct {
	UserID     string `json:"userId"`
	UserSecret string `json:"userSecret"`
}

// DeleteUserResponse confirms a user deletion request.
type DeleteUserResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail"`
	UserID string `json:"userId"`
}

// LoginRedirect is the connection portal link for a user.
type LoginRedirect struct {
	RedirectURI string `json:"redirectURI"`
	SessionID   string `json:"sessionId"`
}

// Account is a brokerage account linked by a user.
type Account struct {
	ID                     string         `json:"id"`
	BrokerageAuthorization string         `json:"brokerage_authorization"`
	Name                   string         `json:"name"`
	Number                 string         `json:"number"`
	InstitutionName        string         `json:"institution_name"`
	CreatedDate            time.Time      `json:"created_date"`
	Balance                AccountBalance `json:"balance"`
}

// AccountBalance is the account level total.
type AccountBalance struct {
	Total *Amount `json:"total"`
}

// Amount is a value in a currency.
type Amount struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// Currency describes a cash currency.
type Currency struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Balance is the cash held in one currency.
type Balance struct {
	Currency    Currency         `json:"currency"`
	Cash        decimal.Decimal  `json:"cash"`
	BuyingPower *decimal.Decimal `json:"buying_power"`
}

// Symbol is the instrument a position refers to.
type Symbol struct {
	ID          string `json:"id"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
}

// PositionSymbol wraps the instrument of a position.
type PositionSymbol struct {
	Symbol Symbol `json:"symbol"`
}

// Position is an open holding in an account.
type Position struct {
	Symbol               PositionSymbol   `json:"symbol"`
	Units                decimal.Decimal  `json:"units"`
	Price                decimal.Decimal  `json:"price"`
	OpenPnL              *decimal.Decimal `json:"open_pnl"`
	AveragePurchasePrice *decimal.Decimal `json:"average_purchase_price"`
}

// MarketValue is units times price.
func (p Position) MarketValue() decimal.Decimal {
	return p.Units.Mul(p.Price)
}
