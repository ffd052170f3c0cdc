package currency

import (
	"github.com/shopspring/decimal"
)

// BaseCurrency is the fixed base of every fetched rate table.
const BaseCurrency = "USD"

// ExchangeRateAPIResponse mirrors GET /{key}/latest/USD.
type ExchangeRateAPIResponse struct {
	Result          string                     `json:"result"`
	ErrorType       string                     `json:"error-type"`
	BaseCode        string                     `json:"base_code"`
	TimeLastUpdate  int64                      `json:"time_last_update_unix"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

// Table maps currency code to units per one unit of Base.
type Table struct {
	Base      string
	Rates     map[string]decimal.Decimal
	UpdatedAt int64
}

type ConversionRequest struct {
	Amount decimal.Decimal
	From   string `validate:"required,len=3,uppercase"`
	To     string `validate:"required,len=3,uppercase"`
}

// Result holds unrounded values; rounding happens only in the Formatted helpers.
type Result struct {
	From        string
	To          string
	Input       decimal.Decimal
	Amount      decimal.Decimal
	ImpliedRate decimal.Decimal
}

func (r Result) FormattedAmount() string {
	return r.Amount.StringFixed(2)
}

func (r Result) FormattedRate() string {
	return r.ImpliedRate.StringFixed(4)
}

// Summary is the one-line rendering used by the details view,
// e.g. "10.00 EUR = 1666.67 JPY (1 EUR = 166.6667 JPY)".
func (r Result) Summary() string {
	return r.Input.StringFixed(2) + " " + r.From + " = " + r.FormattedAmount() + " " + r.To +
		" (1 " + r.From + " = " + r.FormattedRate() + " " + r.To + ")"
}
