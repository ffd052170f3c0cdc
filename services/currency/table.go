package currency

import (
	"fmt"
	"sort"

	"github.com/AbdulWasayUl/go-country-explorer/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// Codes lists the available currencies in alphabetical order.
func (t Table) Codes() []string {
	codes := make([]string, 0, len(t.Rates))
	for code := range t.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (t Table) Has(code string) bool {
	_, ok := t.Rates[code]
	return ok || code == t.Base
}

func (t Table) rate(code string) (decimal.Decimal, error) {
	r, ok := t.Rates[code]
	if !ok {
		if code == t.Base {
			return decimal.NewFromInt(1), nil
		}
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, code)
	}
	if !r.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s has no usable rate (%s)", apperrors.ErrUnknownCurrency, code, r)
	}
	return r, nil
}

// Convert goes through the base currency: amount / rate[from] * rate[to].
// The division is skipped when converting from the base itself.
func (t Table) Convert(req ConversionRequest) (Result, error) {
	if err := validate.Struct(req); err != nil {
		return Result{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	fromRate, err := t.rate(req.From)
	if err != nil {
		return Result{}, err
	}
	toRate, err := t.rate(req.To)
	if err != nil {
		return Result{}, err
	}

	amountInBase := req.Amount
	if req.From != t.Base {
		amountInBase = req.Amount.Div(fromRate)
	}

	return Result{
		From:        req.From,
		To:          req.To,
		Input:       req.Amount,
		Amount:      amountInBase.Mul(toRate),
		ImpliedRate: toRate.Div(fromRate),
	}, nil
}
