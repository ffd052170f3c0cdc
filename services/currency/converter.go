package currency

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/AbdulWasayUl/go-country-explorer/internal/apperrors"
	"github.com/AbdulWasayUl/go-country-explorer/internal/logger"
	"github.com/AbdulWasayUl/go-country-explorer/internal/state"
	"github.com/AbdulWasayUl/go-country-explorer/services/country"
	"github.com/shopspring/decimal"
)

// Converter holds one rate table for the life of a details view. The table is
// fetched once; a failed fetch is terminal.
type Converter struct {
	source Source
	holder *state.Holder[Table]

	mu      sync.Mutex
	started bool
	from    string
	to      string
}

func NewConverter(source Source) *Converter {
	return &Converter{
		source: source,
		holder: state.NewHolder[Table](),
		from:   BaseCurrency,
		to:     BaseCurrency,
	}
}

// DefaultTarget is the country's first listed currency, or the base currency
// when it lists none.
func DefaultTarget(c country.Country) string {
	if code, ok := c.Currencies.First(); ok {
		return strings.ToUpper(code)
	}
	return BaseCurrency
}

// Initialize fetches the rate table and selects USD -> DefaultTarget(c).
// Calls after the first return the outcome of the first.
func (cv *Converter) Initialize(ctx context.Context, c country.Country) (Table, error) {
	cv.mu.Lock()
	if cv.started {
		cv.mu.Unlock()
		snap := cv.holder.Snapshot()
		return snap.Data, snap.Err
	}
	cv.started = true
	cv.from = BaseCurrency
	cv.to = DefaultTarget(c)
	cv.mu.Unlock()

	tok := cv.holder.Begin(c.Identifier())
	table, err := cv.source.Latest(ctx)
	if err != nil {
		if !cv.holder.Reject(tok, err) {
			return Table{}, state.ErrStale
		}
		logger.Error("[currency] Failed to load rates for %s: %v", c.Identifier(), err)
		return Table{}, err
	}

	cv.mu.Lock()
	if !table.Has(cv.to) {
		logger.Warn("[currency] %s is not in the rate table, falling back to %s", cv.to, table.Base)
		cv.to = table.Base
	}
	cv.mu.Unlock()

	if !cv.holder.Resolve(tok, table) {
		return Table{}, state.ErrStale
	}
	logger.Info("[currency] Loaded %d rates for %s", len(table.Rates), c.Identifier())
	return table, nil
}

func (cv *Converter) State() state.State[Table] {
	return cv.holder.Snapshot()
}

// Selection returns the current from and to codes.
func (cv *Converter) Selection() (from, to string) {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return cv.from, cv.to
}

// Swap exchanges from and to. The table is untouched.
func (cv *Converter) Swap() {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	cv.from, cv.to = cv.to, cv.from
}

func (cv *Converter) SetFrom(code string) error {
	code, err := cv.checkCode(code)
	if err != nil {
		return err
	}
	cv.mu.Lock()
	defer cv.mu.Unlock()
	cv.from = code
	return nil
}

func (cv *Converter) SetTo(code string) error {
	code, err := cv.checkCode(code)
	if err != nil {
		return err
	}
	cv.mu.Lock()
	defer cv.mu.Unlock()
	cv.to = code
	return nil
}

func (cv *Converter) checkCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	snap := cv.holder.Snapshot()
	if !snap.IsReady() {
		return "", fmt.Errorf("rates not loaded (%s)", snap.Status)
	}
	if !snap.Data.Has(code) {
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, code)
	}
	return code, nil
}

// Convert parses amountText and converts it with the current selection. It
// returns false, with no error surfaced, when the rates are not ready or the
// amount is not a number.
func (cv *Converter) Convert(amountText string) (Result, bool) {
	snap := cv.holder.Snapshot()
	if !snap.IsReady() {
		return Result{}, false
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(amountText))
	if err != nil {
		return Result{}, false
	}

	from, to := cv.Selection()
	res, err := snap.Data.Convert(ConversionRequest{Amount: amount, From: from, To: to})
	if err != nil {
		logger.Debug("[currency] %s -> %s: %v", from, to, err)
		return Result{}, false
	}
	return res, true
}

// Close drops an in-flight fetch.
func (cv *Converter) Close() {
	cv.holder.Invalidate()
}
