package shared

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits stored for prices and totals.
// It matches the DECIMAL(18,2) columns of the schema.
const MoneyScale = 2

// FitsMoneyScale reports whether d can be stored without rounding
func FitsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}
