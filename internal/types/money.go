// README: Common money value object used across modules.
package types

// Money is an integer amount in the smallest practical unit (whole rupees
// for INR; the platform never bills fractional currency).
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// INR wraps an amount in the platform's default currency.
func INR(amount int64) Money {
	return Money{Amount: amount, Currency: "INR"}
}
