package http

import "github.com/shopspring/decimal"

// Money goes over the wire as JSON numbers, as the POS frontend expects.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
