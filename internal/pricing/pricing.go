// Package pricing computes derived line-item amounts and document totals
// for quotations. All functions are pure: no I/O, no state, no failure
// modes. Invalid or missing numeric input is coerced to zero so previews
// can be recomputed on every keystroke without ever erroring.
package pricing

import (
	"math"
	"strconv"
	"strings"
)

// LineAmounts holds the derived monetary fields of a single line item.
// They are always recomputed from quantity, cost and margin, never edited
// independently.
type LineAmounts struct {
	SaleUnit     float64 `json:"saleUnit"`
	MarginAmount float64 `json:"marginAmount"`
	TotalCost    float64 `json:"totalCost"`
	TotalSale    float64 `json:"totalSale"`
}

// DocumentTotals holds document-level aggregates over all line items.
// TotalAmount always equals SubtotalAmount: discounts and taxes are
// carried on the quotation as opaque fields and are not computed here.
type DocumentTotals struct {
	SubtotalAmount float64 `json:"subtotalAmount"`
	TotalCost      float64 `json:"totalCost"`
	TotalAmount    float64 `json:"totalAmount"`
}

// LineInput is the raw, user-entered portion of a line item.
type LineInput struct {
	Quantity      float64
	CostUnit      float64
	MarginPercent float64
}

// ComputeLine derives the sale price and line totals from quantity, unit
// cost and margin percent:
//
//	saleUnit  = costUnit * (1 + marginPercent/100)
//	totalCost = costUnit * quantity
//	totalSale = saleUnit * quantity
//	marginAmount = saleUnit - costUnit
//
// Negative or non-finite inputs are treated as zero.
func ComputeLine(quantity, costUnit, marginPercent float64) LineAmounts {
	quantity = sanitize(quantity)
	costUnit = sanitize(costUnit)
	marginPercent = sanitize(marginPercent)

	saleUnit := costUnit * (1 + marginPercent/100)
	return LineAmounts{
		SaleUnit:     saleUnit,
		MarginAmount: saleUnit - costUnit,
		TotalCost:    costUnit * quantity,
		TotalSale:    saleUnit * quantity,
	}
}

// ComputeTotals sums line totals over items in their given order. An empty
// slice yields all-zero totals; rejecting empty quotations is the caller's
// concern.
func ComputeTotals(items []LineInput) DocumentTotals {
	var t DocumentTotals
	for _, it := range items {
		line := ComputeLine(it.Quantity, it.CostUnit, it.MarginPercent)
		t.SubtotalAmount += line.TotalSale
		t.TotalCost += line.TotalCost
	}
	t.TotalAmount = t.SubtotalAmount
	return t
}

// ParseNonNegativeDecimal parses a decimal string, coercing anything
// unparsable or negative to zero. This mirrors the permissive numeric
// handling of the quotation forms: computation never fails on bad input,
// validation feedback is a separate concern.
func ParseNonNegativeDecimal(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return CoerceNonNegative(v)
}

// CoerceNonNegative applies the same rule ComputeLine applies to its inputs:
// negative or non-finite values become zero. Callers that persist raw line
// inputs must coerce them through this so stored inputs stay consistent with
// the derived amounts.
func CoerceNonNegative(v float64) float64 {
	return sanitize(v)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
