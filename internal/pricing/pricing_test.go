package pricing

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	diff := a - b
	return diff < eps && diff > -eps
}

func TestComputeLine(t *testing.T) {
	tests := []struct {
		name          string
		quantity      float64
		costUnit      float64
		marginPercent float64
		want          LineAmounts
	}{
		{
			name:     "20% margin on 100 x2",
			quantity: 2, costUnit: 100, marginPercent: 20,
			want: LineAmounts{SaleUnit: 120, MarginAmount: 20, TotalCost: 200, TotalSale: 240},
		},
		{
			name:     "zero cost keeps everything zero",
			quantity: 1, costUnit: 0, marginPercent: 50,
			want: LineAmounts{SaleUnit: 0, MarginAmount: 0, TotalCost: 0, TotalSale: 0},
		},
		{
			name:     "zero margin sells at cost",
			quantity: 3, costUnit: 10, marginPercent: 0,
			want: LineAmounts{SaleUnit: 10, MarginAmount: 0, TotalCost: 30, TotalSale: 30},
		},
		{
			name:     "fractional quantity",
			quantity: 0.5, costUnit: 8, marginPercent: 25,
			want: LineAmounts{SaleUnit: 10, MarginAmount: 2, TotalCost: 4, TotalSale: 5},
		},
		{
			name:     "zero quantity yields zero totals but keeps unit prices",
			quantity: 0, costUnit: 100, marginPercent: 20,
			want: LineAmounts{SaleUnit: 120, MarginAmount: 20, TotalCost: 0, TotalSale: 0},
		},
		{
			name:     "negative inputs coerce to zero",
			quantity: -2, costUnit: -100, marginPercent: -20,
			want: LineAmounts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLine(tt.quantity, tt.costUnit, tt.marginPercent)
			if !almostEqual(got.SaleUnit, tt.want.SaleUnit) ||
				!almostEqual(got.MarginAmount, tt.want.MarginAmount) ||
				!almostEqual(got.TotalCost, tt.want.TotalCost) ||
				!almostEqual(got.TotalSale, tt.want.TotalSale) {
				t.Errorf("ComputeLine(%v, %v, %v) = %+v, want %+v",
					tt.quantity, tt.costUnit, tt.marginPercent, got, tt.want)
			}
		})
	}
}

func TestComputeLine_NaNInputTreatedAsZero(t *testing.T) {
	got := ComputeLine(math.NaN(), 100, math.Inf(1))
	if got.TotalSale != 0 || got.TotalCost != 0 {
		t.Errorf("expected zero totals for NaN quantity, got %+v", got)
	}
	if math.IsNaN(got.SaleUnit) || math.IsNaN(got.MarginAmount) {
		t.Errorf("NaN leaked into outputs: %+v", got)
	}
}

func TestComputeLine_Deterministic(t *testing.T) {
	a := ComputeLine(3.7, 41.99, 17.5)
	b := ComputeLine(3.7, 41.99, 17.5)
	if a != b {
		t.Errorf("identical inputs produced different outputs: %+v vs %+v", a, b)
	}
}

func TestComputeLine_MarginNeverNegative(t *testing.T) {
	// For non-negative inputs the sale side must never drop below cost.
	inputs := []LineInput{
		{1, 0, 0}, {1, 0.01, 0}, {2, 100, 20}, {10, 3.33, 150}, {0.25, 99.99, 0.1},
	}
	for _, in := range inputs {
		got := ComputeLine(in.Quantity, in.CostUnit, in.MarginPercent)
		if got.SaleUnit < in.CostUnit {
			t.Errorf("saleUnit %v < costUnit %v for %+v", got.SaleUnit, in.CostUnit, in)
		}
		if got.TotalSale < got.TotalCost-eps {
			t.Errorf("totalSale %v < totalCost %v for %+v", got.TotalSale, got.TotalCost, in)
		}
		if got.MarginAmount < 0 {
			t.Errorf("negative marginAmount %v for %+v", got.MarginAmount, in)
		}
	}
}

func TestComputeTotals(t *testing.T) {
	items := []LineInput{
		{Quantity: 2, CostUnit: 100, MarginPercent: 20}, // sale 240, cost 200
		{Quantity: 1, CostUnit: 50, MarginPercent: 20},  // sale 60, cost 50
	}

	got := ComputeTotals(items)
	if !almostEqual(got.SubtotalAmount, 300) {
		t.Errorf("SubtotalAmount = %v, want 300", got.SubtotalAmount)
	}
	if !almostEqual(got.TotalCost, 250) {
		t.Errorf("TotalCost = %v, want 250", got.TotalCost)
	}
	if got.TotalAmount != got.SubtotalAmount {
		t.Errorf("TotalAmount %v must equal SubtotalAmount %v", got.TotalAmount, got.SubtotalAmount)
	}
}

func TestComputeTotals_EmptyItems(t *testing.T) {
	got := ComputeTotals(nil)
	if got.SubtotalAmount != 0 || got.TotalCost != 0 || got.TotalAmount != 0 {
		t.Errorf("empty item list should yield zero totals, got %+v", got)
	}
}

func TestComputeTotals_MatchesLineSum(t *testing.T) {
	items := []LineInput{
		{3, 12.5, 10}, {1, 0, 50}, {7, 99.99, 33.3}, {2.5, 40, 0},
	}

	var wantSubtotal, wantCost float64
	for _, it := range items {
		line := ComputeLine(it.Quantity, it.CostUnit, it.MarginPercent)
		wantSubtotal += line.TotalSale
		wantCost += line.TotalCost
	}

	got := ComputeTotals(items)
	if !almostEqual(got.SubtotalAmount, wantSubtotal) || !almostEqual(got.TotalCost, wantCost) {
		t.Errorf("ComputeTotals = %+v, want subtotal %v cost %v", got, wantSubtotal, wantCost)
	}
}

func TestParseNonNegativeDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{" 7 ", 7},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"-3", 0},
		{"NaN", 0},
		{"Inf", 0},
	}

	for _, tt := range tests {
		if got := ParseNonNegativeDecimal(tt.in); got != tt.want {
			t.Errorf("ParseNonNegativeDecimal(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
