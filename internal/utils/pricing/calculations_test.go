package pricing_test

import (
	"testing"

	"github.com/rkalra23/workshop_mgmt_app/internal/utils/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name      string
		qty       int64
		unitPrice string
		discount  string
		want      string
	}{
		{"no discount", 2, "25.00", "0", "50.00"},
		{"with discount", 3, "10.00", "5.00", "25.00"},
		{"discount larger than line clamps to zero", 1, "10.00", "15.00", "0.00"},
		{"rounding to two places", 3, "0.335", "0", "1.01"},
		{"zero price service line", 4, "0", "0", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.LineTotal(tt.qty, dec(tt.unitPrice), dec(tt.discount))
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestOrderTotal(t *testing.T) {
	tests := []struct {
		name       string
		lineTotals []string
		discount   string
		laborCost  string
		want       string
	}{
		{"goods plus labor", []string{"50.00"}, "0", "50.00", "100.00"},
		{"order discount applied before labor", []string{"40.00", "20.00"}, "10.00", "30.00", "80.00"},
		{"discount exceeding lines clamps before labor", []string{"10.00"}, "25.00", "50.00", "50.00"},
		{"no lines labor only", nil, "0", "120.00", "120.00"},
		{"everything zero", nil, "0", "0", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lts := make([]decimal.Decimal, len(tt.lineTotals))
			for i, s := range tt.lineTotals {
				lts[i] = dec(s)
			}
			got := pricing.OrderTotal(lts, dec(tt.discount), dec(tt.laborCost))
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestSplitInstallments(t *testing.T) {
	tests := []struct {
		name  string
		total string
		count int
		want  []string
	}{
		{"even split", "100.00", 4, []string{"25.00", "25.00", "25.00", "25.00"}},
		{"remainder on last installment", "100.00", 3, []string{"33.33", "33.33", "33.34"}},
		{"single installment", "59.90", 1, []string{"59.90"}},
		{"cents split", "0.05", 2, []string{"0.02", "0.03"}},
		{"leftover cents spread over last parts", "0.05", 3, []string{"0.01", "0.02", "0.02"}},
		{"more parts than cents stays non-negative", "0.05", 10, []string{"0.00", "0.00", "0.00", "0.00", "0.00", "0.01", "0.01", "0.01", "0.01", "0.01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := pricing.SplitInstallments(dec(tt.total), tt.count)
			assert.Len(t, parts, len(tt.want))
			sum := decimal.Zero
			for i, p := range parts {
				assert.True(t, dec(tt.want[i]).Equal(p), "part %d: want %s got %s", i, tt.want[i], p)
				assert.False(t, p.IsNegative(), "part %d must not be negative, got %s", i, p)
				sum = sum.Add(p)
			}
			assert.True(t, dec(tt.total).Equal(sum), "parts must sum to total")
		})
	}
}
