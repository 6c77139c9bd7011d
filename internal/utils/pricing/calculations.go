package pricing

import (
	"github.com/shopspring/decimal"
)

// LineTotal computes the total for a single order line:
// max(0, quantity*unitPrice - discount), rounded to 2 decimal places.
// The rounding here is final; callers must not re-round line totals.
func LineTotal(quantity int64, unitPrice, discount decimal.Decimal) decimal.Decimal {
	total := unitPrice.Mul(decimal.NewFromInt(quantity)).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return total.Round(2)
}

// OrderTotal computes the order-level total from already-rounded line totals:
// max(0, sum(lineTotals) - orderDiscount) + laborCost, rounded to 2 decimal
// places. Line totals and the order total are each rounded independently.
func OrderTotal(lineTotals []decimal.Decimal, orderDiscount, laborCost decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, lt := range lineTotals {
		sum = sum.Add(lt)
	}
	sum = sum.Sub(orderDiscount)
	if sum.IsNegative() {
		sum = decimal.Zero
	}
	return sum.Add(laborCost).Round(2)
}

// SplitInstallments divides total into count parts of whole cents summing
// exactly to total. Each part gets the floor of total/count; the leftover
// cents are spread one per part over the final parts, so no part is ever
// negative. count must be >= 1.
func SplitInstallments(total decimal.Decimal, count int) []decimal.Decimal {
	if count < 1 {
		count = 1
	}
	cents := total.Round(2).Mul(decimal.NewFromInt(100)).IntPart()
	base := cents / int64(count)
	extra := cents % int64(count)
	parts := make([]decimal.Decimal, count)
	for i := range parts {
		c := base
		if int64(count-i) <= extra {
			c++
		}
		parts[i] = decimal.New(c, -2)
	}
	return parts
}
