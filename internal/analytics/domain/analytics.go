// Package analytics computes read-only projections over a sales record
// snapshot. Every view is a pure function of its input: computing it twice
// against the same snapshot yields identical output, and no view holds
// state between calls.
package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	sales "bmw-sales-analytics/internal/sales/domain"
)

var (
	oneHundred = decimal.NewFromInt(100)
	million    = decimal.NewFromInt(1_000_000)
)

// percentOf divides num by den and scales to a percentage, rounded to two
// places. A zero denominator yields an undefined result, never an error
// or infinity.
func percentOf(num, den decimal.Decimal) decimal.NullDecimal {
	if den.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{
		Decimal: num.Div(den).Mul(oneHundred).Round(2),
		Valid:   true,
	}
}

// averageOf divides a sum by a count, rounded to two places, with the
// same zero-denominator convention as percentOf.
func averageOf(sum decimal.Decimal, count int64) decimal.NullDecimal {
	if count == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{
		Decimal: sum.Div(decimal.NewFromInt(count)).Round(2),
		Valid:   true,
	}
}

// modelList renders a duplicate-free model set as one display string,
// sorted lexically on the model name.
func modelList(models map[string]struct{}) string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// engineSizeSum accumulates engine sizes over the records that carry one.
// Electric records contribute nothing to either the sum or the count.
type engineSizeSum struct {
	sum   decimal.Decimal
	count int64
}

func (s *engineSizeSum) add(record *sales.SalesRecord) {
	if size := record.EngineSizeL(); size.Valid {
		s.sum = s.sum.Add(size.Decimal)
		s.count++
	}
}

func (s *engineSizeSum) average() decimal.NullDecimal {
	return averageOf(s.sum, s.count)
}
