package planner

import (
	"regexp"
	"strings"

	"github.com/NomadCrew/nomad-crew-itinerary/types"
	"github.com/shopspring/decimal"
)

// DefaultDailyRate is the per person per day amount (CNY) assumed when the
// budget text gives no usable number.
const DefaultDailyRate = 2000

// driftWarnRatio is the share of totalBudget the breakdown may miss before
// the generator logs a warning.
const driftWarnRatio = 0.10

// Full-width digits are common in Chinese input and count as digits.
var budgetNumberRe = regexp.MustCompile(`[0-9０-９]+`)

var fullWidthDigits = strings.NewReplacer(
	"０", "0", "１", "1", "２", "2", "３", "3", "４", "4",
	"５", "5", "６", "6", "７", "7", "８", "8", "９", "9",
)

// EstimateBudget turns free budget text into a number. All integers in the
// text are averaged, so "2000-5000元" gives 3500. Empty text falls back to
// the daily rate for every traveler; text without digits (whitespace
// included), or an unusable traveler count, falls back to the daily rate for
// one.
func EstimateBudget(text string, days, travelers int) float64 {
	rate := decimal.NewFromInt(DefaultDailyRate)
	d := decimal.NewFromInt(int64(days))

	if text == "" {
		if travelers < 1 {
			return toFloat(rate.Mul(d))
		}
		return toFloat(rate.Mul(d).Mul(decimal.NewFromInt(int64(travelers))))
	}

	nums := budgetNumberRe.FindAllString(text, -1)
	if len(nums) == 0 {
		return toFloat(rate.Mul(d))
	}

	sum := decimal.Zero
	for _, n := range nums {
		v, err := decimal.NewFromString(fullWidthDigits.Replace(n))
		if err != nil {
			continue
		}
		sum = sum.Add(v)
	}
	return toFloat(sum.Div(decimal.NewFromInt(int64(len(nums)))))
}

// FormatBudget renders an amount with one decimal place for the prompt.
func FormatBudget(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1)
}

// BudgetDrift returns totalBudget minus the sum of the breakdown, computed
// in decimal so float noise does not trigger a warning.
func BudgetDrift(o types.BudgetOverview) float64 {
	sum := decimal.Zero
	for _, item := range o.BudgetBreakdown {
		sum = sum.Add(decimal.NewFromFloat(item.Amount))
	}
	return toFloat(decimal.NewFromFloat(o.TotalBudget).Sub(sum))
}

// budgetDriftExceeded reports whether the drift is above the warning ratio.
func budgetDriftExceeded(o types.BudgetOverview) bool {
	drift := decimal.NewFromFloat(BudgetDrift(o)).Abs()
	limit := decimal.NewFromFloat(o.TotalBudget).Abs().Mul(decimal.NewFromFloat(driftWarnRatio))
	return drift.GreaterThan(limit)
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
