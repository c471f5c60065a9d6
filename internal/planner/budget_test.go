package planner

import (
	"testing"

	"github.com/NomadCrew/nomad-crew-itinerary/types"
	"github.com/stretchr/testify/assert"
)

func TestEstimateBudget(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		days      int
		travelers int
		want      float64
	}{
		{"empty uses rate for every traveler", "", 3, 2, 12000},
		{"empty with unusable traveler count", "", 3, 0, 6000},
		{"range averages bounds", "2000-5000元", 3, 2, 3500},
		{"single number", "人均3000", 2, 2, 3000},
		{"three numbers", "100 200 600", 1, 1, 300},
		{"no digits", "经济实惠", 3, 2, 6000},
		{"whitespace only counts as text", "   ", 3, 2, 6000},
		{"full-width range", "２０００-５０００元", 3, 2, 3500},
		{"mixed width digits", "人均３000", 2, 2, 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EstimateBudget(tt.text, tt.days, tt.travelers), 0.0001)
		})
	}
}

func TestFormatBudget(t *testing.T) {
	assert.Equal(t, "12000.0", FormatBudget(12000))
	assert.Equal(t, "3333.3", FormatBudget(10000.0/3))
}

func TestBudgetDrift(t *testing.T) {
	o := types.BudgetOverview{
		TotalBudget: 3500,
		BudgetBreakdown: []types.BudgetItem{
			{Category: "住宿", Amount: 1200},
			{Category: "餐饮", Amount: 1000},
			{Category: "交通", Amount: 400},
			{Category: "景点门票", Amount: 300},
			{Category: "购物与杂费", Amount: 600},
		},
	}
	assert.InDelta(t, 0, BudgetDrift(o), 0.0001)
	assert.False(t, budgetDriftExceeded(o))

	o.BudgetBreakdown = o.BudgetBreakdown[:2]
	assert.InDelta(t, 1300, BudgetDrift(o), 0.0001)
	assert.True(t, budgetDriftExceeded(o))
}
