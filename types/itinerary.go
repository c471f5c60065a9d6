package types

import (
	"strings"
	"time"
)

const (
	DefaultAgentName = "我的周末旅行"
	DefaultDays      = 2
	DefaultTravelers = 2
	MinDays          = 1
	MaxDays          = 5

	// MaxImagesPerActivity bounds enrichment fan-out for a single activity.
	MaxImagesPerActivity = 3
)

// TravelRequest is the immutable input of one generation.
type TravelRequest struct {
	AgentName         string   `json:"agentName"`
	Destination       string   `json:"destination" binding:"required"`
	Days              int      `json:"days"`
	Budget            string   `json:"budget"`
	Travelers         int      `json:"travelers"`
	Preferences       []string `json:"preferences"`
	ExtraRequirements string   `json:"extraRequirements"`
}

// Normalize returns a copy with defaults applied to unset fields.
func (r TravelRequest) Normalize() TravelRequest {
	out := r
	out.Destination = strings.TrimSpace(out.Destination)
	if strings.TrimSpace(out.AgentName) == "" {
		out.AgentName = DefaultAgentName
	}
	if out.Days == 0 {
		out.Days = DefaultDays
	}
	if out.Travelers == 0 {
		out.Travelers = DefaultTravelers
	}
	if out.Preferences == nil {
		out.Preferences = []string{}
	}
	return out
}

// Itinerary is the root document produced by the pipeline.
type Itinerary struct {
	Overview      BudgetOverview `json:"overview"`
	DailyPlans    []DailyPlan    `json:"dailyPlans"`
	HiddenGems    []HiddenGem    `json:"hiddenGems"`
	PracticalTips PracticalTips  `json:"practicalTips"`
}

type BudgetOverview struct {
	TotalBudget     float64      `json:"totalBudget"`
	BudgetBreakdown []BudgetItem `json:"budgetBreakdown"`
}

type BudgetItem struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type DailyPlan struct {
	Day        int        `json:"day"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

// Activity is one scheduled leaf entry. Images are owned by the enrichment
// step and are never taken from model output.
type Activity struct {
	Time        string   `json:"time"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Cost        float64  `json:"cost"`
	Address     string   `json:"address"`
	Reason      string   `json:"reason"`
	Images      []string `json:"images"`
}

type HiddenGem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type PracticalTips struct {
	Transportation string   `json:"transportation"`
	PackingList    []string `json:"packingList"`
	Weather        string   `json:"weather"`
	SeasonalNotes  string   `json:"seasonalNotes"`
}

// ActivityCount returns the number of activities across all days.
func (it *Itinerary) ActivityCount() int {
	n := 0
	for _, d := range it.DailyPlans {
		n += len(d.Activities)
	}
	return n
}

// ItineraryRecord is a persisted generation result.
type ItineraryRecord struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"ownerId"`
	Request   TravelRequest `json:"request"`
	Itinerary Itinerary     `json:"itinerary"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ItinerarySummary is the history list projection of a record.
type ItinerarySummary struct {
	ID          string    `json:"id"`
	AgentName   string    `json:"agentName"`
	Destination string    `json:"destination"`
	Days        int       `json:"days"`
	Budget      string    `json:"budget"`
	Travelers   int       `json:"travelers"`
	TotalBudget float64   `json:"totalBudget"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HistoryPage is one page of an owner's saved itineraries.
type HistoryPage struct {
	Total int                `json:"total"`
	Items []ItinerarySummary `json:"items"`
}

// GeneratedItinerary is returned by the synchronous generate endpoint.
type GeneratedItinerary struct {
	ID        string    `json:"id,omitempty"`
	Saved     bool      `json:"saved"`
	Itinerary Itinerary `json:"itinerary"`
}
