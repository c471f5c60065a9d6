package planner

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/NomadCrew/nomad-crew-itinerary/types"
)

//go:embed prompt.tmpl
var promptSource string

var promptTemplate = template.Must(template.New("prompt").Parse(promptSource))

const noneLabel = "无"

type promptData struct {
	AgentName         string
	Destination       string
	Days              int
	Budget            string
	Travelers         int
	Preferences       string
	ExtraRequirements string
	TotalBudget       string
}

// ValidateRequest checks the fields the prompt depends on. It expects a
// normalized request.
func ValidateRequest(req types.TravelRequest) error {
	if strings.TrimSpace(req.Destination) == "" {
		return &PromptConstructionError{Field: "destination", Reason: "must not be empty"}
	}
	if req.Days < types.MinDays || req.Days > types.MaxDays {
		return &PromptConstructionError{
			Field:  "days",
			Reason: fmt.Sprintf("must be between %d and %d", types.MinDays, types.MaxDays),
		}
	}
	if req.Travelers < 1 {
		return &PromptConstructionError{Field: "travelers", Reason: "must be at least 1"}
	}
	return nil
}

// BuildPrompt renders the instruction prompt for req. The output depends
// only on req.
func BuildPrompt(req types.TravelRequest) (string, error) {
	req = req.Normalize()
	if err := ValidateRequest(req); err != nil {
		return "", err
	}

	budget := strings.TrimSpace(req.Budget)
	if budget == "" {
		budget = "未指定"
	}

	data := promptData{
		AgentName:         req.AgentName,
		Destination:       req.Destination,
		Days:              req.Days,
		Budget:            budget,
		Travelers:         req.Travelers,
		Preferences:       joinOrNone(req.Preferences),
		ExtraRequirements: orNone(req.ExtraRequirements),
		TotalBudget:       FormatBudget(EstimateBudget(req.Budget, req.Days, req.Travelers)),
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", &PromptConstructionError{Field: "template", Reason: err.Error()}
	}
	return buf.String(), nil
}

func joinOrNone(items []string) string {
	kept := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return noneLabel
	}
	return strings.Join(kept, ", ")
}

func orNone(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return noneLabel
	}
	return s
}
