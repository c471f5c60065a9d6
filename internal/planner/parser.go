package planner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/NomadCrew/nomad-crew-itinerary/types"
)

const fence = "```"

var jsonFenceRe = regexp.MustCompile("(?i)" + fence + "json")

// ParseItinerary extracts and validates an itinerary from raw model text.
// Any images the model produced are dropped. Failures are *ParseError.
func ParseItinerary(raw string) (*types.Itinerary, error) {
	text, err := stripFences(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return nil, &ParseError{
			Kind:    JSONSyntaxError,
			Message: "no JSON object found in model output",
			Snippet: snippet(text),
		}
	}
	body := text[start : end+1]

	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()
	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, &ParseError{
			Kind:    JSONSyntaxError,
			Message: err.Error(),
			Snippet: snippet(body),
			Err:     err,
		}
	}
	// The slice must be exactly one JSON value.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		msg := "unexpected data after top-level object"
		if err != nil {
			msg = err.Error()
		}
		return nil, &ParseError{
			Kind:    JSONSyntaxError,
			Message: msg,
			Snippet: snippet(body[dec.InputOffset():]),
			Err:     err,
		}
	}

	if _, ok := root["overview"]; !ok {
		return nil, &ParseError{Kind: SchemaValidationError, Field: "overview", Message: "is required"}
	}
	if _, ok := root["dailyPlans"]; !ok {
		return nil, &ParseError{Kind: SchemaValidationError, Field: "dailyPlans", Message: "is required"}
	}

	d := &schemaDecoder{}
	it := d.itinerary(root)
	if d.err != nil {
		d.err.Snippet = snippet(body)
		return nil, d.err
	}
	return it, nil
}

// stripFences returns the body of the first ```json block, else of the first
// fenced block, else the text unchanged. An unterminated fence runs to the
// end of the text.
func stripFences(text string) (string, error) {
	open, skip := -1, len(fence)+len("json")
	if loc := jsonFenceRe.FindStringIndex(text); loc != nil {
		open = loc[0]
	}
	if open == -1 {
		open = strings.Index(text, fence)
		if open == -1 {
			return text, nil
		}
		skip = len(fence)
		// Drop any other info string on the opening line.
		if nl := strings.IndexByte(text[open+skip:], '\n'); nl != -1 {
			info := strings.TrimSpace(text[open+skip : open+skip+nl])
			if info != "" && !strings.ContainsAny(info, "{}") {
				skip += nl
			}
		}
	}

	body := text[open+skip:]
	if closeIdx := strings.Index(body, fence); closeIdx != -1 {
		body = body[:closeIdx]
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return "", &ParseError{
			Kind:    MarkdownStripFailure,
			Message: "fenced block is empty",
			Snippet: snippet(text),
		}
	}
	return body, nil
}

// schemaDecoder walks the generic JSON tree and records the first field that
// does not fit the itinerary schema.
type schemaDecoder struct {
	err *ParseError
}

func (d *schemaDecoder) fail(path, format string, args ...any) {
	if d.err == nil {
		d.err = &ParseError{Kind: SchemaValidationError, Field: path, Message: fmt.Sprintf(format, args...)}
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func (d *schemaDecoder) lookup(obj map[string]any, path, key string, required bool) (any, bool) {
	v, ok := obj[key]
	if !ok || v == nil {
		if required {
			d.fail(join(path, key), "is required")
		}
		return nil, false
	}
	return v, true
}

func (d *schemaDecoder) str(obj map[string]any, path, key string, required bool) string {
	v, ok := d.lookup(obj, path, key, required)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		if required && strings.TrimSpace(t) == "" {
			d.fail(join(path, key), "must not be empty")
		}
		return t
	case json.Number:
		return t.String()
	default:
		d.fail(join(path, key), "expected string, got %T", v)
		return ""
	}
}

func (d *schemaDecoder) num(obj map[string]any, path, key string, required bool) float64 {
	v, ok := d.lookup(obj, path, key, required)
	if !ok {
		return 0
	}
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		err = fmt.Errorf("unexpected %T", v)
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		d.fail(join(path, key), "expected number")
		return 0
	}
	return f
}

func (d *schemaDecoder) integer(obj map[string]any, path, key string, required bool) int {
	f := d.num(obj, path, key, required)
	if f != math.Trunc(f) {
		d.fail(join(path, key), "expected integer")
		return 0
	}
	return int(f)
}

func (d *schemaDecoder) object(obj map[string]any, path, key string, required bool) map[string]any {
	v, ok := d.lookup(obj, path, key, required)
	if !ok {
		return nil
	}
	m, isObj := v.(map[string]any)
	if !isObj {
		d.fail(join(path, key), "expected object, got %T", v)
		return nil
	}
	return m
}

func (d *schemaDecoder) array(obj map[string]any, path, key string, required bool) []any {
	v, ok := d.lookup(obj, path, key, required)
	if !ok {
		return nil
	}
	a, isArr := v.([]any)
	if !isArr {
		d.fail(join(path, key), "expected array, got %T", v)
		return nil
	}
	return a
}

// objects yields each element of an array that must hold objects.
func (d *schemaDecoder) objects(items []any, path string) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			d.fail(fmt.Sprintf("%s[%d]", path, i), "expected object, got %T", item)
			return nil
		}
		out = append(out, m)
	}
	return out
}

func (d *schemaDecoder) itinerary(root map[string]any) *types.Itinerary {
	it := &types.Itinerary{
		Overview:   d.overview(d.object(root, "", "overview", true)),
		DailyPlans: d.dailyPlans(root),
		HiddenGems: d.hiddenGems(root),
	}
	it.PracticalTips = d.practicalTips(d.object(root, "", "practicalTips", false))
	return it
}

func (d *schemaDecoder) overview(obj map[string]any) types.BudgetOverview {
	out := types.BudgetOverview{BudgetBreakdown: []types.BudgetItem{}}
	if obj == nil {
		return out
	}
	out.TotalBudget = d.num(obj, "overview", "totalBudget", true)
	const path = "overview.budgetBreakdown"
	for i, item := range d.objects(d.array(obj, "overview", "budgetBreakdown", false), path) {
		p := fmt.Sprintf("%s[%d]", path, i)
		out.BudgetBreakdown = append(out.BudgetBreakdown, types.BudgetItem{
			Category: d.str(item, p, "category", false),
			Amount:   d.num(item, p, "amount", false),
		})
	}
	return out
}

func (d *schemaDecoder) dailyPlans(root map[string]any) []types.DailyPlan {
	items := d.array(root, "", "dailyPlans", true)
	if d.err != nil {
		return nil
	}
	if len(items) == 0 {
		d.fail("dailyPlans", "must contain at least one day")
		return nil
	}

	plans := make([]types.DailyPlan, 0, len(items))
	for i, obj := range d.objects(items, "dailyPlans") {
		p := fmt.Sprintf("dailyPlans[%d]", i)
		plan := types.DailyPlan{
			Day:   d.integer(obj, p, "day", true),
			Title: d.str(obj, p, "title", false),
		}
		if d.err == nil && plan.Day != i+1 {
			d.fail(join(p, "day"), "expected day %d, got %d", i+1, plan.Day)
		}
		plan.Activities = d.activities(d.array(obj, p, "activities", true), join(p, "activities"))
		plans = append(plans, plan)
	}
	return plans
}

func (d *schemaDecoder) activities(items []any, path string) []types.Activity {
	acts := make([]types.Activity, 0, len(items))
	for i, obj := range d.objects(items, path) {
		p := fmt.Sprintf("%s[%d]", path, i)
		a := types.Activity{
			Time:        d.str(obj, p, "time", false),
			Title:       d.str(obj, p, "title", true),
			Description: d.str(obj, p, "description", false),
			Duration:    d.str(obj, p, "duration", false),
			Cost:        d.num(obj, p, "cost", false),
			Address:     d.str(obj, p, "address", false),
			Reason:      d.str(obj, p, "reason", false),
			// Model-supplied images are never trusted.
			Images: []string{},
		}
		if a.Cost < 0 {
			d.fail(join(p, "cost"), "must not be negative")
		}
		acts = append(acts, a)
	}
	return acts
}

func (d *schemaDecoder) hiddenGems(root map[string]any) []types.HiddenGem {
	gems := []types.HiddenGem{}
	for i, obj := range d.objects(d.array(root, "", "hiddenGems", false), "hiddenGems") {
		p := fmt.Sprintf("hiddenGems[%d]", i)
		gems = append(gems, types.HiddenGem{
			Title:       d.str(obj, p, "title", false),
			Description: d.str(obj, p, "description", false),
			Category:    d.str(obj, p, "category", false),
		})
	}
	return gems
}

func (d *schemaDecoder) practicalTips(obj map[string]any) types.PracticalTips {
	tips := types.PracticalTips{PackingList: []string{}}
	if obj == nil {
		return tips
	}
	const path = "practicalTips"
	tips.Transportation = d.str(obj, path, "transportation", false)
	tips.Weather = d.str(obj, path, "weather", false)
	tips.SeasonalNotes = d.str(obj, path, "seasonalNotes", false)
	for i, item := range d.array(obj, path, "packingList", false) {
		s, ok := item.(string)
		if !ok {
			d.fail(fmt.Sprintf("%s.packingList[%d]", path, i), "expected string, got %T", item)
			break
		}
		tips.PackingList = append(tips.PackingList, s)
	}
	return tips
}
