package imagesearch

import (
	"regexp"
	"sort"
	"strings"
)

// classRule is one row of the classification table. Rows are checked in
// order and the first row with a matching keyword wins.
type classRule struct {
	category Category
	keywords []string
}

// 馆 and 厅 are left out of the dining row: they also end 博物馆 and 展厅,
// and every dining venue using them is already caught by 餐, 饭 or 菜.
var classificationRules = []classRule{
	{CategoryDining, []string{"餐", "饭", "吃", "食", "铺", "包", "饺", "面", "菜", "锅", "烤", "炖", "restaurant", "cafe"}},
	{CategoryMuseum, []string{"博物", "museum"}},
	{CategoryTemple, []string{"寺", "庙", "宫", "文庙", "temple", "palace", "shrine"}},
	{CategoryPark, []string{"公园", "花园", "park", "garden"}},
	{CategoryShopping, []string{"购物", "商场", "商城", "专卖", "shopping", "mall"}},
	{CategoryDefault, []string{"酒店", "宾馆", "民宿", "hotel", "hostel"}},
}

type queryTemplate struct {
	pattern string
	// famousOnly templates apply only when the name is a well-known landmark.
	famousOnly bool
}

// queryTemplates lists queries per category from most to least specific.
// A template is skipped when one of its placeholders has no value.
var queryTemplates = map[Category][]queryTemplate{
	CategoryDining: {
		{pattern: "{food} food dish"},
		{pattern: "{cuisine} cuisine food"},
		{pattern: "Chinese food dish cuisine"},
	},
	CategoryAttraction: {
		{pattern: "{name} {loc} landmark"},
		{pattern: "{name} travel attraction"},
		{pattern: "{name}", famousOnly: true},
	},
	CategoryMuseum: {
		{pattern: "{name} museum"},
		{pattern: "{loc} museum gallery"},
	},
	CategoryTemple: {
		{pattern: "{name} temple"},
		{pattern: "{loc} temple shrine"},
		{pattern: "Chinese temple architecture"},
	},
	CategoryShopping: {
		{pattern: "{loc} shopping mall"},
		{pattern: "shopping mall retail store"},
	},
	CategoryPark: {
		{pattern: "{name} park"},
		{pattern: "{loc} park garden nature"},
	},
	CategoryDefault: {
		{pattern: "{name} {loc}"},
		{pattern: "{name} travel"},
	},
}

var placeholderRe = regexp.MustCompile(`\{(name|loc|food|cuisine)\}`)

var (
	branchSuffixCN = regexp.MustCompile(`[（(][^）)]*[店铺馆厅][）)]`)
	branchSuffixEN = regexp.MustCompile(`(?i)[（(][^）)]*\b(branch|store|shop|location|outlet)\b[^）)]*[）)]`)
)

const genericFallbackQuery = "travel destination landmark"

// Rules classifies activity titles and renders search queries. It is
// immutable after construction and safe for concurrent use.
type Rules struct {
	dict     Dictionaries
	prefixes []Prefix
}

func NewRules(dict Dictionaries) *Rules {
	prefixes := make([]Prefix, 0, len(dict.Prefixes))
	for _, p := range dict.Prefixes {
		if p.Text != "" {
			prefixes = append(prefixes, p)
		}
	}
	// Longest first so 午餐推荐 wins over 午餐.
	sort.SliceStable(prefixes, func(i, j int) bool {
		return len(prefixes[i].Text) > len(prefixes[j].Text)
	})
	return &Rules{dict: dict, prefixes: prefixes}
}

// CleanName strips leading planner labels and a trailing branch qualifier
// from a title. The hint is the category implied by the first stripped label,
// or empty.
func (r *Rules) CleanName(title string) (string, Category) {
	s := strings.TrimSpace(title)
	var hint Category
	for {
		p, rest, ok := r.stripPrefix(s)
		if !ok {
			break
		}
		s = rest
		if hint == "" {
			hint = p.Hint
		}
	}
	s = branchSuffixCN.ReplaceAllString(s, "")
	s = branchSuffixEN.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " "), hint
}

func (r *Rules) stripPrefix(s string) (Prefix, string, bool) {
	for _, p := range r.prefixes {
		n := len(p.Text)
		if len(s) < n || !strings.EqualFold(s[:n], p.Text) {
			continue
		}
		rest := s[n:]
		colon := false
		switch {
		case strings.HasPrefix(rest, ":"):
			rest, colon = rest[1:], true
		case strings.HasPrefix(rest, "："):
			rest, colon = rest[len("："):], true
		}
		if p.RequireColon && !colon {
			continue
		}
		return p, strings.TrimSpace(rest), true
	}
	return Prefix{}, s, false
}

// Classify returns hint when it is a known category, otherwise the first
// matching row of the keyword table, otherwise CategoryAttraction.
func (r *Rules) Classify(name string, hint Category) Category {
	if isKnownCategory(hint) {
		return hint
	}
	lower := strings.ToLower(name)
	for _, rule := range classificationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return CategoryAttraction
}

// BuildQueries renders the templates of cat for a cleaned venue name. The
// result always holds at least one query.
func (r *Rules) BuildQueries(name, destination string, cat Category) []string {
	name = strings.TrimSpace(name)
	destination = strings.TrimSpace(destination)

	values := map[string]string{
		"name": name,
		"loc":  destination,
	}
	if cat == CategoryDining {
		values["food"] = r.foodDescriptor(name)
		if destination != "" {
			values["cuisine"] = r.cuisine(destination)
		}
	}

	templates, ok := queryTemplates[cat]
	if !ok {
		templates = queryTemplates[CategoryDefault]
	}
	famous := r.isFamous(name)

	queries := make([]string, 0, len(templates))
	for _, t := range templates {
		if t.famousOnly && !famous {
			continue
		}
		if q, ok := render(t.pattern, values); ok {
			queries = append(queries, q)
		}
	}
	if len(queries) == 0 {
		queries = append(queries, genericFallbackQuery)
	}
	return queries
}

// Plan cleans, classifies and builds queries for one activity title.
func (r *Rules) Plan(title, destination string) (Category, []string) {
	name, hint := r.CleanName(title)
	if name == "" {
		name = strings.TrimSpace(title)
	}
	cat := r.Classify(name, hint)
	return cat, r.BuildQueries(name, destination, cat)
}

func (r *Rules) foodDescriptor(name string) string {
	for _, ft := range r.dict.FoodTerms {
		if ft.Term != "" && strings.Contains(name, ft.Term) {
			return ft.Descriptor
		}
	}
	return ""
}

func (r *Rules) cuisine(destination string) string {
	if c, ok := r.dict.Cuisines[destination]; ok {
		return c
	}
	if c, ok := r.dict.Cuisines[strings.ToLower(destination)]; ok {
		return c
	}
	return r.dict.DefaultCuisine
}

func (r *Rules) isFamous(name string) bool {
	for _, f := range r.dict.FamousLandmarks {
		if f != "" && strings.Contains(name, f) {
			return true
		}
	}
	return false
}

func render(pattern string, values map[string]string) (string, bool) {
	missing := false
	out := placeholderRe.ReplaceAllStringFunc(pattern, func(m string) string {
		v := values[m[1:len(m)-1]]
		if v == "" {
			missing = true
		}
		return v
	})
	if missing {
		return "", false
	}
	return strings.Join(strings.Fields(out), " "), true
}

func isKnownCategory(c Category) bool {
	switch c {
	case CategoryDining, CategoryAttraction, CategoryMuseum, CategoryTemple,
		CategoryPark, CategoryShopping, CategoryDefault:
		return true
	}
	return false
}
