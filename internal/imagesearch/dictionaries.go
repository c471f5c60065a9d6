package imagesearch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FoodTerm maps a dish or venue word found in a restaurant name to an English
// descriptor that stock photo sites index well.
type FoodTerm struct {
	Term       string `yaml:"term"`
	Descriptor string `yaml:"descriptor"`
}

// Prefix is a leading label planners put in front of a venue name.
// RequireColon is set for English labels so "Tour" in "Tour Eiffel" survives.
type Prefix struct {
	Text         string   `yaml:"text"`
	Hint         Category `yaml:"hint,omitempty"`
	RequireColon bool     `yaml:"require_colon,omitempty"`
}

// Dictionaries holds the lookup data behind query building. Food terms are
// matched in order, first hit wins.
type Dictionaries struct {
	FoodTerms       []FoodTerm        `yaml:"food_terms"`
	Cuisines        map[string]string `yaml:"cuisines"`
	DefaultCuisine  string            `yaml:"default_cuisine"`
	FamousLandmarks []string          `yaml:"famous_landmarks"`
	Prefixes        []Prefix          `yaml:"prefixes"`
}

// DefaultDictionaries returns the compiled-in data set.
func DefaultDictionaries() Dictionaries {
	return Dictionaries{
		FoodTerms: []FoodTerm{
			{"饺子", "dumplings chinese"},
			{"包子", "baozi steamed bun"},
			{"馒头", "mantou steamed bun"},
			{"春饼", "spring pancake chinese"},
			{"烤肉", "korean bbq grilled meat"},
			{"火锅", "hotpot chinese"},
			{"铁锅炖", "stew chinese casserole"},
			{"砂锅", "clay pot stew"},
			{"西餐", "western food steak"},
			{"俄罗斯", "russian food cuisine"},
			{"红肠", "sausage harbin"},
			{"锅包肉", "sweet sour pork chinese"},
			{"小笼", "xiaolongbao soup dumplings"},
			{"面", "noodles chinese"},
			{"粥", "congee rice porridge"},
			{"烧烤", "bbq grilled"},
			{"海鲜", "seafood"},
			{"川菜", "sichuan spicy food"},
			{"粤菜", "cantonese dim sum"},
			{"东北菜", "northeastern chinese food"},
		},
		Cuisines: map[string]string{
			"哈尔滨": "northeastern chinese Harbin",
			"上海":  "shanghai cuisine",
			"北京":  "beijing peking food",
			"成都":  "sichuan spicy food",
			"广州":  "cantonese dim sum",
			"西安":  "xian food noodles",
			"重庆":  "chongqing hotpot spicy",
			"杭州":  "hangzhou cuisine",
			"南京":  "jiangsu cuisine",
			"长沙":  "hunan spicy food",

			"harbin":    "northeastern chinese Harbin",
			"shanghai":  "shanghai cuisine",
			"beijing":   "beijing peking food",
			"chengdu":   "sichuan spicy food",
			"guangzhou": "cantonese dim sum",
			"xi'an":     "xian food noodles",
			"xian":      "xian food noodles",
			"chongqing": "chongqing hotpot spicy",
			"hangzhou":  "hangzhou cuisine",
			"nanjing":   "jiangsu cuisine",
			"changsha":  "hunan spicy food",
		},
		DefaultCuisine: "chinese food",
		FamousLandmarks: []string{
			"故宫", "长城", "天安门", "外滩", "东方明珠", "西湖", "兵马俑",
			"布达拉宫", "九寨沟", "黄山", "张家界", "颐和园", "天坛",
			"圣索菲亚", "中央大街", "太阳岛", "冰雪大世界",
		},
		Prefixes: []Prefix{
			{Text: "游览"},
			{Text: "参观"},
			{Text: "打卡"},
			{Text: "体验"},
			{Text: "探索"},
			{Text: "午餐", Hint: CategoryDining},
			{Text: "晚餐", Hint: CategoryDining},
			{Text: "早餐", Hint: CategoryDining},
			{Text: "美食", Hint: CategoryDining},
			{Text: "文化体验"},
			{Text: "午餐推荐", Hint: CategoryDining},
			{Text: "晚餐推荐", Hint: CategoryDining},
			{Text: "品尝", Hint: CategoryDining},
			{Text: "前往"},
			{Text: "到达"},
			{Text: "伴手礼采购", Hint: CategoryShopping},

			{Text: "Visit", RequireColon: true},
			{Text: "Tour", RequireColon: true},
			{Text: "Explore", RequireColon: true},
			{Text: "Experience", RequireColon: true},
			{Text: "Breakfast", Hint: CategoryDining, RequireColon: true},
			{Text: "Lunch", Hint: CategoryDining, RequireColon: true},
			{Text: "Dinner", Hint: CategoryDining, RequireColon: true},
			{Text: "Taste", Hint: CategoryDining, RequireColon: true},
			{Text: "Arrive at", RequireColon: true},
			{Text: "Shopping", Hint: CategoryShopping, RequireColon: true},
		},
	}
}

// LoadDictionaries reads a YAML override and lays it over the defaults.
// Only the sections present in the file are replaced. An empty path returns
// the defaults unchanged.
func LoadDictionaries(path string) (Dictionaries, error) {
	dict := DefaultDictionaries()
	if path == "" {
		return dict, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return dict, fmt.Errorf("read dictionary file: %w", err)
	}

	var override Dictionaries
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return dict, fmt.Errorf("parse dictionary file %s: %w", path, err)
	}

	if override.FoodTerms != nil {
		dict.FoodTerms = override.FoodTerms
	}
	if override.Cuisines != nil {
		dict.Cuisines = override.Cuisines
	}
	if override.DefaultCuisine != "" {
		dict.DefaultCuisine = override.DefaultCuisine
	}
	if override.FamousLandmarks != nil {
		dict.FamousLandmarks = override.FamousLandmarks
	}
	if override.Prefixes != nil {
		for i, p := range override.Prefixes {
			if p.Hint == "" {
				continue
			}
			c, ok := ParseCategory(string(p.Hint))
			if !ok {
				return dict, fmt.Errorf("prefix %q has unknown hint %q", p.Text, p.Hint)
			}
			override.Prefixes[i].Hint = c
		}
		dict.Prefixes = override.Prefixes
	}
	return dict, nil
}
