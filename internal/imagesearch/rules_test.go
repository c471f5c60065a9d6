package imagesearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestRules() *Rules {
	return NewRules(DefaultDictionaries())
}

func TestCleanName(t *testing.T) {
	r := newTestRules()
	tests := []struct {
		title    string
		wantName string
		wantHint Category
	}{
		{"午餐推荐：南翔馒头店（城隍庙店）", "南翔馒头店", CategoryDining},
		{"午餐:老正兴菜馆", "老正兴菜馆", CategoryDining},
		{"游览：参观外滩", "外滩", ""},
		{"伴手礼采购 稻香村", "稻香村", CategoryShopping},
		{"Lunch: Nanxiang Steamed Buns (Downtown Branch)", "Nanxiang Steamed Buns", CategoryDining},
		{"Tour Eiffel", "Tour Eiffel", ""},
		{"  上海博物馆  ", "上海博物馆", ""},
		{"豫园（九曲桥）", "豫园（九曲桥）", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			name, hint := r.CleanName(tt.title)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantHint, hint)
		})
	}
}

func TestClassify(t *testing.T) {
	r := newTestRules()
	tests := []struct {
		name string
		hint Category
		want Category
	}{
		{"老正兴菜馆", "", CategoryDining},
		{"上海博物馆", "", CategoryMuseum},
		{"静安寺", "", CategoryTemple},
		{"世纪公园", "", CategoryPark},
		{"正大广场购物", "", CategoryShopping},
		{"锦江酒店", "", CategoryDefault},
		{"外滩", "", CategoryAttraction},
		{"Shanghai Museum", "", CategoryMuseum},
		{"外滩", CategoryMuseum, CategoryMuseum},
		{"外滩", Category("bogus"), CategoryAttraction},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+string(tt.hint), func(t *testing.T) {
			assert.Equal(t, tt.want, r.Classify(tt.name, tt.hint))
		})
	}
}

func TestBuildQueries(t *testing.T) {
	r := newTestRules()
	tests := []struct {
		label string
		name  string
		dest  string
		cat   Category
		want  []string
	}{
		{"dining with food term", "南翔小笼", "上海", CategoryDining,
			[]string{"xiaolongbao soup dumplings food dish", "shanghai cuisine cuisine food", "Chinese food dish cuisine"}},
		{"dining english city", "Jia Jia Tang Bao", "Shanghai", CategoryDining,
			[]string{"shanghai cuisine cuisine food", "Chinese food dish cuisine"}},
		{"dining unknown city", "老字号", "拉萨", CategoryDining,
			[]string{"chinese food cuisine food", "Chinese food dish cuisine"}},
		{"dining no destination", "老字号", "", CategoryDining,
			[]string{"Chinese food dish cuisine"}},
		{"famous attraction", "外滩", "上海", CategoryAttraction,
			[]string{"外滩 上海 landmark", "外滩 travel attraction", "外滩"}},
		{"plain attraction", "豫园", "", CategoryAttraction,
			[]string{"豫园 travel attraction"}},
		{"museum", "上海博物馆", "上海", CategoryMuseum,
			[]string{"上海博物馆 museum", "上海 museum gallery"}},
		{"temple", "静安寺", "", CategoryTemple,
			[]string{"静安寺 temple", "Chinese temple architecture"}},
		{"shopping", "南京路", "上海", CategoryShopping,
			[]string{"上海 shopping mall", "shopping mall retail store"}},
		{"park", "世纪公园", "上海", CategoryPark,
			[]string{"世纪公园 park", "上海 park garden nature"}},
		{"default", "锦江酒店", "上海", CategoryDefault,
			[]string{"锦江酒店 上海", "锦江酒店 travel"}},
		{"nothing to go on", "", "", CategoryDefault,
			[]string{"travel destination landmark"}},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := r.BuildQueries(tt.name, tt.dest, tt.cat)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got)
			assert.LessOrEqual(t, len(got), 4)
		})
	}
}

func TestPlanIsDeterministic(t *testing.T) {
	r := newTestRules()
	cat1, q1 := r.Plan("午餐：南翔小笼（城隍庙店）", "上海")
	cat2, q2 := r.Plan("午餐：南翔小笼（城隍庙店）", "上海")
	assert.Equal(t, CategoryDining, cat1)
	assert.Equal(t, cat1, cat2)
	assert.Equal(t, q1, q2)
}

func TestPlanFallsBackToRawTitle(t *testing.T) {
	r := newTestRules()
	cat, queries := r.Plan("午餐：", "上海")
	assert.Equal(t, CategoryDining, cat)
	assert.Equal(t, []string{"shanghai cuisine cuisine food", "Chinese food dish cuisine"}, queries)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("博物馆")
	assert.True(t, ok)
	assert.Equal(t, CategoryMuseum, c)

	c, ok = ParseCategory("Dining")
	assert.True(t, ok)
	assert.Equal(t, CategoryDining, c)

	c, ok = ParseCategory("酒店")
	assert.True(t, ok)
	assert.Equal(t, CategoryDefault, c)

	_, ok = ParseCategory("spaceport")
	assert.False(t, ok)
}
