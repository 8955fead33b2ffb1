package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name     string
	Rarity   string
	Source   string
	Power    int
	Limited  bool
	Released time.Time
	Labels   []string
}

func testEngine(t *testing.T) *Engine[item] {
	t.Helper()
	e, err := New(Config[item]{
		SearchFields: []Accessor[item, string]{Field[item, string]("Name")},
		Rarity:       Field[item, string]("Rarity"),
		Category:     Field[item, string]("Source"),
		Tags:         func(it item) []string { return it.Labels },
		TagMode:      TagAny,
		Ranges: []RangeFilter[item]{
			{Key: "power", Label: "威力", Min: 0, Max: 5000, Step: 100,
				Value: Extract(func(it item) float64 { return float64(it.Power) })},
		},
		Booleans: []BoolFilter[item]{
			{Key: "limited", Label: "限定", Pred: func(it item) bool { return it.Limited }},
		},
		Date: Extract(func(it item) time.Time { return it.Released }),
		Sorts: map[string]LessFunc[item]{
			"name":       func(a, b item) bool { return a.Name < b.Name },
			"power_desc": func(a, b item) bool { return a.Power > b.Power },
		},
	})
	require.NoError(t, err)
	return e
}

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func sampleItems() []item {
	return []item{
		{Name: "Valkyrie", Rarity: "SSR", Source: "gacha", Power: 4200, Limited: true, Released: day(10), Labels: []string{"anniversary", "pow"}},
		{Name: "Serenade", Rarity: "SR", Source: "event", Power: 3300, Released: day(20), Labels: []string{"event"}},
		{Name: "Marine Blue", Rarity: "SSR", Source: "gacha", Power: 3900, Released: day(5), Labels: []string{"pow"}},
		{Name: "Plain White", Rarity: "N", Source: "shop", Power: 800, Released: day(1)},
	}
}

func names(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestEngineApply(t *testing.T) {
	e := testEngine(t)
	items := sampleItems()

	t.Run("empty state returns everything in order", func(t *testing.T) {
		got := e.Apply(items, State{})
		assert.Equal(t, []string{"Valkyrie", "Serenade", "Marine Blue", "Plain White"}, names(got))
	})

	t.Run("search is case-insensitive substring", func(t *testing.T) {
		got := e.Apply(items, State{Search: "  maRine "})
		assert.Equal(t, []string{"Marine Blue"}, names(got))
	})

	t.Run("single-select constraint", func(t *testing.T) {
		got := e.Apply(items, State{Rarity: Constraint("SSR")})
		assert.Equal(t, []string{"Valkyrie", "Marine Blue"}, names(got))
	})

	t.Run("All sentinel means no constraint", func(t *testing.T) {
		got := e.Apply(items, State{Rarity: Constraint(All)})
		assert.Len(t, got, 4)
		got = e.Apply(items, State{Rarity: Constraint("")})
		assert.Len(t, got, 4)
	})

	t.Run("tag any-of semantics", func(t *testing.T) {
		got := e.Apply(items, State{Tags: []string{"pow", "event"}})
		assert.Equal(t, []string{"Valkyrie", "Serenade", "Marine Blue"}, names(got))
	})

	t.Run("numeric range is inclusive", func(t *testing.T) {
		got := e.Apply(items, State{Ranges: map[string]Range{"power": {Min: 3300, Max: 3900}}})
		assert.Equal(t, []string{"Serenade", "Marine Blue"}, names(got))
	})

	t.Run("unknown range key is ignored", func(t *testing.T) {
		got := e.Apply(items, State{Ranges: map[string]Range{"nope": {Min: 1, Max: 2}}})
		assert.Len(t, got, 4)
	})

	t.Run("boolean filters only narrow when enabled", func(t *testing.T) {
		got := e.Apply(items, State{Booleans: map[string]bool{"limited": true}})
		assert.Equal(t, []string{"Valkyrie"}, names(got))

		got = e.Apply(items, State{Booleans: map[string]bool{"limited": false}})
		assert.Len(t, got, 4)
	})

	t.Run("date range open ended", func(t *testing.T) {
		from := day(6)
		got := e.Apply(items, State{Dates: DateRange{Start: &from}})
		assert.Equal(t, []string{"Valkyrie", "Serenade"}, names(got))
	})

	t.Run("filters compose", func(t *testing.T) {
		got := e.Apply(items, State{
			Rarity:   Constraint("SSR"),
			Category: Constraint("gacha"),
			Ranges:   map[string]Range{"power": {Min: 4000, Max: 5000}},
		})
		assert.Equal(t, []string{"Valkyrie"}, names(got))
	})

	t.Run("apply does not modify input", func(t *testing.T) {
		before := names(items)
		e.Apply(items, State{Sort: "name"})
		assert.Equal(t, before, names(items))
	})

	t.Run("same state twice gives identical results", func(t *testing.T) {
		st := State{Search: "e", Sort: "power_desc"}
		assert.Equal(t, names(e.Apply(items, st)), names(e.Apply(items, st)))
	})
}

func TestEngineSort(t *testing.T) {
	e := testEngine(t)
	items := sampleItems()

	t.Run("registered sort key reorders", func(t *testing.T) {
		got := e.Apply(items, State{Sort: "power_desc"})
		assert.Equal(t, []string{"Valkyrie", "Marine Blue", "Serenade", "Plain White"}, names(got))
	})

	t.Run("unknown sort key keeps incoming order", func(t *testing.T) {
		got := e.Apply(items, State{Sort: "newest"})
		assert.Equal(t, names(items), names(got))
	})

	t.Run("sort is stable for equal keys", func(t *testing.T) {
		tied := []item{
			{Name: "B", Power: 100},
			{Name: "A", Power: 100},
			{Name: "C", Power: 100},
		}
		got := e.Apply(tied, State{Sort: "power_desc"})
		assert.Equal(t, []string{"B", "A", "C"}, names(got))
	})
}

func TestEngineTagAll(t *testing.T) {
	e, err := New(Config[item]{
		Tags:    func(it item) []string { return it.Labels },
		TagMode: TagAll,
	})
	require.NoError(t, err)

	items := sampleItems()
	got := e.Apply(items, State{Tags: []string{"anniversary", "pow"}})
	assert.Equal(t, []string{"Valkyrie"}, names(got))
}

func TestEngineResolve(t *testing.T) {
	e := testEngine(t)
	rc := e.Resolve(sampleItems())

	assert.Equal(t, []string{"N", "SR", "SSR"}, rc.Rarities)
	assert.Equal(t, []string{"event", "gacha", "shop"}, rc.Categories)
	assert.Equal(t, []string{"anniversary", "event", "pow"}, rc.Tags)
	assert.Equal(t, []string{"name", "power_desc"}, rc.Sorts)

	require.Len(t, rc.Ranges, 1)
	assert.Equal(t, "power", rc.Ranges[0].Key)
	require.Len(t, rc.Booleans, 1)
	assert.Equal(t, "limited", rc.Booleans[0].Key)

	// 未配置的维度不出现
	assert.Empty(t, rc.Statuses)
	assert.Empty(t, rc.Types)
}

func TestNewRejectsBadAccessor(t *testing.T) {
	_, err := New(Config[item]{
		Rarity: Field[item, string]("NoSuchField"),
	})
	assert.Error(t, err)

	_, err = New(Config[item]{
		Rarity: Field[item, string]("Power"), // int 字段取 string
	})
	assert.Error(t, err)
}

func TestConstraint(t *testing.T) {
	assert.Nil(t, Constraint(""))
	assert.Nil(t, Constraint(All))
	require.NotNil(t, Constraint("SSR"))
	assert.Equal(t, "SSR", *Constraint("SSR"))
}

func TestActiveCount(t *testing.T) {
	assert.Equal(t, 0, State{}.ActiveCount())
	assert.Equal(t, 0, State{Search: "   "}.ActiveCount())

	from := day(1)
	st := State{
		Search:   "v",
		Rarity:   Constraint("SSR"),
		Tags:     []string{"pow"},
		Ranges:   map[string]Range{"power": {Min: 1, Max: 2}},
		Booleans: map[string]bool{"limited": true},
		Dates:    DateRange{Start: &from},
	}
	assert.Equal(t, 6, st.ActiveCount())

	// 关闭的布尔开关不计数
	assert.Equal(t, 0, State{Booleans: map[string]bool{"limited": false}}.ActiveCount())
}
