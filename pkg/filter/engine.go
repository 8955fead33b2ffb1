// Package filter 实现目录页通用的筛选/排序管线。
//
// 管线各阶段按固定顺序执行：搜索 → 分类 → 稀有度 → 状态 → 类型 → 标签 →
// 数值区间 → 布尔谓词 → 日期区间 → 排序。每一阶段都是纯收窄/重排，
// 相同输入必得相同输出。
package filter

import (
	"sort"
	"strings"
	"time"
)

// Engine 按预设配置对内存中的条目数组求筛选视图
type Engine[T any] struct {
	search       func(T, string) bool
	searchFields []func(T) string

	category func(T) string
	rarity   func(T) string
	status   func(T) string
	typ      func(T) string

	tags    func(T) []string
	tagMode TagMode

	ranges   map[string]func(T) float64
	rangeDef []RangeDef
	booleans map[string]func(T) bool
	boolDef  []BoolDef

	date func(T) time.Time

	sorts map[string]LessFunc[T]
}

// New 解析配置并构造引擎。所有字段访问器在此解析一次，Apply 不再做任何反射。
func New[T any](cfg Config[T]) (*Engine[T], error) {
	e := &Engine[T]{
		search:   cfg.Search,
		tags:     cfg.Tags,
		tagMode:  cfg.TagMode,
		ranges:   make(map[string]func(T) float64, len(cfg.Ranges)),
		booleans: make(map[string]func(T) bool, len(cfg.Booleans)),
		sorts:    cfg.Sorts,
	}

	for _, a := range cfg.SearchFields {
		fn, err := a.resolve()
		if err != nil {
			return nil, err
		}
		if fn != nil {
			e.searchFields = append(e.searchFields, fn)
		}
	}

	var err error
	if e.category, err = cfg.Category.resolve(); err != nil {
		return nil, err
	}
	if e.rarity, err = cfg.Rarity.resolve(); err != nil {
		return nil, err
	}
	if e.status, err = cfg.Status.resolve(); err != nil {
		return nil, err
	}
	if e.typ, err = cfg.Type.resolve(); err != nil {
		return nil, err
	}
	if e.date, err = cfg.Date.resolve(); err != nil {
		return nil, err
	}

	for _, rf := range cfg.Ranges {
		fn, err := rf.Value.resolve()
		if err != nil {
			return nil, err
		}
		e.ranges[rf.Key] = fn
		e.rangeDef = append(e.rangeDef, RangeDef{Key: rf.Key, Label: rf.Label, Min: rf.Min, Max: rf.Max, Step: rf.Step})
	}
	for _, bf := range cfg.Booleans {
		e.booleans[bf.Key] = bf.Pred
		e.boolDef = append(e.boolDef, BoolDef{Key: bf.Key, Label: bf.Label})
	}

	return e, nil
}

// MustNew 配置静态可信时使用（预设写死在代码里，解析失败属编程错误）
func MustNew[T any](cfg Config[T]) *Engine[T] {
	e, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// Apply 对 items 应用完整管线并返回新切片，不修改输入
func (e *Engine[T]) Apply(items []T, st State) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if e.matches(it, st) {
			out = append(out, it)
		}
	}

	// 排序最后执行且必须稳定；未注册的排序键（含 "newest"）保持进入时的顺序
	if less, ok := e.sorts[st.Sort]; ok && less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}

	return out
}

func (e *Engine[T]) matches(it T, st State) bool {
	if term := st.searchTerm(); term != "" {
		if e.search != nil {
			if !e.search(it, term) {
				return false
			}
		} else if !e.defaultSearch(it, term) {
			return false
		}
	}

	if !matchConstraint(e.category, it, st.Category) {
		return false
	}
	if !matchConstraint(e.rarity, it, st.Rarity) {
		return false
	}
	if !matchConstraint(e.status, it, st.Status) {
		return false
	}
	if !matchConstraint(e.typ, it, st.Type) {
		return false
	}

	if len(st.Tags) > 0 && e.tags != nil {
		if !matchTags(e.tags(it), st.Tags, e.tagMode) {
			return false
		}
	}

	for key, r := range st.Ranges {
		fn, ok := e.ranges[key]
		if !ok {
			continue // 数据集没有该区间字段，直接放行
		}
		if !r.Contains(fn(it)) {
			return false
		}
	}

	for key, on := range st.Booleans {
		if !on {
			continue
		}
		pred, ok := e.booleans[key]
		if !ok {
			continue
		}
		if !pred(it) {
			return false
		}
	}

	if st.Dates.active() && e.date != nil {
		if !st.Dates.contains(e.date(it)) {
			return false
		}
	}

	return true
}

func (e *Engine[T]) defaultSearch(it T, term string) bool {
	term = strings.ToLower(term)
	for _, fn := range e.searchFields {
		if strings.Contains(strings.ToLower(fn(it)), term) {
			return true
		}
	}
	return false
}

func matchConstraint[T any](fn func(T) string, it T, want *string) bool {
	// 维度未配置或无约束，放行
	if fn == nil || want == nil {
		return true
	}
	return fn(it) == *want
}

func matchTags(have, want []string, mode TagMode) bool {
	set := make(map[string]bool, len(have))
	for _, t := range have {
		set[t] = true
	}
	switch mode {
	case TagAll:
		for _, t := range want {
			if !set[t] {
				return false
			}
		}
		return true
	default:
		for _, t := range want {
			if set[t] {
				return true
			}
		}
		return false
	}
}

// Resolve 依据当前数据集求可用筛选项目录。数据集或预设变化时重新计算。
func (e *Engine[T]) Resolve(items []T) ResolvedConfig {
	rc := ResolvedConfig{
		Ranges:   e.rangeDef,
		Booleans: e.boolDef,
	}

	rc.Categories = distinct(items, e.category)
	rc.Rarities = distinct(items, e.rarity)
	rc.Statuses = distinct(items, e.status)
	rc.Types = distinct(items, e.typ)

	if e.tags != nil {
		seen := make(map[string]bool)
		for _, it := range items {
			for _, t := range e.tags(it) {
				if t != "" && !seen[t] {
					seen[t] = true
					rc.Tags = append(rc.Tags, t)
				}
			}
		}
		sort.Strings(rc.Tags)
	}

	for key := range e.sorts {
		rc.Sorts = append(rc.Sorts, key)
	}
	sort.Strings(rc.Sorts)

	return rc
}

func distinct[T any](items []T, fn func(T) string) []string {
	if fn == nil {
		return nil
	}
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		v := fn(it)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
