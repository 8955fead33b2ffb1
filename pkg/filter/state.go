package filter

import (
	"strings"
	"time"
)

// All 是前端单选筛选的"不限"哨兵值。引擎内部用显式可空约束表达"无约束"，
// 该哨兵只在请求参数转换时出现。
const All = "All"

// Constraint 把请求参数转换为可空约束："" 和 "All" 都表示无约束
func Constraint(v string) *string {
	if v == "" || v == All {
		return nil
	}
	return &v
}

// Range 数值区间，闭区间 [Min, Max]
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains 判断 v 是否落在区间内
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// DateRange 日期区间，任一端为 nil 表示该侧不设界
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

func (d DateRange) active() bool {
	return d.Start != nil || d.End != nil
}

func (d DateRange) contains(t time.Time) bool {
	if d.Start != nil && t.Before(*d.Start) {
		return false
	}
	if d.End != nil && t.After(*d.End) {
		return false
	}
	return true
}

// State 用户当前的筛选查询。单选维度为 nil、集合维度为空时即无约束。
type State struct {
	Search   string
	Category *string
	Rarity   *string
	Status   *string
	Type     *string
	Tags     []string
	Ranges   map[string]Range
	Booleans map[string]bool
	Dates    DateRange
	Sort     string
}

func (s State) searchTerm() string {
	return strings.TrimSpace(s.Search)
}

// ActiveCount 统计处于非默认状态的筛选维度数，仅用于界面徽标展示
func (s State) ActiveCount() int {
	n := 0
	if s.searchTerm() != "" {
		n++
	}
	for _, c := range []*string{s.Category, s.Rarity, s.Status, s.Type} {
		if c != nil {
			n++
		}
	}
	if len(s.Tags) > 0 {
		n++
	}
	if len(s.Ranges) > 0 {
		n++
	}
	for _, on := range s.Booleans {
		if on {
			n++
			break
		}
	}
	if s.Dates.active() {
		n++
	}
	return n
}
