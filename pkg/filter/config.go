package filter

import "time"

// TagMode 标签集合的匹配语义
type TagMode int

const (
	// TagAny 条目标签与所选标签有交集即命中
	TagAny TagMode = iota
	// TagAll 条目标签须包含全部所选标签
	TagAll
)

// RangeFilter 一个数值区间筛选的定义与取值方式
type RangeFilter[T any] struct {
	Key   string
	Label string
	Min   float64
	Max   float64
	Step  float64
	Value Accessor[T, float64]
}

// BoolFilter 一个布尔谓词筛选
type BoolFilter[T any] struct {
	Key   string
	Label string
	Pred  func(T) bool
}

// LessFunc 排序比较函数，配合稳定排序使用
type LessFunc[T any] func(a, b T) bool

// Config 某一类目录的筛选预设。未配置的维度在管线中直接放行。
type Config[T any] struct {
	// Search 自定义搜索匹配；为 nil 时退化为对 SearchFields 的不区分大小写子串匹配
	Search       func(item T, term string) bool
	SearchFields []Accessor[T, string]

	Category Accessor[T, string]
	Rarity   Accessor[T, string]
	Status   Accessor[T, string]
	Type     Accessor[T, string]

	Tags    func(T) []string
	TagMode TagMode

	Ranges   []RangeFilter[T]
	Booleans []BoolFilter[T]

	Date Accessor[T, time.Time]

	// Sorts 排序键到比较函数的表；键缺失时保持原有顺序（"newest" 即依赖数据源的更新序）
	Sorts map[string]LessFunc[T]
}

// RangeDef 区间筛选的界面描述
type RangeDef struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
}

// BoolDef 布尔筛选的界面描述
type BoolDef struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ResolvedConfig 针对当前数据集解析出的可用筛选项，只读，供前端渲染控件。
// 某一维度无可选值时对应控件不渲染，过滤阶段自然成为空操作。
type ResolvedConfig struct {
	Categories []string   `json:"categories,omitempty"`
	Rarities   []string   `json:"rarities,omitempty"`
	Statuses   []string   `json:"statuses,omitempty"`
	Types      []string   `json:"types,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	Ranges     []RangeDef `json:"ranges,omitempty"`
	Booleans   []BoolDef  `json:"booleans,omitempty"`
	Sorts      []string   `json:"sorts,omitempty"`
}
