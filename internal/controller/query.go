package controller

import (
	"math"
	"strconv"
	"strings"
	"time"

	"venus_handbook_backend/pkg/filter"

	"github.com/gin-gonic/gin"
)

// ParseFilterState 把目录页的查询串还原为筛选状态。所有参数均可省略：
//
//	search     模糊搜索词
//	category / rarity / status / type 单选维度（空或 "All" 表示不限）
//	tags       逗号分隔的标签集合
//	min_<key> / max_<key> 数值区间的上下界
//	flags      逗号分隔的已开启布尔筛选键
//	from / to  日期区间，格式 2006-01-02
//	sort       排序键
//	page       页码，从 1 起
//	limit      每页条数（见 PerPage）
func ParseFilterState(c *gin.Context) (filter.State, int) {
	st := filter.State{
		Search:   c.Query("search"),
		Category: filter.Constraint(c.Query("category")),
		Rarity:   filter.Constraint(c.Query("rarity")),
		Status:   filter.Constraint(c.Query("status")),
		Type:     filter.Constraint(c.Query("type")),
		Sort:     c.Query("sort"),
	}

	if raw := c.Query("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				st.Tags = append(st.Tags, t)
			}
		}
	}

	mins := make(map[string]float64)
	maxes := make(map[string]float64)
	for key, values := range c.Request.URL.Query() {
		if len(values) == 0 {
			continue
		}
		v, err := strconv.ParseFloat(values[0], 64)
		if err != nil {
			continue
		}
		switch {
		case strings.HasPrefix(key, "min_"):
			mins[key[4:]] = v
		case strings.HasPrefix(key, "max_"):
			maxes[key[4:]] = v
		}
	}
	for key := range mins {
		if _, ok := maxes[key]; !ok {
			maxes[key] = math.MaxFloat64
		}
	}
	for key, hi := range maxes {
		lo := mins[key] // 缺省下界为 0
		if hi < lo {
			continue
		}
		if st.Ranges == nil {
			st.Ranges = make(map[string]filter.Range)
		}
		st.Ranges[key] = filter.Range{Min: lo, Max: hi}
	}

	if raw := c.Query("flags"); raw != "" {
		st.Booleans = make(map[string]bool)
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				st.Booleans[k] = true
			}
		}
	}

	if t, ok := parseDate(c.Query("from")); ok {
		st.Dates.Start = &t
	}
	if t, ok := parseDate(c.Query("to")); ok {
		end := t.Add(24*time.Hour - time.Second)
		st.Dates.End = &end
	}

	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil {
		page = p
	}
	return st, page
}

// PerPage 解析 limit 参数作为每页条数覆盖，上限 100。
// 缺省或非法时返回 0，由服务层回落到目录默认页大小。
func PerPage(c *gin.Context) int {
	v, err := strconv.Atoi(c.Query("limit"))
	if err != nil || v <= 0 {
		return 0
	}
	if v > 100 {
		v = 100
	}
	return v
}

func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
