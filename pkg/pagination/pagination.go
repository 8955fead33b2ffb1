// Package pagination 提供目录页的分页推导。与筛选引擎相互独立，
// 但调用方在上游筛选结果变化后必须 Reset，否则下标会指向旧结果集之外。
package pagination

// 页码窗口最多展示的页数
const windowSize = 5

// Page 由总数、页大小、当前页推导出的分页视图
type Page struct {
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalItems   int   `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	StartIndex   int   `json:"startIndex"`
	EndIndex     int   `json:"endIndex"`
	HasPrevious  bool  `json:"hasPrevious"`
	HasNext      bool  `json:"hasNext"`
	PageRange    []int `json:"pageRange"`
}

// Derive 计算分页视图。totalPages 最小为 1，页控件永不除零；
// currentPage 越界时静默夹取，不报错。
func Derive(totalItems, itemsPerPage, currentPage int) Page {
	if itemsPerPage < 1 {
		itemsPerPage = 1
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := (totalItems + itemsPerPage - 1) / itemsPerPage
	if totalPages < 1 {
		totalPages = 1
	}

	currentPage = clamp(currentPage, 1, totalPages)

	start := (currentPage - 1) * itemsPerPage
	end := start + itemsPerPage
	if end > totalItems {
		end = totalItems
	}
	if start > totalItems {
		start = totalItems
	}

	return Page{
		CurrentPage:  currentPage,
		ItemsPerPage: itemsPerPage,
		TotalItems:   totalItems,
		TotalPages:   totalPages,
		StartIndex:   start,
		EndIndex:     end,
		HasPrevious:  currentPage > 1,
		HasNext:      currentPage < totalPages,
		PageRange:    pageRange(currentPage, totalPages),
	}
}

// pageRange 以当前页为中心的有界页码窗口，夹取到 [1, totalPages]
func pageRange(current, total int) []int {
	lo := current - windowSize/2
	hi := lo + windowSize - 1
	if lo < 1 {
		lo = 1
		hi = min(windowSize, total)
	}
	if hi > total {
		hi = total
		lo = max(1, total-windowSize+1)
	}

	out := make([]int, 0, hi-lo+1)
	for p := lo; p <= hi; p++ {
		out = append(out, p)
	}
	return out
}

// Paginator 持有当前页状态的分页器，页大小固定
type Paginator struct {
	itemsPerPage int
	currentPage  int
	totalItems   int
}

// New 创建分页器，初始位于第 1 页
func New(itemsPerPage int) *Paginator {
	if itemsPerPage < 1 {
		itemsPerPage = 1
	}
	return &Paginator{itemsPerPage: itemsPerPage, currentPage: 1}
}

// SetTotal 更新总条数并返回当前视图
func (p *Paginator) SetTotal(totalItems int) Page {
	if totalItems < 0 {
		totalItems = 0
	}
	p.totalItems = totalItems
	return p.Current()
}

// Current 当前分页视图
func (p *Paginator) Current() Page {
	pg := Derive(p.totalItems, p.itemsPerPage, p.currentPage)
	p.currentPage = pg.CurrentPage
	return pg
}

// GoToPage 跳转到第 n 页，越界静默夹取
func (p *Paginator) GoToPage(n int) Page {
	p.currentPage = n
	return p.Current()
}

// NextPage 下一页
func (p *Paginator) NextPage() Page {
	return p.GoToPage(p.currentPage + 1)
}

// PreviousPage 上一页
func (p *Paginator) PreviousPage() Page {
	return p.GoToPage(p.currentPage - 1)
}

// Reset 回到第 1 页。上游筛选状态变化后必须调用。
func (p *Paginator) Reset() Page {
	return p.GoToPage(1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
