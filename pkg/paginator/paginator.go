// Package paginator 实现 1 起始的分页约定：超出末页返回空页而不是报错。
package paginator

import (
	"math"
	"strconv"
)

// Page 一页数据
type Page[T any] struct {
	Items       []T   `json:"items"`
	Number      int   `json:"number"`
	PageSize    int   `json:"page_size"`
	Total       int64 `json:"total"`
	NumPages    int   `json:"num_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// ParseNumber 解析请求中的页码，缺失、非数字或小于 1 均视为第 1 页
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Offset 返回页码对应的偏移量；溢出时饱和为 math.MaxInt，保证超大页码落在末页之后
func Offset(number, size int) int {
	if number < 1 || size <= 0 {
		return 0
	}
	if number-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return (number - 1) * size
}

// NumPages 总页数，至少为 1
func NumPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

// New 用已经按 offset/limit 取出的 items 组装分页结果
func New[T any](items []T, number, size int, total int64) Page[T] {
	if number < 1 {
		number = 1
	}
	if items == nil {
		items = []T{}
	}
	pages := NumPages(total, size)
	return Page[T]{
		Items:       items,
		Number:      number,
		PageSize:    size,
		Total:       total,
		NumPages:    pages,
		HasNext:     number < pages,
		HasPrevious: number > 1,
	}
}

// Slice 对内存中完整有序的结果集分页
func Slice[T any](all []T, number, size int) Page[T] {
	if number < 1 {
		number = 1
	}
	start := Offset(number, size)
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	window := make([]T, end-start)
	copy(window, all[start:end])
	return New(window, number, size, int64(len(all)))
}

// Map 转换页内元素，分页信息保持不变
func Map[T, U any](p Page[T], f func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, it := range p.Items {
		items[i] = f(it)
	}
	return Page[U]{
		Items:       items,
		Number:      p.Number,
		PageSize:    p.PageSize,
		Total:       p.Total,
		NumPages:    p.NumPages,
		HasNext:     p.HasNext,
		HasPrevious: p.HasPrevious,
	}
}
