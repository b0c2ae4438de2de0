package pagination

import "math"

const (
	DefaultSize = 20
	// AdminSupportSize 관리자 문의 목록은 한 페이지에 한 건씩 노출한다
	AdminSupportSize = 1

	// MaxOffset bounds (Number-1)*Size so it never overflows
	MaxOffset = math.MaxInt32
)

// Page 는 1부터 시작하는 페이지 요청이다
type Page struct {
	Number int
	Size   int
}

// New clamps the page number to 1 and falls back to DefaultSize
func New(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// InRange reports whether Offset stays within MaxOffset
func (p Page) InRange() bool {
	return p.Number-1 <= MaxOffset/p.Size
}

// FetchLimit is one more than the page size; the extra row only signals hasNext
func (p Page) FetchLimit() int {
	return p.Size + 1
}

// Result 목록 응답 공통 형태
type Result[T any] struct {
	Items   []T  `json:"items"`
	Page    int  `json:"page"`
	HasNext bool `json:"hasNext"`
}

// Trim cuts rows fetched with FetchLimit down to the page and reports hasNext
func Trim[T any](p Page, rows []T) ([]T, bool) {
	if len(rows) > p.Size {
		return rows[:p.Size], true
	}
	return rows, false
}

// Map builds a Result, converting each trimmed row
func Map[S any, T any](p Page, rows []S, convert func(S) T) Result[T] {
	trimmed, hasNext := Trim(p, rows)
	items := make([]T, 0, len(trimmed))
	for _, row := range trimmed {
		items = append(items, convert(row))
	}
	return Result[T]{Items: items, Page: p.Number, HasNext: hasNext}
}
