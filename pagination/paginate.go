package pagination

import "fmt"

// Paginate splits items into pages of at most pageSize elements, preserving
// order. Every page except possibly the last holds exactly pageSize items.
// An empty input produces a single empty page so a view always has something
// to render.
func Paginate[T any](items []T, pageSize int) ([][]T, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("paginate with size %d: %w", pageSize, ErrPageSize)
	}

	if len(items) == 0 {
		return [][]T{nil}, nil
	}

	pages := make([][]T, 0, (len(items)+pageSize-1)/pageSize)
	for start := 0; start < len(items); start += pageSize {
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[start:end])
	}
	return pages, nil
}
